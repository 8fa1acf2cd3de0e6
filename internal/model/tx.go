// Package model defines the analysis data model shared across the engine.
package model

// Transaction is an immutable view of a fetched bitcoin transaction with
// inputs resolved to their source outputs where the chain data allows it.
type Transaction struct {
	TxID        string
	Inputs      []Input
	Outputs     []Output
	Confirmed   bool
	BlockHeight uint32
}

// Input references a previous output and carries its resolved address and
// value. Address is empty when the source script is not decodable.
type Input struct {
	PrevTxID   string
	PrevVout   uint32
	Address    string
	Value      uint64
	ScriptType string
}

// Output is a single vout. Address is empty for non-standard scripts.
type Output struct {
	Vout       uint32
	Value      uint64
	ScriptType string
	Address    string
}

// TotalInputValue sums the resolved input values of the transaction.
func (t *Transaction) TotalInputValue() uint64 {
	var total uint64
	for _, in := range t.Inputs {
		total += in.Value
	}
	return total
}

// LargestInputValue returns the largest single resolved input value.
func (t *Transaction) LargestInputValue() uint64 {
	var largest uint64
	for _, in := range t.Inputs {
		if in.Value > largest {
			largest = in.Value
		}
	}
	return largest
}

// SpendInfo describes whether and where an output was spent. Value is the
// spend value when the data source reports one, 0 otherwise.
type SpendInfo struct {
	Spent        bool
	SpendingTxID string
	SpendingVin  uint32
	Value        uint64
}

// HistoryPage is one page of an address transaction history. An empty
// NextCursor marks the final page.
type HistoryPage struct {
	Transactions []*Transaction
	NextCursor   string
}
