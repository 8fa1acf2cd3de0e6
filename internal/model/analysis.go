package model

// Direction marks which side of a transaction an address appeared on.
type Direction string

const (
	DirectionInput  Direction = "input"
	DirectionOutput Direction = "output"
)

// BipartiteEdge is one address<->transaction incidence. An address can appear
// on both sides of the same transaction (consolidation self-loop).
type BipartiteEdge struct {
	Address   string    `json:"address"`
	TxID      string    `json:"txid"`
	Direction Direction `json:"direction"`
	Value     uint64    `json:"value"`
}

// EvidenceEdge is a projected address->address flow edge. Weight is the
// fractional attribution accumulated over all contributing transactions and
// Value the attributed satoshis backing it.
type EvidenceEdge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
	Value  uint64  `json:"value"`
}

// Contribution is one named heuristic term that went into a change score.
type Contribution struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ChangeScore is the change-likelihood verdict for a single output. Score is
// clamped to [-1, 1]; Contributions retain the pre-clamp terms so a reviewer
// can see why the output scored the way it did.
type ChangeScore struct {
	TxID          string         `json:"txid"`
	Vout          uint32         `json:"vout"`
	Address       string         `json:"address,omitempty"`
	Value         uint64         `json:"value"`
	Score         float64        `json:"score"`
	Contributions []Contribution `json:"contributions"`
}

// TxFlags carries the per-transaction verdicts surfaced to reviewers.
type TxFlags struct {
	TxID          string        `json:"txid"`
	CoinJoin      bool          `json:"coinjoin"`
	CoinJoinScore float64       `json:"coinjoin_score"`
	ChangeScores  []ChangeScore `json:"change_scores"`
}

// Cluster is one common-input-ownership group. Members come from union-find
// only; PossibleChange lists heuristically flagged addresses attached to the
// cluster without ever being unioned into it.
type Cluster struct {
	ID             string   `json:"cluster_id"`
	Members        []string `json:"members"`
	PossibleChange []string `json:"possible_change"`
}
