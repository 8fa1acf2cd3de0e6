package model

// Diagnostics counts every item a run skipped instead of failing on. A run
// always completes; these counters tell the reviewer what it left out.
type Diagnostics struct {
	TxNotFound        uint64 `json:"tx_not_found"`
	UnresolvedInputs  uint64 `json:"unresolved_inputs"`
	UnresolvedOutputs uint64 `json:"unresolved_outputs"`
	ZeroTotalInput    uint64 `json:"zero_total_input"`
	NoInputCluster    uint64 `json:"no_input_cluster"`
}

// Merge adds other's counters into d.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.TxNotFound += other.TxNotFound
	d.UnresolvedInputs += other.UnresolvedInputs
	d.UnresolvedOutputs += other.UnresolvedOutputs
	d.ZeroTotalInput += other.ZeroTotalInput
	d.NoInputCluster += other.NoInputCluster
}

// Total is the number of skipped items across all categories.
func (d Diagnostics) Total() uint64 {
	return d.TxNotFound + d.UnresolvedInputs + d.UnresolvedOutputs + d.ZeroTotalInput + d.NoInputCluster
}
