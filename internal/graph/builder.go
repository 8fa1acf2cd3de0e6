// Package graph builds the bipartite address<->transaction graph and projects
// it into weighted address->address evidence edges.
package graph

import (
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/model"
)

// BuildBipartite turns transactions into bipartite incidence edges. Inputs
// and outputs without a resolvable address are skipped and counted, never
// fatal. No value-conservation check is made; fees mean inputs >= outputs.
func BuildBipartite(txs []*model.Transaction) ([]model.BipartiteEdge, model.Diagnostics) {
	var diags model.Diagnostics

	edges := make([]model.BipartiteEdge, 0, len(txs)*4)
	for _, tx := range txs {
		if tx == nil {
			continue
		}
		for _, in := range tx.Inputs {
			if in.Address == "" {
				diags.UnresolvedInputs++
				continue
			}
			edges = append(edges, model.BipartiteEdge{
				Address:   in.Address,
				TxID:      tx.TxID,
				Direction: model.DirectionInput,
				Value:     in.Value,
			})
		}
		for _, out := range tx.Outputs {
			if out.Address == "" {
				diags.UnresolvedOutputs++
				continue
			}
			edges = append(edges, model.BipartiteEdge{
				Address:   out.Address,
				TxID:      tx.TxID,
				Direction: model.DirectionOutput,
				Value:     out.Value,
			})
		}
	}
	return edges, diags
}
