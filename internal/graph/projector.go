package graph

import (
	"sort"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/model"
)

// sideAgg accumulates per-address values on one side of a transaction while
// preserving first-seen order, so projection stays deterministic.
type sideAgg struct {
	order  []string
	totals map[string]uint64
}

func newSideAgg() *sideAgg {
	return &sideAgg{totals: make(map[string]uint64)}
}

func (a *sideAgg) add(addr string, value uint64) {
	if _, ok := a.totals[addr]; !ok {
		a.order = append(a.order, addr)
	}
	a.totals[addr] += value
}

type txSides struct {
	inputs  *sideAgg
	outputs *sideAgg
}

// Project folds bipartite edges into evidence edges. Per transaction, each
// (input address, output address) pair with distinct addresses contributes
// min(input value, output value) / total input value; an address repeated
// among inputs is aggregated first so its attribution is never counted
// twice. Contributions to the same pair accumulate across transactions.
// Self-pairs are excluded from evidence but stay in the bipartite graph.
func Project(edges []model.BipartiteEdge) ([]model.EvidenceEdge, model.Diagnostics) {
	var diags model.Diagnostics

	byTx := make(map[string]*txSides)
	txOrder := make([]string, 0)
	for _, e := range edges {
		sides, ok := byTx[e.TxID]
		if !ok {
			sides = &txSides{inputs: newSideAgg(), outputs: newSideAgg()}
			byTx[e.TxID] = sides
			txOrder = append(txOrder, e.TxID)
		}
		switch e.Direction {
		case model.DirectionInput:
			sides.inputs.add(e.Address, e.Value)
		case model.DirectionOutput:
			sides.outputs.add(e.Address, e.Value)
		}
	}

	type pairKey struct{ from, to string }
	acc := make(map[pairKey]*model.EvidenceEdge)

	for _, txid := range txOrder {
		sides := byTx[txid]

		var totalIn uint64
		for _, v := range sides.inputs.totals {
			totalIn += v
		}
		if totalIn == 0 {
			diags.ZeroTotalInput++
			continue
		}

		for _, inAddr := range sides.inputs.order {
			inVal := sides.inputs.totals[inAddr]
			for _, outAddr := range sides.outputs.order {
				if inAddr == outAddr {
					continue
				}
				attributed := sides.outputs.totals[outAddr]
				if inVal < attributed {
					attributed = inVal
				}
				if attributed == 0 {
					continue
				}

				key := pairKey{from: inAddr, to: outAddr}
				edge, ok := acc[key]
				if !ok {
					edge = &model.EvidenceEdge{From: inAddr, To: outAddr}
					acc[key] = edge
				}
				edge.Weight += float64(attributed) / float64(totalIn)
				edge.Value += attributed
			}
		}
	}

	result := make([]model.EvidenceEdge, 0, len(acc))
	for _, edge := range acc {
		result = append(result, *edge)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].From != result[j].From {
			return result[i].From < result[j].From
		}
		return result[i].To < result[j].To
	})
	return result, diags
}
