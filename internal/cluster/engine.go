package cluster

import (
	"sort"

	"github.com/scylladb/go-set/strset"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/heuristics"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/model"
)

// Result is one clustering pass over a transaction sequence. FlagCounts
// records, per possible-change address, how many transactions flagged it.
type Result struct {
	Clusters    []model.Cluster
	FlagCounts  map[string]int
	Diagnostics model.Diagnostics
}

// Engine applies the common-input-ownership heuristic and attaches change
// candidates scored above the threshold.
type Engine struct {
	scorer    *heuristics.Scorer
	threshold float64
}

// NewEngine constructs an Engine. threshold is the minimum change score for
// an output to be attached as possible change.
func NewEngine(scorer *heuristics.Scorer, threshold float64) *Engine {
	return &Engine{scorer: scorer, threshold: threshold}
}

type attachment struct {
	anchor     string
	candidates []string
}

// Cluster unions all distinct resolved input addresses of each transaction
// and attaches possible-change candidates to the cluster holding that tx's
// inputs. Candidates are never unioned. The result is fully deterministic:
// cluster ids are the lexicographically smallest member, member lists are
// sorted, and re-running over the same sequence reproduces it exactly.
func (e *Engine) Cluster(txs []*model.Transaction) Result {
	res := Result{FlagCounts: make(map[string]int)}

	arena := NewArena()
	var attachments []attachment

	for _, tx := range txs {
		if tx == nil {
			continue
		}

		inputAddrs := strset.New()
		for _, in := range tx.Inputs {
			if in.Address != "" {
				inputAddrs.Add(in.Address)
			}
		}

		anchor := ""
		inputAddrs.Each(func(addr string) bool {
			if anchor == "" {
				anchor = addr
				arena.Touch(addr)
			} else {
				arena.Union(anchor, addr)
			}
			return true
		})

		var candidates []string
		for _, cs := range e.scorer.Score(tx) {
			if cs.Address == "" || cs.Score < e.threshold {
				continue
			}
			candidates = append(candidates, cs.Address)
			res.FlagCounts[cs.Address]++
		}
		if len(candidates) == 0 {
			continue
		}
		if anchor == "" {
			// Nothing to attach the candidates to.
			res.Diagnostics.NoInputCluster++
			continue
		}
		attachments = append(attachments, attachment{anchor: anchor, candidates: candidates})
	}

	possibleByRoot := make(map[string]*strset.Set)
	for _, att := range attachments {
		root, ok := arena.Find(att.anchor)
		if !ok {
			continue
		}
		set, ok := possibleByRoot[root]
		if !ok {
			set = strset.New()
			possibleByRoot[root] = set
		}
		set.Add(att.candidates...)
	}

	for root, members := range arena.Groups() {
		sort.Strings(members)

		confirmed := strset.New(members...)
		var possible []string
		if set := possibleByRoot[root]; set != nil {
			set.Each(func(addr string) bool {
				if !confirmed.Has(addr) {
					possible = append(possible, addr)
				}
				return true
			})
			sort.Strings(possible)
		}

		res.Clusters = append(res.Clusters, model.Cluster{
			ID:             members[0],
			Members:        members,
			PossibleChange: possible,
		})
	}
	sort.Slice(res.Clusters, func(i, j int) bool {
		return res.Clusters[i].ID < res.Clusters[j].ID
	})
	return res
}
