// Package heuristics scores transaction outputs for change-likelihood and
// flags coinjoin-shaped transactions. Scores are advisory signals for manual
// review, never proofs.
package heuristics

import (
	"math"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/model"
)

// Contribution names surfaced to reviewers.
const (
	FlagHighDecimal       = "high_decimal"
	FlagRoundAmount       = "round_amount"
	FlagScriptMatch       = "script_match"
	FlagScriptMismatch    = "script_mismatch"
	FlagSmallerThanInputs = "smaller_than_inputs"
	FlagExceedsInputs     = "exceeds_inputs"
	FlagCoinJoinLike      = "coinjoin_like"
	FlagSolePositiveBoost = "sole_positive_boost"
)

// Weights sets the magnitude of each change heuristic. The defaults are
// tuned starting points, not calibrated truth; expose them to operators.
type Weights struct {
	ScriptMatch  float64
	Magnitude    float64
	DecimalNoise float64
	TrailingZero float64
	CoinJoin     float64
	SolePositive float64
}

// DefaultWeights returns the stock heuristic weights.
func DefaultWeights() Weights {
	return Weights{
		ScriptMatch:  0.15,
		Magnitude:    0.10,
		DecimalNoise: 0.20,
		TrailingZero: 0.15,
		CoinJoin:     0.20,
		SolePositive: 0.12,
	}
}

// Scorer computes per-output change scores for a transaction.
type Scorer struct {
	weights Weights
}

// NewScorer constructs a Scorer with the given weights.
func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Score evaluates every output of tx. Each heuristic contributes a bounded
// term; terms are summed and the sum clamped to [-1, 1] as the final step.
// Malformed-but-present data (no inputs, zero values) scores neutrally.
func (s *Scorer) Score(tx *model.Transaction) []model.ChangeScore {
	if tx == nil || len(tx.Outputs) == 0 {
		return nil
	}

	majorityScript := majorityInputScriptType(tx.Inputs)
	totalIn := tx.TotalInputValue()
	largestIn := tx.LargestInputValue()

	valueCounts := make(map[uint64]int, len(tx.Outputs))
	for _, out := range tx.Outputs {
		valueCounts[out.Value]++
	}

	scores := make([]model.ChangeScore, len(tx.Outputs))
	sums := make([]float64, len(tx.Outputs))
	for i, out := range tx.Outputs {
		var contribs []model.Contribution
		add := func(name string, value float64) {
			contribs = append(contribs, model.Contribution{Name: name, Value: value})
			sums[i] += value
		}

		if n := subBTCNonZeroDigits(out.Value); n > 0 {
			add(FlagHighDecimal, s.weights.DecimalNoise*float64(n)/8)
		}
		if tz := trailingZeros(out.Value); tz > 0 {
			if tz > 8 {
				tz = 8
			}
			add(FlagRoundAmount, -s.weights.TrailingZero*float64(tz)/8)
		}
		if majorityScript != "" && out.ScriptType != "" {
			if out.ScriptType == majorityScript {
				add(FlagScriptMatch, s.weights.ScriptMatch)
			} else {
				add(FlagScriptMismatch, -s.weights.ScriptMatch)
			}
		}
		if largestIn > 0 && out.Value > 0 && out.Value < largestIn {
			add(FlagSmallerThanInputs, s.weights.Magnitude)
		} else if totalIn > 0 && out.Value >= totalIn {
			add(FlagExceedsInputs, -s.weights.Magnitude)
		}
		if valueCounts[out.Value] >= 2 {
			add(FlagCoinJoinLike, -s.weights.CoinJoin)
		}

		scores[i] = model.ChangeScore{
			TxID:          tx.TxID,
			Vout:          out.Vout,
			Address:       out.Address,
			Value:         out.Value,
			Contributions: contribs,
		}
	}

	// A lone positive output is the exclusive change candidate; nudge it.
	positive := -1
	for i, sum := range sums {
		if sum > 0 {
			if positive >= 0 {
				positive = -1
				break
			}
			positive = i
		}
	}
	if positive >= 0 {
		scores[positive].Contributions = append(scores[positive].Contributions,
			model.Contribution{Name: FlagSolePositiveBoost, Value: s.weights.SolePositive})
		sums[positive] += s.weights.SolePositive
	}

	for i := range scores {
		scores[i].Score = clamp(sums[i], -1, 1)
	}
	return scores
}

func majorityInputScriptType(inputs []model.Input) string {
	counts := make(map[string]int, len(inputs))
	for _, in := range inputs {
		if in.ScriptType != "" {
			counts[in.ScriptType]++
		}
	}

	majority := ""
	best := 0
	tied := false
	for scriptType, count := range counts {
		switch {
		case count > best:
			majority, best, tied = scriptType, count, false
		case count == best:
			tied = true
		}
	}
	if tied {
		return ""
	}
	return majority
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
