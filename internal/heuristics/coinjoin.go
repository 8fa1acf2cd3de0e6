package heuristics

import (
	"math"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/model"
)

// CoinJoinParams bounds the transaction-level coinjoin detector.
type CoinJoinParams struct {
	MinInputs  int
	MinOutputs int
	RelStdDev  float64
	Threshold  float64
}

// DefaultCoinJoinParams returns the stock detector parameters.
func DefaultCoinJoinParams() CoinJoinParams {
	return CoinJoinParams{
		MinInputs:  5,
		MinOutputs: 5,
		RelStdDev:  0.05,
		Threshold:  0.6,
	}
}

// DetectCoinJoin scores how coinjoin-shaped a transaction is: wide
// transactions whose positive output values are near-uniform. Returns the
// flag and the [0, 1] uniformity score.
func DetectCoinJoin(tx *model.Transaction, p CoinJoinParams) (bool, float64) {
	if tx == nil || len(tx.Inputs) < p.MinInputs || len(tx.Outputs) < p.MinOutputs {
		return false, 0
	}

	values := make([]float64, 0, len(tx.Outputs))
	for _, out := range tx.Outputs {
		if out.Value > 0 {
			values = append(values, float64(out.Value))
		}
	}
	if len(values) == 0 {
		return false, 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	rel := math.Sqrt(variance) / (mean + 1e-9)
	score := math.Max(0, 1-math.Min(rel/p.RelStdDev, 1))
	return score > p.Threshold, score
}
