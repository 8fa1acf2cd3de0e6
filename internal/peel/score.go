package peel

import (
	"math"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/model"
)

// ScoreWeights blends the four peel sub-scores. They should sum to 1.
type ScoreWeights struct {
	Monotonicity   float64
	RatioStability float64
	SmallPeel      float64
	HopCount       float64
}

// DefaultScoreWeights returns the stock blend, biased toward monotonicity.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Monotonicity:   0.40,
		RatioStability: 0.30,
		SmallPeel:      0.20,
		HopCount:       0.10,
	}
}

// ReasonNotEnoughNumericHops marks chains too short to score.
const ReasonNotEnoughNumericHops = "not_enough_numeric_hops"

const (
	// targetRatio is the nominal hop-to-hop shrink of a peel chain.
	targetRatio = 0.8
	// hopSaturation is the numeric hop count at which length stops adding
	// confidence.
	hopSaturation = 6.0
)

// ScoreSteps blends a [0, 1] peel score over the steps with positive resolved
// values. Fewer than two such steps score 0 outright.
func ScoreSteps(steps []model.PeelStep, w ScoreWeights) (float64, model.PeelDetails) {
	var vals []float64
	var sources []model.ValueSource
	for _, step := range steps {
		if step.Value > 0 {
			vals = append(vals, float64(step.Value))
			sources = append(sources, step.ValueSource)
		}
	}

	details := model.PeelDetails{
		NumericHops:  len(vals),
		ValueSources: sources,
	}
	if len(vals) < 2 {
		details.Reason = ReasonNotEnoughNumericHops
		return 0, details
	}

	monotonic := 0
	for i := 1; i < len(vals); i++ {
		if vals[i] <= vals[i-1] {
			monotonic++
		}
	}
	details.Monotonicity = float64(monotonic) / float64(len(vals)-1)

	ratios := make([]float64, 0, len(vals)-1)
	for i := 0; i+1 < len(vals); i++ {
		ratios = append(ratios, vals[i+1]/vals[i])
	}
	details.RawRatios = ratios
	details.RatioStability = ratioStability(ratios)

	// Small-peel presence only judges steps whose spending tx is known.
	checked, hits := 0, 0
	for _, step := range steps {
		if step.SpendingTxID == "" || step.Value == 0 {
			continue
		}
		checked++
		if len(step.SmallOutputs) > 0 {
			hits++
		}
	}
	if checked > 0 {
		details.SmallPeelPresence = float64(hits) / float64(checked)
	}

	details.HopFactor = math.Min(1, float64(len(vals))/hopSaturation)

	score := w.Monotonicity*details.Monotonicity +
		w.RatioStability*details.RatioStability +
		w.SmallPeel*details.SmallPeelPresence +
		w.HopCount*details.HopFactor
	return clamp01(score), details
}

// ratioStability rewards hop ratios with a mean near targetRatio and low
// dispersion.
func ratioStability(ratios []float64) float64 {
	if len(ratios) == 0 {
		return 0
	}

	var sum float64
	for _, r := range ratios {
		sum += r
	}
	mean := sum / float64(len(ratios))

	var variance float64
	for _, r := range ratios {
		variance += (r - mean) * (r - mean)
	}
	sd := math.Sqrt(variance / float64(len(ratios)))

	meanScore := 1 - math.Min(1, math.Abs(mean-targetRatio)/targetRatio)
	sdScore := 1 / (1 + 8*sd)
	return clamp01(0.7*meanScore + 0.3*sdScore)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
