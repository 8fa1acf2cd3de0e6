// Package peel follows a single transaction output forward through spends and
// scores how much the resulting hop sequence looks like a peel chain: a long
// tail of slowly shrinking remainders shedding small payments at every hop.
package peel

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/model"
)

// Config bounds a traversal.
type Config struct {
	// MaxHops caps the number of recorded steps.
	MaxHops int
	// SmallFraction separates peeled-off payments from the remainder: outputs
	// at or below SmallFraction of the step value are "small", and the
	// remainder target is stepValue*(1-SmallFraction).
	SmallFraction float64
}

// DefaultConfig returns the stock traversal bounds.
func DefaultConfig() Config {
	return Config{MaxHops: 8, SmallFraction: 0.05}
}

// Tracer walks peel chains through a SpendSource.
type Tracer struct {
	source  SpendSource
	cfg     Config
	weights ScoreWeights
	logger  *zap.Logger
}

// NewTracer constructs a Tracer. Zero or negative bounds fall back to the
// defaults.
func NewTracer(source SpendSource, cfg Config, logger *zap.Logger) *Tracer {
	defaults := DefaultConfig()
	if cfg.MaxHops < 1 {
		cfg.MaxHops = defaults.MaxHops
	}
	if cfg.SmallFraction <= 0 || cfg.SmallFraction >= 1 {
		cfg.SmallFraction = defaults.SmallFraction
	}
	return &Tracer{
		source:  source,
		cfg:     cfg,
		weights: DefaultScoreWeights(),
		logger:  logger,
	}
}

// Trace follows (txid, vout) forward until the output is unspent, the chain
// breaks, or MaxHops is reached. Chain-side failures never error: the step
// records an End reason and the partial chain is scored as-is. The returned
// error is non-nil only when ctx is cancelled, and carries the steps gathered
// before cancellation.
func (t *Tracer) Trace(ctx context.Context, txid string, vout uint32) (model.PeelResult, error) {
	var steps []model.PeelStep

	curTx, curVout := txid, vout
	for hop := 0; hop < t.cfg.MaxHops; hop++ {
		if err := ctx.Err(); err != nil {
			return t.finish(steps), err
		}

		step := model.PeelStep{Hop: hop, TxID: curTx, Vout: curVout}

		spend, err := t.source.FetchSpend(ctx, curTx, curVout)
		if err != nil {
			t.logger.Debug("spend lookup failed, chain unavailable",
				zap.String("txid", curTx), zap.Uint32("vout", curVout), zap.Error(err))
			step.ValueSource = model.ValueSourceUnknown
			step.End = model.PeelEndUnavailable
			steps = append(steps, step)
			break
		}

		step.Value, step.ValueSource = t.resolveValue(ctx, curTx, curVout, spend)

		if !spend.Spent || spend.SpendingTxID == "" {
			step.End = model.PeelEndUnspent
			steps = append(steps, step)
			break
		}
		step.SpendingTxID = spend.SpendingTxID
		step.SpendingVin = spend.SpendingVin

		spendingTx, err := t.source.FetchTransaction(ctx, spend.SpendingTxID)
		if err != nil {
			t.logger.Debug("spending tx unavailable",
				zap.String("txid", spend.SpendingTxID), zap.Error(err))
			step.End = model.PeelEndUnavailable
			steps = append(steps, step)
			break
		}

		remainder, ok := t.remainderOf(spendingTx, step.Value)
		if !ok {
			step.End = model.PeelEndAmbiguousSplit
			steps = append(steps, step)
			break
		}
		step.RemainderVout = remainder.Vout
		step.RemainderAddress = remainder.Address
		step.RemainderValue = remainder.Value
		step.SmallOutputs = t.smallOutputs(spendingTx, remainder.Vout, step.Value)

		if hop == t.cfg.MaxHops-1 {
			step.End = model.PeelEndMaxHops
		}
		steps = append(steps, step)

		curTx, curVout = spend.SpendingTxID, remainder.Vout
	}

	return t.finish(steps), nil
}

func (t *Tracer) finish(steps []model.PeelStep) model.PeelResult {
	score, details := ScoreSteps(steps, t.weights)
	return model.PeelResult{
		Steps:          steps,
		Score:          score,
		Details:        details,
		Interpretation: model.InterpretPeelScore(score),
	}
}

// resolveValue finds the step value through the ordered fallback: the spend
// record itself, the source tx's own output list, then the largest output of
// the spending tx as a proxy.
func (t *Tracer) resolveValue(ctx context.Context, txid string, vout uint32, spend model.SpendInfo) (uint64, model.ValueSource) {
	if spend.Value > 0 {
		return spend.Value, model.ValueSourceSpend
	}

	if tx, err := t.source.FetchTransaction(ctx, txid); err == nil {
		for _, out := range tx.Outputs {
			if out.Vout == vout && out.Value > 0 {
				return out.Value, model.ValueSourceTxVout
			}
		}
	}

	if spend.Spent && spend.SpendingTxID != "" {
		if tx, err := t.source.FetchTransaction(ctx, spend.SpendingTxID); err == nil {
			var largest uint64
			for _, out := range tx.Outputs {
				if out.Value > largest {
					largest = out.Value
				}
			}
			if largest > 0 {
				return largest, model.ValueSourceProxyLargest
			}
		}
	}

	return 0, model.ValueSourceUnknown
}

// remainderOf picks the continuation output of the spending tx: the
// positive-value output closest to stepValue*(1-SmallFraction). A distance
// tie, no positive outputs, or a winner no bigger than a small output all
// mean the chain cannot be followed unambiguously.
func (t *Tracer) remainderOf(tx *model.Transaction, stepValue uint64) (model.Output, bool) {
	target := float64(stepValue) * (1 - t.cfg.SmallFraction)

	best := -1
	bestDist := math.Inf(1)
	tied := false
	for i, out := range tx.Outputs {
		if out.Value == 0 {
			continue
		}
		dist := math.Abs(float64(out.Value) - target)
		switch {
		case dist < bestDist:
			best, bestDist, tied = i, dist, false
		case dist == bestDist:
			tied = true
		}
	}
	if best < 0 || tied {
		return model.Output{}, false
	}

	remainder := tx.Outputs[best]
	if float64(remainder.Value) <= t.cfg.SmallFraction*float64(stepValue) {
		return model.Output{}, false
	}
	return remainder, true
}

// smallOutputs lists the spending tx's non-remainder outputs at or below
// max(1, stepValue*SmallFraction) satoshis.
func (t *Tracer) smallOutputs(tx *model.Transaction, remainderVout uint32, stepValue uint64) []model.SmallOutput {
	limit := math.Max(1, float64(stepValue)*t.cfg.SmallFraction)

	var small []model.SmallOutput
	for _, out := range tx.Outputs {
		if out.Vout == remainderVout {
			continue
		}
		if float64(out.Value) <= limit {
			small = append(small, model.SmallOutput{Vout: out.Vout, Address: out.Address, Value: out.Value})
		}
	}
	return small
}
