// Package service orchestrates analysis runs: fetching chain data, running
// the graph, heuristic and clustering transforms, and persisting artifacts.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/chain"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/cluster"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/graph"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/heuristics"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/metrics"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/model"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/peel"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/report"
)

// Config carries per-run defaults applied when a request leaves the
// corresponding knob unset.
type Config struct {
	MaxTxs          int
	MaxHops         int
	SmallFraction   float64
	ChangeThreshold float64
}

// DefaultConfig returns the run defaults.
func DefaultConfig() Config {
	return Config{
		MaxTxs:          200,
		MaxHops:         8,
		SmallFraction:   0.05,
		ChangeThreshold: 0.15,
	}
}

// Analyzer runs the analysis operations end to end and owns run identifiers.
type Analyzer struct {
	source ChainSource
	store  ArtifactStore
	scorer *heuristics.Scorer
	engine *cluster.Engine
	cfg    Config
	logger *zap.Logger
}

// NewAnalyzer builds the analyzer with the provided dependencies.
func NewAnalyzer(source ChainSource, store ArtifactStore, cfg Config, logger *zap.Logger) *Analyzer {
	defaults := DefaultConfig()
	if cfg.MaxTxs <= 0 {
		cfg.MaxTxs = defaults.MaxTxs
	}
	if cfg.MaxHops <= 0 {
		cfg.MaxHops = defaults.MaxHops
	}
	if cfg.SmallFraction <= 0 || cfg.SmallFraction >= 1 {
		cfg.SmallFraction = defaults.SmallFraction
	}
	if cfg.ChangeThreshold == 0 {
		cfg.ChangeThreshold = defaults.ChangeThreshold
	}

	scorer := heuristics.NewScorer(heuristics.DefaultWeights())
	return &Analyzer{
		source: source,
		store:  store,
		scorer: scorer,
		engine: cluster.NewEngine(scorer, cfg.ChangeThreshold),
		cfg:    cfg,
		logger: logger,
	}
}

// AnalyzeRequest names the transactions to analyze.
type AnalyzeRequest struct {
	TxIDs         []string `json:"txids"`
	ConfirmedOnly bool     `json:"confirmed_only"`
}

// AnalyzeResult is the outcome of one transaction-set analysis run.
type AnalyzeResult struct {
	RunID          string               `json:"run_id"`
	Transactions   int                  `json:"transactions"`
	Missing        []string             `json:"missing,omitempty"`
	BipartiteEdges int                  `json:"bipartite_edges"`
	Evidence       []model.EvidenceEdge `json:"evidence"`
	Clusters       []model.Cluster      `json:"clusters"`
	TxFlags        []model.TxFlags      `json:"tx_flags"`
	Diagnostics    model.Diagnostics    `json:"diagnostics"`
	Artifacts      []string             `json:"artifacts"`
}

// AnalyzeTxIDs fetches the named transactions and runs the full pipeline:
// bipartite graph, evidence projection, per-tx flags and clustering. Absent
// txids are reported in Missing, never as an error.
func (a *Analyzer) AnalyzeTxIDs(ctx context.Context, req AnalyzeRequest) (result AnalyzeResult, err error) {
	started := time.Now()
	defer func() { metrics.ObserveRun("analyze", result.Transactions, err, started) }()

	txids := sanitizeTxIDs(req.TxIDs)
	if len(txids) == 0 {
		return AnalyzeResult{}, errors.New("no txids supplied")
	}

	txs, missing, err := a.source.FetchTransactions(ctx, txids)
	if err != nil {
		return AnalyzeResult{}, fmt.Errorf("fetch transactions: %w", err)
	}
	if req.ConfirmedOnly {
		txs = confirmedOnly(txs)
	}

	var diags model.Diagnostics
	diags.TxNotFound += uint64(len(missing))

	edges, buildDiags := graph.BuildBipartite(txs)
	diags.Merge(buildDiags)
	evidence, projectDiags := graph.Project(edges)
	diags.Merge(projectDiags)

	flags := a.flagTransactions(txs)

	clustered := a.engine.Cluster(txs)
	diags.Merge(clustered.Diagnostics)

	runID := report.NewRunID()
	if err := a.store.WriteBipartiteEdges(runID, edges); err != nil {
		return AnalyzeResult{}, err
	}
	if err := a.store.WriteEvidenceEdges(runID, evidence); err != nil {
		return AnalyzeResult{}, err
	}
	if err := a.store.WriteClusters(runID, clustered.Clusters); err != nil {
		return AnalyzeResult{}, err
	}
	if err := a.store.WriteTxFlags(runID, flags); err != nil {
		return AnalyzeResult{}, err
	}

	result = AnalyzeResult{
		RunID:          runID,
		Transactions:   len(txs),
		Missing:        missing,
		BipartiteEdges: len(edges),
		Evidence:       evidence,
		Clusters:       clustered.Clusters,
		TxFlags:        flags,
		Diagnostics:    diags,
		Artifacts: []string{
			report.FileBipartiteEdges,
			report.FileEvidenceEdges,
			report.FileClusters,
			report.FileTxFlags,
		},
	}

	a.logger.Info("analysis run complete",
		zap.String("run_id", runID),
		zap.Int("transactions", len(txs)),
		zap.Int("missing", len(missing)),
		zap.Uint64("skipped_items", diags.Total()))

	return result, nil
}

// ClusterRequest names the seed address whose history to cluster.
type ClusterRequest struct {
	Address       string `json:"address"`
	MaxTxs        int    `json:"max_txs"`
	ConfirmedOnly bool   `json:"confirmed_only"`
}

// ClusterResult is the outcome of one address clustering run.
type ClusterResult struct {
	RunID         string            `json:"run_id"`
	Address       string            `json:"address"`
	Transactions  int               `json:"transactions"`
	SeedClusterID string            `json:"seed_cluster_id,omitempty"`
	Clusters      []model.Cluster   `json:"clusters"`
	FlagCounts    map[string]int    `json:"flag_counts,omitempty"`
	Diagnostics   model.Diagnostics `json:"diagnostics"`
	Artifacts     []string          `json:"artifacts"`
}

// ClusterFromAddress pages through the seed address' history (bounded by
// MaxTxs) and clusters the collected transactions.
func (a *Analyzer) ClusterFromAddress(ctx context.Context, req ClusterRequest) (result ClusterResult, err error) {
	started := time.Now()
	defer func() { metrics.ObserveRun("cluster", result.Transactions, err, started) }()

	address := strings.TrimSpace(req.Address)
	if address == "" {
		return ClusterResult{}, errors.New("no address supplied")
	}
	maxTxs := req.MaxTxs
	if maxTxs <= 0 {
		maxTxs = a.cfg.MaxTxs
	}

	txs, diags, err := a.fetchHistory(ctx, address, maxTxs, req.ConfirmedOnly)
	if err != nil {
		return ClusterResult{}, err
	}

	clustered := a.engine.Cluster(txs)
	diags.Merge(clustered.Diagnostics)

	runID := report.NewRunID()
	if err := a.store.WriteAddressClusters(runID, clustered.Clusters, clustered.FlagCounts); err != nil {
		return ClusterResult{}, err
	}

	result = ClusterResult{
		RunID:         runID,
		Address:       address,
		Transactions:  len(txs),
		SeedClusterID: seedClusterID(clustered.Clusters, address),
		Clusters:      clustered.Clusters,
		FlagCounts:    clustered.FlagCounts,
		Diagnostics:   diags,
		Artifacts:     []string{report.FileAddressClusters},
	}

	a.logger.Info("cluster run complete",
		zap.String("run_id", runID),
		zap.String("address", address),
		zap.Int("transactions", len(txs)),
		zap.Int("clusters", len(clustered.Clusters)))

	return result, nil
}

// PeelRequest names the output to trace forward.
type PeelRequest struct {
	TxID    string `json:"txid"`
	Vout    uint32 `json:"vout"`
	MaxHops int    `json:"max_hops"`
}

// PeelRunResult is a scored peel traversal plus its artifact.
type PeelRunResult struct {
	RunID     string           `json:"run_id"`
	Result    model.PeelResult `json:"result"`
	Artifacts []string         `json:"artifacts"`
}

// Peel traces the seed output forward and persists the hop list. Chain-side
// dead ends terminate the traversal; only cancellation is an error.
func (a *Analyzer) Peel(ctx context.Context, req PeelRequest) (result PeelRunResult, err error) {
	started := time.Now()
	defer func() { metrics.ObserveRun("peel", len(result.Result.Steps), err, started) }()

	txid := strings.TrimSpace(req.TxID)
	if txid == "" {
		return PeelRunResult{}, errors.New("no txid supplied")
	}
	maxHops := req.MaxHops
	if maxHops <= 0 {
		maxHops = a.cfg.MaxHops
	}

	tracer := peel.NewTracer(a.source, peel.Config{
		MaxHops:       maxHops,
		SmallFraction: a.cfg.SmallFraction,
	}, a.logger)

	traced, err := tracer.Trace(ctx, txid, req.Vout)
	if err != nil {
		return PeelRunResult{}, fmt.Errorf("trace %s:%d: %w", txid, req.Vout, err)
	}

	runID := report.NewRunID()
	if err := a.store.WritePeelChain(runID, traced.Steps); err != nil {
		return PeelRunResult{}, err
	}

	result = PeelRunResult{
		RunID:     runID,
		Result:    traced,
		Artifacts: []string{report.FilePeelChain},
	}

	a.logger.Info("peel run complete",
		zap.String("run_id", runID),
		zap.String("txid", txid),
		zap.Uint32("vout", req.Vout),
		zap.Int("steps", len(traced.Steps)),
		zap.Float64("score", traced.Score))

	return result, nil
}

// fetchHistory pages through an address' confirmed history until maxTxs
// transactions are collected or the history ends. An unknown address counts
// as tx_not_found and yields an empty result.
func (a *Analyzer) fetchHistory(ctx context.Context, address string, maxTxs int, confirmed bool) ([]*model.Transaction, model.Diagnostics, error) {
	var (
		txs    []*model.Transaction
		diags  model.Diagnostics
		cursor string
	)
	for {
		page, err := a.source.FetchAddressHistory(ctx, address, cursor)
		if err != nil {
			if errors.Is(err, chain.ErrNotFound) {
				diags.TxNotFound++
				return txs, diags, nil
			}
			return nil, diags, fmt.Errorf("history for %s: %w", address, err)
		}
		for _, tx := range page.Transactions {
			if confirmed && !tx.Confirmed {
				continue
			}
			txs = append(txs, tx)
			if len(txs) >= maxTxs {
				return txs, diags, nil
			}
		}
		if page.NextCursor == "" {
			return txs, diags, nil
		}
		cursor = page.NextCursor
		if err := ctx.Err(); err != nil {
			return nil, diags, err
		}
	}
}

// flagTransactions runs the per-tx verdicts: coinjoin detection and change
// scoring with retained contributions.
func (a *Analyzer) flagTransactions(txs []*model.Transaction) []model.TxFlags {
	flags := make([]model.TxFlags, 0, len(txs))
	for _, tx := range txs {
		isCoinJoin, score := heuristics.DetectCoinJoin(tx, heuristics.DefaultCoinJoinParams())
		flags = append(flags, model.TxFlags{
			TxID:          tx.TxID,
			CoinJoin:      isCoinJoin,
			CoinJoinScore: score,
			ChangeScores:  a.scorer.Score(tx),
		})
	}
	return flags
}

func sanitizeTxIDs(txids []string) []string {
	out := make([]string, 0, len(txids))
	for _, txid := range txids {
		txid = strings.TrimSpace(txid)
		if txid == "" {
			continue
		}
		out = append(out, txid)
	}
	return out
}

func confirmedOnly(txs []*model.Transaction) []*model.Transaction {
	out := txs[:0]
	for _, tx := range txs {
		if tx.Confirmed {
			out = append(out, tx)
		}
	}
	return out
}

func seedClusterID(clusters []model.Cluster, address string) string {
	for _, c := range clusters {
		for _, m := range c.Members {
			if m == address {
				return c.ID
			}
		}
		for _, p := range c.PossibleChange {
			if p == address {
				return c.ID
			}
		}
	}
	return ""
}
