// Package main contains a one-shot CLI that runs the same analyses the
// server exposes and prints the results as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/esplora"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/metrics"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/report"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/service"
)

type config struct {
	TxIDs    []string `long:"txids" env:"ANALYZER_TXIDS" env-delim:"," description:"transaction ids to analyze"`
	Address  string   `long:"address" env:"ANALYZER_ADDRESS" description:"address to cluster from"`
	PeelTxID string   `long:"peel-txid" env:"ANALYZER_PEEL_TXID" description:"starting txid for a peel trace"`
	PeelVout uint32   `long:"peel-vout" env:"ANALYZER_PEEL_VOUT" description:"starting vout for a peel trace" default:"0"`

	EsploraURL      string        `long:"esplora-url" env:"ANALYZER_ESPLORA_URL" description:"Esplora API base URL" default:"https://blockstream.info/api"`
	EsploraRPS      int           `long:"esplora-rps" env:"ANALYZER_ESPLORA_RPS" description:"Esplora requests per second" default:"4"`
	EsploraAttempts uint          `long:"esplora-attempts" env:"ANALYZER_ESPLORA_ATTEMPTS" description:"attempts per Esplora request" default:"3"`
	PageDelay       time.Duration `long:"page-delay" env:"ANALYZER_PAGE_DELAY" description:"pause before each continuation history page" default:"250ms"`
	Network         string        `long:"network" env:"ANALYZER_NETWORK" description:"network name" default:"mainnet"`
	Fanout          int           `long:"fanout" env:"ANALYZER_FANOUT" description:"concurrent Esplora requests in bulk fetches" default:"4"`
	ConfirmedOnly   bool          `long:"confirmed-only" env:"ANALYZER_CONFIRMED_ONLY" description:"treat unconfirmed transactions as not found"`

	OutputRoot      string  `long:"output-root" env:"ANALYZER_OUTPUT_ROOT" description:"root directory for run artifacts" default:"outputs"`
	MaxTxs          int     `long:"max-txs" env:"ANALYZER_MAX_TXS" description:"address history transaction cap" default:"200"`
	MaxHops         int     `long:"max-hops" env:"ANALYZER_MAX_HOPS" description:"peel chain hop cap" default:"8"`
	ChangeThreshold float64 `long:"change-threshold" env:"ANALYZER_CHANGE_THRESHOLD" description:"minimum change score for possible-change membership" default:"0.15"`
	SmallFraction   float64 `long:"small-fraction" env:"ANALYZER_SMALL_FRACTION" description:"peel output fraction considered small" default:"0.05"`

	LogLevel string `long:"log-level" env:"ANALYZER_LOG_LEVEL" description:"zap log level" default:"warn"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("trace run failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	if len(cfg.TxIDs) == 0 && cfg.Address == "" && cfg.PeelTxID == "" {
		return errors.New("nothing to trace: pass --txids, --address or --peel-txid")
	}

	source, err := esplora.NewClient(esplora.Config{
		BaseURL:       cfg.EsploraURL,
		Network:       cfg.Network,
		RPS:           cfg.EsploraRPS,
		Attempts:      cfg.EsploraAttempts,
		PageDelay:     cfg.PageDelay,
		ConfirmedOnly: cfg.ConfirmedOnly,
		Fanout:        cfg.Fanout,
	}, nil, metrics.NewEsploraClient(cfg.Network), logger)
	if err != nil {
		return fmt.Errorf("init esplora client: %w", err)
	}

	store := report.NewStore(cfg.OutputRoot)
	analyzer := service.NewAnalyzer(source, store, service.Config{
		MaxTxs:          cfg.MaxTxs,
		MaxHops:         cfg.MaxHops,
		SmallFraction:   cfg.SmallFraction,
		ChangeThreshold: cfg.ChangeThreshold,
	}, logger)

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")

	if len(cfg.TxIDs) > 0 {
		result, err := analyzer.AnalyzeTxIDs(ctx, service.AnalyzeRequest{
			TxIDs:         cfg.TxIDs,
			ConfirmedOnly: cfg.ConfirmedOnly,
		})
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
		if err := out.Encode(result); err != nil {
			return err
		}
	}

	if cfg.Address != "" {
		result, err := analyzer.ClusterFromAddress(ctx, service.ClusterRequest{
			Address:       cfg.Address,
			MaxTxs:        cfg.MaxTxs,
			ConfirmedOnly: cfg.ConfirmedOnly,
		})
		if err != nil {
			return fmt.Errorf("cluster: %w", err)
		}
		if err := out.Encode(result); err != nil {
			return err
		}
	}

	if cfg.PeelTxID != "" {
		result, err := analyzer.Peel(ctx, service.PeelRequest{
			TxID:    cfg.PeelTxID,
			Vout:    cfg.PeelVout,
			MaxHops: cfg.MaxHops,
		})
		if err != nil {
			return fmt.Errorf("peel: %w", err)
		}
		if err := out.Encode(result); err != nil {
			return err
		}
	}

	return nil
}
