package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/esplora"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/metrics"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/report"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/service"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/transport"
)

type config struct {
	Addr        string `long:"addr" env:"ANALYZER_ADDR" description:"API listen address" default:":8080"`
	MetricsAddr string `long:"metrics-addr" env:"ANALYZER_METRICS_ADDR" description:"Prometheus listen address" default:":9090"`

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

	LogLevel string `long:"log-level" env:"ANALYZER_LOG_LEVEL" description:"zap log level" default:"info"`
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
		logger.Fatal("analyzer server failed", zap.Error(err))
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
	server := transport.NewServer(analyzer, store, logger)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		if err := metricsServer.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown metrics server", zap.Error(err))
		}
	}()
	go func() {
		logger.Info("Starting metrics server", zap.String("addr", cfg.MetricsAddr))
		if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", zap.Error(err))
		}
	}()

	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           cors.Default().Handler(server.Handler()),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", cfg.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
