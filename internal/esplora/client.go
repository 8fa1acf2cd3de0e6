// Package esplora implements the chain data port against the Esplora REST
// API (blockstream.info and compatible instances).
package esplora

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/scylladb/go-set/strset"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/chain"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/clock"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/model"
	"github.com/goodnatureofminers/chaintrace7000-backend/pkg/batcher"
	"github.com/goodnatureofminers/chaintrace7000-backend/pkg/workerpool"
)

// DefaultBaseURL is the public blockstream.info Esplora instance.
const DefaultBaseURL = "https://blockstream.info/api"

// historyPageSize is Esplora's fixed page length for /address/:addr/txs/chain.
const historyPageSize = 25

type (
	// ClientMetrics records API call outcomes.
	ClientMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Config tunes the client against one Esplora instance.
type Config struct {
	BaseURL string
	Network string
	// RPS caps outgoing requests per second.
	RPS int
	// Attempts bounds retries per request, the first try included.
	Attempts uint
	// PageDelay is the politeness pause before each continuation history page.
	PageDelay time.Duration
	// ConfirmedOnly treats unconfirmed transactions as not found.
	ConfirmedOnly bool
	// Fanout bounds concurrent requests in bulk fetches.
	Fanout int
}

// Client talks to Esplora with rate limiting, bounded retries and an in-run
// transaction cache. It implements the chain data port.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	limiter       ratelimit.Limiter
	rps           int
	attempts      uint
	pageDelay     time.Duration
	confirmedOnly bool
	fanout        int
	decoder       *scriptDecoder
	metrics       ClientMetrics
	logger        *zap.Logger

	mu    sync.Mutex
	cache map[string]*model.Transaction
}

var _ chain.Source = (*Client)(nil)

// NewClient constructs a Client. A nil httpClient falls back to a default
// with a 30s timeout.
func NewClient(cfg Config, httpClient *http.Client, metrics ClientMetrics, logger *zap.Logger) (*Client, error) {
	decoder, err := newScriptDecoder(cfg.Network)
	if err != nil {
		return nil, err
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RPS < 1 {
		cfg.RPS = 4
	}
	if cfg.Attempts < 1 {
		cfg.Attempts = 3
	}
	if cfg.Fanout < 1 {
		cfg.Fanout = 4
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		httpClient:    httpClient,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		limiter:       ratelimit.New(cfg.RPS),
		rps:           cfg.RPS,
		attempts:      cfg.Attempts,
		pageDelay:     cfg.PageDelay,
		confirmedOnly: cfg.ConfirmedOnly,
		fanout:        cfg.Fanout,
		decoder:       decoder,
		metrics:       metrics,
		logger:        logger,
		cache:         make(map[string]*model.Transaction),
	}, nil
}

// FetchTransaction returns one transaction, serving repeats from the in-run
// cache.
func (c *Client) FetchTransaction(ctx context.Context, txid string) (*model.Transaction, error) {
	if tx, ok := c.cached(txid); ok {
		return tx, nil
	}

	var wire txJSON
	if err := c.get(ctx, "tx", "/tx/"+txid, &wire); err != nil {
		return nil, fmt.Errorf("fetch tx %s: %w", txid, err)
	}
	tx, err := buildTransaction(wire, c.decoder)
	if err != nil {
		return nil, fmt.Errorf("convert tx %s: %w", txid, err)
	}
	if c.confirmedOnly && !tx.Confirmed {
		return nil, fmt.Errorf("tx %s unconfirmed: %w", txid, chain.ErrNotFound)
	}

	c.store(tx)
	return tx, nil
}

// FetchTransactions fetches many transactions through a rate-limited batch
// fan-out. Duplicates are fetched once. Transactions that cannot be fetched
// land in missing instead of failing the call; the returned error reports
// cancellation only.
func (c *Client) FetchTransactions(ctx context.Context, txids []string) ([]*model.Transaction, []string, error) {
	type itemResult struct {
		tx      *model.Transaction
		missing string
	}

	var (
		txs     []*model.Transaction
		missing []string
	)

	flush := func(ctx context.Context, batch []string) error {
		results, err := workerpool.Map(ctx, c.fanout, batch,
			func(ctx context.Context, txid string) (itemResult, error) {
				tx, err := c.FetchTransaction(ctx, txid)
				switch {
				case err == nil:
					return itemResult{tx: tx}, nil
				case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
					return itemResult{}, err
				default:
					c.logger.Debug("transaction skipped", zap.String("txid", txid), zap.Error(err))
					return itemResult{missing: txid}, nil
				}
			}, nil)
		if err != nil {
			return err
		}

		for _, res := range results {
			switch {
			case res.tx != nil:
				txs = append(txs, res.tx)
			case res.missing != "":
				missing = append(missing, res.missing)
			}
		}
		return nil
	}

	b := batcher.New(batcher.Config{
		FlushSize:     c.fanout,
		FlushInterval: 100 * time.Millisecond,
		RPS:           c.rps,
	}, c.logger, flush)
	b.Start(ctx)

	seen := strset.New()
	for _, txid := range txids {
		if txid == "" || seen.Has(txid) {
			continue
		}
		seen.Add(txid)
		if err := b.Add(ctx, txid); err != nil {
			b.Stop()
			return txs, missing, err
		}
	}
	b.Stop()

	if err := ctx.Err(); err != nil {
		return txs, missing, err
	}
	return txs, missing, nil
}

// FetchAddressHistory returns one page of an address's transaction history,
// oldest last. Pass the previous page's NextCursor to continue; continuation
// pages wait out the politeness delay first.
func (c *Client) FetchAddressHistory(ctx context.Context, address, cursor string) (model.HistoryPage, error) {
	path := "/address/" + address + "/txs/chain"
	if cursor != "" {
		path += "/" + cursor
		if c.pageDelay > 0 {
			if err := clock.SleepWithContext(ctx, c.pageDelay); err != nil {
				return model.HistoryPage{}, err
			}
		}
	}

	var wires []txJSON
	if err := c.get(ctx, "address_txs", path, &wires); err != nil {
		return model.HistoryPage{}, fmt.Errorf("fetch history %s: %w", address, err)
	}

	var page model.HistoryPage
	for _, wire := range wires {
		tx, err := buildTransaction(wire, c.decoder)
		if err != nil {
			return model.HistoryPage{}, fmt.Errorf("convert tx %s: %w", wire.TxID, err)
		}
		if c.confirmedOnly && !tx.Confirmed {
			continue
		}
		c.store(tx)
		page.Transactions = append(page.Transactions, tx)
	}
	if len(wires) == historyPageSize {
		page.NextCursor = wires[len(wires)-1].TxID
	}
	return page, nil
}

// FetchSpend reports whether and where (txid, vout) was spent.
func (c *Client) FetchSpend(ctx context.Context, txid string, vout uint32) (model.SpendInfo, error) {
	var wire outspendJSON
	path := fmt.Sprintf("/tx/%s/outspend/%d", txid, vout)
	if err := c.get(ctx, "outspend", path, &wire); err != nil {
		return model.SpendInfo{}, fmt.Errorf("fetch outspend %s:%d: %w", txid, vout, err)
	}

	info, err := buildSpendInfo(wire)
	if err != nil {
		return model.SpendInfo{}, fmt.Errorf("convert outspend %s:%d: %w", txid, vout, err)
	}
	return info, nil
}

func (c *Client) cached(txid string) (*model.Transaction, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tx, ok := c.cache[txid]
	return tx, ok
}

func (c *Client) store(tx *model.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[tx.TxID] = tx
}

func (c *Client) get(ctx context.Context, operation, path string, out any) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe(operation, err, started)
	}()

	var body []byte
	err = retry.Do(func() error {
		var rerr error
		body, rerr = c.getOnce(ctx, path)
		return rerr
	},
		retry.Attempts(c.attempts),
		retry.Delay(250*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.RetryIf(retryable),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return err
	}

	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) getOnce(ctx context.Context, path string) ([]byte, error) {
	c.limiter.Take()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, chain.ErrNotFound
	default:
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// statusError carries a non-2xx response for the retry policy.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

// retryable allows retries on rate limiting, server errors and transport
// failures. Not-found and other client errors are terminal.
func retryable(err error) bool {
	if errors.Is(err, chain.ErrNotFound) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= http.StatusInternalServerError
	}
	return true
}
