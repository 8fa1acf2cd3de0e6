package esplora

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/chain"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/metrics"
)

type ClientSuite struct {
	suite.Suite

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	hits     map[string]int

	server *httptest.Server
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.handlers = make(map[string]http.HandlerFunc)
	s.hits = make(map[string]int)
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		handler, ok := s.handlers[r.URL.Path]
		s.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) newClient(cfg Config) *Client {
	cfg.BaseURL = s.server.URL
	cfg.Network = "regtest"
	if cfg.RPS == 0 {
		cfg.RPS = 1000 // keep tests fast
	}
	client, err := NewClient(cfg, s.server.Client(), metrics.NewEsploraClient("regtest"), zap.NewNop())
	s.Require().NoError(err)
	return client
}

func (s *ClientSuite) handleJSON(path string, payload any) {
	body, err := json.Marshal(payload)
	s.Require().NoError(err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[path] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

// handleFlaky fails the first n requests with the given status, then serves
// the payload.
func (s *ClientSuite) handleFlaky(path string, n, status int, payload any) {
	body, err := json.Marshal(payload)
	s.Require().NoError(err)

	var mu sync.Mutex
	remaining := n

	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[path] = func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		fail := remaining > 0
		if fail {
			remaining--
		}
		mu.Unlock()

		if fail {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

func (s *ClientSuite) pathHits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func confirmedWireTx(txid string) txJSON {
	return txJSON{
		TxID: txid,
		Vin: []vinJSON{{
			TxID: "prev-" + txid,
			Vout: 1,
			Prevout: &voutJSON{
				ScriptPubKeyType:    "v0_p2wpkh",
				ScriptPubKeyAddress: "in-" + txid,
				Value:               5_000_000,
			},
		}},
		Vout: []voutJSON{{
			ScriptPubKeyType:    "v0_p2wpkh",
			ScriptPubKeyAddress: "out-" + txid,
			Value:               4_900_000,
		}},
		Status: statusJSON{Confirmed: true, BlockHeight: 100},
	}
}

func (s *ClientSuite) TestFetchTransactionDecodesAndCaches() {
	s.handleJSON("/tx/abc", confirmedWireTx("abc"))
	client := s.newClient(Config{})
	ctx := context.Background()

	tx, err := client.FetchTransaction(ctx, "abc")
	s.Require().NoError(err)

	s.Equal("abc", tx.TxID)
	s.True(tx.Confirmed)
	s.Equal(uint32(100), tx.BlockHeight)
	s.Require().Len(tx.Inputs, 1)
	s.Equal("in-abc", tx.Inputs[0].Address)
	s.Equal(uint64(5_000_000), tx.Inputs[0].Value)
	s.Equal(uint32(1), tx.Inputs[0].PrevVout)
	s.Require().Len(tx.Outputs, 1)
	s.Equal("out-abc", tx.Outputs[0].Address)
	s.Equal(uint32(0), tx.Outputs[0].Vout)

	again, err := client.FetchTransaction(ctx, "abc")
	s.Require().NoError(err)
	s.Same(tx, again)
	s.Equal(1, s.pathHits("/tx/abc"))
}

func (s *ClientSuite) TestFetchTransactionDecodesRawScripts() {
	wire := confirmedWireTx("abc")
	wire.Vout = []voutJSON{
		{ScriptPubKeyType: "p2pkh", ScriptPubKey: "76a914" + strings.Repeat("11", 20) + "88ac", Value: 1_000},
		{ScriptPubKeyType: "op_return", ScriptPubKey: "6a0b68656c6c6f20776f726c64", Value: 0},
	}
	s.handleJSON("/tx/abc", wire)
	client := s.newClient(Config{})

	tx, err := client.FetchTransaction(context.Background(), "abc")
	s.Require().NoError(err)
	s.Require().Len(tx.Outputs, 2)
	s.NotEmpty(tx.Outputs[0].Address, "p2pkh script should decode to an address")
	s.Empty(tx.Outputs[1].Address, "op_return carries no address")
}

func (s *ClientSuite) TestFetchTransactionNotFound() {
	client := s.newClient(Config{Attempts: 3})

	_, err := client.FetchTransaction(context.Background(), "nope")
	s.Require().ErrorIs(err, chain.ErrNotFound)
	s.Equal(1, s.pathHits("/tx/nope"), "404 must not be retried")
}

func (s *ClientSuite) TestRetriesOnServerErrors() {
	s.handleFlaky("/tx/abc", 2, http.StatusInternalServerError, confirmedWireTx("abc"))
	client := s.newClient(Config{Attempts: 3})

	tx, err := client.FetchTransaction(context.Background(), "abc")
	s.Require().NoError(err)
	s.Equal("abc", tx.TxID)
	s.Equal(3, s.pathHits("/tx/abc"))
}

func (s *ClientSuite) TestRetriesOnRateLimiting() {
	s.handleFlaky("/tx/abc", 1, http.StatusTooManyRequests, confirmedWireTx("abc"))
	client := s.newClient(Config{Attempts: 3})

	_, err := client.FetchTransaction(context.Background(), "abc")
	s.Require().NoError(err)
	s.Equal(2, s.pathHits("/tx/abc"))
}

func (s *ClientSuite) TestConfirmedOnly() {
	wire := confirmedWireTx("abc")
	wire.Status = statusJSON{}
	s.handleJSON("/tx/abc", wire)
	client := s.newClient(Config{ConfirmedOnly: true})

	_, err := client.FetchTransaction(context.Background(), "abc")
	s.Require().ErrorIs(err, chain.ErrNotFound)
}

func (s *ClientSuite) TestFetchSpend() {
	s.handleJSON("/tx/abc/outspend/1", outspendJSON{Spent: true, TxID: "def", Vin: 3})
	s.handleJSON("/tx/abc/outspend/2", outspendJSON{})
	client := s.newClient(Config{})
	ctx := context.Background()

	spent, err := client.FetchSpend(ctx, "abc", 1)
	s.Require().NoError(err)
	s.True(spent.Spent)
	s.Equal("def", spent.SpendingTxID)
	s.Equal(uint32(3), spent.SpendingVin)

	unspent, err := client.FetchSpend(ctx, "abc", 2)
	s.Require().NoError(err)
	s.False(unspent.Spent)
	s.Empty(unspent.SpendingTxID)
}

func (s *ClientSuite) TestFetchAddressHistoryPaginates() {
	first := make([]txJSON, historyPageSize)
	for i := range first {
		first[i] = confirmedWireTx(fmt.Sprintf("t%02d", i))
	}
	second := []txJSON{confirmedWireTx("t25"), confirmedWireTx("t26")}

	s.handleJSON("/address/addr1/txs/chain", first)
	s.handleJSON("/address/addr1/txs/chain/t24", second)
	client := s.newClient(Config{PageDelay: 5 * time.Millisecond})
	ctx := context.Background()

	page, err := client.FetchAddressHistory(ctx, "addr1", "")
	s.Require().NoError(err)
	s.Len(page.Transactions, historyPageSize)
	s.Equal("t24", page.NextCursor)

	next, err := client.FetchAddressHistory(ctx, "addr1", page.NextCursor)
	s.Require().NoError(err)
	s.Len(next.Transactions, 2)
	s.Empty(next.NextCursor)

	// History pages warm the tx cache.
	tx, err := client.FetchTransaction(ctx, "t00")
	s.Require().NoError(err)
	s.Equal("t00", tx.TxID)
	s.Equal(0, s.pathHits("/tx/t00"))
}

func (s *ClientSuite) TestFetchAddressHistorySkipsUnconfirmed() {
	pending := confirmedWireTx("pending")
	pending.Status = statusJSON{}
	s.handleJSON("/address/addr1/txs/chain", []txJSON{confirmedWireTx("ok"), pending})
	client := s.newClient(Config{ConfirmedOnly: true})

	page, err := client.FetchAddressHistory(context.Background(), "addr1", "")
	s.Require().NoError(err)
	s.Require().Len(page.Transactions, 1)
	s.Equal("ok", page.Transactions[0].TxID)
}

func (s *ClientSuite) TestFetchTransactionsBulk() {
	for _, txid := range []string{"a", "b", "c", "d", "e"} {
		s.handleJSON("/tx/"+txid, confirmedWireTx(txid))
	}
	client := s.newClient(Config{Fanout: 2})

	txs, missing, err := client.FetchTransactions(context.Background(),
		[]string{"a", "b", "c", "gone", "d", "e", "a"})
	s.Require().NoError(err)

	var order []string
	for _, tx := range txs {
		order = append(order, tx.TxID)
	}
	s.Equal([]string{"a", "b", "c", "d", "e"}, order)
	s.Equal([]string{"gone"}, missing)
	s.Equal(1, s.pathHits("/tx/a"), "duplicates are fetched once")
}

func (s *ClientSuite) TestFetchTransactionsCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := s.newClient(Config{})

	_, _, err := client.FetchTransactions(ctx, []string{"a", "b"})
	s.Require().Error(err)
}
