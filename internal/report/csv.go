package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/model"
	"github.com/goodnatureofminers/chaintrace7000-backend/internal/utils"
)

// WriteBipartiteEdges writes the address<->transaction incidence list.
func (s *Store) WriteBipartiteEdges(runID string, edges []model.BipartiteEdge) error {
	rows := make([][]string, 0, len(edges))
	for _, e := range edges {
		kind, from, to := "addr->tx", e.Address, e.TxID
		if e.Direction == model.DirectionOutput {
			kind, from, to = "tx->addr", e.TxID, e.Address
		}
		rows = append(rows, []string{kind, from, to, strconv.FormatUint(e.Value, 10), e.TxID})
	}
	header := []string{"type", "from", "to", "sats", "txid"}
	return s.writeCSV(runID, FileBipartiteEdges, header, rows)
}

// WriteEvidenceEdges writes the projected address->address flow edges.
func (s *Store) WriteEvidenceEdges(runID string, edges []model.EvidenceEdge) error {
	rows := make([][]string, 0, len(edges))
	for _, e := range edges {
		rows = append(rows, []string{
			e.From,
			e.To,
			strconv.FormatFloat(e.Weight, 'f', -1, 64),
			strconv.FormatUint(e.Value, 10),
			utils.FormatBTC(e.Value),
		})
	}
	header := []string{"from", "to", "weight", "sats", "btc"}
	return s.writeCSV(runID, FileEvidenceEdges, header, rows)
}

// WriteClusters writes one row per cluster member, confirmed members first.
func (s *Store) WriteClusters(runID string, clusters []model.Cluster) error {
	var rows [][]string
	for _, c := range clusters {
		for _, m := range c.Members {
			rows = append(rows, []string{c.ID, m, MembershipConfirmed})
		}
		for _, p := range c.PossibleChange {
			rows = append(rows, []string{c.ID, p, MembershipPossibleChange})
		}
	}
	header := []string{"cluster_id", "member_address", "membership"}
	return s.writeCSV(runID, FileClusters, header, rows)
}

// WriteTxFlags writes per-transaction verdicts with the change scores
// embedded as a JSON cell.
func (s *Store) WriteTxFlags(runID string, flags []model.TxFlags) error {
	rows := make([][]string, 0, len(flags))
	for _, f := range flags {
		scores, err := encodeJSONCell(f.ChangeScores, len(f.ChangeScores))
		if err != nil {
			return fmt.Errorf("encode change scores for %s: %w", f.TxID, err)
		}
		rows = append(rows, []string{
			f.TxID,
			strconv.FormatBool(f.CoinJoin),
			strconv.FormatFloat(f.CoinJoinScore, 'f', 4, 64),
			scores,
		})
	}
	header := []string{"txid", "coinjoin", "coinjoin_score", "change_scores_json"}
	return s.writeCSV(runID, FileTxFlags, header, rows)
}

// WritePeelChain writes one row per traversal hop. Remainder columns stay
// empty on terminal hops that identified none.
func (s *Store) WritePeelChain(runID string, steps []model.PeelStep) error {
	rows := make([][]string, 0, len(steps))
	for _, st := range steps {
		smalls, err := encodeJSONCell(st.SmallOutputs, len(st.SmallOutputs))
		if err != nil {
			return fmt.Errorf("encode small outputs for %s:%d: %w", st.TxID, st.Vout, err)
		}
		var remVout, remAddr, remValue string
		if st.RemainderValue > 0 {
			remVout = strconv.FormatUint(uint64(st.RemainderVout), 10)
			remAddr = st.RemainderAddress
			remValue = strconv.FormatUint(st.RemainderValue, 10)
		}
		rows = append(rows, []string{
			strconv.Itoa(st.Hop),
			st.TxID,
			strconv.FormatUint(uint64(st.Vout), 10),
			strconv.FormatUint(st.Value, 10),
			utils.FormatBTC(st.Value),
			string(st.ValueSource),
			st.SpendingTxID,
			remVout,
			remAddr,
			remValue,
			smalls,
			string(st.End),
		})
	}
	header := []string{
		"hop", "txid", "vout", "value_sats", "value_btc", "value_source",
		"spent_in_tx", "remainder_vout", "remainder_address", "remainder_value",
		"small_outputs_json", "end",
	}
	return s.writeCSV(runID, FilePeelChain, header, rows)
}

// WriteAddressClusters writes the seed-address clustering view with per-address
// possible-change flag counts.
func (s *Store) WriteAddressClusters(runID string, clusters []model.Cluster, flagCounts map[string]int) error {
	var rows [][]string
	for _, c := range clusters {
		for _, m := range c.Members {
			rows = append(rows, []string{c.ID, m, MembershipConfirmed, strconv.Itoa(flagCounts[m])})
		}
		for _, p := range c.PossibleChange {
			rows = append(rows, []string{c.ID, p, MembershipPossibleChange, strconv.Itoa(flagCounts[p])})
		}
	}
	header := []string{"cluster_id", "member_address", "membership", "flag_count"}
	return s.writeCSV(runID, FileAddressClusters, header, rows)
}

// encodeJSONCell marshals v for embedding in a CSV cell. Empty collections
// encode as [] rather than null.
func encodeJSONCell(v any, n int) (string, error) {
	if n == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Store) writeCSV(runID, name string, header []string, rows [][]string) (err error) {
	if err := os.MkdirAll(s.RunDir(runID), 0o755); err != nil {
		return fmt.Errorf("create run dir: %w", err)
	}

	f, err := os.Create(s.ArtifactPath(runID, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", name, cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s row: %w", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	return nil
}
