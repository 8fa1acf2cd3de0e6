// Package report manages per-run output directories and the CSV artifacts
// written into them.
package report

import (
	"encoding/hex"
	"path/filepath"

	"github.com/google/uuid"
)

// Artifact file names within a run directory.
const (
	FileBipartiteEdges  = "bipartite_edges.csv"
	FileEvidenceEdges   = "evidence_address_to_address.csv"
	FileClusters        = "clusters.csv"
	FileTxFlags         = "tx_flags.csv"
	FilePeelChain       = "peel_chain.csv"
	FileAddressClusters = "clusters_from_address.csv"
)

// Membership values in cluster artifacts.
const (
	MembershipConfirmed      = "confirmed"
	MembershipPossibleChange = "possible_change"
)

// NewRunID returns a fresh 12-character lowercase hex run identifier.
func NewRunID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:6])
}

// IsArtifact reports whether name is one of the artifacts a run can produce.
// Download handlers use it to reject arbitrary file names.
func IsArtifact(name string) bool {
	switch name {
	case FileBipartiteEdges, FileEvidenceEdges, FileClusters,
		FileTxFlags, FilePeelChain, FileAddressClusters:
		return true
	}
	return false
}

// Store writes run artifacts under a fixed output root.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// RunDir returns the directory holding one run's artifacts.
func (s *Store) RunDir(runID string) string {
	return filepath.Join(s.root, runID)
}

// ArtifactPath returns the on-disk path of a run artifact. Callers validate
// runID and name before serving the file.
func (s *Store) ArtifactPath(runID, name string) string {
	return filepath.Join(s.root, runID, name)
}
