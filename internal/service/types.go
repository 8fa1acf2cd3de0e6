package service

import (
	"context"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// ChainSource supplies chain data to analysis runs. internal/esplora
	// implements it.
	ChainSource interface {
		FetchTransaction(ctx context.Context, txid string) (*model.Transaction, error)
		FetchTransactions(ctx context.Context, txids []string) ([]*model.Transaction, []string, error)
		FetchAddressHistory(ctx context.Context, address, cursor string) (model.HistoryPage, error)
		FetchSpend(ctx context.Context, txid string, vout uint32) (model.SpendInfo, error)
	}

	// ArtifactStore persists run artifacts. internal/report implements it.
	ArtifactStore interface {
		WriteBipartiteEdges(runID string, edges []model.BipartiteEdge) error
		WriteEvidenceEdges(runID string, edges []model.EvidenceEdge) error
		WriteClusters(runID string, clusters []model.Cluster) error
		WriteTxFlags(runID string, flags []model.TxFlags) error
		WritePeelChain(runID string, steps []model.PeelStep) error
		WriteAddressClusters(runID string, clusters []model.Cluster, flagCounts map[string]int) error
	}
)
