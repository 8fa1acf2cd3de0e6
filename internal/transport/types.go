package transport

import (
	"context"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/service"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// AnalysisRunner executes analysis runs. internal/service implements it.
	AnalysisRunner interface {
		AnalyzeTxIDs(ctx context.Context, req service.AnalyzeRequest) (service.AnalyzeResult, error)
		ClusterFromAddress(ctx context.Context, req service.ClusterRequest) (service.ClusterResult, error)
		Peel(ctx context.Context, req service.PeelRequest) (service.PeelRunResult, error)
	}

	// ArtifactLocator resolves run artifacts on disk. internal/report
	// implements it.
	ArtifactLocator interface {
		ArtifactPath(runID, name string) string
	}
)
