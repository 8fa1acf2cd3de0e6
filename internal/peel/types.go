package peel

import (
	"context"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// SpendSource is the slice of the chain data port a traversal needs.
	SpendSource interface {
		FetchTransaction(ctx context.Context, txid string) (*model.Transaction, error)
		FetchSpend(ctx context.Context, txid string, vout uint32) (model.SpendInfo, error)
	}
)
