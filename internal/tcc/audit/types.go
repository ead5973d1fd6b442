package audit

import (
	"context"

	"github.com/goodnatureofminers/tcc-settler/internal/tcc/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	SettlementWriter interface {
		InsertSettlements(ctx context.Context, settlements []model.Settlement) error
	}
	Metrics interface {
		ObserveDropped(records int)
		ObserveTaskFailure(reason string)
		ObserveTaskSkipped()
	}
)
