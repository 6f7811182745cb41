package input

import (
	"context"

	"sojasapi/internal/domain/entities"
)

type EventUseCase interface {
	ListCached(ctx context.Context) ([]entities.EventView, error)
	ListFresh(ctx context.Context, page int) ([]entities.EventView, error)
}

type SyncUseCase interface {
	SyncAll(ctx context.Context) (entities.SyncSummary, error)
}
