package repository

import (
	"context"

	"crewtravel-service/internal/domain/entity"
)

// TicketSnapshotRepository stores ticketing uploads. FindLatest returns
// snapshots newest first; the diff only ever needs the latest two.
type TicketSnapshotRepository interface {
	Insert(ctx context.Context, upload *entity.TicketUpload) (string, error)
	FindByID(ctx context.Context, id string) (*entity.TicketUpload, error)
	FindLatest(ctx context.Context, limit int) ([]*entity.TicketUpload, error)
	PruneKeep(ctx context.Context, keep int) error
}

// HotelSnapshotRepository stores hotel block uploads.
type HotelSnapshotRepository interface {
	Insert(ctx context.Context, upload *entity.HotelBlockUpload) (string, error)
	FindByID(ctx context.Context, id string) (*entity.HotelBlockUpload, error)
	FindLatest(ctx context.Context, limit int) ([]*entity.HotelBlockUpload, error)
	PruneKeep(ctx context.Context, keep int) error
}
