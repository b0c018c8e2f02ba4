package repository

import (
	"context"

	"crewtravel-service/internal/domain/entity"
)

// CrewRepository provides access to the crew database for roster matching.
type CrewRepository interface {
	FindAll(ctx context.Context) ([]*entity.CrewMember, error)
}
