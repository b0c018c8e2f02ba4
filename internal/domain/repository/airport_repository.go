package repository

import (
	"context"

	"crewtravel-service/internal/domain/entity"
)

// AirportDirectory resolves a 3-letter IATA or 4-letter ICAO code to an
// airport with an IANA timezone name.
type AirportDirectory interface {
	GetByCode(ctx context.Context, code string) (*entity.Airport, error)
}
