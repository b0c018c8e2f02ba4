package airports

import (
	"context"
	"strings"
	"time"

	"crewtravel-service/internal/domain/repository"
	"crewtravel-service/pkg/logger"
)

// Localizer shifts stored instants to the wall clock of a port. Lookups go
// through the injected directory, so the offset is DST-aware: the same code
// yields different offsets depending on the flight date.
type Localizer struct {
	directory repository.AirportDirectory
	logger    logger.Logger
}

// NewLocalizer creates a localizer backed by an airport directory.
func NewLocalizer(directory repository.AirportDirectory, logger logger.Logger) *Localizer {
	return &Localizer{
		directory: directory,
		logger:    logger,
	}
}

// ToLocalTime returns the instant shifted by the port's UTC offset at that
// instant. Unknown or unresolvable codes return the input unchanged:
// partner data routinely contains unlisted or typo'd ports, so failing open
// is the normal outcome, not an error.
func (l *Localizer) ToLocalTime(ctx context.Context, instant *time.Time, code string) *time.Time {
	if instant == nil {
		return nil
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return instant
	}

	airport, err := l.directory.GetByCode(ctx, code)
	if err != nil || airport == nil || airport.TzName == "" {
		l.logger.Warn("Port not in airport directory, keeping GMT+0", "code", code)
		return instant
	}

	location, err := time.LoadLocation(airport.TzName)
	if err != nil {
		l.logger.Warn("Unknown IANA timezone, keeping GMT+0", "code", code, "tz", airport.TzName)
		return instant
	}

	_, offsetSecs := instant.In(location).Zone()
	shifted := instant.Add(time.Duration(offsetSecs) * time.Second)
	return &shifted
}
