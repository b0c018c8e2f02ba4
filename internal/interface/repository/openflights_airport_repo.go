package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"crewtravel-service/internal/domain/entity"
	"crewtravel-service/pkg/logger"
)

// DefaultAirportsDataURL is the OpenFlights public airport dataset; each
// line carries IATA, ICAO and the IANA timezone name.
const DefaultAirportsDataURL = "https://raw.githubusercontent.com/jpatokal/openflights/master/data/airports.dat"

// OpenFlightsDirectory is an AirportDirectory backed by the OpenFlights
// dataset, fetched over HTTP and cached in memory with a max-age refresh
// policy. The first lookup after expiry pays the fetch; concurrent lookups
// share one cache.
type OpenFlightsDirectory struct {
	url    string
	maxAge time.Duration
	client *http.Client
	logger logger.Logger

	mu        sync.Mutex
	fetchedAt time.Time
	byIATA    map[string]*entity.Airport
	byICAO    map[string]*entity.Airport
}

// NewOpenFlightsDirectory creates a directory over the OpenFlights dataset.
func NewOpenFlightsDirectory(url string, maxAge time.Duration, client *http.Client, logger logger.Logger) *OpenFlightsDirectory {
	if url == "" {
		url = DefaultAirportsDataURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &OpenFlightsDirectory{
		url:    url,
		maxAge: maxAge,
		client: client,
		logger: logger,
	}
}

// GetByCode resolves an IATA code first, then ICAO.
func (d *OpenFlightsDirectory) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("empty airport code")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.refreshLocked(ctx); err != nil {
		// A stale cache still beats no answer.
		if d.byIATA == nil {
			return nil, err
		}
		d.logger.Warn("Airport dataset refresh failed, serving stale cache", "error", err)
	}

	if airport, ok := d.byIATA[code]; ok {
		return airport, nil
	}
	if airport, ok := d.byICAO[code]; ok {
		return airport, nil
	}
	return nil, fmt.Errorf("airport %q not in directory", code)
}

func (d *OpenFlightsDirectory) refreshLocked(ctx context.Context) error {
	if d.byIATA != nil && time.Since(d.fetchedAt) < d.maxAge {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch airports dataset: status %d", resp.StatusCode)
	}

	byIATA, byICAO, err := parseAirportsDat(resp.Body)
	if err != nil {
		return err
	}
	d.byIATA = byIATA
	d.byICAO = byICAO
	d.fetchedAt = time.Now()
	d.logger.Info("Airport dataset refreshed", "iata", len(byIATA), "icao", len(byICAO))
	return nil
}

// parseAirportsDat reads the airports.dat CSV. Fields: id, name, city,
// country, IATA, ICAO, lat, lon, alt, offset, DST, tz, type, source.
// Rows without a usable code or timezone are skipped.
func parseAirportsDat(r io.Reader) (map[string]*entity.Airport, map[string]*entity.Airport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	byIATA := make(map[string]*entity.Airport)
	byICAO := make(map[string]*entity.Airport)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if len(record) < 12 {
			continue
		}
		iata := cleanDatField(record[4])
		icao := cleanDatField(record[5])
		tz := cleanDatField(record[11])
		if (iata == "" && icao == "") || tz == "" {
			continue
		}
		airport := &entity.Airport{
			IATA:    iata,
			ICAO:    icao,
			Name:    record[1],
			City:    record[2],
			Country: record[3],
			TzName:  tz,
		}
		if iata != "" {
			byIATA[strings.ToUpper(iata)] = airport
		}
		if icao != "" {
			byICAO[strings.ToUpper(icao)] = airport
		}
	}
	return byIATA, byICAO, nil
}

func cleanDatField(s string) string {
	s = strings.TrimSpace(s)
	if s == `\N` {
		return ""
	}
	return s
}
