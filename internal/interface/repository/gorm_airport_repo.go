package repository

import (
	"context"
	"strings"
	"time"

	"crewtravel-service/internal/domain/entity"
	"crewtravel-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportDirectory implements AirportDirectory against the airport
// reference table.
type GormAirportDirectory struct {
	db *gorm.DB
}

// NewGormAirportDirectory creates a new GORM airport directory.
func NewGormAirportDirectory(db *gorm.DB) repository.AirportDirectory {
	return &GormAirportDirectory{
		db: db,
	}
}

// AirportList GORM model for database mapping
type AirportList struct {
	gorm.Model
	ID          uint           `gorm:"primaryKey"`
	Iata        string         `gorm:"column:iata;index"`
	Icao        string         `gorm:"column:icao;index"`
	AirportName string         `gorm:"column:airport_name"`
	CityName    string         `gorm:"column:cityname"`
	Country     string         `gorm:"column:country"`
	TzName      string         `gorm:"column:tzname"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (AirportList) TableName() string {
	return "m_airport_list"
}

// GetByCode finds an airport by IATA code first, then ICAO.
func (r *GormAirportDirectory) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var airport AirportList
	result := r.db.WithContext(ctx).Unscoped().Where("iata = ?", code).First(&airport)
	if result.Error != nil {
		result = r.db.WithContext(ctx).Unscoped().Where("icao = ?", code).First(&airport)
		if result.Error != nil {
			return nil, result.Error
		}
	}

	return &entity.Airport{
		IATA:    airport.Iata,
		ICAO:    airport.Icao,
		Name:    airport.AirportName,
		City:    airport.CityName,
		Country: airport.Country,
		TzName:  airport.TzName,
	}, nil
}
