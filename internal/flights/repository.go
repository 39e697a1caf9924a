package flights

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(flight *Flight) error
	GetByID(id uuid.UUID) (*Flight, error)
	GetByFlightNumber(flightNumber string) (*Flight, error)
	GetAll(query FlightListQuery) ([]Flight, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(flight *Flight) error {
	return r.db.Create(flight).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Flight, error) {
	var flight Flight
	err := r.db.Where("id = ?", id).First(&flight).Error
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (r *repository) GetByFlightNumber(flightNumber string) (*Flight, error) {
	var flight Flight
	err := r.db.Where("flight_number = ?", flightNumber).First(&flight).Error
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (r *repository) GetAll(query FlightListQuery) ([]Flight, error) {
	db := r.db.Order("departure_time")

	if query.From != "" {
		db = db.Where("departure_airport = ?", query.From)
	}
	if query.To != "" {
		db = db.Where("destination_airport = ?", query.To)
	}
	if query.Date != "" {
		day, err := time.Parse("2006-01-02", query.Date)
		if err == nil {
			db = db.Where("departure_time >= ? AND departure_time < ?", day, day.AddDate(0, 0, 1))
		}
	}

	var flights []Flight
	err := db.Find(&flights).Error
	return flights, err
}
