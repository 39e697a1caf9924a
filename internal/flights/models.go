package flights

import (
	"time"

	"github.com/google/uuid"

	"flightly/internal/planes"
)

// Flight is a scheduled flight. Records are immutable from the point of view
// of a booking session: fetched once and never mutated by the wizard.
type Flight struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FlightNumber       string    `gorm:"uniqueIndex;not null" json:"flight_number"`
	DepartureAirport   string    `gorm:"not null;index:idx_flights_route" json:"departure_airport"`
	DestinationAirport string    `gorm:"not null;index:idx_flights_route" json:"destination_airport"`
	DepartureTime      time.Time `gorm:"not null;index" json:"departure_time"`
	ArrivalTime        time.Time `gorm:"not null" json:"arrival_time"`
	Price              float64   `gorm:"not null" json:"price"`
	GateNumber         *string   `json:"gate_number,omitempty"`
	PlaneID            uuid.UUID `gorm:"type:uuid" json:"plane_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Plane *planes.Plane `json:"plane,omitempty" gorm:"foreignKey:PlaneID"`
}

// TableName sets the table name for Flight
func (Flight) TableName() string {
	return "flights"
}

// FlightListQuery filters the flight listing.
type FlightListQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
	Date string `form:"date"` // YYYY-MM-DD
}
