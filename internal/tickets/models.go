package tickets

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is a finalized reservation: one passenger on one seat of one flight.
// The unique (flight_id, seat) index is what turns a lost seat race into a
// booking decline instead of a silent double booking.
type Ticket struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PNR          string    `gorm:"uniqueIndex;not null" json:"pnr_no"`
	FlightID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_flight_seat" json:"flight_id"`
	FlightNumber string    `gorm:"not null;index" json:"flight_number"`
	Seat         int       `gorm:"not null;uniqueIndex:idx_flight_seat" json:"seat"`

	Name       string    `gorm:"not null" json:"name"`
	Surname    string    `gorm:"not null;index" json:"surname"`
	Email      string    `gorm:"not null" json:"email"`
	Phone      string    `gorm:"not null" json:"phone"`
	Gender     string    `json:"gender"`
	NationalID string    `gorm:"not null" json:"national_id"`
	BirthDate  time.Time `gorm:"not null" json:"birth_date"`
	Child      bool      `json:"child"`
	Disabled   bool      `json:"disabled"`

	FareType      string  `gorm:"not null" json:"fare_type"`
	Amount        float64 `gorm:"not null" json:"amount"`
	TransactionID string  `json:"transaction_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Ticket
func (Ticket) TableName() string {
	return "tickets"
}

// FlightDetails is the slice of flight data shown on a check-in card.
// Declared here to avoid a circular dependency on the flights package.
type FlightDetails struct {
	FlightNumber       string    `json:"flight_number"`
	DepartureAirport   string    `json:"departure_airport"`
	DestinationAirport string    `json:"destination_airport"`
	DepartureTime      time.Time `json:"departure_time"`
	ArrivalTime        time.Time `json:"arrival_time"`
	GateNumber         *string   `json:"gate_number,omitempty"`
}

// CheckInRecord combines a ticket with its flight for check-in display.
type CheckInRecord struct {
	Ticket    Ticket         `json:"checkin"`
	Flight    *FlightDetails `json:"flight,omitempty"`
	SeatLabel string         `json:"seat_label"`
}
