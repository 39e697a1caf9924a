package booking

import (
	"time"

	"github.com/google/uuid"

	"flightly/internal/fares"
	"flightly/internal/seats"
)

// Step is the wizard's position over the booking draft. The wizard is a step
// pointer over one persistent draft, not a stack of independent forms.
type Step string

const (
	StepPassengerInfo Step = "PASSENGER_INFO"
	StepSeatSelection Step = "SEAT_SELECTION"
	StepPayment       Step = "PAYMENT"
	StepCompleted     Step = "COMPLETED"
	StepFailed        Step = "FAILED"
)

// stepRank orders the three enterable steps for gating checks.
var stepRank = map[Step]int{
	StepPassengerInfo: 0,
	StepSeatSelection: 1,
	StepPayment:       2,
}

// IsTerminal reports whether no further transition is possible. Failed is
// not terminal: payment may be retried with the draft intact.
func (s Step) IsTerminal() bool {
	return s == StepCompleted
}

// FailureKind distinguishes a structured gateway refusal from a connectivity
// loss so the client can present them differently.
type FailureKind string

const (
	FailureDeclined FailureKind = "DECLINED"
	FailureError    FailureKind = "ERROR"
)

// Draft is the mutable booking under construction, owned exclusively by one
// wizard session from mount to completion or abandonment.
type Draft struct {
	FlightNumber string            `json:"flight_number"`
	FareType     fares.Tier        `json:"fare_type"`
	NationalID   string            `json:"national_id"`
	Name         string            `json:"name"`
	Surname      string            `json:"surname"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	Gender       string            `json:"gender"`
	BirthDate    *time.Time        `json:"birth_date"`
	Disabled     bool              `json:"disabled"`
	Seat         *seats.Coordinate `json:"seat"`
}

// PassengerDetails carries one submission of the passenger form. Merging is
// a partial-field merge: seat choice and fare survive re-entry of this step.
type PassengerDetails struct {
	Name       string     `json:"name"`
	Surname    string     `json:"surname"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Gender     string     `json:"gender"`
	NationalID string     `json:"national_id"`
	BirthDate  *time.Time `json:"birth_date"`
	Disabled   bool       `json:"disabled"`
}

// Session is one booking attempt: the flight snapshot taken at mount, the
// occupancy snapshot, the draft and the step pointer. Serialized to redis
// between requests; never shared between wizard instances.
type Session struct {
	ID            uuid.UUID    `json:"id"`
	FlightID      uuid.UUID    `json:"flight_id"`
	FlightNumber  string       `json:"flight_number"`
	DepartureTime time.Time    `json:"departure_time"`
	BasePrice     float64      `json:"base_price"`
	Amount        float64      `json:"amount"` // canonical fare price, charged as-is
	Layout        seats.Layout `json:"layout"`
	Occupancy     []bool       `json:"occupancy"`

	Step  Step  `json:"step"`
	Draft Draft `json:"draft"`

	PNR            string      `json:"pnr,omitempty"`
	FailureKind    FailureKind `json:"failure_kind,omitempty"`
	FailureMessage string      `json:"failure_message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
