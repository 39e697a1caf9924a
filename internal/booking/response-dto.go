package booking

import (
	"time"

	"flightly/internal/fares"
	"flightly/internal/seats"
)

type SessionResponse struct {
	ID            string    `json:"id"`
	FlightID      string    `json:"flight_id"`
	FlightNumber  string    `json:"flight_number"`
	DepartureTime time.Time `json:"departure_time"`
	FareType      string    `json:"fare_type"`
	Amount        float64   `json:"amount"`
	Step          string    `json:"step"`

	Passenger PassengerView  `json:"passenger"`
	Seat      *SeatView      `json:"seat,omitempty"`
	SeatMap   *seats.MapView `json:"seat_map,omitempty"`

	PNR     string       `json:"pnr,omitempty"`
	Failure *FailureView `json:"failure,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PassengerView struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Gender     string `json:"gender"`
	NationalID string `json:"national_id"`
	BirthDate  string `json:"birth_date,omitempty"` // YYYY-MM-DD
	Disabled   bool   `json:"disabled"`
}

type SeatView struct {
	Label string `json:"label"`
	Index int    `json:"index"`
}

type FailureView struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ToSessionResponse maps a stored session onto the wire shape. The amount is
// rounded for display here; the session keeps the canonical unrounded price.
// The seat map is rendered from the session's occupancy snapshot only while
// the wizard is on the seat selection step.
func ToSessionResponse(session *Session) SessionResponse {
	resp := SessionResponse{
		ID:            session.ID.String(),
		FlightID:      session.FlightID.String(),
		FlightNumber:  session.FlightNumber,
		DepartureTime: session.DepartureTime,
		FareType:      string(session.Draft.FareType),
		Amount:        fares.DisplayPrice(session.Amount),
		Step:          string(session.Step),
		Passenger: PassengerView{
			Name:       session.Draft.Name,
			Surname:    session.Draft.Surname,
			Email:      session.Draft.Email,
			Phone:      session.Draft.Phone,
			Gender:     session.Draft.Gender,
			NationalID: session.Draft.NationalID,
			Disabled:   session.Draft.Disabled,
		},
		PNR:       session.PNR,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}

	if session.Draft.BirthDate != nil {
		resp.Passenger.BirthDate = session.Draft.BirthDate.Format("2006-01-02")
	}

	if session.Draft.Seat != nil {
		if index, err := seats.ToIndex(*session.Draft.Seat, session.Layout); err == nil {
			resp.Seat = &SeatView{
				Label: seats.ToLabel(session.Draft.Seat, session.Layout),
				Index: index,
			}
		}
	}

	if session.Step == StepSeatSelection {
		if view, err := seats.Render(session.Occupancy, session.Layout); err == nil {
			resp.SeatMap = view
		}
	}

	if session.FailureKind != "" {
		resp.Failure = &FailureView{
			Kind:    string(session.FailureKind),
			Message: session.FailureMessage,
		}
	}

	return resp
}
