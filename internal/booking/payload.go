package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"flightly/internal/payment"
	"flightly/internal/seats"
	"flightly/internal/tickets"
)

// ErrIncompleteDraft guards submission building against a draft that slipped
// past the wizard gating. Unreachable in normal operation; kept as a
// defensive invariant check.
var ErrIncompleteDraft = errors.New("booking draft is incomplete")

// childAgeLimit: passengers younger than this at travel time fly as children.
const childAgeLimit = 10

// BuildSubmission assembles the network-bound reservation payload from a
// completed draft and the raw card entry fields. Normalizations happen here,
// once: whitespace-free phone, derived child flag, seat coordinate flattened
// to its wire index.
func BuildSubmission(session *Session, card payment.Card) (*tickets.CreateReservationRequest, error) {
	draft := session.Draft

	if draft.Seat == nil {
		return nil, fmt.Errorf("%w: no seat selected", ErrIncompleteDraft)
	}
	if draft.BirthDate == nil {
		return nil, fmt.Errorf("%w: no birth date", ErrIncompleteDraft)
	}
	for field, value := range map[string]string{
		"flight_number": draft.FlightNumber,
		"national_id":   draft.NationalID,
		"name":          draft.Name,
		"surname":       draft.Surname,
		"email":         draft.Email,
		"phone":         draft.Phone,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%w: missing %s", ErrIncompleteDraft, field)
		}
	}

	seatIndex, err := seats.ToIndex(*draft.Seat, session.Layout)
	if err != nil {
		return nil, err
	}

	return &tickets.CreateReservationRequest{
		Passenger: tickets.PassengerPayload{
			FlightNumber: draft.FlightNumber,
			FareType:     string(draft.FareType),
			NationalID:   draft.NationalID,
			Name:         draft.Name,
			Surname:      draft.Surname,
			Email:        draft.Email,
			Phone:        stripWhitespace(draft.Phone),
			Gender:       draft.Gender,
			BirthDate:    draft.BirthDate.Format("2006-01-02"),
			Seat:         seatIndex,
			Child:        isChildAt(*draft.BirthDate, session.DepartureTime),
			Disabled:     draft.Disabled,
		},
		CreditCard: card,
	}, nil
}

// isChildAt reports whether a passenger born on birthDate is under the child
// age limit on the travel date. A passenger turning exactly ten on the
// travel date is not a child.
func isChildAt(birthDate, travelDate time.Time) bool {
	return travelDate.Before(birthDate.AddDate(childAgeLimit, 0, 0))
}
