package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"flightly/internal/fares"
	"flightly/internal/seats"
)

var (
	// ErrStepViolation is a programming error: a caller tried to skip a
	// wizard state whose guard has not been satisfied. Fails fast, not
	// recoverable by the user.
	ErrStepViolation = errors.New("wizard step violation")

	// ErrSessionCompleted rejects any mutation after a successful payment:
	// the draft is immutable once the reservation exists.
	ErrSessionCompleted = errors.New("booking session already completed")

	// ErrSeatOccupied rejects selecting a seat the occupancy snapshot marks
	// as taken.
	ErrSeatOccupied = errors.New("seat is occupied")
)

// NewSession mounts a wizard over a flight and fare choice. The draft starts
// empty except for its flight/fare seed; the occupancy slice is the
// point-in-time snapshot used for the whole session.
func NewSession(flightID uuid.UUID, flightNumber string, departure time.Time, basePrice float64, tier fares.Tier, layout seats.Layout, occupancy []bool) (*Session, error) {
	amount, err := fares.Price(basePrice, tier)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Session{
		ID:            uuid.New(),
		FlightID:      flightID,
		FlightNumber:  flightNumber,
		DepartureTime: departure,
		BasePrice:     basePrice,
		Amount:        amount,
		Layout:        layout,
		Occupancy:     occupancy,
		Step:          StepPassengerInfo,
		Draft: Draft{
			FlightNumber: flightNumber,
			FareType:     tier,
			Gender:       "male", // form default, as on the passenger form
		},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SubmitPassenger gates and merges one passenger form submission, then moves
// the pointer to seat selection. Only the passenger fields are written: a
// previously chosen seat survives re-entry of this step.
func (s *Session) SubmitPassenger(details PassengerDetails, now time.Time) error {
	if s.Step.IsTerminal() {
		return ErrSessionCompleted
	}

	if fieldErr := ValidateDetails(details, now); fieldErr != nil {
		return fieldErr
	}

	s.Draft.Name = details.Name
	s.Draft.Surname = details.Surname
	s.Draft.Email = details.Email
	s.Draft.Phone = details.Phone
	s.Draft.NationalID = details.NationalID
	s.Draft.BirthDate = details.BirthDate
	s.Draft.Disabled = details.Disabled
	if details.Gender != "" {
		s.Draft.Gender = details.Gender
	}

	s.Step = StepSeatSelection
	s.touch(now)
	return nil
}

// SelectSeat records the chosen coordinate and moves the pointer to payment.
// The flat index conversion is deferred to submission time so the selection
// key stays decoupled from the wire format.
func (s *Session) SelectSeat(coord seats.Coordinate, now time.Time) error {
	if s.Step.IsTerminal() {
		return ErrSessionCompleted
	}
	if s.Step == StepPassengerInfo {
		return fmt.Errorf("%w: seat selection before passenger validation", ErrStepViolation)
	}

	index, err := seats.ToIndex(coord, s.Layout)
	if err != nil {
		return err
	}
	if index >= len(s.Occupancy) {
		return fmt.Errorf("%w: index %d outside cabin of %d", seats.ErrSeatOutOfRange, index, len(s.Occupancy))
	}
	if s.Occupancy[index] {
		return ErrSeatOccupied
	}

	s.Draft.Seat = &coord
	s.Step = StepPayment
	s.touch(now)
	return nil
}

// Navigate moves the step pointer without touching the draft. Backward moves
// are always allowed in non-terminal states; forward moves must have their
// guards already satisfied (no state skipping).
func (s *Session) Navigate(target Step, now time.Time) error {
	if s.Step.IsTerminal() {
		return ErrSessionCompleted
	}

	targetRank, ok := stepRank[target]
	if !ok {
		return fmt.Errorf("%w: %q is not a navigable step", ErrStepViolation, target)
	}

	if targetRank >= stepRank[StepSeatSelection] {
		if fieldErr := ValidateDraft(s.Draft, now); fieldErr != nil {
			return fmt.Errorf("%w: passenger information incomplete", ErrStepViolation)
		}
	}
	if targetRank >= stepRank[StepPayment] && s.Draft.Seat == nil {
		return fmt.Errorf("%w: no seat selected", ErrStepViolation)
	}

	s.Step = target
	s.touch(now)
	return nil
}

// CompleteWithPNR finalizes the session after an approved payment. The draft
// is immutable from here on.
func (s *Session) CompleteWithPNR(pnr string, now time.Time) error {
	if s.Step != StepPayment && s.Step != StepFailed {
		return fmt.Errorf("%w: payment completion from %q", ErrStepViolation, s.Step)
	}

	s.PNR = pnr
	s.Step = StepCompleted
	s.FailureKind = ""
	s.FailureMessage = ""
	s.touch(now)
	return nil
}

// Fail records a declined or errored payment. The session stays re-enterable:
// passenger and seat data are retained and payment may be retried.
func (s *Session) Fail(kind FailureKind, message string, now time.Time) error {
	if s.Step != StepPayment && s.Step != StepFailed {
		return fmt.Errorf("%w: payment failure from %q", ErrStepViolation, s.Step)
	}

	s.Step = StepFailed
	s.FailureKind = kind
	s.FailureMessage = message
	s.touch(now)
	return nil
}

// ReadyForPayment reports whether a charge may be attempted now: either the
// pointer sits on the payment step, or a previous attempt failed and this is
// a retry.
func (s *Session) ReadyForPayment() bool {
	return s.Step == StepPayment || s.Step == StepFailed
}

func (s *Session) touch(now time.Time) {
	s.UpdatedAt = now
}
