package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"flightly/internal/fares"
	"flightly/internal/flights"
	"flightly/internal/payment"
	"flightly/internal/seats"
	"flightly/internal/tickets"
)

// ErrPaymentInFlight rejects a duplicate payment submission while a previous
// one for the same session is still being processed.
var ErrPaymentInFlight = errors.New("payment already in progress for this session")

// Service interface defines the contract for the booking wizard lifecycle
type Service interface {
	StartSession(ctx context.Context, flightID uuid.UUID, tier fares.Tier) (*Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*Session, error)
	SubmitPassenger(ctx context.Context, id uuid.UUID, details PassengerDetails) (*Session, error)
	SelectSeat(ctx context.Context, id uuid.UUID, coord seats.Coordinate) (*Session, error)
	Navigate(ctx context.Context, id uuid.UUID, target Step) (*Session, error)
	Pay(ctx context.Context, id uuid.UUID, card payment.Card) (*Session, error)
	AbandonSession(ctx context.Context, id uuid.UUID) error
}

type service struct {
	store   Store
	flights flights.Service
	tickets tickets.Service
	now     func() time.Time
}

func NewService(store Store, flightService flights.Service, ticketService tickets.Service) Service {
	return &service{
		store:   store,
		flights: flightService,
		tickets: ticketService,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// StartSession mounts a new wizard over a flight: the flight and fare are
// resolved once and the occupancy snapshot is taken here, then the session
// lives in the store until completion or expiry.
func (s *service) StartSession(ctx context.Context, flightID uuid.UUID, tier fares.Tier) (*Session, error) {
	flight, err := s.flights.GetFlight(flightID)
	if err != nil {
		return nil, err
	}

	occupancy, layout, err := s.flights.Occupancy(ctx, flightID)
	if err != nil {
		return nil, err
	}

	session, err := NewSession(flight.ID, flight.FlightNumber, flight.DepartureTime, flight.Price, tier, layout, occupancy)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist booking session: %w", err)
	}

	log.Printf("Booking session %s started for flight %s (%s)", session.ID, session.FlightNumber, tier)

	return session, nil
}

func (s *service) GetSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.store.Get(ctx, id)
}

func (s *service) SubmitPassenger(ctx context.Context, id uuid.UUID, details PassengerDetails) (*Session, error) {
	return s.mutate(ctx, id, func(session *Session, now time.Time) error {
		return session.SubmitPassenger(details, now)
	})
}

func (s *service) SelectSeat(ctx context.Context, id uuid.UUID, coord seats.Coordinate) (*Session, error) {
	return s.mutate(ctx, id, func(session *Session, now time.Time) error {
		return session.SelectSeat(coord, now)
	})
}

func (s *service) Navigate(ctx context.Context, id uuid.UUID, target Step) (*Session, error) {
	return s.mutate(ctx, id, func(session *Session, now time.Time) error {
		return session.Navigate(target, now)
	})
}

// Pay drives one payment attempt end to end: lock, build the submission from
// the draft, create the reservation, then record the outcome on the session.
// A failed attempt leaves the session re-enterable with the draft intact.
func (s *service) Pay(ctx context.Context, id uuid.UUID, card payment.Card) (*Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Step.IsTerminal() {
		return session, ErrSessionCompleted
	}
	if !session.ReadyForPayment() {
		return session, fmt.Errorf("%w: payment from %q", ErrStepViolation, session.Step)
	}

	acquired, err := s.store.AcquirePaymentLock(ctx, id)
	if err != nil {
		return session, fmt.Errorf("failed to acquire payment lock: %w", err)
	}
	if !acquired {
		return session, ErrPaymentInFlight
	}
	defer func() {
		if releaseErr := s.store.ReleasePaymentLock(context.WithoutCancel(ctx), id); releaseErr != nil {
			log.Printf("Warning: failed to release payment lock for session %s: %v", id, releaseErr)
		}
	}()

	submission, err := BuildSubmission(session, card)
	if err != nil {
		return session, err
	}

	now := s.now()
	ticket, reserveErr := s.tickets.CreateReservation(ctx, submission)
	if reserveErr != nil {
		kind, message := classifyFailure(reserveErr)
		if failErr := session.Fail(kind, message, now); failErr != nil {
			return session, failErr
		}
		if saveErr := s.store.Save(ctx, session); saveErr != nil {
			log.Printf("Warning: failed to persist failed session %s: %v", id, saveErr)
		}

		log.Printf("Payment attempt for session %s failed (%s): %v", id, kind, reserveErr)
		return session, reserveErr
	}

	if err := session.CompleteWithPNR(ticket.PNR, now); err != nil {
		return session, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return session, fmt.Errorf("failed to persist completed session: %w", err)
	}

	log.Printf("Booking session %s completed with PNR %s", id, ticket.PNR)

	return session, nil
}

func (s *service) AbandonSession(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

func (s *service) mutate(ctx context.Context, id uuid.UUID, apply func(*Session, time.Time) error) (*Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := apply(session, s.now()); err != nil {
		return session, err
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist booking session: %w", err)
	}
	return session, nil
}

// classifyFailure maps a reservation error onto the two user-facing failure
// kinds: a structured refusal keeps its message, everything else collapses
// into a generic retryable error.
func classifyFailure(err error) (FailureKind, string) {
	var decline *payment.DeclineError
	if errors.As(err, &decline) {
		return FailureDeclined, decline.Message
	}
	if errors.Is(err, tickets.ErrSeatTaken) {
		return FailureDeclined, "seat_already_taken"
	}
	return FailureError, "something went wrong, please try again"
}
