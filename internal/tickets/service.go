package tickets

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"flightly/internal/fares"
	"flightly/internal/payment"
	"flightly/internal/seats"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrSeatTaken is the lost seat race: another reservation landed on the
	// same seat between snapshot and submission. Reported as a booking
	// decline, never silently accepted.
	ErrSeatTaken = errors.New("seat is already taken")

	ErrInvalidSubmission = errors.New("invalid reservation submission")
)

// FlightInfo is the slice of flight data the reservation path needs.
// Implemented over the flights service via an adapter to avoid a circular
// dependency.
type FlightInfo struct {
	ID                 uuid.UUID
	FlightNumber       string
	DepartureAirport   string
	DestinationAirport string
	DepartureTime      time.Time
	ArrivalTime        time.Time
	Price              float64
	GateNumber         *string
	Layout             seats.Layout
	TotalSeats         int
}

// FlightReader resolves flight records for reservations and check-in.
type FlightReader interface {
	FlightByNumber(ctx context.Context, flightNumber string) (*FlightInfo, error)
}

// Publisher announces confirmed reservations. Nil-safe at the call site so
// the service keeps working when messaging is down.
type Publisher interface {
	PublishReservationConfirmed(ctx context.Context, ticket *Ticket, flight *FlightInfo) error
}

// PassengerPayload is the passenger half of a reservation submission
// (spec'd wire shape of POST /passengers).
type PassengerPayload struct {
	FlightNumber string `json:"flight_number" binding:"required"`
	FareType     string `json:"fare_type" binding:"required"`
	NationalID   string `json:"national_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Surname      string `json:"surname" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Gender       string `json:"gender"`
	BirthDate    string `json:"birth_date" binding:"required"` // YYYY-MM-DD
	Seat         int    `json:"seat"`
	Child        bool   `json:"child"`
	Disabled     bool   `json:"disabled"`
}

// CreateReservationRequest is the full submission: passenger plus raw card
// entry fields.
type CreateReservationRequest struct {
	Passenger  PassengerPayload `json:"passenger" binding:"required"`
	CreditCard payment.Card     `json:"credit_card" binding:"required"`
}

// Service interface defines the contract for reservation persistence and lookup
type Service interface {
	CreateReservation(ctx context.Context, req *CreateReservationRequest) (*Ticket, error)
	FindByPNR(ctx context.Context, pnr, surname string) (*CheckInRecord, error)
	BookedSeatIndexes(ctx context.Context, flightID uuid.UUID) ([]int, error)
}

type service struct {
	repo      Repository
	flights   FlightReader
	gateway   payment.Client
	publisher Publisher
}

func NewService(repo Repository, flights FlightReader, gateway payment.Client, publisher Publisher) Service {
	return &service{
		repo:      repo,
		flights:   flights,
		gateway:   gateway,
		publisher: publisher,
	}
}

// CreateReservation charges the card and persists the ticket. The charge is
// an opaque remote call; its three outcomes (approved, declined, unreachable)
// propagate unchanged so the transport layer can map them.
func (s *service) CreateReservation(ctx context.Context, req *CreateReservationRequest) (*Ticket, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	flight, err := s.flights.FlightByNumber(ctx, req.Passenger.FlightNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve flight %q: %w", req.Passenger.FlightNumber, err)
	}

	tier, err := fares.ParseTier(req.Passenger.FareType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}

	if req.Passenger.Seat < 0 || req.Passenger.Seat >= flight.TotalSeats {
		return nil, fmt.Errorf("%w: seat index %d outside cabin of %d", ErrInvalidSubmission, req.Passenger.Seat, flight.TotalSeats)
	}

	birthDate, err := time.Parse("2006-01-02", req.Passenger.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad birth date %q", ErrInvalidSubmission, req.Passenger.BirthDate)
	}

	// The canonical (unrounded) tier price is the charged amount.
	amount, err := fares.Price(flight.Price, tier)
	if err != nil {
		return nil, err
	}

	pnr, err := generatePNR()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNR: %w", err)
	}

	charge, err := s.gateway.Charge(ctx, &payment.ChargeRequest{
		Amount:    amount,
		Currency:  "TRY",
		Reference: pnr,
		Card:      req.CreditCard,
	})
	if err != nil {
		return nil, err
	}

	ticket := &Ticket{
		PNR:           pnr,
		FlightID:      flight.ID,
		FlightNumber:  flight.FlightNumber,
		Seat:          req.Passenger.Seat,
		Name:          req.Passenger.Name,
		Surname:       req.Passenger.Surname,
		Email:         req.Passenger.Email,
		Phone:         req.Passenger.Phone,
		Gender:        req.Passenger.Gender,
		NationalID:    req.Passenger.NationalID,
		BirthDate:     birthDate,
		Child:         req.Passenger.Child,
		Disabled:      req.Passenger.Disabled,
		FareType:      string(tier),
		Amount:        amount,
		TransactionID: charge.TransactionID,
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		if isDuplicateSeat(err) {
			return nil, ErrSeatTaken
		}
		return nil, fmt.Errorf("failed to persist ticket: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishReservationConfirmed(ctx, ticket, flight); err != nil {
			// Messaging is best-effort; the reservation already exists.
			log.Printf("failed to publish reservation event for %s: %v", ticket.PNR, err)
		}
	}

	return ticket, nil
}

// FindByPNR resolves a PNR and surname pair to a check-in record. Surname
// comparison is case-insensitive.
func (s *service) FindByPNR(ctx context.Context, pnr, surname string) (*CheckInRecord, error) {
	ticket, err := s.repo.GetByPNR(ctx, strings.ToUpper(strings.TrimSpace(pnr)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	if !strings.EqualFold(ticket.Surname, strings.TrimSpace(surname)) {
		return nil, ErrTicketNotFound
	}

	record := &CheckInRecord{Ticket: *ticket}

	flight, err := s.flights.FlightByNumber(ctx, ticket.FlightNumber)
	if err == nil {
		record.Flight = &FlightDetails{
			FlightNumber:       flight.FlightNumber,
			DepartureAirport:   flight.DepartureAirport,
			DestinationAirport: flight.DestinationAirport,
			DepartureTime:      flight.DepartureTime,
			ArrivalTime:        flight.ArrivalTime,
			GateNumber:         flight.GateNumber,
		}

		if coord, coordErr := seats.ToCoordinate(ticket.Seat, flight.Layout); coordErr == nil {
			record.SeatLabel = seats.ToLabel(&coord, flight.Layout)
		}
	}

	return record, nil
}

// BookedSeatIndexes implements the flights occupancy source.
func (s *service) BookedSeatIndexes(ctx context.Context, flightID uuid.UUID) ([]int, error) {
	return s.repo.GetSeatIndexes(ctx, flightID)
}

func validateSubmission(req *CreateReservationRequest) error {
	p := req.Passenger
	for field, value := range map[string]string{
		"flight_number": p.FlightNumber,
		"national_id":   p.NationalID,
		"name":          p.Name,
		"surname":       p.Surname,
		"email":         p.Email,
		"phone":         p.Phone,
		"birth_date":    p.BirthDate,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: missing %s", ErrInvalidSubmission, field)
		}
	}

	// Card fields are presence-checked only; validation is the gateway's job.
	card := req.CreditCard
	for field, value := range map[string]string{
		"card_number":         card.CardNumber,
		"card_holder_name":    card.CardHolderName,
		"card_holder_surname": card.CardHolderSurname,
		"expiration_month":    card.ExpirationMonth,
		"expiration_year":     card.ExpirationYear,
		"cvv":                 card.CVV,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: missing %s", ErrInvalidSubmission, field)
		}
	}

	return nil
}

// pnrAlphabet avoids characters that read ambiguously on a boarding pass.
const pnrAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generatePNR generates a six-character reservation code.
func generatePNR() (string, error) {
	code := make([]byte, 6)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(pnrAlphabet))))
		if err != nil {
			return "", err
		}
		code[i] = pnrAlphabet[num.Int64()]
	}
	return string(code), nil
}

func isDuplicateSeat(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key value")
}
