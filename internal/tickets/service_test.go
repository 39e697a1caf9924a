package tickets

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"flightly/internal/payment"
	"flightly/internal/seats"
)

type fakeRepo struct {
	tickets   map[string]*Ticket
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tickets: make(map[string]*Ticket)}
}

func (f *fakeRepo) Create(_ context.Context, ticket *Ticket) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.tickets {
		if existing.FlightID == ticket.FlightID && existing.Seat == ticket.Seat {
			return gorm.ErrDuplicatedKey
		}
	}
	f.tickets[ticket.PNR] = ticket
	return nil
}

func (f *fakeRepo) GetByPNR(_ context.Context, pnr string) (*Ticket, error) {
	ticket, ok := f.tickets[pnr]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ticket, nil
}

func (f *fakeRepo) GetSeatIndexes(_ context.Context, flightID uuid.UUID) ([]int, error) {
	var indexes []int
	for _, ticket := range f.tickets {
		if ticket.FlightID == flightID {
			indexes = append(indexes, ticket.Seat)
		}
	}
	return indexes, nil
}

type fakeFlights struct {
	flight *FlightInfo
}

func (f *fakeFlights) FlightByNumber(_ context.Context, flightNumber string) (*FlightInfo, error) {
	if f.flight == nil || f.flight.FlightNumber != flightNumber {
		return nil, errors.New("flight not found")
	}
	return f.flight, nil
}

type fakeGateway struct {
	err     error
	charges []payment.ChargeRequest
}

func (f *fakeGateway) Charge(_ context.Context, req *payment.ChargeRequest) (*payment.ChargeResponse, error) {
	f.charges = append(f.charges, *req)
	if f.err != nil {
		return nil, f.err
	}
	return &payment.ChargeResponse{TransactionID: "txn-1"}, nil
}

func testFlight() *FlightInfo {
	return &FlightInfo{
		ID:                 uuid.New(),
		FlightNumber:       "TK4210",
		DepartureAirport:   "ADA",
		DestinationAirport: "ADB",
		DepartureTime:      time.Date(2026, 10, 14, 8, 30, 0, 0, time.UTC),
		ArrivalTime:        time.Date(2026, 10, 14, 10, 30, 0, 0, time.UTC),
		Price:              1000,
		Layout:             seats.DefaultLayout(),
		TotalSeats:         270,
	}
}

func reservationRequest() *CreateReservationRequest {
	return &CreateReservationRequest{
		Passenger: PassengerPayload{
			FlightNumber: "TK4210",
			FareType:     "advantage",
			NationalID:   "12345678901",
			Name:         "Berkay",
			Surname:      "Dinc",
			Email:        "berkay@example.com",
			Phone:        "+905321112233",
			Gender:       "male",
			BirthDate:    "1995-06-15",
			Seat:         10,
		},
		CreditCard: payment.Card{
			CardNumber:        "4111111111111111",
			CardHolderName:    "Berkay",
			CardHolderSurname: "Dinc",
			ExpirationMonth:   "6",
			ExpirationYear:    "2030",
			CVV:               "123",
		},
	}
}

func TestCreateReservation(t *testing.T) {
	repo := newFakeRepo()
	gateway := &fakeGateway{}
	svc := NewService(repo, &fakeFlights{flight: testFlight()}, gateway, nil)

	ticket, err := svc.CreateReservation(context.Background(), reservationRequest())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[A-HJ-NP-Z2-9]{6}$`), ticket.PNR)
	assert.Equal(t, 10, ticket.Seat)
	assert.Equal(t, "advantage", ticket.FareType)
	assert.InDelta(t, 1200.0, ticket.Amount, 1e-9)
	assert.Equal(t, "txn-1", ticket.TransactionID)

	// Charged the canonical tier price, referenced by PNR.
	require.Len(t, gateway.charges, 1)
	assert.InDelta(t, 1200.0, gateway.charges[0].Amount, 1e-9)
	assert.Equal(t, ticket.PNR, gateway.charges[0].Reference)
}

func TestCreateReservationSeatRace(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeFlights{flight: testFlight()}, &fakeGateway{}, nil)

	_, err := svc.CreateReservation(context.Background(), reservationRequest())
	require.NoError(t, err)

	// Same seat again: the uniqueness constraint loses the race for us.
	_, err = svc.CreateReservation(context.Background(), reservationRequest())
	assert.ErrorIs(t, err, ErrSeatTaken)
}

func TestCreateReservationDeclineDoesNotPersist(t *testing.T) {
	repo := newFakeRepo()
	gateway := &fakeGateway{err: &payment.DeclineError{Message: "insufficient_funds"}}
	svc := NewService(repo, &fakeFlights{flight: testFlight()}, gateway, nil)

	_, err := svc.CreateReservation(context.Background(), reservationRequest())

	var decline *payment.DeclineError
	require.ErrorAs(t, err, &decline)
	assert.Equal(t, "insufficient_funds", decline.Message)
	assert.Empty(t, repo.tickets)
}

func TestCreateReservationValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeFlights{flight: testFlight()}, &fakeGateway{}, nil)

	req := reservationRequest()
	req.CreditCard.CVV = ""
	_, err := svc.CreateReservation(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSubmission)

	req = reservationRequest()
	req.Passenger.FareType = "first"
	_, err = svc.CreateReservation(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSubmission)

	req = reservationRequest()
	req.Passenger.Seat = 270
	_, err = svc.CreateReservation(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSubmission)
}

func TestFindByPNR(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeFlights{flight: testFlight()}, &fakeGateway{}, nil)

	ticket, err := svc.CreateReservation(context.Background(), reservationRequest())
	require.NoError(t, err)

	record, err := svc.FindByPNR(context.Background(), ticket.PNR, "dinc")
	require.NoError(t, err)
	assert.Equal(t, ticket.PNR, record.Ticket.PNR)
	require.NotNil(t, record.Flight)
	assert.Equal(t, "TK4210", record.Flight.FlightNumber)
	assert.Equal(t, "2B", record.SeatLabel) // flat index 10 in a 3-3-3 cabin

	_, err = svc.FindByPNR(context.Background(), ticket.PNR, "yilmaz")
	assert.ErrorIs(t, err, ErrTicketNotFound)

	_, err = svc.FindByPNR(context.Background(), "ZZZZZZ", "dinc")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestBookedSeatIndexes(t *testing.T) {
	repo := newFakeRepo()
	flight := testFlight()
	svc := NewService(repo, &fakeFlights{flight: flight}, &fakeGateway{}, nil)

	req := reservationRequest()
	_, err := svc.CreateReservation(context.Background(), req)
	require.NoError(t, err)

	indexes, err := svc.BookedSeatIndexes(context.Background(), flight.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{10}, indexes)
}
