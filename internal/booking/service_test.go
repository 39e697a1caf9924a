package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightly/internal/fares"
	"flightly/internal/flights"
	"flightly/internal/payment"
	"flightly/internal/seats"
	"flightly/internal/tickets"
	"flightly/pkg/cache"
)

type fakeFlightService struct {
	flight   *flights.Flight
	occupied []int
}

func (f *fakeFlightService) CreateFlight(*flights.Flight) error { return nil }

func (f *fakeFlightService) SetOccupancyReader(flights.OccupancyReader) {}

func (f *fakeFlightService) SetCacheService(cache.Service) {}

func (f *fakeFlightService) GetFlight(id uuid.UUID) (*flights.Flight, error) {
	if f.flight == nil || f.flight.ID != id {
		return nil, flights.ErrFlightNotFound
	}
	return f.flight, nil
}

func (f *fakeFlightService) GetFlightByNumber(flightNumber string) (*flights.Flight, error) {
	if f.flight == nil || f.flight.FlightNumber != flightNumber {
		return nil, flights.ErrFlightNotFound
	}
	return f.flight, nil
}

func (f *fakeFlightService) GetAllFlights(flights.FlightListQuery) ([]flights.Flight, error) {
	return nil, nil
}

func (f *fakeFlightService) Occupancy(_ context.Context, id uuid.UUID) ([]bool, seats.Layout, error) {
	if f.flight == nil || f.flight.ID != id {
		return nil, seats.Layout{}, flights.ErrFlightNotFound
	}
	occupancy := make([]bool, 270)
	for _, index := range f.occupied {
		occupancy[index] = true
	}
	return occupancy, seats.DefaultLayout(), nil
}

func (f *fakeFlightService) SeatMap(ctx context.Context, id uuid.UUID) (*seats.MapView, error) {
	occupancy, layout, err := f.Occupancy(ctx, id)
	if err != nil {
		return nil, err
	}
	return seats.Render(occupancy, layout)
}

func (f *fakeFlightService) FareQuotes(uuid.UUID) ([]fares.Quote, error) {
	return fares.QuoteAll(f.flight.Price), nil
}

type fakeTicketService struct {
	err     error
	created []*tickets.CreateReservationRequest
	pnr     string
}

func (f *fakeTicketService) CreateReservation(_ context.Context, req *tickets.CreateReservationRequest) (*tickets.Ticket, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	return &tickets.Ticket{PNR: f.pnr, Seat: req.Passenger.Seat}, nil
}

func (f *fakeTicketService) FindByPNR(context.Context, string, string) (*tickets.CheckInRecord, error) {
	return nil, tickets.ErrTicketNotFound
}

func (f *fakeTicketService) BookedSeatIndexes(context.Context, uuid.UUID) ([]int, error) {
	return nil, nil
}

func newBookingService(t *testing.T, ticketErr error) (Service, *fakeFlightService, *fakeTicketService) {
	t.Helper()
	flightService := &fakeFlightService{
		flight: &flights.Flight{
			ID:            uuid.New(),
			FlightNumber:  "TK1989",
			DepartureTime: time.Date(2026, time.October, 10, 9, 30, 0, 0, time.UTC),
			Price:         1000,
		},
		occupied: []int{10},
	}
	ticketService := &fakeTicketService{pnr: "K7M3Q9", err: ticketErr}
	return NewService(NewMemoryStore(), flightService, ticketService), flightService, ticketService
}

func driveToPayment(t *testing.T, svc Service, sessionID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	_, err := svc.SubmitPassenger(ctx, sessionID, validDetails(t))
	require.NoError(t, err)

	_, err = svc.SelectSeat(ctx, sessionID, seats.Coordinate{RowID: 4, BlockID: 1, SeatID: 2})
	require.NoError(t, err)
}

func TestStartSessionSnapshotsFlightAndOccupancy(t *testing.T) {
	svc, flightService, _ := newBookingService(t, nil)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, flightService.flight.ID, fares.TierComfort)
	require.NoError(t, err)

	assert.Equal(t, "TK1989", session.FlightNumber)
	assert.Equal(t, StepPassengerInfo, session.Step)
	assert.InDelta(t, 1440, session.Amount, 1e-9)
	assert.True(t, session.Occupancy[10])

	// The session round-trips through the store.
	loaded, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, session.Occupancy, loaded.Occupancy)
}

func TestStartSessionUnknownFlight(t *testing.T) {
	svc, _, _ := newBookingService(t, nil)
	_, err := svc.StartSession(context.Background(), uuid.New(), fares.TierEssentials)
	assert.ErrorIs(t, err, flights.ErrFlightNotFound)
}

func TestPayCompletesSession(t *testing.T) {
	svc, flightService, ticketService := newBookingService(t, nil)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, flightService.flight.ID, fares.TierAdvantage)
	require.NoError(t, err)
	driveToPayment(t, svc, session.ID)

	paid, err := svc.Pay(ctx, session.ID, testCard())
	require.NoError(t, err)

	assert.Equal(t, StepCompleted, paid.Step)
	assert.Equal(t, "K7M3Q9", paid.PNR)

	require.Len(t, ticketService.created, 1)
	submitted := ticketService.created[0]
	assert.Equal(t, 41, submitted.Passenger.Seat)
	assert.Equal(t, "advantage", submitted.Passenger.FareType)

	// The completed state survives the store round-trip.
	loaded, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, StepCompleted, loaded.Step)
	assert.Equal(t, "K7M3Q9", loaded.PNR)
}

func TestPayDeclineKeepsSessionReEnterable(t *testing.T) {
	declined := &payment.DeclineError{Message: "insufficient_funds"}
	svc, flightService, ticketService := newBookingService(t, declined)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, flightService.flight.ID, fares.TierEssentials)
	require.NoError(t, err)
	driveToPayment(t, svc, session.ID)

	_, err = svc.Pay(ctx, session.ID, testCard())
	var declineErr *payment.DeclineError
	require.ErrorAs(t, err, &declineErr)

	loaded, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, StepFailed, loaded.Step)
	assert.Equal(t, FailureDeclined, loaded.FailureKind)
	assert.Equal(t, "insufficient_funds", loaded.FailureMessage)
	assert.NotNil(t, loaded.Draft.Seat)

	// Retry after the decline succeeds.
	ticketService.err = nil
	paid, err := svc.Pay(ctx, session.ID, testCard())
	require.NoError(t, err)
	assert.Equal(t, StepCompleted, paid.Step)
	assert.Equal(t, "K7M3Q9", paid.PNR)
	assert.Empty(t, paid.FailureKind)
}

func TestPaySeatRaceIsADecline(t *testing.T) {
	svc, flightService, _ := newBookingService(t, tickets.ErrSeatTaken)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, flightService.flight.ID, fares.TierEssentials)
	require.NoError(t, err)
	driveToPayment(t, svc, session.ID)

	_, err = svc.Pay(ctx, session.ID, testCard())
	require.ErrorIs(t, err, tickets.ErrSeatTaken)

	loaded, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, StepFailed, loaded.Step)
	assert.Equal(t, FailureDeclined, loaded.FailureKind)
	assert.Equal(t, "seat_already_taken", loaded.FailureMessage)
}

func TestPayTransportFailureIsGeneric(t *testing.T) {
	svc, flightService, _ := newBookingService(t, payment.ErrGatewayUnreachable)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, flightService.flight.ID, fares.TierEssentials)
	require.NoError(t, err)
	driveToPayment(t, svc, session.ID)

	_, err = svc.Pay(ctx, session.ID, testCard())
	require.ErrorIs(t, err, payment.ErrGatewayUnreachable)

	loaded, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, StepFailed, loaded.Step)
	assert.Equal(t, FailureError, loaded.FailureKind)
	// The transport detail never leaks into the user-facing message.
	assert.NotContains(t, loaded.FailureMessage, "unreachable")
}

func TestPayRejectsBeforePaymentStep(t *testing.T) {
	svc, flightService, ticketService := newBookingService(t, nil)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, flightService.flight.ID, fares.TierEssentials)
	require.NoError(t, err)

	_, err = svc.Pay(ctx, session.ID, testCard())
	assert.ErrorIs(t, err, ErrStepViolation)
	assert.Empty(t, ticketService.created)
}

func TestPayLockBlocksDuplicateSubmission(t *testing.T) {
	svc, flightService, _ := newBookingService(t, nil)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, flightService.flight.ID, fares.TierEssentials)
	require.NoError(t, err)
	driveToPayment(t, svc, session.ID)

	// Acquire the lock out of band to simulate an in-flight payment.
	inner := svc.(*service)
	acquired, err := inner.store.AcquirePaymentLock(ctx, session.ID)
	require.NoError(t, err)
	require.True(t, acquired)

	_, err = svc.Pay(ctx, session.ID, testCard())
	assert.ErrorIs(t, err, ErrPaymentInFlight)

	// Once the first attempt settles, payment goes through.
	require.NoError(t, inner.store.ReleasePaymentLock(ctx, session.ID))
	paid, err := svc.Pay(ctx, session.ID, testCard())
	require.NoError(t, err)
	assert.Equal(t, StepCompleted, paid.Step)
}

func TestAbandonSessionRemovesIt(t *testing.T) {
	svc, flightService, _ := newBookingService(t, nil)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, flightService.flight.ID, fares.TierEssentials)
	require.NoError(t, err)

	require.NoError(t, svc.AbandonSession(ctx, session.ID))

	_, err = svc.GetSession(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
