package flights

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"flightly/internal/planes"
	"flightly/internal/seats"
	"flightly/pkg/cache"
)

type fakeRepository struct {
	flights      map[uuid.UUID]*Flight
	getByIDCalls int
}

func (r *fakeRepository) Create(flight *Flight) error {
	if flight.ID == uuid.Nil {
		flight.ID = uuid.New()
	}
	r.flights[flight.ID] = flight
	return nil
}

func (r *fakeRepository) GetByID(id uuid.UUID) (*Flight, error) {
	r.getByIDCalls++
	flight, ok := r.flights[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return flight, nil
}

func (r *fakeRepository) GetByFlightNumber(flightNumber string) (*Flight, error) {
	for _, flight := range r.flights {
		if flight.FlightNumber == flightNumber {
			return flight, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepository) GetAll(FlightListQuery) ([]Flight, error) {
	var all []Flight
	for _, flight := range r.flights {
		all = append(all, *flight)
	}
	return all, nil
}

// fakePlaneService always answers with the standard 3-3-3 wide-body cabin.
type fakePlaneService struct{}

func (fakePlaneService) CreatePlane(planes.CreatePlaneRequest) (*planes.Plane, error) {
	return nil, nil
}

func (fakePlaneService) GetPlane(uuid.UUID) (*planes.Plane, error) { return nil, nil }

func (fakePlaneService) GetAllPlanes() ([]planes.Plane, error) { return nil, nil }

func (fakePlaneService) SetCacheService(cache.Service) {}

func (fakePlaneService) LayoutFor(uuid.UUID) (seats.Layout, int, error) {
	layout := seats.DefaultLayout()
	return layout, 30 * layout.RowWidth, nil
}

// fakeCache is an in-memory cache.Service backed by a map.
type fakeCache struct {
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := f.store[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = raw
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.store, key)
	return nil
}

func (f *fakeCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetch func() (interface{}, error), dest interface{}) error {
	if err := f.Get(ctx, key, dest); err == nil {
		return nil
	}
	value, err := fetch()
	if err != nil {
		return err
	}
	if err := f.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

type stubOccupancy struct {
	indexes []int
}

func (s *stubOccupancy) BookedSeatIndexes(context.Context, uuid.UUID) ([]int, error) {
	return s.indexes, nil
}

func newTestService(t *testing.T) (Service, *Flight) {
	t.Helper()

	repo := &fakeRepository{flights: make(map[uuid.UUID]*Flight)}
	flight := &Flight{
		FlightNumber:       "FL1989",
		DepartureAirport:   "IST",
		DestinationAirport: "JFK",
		DepartureTime:      time.Date(2026, 10, 10, 9, 30, 0, 0, time.UTC),
		ArrivalTime:        time.Date(2026, 10, 10, 20, 30, 0, 0, time.UTC),
		Price:              1000,
	}
	require.NoError(t, repo.Create(flight))

	return NewService(repo, fakePlaneService{}), flight
}

func TestCreateFlightValidation(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.CreateFlight(&Flight{
		FlightNumber:  "FL0000",
		DepartureTime: time.Now(),
		ArrivalTime:   time.Now().Add(2 * time.Hour),
		Price:         0,
	})
	assert.ErrorContains(t, err, "price")

	err = svc.CreateFlight(&Flight{
		FlightNumber:  "FL0000",
		DepartureTime: time.Now().Add(2 * time.Hour),
		ArrivalTime:   time.Now(),
		Price:         500,
	})
	assert.ErrorContains(t, err, "arrival")
}

func TestGetFlightNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetFlight(uuid.New())
	assert.ErrorIs(t, err, ErrFlightNotFound)
}

func TestGetFlightByNumber(t *testing.T) {
	svc, flight := newTestService(t)

	found, err := svc.GetFlightByNumber("FL1989")
	require.NoError(t, err)
	assert.Equal(t, flight.ID, found.ID)

	_, err = svc.GetFlightByNumber("FL0000")
	assert.ErrorIs(t, err, ErrFlightNotFound)
}

func TestGetFlightReadsThroughCache(t *testing.T) {
	repo := &fakeRepository{flights: make(map[uuid.UUID]*Flight)}
	flight := &Flight{
		FlightNumber:  "FL1989",
		DepartureTime: time.Date(2026, 10, 10, 9, 30, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2026, 10, 10, 20, 30, 0, 0, time.UTC),
		Price:         1000,
	}
	require.NoError(t, repo.Create(flight))

	svc := NewService(repo, fakePlaneService{})
	svc.SetCacheService(newFakeCache())

	first, err := svc.GetFlight(flight.ID)
	require.NoError(t, err)
	second, err := svc.GetFlight(flight.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "FL1989", second.FlightNumber)
	assert.Equal(t, 1, repo.getByIDCalls, "second read should be served from cache")

	byNumber, err := svc.GetFlightByNumber("FL1989")
	require.NoError(t, err)
	assert.Equal(t, flight.ID, byNumber.ID)
}

func TestGetFlightNotFoundWithCache(t *testing.T) {
	svc, _ := newTestService(t)
	svc.SetCacheService(newFakeCache())

	_, err := svc.GetFlight(uuid.New())
	assert.ErrorIs(t, err, ErrFlightNotFound)

	_, err = svc.GetFlightByNumber("FL0000")
	assert.ErrorIs(t, err, ErrFlightNotFound)
}

func TestOccupancySnapshot(t *testing.T) {
	svc, flight := newTestService(t)
	svc.SetOccupancyReader(&stubOccupancy{indexes: []int{0, 10, 269}})

	occupancy, layout, err := svc.Occupancy(context.Background(), flight.ID)
	require.NoError(t, err)

	assert.Len(t, occupancy, 270)
	assert.Equal(t, 9, layout.RowWidth)
	assert.True(t, occupancy[0])
	assert.True(t, occupancy[10])
	assert.True(t, occupancy[269])
	assert.False(t, occupancy[1])
}

func TestOccupancyWithoutReaderIsEmpty(t *testing.T) {
	svc, flight := newTestService(t)

	occupancy, _, err := svc.Occupancy(context.Background(), flight.ID)
	require.NoError(t, err)

	for _, taken := range occupancy {
		assert.False(t, taken)
	}
}

func TestSeatMapRendersOccupiedSeat(t *testing.T) {
	svc, flight := newTestService(t)
	svc.SetOccupancyReader(&stubOccupancy{indexes: []int{10}})

	view, err := svc.SeatMap(context.Background(), flight.ID)
	require.NoError(t, err)

	assert.Equal(t, 270, view.TotalSeats)
	assert.Len(t, view.Rows, 30)

	// Index 10 decodes to row 2, first block, second seat: 2B
	seat := view.Rows[1].Blocks[0].Seats[1]
	assert.Equal(t, 10, seat.Index)
	assert.Equal(t, "2B", seat.Label)
	assert.True(t, seat.Occupied)

	assert.False(t, view.Rows[1].Blocks[0].Seats[0].Occupied)
}

func TestFareQuotesCoverAllTiers(t *testing.T) {
	svc, flight := newTestService(t)

	quotes, err := svc.FareQuotes(flight.ID)
	require.NoError(t, err)
	require.Len(t, quotes, 3)

	byTier := make(map[string]float64, len(quotes))
	for _, quote := range quotes {
		byTier[string(quote.Tier)] = quote.Price
	}

	assert.Equal(t, 1000.0, byTier["essentials"])
	assert.Equal(t, 1200.0, byTier["advantage"])
	assert.Equal(t, 1440.0, byTier["comfort"])
}
