package flights

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"flightly/internal/fares"
	"flightly/internal/planes"
	"flightly/internal/seats"
	"flightly/internal/shared/constants"
	"flightly/pkg/cache"
)

var ErrFlightNotFound = errors.New("flight not found")

// OccupancyReader reports which seat indexes are already taken on a flight.
// Implemented by the tickets service; declared here to avoid a circular
// dependency.
type OccupancyReader interface {
	BookedSeatIndexes(ctx context.Context, flightID uuid.UUID) ([]int, error)
}

// Service interface defines the contract for flight reads and derived views
type Service interface {
	CreateFlight(flight *Flight) error
	GetFlight(id uuid.UUID) (*Flight, error)
	GetFlightByNumber(flightNumber string) (*Flight, error)
	GetAllFlights(query FlightListQuery) ([]Flight, error)
	SetOccupancyReader(reader OccupancyReader)
	SetCacheService(cacheService cache.Service)

	// Occupancy returns the point-in-time occupancy snapshot: one boolean per
	// physical seat index.
	Occupancy(ctx context.Context, flightID uuid.UUID) ([]bool, seats.Layout, error)
	SeatMap(ctx context.Context, flightID uuid.UUID) (*seats.MapView, error)
	FareQuotes(flightID uuid.UUID) ([]fares.Quote, error)
}

type service struct {
	repo         Repository
	planes       planes.Service
	occupancy    OccupancyReader
	cacheService cache.Service
}

func NewService(repo Repository, planeService planes.Service) Service {
	return &service{repo: repo, planes: planeService}
}

// SetOccupancyReader injects the tickets-backed occupancy source (wired late
// to avoid a circular dependency between flights and tickets).
func (s *service) SetOccupancyReader(reader OccupancyReader) {
	s.occupancy = reader
}

// SetCacheService injects the Redis cache (optional; reads fall through to
// the database without it)
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateFlight(flight *Flight) error {
	if flight.Price <= 0 {
		return fmt.Errorf("flight price must be positive")
	}
	if !flight.ArrivalTime.After(flight.DepartureTime) {
		return fmt.Errorf("arrival must be after departure")
	}
	return s.repo.Create(flight)
}

// GetFlight reads through the cache. Flight records are immutable once
// scheduled, so stale reads are safe.
func (s *service) GetFlight(id uuid.UUID) (*Flight, error) {
	if s.cacheService == nil {
		return s.loadFlight(id)
	}

	var flight Flight
	err := s.cacheService.GetOrSet(context.Background(),
		constants.CACHE_KEY_FLIGHT_DETAIL+id.String(), constants.TTL_FLIGHT_DETAIL,
		func() (interface{}, error) { return s.loadFlight(id) },
		&flight)
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (s *service) GetFlightByNumber(flightNumber string) (*Flight, error) {
	if s.cacheService == nil {
		return s.loadFlightByNumber(flightNumber)
	}

	var flight Flight
	err := s.cacheService.GetOrSet(context.Background(),
		constants.CACHE_KEY_FLIGHT_NUMBER+flightNumber, constants.TTL_FLIGHT_DETAIL,
		func() (interface{}, error) { return s.loadFlightByNumber(flightNumber) },
		&flight)
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (s *service) loadFlight(id uuid.UUID) (*Flight, error) {
	flight, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return flight, nil
}

func (s *service) loadFlightByNumber(flightNumber string) (*Flight, error) {
	flight, err := s.repo.GetByFlightNumber(flightNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return flight, nil
}

func (s *service) GetAllFlights(query FlightListQuery) ([]Flight, error) {
	return s.repo.GetAll(query)
}

func (s *service) Occupancy(ctx context.Context, flightID uuid.UUID) ([]bool, seats.Layout, error) {
	flight, err := s.GetFlight(flightID)
	if err != nil {
		return nil, seats.Layout{}, err
	}

	layout, totalSeats, err := s.planes.LayoutFor(flight.PlaneID)
	if err != nil {
		return nil, seats.Layout{}, fmt.Errorf("failed to resolve cabin layout: %w", err)
	}

	occupancy := make([]bool, totalSeats)

	if s.occupancy != nil {
		indexes, err := s.occupancy.BookedSeatIndexes(ctx, flightID)
		if err != nil {
			return nil, seats.Layout{}, fmt.Errorf("failed to load booked seats: %w", err)
		}
		for _, index := range indexes {
			if index >= 0 && index < totalSeats {
				occupancy[index] = true
			}
		}
	}

	return occupancy, layout, nil
}

func (s *service) SeatMap(ctx context.Context, flightID uuid.UUID) (*seats.MapView, error) {
	occupancy, layout, err := s.Occupancy(ctx, flightID)
	if err != nil {
		return nil, err
	}
	return seats.Render(occupancy, layout)
}

func (s *service) FareQuotes(flightID uuid.UUID) ([]fares.Quote, error) {
	flight, err := s.GetFlight(flightID)
	if err != nil {
		return nil, err
	}
	return fares.QuoteAll(flight.Price), nil
}
