package planes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"flightly/internal/seats"
	"flightly/internal/shared/constants"
	"flightly/pkg/cache"
)

var ErrPlaneNotFound = errors.New("plane not found")

// Service interface defines the contract for plane configuration
type Service interface {
	CreatePlane(req CreatePlaneRequest) (*Plane, error)
	GetPlane(id uuid.UUID) (*Plane, error)
	GetAllPlanes() ([]Plane, error)
	LayoutFor(planeID uuid.UUID) (seats.Layout, int, error)
	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SetCacheService injects the Redis cache (optional; reads fall through to
// the database without it)
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// CreatePlaneRequest describes a new aircraft configuration.
type CreatePlaneRequest struct {
	Name       string `json:"name" binding:"required"`
	Rows       int    `json:"rows" binding:"required,min=1,max=100"`
	BlockSizes string `json:"block_sizes" binding:"required"`
}

func (s *service) CreatePlane(req CreatePlaneRequest) (*Plane, error) {
	plane := &Plane{
		Name:       req.Name,
		Rows:       req.Rows,
		BlockSizes: req.BlockSizes,
	}

	// Reject geometries the codec cannot work with before they hit the database.
	if _, err := plane.Layout(); err != nil {
		return nil, fmt.Errorf("invalid cabin geometry: %w", err)
	}

	if err := s.repo.Create(plane); err != nil {
		return nil, fmt.Errorf("failed to create plane: %w", err)
	}

	return plane, nil
}

// GetPlane reads through the cache. Cabin geometry never changes once
// created, so a long TTL is safe.
func (s *service) GetPlane(id uuid.UUID) (*Plane, error) {
	if s.cacheService == nil {
		return s.loadPlane(id)
	}

	var plane Plane
	err := s.cacheService.GetOrSet(context.Background(),
		constants.CACHE_KEY_PLANE_DETAIL+id.String(), constants.TTL_PLANE_DETAIL,
		func() (interface{}, error) { return s.loadPlane(id) },
		&plane)
	if err != nil {
		return nil, err
	}
	return &plane, nil
}

func (s *service) loadPlane(id uuid.UUID) (*Plane, error) {
	plane, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaneNotFound
		}
		return nil, err
	}
	return plane, nil
}

func (s *service) GetAllPlanes() ([]Plane, error) {
	return s.repo.GetAll()
}

// LayoutFor resolves the seat layout and total seat count for a plane. A zero
// plane ID falls back to the default 3-3-3 cabin.
func (s *service) LayoutFor(planeID uuid.UUID) (seats.Layout, int, error) {
	if planeID == uuid.Nil {
		layout := seats.DefaultLayout()
		return layout, 30 * layout.RowWidth, nil
	}

	plane, err := s.GetPlane(planeID)
	if err != nil {
		return seats.Layout{}, 0, err
	}

	layout, err := plane.Layout()
	if err != nil {
		return seats.Layout{}, 0, err
	}

	return layout, plane.Rows * layout.RowWidth, nil
}
