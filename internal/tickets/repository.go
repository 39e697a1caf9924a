package tickets

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, ticket *Ticket) error
	GetByPNR(ctx context.Context, pnr string) (*Ticket, error)
	GetSeatIndexes(ctx context.Context, flightID uuid.UUID) ([]int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, ticket *Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *repository) GetByPNR(ctx context.Context, pnr string) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).Where("pnr = ?", pnr).First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetSeatIndexes(ctx context.Context, flightID uuid.UUID) ([]int, error) {
	var indexes []int
	err := r.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("flight_id = ?", flightID).
		Order("seat").
		Pluck("seat", &indexes).Error
	return indexes, err
}
