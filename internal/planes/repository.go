package planes

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(plane *Plane) error
	GetByID(id uuid.UUID) (*Plane, error)
	GetAll() ([]Plane, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(plane *Plane) error {
	return r.db.Create(plane).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Plane, error) {
	var plane Plane
	err := r.db.Where("id = ?", id).First(&plane).Error
	if err != nil {
		return nil, err
	}
	return &plane, nil
}

func (r *repository) GetAll() ([]Plane, error) {
	var planes []Plane
	err := r.db.Order("name").Find(&planes).Error
	return planes, err
}
