package planes

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"flightly/internal/seats"
)

// Plane defines an aircraft type and its cabin geometry. Flights reference a
// plane to know how many seats exist and how to lay them out.
type Plane struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name       string    `gorm:"uniqueIndex;not null" json:"name"`
	Rows       int       `gorm:"not null" json:"rows"`
	BlockSizes string    `gorm:"not null;default:'3-3-3'" json:"block_sizes"` // e.g. "3-3-3"
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the table name for Plane
func (Plane) TableName() string {
	return "planes"
}

// Layout parses the stored block geometry into a seat layout.
func (p *Plane) Layout() (seats.Layout, error) {
	parts := strings.Split(p.BlockSizes, "-")
	sizes := make([]int, 0, len(parts))
	width := 0

	for _, part := range parts {
		size, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return seats.Layout{}, fmt.Errorf("invalid block sizes %q: %w", p.BlockSizes, err)
		}
		sizes = append(sizes, size)
		width += size
	}

	layout := seats.Layout{RowWidth: width, BlockSizes: sizes}
	if err := layout.Validate(); err != nil {
		return seats.Layout{}, err
	}

	return layout, nil
}

// TotalSeats is the physical seat count of the cabin.
func (p *Plane) TotalSeats() (int, error) {
	layout, err := p.Layout()
	if err != nil {
		return 0, err
	}
	return p.Rows * layout.RowWidth, nil
}
