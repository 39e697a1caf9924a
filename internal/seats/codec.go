package seats

import (
	"errors"
	"fmt"
)

// Layout describes the physical cabin geometry: how many seats sit in one row
// and how those seats are grouped into aisle-separated blocks.
type Layout struct {
	RowWidth   int   `json:"row_width"`
	BlockSizes []int `json:"block_sizes"`
}

// DefaultLayout is the narrow-body 3-3-3 cabin used when a plane record does
// not carry its own geometry.
func DefaultLayout() Layout {
	return Layout{RowWidth: 9, BlockSizes: []int{3, 3, 3}}
}

// Validate checks that the block sizes add up to the row width.
func (l Layout) Validate() error {
	if l.RowWidth <= 0 {
		return fmt.Errorf("%w: row width must be positive, got %d", ErrLayoutMismatch, l.RowWidth)
	}

	sum := 0
	for _, size := range l.BlockSizes {
		if size <= 0 {
			return fmt.Errorf("%w: block size must be positive, got %d", ErrLayoutMismatch, size)
		}
		sum += size
	}

	if sum != l.RowWidth {
		return fmt.Errorf("%w: block sizes sum to %d, row width is %d", ErrLayoutMismatch, sum, l.RowWidth)
	}

	return nil
}

// Coordinate identifies one seat inside a decoded cabin. It is a selection
// key only and is never persisted; the wire format uses the flat index.
type Coordinate struct {
	RowID   int `json:"row_id"`
	BlockID int `json:"block_id"`
	SeatID  int `json:"seat_id"`
}

// Block is a contiguous run of seats with no aisle in between. Each entry is
// the occupancy flag of one seat.
type Block []bool

// Row is an ordered sequence of blocks separated by aisles.
type Row []Block

// CabinLayout is the navigable view of a flat occupancy map.
type CabinLayout []Row

var (
	// ErrLayoutMismatch signals that an occupancy map cannot be partitioned
	// into the requested geometry.
	ErrLayoutMismatch = errors.New("occupancy does not match cabin layout")

	// ErrSeatOutOfRange signals a coordinate or index outside the cabin.
	ErrSeatOutOfRange = errors.New("seat out of range")
)

// Decode partitions a flat occupancy sequence into rows of layout.RowWidth
// seats, then splits each row into blocks per layout.BlockSizes. The mapping
// is pure: the same input always yields a structurally identical cabin.
func Decode(occupancy []bool, layout Layout) (CabinLayout, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	if len(occupancy)%layout.RowWidth != 0 {
		return nil, fmt.Errorf("%w: %d seats do not fill rows of %d", ErrLayoutMismatch, len(occupancy), layout.RowWidth)
	}

	rowCount := len(occupancy) / layout.RowWidth
	cabin := make(CabinLayout, 0, rowCount)

	for rowID := 0; rowID < rowCount; rowID++ {
		rowStart := rowID * layout.RowWidth
		row := make(Row, 0, len(layout.BlockSizes))

		offset := 0
		for _, size := range layout.BlockSizes {
			block := make(Block, size)
			copy(block, occupancy[rowStart+offset:rowStart+offset+size])
			row = append(row, block)
			offset += size
		}

		cabin = append(cabin, row)
	}

	return cabin, nil
}

// ToIndex converts a cabin coordinate back into the flat occupancy index.
// It is the inverse of the position mapping performed by Decode.
func ToIndex(coord Coordinate, layout Layout) (int, error) {
	if err := layout.Validate(); err != nil {
		return 0, err
	}

	if coord.RowID < 0 || coord.BlockID < 0 || coord.BlockID >= len(layout.BlockSizes) {
		return 0, fmt.Errorf("%w: row %d block %d", ErrSeatOutOfRange, coord.RowID, coord.BlockID)
	}

	if coord.SeatID < 0 || coord.SeatID >= layout.BlockSizes[coord.BlockID] {
		return 0, fmt.Errorf("%w: seat %d in block of %d", ErrSeatOutOfRange, coord.SeatID, layout.BlockSizes[coord.BlockID])
	}

	return coord.RowID*layout.RowWidth + blockOffset(layout, coord.BlockID) + coord.SeatID, nil
}

// ToCoordinate converts a flat occupancy index into a cabin coordinate.
func ToCoordinate(index int, layout Layout) (Coordinate, error) {
	if err := layout.Validate(); err != nil {
		return Coordinate{}, err
	}

	if index < 0 {
		return Coordinate{}, fmt.Errorf("%w: index %d", ErrSeatOutOfRange, index)
	}

	rowID := index / layout.RowWidth
	position := index % layout.RowWidth

	for blockID, size := range layout.BlockSizes {
		if position < size {
			return Coordinate{RowID: rowID, BlockID: blockID, SeatID: position}, nil
		}
		position -= size
	}

	// Unreachable once the layout validates.
	return Coordinate{}, fmt.Errorf("%w: index %d", ErrSeatOutOfRange, index)
}

// ToLabel renders a coordinate as the human seat label: a 1-based row number
// followed by a letter. Letters run contiguously across blocks, so a 3-3-3
// cabin labels its blocks A-C, D-F and G-I; aisle gaps carry no letter.
// A nil coordinate yields the empty string.
func ToLabel(coord *Coordinate, layout Layout) string {
	if coord == nil {
		return ""
	}

	if layout.Validate() != nil {
		return ""
	}

	if coord.BlockID < 0 || coord.BlockID >= len(layout.BlockSizes) ||
		coord.SeatID < 0 || coord.SeatID >= layout.BlockSizes[coord.BlockID] || coord.RowID < 0 {
		return ""
	}

	letter := rune('A' + blockOffset(layout, coord.BlockID) + coord.SeatID)
	return fmt.Sprintf("%d%c", coord.RowID+1, letter)
}

// blockOffset is the number of seats that precede the given block in a row.
func blockOffset(layout Layout, blockID int) int {
	offset := 0
	for _, size := range layout.BlockSizes[:blockID] {
		offset += size
	}
	return offset
}
