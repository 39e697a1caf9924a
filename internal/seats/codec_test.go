package seats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occupancyOf(size int, occupied ...int) []bool {
	seats := make([]bool, size)
	for _, i := range occupied {
		seats[i] = true
	}
	return seats
}

func TestDecode(t *testing.T) {
	layout := DefaultLayout()

	cabin, err := Decode(occupancyOf(27, 0, 10, 26), layout)
	require.NoError(t, err)

	require.Len(t, cabin, 3)
	for _, row := range cabin {
		require.Len(t, row, 3)
		for _, block := range row {
			require.Len(t, block, 3)
		}
	}

	assert.True(t, cabin[0][0][0])  // index 0
	assert.True(t, cabin[1][0][1])  // index 10
	assert.True(t, cabin[2][2][2])  // index 26
	assert.False(t, cabin[0][0][1]) // everything else vacant
}

func TestDecodeSingleBlockRow(t *testing.T) {
	// Three-seat rows, one block: occupancy [T F F T F F] decodes row 0 to
	// [occupied vacant vacant].
	layout := Layout{RowWidth: 3, BlockSizes: []int{3}}

	cabin, err := Decode([]bool{true, false, false, true, false, false}, layout)
	require.NoError(t, err)

	require.Len(t, cabin, 2)
	assert.Equal(t, Block{true, false, false}, cabin[0][0])

	coord, err := ToCoordinate(1, layout)
	require.NoError(t, err)
	assert.Equal(t, Coordinate{RowID: 0, BlockID: 0, SeatID: 1}, coord)
	assert.Equal(t, "1B", ToLabel(&coord, layout))
}

func TestDecodeLayoutMismatch(t *testing.T) {
	tests := []struct {
		name      string
		occupancy []bool
		layout    Layout
	}{
		{"blocks do not sum to row width", occupancyOf(9), Layout{RowWidth: 9, BlockSizes: []int{3, 3}}},
		{"occupancy not a multiple of row width", occupancyOf(10), DefaultLayout()},
		{"zero row width", occupancyOf(9), Layout{RowWidth: 0, BlockSizes: []int{3}}},
		{"negative block size", occupancyOf(9), Layout{RowWidth: 9, BlockSizes: []int{12, -3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.occupancy, tt.layout)
			assert.ErrorIs(t, err, ErrLayoutMismatch)
		})
	}
}

func TestDecodeDeterminism(t *testing.T) {
	layout := DefaultLayout()
	occupancy := occupancyOf(270, 3, 17, 42, 108, 269)

	first, err := Decode(occupancy, layout)
	require.NoError(t, err)
	second, err := Decode(occupancy, layout)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestIndexCoordinateRoundTrip(t *testing.T) {
	layouts := []Layout{
		DefaultLayout(),
		{RowWidth: 3, BlockSizes: []int{3}},
		{RowWidth: 7, BlockSizes: []int{2, 3, 2}},
	}

	for _, layout := range layouts {
		total := layout.RowWidth * 5
		for i := 0; i < total; i++ {
			coord, err := ToCoordinate(i, layout)
			require.NoError(t, err)

			back, err := ToIndex(coord, layout)
			require.NoError(t, err)
			assert.Equal(t, i, back)
		}
	}
}

func TestLabelsUnique(t *testing.T) {
	layout := DefaultLayout()
	seen := make(map[string]int)

	for i := 0; i < 270; i++ {
		coord, err := ToCoordinate(i, layout)
		require.NoError(t, err)

		label := ToLabel(&coord, layout)
		require.NotEmpty(t, label)

		if prev, ok := seen[label]; ok {
			t.Fatalf("label %q assigned to both index %d and %d", label, prev, i)
		}
		seen[label] = i
	}
}

func TestToLabel(t *testing.T) {
	layout := DefaultLayout()

	tests := []struct {
		coord Coordinate
		want  string
	}{
		{Coordinate{RowID: 0, BlockID: 0, SeatID: 0}, "1A"},
		{Coordinate{RowID: 0, BlockID: 0, SeatID: 2}, "1C"},
		{Coordinate{RowID: 0, BlockID: 1, SeatID: 0}, "1D"},
		{Coordinate{RowID: 0, BlockID: 2, SeatID: 2}, "1I"},
		{Coordinate{RowID: 29, BlockID: 1, SeatID: 1}, "30E"},
	}

	for _, tt := range tests {
		coord := tt.coord
		assert.Equal(t, tt.want, ToLabel(&coord, layout))
	}

	assert.Empty(t, ToLabel(nil, layout))
	assert.Empty(t, ToLabel(&Coordinate{RowID: 0, BlockID: 5, SeatID: 0}, layout))
}

func TestToIndexOutOfRange(t *testing.T) {
	layout := DefaultLayout()

	_, err := ToIndex(Coordinate{RowID: 0, BlockID: 3, SeatID: 0}, layout)
	assert.ErrorIs(t, err, ErrSeatOutOfRange)

	_, err = ToIndex(Coordinate{RowID: 0, BlockID: 0, SeatID: 3}, layout)
	assert.ErrorIs(t, err, ErrSeatOutOfRange)

	_, err = ToIndex(Coordinate{RowID: -1, BlockID: 0, SeatID: 0}, layout)
	assert.ErrorIs(t, err, ErrSeatOutOfRange)
}

func TestRender(t *testing.T) {
	layout := Layout{RowWidth: 3, BlockSizes: []int{3}}

	view, err := Render([]bool{true, false, false}, layout)
	require.NoError(t, err)

	require.Len(t, view.Rows, 1)
	require.Len(t, view.Rows[0].Blocks, 1)

	seats := view.Rows[0].Blocks[0].Seats
	require.Len(t, seats, 3)
	assert.Equal(t, SeatView{Label: "1A", Index: 0, Occupied: true}, seats[0])
	assert.Equal(t, SeatView{Label: "1B", Index: 1, Occupied: false}, seats[1])
	assert.Equal(t, 1, view.Rows[0].Number)
	assert.Equal(t, 3, view.TotalSeats)
}
