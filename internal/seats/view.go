package seats

// Seat map rendering structures for API responses. Gap cells are a
// presentation concern layered on top of the decoded cabin; they never take
// part in index arithmetic.

// SeatView describes one seat cell in a rendered seat map.
type SeatView struct {
	Label    string `json:"label"`
	Index    int    `json:"index"`
	Occupied bool   `json:"occupied"`
}

// BlockView is one aisle-separated group of seats in a rendered row.
type BlockView struct {
	Seats []SeatView `json:"seats"`
}

// RowView is one rendered cabin row with its 1-based row number.
type RowView struct {
	Number int         `json:"number"`
	Blocks []BlockView `json:"blocks"`
}

// MapView is the display-ready seat map for one flight.
type MapView struct {
	Rows       []RowView `json:"rows"`
	RowWidth   int       `json:"row_width"`
	BlockSizes []int     `json:"block_sizes"`
	TotalSeats int       `json:"total_seats"`
}

// Render decodes an occupancy map and attaches labels and flat indexes so a
// client can draw the cabin without repeating the index arithmetic.
func Render(occupancy []bool, layout Layout) (*MapView, error) {
	cabin, err := Decode(occupancy, layout)
	if err != nil {
		return nil, err
	}

	view := &MapView{
		Rows:       make([]RowView, 0, len(cabin)),
		RowWidth:   layout.RowWidth,
		BlockSizes: layout.BlockSizes,
		TotalSeats: len(occupancy),
	}

	for rowID, row := range cabin {
		rowView := RowView{Number: rowID + 1, Blocks: make([]BlockView, 0, len(row))}

		for blockID, block := range row {
			blockView := BlockView{Seats: make([]SeatView, 0, len(block))}

			for seatID, occupied := range block {
				coord := Coordinate{RowID: rowID, BlockID: blockID, SeatID: seatID}
				index, err := ToIndex(coord, layout)
				if err != nil {
					return nil, err
				}

				blockView.Seats = append(blockView.Seats, SeatView{
					Label:    ToLabel(&coord, layout),
					Index:    index,
					Occupied: occupied,
				})
			}

			rowView.Blocks = append(rowView.Blocks, blockView)
		}

		view.Rows = append(view.Rows, rowView)
	}

	return view, nil
}
