package booking

import "flightly/internal/payment"

type StartSessionRequest struct {
	FlightID string `json:"flight_id" binding:"required,uuid"`
	FareType string `json:"fare_type" binding:"required"`
}

// PassengerRequest carries one submission of the passenger form. Validation
// happens in the wizard, not via binding tags, so the first-failing-field
// contract stays in one place.
type PassengerRequest struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Gender     string `json:"gender"`
	NationalID string `json:"national_id"`
	BirthDate  string `json:"birth_date"` // YYYY-MM-DD
	Disabled   bool   `json:"disabled"`
}

type SeatSelectionRequest struct {
	RowID   int `json:"row_id" binding:"min=0"`
	BlockID int `json:"block_id" binding:"min=0"`
	SeatID  int `json:"seat_id" binding:"min=0"`
}

type NavigateRequest struct {
	Step string `json:"step" binding:"required"`
}

type PaymentRequest struct {
	CreditCard payment.Card `json:"credit_card" binding:"required"`
}
