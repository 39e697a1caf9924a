package booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"flightly/internal/fares"
	"flightly/internal/flights"
	"flightly/internal/payment"
	"flightly/internal/seats"
	"flightly/internal/shared/utils/response"
	"flightly/internal/tickets"
)

type Controller interface {
	StartSession(c *gin.Context)
	GetSession(c *gin.Context)
	SubmitPassenger(c *gin.Context)
	SelectSeat(c *gin.Context)
	Navigate(c *gin.Context)
	Pay(c *gin.Context)
	AbandonSession(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// StartSession handles POST /api/v1/bookings
func (ctrl *controller) StartSession(c *gin.Context) {
	var req StartSessionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	flightID, err := uuid.Parse(req.FlightID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid flight ID", nil, err.Error())
		return
	}

	tier, err := fares.ParseTier(req.FareType)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Unknown fare type", nil, err.Error())
		return
	}

	session, err := ctrl.service.StartSession(c.Request.Context(), flightID, tier)
	if err != nil {
		if errors.Is(err, flights.ErrFlightNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Flight not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to start booking session", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Booking session started", ToSessionResponse(session), nil)
}

// GetSession handles GET /api/v1/bookings/:sessionId
func (ctrl *controller) GetSession(c *gin.Context) {
	sessionID, ok := ctrl.sessionID(c)
	if !ok {
		return
	}

	session, err := ctrl.service.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking session retrieved", ToSessionResponse(session), nil)
}

// SubmitPassenger handles PUT /api/v1/bookings/:sessionId/passenger
func (ctrl *controller) SubmitPassenger(c *gin.Context) {
	sessionID, ok := ctrl.sessionID(c)
	if !ok {
		return
	}

	var req PassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	details := PassengerDetails{
		Name:       req.Name,
		Surname:    req.Surname,
		Email:      req.Email,
		Phone:      req.Phone,
		Gender:     req.Gender,
		NationalID: req.NationalID,
		Disabled:   req.Disabled,
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil,
				FieldError{Field: "birth_date", Message: "please enter your birthday"})
			return
		}
		details.BirthDate = &birthDate
	}

	session, err := ctrl.service.SubmitPassenger(c.Request.Context(), sessionID, details)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Passenger information saved", ToSessionResponse(session), nil)
}

// SelectSeat handles PUT /api/v1/bookings/:sessionId/seat
func (ctrl *controller) SelectSeat(c *gin.Context) {
	sessionID, ok := ctrl.sessionID(c)
	if !ok {
		return
	}

	var req SeatSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	coord := seats.Coordinate{RowID: req.RowID, BlockID: req.BlockID, SeatID: req.SeatID}
	session, err := ctrl.service.SelectSeat(c.Request.Context(), sessionID, coord)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat selected", ToSessionResponse(session), nil)
}

// Navigate handles PUT /api/v1/bookings/:sessionId/step
func (ctrl *controller) Navigate(c *gin.Context) {
	sessionID, ok := ctrl.sessionID(c)
	if !ok {
		return
	}

	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	session, err := ctrl.service.Navigate(c.Request.Context(), sessionID, Step(req.Step))
	if err != nil {
		ctrl.respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Step changed", ToSessionResponse(session), nil)
}

// Pay handles POST /api/v1/bookings/:sessionId/payment
func (ctrl *controller) Pay(c *gin.Context) {
	sessionID, ok := ctrl.sessionID(c)
	if !ok {
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	session, err := ctrl.service.Pay(c.Request.Context(), sessionID, req.CreditCard)
	if err != nil {
		ctrl.respondPaymentError(c, session, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Payment approved", ToSessionResponse(session), nil)
}

// AbandonSession handles DELETE /api/v1/bookings/:sessionId
func (ctrl *controller) AbandonSession(c *gin.Context) {
	sessionID, ok := ctrl.sessionID(c)
	if !ok {
		return
	}

	if err := ctrl.service.AbandonSession(c.Request.Context(), sessionID); err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to abandon session", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking session abandoned", nil, nil)
}

func (ctrl *controller) sessionID(c *gin.Context) (uuid.UUID, bool) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return uuid.Nil, false
	}
	return sessionID, true
}

// respondError maps wizard errors onto statuses. Validation failures carry
// the single failing field; step violations and occupancy conflicts are 409s.
func (ctrl *controller) respondError(c *gin.Context, err error) {
	var fieldErr *FieldError
	switch {
	case errors.As(err, &fieldErr):
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, fieldErr)
	case errors.Is(err, ErrSessionNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Booking session not found", nil, nil)
	case errors.Is(err, ErrSessionCompleted):
		response.RespondJSON(c, "error", http.StatusConflict, "Booking session already completed", nil, nil)
	case errors.Is(err, ErrStepViolation):
		response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.Is(err, ErrSeatOccupied):
		response.RespondJSON(c, "error", http.StatusConflict, "Seat is occupied", nil, nil)
	case errors.Is(err, seats.ErrSeatOutOfRange):
		response.RespondJSON(c, "error", http.StatusBadRequest, "Seat outside cabin layout", nil, err.Error())
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Something went wrong", nil, err.Error())
	}
}

// respondPaymentError keeps the three failure classes distinct on the wire: a
// structured decline carries the gateway's message, a lost seat race declines
// with its own message, a transport failure stays generic.
func (ctrl *controller) respondPaymentError(c *gin.Context, session *Session, err error) {
	data := interface{}(nil)
	if session != nil {
		data = ToSessionResponse(session)
	}

	var decline *payment.DeclineError
	switch {
	case errors.As(err, &decline):
		response.RespondJSON(c, "error", http.StatusPaymentRequired, decline.Message, data, nil)
	case errors.Is(err, tickets.ErrSeatTaken):
		response.RespondJSON(c, "error", http.StatusConflict, "seat_already_taken", data, nil)
	case errors.Is(err, ErrPaymentInFlight):
		response.RespondJSON(c, "error", http.StatusConflict, "Payment already in progress", data, nil)
	case errors.Is(err, ErrSessionNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Booking session not found", nil, nil)
	case errors.Is(err, ErrSessionCompleted):
		response.RespondJSON(c, "error", http.StatusConflict, "Booking session already completed", data, nil)
	case errors.Is(err, ErrStepViolation), errors.Is(err, ErrIncompleteDraft):
		response.RespondJSON(c, "error", http.StatusConflict, err.Error(), data, nil)
	case errors.Is(err, payment.ErrGatewayUnreachable):
		response.RespondJSON(c, "error", http.StatusBadGateway, "something went wrong, please try again", data, nil)
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, "something went wrong, please try again", data, nil)
	}
}
