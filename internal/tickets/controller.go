package tickets

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"flightly/internal/payment"
)

// The reservation endpoints keep the legacy wire shapes consumed by the
// booking front end: POST /passengers answers {"pnr_no": ...} and failures
// carry a flat {"message": ...} body.

type Controller interface {
	CreatePassenger(c *gin.Context)
	GetTicket(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreatePassenger(c *gin.Context) {
	var req CreateReservationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	ticket, err := ctrl.service.CreateReservation(c.Request.Context(), &req)
	if err != nil {
		status, message := classifyReservationError(err)
		c.JSON(status, gin.H{"message": message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"pnr_no": ticket.PNR})
}

func (ctrl *controller) GetTicket(c *gin.Context) {
	pnr := c.Param("pnr")
	surname := c.Param("surname")

	record, err := ctrl.service.FindByPNR(c.Request.Context(), pnr, surname)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "ticket not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	// The check-in page reads the first element of an array.
	c.JSON(http.StatusOK, []CheckInRecord{*record})
}

// classifyReservationError maps the three reservation failure classes onto
// transport statuses: validation problems are 400, business declines carry
// their reason on 402/409, and gateway connectivity loss is 502.
func classifyReservationError(err error) (int, string) {
	var decline *payment.DeclineError
	switch {
	case errors.As(err, &decline):
		return http.StatusPaymentRequired, decline.Message
	case errors.Is(err, ErrSeatTaken):
		return http.StatusConflict, "seat_already_taken"
	case errors.Is(err, ErrInvalidSubmission):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, payment.ErrGatewayUnreachable):
		return http.StatusBadGateway, "payment gateway unreachable"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
