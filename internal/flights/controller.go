package flights

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"flightly/internal/shared/utils/response"
)

type Controller interface {
	CreateFlight(c *gin.Context)
	GetFlight(c *gin.Context)
	GetAllFlights(c *gin.Context)
	GetOccupancy(c *gin.Context)
	GetSeatMap(c *gin.Context)
	GetFareQuotes(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateFlight(c *gin.Context) {
	var flight Flight

	if err := c.ShouldBindJSON(&flight); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.service.CreateFlight(&flight); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Flight created successfully", flight, nil)
}

func (ctrl *controller) GetFlight(c *gin.Context) {
	flightID, err := uuid.Parse(c.Param("flightId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid flight ID", nil, err.Error())
		return
	}

	flight, err := ctrl.service.GetFlight(flightID)
	if err != nil {
		if errors.Is(err, ErrFlightNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Flight not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Flight retrieved successfully", flight, nil)
}

func (ctrl *controller) GetAllFlights(c *gin.Context) {
	var query FlightListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	flights, err := ctrl.service.GetAllFlights(query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Flights retrieved successfully", flights, nil)
}

// GetOccupancy returns the flat occupancy snapshot, one boolean per seat.
func (ctrl *controller) GetOccupancy(c *gin.Context) {
	flightID, err := uuid.Parse(c.Param("flightId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid flight ID", nil, err.Error())
		return
	}

	occupancy, _, err := ctrl.service.Occupancy(c.Request.Context(), flightID)
	if err != nil {
		if errors.Is(err, ErrFlightNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Flight not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat occupancy retrieved successfully", occupancy, nil)
}

// GetSeatMap returns the display-ready cabin layout with labels and gaps.
func (ctrl *controller) GetSeatMap(c *gin.Context) {
	flightID, err := uuid.Parse(c.Param("flightId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid flight ID", nil, err.Error())
		return
	}

	seatMap, err := ctrl.service.SeatMap(c.Request.Context(), flightID)
	if err != nil {
		if errors.Is(err, ErrFlightNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Flight not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat map retrieved successfully", seatMap, nil)
}

func (ctrl *controller) GetFareQuotes(c *gin.Context) {
	flightID, err := uuid.Parse(c.Param("flightId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid flight ID", nil, err.Error())
		return
	}

	quotes, err := ctrl.service.FareQuotes(flightID)
	if err != nil {
		if errors.Is(err, ErrFlightNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Flight not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Fare quotes retrieved successfully", quotes, nil)
}
