package flights

import (
	"github.com/gin-gonic/gin"
)

func SetupFlightRoutes(rg *gin.RouterGroup, controller Controller) {
	flights := rg.Group("/flights")
	{
		flights.POST("", controller.CreateFlight)                 // POST /api/v1/flights
		flights.GET("", controller.GetAllFlights)                 // GET /api/v1/flights?from=&to=&date=
		flights.GET("/:flightId", controller.GetFlight)           // GET /api/v1/flights/:flightId
		flights.GET("/:flightId/seats", controller.GetOccupancy)  // GET /api/v1/flights/:flightId/seats
		flights.GET("/:flightId/seatmap", controller.GetSeatMap)  // GET /api/v1/flights/:flightId/seatmap
		flights.GET("/:flightId/fares", controller.GetFareQuotes) // GET /api/v1/flights/:flightId/fares
	}
}
