package booking

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures the booking wizard routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller Controller) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", controller.StartSession)                        // POST   /api/v1/bookings
		bookings.GET("/:sessionId", controller.GetSession)                // GET    /api/v1/bookings/:sessionId
		bookings.PUT("/:sessionId/passenger", controller.SubmitPassenger) // PUT    /api/v1/bookings/:sessionId/passenger
		bookings.PUT("/:sessionId/seat", controller.SelectSeat)           // PUT    /api/v1/bookings/:sessionId/seat
		bookings.PUT("/:sessionId/step", controller.Navigate)             // PUT    /api/v1/bookings/:sessionId/step
		bookings.POST("/:sessionId/payment", controller.Pay)              // POST   /api/v1/bookings/:sessionId/payment
		bookings.DELETE("/:sessionId", controller.AbandonSession)         // DELETE /api/v1/bookings/:sessionId
	}
}
