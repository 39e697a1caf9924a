package tickets

import (
	"github.com/gin-gonic/gin"
)

// SetupTicketRoutes registers the legacy reservation surface at the engine
// root (not under /api/v1): the booking front end and check-in page were
// built against these exact paths.
func SetupTicketRoutes(engine *gin.Engine, controller Controller) {
	engine.POST("/passengers", controller.CreatePassenger) // POST /passengers
	engine.GET("/ticket/:pnr/:surname", controller.GetTicket)
}
