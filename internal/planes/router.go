package planes

import (
	"github.com/gin-gonic/gin"
)

func SetupPlaneRoutes(rg *gin.RouterGroup, controller Controller) {
	planes := rg.Group("/planes")
	{
		planes.POST("", controller.CreatePlane)      // POST /api/v1/planes
		planes.GET("", controller.GetAllPlanes)      // GET /api/v1/planes
		planes.GET("/:planeId", controller.GetPlane) // GET /api/v1/planes/:planeId
	}
}
