package planes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"flightly/internal/shared/utils/response"
)

type Controller interface {
	CreatePlane(c *gin.Context)
	GetPlane(c *gin.Context)
	GetAllPlanes(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreatePlane(c *gin.Context) {
	var req CreatePlaneRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	plane, err := ctrl.service.CreatePlane(req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Plane created successfully", plane, nil)
}

func (ctrl *controller) GetPlane(c *gin.Context) {
	planeID, err := uuid.Parse(c.Param("planeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid plane ID", nil, err.Error())
		return
	}

	plane, err := ctrl.service.GetPlane(planeID)
	if err != nil {
		if errors.Is(err, ErrPlaneNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Plane not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Plane retrieved successfully", plane, nil)
}

func (ctrl *controller) GetAllPlanes(c *gin.Context) {
	planes, err := ctrl.service.GetAllPlanes()
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Planes retrieved successfully", planes, nil)
}
