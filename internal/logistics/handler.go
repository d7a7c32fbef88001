package logistics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aura/marketplace/marketplace-backend/internal/api"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.ListShipments)
	r.POST("", h.ScheduleShipment)
}

func (h *Handler) ListShipments(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListShipments())
}

func (h *Handler) ScheduleShipment(c *gin.Context) {
	var payload ScheduleShipmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.BadRequest(c, "invalid JSON body")
		return
	}
	shipment, err := h.service.ScheduleShipment(payload)
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, shipment)
}
