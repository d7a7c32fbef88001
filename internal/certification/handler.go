package certification

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
	r.GET("", h.ListCertifications)
	r.POST("", h.RequestCertification)
	r.POST("/:id/review", h.ReviewCertification)
}

func (h *Handler) ListCertifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListCertifications())
}

func (h *Handler) RequestCertification(c *gin.Context) {
	var payload RequestCertificationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.BadRequest(c, "invalid JSON body")
		return
	}
	cert, err := h.service.RequestCertification(payload)
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, cert)
}

func (h *Handler) ReviewCertification(c *gin.Context) {
	var payload ReviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.BadRequest(c, "invalid JSON body")
		return
	}
	cert, err := h.service.ReviewCertification(c.Param("id"), payload)
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cert)
}
