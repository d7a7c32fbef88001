package lots

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
	r.GET("", h.ListLots)
	r.GET("/:id", h.GetLot)
	r.POST("", h.RegisterLot)
	r.POST("/:id/verification", h.SubmitVerification)
	r.POST("/:id/tokenize", h.TokenizeLot)
	r.POST("/:id/retire", h.RetireLot)
}

func (h *Handler) ListLots(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListLots())
}

func (h *Handler) GetLot(c *gin.Context) {
	lot, err := h.service.GetLot(c.Param("id"))
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, lot)
}

func (h *Handler) RegisterLot(c *gin.Context) {
	var payload RegisterLotRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.BadRequest(c, "invalid JSON body")
		return
	}
	lot, err := h.service.RegisterLot(payload)
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, lot)
}

func (h *Handler) SubmitVerification(c *gin.Context) {
	var payload VerificationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.BadRequest(c, "invalid JSON body")
		return
	}
	lot, err := h.service.SubmitVerification(c.Param("id"), payload)
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, lot)
}

func (h *Handler) TokenizeLot(c *gin.Context) {
	var payload TokenizationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.BadRequest(c, "invalid JSON body")
		return
	}
	lot, err := h.service.TokenizeLot(c.Param("id"), payload)
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, lot)
}

func (h *Handler) RetireLot(c *gin.Context) {
	lot, err := h.service.RetireLot(c.Param("id"))
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, lot)
}
