package marketplace

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

// RegisterOfferRoutes mounts the offer endpoints on the given group.
func (h *Handler) RegisterOfferRoutes(r *gin.RouterGroup) {
	r.GET("", h.ListOffers)
	r.GET("/:id", h.GetOffer)
	r.POST("/:id/decision", h.DecideOffer)
}

func (h *Handler) ListOffers(c *gin.Context) {
	offers, err := h.service.ListOffers(ListOffersFilter{Status: c.Query("status")})
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (h *Handler) GetOffer(c *gin.Context) {
	offer, err := h.service.GetOffer(c.Param("id"))
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h *Handler) DecideOffer(c *gin.Context) {
	var payload DecisionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.BadRequest(c, "invalid JSON body")
		return
	}
	offer, err := h.service.DecideOffer(c.Param("id"), payload)
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

// Matchmake runs a matchmaking pass and returns the offers it created.
func (h *Handler) Matchmake(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Matchmake())
}

// Snapshot returns the full marketplace snapshot with the ESG summary.
func (h *Handler) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.BuildSnapshot())
}
