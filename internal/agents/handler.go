package agents

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aura/marketplace/marketplace-backend/internal/api"
	"aura/marketplace/marketplace-backend/internal/domain"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.ListAgents)
	r.GET("/:id", h.GetAgent)
	r.PUT("", h.UpsertAgent)
	r.PATCH("/:id/strategy", h.UpdateStrategy)
}

func (h *Handler) ListAgents(c *gin.Context) {
	agents, err := h.service.ListAgents(ListAgentsFilter{Type: c.Query("type")})
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, agents)
}

func (h *Handler) GetAgent(c *gin.Context) {
	agent, err := h.service.GetAgent(c.Param("id"))
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, agent)
}

func (h *Handler) UpsertAgent(c *gin.Context) {
	var payload UpsertAgentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.BadRequest(c, "invalid JSON body")
		return
	}
	agent, err := h.service.UpsertAgent(payload)
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, agent)
}

func (h *Handler) UpdateStrategy(c *gin.Context) {
	var payload domain.AgentStrategy
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.BadRequest(c, "invalid JSON body")
		return
	}
	agent, err := h.service.UpdateStrategy(c.Param("id"), payload)
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, agent)
}
