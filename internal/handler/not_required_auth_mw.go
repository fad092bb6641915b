package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func (h *Handler) notRequiredAuthMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.Next()
		return
	}

	apiKey := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if apiKey == "" {
		c.Next()
		return
	}

	agent, err := h.services.Agent.FindByAPIKey(c.Request.Context(), apiKey)
	if err != nil {
		c.Next()
		return
	}

	c.Set("agent", *agent)

	c.Next()
}
