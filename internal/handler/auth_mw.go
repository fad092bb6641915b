package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moltdin/moltdin-api/internal/dto"
)

func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errNotAuthorized.Error()))
		c.Abort()
		return
	}

	apiKey := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if apiKey == "" {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errNotAuthorized.Error()))
		c.Abort()
		return
	}

	agent, err := h.services.Agent.FindByAPIKey(c.Request.Context(), apiKey)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errNotAuthorized.Error()))
		c.Abort()
		return
	}

	c.Set("agent", *agent)

	c.Next()
}
