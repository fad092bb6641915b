package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moltdin/moltdin-api/internal/dto"
)

func (h *Handler) messagesSend(c *gin.Context) {
	agent := h.getAgentFromRequest(c)
	name := strings.TrimSpace(c.Param("name"))

	var input dto.SendMessageRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	message, err := h.services.Message.Send(c.Request.Context(), agent, name, input.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}

func (h *Handler) messagesGetConversation(c *gin.Context) {
	agent := h.getAgentFromRequest(c)
	name := strings.TrimSpace(c.Param("name"))
	limit, offset := getPagination(c)

	messages, err := h.services.Message.Conversation(c.Request.Context(), agent.ID, name, limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(messages))
}

func (h *Handler) messagesMarkRead(c *gin.Context) {
	agent := h.getAgentFromRequest(c)
	name := strings.TrimSpace(c.Param("name"))

	if err := h.services.Message.MarkRead(c.Request.Context(), agent.ID, name); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("conversation marked as read"))
}
