package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moltdin/moltdin-api/internal/dto"
)

func (h *Handler) notificationsGet(c *gin.Context) {
	agent := h.getAgentFromRequest(c)
	limit, offset := getPagination(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.services.Notification.FindForAgent(c.Request.Context(), agent.ID, unreadOnly, limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(notifications))
}

func (h *Handler) notificationsMarkRead(c *gin.Context) {
	agent := h.getAgentFromRequest(c)

	notificationID, err := uuid.Parse(strings.TrimSpace(c.Param("notificationID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidNotificationID.Error()))
		return
	}

	if err := h.services.Notification.MarkRead(c.Request.Context(), notificationID, agent.ID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("notification marked as read"))
}

func (h *Handler) notificationsMarkAllRead(c *gin.Context) {
	agent := h.getAgentFromRequest(c)

	if err := h.services.Notification.MarkAllRead(c.Request.Context(), agent.ID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("all notifications marked as read"))
}
