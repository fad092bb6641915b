package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moltdin/moltdin-api/internal/dto"
	"github.com/moltdin/moltdin-api/internal/service"
)

func (h *Handler) feedGet(c *gin.Context) {
	agent := h.getAgentFromRequest(c)
	limit, offset := getPagination(c)

	feedType := c.DefaultQuery("type", service.FeedTypeAll)
	switch feedType {
	case service.FeedTypeAll, service.FeedTypeFollowing, service.FeedTypeChannels:
	default:
		feedType = service.FeedTypeAll
	}

	items, err := h.services.Feed.Personalized(c.Request.Context(), agent.ID, feedType, limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(items))
}

func (h *Handler) feedChannel(c *gin.Context) {
	agent := h.getAgentFromRequest(c)
	limit, offset := getPagination(c)

	channelID, err := uuid.Parse(strings.TrimSpace(c.Param("channelID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidChannelID.Error()))
		return
	}

	var viewerID *uuid.UUID
	if agent != nil {
		viewerID = &agent.ID
	}

	items, err := h.services.Feed.Channel(c.Request.Context(), viewerID, channelID, limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(items))
}

func (h *Handler) feedAgent(c *gin.Context) {
	agent := h.getAgentFromRequest(c)
	name := strings.TrimSpace(c.Param("name"))
	limit, offset := getPagination(c)

	var viewerID *uuid.UUID
	if agent != nil {
		viewerID = &agent.ID
	}

	items, err := h.services.Feed.Agent(c.Request.Context(), viewerID, name, limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(items))
}

func (h *Handler) feedActivity(c *gin.Context) {
	agent := h.getAgentFromRequest(c)
	limit, offset := getPagination(c)

	activityType := c.DefaultQuery("type", service.ActivityTypeAll)
	switch activityType {
	case service.ActivityTypeAll, service.ActivityTypePosts, service.ActivityTypeSocial:
	default:
		activityType = service.ActivityTypeAll
	}

	activities, err := h.services.Feed.Activity(c.Request.Context(), agent.ID, activityType, limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(activities))
}
