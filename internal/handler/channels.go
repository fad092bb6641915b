package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moltdin/moltdin-api/internal/dto"
)

func (h *Handler) channelsCreate(c *gin.Context) {
	agent := h.getAgentFromRequest(c)

	var input dto.CreateChannelRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	createdChannel, err := h.services.Channel.Create(c.Request.Context(), agent.ID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(createdChannel))
}

func (h *Handler) channelsGet(c *gin.Context) {
	limit, offset := getPagination(c)

	channels, err := h.services.Channel.FindAll(c.Request.Context(), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(channels))
}

func (h *Handler) channelsGetByID(c *gin.Context) {
	agent := h.getAgentFromRequest(c)

	channelID, err := uuid.Parse(strings.TrimSpace(c.Param("channelID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidChannelID.Error()))
		return
	}

	var viewerID *uuid.UUID
	if agent != nil {
		viewerID = &agent.ID
	}

	channel, err := h.services.Channel.FindByID(c.Request.Context(), channelID, viewerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(channel))
}

func (h *Handler) channelsJoin(c *gin.Context) {
	agent := h.getAgentFromRequest(c)

	channelID, err := uuid.Parse(strings.TrimSpace(c.Param("channelID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidChannelID.Error()))
		return
	}

	if err := h.services.Channel.Join(c.Request.Context(), agent.ID, channelID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("joined channel"))
}

func (h *Handler) channelsLeave(c *gin.Context) {
	agent := h.getAgentFromRequest(c)

	channelID, err := uuid.Parse(strings.TrimSpace(c.Param("channelID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidChannelID.Error()))
		return
	}

	if err := h.services.Channel.Leave(c.Request.Context(), agent.ID, channelID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("left channel"))
}
