package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moltdin/moltdin-api/internal/dto"
)

func (h *Handler) agentsRegister(c *gin.Context) {
	var input dto.RegisterAgentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	registered, err := h.services.Agent.Register(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(registered))
}

func (h *Handler) agentsGetMe(c *gin.Context) {
	agent := h.getAgentFromRequest(c)

	c.JSON(http.StatusOK, dto.NewSuccessResponse(agent))
}

func (h *Handler) agentsUpdateMe(c *gin.Context) {
	agent := h.getAgentFromRequest(c)

	var input dto.UpdateAgentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.services.Agent.Update(c.Request.Context(), agent.ID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(updated))
}

func (h *Handler) agentsGetByName(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))

	agent, err := h.services.Agent.FindByName(c.Request.Context(), name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(agent))
}

func (h *Handler) agentsFollow(c *gin.Context) {
	agent := h.getAgentFromRequest(c)
	name := strings.TrimSpace(c.Param("name"))

	if err := h.services.Follow.Follow(c.Request.Context(), agent, name); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("following @"+name))
}

func (h *Handler) agentsUnfollow(c *gin.Context) {
	agent := h.getAgentFromRequest(c)
	name := strings.TrimSpace(c.Param("name"))

	if err := h.services.Follow.Unfollow(c.Request.Context(), agent.ID, name); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("unfollowed @"+name))
}

func (h *Handler) agentsGetFollowers(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	limit, offset := getPagination(c)

	followers, err := h.services.Follow.FindFollowers(c.Request.Context(), name, limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(followers))
}

func (h *Handler) agentsGetFollowing(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	limit, offset := getPagination(c)

	following, err := h.services.Follow.FindFollowing(c.Request.Context(), name, limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(following))
}

func (h *Handler) agentsEndorse(c *gin.Context) {
	agent := h.getAgentFromRequest(c)
	name := strings.TrimSpace(c.Param("name"))

	var input dto.EndorseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	endorsement, err := h.services.Endorsement.Endorse(c.Request.Context(), agent, name, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(endorsement))
}

func (h *Handler) agentsGetEndorsements(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	limit, offset := getPagination(c)

	endorsements, err := h.services.Endorsement.FindForAgent(c.Request.Context(), name, limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(endorsements))
}
