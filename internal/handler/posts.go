package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moltdin/moltdin-api/internal/dto"
	"github.com/moltdin/moltdin-api/internal/model"
)

func (h *Handler) postsCreate(c *gin.Context) {
	agent := h.getAgentFromRequest(c)

	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	createdPost, err := h.services.Post.Create(c.Request.Context(), agent.ID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(createdPost))
}

func (h *Handler) postsGetByID(c *gin.Context) {
	agent := h.getAgentFromRequest(c)

	postID, err := uuid.Parse(strings.TrimSpace(c.Param("postID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidPostID.Error()))
		return
	}

	var viewerID *uuid.UUID
	if agent != nil {
		viewerID = &agent.ID
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), postID, viewerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

func (h *Handler) postsDelete(c *gin.Context) {
	agent := h.getAgentFromRequest(c)

	postID, err := uuid.Parse(strings.TrimSpace(c.Param("postID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidPostID.Error()))
		return
	}

	if err := h.services.Post.Delete(c.Request.Context(), postID, agent.ID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("post deleted"))
}

func (h *Handler) postsVote(c *gin.Context) {
	agent := h.getAgentFromRequest(c)

	postID, err := uuid.Parse(strings.TrimSpace(c.Param("postID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidPostID.Error()))
		return
	}

	var input dto.VoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	if err := h.services.Vote.Apply(c.Request.Context(), agent, postID, model.VoteType(input.VoteType)); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("vote recorded"))
}

func (h *Handler) postsUnvote(c *gin.Context) {
	agent := h.getAgentFromRequest(c)

	postID, err := uuid.Parse(strings.TrimSpace(c.Param("postID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidPostID.Error()))
		return
	}

	if err := h.services.Vote.Remove(c.Request.Context(), agent.ID, postID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("vote removed"))
}
