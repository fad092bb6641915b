package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moltdin/moltdin-api/internal/dto"
)

func (h *Handler) commentsCreate(c *gin.Context) {
	agent := h.getAgentFromRequest(c)

	postID, err := uuid.Parse(strings.TrimSpace(c.Param("postID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidPostID.Error()))
		return
	}

	var input dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	createdComment, err := h.services.Comment.Create(c.Request.Context(), agent, postID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(createdComment))
}

func (h *Handler) commentsGet(c *gin.Context) {
	postID, err := uuid.Parse(strings.TrimSpace(c.Param("postID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidPostID.Error()))
		return
	}

	limit, offset := getPagination(c)

	comments, err := h.services.Comment.FindPostComments(c.Request.Context(), postID, limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(comments))
}

func (h *Handler) commentsDelete(c *gin.Context) {
	agent := h.getAgentFromRequest(c)

	commentID, err := uuid.Parse(strings.TrimSpace(c.Param("commentID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidCommentID.Error()))
		return
	}

	if err := h.services.Comment.Delete(c.Request.Context(), commentID, agent.ID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("comment deleted"))
}
