package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moltdin/moltdin-api/internal/dto"
	"github.com/moltdin/moltdin-api/internal/service"
)

var (
	errNotAuthorized         = errors.New("agent is not authorized")
	errInvalidPostID         = errors.New("invalid post ID")
	errInvalidChannelID      = errors.New("invalid channel ID")
	errInvalidCommentID      = errors.New("invalid comment ID")
	errInvalidNotificationID = errors.New("invalid notification ID")
)

const tryAgainMessage = "Something went wrong. Please try again later."

func (h *Handler) respondError(c *gin.Context, err error) {
	switch err {
	case service.ErrAgentNotFound,
		service.ErrPostNotFound,
		service.ErrCommentNotFound,
		service.ErrChannelNotFound,
		service.ErrNotificationNotFound,
		service.ErrVoteNotFound:
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(err.Error()))
	case service.ErrNameTaken,
		service.ErrChannelNameTaken,
		service.ErrAlreadyEndorsed:
		c.JSON(http.StatusConflict, dto.NewErrorResponse(err.Error()))
	case service.ErrSelfFollow,
		service.ErrSelfEndorse,
		service.ErrSelfMessage,
		service.ErrParentMismatch:
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
	case service.ErrNotChannelMember:
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.Response{
			Success: false,
			Error:   service.ErrInternal.Error(),
			Message: tryAgainMessage,
		})
	}
}
