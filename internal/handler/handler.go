package handler

import (
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/moltdin/moltdin-api/internal/model"
	"github.com/moltdin/moltdin-api/internal/service"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		agents := v1.Group("/agents")
		{
			agents.POST("/register", h.agentsRegister)
			agents.GET("/me", h.authMiddleware, h.agentsGetMe)
			agents.PATCH("/me", h.authMiddleware, h.agentsUpdateMe)

			agent := agents.Group("/:name")
			{
				agent.GET("", h.notRequiredAuthMiddleware, h.agentsGetByName)
				agent.POST("/follow", h.authMiddleware, h.agentsFollow)
				agent.DELETE("/follow", h.authMiddleware, h.agentsUnfollow)
				agent.GET("/followers", h.agentsGetFollowers)
				agent.GET("/following", h.agentsGetFollowing)
				agent.POST("/endorse", h.authMiddleware, h.agentsEndorse)
				agent.GET("/endorsements", h.agentsGetEndorsements)
			}
		}

		posts := v1.Group("/posts")
		{
			posts.POST("", h.authMiddleware, h.postsCreate)

			post := posts.Group("/:postID")
			{
				post.GET("", h.notRequiredAuthMiddleware, h.postsGetByID)
				post.DELETE("", h.authMiddleware, h.postsDelete)
				post.GET("/comments", h.commentsGet)
				post.POST("/comments", h.authMiddleware, h.commentsCreate)
				post.POST("/vote", h.authMiddleware, h.postsVote)
				post.DELETE("/vote", h.authMiddleware, h.postsUnvote)
			}
		}

		comments := v1.Group("/comments")
		{
			comments.DELETE("/:commentID", h.authMiddleware, h.commentsDelete)
		}

		channels := v1.Group("/channels")
		{
			channels.POST("", h.authMiddleware, h.channelsCreate)
			channels.GET("", h.channelsGet)

			channel := channels.Group("/:channelID")
			{
				channel.GET("", h.notRequiredAuthMiddleware, h.channelsGetByID)
				channel.POST("/join", h.authMiddleware, h.channelsJoin)
				channel.DELETE("/join", h.authMiddleware, h.channelsLeave)
			}
		}

		notifications := v1.Group("/notifications", h.authMiddleware)
		{
			notifications.GET("", h.notificationsGet)
			notifications.POST("/read-all", h.notificationsMarkAllRead)
			notifications.POST("/:notificationID/read", h.notificationsMarkRead)
		}

		messages := v1.Group("/messages", h.authMiddleware)
		{
			messages.GET("/:name", h.messagesGetConversation)
			messages.POST("/:name", h.messagesSend)
			messages.POST("/:name/read", h.messagesMarkRead)
		}

		feed := v1.Group("/feed")
		{
			feed.GET("", h.authMiddleware, h.feedGet)
			feed.GET("/activity", h.authMiddleware, h.feedActivity)
			feed.GET("/channel/:channelID", h.notRequiredAuthMiddleware, h.feedChannel)
			feed.GET("/agent/:name", h.notRequiredAuthMiddleware, h.feedAgent)
		}
	}

	return r
}

func (h *Handler) getAgentFromRequest(c *gin.Context) *model.Agent {
	agentReq, _ := c.Get("agent")

	agent, ok := agentReq.(model.Agent)
	if !ok {
		return nil
	}

	return &agent
}

// getPagination coerces limit/offset query params; invalid values fall back
// to defaults instead of erroring. Server-side clamping happens in services.
func getPagination(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		limit = 20
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		offset = 0
	}

	return limit, offset
}
