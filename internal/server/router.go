package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/whisper/internal/handlers"
	"github.com/thereayou/whisper/internal/middleware"
	"github.com/thereayou/whisper/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	userH *handlers.UserHandler,
	friendH *handlers.FriendHandler,
	messageH *handlers.MessageHandler,
	notificationH *handlers.NotificationHandler,
	wsH *handlers.WebSocketHandler,
) {
	// Auth endpoints
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
	}

	authed := r.Group("/api", middleware.AuthMiddleware(jwtMgr, rdb))
	{
		authed.GET("/auth/me", authH.GetMe)
		authed.POST("/auth/logout", authH.Logout)
		authed.PUT("/auth/change-password", authH.ChangePassword)
		authed.POST("/auth/delete-account", authH.DeleteAccount)

		authed.PUT("/users/profile", userH.UpdateProfile)
		authed.GET("/users/search", userH.SearchUsers)

		authed.POST("/friends/request", friendH.SendRequest)
		authed.POST("/friends/accept/:userId", friendH.Accept)
		authed.POST("/friends/reject/:userId", friendH.Reject)
		authed.DELETE("/friends/:userId", friendH.Remove)
		authed.GET("/friends", friendH.List)
		authed.GET("/friends/requests", friendH.PendingRequests)

		authed.POST("/messages", messageH.Send)
		authed.GET("/messages/:friendId", messageH.Conversation)
		authed.DELETE("/messages/:messageId", messageH.Delete)
		authed.PUT("/messages/seen/:messageId", messageH.MarkSeen)

		authed.GET("/notifications", notificationH.List)
		authed.PUT("/notifications/:id/read", notificationH.MarkRead)
		authed.PUT("/notifications/read-all", notificationH.MarkAllRead)
		authed.DELETE("/notifications/:id", notificationH.Delete)
		authed.DELETE("/notifications/clear-all", notificationH.ClearAll)
	}

	// WebSocket endpoint
	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.HandleWebSocket)
}
