// Package api exposes the REST and websocket surface of the service.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"linkup/internal/auth"
	"linkup/internal/posts"
	"linkup/internal/realtime"
	"linkup/internal/social"
	"linkup/internal/storage"
	"linkup/pkg/logger"
)

// Handler aggregates all HTTP handlers
type Handler struct {
	auth     *auth.Service
	tokens   *auth.TokenManager
	social   *social.Service
	feed     *posts.Assembler
	engage   *posts.Engagement
	storage  storage.Storage
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHandler creates a handler over the service layer. storage may be nil
// when no object store is configured; uploads then fail cleanly.
func NewHandler(
	authService *auth.Service,
	tokens *auth.TokenManager,
	socialService *social.Service,
	feed *posts.Assembler,
	engage *posts.Engagement,
	store storage.Storage,
	hub *realtime.Hub,
) *Handler {
	return &Handler{
		auth:    authService,
		tokens:  tokens,
		social:  socialService,
		feed:    feed,
		engage:  engage,
		storage: store,
		hub:     hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.Get(),
	}
}

// Register wires all routes onto the router
func (h *Handler) Register(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/ws", func(c *gin.Context) {
		h.hub.ServeWS(c.Writer, c.Request, h.upgrader)
	})

	api := router.Group("/api")
	{
		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.POST("/forgot-password", h.forgotPassword)

		api.GET("/user/:username", h.getUser)
		api.GET("/search-user/:query", h.searchUser)
		api.GET("/posts", h.allPosts)
		api.GET("/post/:id", h.getPost)
		api.GET("/total-posts", h.totalPosts)

		authed := api.Group("", auth.RequireAuth(h.tokens))
		{
			authed.GET("/current-user", h.currentUser)
			authed.PUT("/profile-update", h.profileUpdate)

			authed.GET("/find-people", h.findPeople)
			authed.PUT("/user-follow", h.userFollow)
			authed.PUT("/user-unfollow", h.userUnfollow)
			authed.GET("/user-following", h.userFollowing)

			authed.POST("/create-post", h.createPost)
			authed.POST("/upload-image", h.uploadImage)
			authed.GET("/news-feed", h.newsFeed)
			authed.GET("/news-feed/:page", h.newsFeed)
			authed.GET("/user-post/:id", h.getPost)
			authed.PUT("/update-post/:id", h.updatePost)
			authed.DELETE("/delete-post/:id", h.deletePost)
			authed.PUT("/like-post", h.likePost)
			authed.PUT("/unlike-post", h.unlikePost)
			authed.PUT("/add-comment", h.addComment)
			authed.PUT("/remove-comment", h.removeComment)
		}
	}
}
