package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"linkup/internal/auth"
	"linkup/internal/graph"
	"linkup/internal/posts"
	"linkup/internal/realtime"
	apperr "linkup/pkg/errors"
)

type createPostRequest struct {
	Content string       `json:"content"`
	Image   *graph.Image `json:"image"`
}

func (h *Handler) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}

	post, err := h.engage.CreatePost(c.Request.Context(), auth.UserID(c), req.Content, req.Image)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.hub.Publish(realtime.TopicNewPost, post)

	c.JSON(http.StatusOK, post)
}

func (h *Handler) uploadImage(c *gin.Context) {
	if h.storage == nil {
		h.fail(c, apperr.External("image storage is not configured", nil))
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		h.fail(c, apperr.Validation("image file is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		h.fail(c, apperr.Validation("could not read image file"))
		return
	}
	defer file.Close()

	result, err := h.storage.Upload(c.Request.Context(), file, header.Header.Get("Content-Type"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": result.URL, "public_id": result.PublicID})
}

func (h *Handler) newsFeed(c *gin.Context) {
	page := 1
	if raw := c.Param("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.fail(c, apperr.Validation("page must be a number"))
			return
		}
		page = parsed
	}

	feed, err := h.feed.AssembleFeed(c.Request.Context(), auth.UserID(c), page)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

func (h *Handler) allPosts(c *gin.Context) {
	list, err := h.feed.RecentPosts(c.Request.Context(), posts.DefaultRecentLimit)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *Handler) totalPosts(c *gin.Context) {
	total, err := h.feed.TotalPosts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, total)
}

func (h *Handler) getPost(c *gin.Context) {
	post, err := h.feed.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) updatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}

	post, err := h.engage.UpdatePost(c.Request.Context(), c.Param("id"), auth.UserID(c), req.Content, req.Image)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) deletePost(c *gin.Context) {
	if err := h.engage.DeletePost(c.Request.Context(), c.Param("id"), auth.UserID(c)); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type likeRequest struct {
	ID string `json:"_id"`
}

func (h *Handler) likePost(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		h.fail(c, apperr.Validation("post id is required"))
		return
	}

	post, err := h.engage.Like(c.Request.Context(), req.ID, auth.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) unlikePost(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		h.fail(c, apperr.Validation("post id is required"))
		return
	}

	post, err := h.engage.Unlike(c.Request.Context(), req.ID, auth.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

type addCommentRequest struct {
	PostID  string `json:"postId"`
	Comment string `json:"comment"`
}

func (h *Handler) addComment(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PostID == "" {
		h.fail(c, apperr.Validation("post id is required"))
		return
	}

	post, err := h.engage.AddComment(c.Request.Context(), req.PostID, auth.UserID(c), req.Comment)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

type removeCommentRequest struct {
	PostID  string `json:"postId"`
	Comment struct {
		ID string `json:"_id"`
	} `json:"comment"`
}

func (h *Handler) removeComment(c *gin.Context) {
	var req removeCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PostID == "" || req.Comment.ID == "" {
		h.fail(c, apperr.Validation("post id and comment id are required"))
		return
	}

	post, err := h.engage.RemoveComment(c.Request.Context(), req.PostID, req.Comment.ID, auth.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}
