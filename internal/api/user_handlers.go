package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"linkup/internal/auth"
	"linkup/internal/social"
	apperr "linkup/pkg/errors"
)

func (h *Handler) findPeople(c *gin.Context) {
	users, err := h.social.DiscoverPeople(c.Request.Context(), auth.UserID(c), social.DefaultDiscoverLimit)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

type followRequest struct {
	ID string `json:"_id"`
}

func (h *Handler) userFollow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		h.fail(c, apperr.Validation("target user id is required"))
		return
	}

	actor, err := h.social.Follow(c.Request.Context(), auth.UserID(c), req.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, actor)
}

func (h *Handler) userUnfollow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		h.fail(c, apperr.Validation("target user id is required"))
		return
	}

	actor, err := h.social.Unfollow(c.Request.Context(), auth.UserID(c), req.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, actor)
}

func (h *Handler) userFollowing(c *gin.Context) {
	users, err := h.social.Following(c.Request.Context(), auth.UserID(c), social.DefaultFollowingLimit)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *Handler) searchUser(c *gin.Context) {
	users, err := h.social.Search(c.Request.Context(), c.Param("query"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.social.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
