package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"linkup/internal/auth"
	"linkup/internal/graph"
	apperr "linkup/pkg/errors"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Secret   string `json:"secret"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Secret)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *Handler) currentUser(c *gin.Context) {
	user, err := h.auth.Current(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}

type forgotPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
	Secret      string `json:"secret"`
}

func (h *Handler) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email, req.NewPassword, req.Secret); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": "congrats, now you can login with your new password"})
}

type profileUpdateRequest struct {
	Name     string       `json:"name"`
	Username string       `json:"username"`
	About    string       `json:"about"`
	Password string       `json:"password"`
	Secret   string       `json:"secret"`
	Image    *graph.Image `json:"image"`
}

func (h *Handler) profileUpdate(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), auth.UserID(c), auth.ProfileUpdate{
		Name:     req.Name,
		Username: req.Username,
		About:    req.About,
		Password: req.Password,
		Secret:   req.Secret,
		Image:    req.Image,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
