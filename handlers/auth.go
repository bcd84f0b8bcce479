package handlers

import (
	"net/http"

	"dinedash/middleware"
	"dinedash/validation"

	"github.com/gin-gonic/gin"
)

// Signup creates a manager account and logs it in
func (h *Handler) Signup(c *gin.Context) {
	var form validation.SignupForm
	if !bind(c, &form) {
		return
	}
	id, err := h.Sessions.Signup(c, form.Name, form.Email, form.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"user":    id,
	})
}

// Login checks credentials and sets the session cookie
func (h *Handler) Login(c *gin.Context) {
	var form validation.LoginForm
	if !bind(c, &form) {
		return
	}
	id, err := h.Sessions.Login(c, form.Email, form.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    id,
	})
}

// Logout clears the session cookie. It succeeds with or without a session.
func (h *Handler) Logout(c *gin.Context) {
	h.Sessions.ClearSession(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session reports the current identity, or null, re-checked against the
// user store.
func (h *Handler) Session(c *gin.Context) {
	id, err := h.Sessions.ResolveSession(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": id})
}

// GetProfile returns the authenticated user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.Users.GetByID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
