// Package handlers holds the gin handlers behind the DineDash API.
package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"dinedash/repository"
	"dinedash/session"
	"dinedash/validation"

	"github.com/gin-gonic/gin"
)

// Deps is everything the handlers read from or write to.
type Deps struct {
	Sessions *session.Issuer
	Users    repository.UserRepositoryI
	Menu     repository.MenuRepositoryI
	Orders   repository.OrderRepositoryI
	Feedback repository.FeedbackRepositoryI
	Location *time.Location // analytics buckets; UTC when nil
}

type Handler struct {
	Deps
}

func New(deps Deps) *Handler {
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	return &Handler{Deps: deps}
}

const (
	msgInvalidForm = "Invalid form data."
	msgUnexpected  = "Something went wrong. Please try again."
)

// bind decodes the JSON body into form and validates it, writing the 400
// response itself when either step fails.
func bind(c *gin.Context, form validation.Form) bool {
	if err := c.ShouldBindJSON(form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be valid JSON."})
		return false
	}
	if err := validation.Check(form); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

// respondError maps err onto a status code and a user-facing message.
// Anything unrecognised is logged and reported generically.
func respondError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidForm, "errors": verrs})
	case errors.Is(err, session.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
	case errors.Is(err, session.ErrDuplicateAccount):
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists."})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgUnexpected})
	}
}
