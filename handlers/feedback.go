package handlers

import (
	"net/http"

	"dinedash/models"
	"dinedash/validation"

	"github.com/gin-gonic/gin"
)

// SubmitFeedback stores a guest feedback form
func (h *Handler) SubmitFeedback(c *gin.Context) {
	var form validation.FeedbackForm
	if !bind(c, &form) {
		return
	}
	f := &models.Feedback{
		FullName:     form.FullName,
		Address:      optional(form.Address),
		PhoneNumber:  optional(form.PhoneNumber),
		FeedbackText: form.FeedbackText,
	}
	f.SetMenuItems(form.MenuItems)

	saved, err := h.Feedback.Add(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Thank you! Your feedback has been submitted.",
		"feedback": saved.View(),
	})
}

// ListFeedback returns all feedback, newest first (manager only)
func (h *Handler) ListFeedback(c *gin.Context) {
	all, err := h.Feedback.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	views := make([]models.FeedbackView, len(all))
	for i := range all {
		views[i] = all[i].View()
	}
	c.JSON(http.StatusOK, gin.H{"count": len(views), "feedback": views})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
