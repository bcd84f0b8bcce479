package handlers

import (
	"net/http"

	"dinedash/analytics"
	"dinedash/repository"

	"github.com/gin-gonic/gin"
)

// GetAnalytics summarizes every stored order (manager only)
func (h *Handler) GetAnalytics(c *gin.Context) {
	orders, err := h.Orders.List(c.Request.Context(), repository.OrderFilter{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": analytics.Summarize(orders, h.Location)})
}
