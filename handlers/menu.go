package handlers

import (
	"net/http"

	"dinedash/models"
	"dinedash/repository"
	"dinedash/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// ListMenu returns menu items, optionally filtered by ?search= and ?category=
func (h *Handler) ListMenu(c *gin.Context) {
	items, err := h.Menu.List(c.Request.Context(), repository.MenuFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu": items})
}

// ListCategories returns the distinct menu categories
func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.Menu.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

// GetMenuItem returns a single menu item
func (h *Handler) GetMenuItem(c *gin.Context) {
	item, err := h.Menu.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// AddMenuItem adds a dish to the menu (manager only)
func (h *Handler) AddMenuItem(c *gin.Context) {
	var form validation.MenuItemForm
	if !bind(c, &form) {
		return
	}
	item, err := h.Menu.Add(c.Request.Context(), &models.MenuItem{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Category:    form.Category,
		ImageURL:    form.ImageURL,
		Ingredients: datatypes.JSONSlice[string](form.Ingredients),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}
