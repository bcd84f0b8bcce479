package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"dinedash/middleware"
	"dinedash/models"
	"dinedash/repository"
	"dinedash/statemachine"
	"dinedash/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// ListOrders returns orders filtered by ?search=, ?type= and ?status=
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.Orders.List(c.Request.Context(), repository.OrderFilter{
		Search: c.Query("search"),
		Type:   models.OrderType(c.Query("type")),
		Status: models.OrderStatus(c.Query("status")),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// counts by status for the dashboard header
	summary := map[models.OrderStatus]int{}
	for _, o := range orders {
		summary[o.Status]++
	}

	c.JSON(http.StatusOK, gin.H{
		"count":        len(orders),
		"orderSummary": summary,
		"orders":       orders,
	})
}

// GetOrder returns an order with its items and status history
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.Orders.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CreateOrder records a new order. Item names and prices are copied from
// the current menu and the total is computed from them.
func (h *Handler) CreateOrder(c *gin.Context) {
	var form validation.OrderForm
	if !bind(c, &form) {
		return
	}
	ctx := c.Request.Context()

	items := make([]models.OrderItem, 0, len(form.Items))
	for i, line := range form.Items {
		menuItem, err := h.Menu.FindByID(ctx, line.MenuItemID)
		if err != nil {
			respondError(c, err)
			return
		}
		if menuItem == nil {
			respondError(c, validation.Errors{
				"items": fmt.Sprintf("Item %d: menu item %q not found.", i+1, line.MenuItemID),
			})
			return
		}
		items = append(items, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   line.Quantity,
			Price:      menuItem.Price,
			Modifiers:  datatypes.JSONSlice[string](line.Modifiers),
		})
	}

	order := &models.Order{
		Type:            models.OrderType(form.Type),
		Status:          models.OrderStatus(form.Status),
		CustomerName:    form.CustomerName,
		TableNumber:     form.TableNumber,
		DeliveryAddress: form.DeliveryAddress,
		Items:           items,
		Total:           models.ComputeTotal(items),
	}
	if order.Status == "" {
		order.Status = models.StatusPending
	}

	created, err := h.Orders.Add(ctx, order)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "order": created})
}

// UpdateOrderStatus moves an order along its lifecycle (manager only)
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var form validation.StatusForm
	if !bind(c, &form) {
		return
	}
	h.transition(c, models.OrderStatus(form.Status))
}

// CancelOrder cancels a pending or preparing order (manager only)
func (h *Handler) CancelOrder(c *gin.Context) {
	h.transition(c, models.StatusCancelled)
}

func (h *Handler) transition(c *gin.Context, to models.OrderStatus) {
	ctx := c.Request.Context()
	order, err := h.Orders.FindByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	id := middleware.GetIdentity(c)
	if err := statemachine.CanTransition(order.Status, to, string(id.Role)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":           "Invalid state transition",
			"currentStatus":   order.Status,
			"requested":       to,
			"reason":          err.Error(),
			"validNextStates": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	prev := order.Status
	err = h.Orders.UpdateStatus(ctx, order.ID, prev, to, id.ID)
	if errors.Is(err, repository.ErrStaleStatus) {
		c.JSON(http.StatusConflict, gin.H{"error": "The order changed while you were editing it. Reload and try again."})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.Orders.FindByID(ctx, order.ID)
	if err != nil || updated == nil {
		respondError(c, fmt.Errorf("reload order %s: %w", order.ID, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Order status updated",
		"previousStatus": prev,
		"order":          updated,
	})
}
