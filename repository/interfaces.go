package repository

import (
	"context"

	"dinedash/models"
)

// UserRepositoryI defines operations on User records.
type UserRepositoryI interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// FeedbackRepositoryI defines operations on Feedback records. There is no
// update or delete.
type FeedbackRepositoryI interface {
	Add(ctx context.Context, f *models.Feedback) (*models.Feedback, error)
	List(ctx context.Context) ([]models.Feedback, error)
}

// MenuRepositoryI defines operations on MenuItem records.
type MenuRepositoryI interface {
	List(ctx context.Context, filter MenuFilter) ([]models.MenuItem, error)
	Add(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	FindByID(ctx context.Context, id string) (*models.MenuItem, error)
	Categories(ctx context.Context) ([]string, error)
}

// OrderRepositoryI defines operations on Order records.
type OrderRepositoryI interface {
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	Add(ctx context.Context, o *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus, changedBy uint) error
}

// MenuFilter narrows a menu listing. Empty fields match everything.
type MenuFilter struct {
	Search   string // case-insensitive substring of name or description
	Category string
}

// OrderFilter narrows an order listing. Empty fields match everything.
type OrderFilter struct {
	Search string // case-insensitive substring of id, customer name or item name
	Type   models.OrderType
	Status models.OrderStatus
}
