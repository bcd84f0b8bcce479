package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"dinedash/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// List returns orders with their items, newest first.
func (r *OrderRepository) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := r.db.WithContext(ctx).Preload("Items")
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where(
			"LOWER(id) LIKE ? OR LOWER(customer_name) LIKE ? OR id IN (SELECT order_id FROM order_items WHERE LOWER(name) LIKE ?)",
			like, like, like,
		)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var orders []models.Order
	err := query.Order("created_at desc, id asc").Find(&orders).Error
	return orders, err
}

// Add stores an order together with its items and the initial history
// entry. The id is generated when empty.
func (r *OrderRepository) Add(ctx context.Context, o *models.Order) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = models.StatusPending
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("StatusHistory").Create(o).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:  o.ID,
			ToStatus: o.Status,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return o, nil
}

// FindByID returns the order with items and status history, or (nil, nil).
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var o models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Where("id = ?", id).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// UpdateStatus moves an order from one status to another and records the
// change. It fails with ErrStaleStatus if the order is no longer in from.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus, changedBy uint) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", id, from).
			Update("status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleStatus
		}
		history := models.OrderStatusHistory{
			OrderID:    id,
			FromStatus: from,
			ToStatus:   to,
			ChangedBy:  changedBy,
		}
		return tx.Create(&history).Error
	})
}
