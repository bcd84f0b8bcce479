package repository

import (
	"context"
	"time"

	"dinedash/models"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Add appends a feedback record, stamping SubmittedAt when unset.
func (r *FeedbackRepository) Add(ctx context.Context, f *models.Feedback) (*models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if f.SubmittedAt.IsZero() {
		f.SubmittedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

// List returns all feedback, newest first.
func (r *FeedbackRepository) List(ctx context.Context) ([]models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out []models.Feedback
	err := r.db.WithContext(ctx).Order("submitted_at desc, id desc").Find(&out).Error
	return out, err
}
