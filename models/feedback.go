package models

import (
	"strings"
	"time"
)

// menuItemsSeparator is how the list of referenced menu items is flattened
// into the menu_items column.
const menuItemsSeparator = ", "

// Feedback is append-only: it is created once from the feedback form and
// never updated or deleted.
type Feedback struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FullName     string    `json:"fullName" gorm:"not null"`
	Address      *string   `json:"address,omitempty"`
	PhoneNumber  *string   `json:"phoneNumber,omitempty"`
	MenuItems    *string   `json:"-"`
	FeedbackText string    `json:"feedbackText" gorm:"not null"`
	SubmittedAt  time.Time `json:"submittedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Feedback) TableName() string {
	return "feedback"
}

// SetMenuItems stores names as delimited text, or NULL for an empty list.
func (f *Feedback) SetMenuItems(names []string) {
	if len(names) == 0 {
		f.MenuItems = nil
		return
	}
	joined := strings.Join(names, menuItemsSeparator)
	f.MenuItems = &joined
}

// MenuItemNames splits the stored column back into names.
func (f *Feedback) MenuItemNames() []string {
	if f.MenuItems == nil || *f.MenuItems == "" {
		return nil
	}
	parts := strings.Split(*f.MenuItems, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// FeedbackView is the JSON shape of a feedback record.
type FeedbackView struct {
	ID           uint      `json:"id"`
	FullName     string    `json:"fullName"`
	Address      *string   `json:"address,omitempty"`
	PhoneNumber  *string   `json:"phoneNumber,omitempty"`
	MenuItems    []string  `json:"menuItems,omitempty"`
	FeedbackText string    `json:"feedbackText"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

func (f *Feedback) View() FeedbackView {
	return FeedbackView{
		ID:           f.ID,
		FullName:     f.FullName,
		Address:      f.Address,
		PhoneNumber:  f.PhoneNumber,
		MenuItems:    f.MenuItemNames(),
		FeedbackText: f.FeedbackText,
		SubmittedAt:  f.SubmittedAt,
	}
}
