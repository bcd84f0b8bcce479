package models

import (
	"time"

	"gorm.io/datatypes"
)

type MenuItem struct {
	ID          string                     `json:"id" gorm:"primaryKey"`
	Name        string                     `json:"name" gorm:"not null"`
	Description string                     `json:"description"`
	Price       float64                    `json:"price" gorm:"not null"`
	Category    string                     `json:"category" gorm:"index"`
	ImageURL    string                     `json:"imageUrl,omitempty"`
	Ingredients datatypes.JSONSlice[string] `json:"ingredients"`
	CreatedAt   time.Time                  `json:"createdAt"`
}
