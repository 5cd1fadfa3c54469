package models

import "time"

// Product represents a product in the catalogue.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Description string    `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Category    string    `json:"category" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	ImageURL    string    `json:"imageUrl" gorm:"column:image_url" validate:"omitempty,max=255"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
