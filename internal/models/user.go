package models

import "time"

// User represents a registered customer of the store.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, never serialized
	FirstName string    `json:"firstName" gorm:"type:varchar(100)" validate:"required,max=100"`
	LastName  string    `json:"lastName" gorm:"type:varchar(100)" validate:"required,max=100"`
	CreatedAt time.Time `json:"createdAt"`
}
