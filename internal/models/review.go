package models

import "time"

// Review is a user-submitted rating and comment for a product. Immutable
// after creation.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index"`
	ProductID uint      `json:"productId" gorm:"index"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment" gorm:"type:varchar(1000)"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductReview is the read model for a product's review list: the review
// joined with the submitter's name.
type ProductReview struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	ProductID uint      `json:"productId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}
