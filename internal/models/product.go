package models

import "time"

// Product represents a product in the catalog. The ID and creation timestamp
// are assigned by the database on insert and never change afterwards. The
// unique index on Name backstops the application-level duplicate check under
// concurrent writers.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;uniqueIndex;not null"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Category    string    `json:"category" gorm:"size:100;not null"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductInput is the request body for creating or updating a product. The
// same full payload is used for both; partial updates are not supported.
type ProductInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required,max=100"`
	Description *string `json:"description"`
}
