package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Product represents a product in the catalog. Any Product handed out by the
// store carries a resolved Category and a well-formed price; callers do not
// null-check those fields.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Category    Category  `json:"category"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Stock       int       `json:"stock" db:"stock"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// PhotoRef returns the API path under which the image service resolves this
// product's photo. The binary image itself is never embedded in the record.
func (p *Product) PhotoRef() string {
	return fmt.Sprintf("/api/v1/product/product-photo/%s", p.ID)
}

// Category represents a product category. Categories are managed elsewhere;
// this subsystem only reads them.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
