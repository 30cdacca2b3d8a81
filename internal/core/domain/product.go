package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Product's price carries the NUMERIC(10,2) column verbatim; keeping it as
// a decimal string avoids float rounding on the wire.
type Product struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	Price        json.Number `json:"price"`
	ImageURL     string      `json:"image_url,omitempty"`
	Stock        int         `json:"stock"`
	Active       bool        `json:"active"`
	CategoryID   uuid.UUID   `json:"category_id"`
	CategoryName string      `json:"category_name,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}
