package entities

import "time"

// Brand represents a curated brand listing in the directory
type Brand struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	LogoURL      string    `json:"logo_url" db:"logo_url"`
	Category     string    `json:"category" db:"category"`
	Rating       float64   `json:"rating" db:"rating"`
	Featured     bool      `json:"featured" db:"featured"`
	Website      string    `json:"website" db:"website"`
	ProductTypes []string  `json:"product_types" db:"product_types"`
	Location     string    `json:"location" db:"location"`
	Slug         string    `json:"slug" db:"slug"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
