package models

import "time"

// Pin represents a map marker, optionally linked to a functie
type Pin struct {
	ID          int64     `json:"id"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Link        *string   `json:"link"`
	FunctionID  *int64    `json:"function_id"` // nil when not linked or when the functie was deleted
	CreatedAt   time.Time `json:"created_at"`
}

// CreatePinRequest holds the normalized input for a new pin
type CreatePinRequest struct {
	Lat         float64
	Lng         float64
	Title       string
	Description *string
	Link        *string
	FunctionID  *int64
}
