package db

import (
	"time"
)

// Document represents a stored resume document row
type Document struct {
	Key       string    `json:"key"`
	Content   string    `json:"content"`
	Revision  int       `json:"revision"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
