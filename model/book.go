// model/book.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID            uuid.UUID `json:"_id"`
	Title         string    `json:"title"`
	Authors       []string  `json:"authors"`
	YearPublished int       `json:"yearPublished"`
	DateAdded     time.Time `json:"dateAdded"`
}
