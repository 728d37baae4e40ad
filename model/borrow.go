// model/borrow.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Borrow struct {
	ID                 uuid.UUID `json:"_id"`
	BookID             uuid.UUID `json:"bookId"`
	Title              string    `json:"title"`
	Borrower           uuid.UUID `json:"borrower"`
	ApprovedBy         uuid.UUID `json:"approvedBy"`
	Date               time.Time `json:"date"`
	PromisedReturnDate time.Time `json:"promisedReturnDate"`
	IsReturned         bool      `json:"isReturned"`
}
