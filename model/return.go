// model/return.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Return closes a Borrow. BorrowID references the originating borrow
// record, one return per borrow.
type Return struct {
	BorrowID   uuid.UUID `json:"_id"`
	BookID     uuid.UUID `json:"bookId"`
	Title      string    `json:"title"`
	Borrower   uuid.UUID `json:"borrower"`
	ApprovedBy uuid.UUID `json:"approvedBy"`
	BorrowDate time.Time `json:"borrowDate"`
	ReturnDate time.Time `json:"returnDate"`
}
