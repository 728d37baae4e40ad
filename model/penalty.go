// model/penalty.go
package model

import "github.com/google/uuid"

// Penalty is the fine assessed for a late return, keyed by the
// originating borrow record.
type Penalty struct {
	BorrowID   uuid.UUID `json:"_id"`
	BookID     uuid.UUID `json:"bookId"`
	Title      string    `json:"title"`
	Borrower   uuid.UUID `json:"borrower"`
	ApprovedBy uuid.UUID `json:"approvedBy"`
	Penalty    float64   `json:"penalty"`
}
