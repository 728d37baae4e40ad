package borrow

import "time"

type CreateBorrowReq struct {
	BookID             string    `json:"bookId" validate:"required,uuid"`
	Borrower           string    `json:"borrower" validate:"required,uuid"`
	PromisedReturnDate time.Time `json:"promisedReturnDate" validate:"required"`
}
