package penalty

type AddPenaltyReq struct {
	BorrowID string  `json:"_id" validate:"required,uuid"`
	BookID   string  `json:"bookId" validate:"required,uuid"`
	Title    string  `json:"title" validate:"required"`
	Borrower string  `json:"borrower" validate:"required,uuid"`
	Penalty  float64 `json:"penalty" validate:"gte=0"`
}
