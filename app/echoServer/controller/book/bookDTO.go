package book

type CreateBookReq struct {
	Title         string   `json:"title" validate:"required"`
	Authors       []string `json:"authors" validate:"required,min=1,dive,required"`
	YearPublished int      `json:"yearPublished" validate:"omitempty,gt=0"`
	TotalCopies   int64    `json:"totalCopies" validate:"gte=0"`
}

type UpdateBookReq struct {
	Title         string   `json:"title" validate:"required"`
	Authors       []string `json:"authors" validate:"required,min=1,dive,required"`
	YearPublished int      `json:"yearPublished" validate:"omitempty,gt=0"`
}
