package inventory

type CreateInventoryReq struct {
	BookID string `json:"bookId" validate:"required,uuid"`
	Title  string `json:"title" validate:"required"`
	Total  int64  `json:"total" validate:"gte=0"`
}

// PatchInventoryReq carries an administrative counter override; omitted
// fields keep their current value.
type PatchInventoryReq struct {
	Title     *string `json:"title,omitempty"`
	Total     *int64  `json:"total,omitempty" validate:"omitempty,gte=0"`
	Available *int64  `json:"available,omitempty" validate:"omitempty,gte=0"`
	Borrowed  *int64  `json:"borrowed,omitempty" validate:"omitempty,gte=0"`
}
