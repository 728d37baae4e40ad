package member

type AddMemberReq struct {
	Name  string `json:"name" validate:"required"`
	Age   int    `json:"age" validate:"required,gt=0"`
	Email string `json:"email" validate:"required,email"`
}
