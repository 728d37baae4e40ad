// model/member.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Member struct {
	ID         uuid.UUID `json:"_id"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	Email      string    `json:"email"`
	ApprovedBy uuid.UUID `json:"approvedBy"`
	JoinDate   time.Time `json:"joinDate"`
}

// MemberSummary is the slim shape returned by the member search endpoint.
type MemberSummary struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
