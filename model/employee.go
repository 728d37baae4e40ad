package model

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID           uuid.UUID `json:"_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	JoinDate     time.Time `json:"joinDate"`
}
