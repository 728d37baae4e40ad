// model/inventory.go
package model

import "github.com/google/uuid"

// Inventory tracks per-book lending capacity. At rest,
// Available + Borrowed == Total and both counters are >= 0.
type Inventory struct {
	BookID    uuid.UUID `json:"_id"`
	Title     string    `json:"title"`
	Total     int64     `json:"total"`
	Available int64     `json:"available"`
	Borrowed  int64     `json:"borrowed"`
}

// Consistent reports whether the at-rest counter invariant holds.
func (i Inventory) Consistent() bool {
	return i.Total >= 0 && i.Available >= 0 && i.Borrowed >= 0 &&
		i.Available+i.Borrowed == i.Total
}
