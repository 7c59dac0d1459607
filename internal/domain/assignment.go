package domain

import "time"

// StaffAssignment links a staff account to the shelf they are responsible
// for. A staff member holds at most one active assignment per shelf.
type StaffAssignment struct {
	ID         string
	Username   string
	ShelfName  string
	AssignedBy string
	Active     bool
	Notes      string
	AssignedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
