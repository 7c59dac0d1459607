package dto

import (
	"time"

	"github.com/shelfcam/shelfcam-api/internal/domain"
)

// AssignmentCreateRequest payload for assigning staff to a shelf.
type AssignmentCreateRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	ShelfName string `json:"shelf_name" validate:"required,min=1,max=100"`
	Notes     string `json:"notes" validate:"omitempty,max=1000"`
}

// AssignmentTransferRequest payload for moving an assignment.
type AssignmentTransferRequest struct {
	ShelfName string `json:"shelf_name" validate:"required,min=1,max=100"`
	Notes     string `json:"notes" validate:"omitempty,max=1000"`
}

// AssignmentResponse is the public view of an assignment.
type AssignmentResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	ShelfName  string    `json:"shelf_name"`
	AssignedBy string    `json:"assigned_by"`
	Active     bool      `json:"is_active"`
	Notes      string    `json:"notes,omitempty"`
	AssignedAt time.Time `json:"assigned_at"`
}

// NewAssignmentResponse maps an assignment to its response shape.
func NewAssignmentResponse(assignment *domain.StaffAssignment) AssignmentResponse {
	return AssignmentResponse{
		ID:         assignment.ID,
		Username:   assignment.Username,
		ShelfName:  assignment.ShelfName,
		AssignedBy: assignment.AssignedBy,
		Active:     assignment.Active,
		Notes:      assignment.Notes,
		AssignedAt: assignment.AssignedAt,
	}
}

// NewAssignmentResponses maps an assignment slice.
func NewAssignmentResponses(assignments []*domain.StaffAssignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		out = append(out, NewAssignmentResponse(assignment))
	}
	return out
}
