package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shelfcam/shelfcam-api/internal/domain"
	"github.com/shelfcam/shelfcam-api/internal/repository"
	apperrors "github.com/shelfcam/shelfcam-api/pkg/util"
)

// AssignmentService manages staff-to-shelf assignments.
type AssignmentService struct {
	assignments repository.AssignmentRepository
	accounts    repository.AccountRepository
	shelves     repository.ShelfRepository
}

// NewAssignmentService builds the service.
func NewAssignmentService(assignments repository.AssignmentRepository, accounts repository.AccountRepository, shelves repository.ShelfRepository) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		accounts:    accounts,
		shelves:     shelves,
	}
}

// Assign puts a staff member in charge of a shelf. Only staff accounts can
// be assigned, and only to active shelves.
func (s *AssignmentService) Assign(ctx context.Context, username, shelfName, assignedBy, notes string) (*domain.StaffAssignment, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff account", map[string]any{"username": username})
		}
		return nil, err
	}
	if account.Role != domain.RoleStaff {
		return nil, apperrors.NewValidationError("only staff accounts can be assigned to shelves", map[string]any{
			"username": username,
			"role":     string(account.Role),
		})
	}

	shelf, err := s.shelves.GetByName(ctx, shelfName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("shelf", map[string]any{"name": shelfName})
		}
		return nil, err
	}
	if !shelf.Active {
		return nil, apperrors.NewValidationError("cannot assign staff to an inactive shelf", map[string]any{
			"shelf_name": shelfName,
		})
	}

	assignment := &domain.StaffAssignment{
		Username:   username,
		ShelfName:  shelfName,
		AssignedBy: assignedBy,
		Active:     true,
		Notes:      notes,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// ListActive returns all active assignments.
func (s *AssignmentService) ListActive(ctx context.Context) ([]*domain.StaffAssignment, error) {
	return s.assignments.ListActive(ctx)
}

// ForStaff returns the caller's own active assignments.
func (s *AssignmentService) ForStaff(ctx context.Context, username string) ([]*domain.StaffAssignment, error) {
	return s.assignments.ActiveByUsername(ctx, username)
}

// Unassign deactivates an assignment.
func (s *AssignmentService) Unassign(ctx context.Context, id string) error {
	if err := s.assignments.Deactivate(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("assignment", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// Transfer moves an active assignment to a different shelf.
func (s *AssignmentService) Transfer(ctx context.Context, id, newShelfName, notes string) (*domain.StaffAssignment, error) {
	shelf, err := s.shelves.GetByName(ctx, newShelfName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("shelf", map[string]any{"name": newShelfName})
		}
		return nil, err
	}
	if !shelf.Active {
		return nil, apperrors.NewValidationError("cannot transfer staff to an inactive shelf", map[string]any{
			"shelf_name": newShelfName,
		})
	}

	if err := s.assignments.UpdateShelf(ctx, id, newShelfName, notes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignment", map[string]any{"id": id})
		}
		return nil, err
	}
	return s.assignments.GetByID(ctx, id)
}

// Dashboard summarizes shelf coverage for managers.
type AssignmentDashboard struct {
	Shelves        []ShelfCoverage `json:"shelves"`
	UnassignedOnly int             `json:"unassigned_shelves"`
	AvailableStaff []string        `json:"available_staff"`
}

// ShelfCoverage lists the staff covering one shelf.
type ShelfCoverage struct {
	ShelfName     string   `json:"shelf_name"`
	AssignedStaff []string `json:"assigned_staff"`
}

// Dashboard builds a coverage overview: every active shelf with its staff,
// plus staff accounts holding no assignment at all.
func (s *AssignmentService) Dashboard(ctx context.Context) (*AssignmentDashboard, error) {
	shelves, err := s.shelves.List(ctx, true)
	if err != nil {
		return nil, err
	}
	active, err := s.assignments.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	staff, err := s.accounts.ListByRole(ctx, domain.RoleStaff)
	if err != nil {
		return nil, err
	}

	byShelf := make(map[string][]string)
	assigned := make(map[string]bool)
	for _, a := range active {
		byShelf[a.ShelfName] = append(byShelf[a.ShelfName], a.Username)
		assigned[a.Username] = true
	}

	dashboard := &AssignmentDashboard{}
	for _, shelf := range shelves {
		coverage := ShelfCoverage{
			ShelfName:     shelf.Name,
			AssignedStaff: byShelf[shelf.Name],
		}
		if len(coverage.AssignedStaff) == 0 {
			dashboard.UnassignedOnly++
		}
		dashboard.Shelves = append(dashboard.Shelves, coverage)
	}
	for _, account := range staff {
		if !assigned[account.Username] {
			dashboard.AvailableStaff = append(dashboard.AvailableStaff, account.Username)
		}
	}
	return dashboard, nil
}
