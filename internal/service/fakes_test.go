package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/shelfcam/shelfcam-api/internal/domain"
)

// In-memory repository fakes backing the service tests.

type fakeAccountRepo struct {
	accounts map[string]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	if _, exists := r.accounts[account.Username]; exists {
		return fmt.Errorf("duplicate username %q", account.Username)
	}
	account.ID = fmt.Sprintf("acc-%d", len(r.accounts)+1)
	r.accounts[account.Username] = account
	return nil
}

func (r *fakeAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	account, ok := r.accounts[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return account, nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.Account, error) {
	var out []*domain.Account
	for _, account := range r.accounts {
		if account.Role == role {
			out = append(out, account)
		}
	}
	return out, nil
}

type fakeInventoryRepo struct {
	products map[string]*domain.Product // keyed by product number
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{products: make(map[string]*domain.Product)}
}

func (r *fakeInventoryRepo) Create(_ context.Context, product *domain.Product) error {
	product.ID = fmt.Sprintf("prod-%d", len(r.products)+1)
	r.products[product.ProductNumber] = product
	return nil
}

func (r *fakeInventoryRepo) Update(_ context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ProductNumber]; !ok {
		return pgx.ErrNoRows
	}
	r.products[product.ProductNumber] = product
	return nil
}

func (r *fakeInventoryRepo) Delete(_ context.Context, productNumber string) error {
	if _, ok := r.products[productNumber]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.products, productNumber)
	return nil
}

func (r *fakeInventoryRepo) GetByProductNumber(_ context.Context, productNumber string) (*domain.Product, error) {
	product, ok := r.products[productNumber]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return product, nil
}

func (r *fakeInventoryRepo) GetByLocation(_ context.Context, shelfName, rackName string) (*domain.Product, error) {
	for _, product := range r.products {
		if product.ShelfName == shelfName && product.RackName == rackName {
			return product, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeInventoryRepo) FindByProductName(_ context.Context, productName string) (*domain.Product, error) {
	for _, product := range r.products {
		if strings.EqualFold(product.ProductName, productName) {
			return product, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeInventoryRepo) List(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		out = append(out, product)
	}
	return out, nil
}

type fakeShelfRepo struct {
	shelves map[string]*domain.Shelf
}

func newFakeShelfRepo() *fakeShelfRepo {
	return &fakeShelfRepo{shelves: make(map[string]*domain.Shelf)}
}

func (r *fakeShelfRepo) Create(_ context.Context, shelf *domain.Shelf) error {
	shelf.ID = fmt.Sprintf("shelf-%d", len(r.shelves)+1)
	r.shelves[shelf.Name] = shelf
	return nil
}

func (r *fakeShelfRepo) Update(_ context.Context, shelf *domain.Shelf) error {
	if _, ok := r.shelves[shelf.Name]; !ok {
		return pgx.ErrNoRows
	}
	r.shelves[shelf.Name] = shelf
	return nil
}

func (r *fakeShelfRepo) Delete(_ context.Context, name string) error {
	if _, ok := r.shelves[name]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.shelves, name)
	return nil
}

func (r *fakeShelfRepo) GetByName(_ context.Context, name string) (*domain.Shelf, error) {
	shelf, ok := r.shelves[name]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return shelf, nil
}

func (r *fakeShelfRepo) List(_ context.Context, activeOnly bool) ([]*domain.Shelf, error) {
	var out []*domain.Shelf
	for _, shelf := range r.shelves {
		if activeOnly && !shelf.Active {
			continue
		}
		out = append(out, shelf)
	}
	return out, nil
}

type fakeAlertRepo struct {
	alerts map[string]*domain.Alert
	nextID int
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: make(map[string]*domain.Alert)}
}

func (r *fakeAlertRepo) Create(_ context.Context, alert *domain.Alert) error {
	r.nextID++
	alert.ID = fmt.Sprintf("alert-%d", r.nextID)
	r.alerts[alert.ID] = alert
	return nil
}

func (r *fakeAlertRepo) Update(_ context.Context, alert *domain.Alert) error {
	if _, ok := r.alerts[alert.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.alerts[alert.ID] = alert
	return nil
}

func (r *fakeAlertRepo) GetByID(_ context.Context, id string) (*domain.Alert, error) {
	alert, ok := r.alerts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return alert, nil
}

func (r *fakeAlertRepo) ListActive(_ context.Context, shelfName string) ([]*domain.Alert, error) {
	var out []*domain.Alert
	for _, alert := range r.alerts {
		if alert.Status != domain.AlertStatusActive {
			continue
		}
		if shelfName != "" && alert.ShelfName != shelfName {
			continue
		}
		out = append(out, alert)
	}
	return out, nil
}

func (r *fakeAlertRepo) FindActive(_ context.Context, shelfName, rackName string, types []domain.AlertType) (*domain.Alert, error) {
	for _, alert := range r.alerts {
		if alert.Status != domain.AlertStatusActive {
			continue
		}
		if alert.ShelfName != shelfName || alert.RackName != rackName {
			continue
		}
		for _, t := range types {
			if alert.Type == t {
				return alert, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeAlertRepo) Statistics(_ context.Context) (*domain.AlertStatistics, error) {
	stats := &domain.AlertStatistics{
		ByPriority: make(map[domain.AlertPriority]int64),
		ByType:     make(map[domain.AlertType]int64),
	}
	for _, alert := range r.alerts {
		stats.Total++
		switch alert.Status {
		case domain.AlertStatusActive:
			stats.Active++
		case domain.AlertStatusAcknowledged:
			stats.Acknowledged++
		case domain.AlertStatusResolved:
			stats.Resolved++
		}
		stats.ByPriority[alert.Priority]++
		stats.ByType[alert.Type]++
	}
	return stats, nil
}

type fakeHistoryRepo struct {
	entries []*domain.AlertHistoryEntry
}

func (r *fakeHistoryRepo) Append(_ context.Context, entry *domain.AlertHistoryEntry) error {
	entry.ID = fmt.Sprintf("hist-%d", len(r.entries)+1)
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeHistoryRepo) ListByAlert(_ context.Context, alertID string) ([]*domain.AlertHistoryEntry, error) {
	var out []*domain.AlertHistoryEntry
	for _, entry := range r.entries {
		if entry.AlertID == alertID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type fakeAssignmentRepo struct {
	assignments map[string]*domain.StaffAssignment
	nextID      int
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[string]*domain.StaffAssignment)}
}

func (r *fakeAssignmentRepo) Create(_ context.Context, assignment *domain.StaffAssignment) error {
	r.nextID++
	assignment.ID = fmt.Sprintf("assign-%d", r.nextID)
	r.assignments[assignment.ID] = assignment
	return nil
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id string) (*domain.StaffAssignment, error) {
	assignment, ok := r.assignments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return assignment, nil
}

func (r *fakeAssignmentRepo) ListActive(_ context.Context) ([]*domain.StaffAssignment, error) {
	var out []*domain.StaffAssignment
	for _, assignment := range r.assignments {
		if assignment.Active {
			out = append(out, assignment)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) ActiveByUsername(_ context.Context, username string) ([]*domain.StaffAssignment, error) {
	var out []*domain.StaffAssignment
	for _, assignment := range r.assignments {
		if assignment.Active && assignment.Username == username {
			out = append(out, assignment)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) ActiveByShelf(_ context.Context, shelfName string) ([]*domain.StaffAssignment, error) {
	var out []*domain.StaffAssignment
	for _, assignment := range r.assignments {
		if assignment.Active && assignment.ShelfName == shelfName {
			out = append(out, assignment)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) Deactivate(_ context.Context, id string) error {
	assignment, ok := r.assignments[id]
	if !ok {
		return pgx.ErrNoRows
	}
	assignment.Active = false
	return nil
}

func (r *fakeAssignmentRepo) UpdateShelf(_ context.Context, id, shelfName, notes string) error {
	assignment, ok := r.assignments[id]
	if !ok {
		return pgx.ErrNoRows
	}
	assignment.ShelfName = shelfName
	if notes != "" {
		assignment.Notes = notes
	}
	return nil
}
