package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/worker"
)

// memTicketRepository keeps tickets in memory and joins names from a fixed
// user table, mirroring the Postgres repository's read shape.
type memTicketRepository struct {
	mu      sync.Mutex
	nextID  int64
	tickets map[int64]domain.Ticket
	names   map[int64]string
	now     func() time.Time

	CreateErr  error
	CountErr   error
	UpdateFunc func(ctx context.Context, t *domain.Ticket) error
}

func newMemTicketRepository(names map[int64]string) *memTicketRepository {
	return &memTicketRepository{
		tickets: map[int64]domain.Ticket{},
		names:   names,
		now:     func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) },
	}
}

func (m *memTicketRepository) seed(t domain.Ticket) domain.Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == 0 {
		m.nextID++
		t.ID = m.nextID
	} else if t.ID > m.nextID {
		m.nextID = t.ID
	}
	m.tickets[t.ID] = t
	return t
}

func (m *memTicketRepository) join(t domain.Ticket) domain.Ticket {
	t.CreatorName = m.names[t.CreatorID]
	t.AssigneeName = nil
	if t.AssigneeID != nil {
		name, ok := m.names[*t.AssigneeID]
		if !ok {
			t.Unassign()
		} else {
			t.AssigneeName = &name
		}
	}
	return t
}

func (m *memTicketRepository) Create(_ context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	t := *ticket
	t.CreatedAt = m.now()
	t = m.seed(t)
	joined := m.join(t)
	return &joined, nil
}

func (m *memTicketRepository) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	joined := m.join(t)
	return &joined, nil
}

func (m *memTicketRepository) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []domain.Ticket{}
	for _, t := range m.tickets {
		if matches(t, filter) {
			result = append(result, m.join(t))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (m *memTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, ticket)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = ticket.Status
	stored.Priority = ticket.Priority
	stored.AssigneeID = ticket.AssigneeID
	stored.ClosedAt = ticket.ClosedAt
	m.tickets[ticket.ID] = stored
	return nil
}

func (m *memTicketRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.tickets, id)
	return nil
}

func (m *memTicketRepository) Count(ctx context.Context, filter repository.TicketFilter) (int64, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	list, _ := m.List(ctx, filter)
	return int64(len(list)), nil
}

func (m *memTicketRepository) CountByStatus(ctx context.Context, filter repository.TicketFilter) (map[domain.TicketStatus]int64, error) {
	if m.CountErr != nil {
		return nil, m.CountErr
	}
	list, _ := m.List(ctx, filter)
	counts := map[domain.TicketStatus]int64{}
	for _, t := range list {
		counts[t.Status]++
	}
	return counts, nil
}

func (m *memTicketRepository) CountByDay(ctx context.Context, from, before time.Time) ([]domain.DailyCount, error) {
	list, _ := m.List(ctx, repository.TicketFilter{CreatedFrom: &from, CreatedBefore: &before})
	byDay := map[time.Time]int64{}
	for _, t := range list {
		c := t.CreatedAt.UTC()
		byDay[time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, time.UTC)]++
	}
	result := []domain.DailyCount{}
	for day, n := range byDay {
		result = append(result, domain.DailyCount{Date: day, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func matches(t domain.Ticket, f repository.TicketFilter) bool {
	if f.CreatorID != nil && t.CreatorID != *f.CreatorID {
		return false
	}
	if f.AssigneeID != nil && (t.AssigneeID == nil || *t.AssigneeID != *f.AssigneeID) {
		return false
	}
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, t.Status) {
		return false
	}
	if len(f.ExcludeStatuses) > 0 && containsStatus(f.ExcludeStatuses, t.Status) {
		return false
	}
	if f.CreatedFrom != nil && t.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedBefore != nil && !t.CreatedAt.Before(*f.CreatedBefore) {
		return false
	}
	return true
}

func containsStatus(list []domain.TicketStatus, s domain.TicketStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type mockCommentRepository struct {
	CreateFunc       func(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	ListByTicketFunc func(ctx context.Context, ticketID int64) ([]domain.Comment, error)
}

func (m *mockCommentRepository) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	created := *c
	created.ID = 1
	return &created, nil
}

func (m *mockCommentRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Comment, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return []domain.Comment{}, nil
}

type mockUserRepository struct {
	CreateFunc      func(ctx context.Context, u *domain.User) error
	UpdateFunc      func(ctx context.Context, u *domain.User) error
	DeleteFunc      func(ctx context.Context, id int64) error
	GetByIDFunc     func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFunc  func(ctx context.Context, email string) (*domain.User, error)
	ListFunc        func(ctx context.Context) ([]domain.User, error)
	CountFunc       func(ctx context.Context) (int64, error)
	CountByRoleFunc func(ctx context.Context, role domain.Role) (int64, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	u.ID = 1
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.User{}, nil
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *mockUserRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	if m.CountByRoleFunc != nil {
		return m.CountByRoleFunc(ctx, role)
	}
	return 0, nil
}

type mockInventoryRepository struct {
	CreateFunc  func(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error)
	UpdateFunc  func(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error)
	GetByIDFunc func(ctx context.Context, id int64) (*domain.InventoryItem, error)
	ListFunc    func(ctx context.Context, assigneeID *int64) ([]domain.InventoryItem, error)
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *mockInventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	created := *item
	created.ID = 1
	return &created, nil
}

func (m *mockInventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, item)
	}
	return item, nil
}

func (m *mockInventoryRepository) GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockInventoryRepository) List(ctx context.Context, assigneeID *int64) ([]domain.InventoryItem, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, assigneeID)
	}
	return []domain.InventoryItem{}, nil
}

func (m *mockInventoryRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		out = append(out, e.Type)
	}
	return out
}

type mockLimiter struct {
	CheckErr error
	failures int
	resets   int
}

func (m *mockLimiter) Check(context.Context, string) error { return m.CheckErr }
func (m *mockLimiter) RecordFailure(context.Context, string) { m.failures++ }
func (m *mockLimiter) Reset(context.Context, string) { m.resets++ }

type recordingMailer struct {
	sent []worker.Mail
}

func (m *recordingMailer) Enqueue(mail worker.Mail) bool {
	m.sent = append(m.sent, mail)
	return true
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }

var (
	adminActor = domain.Actor{ID: 1, Role: domain.RoleAdmin}
	techActor  = domain.Actor{ID: 2, Role: domain.RoleTechnician}
	aliceActor = domain.Actor{ID: 3, Role: domain.RoleUser}
	bobActor   = domain.Actor{ID: 4, Role: domain.RoleUser}
)

func testNames() map[int64]string {
	return map[int64]string{1: "Ada Admin", 2: "Tess Tech", 3: "Alice", 4: "Bob"}
}

func errNoRows() error { return pgx.ErrNoRows }
