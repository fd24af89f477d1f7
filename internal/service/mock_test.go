package service

import (
	"context"
	"time"

	"homeboard/internal/domain"
)

// stubHomeRepo records which repository methods were invoked so tests can
// assert that denied operations never reach persistence writes.
type stubHomeRepo struct {
	owners map[int64]int64 // home id -> realtor id

	ownerLookups int
	createCalls  int
	updateCalls  int
	deleteCalls  int
	listCalls    int

	lastFilter domain.HomeFilter
}

func (s *stubHomeRepo) Create(_ context.Context, realtorID int64, req *domain.CreateHomeRequest) (*domain.Home, error) {
	s.createCalls++
	return &domain.Home{ID: 1, RealtorID: realtorID, Address: req.Address, City: req.City}, nil
}

func (s *stubHomeRepo) GetByID(_ context.Context, id int64) (*domain.Home, error) {
	owner, ok := s.owners[id]
	if !ok {
		return nil, domain.ErrNotFound("home %d not found", id)
	}
	return &domain.Home{ID: id, RealtorID: owner}, nil
}

func (s *stubHomeRepo) GetOwnerID(_ context.Context, id int64) (int64, error) {
	s.ownerLookups++
	owner, ok := s.owners[id]
	if !ok {
		return 0, domain.ErrNotFound("home %d not found", id)
	}
	return owner, nil
}

func (s *stubHomeRepo) List(_ context.Context, filter domain.HomeFilter) ([]domain.HomeSummary, error) {
	s.listCalls++
	s.lastFilter = filter
	return []domain.HomeSummary{}, nil
}

func (s *stubHomeRepo) Update(_ context.Context, id int64, _ *domain.UpdateHomeRequest) (*domain.Home, error) {
	s.updateCalls++
	return &domain.Home{ID: id}, nil
}

func (s *stubHomeRepo) Delete(_ context.Context, _ int64) error {
	s.deleteCalls++
	return nil
}

type stubMessageRepo struct {
	createCalls int
	listCalls   int
	created     []domain.Message
}

func (s *stubMessageRepo) Create(_ context.Context, m *domain.Message) (*domain.Message, error) {
	s.createCalls++
	s.created = append(s.created, *m)
	out := *m
	out.ID = int64(len(s.created))
	return &out, nil
}

func (s *stubMessageRepo) ListByHome(_ context.Context, homeID int64) ([]domain.MessageWithBuyer, error) {
	s.listCalls++
	return []domain.MessageWithBuyer{}, nil
}

type stubAuditRepo struct {
	entries []domain.AuditEntry
}

func (s *stubAuditRepo) Insert(_ context.Context, e *domain.AuditEntry) error {
	s.entries = append(s.entries, *e)
	return nil
}

func (s *stubAuditRepo) ListByPrincipal(_ context.Context, principalName string, _ int64) ([]domain.AuditEntry, error) {
	out := []domain.AuditEntry{}
	for _, e := range s.entries {
		if e.PrincipalName == principalName {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubAuditRepo) DeleteOlderThan(_ context.Context, _ time.Time) (int64, error) {
	n := int64(len(s.entries))
	s.entries = nil
	return n, nil
}

type stubUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func (s *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if s.byEmail == nil {
		s.byEmail = map[string]*domain.User{}
	}
	if _, exists := s.byEmail[u.Email]; exists {
		return nil, domain.ErrConflict("resource already exists")
	}
	s.nextID++
	out := *u
	out.ID = s.nextID
	s.byEmail[u.Email] = &out
	return &out, nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound("user %d not found", id)
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound("user %s not found", email)
	}
	return u, nil
}
