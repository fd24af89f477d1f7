package domain

import (
	"context"
	"time"
)

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// HomeRepository persists listings.
type HomeRepository interface {
	Create(ctx context.Context, realtorID int64, req *CreateHomeRequest) (*Home, error)
	GetByID(ctx context.Context, id int64) (*Home, error)
	// GetOwnerID returns the realtor id that owns the listing, or a
	// NotFoundError when the listing does not exist.
	GetOwnerID(ctx context.Context, id int64) (int64, error)
	List(ctx context.Context, filter HomeFilter) ([]HomeSummary, error)
	Update(ctx context.Context, id int64, req *UpdateHomeRequest) (*Home, error)
	Delete(ctx context.Context, id int64) error
}

// MessageRepository persists buyer inquiries.
type MessageRepository interface {
	Create(ctx context.Context, m *Message) (*Message, error)
	ListByHome(ctx context.Context, homeID int64) ([]MessageWithBuyer, error)
}

// AuditEntry records a principal action for the audit trail.
type AuditEntry struct {
	ID            int64
	PrincipalName string
	Action        string
	Detail        string
	CreatedAt     time.Time
}

// AuditRepository persists the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, e *AuditEntry) error
	// ListByPrincipal returns a principal's own entries, newest first.
	ListByPrincipal(ctx context.Context, principalName string, limit int64) ([]AuditEntry, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
