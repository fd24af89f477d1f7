package service

import (
	"context"
	"log/slog"
	"time"

	"homeboard/internal/domain"
)

// AuditService exposes the audit trail and its retention sweep.
type AuditService struct {
	repo   domain.AuditRepository
	logger *slog.Logger
}

// NewAuditService creates a new AuditService.
func NewAuditService(repo domain.AuditRepository, logger *slog.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

// List returns the caller's own most recent audit entries, newest first.
// Principals never see each other's activity.
func (s *AuditService) List(ctx context.Context, principal *domain.Principal, limit int64) ([]domain.AuditEntry, error) {
	return s.repo.ListByPrincipal(ctx, principal.Email, limit)
}

// Prune deletes audit entries older than the retention window. Run on a
// schedule; failures are logged, not fatal.
func (s *AuditService) Prune(ctx context.Context, retention time.Duration) {
	cutoff := time.Now().Add(-retention)
	n, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Warn("audit prune failed", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("audit prune complete", "deleted", n, "cutoff", cutoff)
	}
}
