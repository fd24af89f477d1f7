package repository

import (
	"context"
	"database/sql"
	"time"

	"homeboard/internal/domain"
)

type AuditRepo struct {
	write *sql.DB
	read  *sql.DB
}

func NewAuditRepo(write, read *sql.DB) *AuditRepo {
	return &AuditRepo{write: write, read: read}
}

func (r *AuditRepo) Insert(ctx context.Context, e *domain.AuditEntry) error {
	_, err := r.write.ExecContext(ctx,
		`INSERT INTO audit_log (principal_name, action, detail) VALUES (?, ?, ?)`,
		e.PrincipalName, e.Action, e.Detail)
	return mapDBError(err)
}

func (r *AuditRepo) ListByPrincipal(ctx context.Context, principalName string, limit int64) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.read.QueryContext(ctx,
		`SELECT id, principal_name, action, detail, created_at
		 FROM audit_log WHERE principal_name = ? ORDER BY id DESC LIMIT ?`, principalName, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.PrincipalName, &e.Action, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *AuditRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.write.ExecContext(ctx,
		`DELETE FROM audit_log WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, mapDBError(err)
	}
	return res.RowsAffected()
}
