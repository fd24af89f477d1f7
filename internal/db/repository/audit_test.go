package repository

import (
	"context"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "homeboard/internal/db"
	"homeboard/internal/domain"
)

func TestAuditRepo_InsertAndList(t *testing.T) {
	writeDB, readDB := internaldb.OpenTestSQLite(t)
	repo := NewAuditRepo(writeDB, readDB)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &domain.AuditEntry{
		PrincipalName: "rita@example.com", Action: "CREATE_HOME", Detail: "home 1",
	}))
	require.NoError(t, repo.Insert(ctx, &domain.AuditEntry{
		PrincipalName: "rita@example.com", Action: "UPDATE_HOME", Detail: "home 1",
	}))
	require.NoError(t, repo.Insert(ctx, &domain.AuditEntry{
		PrincipalName: "bola@example.com", Action: "INQUIRE",
	}))

	entries, err := repo.ListByPrincipal(ctx, "rita@example.com", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Newest first, and only the requested principal's entries.
	assert.Equal(t, "UPDATE_HOME", entries[0].Action)
	assert.Equal(t, "CREATE_HOME", entries[1].Action)

	entries, err = repo.ListByPrincipal(ctx, "bola@example.com", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "INQUIRE", entries[0].Action)
}

func TestAuditRepo_DeleteOlderThan(t *testing.T) {
	writeDB, readDB := internaldb.OpenTestSQLite(t)
	repo := NewAuditRepo(writeDB, readDB)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &domain.AuditEntry{
		PrincipalName: "rita@example.com", Action: "SIGNIN",
	}))

	// Entries newer than the cutoff survive.
	n, err := repo.DeleteOlderThan(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	// A future cutoff sweeps everything.
	n, err = repo.DeleteOlderThan(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	entries, err := repo.ListByPrincipal(ctx, "rita@example.com", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
