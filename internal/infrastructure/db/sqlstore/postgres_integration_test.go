//go:build integration

package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

func TestPostgres_ActivityTriggers(t *testing.T) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("bilemo"),
		postgres.WithUsername("bilemo"),
		postgres.WithPassword("bilemo"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(ctx, Config{Driver: DriverPostgres, DSN: dsn, MaxAttempts: 5, RetryDelay: time.Second, Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))

	s := NewStore(db)
	tables := NewTableDetails(db)
	now := time.Now().UTC()

	c := &domain.Client{Name: "Orange", Email: "api@orange.test", PasswordHash: "h", Role: domain.RoleClient, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Tx(ctx, func(r ports.Repositories) error { return r.Clients().Create(ctx, c) }))

	first, err := tables.LastWrite(ctx, "clients")
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.Revision)

	dup := *c
	dup.ID = 0
	assert.ErrorIs(t, s.Clients().Create(ctx, &dup), domain.ErrDuplicate)

	c.Name = "Orange SA"
	require.NoError(t, s.Clients().Update(ctx, c))
	second, err := tables.LastWrite(ctx, "clients")
	require.NoError(t, err)
	assert.Greater(t, second.Revision, first.Revision)
	assert.True(t, second.LastWriteAt.After(first.LastWriteAt))
}
