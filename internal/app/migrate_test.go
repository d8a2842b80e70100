package app

import (
	"context"
	"testing"

	"go-hrms/internal/config"
	"go-hrms/internal/shared/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	db := testdb.Open(t)

	require.NoError(t, Migrate(db))

	for _, table := range []string{
		"organizations", "departments", "employees", "users",
		"leave_types", "leave_requests", "attendances",
		"roles", "permissions", "role_permissions", "employee_roles",
		"organization_counters", "outbox_events",
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	// a second run is a no-op
	assert.NoError(t, Migrate(db))
}

func TestRunWorker_RequiresBroker(t *testing.T) {
	cfg := &config.Config{}

	assert.ErrorIs(t, RunWorker(context.Background(), cfg), ErrKafkaBrokerRequired)
	assert.ErrorIs(t, RunConsumer(context.Background(), cfg), ErrKafkaBrokerRequired)
}
