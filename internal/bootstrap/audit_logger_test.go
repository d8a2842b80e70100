package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	audit := NewStdoutAuditLogger(zap.New(core))
	audit.now = func() time.Time { return time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC) }

	audit.Log(context.Background(), AuditLog{
		Action:  "LEAVE_APPROVED",
		Message: "Leave request APPROVED",
		Meta:    map[string]any{"leave_request_id": "lr-1"},
	})

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "audit", entries[0].LoggerName)

	fields := entries[0].ContextMap()
	assert.Equal(t, "LEAVE_APPROVED", fields["action"])
	assert.Equal(t, "2024-05-01T08:30:00Z", fields["timestamp"])
}
