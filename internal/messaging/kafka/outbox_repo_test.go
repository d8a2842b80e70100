package kafka

import (
	"context"
	"testing"
	"time"

	"go-hrms/internal/shared/testdb"

	"github.com/stretchr/testify/assert"
)

func TestOutboxRepository_Backoff(t *testing.T) {
	db := testdb.Open(t, &OutboxEvent{})
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := &outboxRepository{db: db, now: func() time.Time { return now }}
	ctx := context.Background()

	event, err := NewOutboxEvent("rid-1", "leave_request", "3c7e9a50-7d8e-4f43-8d3a-5b0d6f9e2a10", "leave_request_decided", "hr.leave.lifecycle.v1", map[string]string{"status": "APPROVED"})
	assert.NoError(t, err)
	assert.NoError(t, repo.Create(ctx, event))

	pending, err := repo.ListPending(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.JSONEq(t, `{"status":"APPROVED"}`, string(pending[0].Payload))

	assert.NoError(t, repo.MarkFailed(ctx, pending[0], "timeout"))

	pending, err = repo.ListPending(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, pending)

	now = now.Add(16 * time.Second)
	pending, err = repo.ListPending(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].RetryCount)

	assert.NoError(t, repo.MarkSent(ctx, event.ID))
	pending, err = repo.ListPending(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, pending)
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := OutboxEvent{ID: "id", Topic: "t", Payload: []byte(`{}`), Status: OutboxStatusPending}
	assert.NoError(t, ValidateOutboxEvent(valid))

	noTopic := valid
	noTopic.Topic = ""
	assert.Error(t, ValidateOutboxEvent(noTopic))

	badStatus := valid
	badStatus.Status = "queued"
	assert.Error(t, ValidateOutboxEvent(badStatus))
}
