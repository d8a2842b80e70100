package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/shared/cache"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type item struct {
	ID string `json:"id"`
}

func TestGetJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("hit", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("departments:all:org-1").SetVal(`[{"id":"d1"}]`)

		var got []item
		ok := cache.GetJSON(ctx, rdb, cache.DepartmentsKey("org-1"), &got)

		assert.True(t, ok)
		assert.Equal(t, []item{{ID: "d1"}}, got)
	})

	t.Run("miss", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("employees:options:org-1").RedisNil()

		var got []item
		assert.False(t, cache.GetJSON(ctx, rdb, cache.EmployeeOptionsKey("org-1"), &got))
	})

	t.Run("corrupt value is a miss", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("k").SetVal(`{not json`)

		var got []item
		assert.False(t, cache.GetJSON(ctx, rdb, "k", &got))
	})

	t.Run("nil client", func(t *testing.T) {
		var got []item
		assert.False(t, cache.GetJSON(ctx, nil, "k", &got))
	})
}

func TestSetJSONAndInvalidate(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	mock.ExpectSet("k", []byte(`{"id":"d1"}`), time.Minute).SetVal("OK")
	mock.ExpectDel("a", "b").SetErr(errors.New("redis down"))

	cache.SetJSON(ctx, rdb, "k", item{ID: "d1"}, time.Minute)
	cache.Invalidate(ctx, rdb, "a", "b")

	assert.NoError(t, mock.ExpectationsWereMet())
	cache.Invalidate(ctx, nil, "a")
}
