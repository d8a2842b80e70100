package contextutil_test

import (
	"context"
	"testing"

	"go-hrms/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestExtractMetadata(t *testing.T) {
	ctx := context.Background()
	ctx = contextutil.WithRequestID(ctx, "rid-1")
	ctx = contextutil.WithUserID(ctx, "user-1")
	ctx = contextutil.WithOrganizationID(ctx, "org-1")

	md := contextutil.ExtractMetadata(ctx)

	assert.Equal(t, "rid-1", md.RequestID)
	assert.Equal(t, "user-1", md.UserID)
	assert.Equal(t, "org-1", md.OrganizationID)
	assert.Empty(t, contextutil.GetRequestID(context.Background()))
}

func TestGetLogger(t *testing.T) {
	t.Run("returns logger stored in context", func(t *testing.T) {
		l := zap.NewExample()
		ctx := contextutil.WithLogger(context.Background(), l)

		assert.Same(t, l, contextutil.GetLogger(ctx, nil))
	})

	t.Run("falls back to default", func(t *testing.T) {
		def := zap.NewExample()

		assert.Same(t, def, contextutil.GetLogger(context.Background(), def))
	})

	t.Run("never nil", func(t *testing.T) {
		assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))
	})
}
