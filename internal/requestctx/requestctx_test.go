package requestctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Equal(t, "abc", GetRequestID(WithRequestID(ctx, "abc")))
}

func TestLoggerFallsBackToGlobal(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, zap.L(), Logger(ctx))

	logger := zap.NewNop()
	assert.Same(t, logger, Logger(WithLogger(ctx, logger)))
}
