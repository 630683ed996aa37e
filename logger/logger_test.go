package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGet(t *testing.T) {
	l := Get()
	assert.NotNil(t, l)
	assert.Same(t, l, Get(), "Get should return the same logger")
	assert.Same(t, l, Init("other", "debug"), "Init after Get should not rebuild the logger")
}

func TestFromCtx(t *testing.T) {
	Get()
	assert.Same(t, logger, FromCtx(context.Background()))
}

func TestWithCtx(t *testing.T) {
	ctx := context.Background()
	l := zap.NewNop()
	ctxWithLogger := WithCtx(ctx, l)

	assert.Same(t, l, FromCtx(ctxWithLogger))
	assert.Equal(t, ctxWithLogger, WithCtx(ctxWithLogger, l), "same logger should not be stored twice")
}
