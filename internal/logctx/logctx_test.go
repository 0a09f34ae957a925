package logctx

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrom_DefaultWhenMissing(t *testing.T) {
	require.Same(t, slog.Default(), From(context.Background()))
}

func TestIntoFrom_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := Into(context.Background(), l)
	require.Same(t, l, From(ctx))

	From(ctx).Info("hello")
	require.Contains(t, buf.String(), "msg=hello")
}

func TestFrom_NilLoggerFallsBack(t *testing.T) {
	ctx := Into(context.Background(), nil)
	require.Same(t, slog.Default(), From(ctx))
}
