package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// Тесты контекстного логгера. Меняют slog.Default(), поэтому без t.Parallel().

func newSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestFrom_DefaultWhenEmpty — без логгера в контексте возвращается slog.Default().
func TestFrom_DefaultWhenEmpty(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	def := newSilent()
	slog.SetDefault(def)

	require.Equal(t, def, From(context.Background()))
}

// TestInto_RoundTripAndShadowing — Into/From и перекрытие дочерним контекстом.
func TestInto_RoundTripAndShadowing(t *testing.T) {
	parentL, childL := newSilent(), newSilent()

	parent := Into(context.Background(), parentL)
	child := Into(parent, childL)

	require.Equal(t, parentL, From(parent))
	require.Equal(t, childL, From(child))
}

// TestFrom_IgnoresNilLogger — *slog.Logger(nil) в контексте не возвращается.
func TestFrom_IgnoresNilLogger(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	def := newSilent()
	slog.SetDefault(def)

	var nilLogger *slog.Logger
	require.Equal(t, def, From(Into(context.Background(), nilLogger)))
	require.Equal(t, def, From(context.WithValue(context.Background(), ctxKey{}, "junk")))
}

// TestWith_AddsAttributes — With дописывает атрибуты ко всем последующим записям.
func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := With(Into(context.Background(), base), "run_id", "r-1")
	ctx = With(ctx, "category", "electric_guitars")

	From(ctx).Info("scrape_start")

	out := buf.String()
	require.Contains(t, out, "run_id=r-1")
	require.Contains(t, out, "category=electric_guitars")
	require.Contains(t, out, "msg=scrape_start")
}
