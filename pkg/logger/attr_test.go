package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldkit/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("record", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "record", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	empty := logger.Errors(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestFieldAttrs(t *testing.T) {
	assert.True(t, logger.Field("email").Equal(slog.String("field", "email")))
	assert.True(t, logger.Value(42).Equal(slog.Int("value", 42)))
	assert.True(t, logger.Kind("string").Equal(slog.String("kind", "string")))
	assert.True(t, logger.Kind("").Equal(slog.Attr{}))
	assert.True(t, logger.Record(3).Equal(slog.Int("record", 3)))
	assert.True(t, logger.Path("a.yaml").Equal(slog.String("path", "a.yaml")))
}
