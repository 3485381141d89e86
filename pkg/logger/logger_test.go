package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":  zerolog.DebugLevel,
		" WARN ": zerolog.WarnLevel,
		"error":  zerolog.ErrorLevel,
		"trace":  zerolog.TraceLevel,
		"":       zerolog.InfoLevel,
		"bogus":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestCtx_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "debug")

	ctx := Into(context.Background(), l)
	Ctx(ctx).Info().Str("k", "v").Msg("hello")

	assert.Contains(t, buf.String(), `"k":"v"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestCtx_WithoutLoggerIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		Ctx(context.Background()).Info().Msg("dropped")
	})
}

func TestNewWithWriter_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "error")
	l.Info().Msg("quiet")
	assert.Empty(t, buf.String())
}
