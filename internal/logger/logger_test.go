package logger

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{name: "debug level", level: "debug"},
		{name: "warn level", level: "warn"},
		{name: "invalid level defaults to info", level: "invalid"},
		{name: "empty level defaults to info", level: ""},
		{name: "uppercase level", level: "DEBUG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.level, &bytes.Buffer{})
			require.NotNil(t, l)
			require.NotNil(t, l.log)
		})
	}
}

func TestNew_NilOutput(t *testing.T) {
	l := New("info", nil)
	require.NotNil(t, l)
	assert.NotNil(t, l.log.Out)
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		log       func(*Logger)
		shouldLog bool
	}{
		{name: "debug at debug", level: "debug", log: func(l *Logger) { l.Debug().Msg("m") }, shouldLog: true},
		{name: "debug at info", level: "info", log: func(l *Logger) { l.Debug().Msg("m") }, shouldLog: false},
		{name: "info at warn", level: "warn", log: func(l *Logger) { l.Info().Msg("m") }, shouldLog: false},
		{name: "warn at warn", level: "warn", log: func(l *Logger) { l.Warn().Msg("m") }, shouldLog: true},
		{name: "error at error", level: "error", log: func(l *Logger) { l.Error().Msg("m") }, shouldLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.log(New(tt.level, buf))
			assert.Equal(t, tt.shouldLog, buf.Len() > 0, buf.String())
		})
	}
}

func TestEntry_ChainedFields(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New("info", buf)

	l.Info().
		Str("rule", "known-command").
		Int("count", 42).
		Uint64("seq", 7).
		Bool("definitive", false).
		Dur("elapsed", 1500*time.Microsecond).
		Err(errors.New("lookup failed")).
		Msg("classified")

	out := buf.String()
	assert.Contains(t, out, "classified")
	assert.Contains(t, out, "rule=known-command")
	assert.Contains(t, out, "count=42")
	assert.Contains(t, out, "seq=7")
	assert.Contains(t, out, "definitive=false")
	assert.Contains(t, out, "elapsed=1.5")
	assert.Contains(t, out, "lookup failed")
}

func TestEntry_ErrNil(t *testing.T) {
	buf := &bytes.Buffer{}
	New("error", buf).Error().Err(nil).Msg("no error")

	assert.Contains(t, buf.String(), "no error")
	assert.NotContains(t, buf.String(), "error=")
}

func TestLogger_Component(t *testing.T) {
	buf := &bytes.Buffer{}
	base := New("info", buf)
	child := base.Component("oracle")

	child.Info().Msg("from child")
	assert.Contains(t, buf.String(), "component=oracle")

	buf.Reset()
	base.Info().Msg("from base")
	assert.NotContains(t, buf.String(), "component=")
}

func TestLogger_Enabled(t *testing.T) {
	l := New("warn", &bytes.Buffer{})

	assert.True(t, l.Enabled("error"))
	assert.True(t, l.Enabled("warn"))
	assert.False(t, l.Enabled("debug"))
	assert.False(t, l.Enabled("nonsense"))
}

func TestDiscard(t *testing.T) {
	l := Discard()
	assert.NotPanics(t, func() {
		l.Error().Str("k", "v").Msg("dropped")
	})
	assert.False(t, l.Enabled("error"))
}
