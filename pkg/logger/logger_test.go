package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesFieldsAndCaller(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	var buf bytes.Buffer
	l := New(&buf).WithContext(map[string]interface{}{"slug": "pancakes"})

	l.Warn("Skipping invalid recipe document", map[string]interface{}{"file": "pancakes.json"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "pancakes", entry["slug"])
	assert.Equal(t, "pancakes.json", entry["file"])
	assert.Contains(t, entry["caller"], "logger_test.go")
}

func TestLogger_ErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Error("Failed to save recipe", errors.New("disk full"))

	assert.Contains(t, buf.String(), "disk full")
	assert.Contains(t, buf.String(), "Failed to save recipe")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}
