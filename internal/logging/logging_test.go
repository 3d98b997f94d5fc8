package logging

import (
	"bytes"
	"testing"

	"github.com/hashicorp/logutils"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logutils.LogLevel
	}{
		{"debug", "DEBUG"},
		{" Error ", "ERROR"},
		{"", DefaultLevel},
		{"verbose", DefaultLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info")

	logger.Println("[DEBUG] hidden")
	logger.Println("[INFO] shown")
	logger.Println("[ERROR] also shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] shown")
	assert.Contains(t, out, "[ERROR] also shown")
}
