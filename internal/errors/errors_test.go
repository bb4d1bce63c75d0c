package errors

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/julianstephens/datefeatures/internal/calendar"
	"github.com/julianstephens/datefeatures/internal/storage"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	if got := Formatf("failed to load %s", "database"); got != "Error: failed to load database" {
		t.Errorf("Formatf = %q", got)
	}
}

func TestReport(t *testing.T) {
	_, parseErr := calendar.ParseDate("2024-13-01")

	tests := []struct {
		name     string
		err      error
		code     int
		wantHint bool
	}{
		{"nil error", nil, 0, false},
		{"plain error", errors.New("boom"), 1, false},
		{"bad date", parseErr, 1, true},
		{"wrapped credentials", fmt.Errorf("open: %w", storage.ErrEmbeddedCredentials), 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if code := Report(&buf, tt.err); code != tt.code {
				t.Errorf("Report code = %d, want %d", code, tt.code)
			}
			if tt.err != nil && !strings.HasPrefix(buf.String(), "Error: ") {
				t.Errorf("output = %q", buf.String())
			}
			if got := strings.Contains(buf.String(), "Hint:"); got != tt.wantHint {
				t.Errorf("hint present = %v, want %v\n%s", got, tt.wantHint, buf.String())
			}
		})
	}
}
