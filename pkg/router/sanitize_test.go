package router

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int
		want    string
		wantErr error
	}{
		{"Clean", "What is GMLP?", 0, "What is GMLP?", nil},
		{"Keeps Newlines", "line1\nline2\tend", 0, "line1\nline2\tend", nil},
		{"Strips ANSI", "\x1b[31mred\x1b[0m", 0, "[31mred[0m", nil},
		{"Strips NUL", "a\x00b", 0, "ab", nil},
		{"Too Large", strings.Repeat("a", 11), 10, "", ErrInputTooLarge},
		{"Invalid UTF8", "bad \xff byte", 0, "", ErrInvalidUTF8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sanitize(tt.input, tt.limit)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaxInputSize_Env(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "12")
	assert.Equal(t, 12, MaxInputSize())

	t.Setenv(EnvMaxInputSize, "nope")
	assert.Equal(t, DefaultMaxInputSize, MaxInputSize())
}
