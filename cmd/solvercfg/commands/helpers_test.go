package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "Number of threads", 60, "Number of threads"},
		{"collapses lines", "Ground\n  impedance model", 60, "Ground impedance model"},
		{"cut", "Maximum reflection order", 10, "Maximum..."},
		{"multibyte", "Température de l'air", 8, "Tempé..."},
		{"tiny limit", "abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.in, tt.max))
		})
	}
}
