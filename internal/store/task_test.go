package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskFilterNormalize(t *testing.T) {
	tests := []struct {
		name       string
		in         TaskFilter
		wantLimit  int
		wantOffset int
	}{
		{"zero value gets default limit", TaskFilter{}, DefaultListLimit, 0},
		{"negative limit gets default", TaskFilter{Limit: -5}, DefaultListLimit, 0},
		{"limit above max is capped", TaskFilter{Limit: 500}, MaxListLimit, 0},
		{"negative offset is zeroed", TaskFilter{Limit: 20, Offset: -1}, 20, 0},
		{"in range values kept", TaskFilter{Limit: 25, Offset: 50}, 25, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.wantOffset, got.Offset)
		})
	}
}
