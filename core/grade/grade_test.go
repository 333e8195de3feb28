package grade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOf(t *testing.T) {
	tests := []struct {
		score int
		want  Grade
	}{
		{score: 100, want: A},
		{score: 90, want: A},
		{score: 89, want: B},
		{score: 80, want: B},
		{score: 79, want: C},
		{score: 70, want: C},
		{score: 69, want: D},
		{score: 60, want: D},
		{score: 59, want: F},
		{score: 0, want: F},
		{score: -5, want: F},
		{score: 150, want: A},
	}
	for _, tt := range tests {
		if got := Of(tt.score); got != tt.want {
			t.Errorf("Of(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestOf_monotonic(t *testing.T) {
	rank := map[Grade]int{A: 4, B: 3, C: 2, D: 1, F: 0}
	prev := rank[Of(120)]
	for s := 120; s >= -20; s-- {
		g := Of(s)
		r, ok := rank[g]
		if !assert.Truef(t, ok, "Of(%d) = %q is not a known grade", s, g) {
			return
		}
		assert.LessOrEqualf(t, r, prev, "grade got better going down at %d", s)
		prev = r
	}
}

func TestPassedExcellent(t *testing.T) {
	assert.True(t, Passed(60))
	assert.False(t, Passed(59))
	assert.True(t, Excellent(90))
	assert.False(t, Excellent(89))
}
