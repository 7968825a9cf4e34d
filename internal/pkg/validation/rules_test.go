package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupLabels(t *testing.T) {
	labels := GroupLabels()

	assert.Len(t, labels, 18)
	assert.Equal(t, "1°A", labels[0])
	assert.Equal(t, "6°C", labels[len(labels)-1])
}

func TestIsValidGroup(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"1°A", true},
		{"3°B", true},
		{"6°C", true},
		{"7°A", false},
		{"1°D", false},
		{"1A", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidGroup(tt.label))
		})
	}
}

func TestIsValidScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  bool
	}{
		{"below minimum", 4.999, false},
		{"minimum", 5.0, true},
		{"maximum", 10.0, true},
		{"above maximum", 10.001, false},
		{"ungraded sentinel", 0.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidScore(tt.score))
		})
	}
}

func TestGroupsForGradeLevel(t *testing.T) {
	assert.Equal(t, []string{"4°A", "4°B", "4°C"}, GroupsForGradeLevel(4))
}
