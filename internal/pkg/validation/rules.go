package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
)

// Grade levels and section letters that make up the 18 fixed group labels
// (1°A .. 6°C).
const (
	MinGradeLevel = 1
	MaxGradeLevel = 6
)

var sectionLetters = []string{"A", "B", "C"}

// GroupLabels returns the 18 valid group labels in grade-then-section order.
func GroupLabels() []string {
	labels := make([]string, 0, (MaxGradeLevel-MinGradeLevel+1)*len(sectionLetters))
	for level := MinGradeLevel; level <= MaxGradeLevel; level++ {
		labels = append(labels, GroupsForGradeLevel(level)...)
	}
	return labels
}

// GroupsForGradeLevel returns the three section labels of one grade level,
// e.g. 3 -> ["3°A", "3°B", "3°C"].
func GroupsForGradeLevel(level int) []string {
	groups := make([]string, 0, len(sectionLetters))
	for _, letter := range sectionLetters {
		groups = append(groups, fmt.Sprintf("%d°%s", level, letter))
	}
	return groups
}

// IsValidGroup reports whether label is one of the 18 fixed group labels.
func IsValidGroup(label string) bool {
	for _, l := range GroupLabels() {
		if l == label {
			return true
		}
	}
	return false
}

// IsValidScore reports whether a subject score lies in the closed update
// domain [5.0, 10.0]. The ungraded sentinel 0 is deliberately invalid here.
func IsValidScore(score float64) bool {
	return score >= models.GradeMin && score <= models.GradeMax
}

// RegisterRules registers the custom binding rules on a validator engine.
func RegisterRules(v *validator.Validate) error {
	return v.RegisterValidation("group_label", func(fl validator.FieldLevel) bool {
		return IsValidGroup(fl.Field().String())
	})
}
