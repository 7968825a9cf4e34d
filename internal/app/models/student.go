package models

import (
	"math"
	"time"
)

// Subject score bounds for update operations. Zero is the "not yet graded"
// sentinel and sits outside the valid update domain on purpose.
const (
	GradeMin      = 5.0
	GradeMax      = 10.0
	GradeUngraded = 0.0
)

// TrimesterGrades holds the five fixed subject scores of one trimester.
type TrimesterGrades struct {
	Math            float64 `bson:"matematicas" json:"math"`
	Language        float64 `bson:"espanol" json:"language"`
	ForeignLanguage float64 `bson:"ingles" json:"foreignLanguage"`
	Science         float64 `bson:"ciencias" json:"science"`
	CivicFormation  float64 `bson:"formacion" json:"civicFormation"`
}

// Scores returns the five subject scores in their fixed order.
func (g TrimesterGrades) Scores() [5]float64 {
	return [5]float64{g.Math, g.Language, g.ForeignLanguage, g.Science, g.CivicFormation}
}

// Average computes the trimester average: the five subject scores summed and
// divided by five, rounded to two decimals half away from zero (math.Round).
// It is pure and total; an all-sentinel record yields 0, which callers render
// as "not graded" instead of a number.
func (g TrimesterGrades) Average() float64 {
	var sum float64
	for _, s := range g.Scores() {
		sum += s
	}
	return math.Round(sum/5*100) / 100
}

// GradeBook holds the grades of all three trimesters. Every student carries
// all three sub-records at all times, never partially absent.
type GradeBook struct {
	First  TrimesterGrades `bson:"primer_trimestre" json:"first"`
	Second TrimesterGrades `bson:"segundo_trimestre" json:"second"`
	Third  TrimesterGrades `bson:"tercer_trimestre" json:"third"`
}

// Trimester returns the grades of the given trimester.
func (b GradeBook) Trimester(key TrimesterKey) TrimesterGrades {
	switch key {
	case TrimesterSecond:
		return b.Second
	case TrimesterThird:
		return b.Third
	default:
		return b.First
	}
}

// SetTrimester replaces the grades of the given trimester.
func (b *GradeBook) SetTrimester(key TrimesterKey, g TrimesterGrades) {
	switch key {
	case TrimesterSecond:
		b.Second = g
	case TrimesterThird:
		b.Third = g
	default:
		b.First = g
	}
}

// Student defines a student record of the legacy 'alumnos' collection. IDs
// are assigned by the persistence gateway's atomic sequence and never reused.
type Student struct {
	ID           int64     `bson:"_id" json:"id"`
	Name         string    `bson:"nombre" json:"name"`
	LastName     string    `bson:"apellidos" json:"lastName"`
	Group        string    `bson:"grupo" json:"group"`
	Grades       GradeBook `bson:"calificaciones" json:"grades"`
	RegisteredAt time.Time `bson:"fecha_registro" json:"registeredAt"`
}

// FullName returns the display name used in flash messages.
func (s *Student) FullName() string {
	return s.Name + " " + s.LastName
}

// NewStudent builds a fresh student with all fifteen scores at the ungraded
// sentinel.
func NewStudent(id int64, name, lastName, group string, now time.Time) *Student {
	return &Student{
		ID:           id,
		Name:         name,
		LastName:     lastName,
		Group:        group,
		RegisteredAt: now,
	}
}
