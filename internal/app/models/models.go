package models

// RoleType defines the principal role type. The stored values match the
// legacy `rol` field of the teachers collection.
type RoleType string

const (
	RoleAdmin   RoleType = "admin"
	RoleTeacher RoleType = "maestro"
)

// TrimesterKey identifies one of the three fixed academic periods. The
// values double as sub-document keys under `calificaciones`.
type TrimesterKey string

const (
	TrimesterFirst  TrimesterKey = "primer_trimestre"
	TrimesterSecond TrimesterKey = "segundo_trimestre"
	TrimesterThird  TrimesterKey = "tercer_trimestre"
)

// Trimesters lists the three keys in academic order.
var Trimesters = []TrimesterKey{TrimesterFirst, TrimesterSecond, TrimesterThird}

// IsValid reports whether k is one of the three fixed trimester keys.
func (k TrimesterKey) IsValid() bool {
	switch k {
	case TrimesterFirst, TrimesterSecond, TrimesterThird:
		return true
	}
	return false
}
