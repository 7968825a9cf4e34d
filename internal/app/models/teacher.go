package models

// Teacher defines a principal of the system (group teacher or admin),
// stored in the legacy 'maestros' collection. Principals are seeded
// out-of-band and read-only for the application flows.
type Teacher struct {
	ID          int64    `bson:"_id" json:"id"`
	Username    string   `bson:"usuario" json:"username"`
	Password    string   `bson:"password" json:"-"` // bcrypt hash for admins, legacy plaintext for teachers
	DisplayName string   `bson:"nombre" json:"displayName"`
	Group       string   `bson:"grupo" json:"group"` // meaningless for the admin role
	Grade       int      `bson:"grado" json:"grade"`
	Role        RoleType `bson:"rol" json:"role"`
	Active      bool     `bson:"activo" json:"active"`
}

// IsAdmin reports whether the principal carries the admin role.
func (t *Teacher) IsAdmin() bool {
	return t.Role == RoleAdmin
}
