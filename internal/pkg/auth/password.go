package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
)

// Password hashing cost
const BcryptCost = 12

// HashPassword hashes a password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CredentialVerifier checks a submitted password against the stored
// credential of a principal.
type CredentialVerifier interface {
	Verify(stored, submitted string) bool
}

// BcryptVerifier verifies against a bcrypt hash. Used for admin principals.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(stored, submitted string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted)) == nil
}

// PlaintextVerifier compares against a stored plaintext value in constant
// time. Teacher principals still carry legacy plaintext credentials; the
// asymmetry is a migration liability, kept only for compatibility with the
// existing teachers collection.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Verify(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}

// VerifierFor selects the credential verification strategy for a role.
func VerifierFor(role models.RoleType) CredentialVerifier {
	if role == models.RoleAdmin {
		return BcryptVerifier{}
	}
	return PlaintextVerifier{}
}
