package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
)

func TestBcryptVerifier(t *testing.T) {
	hash, err := HashPassword("AdminSeguro2025!")
	require.NoError(t, err)

	verifier := BcryptVerifier{}
	assert.True(t, verifier.Verify(hash, "AdminSeguro2025!"))
	assert.False(t, verifier.Verify(hash, "otra-clave"))
	assert.False(t, verifier.Verify("not-a-hash", "AdminSeguro2025!"))
}

func TestPlaintextVerifier(t *testing.T) {
	verifier := PlaintextVerifier{}
	assert.True(t, verifier.Verify("1234", "1234"))
	assert.False(t, verifier.Verify("1234", "12345"))
	assert.False(t, verifier.Verify("", "1234"))
}

func TestVerifierFor(t *testing.T) {
	hash, err := HashPassword("secreta")
	require.NoError(t, err)

	// Admins verify against the bcrypt hash, never the literal value.
	admin := VerifierFor(models.RoleAdmin)
	assert.True(t, admin.Verify(hash, "secreta"))
	assert.False(t, admin.Verify("secreta", "secreta"))

	// Teachers verify against the stored plaintext.
	teacher := VerifierFor(models.RoleTeacher)
	assert.True(t, teacher.Verify("1234", "1234"))
	assert.False(t, teacher.Verify(hash, "secreta"))
}
