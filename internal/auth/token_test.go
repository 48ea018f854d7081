package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/la-capital/crm-service/internal/config"
	"github.com/la-capital/crm-service/internal/domain"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:           "test-secret-key-for-unit-tests",
		StaffTokenTTLHours:  13,
		ClientTokenTTLHours: 168,
		PreAuthTTLMinutes:   5,
	}
}

func TestIssueFinal_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	token, exp, err := tm.IssueFinal("staff-1", domain.SubjectTypeStaff, domain.RoleEmpleado, "Ana Pérez")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.False(t, exp.IsZero())

	claims, err := tm.ParseFinal(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.SubjectID)
	assert.Equal(t, TokenKindFinal, claims.Kind)
	assert.Equal(t, domain.SubjectTypeStaff, claims.Subject)
	assert.Equal(t, domain.RoleEmpleado, claims.Role)
	assert.Equal(t, "Ana Pérez", claims.Name)
}

func TestIssuePreAuth_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	token, _, err := tm.IssuePreAuth("staff-1")
	require.NoError(t, err)

	claims, err := tm.ParsePreAuth(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.SubjectID)
	assert.Equal(t, TokenKindPreAuth, claims.Kind)
	assert.Empty(t, claims.Role, "un token pre-auth no debe llevar rol")
}

func TestParseFinal_RejectsPreAuthToken(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	preAuth, _, err := tm.IssuePreAuth("staff-1")
	require.NoError(t, err)

	_, err = tm.ParseFinal(preAuth)
	assert.Error(t, err, "un token pre-auth nunca debe validar como token final")
}

func TestParsePreAuth_RejectsFinalToken(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	final, _, err := tm.IssueFinal("staff-1", domain.SubjectTypeStaff, domain.RoleAdministrador, "")
	require.NoError(t, err)

	_, err = tm.ParsePreAuth(final)
	assert.Error(t, err)
}

func TestParseFinal_ExpiredTokenRejected(t *testing.T) {
	cfg := testAuthConfig()
	cfg.StaffTokenTTLHours = -1 // already expired at issuance
	tm := NewTokenManager(cfg)

	token, _, err := tm.IssueFinal("staff-1", domain.SubjectTypeStaff, domain.RoleEmpleado, "")
	require.NoError(t, err)

	_, err = tm.ParseFinal(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseFinal_WrongSecretRejected(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())
	other := NewTokenManager(config.AuthConfig{
		JWTSecret:          "otro-secret-completamente-distinto",
		StaffTokenTTLHours: 13,
	})

	token, _, err := tm.IssueFinal("staff-1", domain.SubjectTypeStaff, domain.RoleEmpleado, "")
	require.NoError(t, err)

	_, err = other.ParseFinal(token)
	assert.Error(t, err)
}

func TestParseFinal_GarbageRejected(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	_, err := tm.ParseFinal("token.invalido.aqui")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
