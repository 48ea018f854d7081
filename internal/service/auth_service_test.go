package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/la-capital/crm-service/internal/auth"
	"github.com/la-capital/crm-service/internal/config"
	"github.com/la-capital/crm-service/internal/domain"
	apperrors "github.com/la-capital/crm-service/pkg/util"
)

type memStaffRepo struct {
	accounts      map[string]*domain.StaffAccount
	twoFactorSets int
}

func (m *memStaffRepo) Create(ctx context.Context, staff *domain.StaffAccount) error {
	staff.ID = fmt.Sprintf("staff-%d", len(m.accounts)+1)
	m.accounts[staff.ID] = staff
	return nil
}

func (m *memStaffRepo) Update(ctx context.Context, staff *domain.StaffAccount) error {
	if _, ok := m.accounts[staff.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.accounts[staff.ID] = staff
	return nil
}

func (m *memStaffRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.accounts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.accounts, id)
	return nil
}

func (m *memStaffRepo) GetByID(ctx context.Context, id string) (*domain.StaffAccount, error) {
	if s, ok := m.accounts[id]; ok {
		return s, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memStaffRepo) GetByEmail(ctx context.Context, email string) (*domain.StaffAccount, error) {
	for _, s := range m.accounts {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memStaffRepo) List(ctx context.Context) ([]*domain.StaffAccount, error) {
	out := make([]*domain.StaffAccount, 0, len(m.accounts))
	for _, s := range m.accounts {
		out = append(out, s)
	}
	return out, nil
}

func (m *memStaffRepo) SetTwoFactor(ctx context.Context, id, secret string, enabled bool) error {
	s, ok := m.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	s.TwoFactorSecret = secret
	s.TwoFactorEnabled = enabled
	m.twoFactorSets++
	return nil
}

type memClientRepo struct {
	accounts map[string]*domain.ClientAccount
}

func (m *memClientRepo) Create(ctx context.Context, client *domain.ClientAccount) error {
	client.ID = fmt.Sprintf("client-%d", len(m.accounts)+1)
	m.accounts[client.ID] = client
	return nil
}

func (m *memClientRepo) Update(ctx context.Context, client *domain.ClientAccount) error {
	if _, ok := m.accounts[client.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.accounts[client.ID] = client
	return nil
}

func (m *memClientRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.accounts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.accounts, id)
	return nil
}

func (m *memClientRepo) GetByID(ctx context.Context, id string) (*domain.ClientAccount, error) {
	if c, ok := m.accounts[id]; ok {
		return c, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memClientRepo) GetByEmail(ctx context.Context, email string) (*domain.ClientAccount, error) {
	for _, c := range m.accounts {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memClientRepo) List(ctx context.Context) ([]*domain.ClientAccount, error) {
	out := make([]*domain.ClientAccount, 0, len(m.accounts))
	for _, c := range m.accounts {
		out = append(out, c)
	}
	return out, nil
}

func (m *memClientRepo) ListByMinPoints(ctx context.Context, min int) ([]*domain.ClientAccount, error) {
	var out []*domain.ClientAccount
	for _, c := range m.accounts {
		if c.Puntos >= min {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memClientRepo) AddPoints(ctx context.Context, id string, delta int) (int, error) {
	c, ok := m.accounts[id]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	c.Puntos += delta
	if c.Puntos < 0 {
		c.Puntos = 0
	}
	return c.Puntos, nil
}

type memRoleRepo struct {
	roles map[int]*domain.Role
}

func (m *memRoleRepo) GetByID(ctx context.Context, id int) (*domain.Role, error) {
	if r, ok := m.roles[id]; ok {
		return r, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memRoleRepo) List(ctx context.Context) ([]*domain.Role, error) {
	out := make([]*domain.Role, 0, len(m.roles))
	for _, r := range m.roles {
		out = append(out, r)
	}
	return out, nil
}

type authFixture struct {
	svc     *AuthService
	staff   *memStaffRepo
	clients *memClientRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:           "test-secret-key-for-unit-tests",
		StaffTokenTTLHours:  13,
		ClientTokenTTLHours: 168,
		PreAuthTTLMinutes:   5,
		BcryptCost:          4, // low cost, bcrypt verification is slow otherwise
		TOTPIssuer:          "La Capital",
	}}

	staffRepo := &memStaffRepo{accounts: map[string]*domain.StaffAccount{}}
	clientRepo := &memClientRepo{accounts: map[string]*domain.ClientAccount{}}
	roleRepo := &memRoleRepo{roles: map[int]*domain.Role{
		1: {ID: 1, Nombre: domain.RoleAdministrador},
		2: {ID: 2, Nombre: domain.RoleEmpleado},
	}}

	svc := NewAuthService(cfg, zap.NewNop(), AuthDependencies{
		StaffRepo:  staffRepo,
		ClientRepo: clientRepo,
		RoleRepo:   roleRepo,
	})
	return &authFixture{svc: svc, staff: staffRepo, clients: clientRepo}
}

func (f *authFixture) seedStaff(t *testing.T, email, password string, roleID int, twoFactorSecret string) *domain.StaffAccount {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	staff := &domain.StaffAccount{
		Nombres:          "Ana",
		Apellidos:        "Pérez",
		Email:            email,
		PasswordHash:     hash,
		RoleID:           roleID,
		TwoFactorSecret:  twoFactorSecret,
		TwoFactorEnabled: twoFactorSecret != "",
	}
	require.NoError(t, f.staff.Create(context.Background(), staff))
	return staff
}

func totpSecret(t *testing.T) string {
	t.Helper()
	key, err := totp.Generate(totp.GenerateOpts{Issuer: "La Capital", AccountName: "a@x.com"})
	require.NoError(t, err)
	return key.Secret()
}

func TestLoginStaff_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.LoginStaff(context.Background(), "nadie@x.com", "pw")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 401, domainErr.HTTPStatus)
	assert.Equal(t, "Credenciales inválidas.", domainErr.Message)
}

func TestLoginStaff_WrongPassword_SameMessage(t *testing.T) {
	f := newAuthFixture(t)
	f.seedStaff(t, "a@x.com", "correcta", 2, "")

	_, err := f.svc.LoginStaff(context.Background(), "a@x.com", "incorrecta")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Credenciales inválidas.", domainErr.Message,
		"email inexistente y contraseña errónea deben responder igual")
}

func TestLoginStaff_WithoutTwoFactor_IssuesFinalToken(t *testing.T) {
	f := newAuthFixture(t)
	staff := f.seedStaff(t, "a@x.com", "secreta123", 1, "")

	result, err := f.svc.LoginStaff(context.Background(), "a@x.com", "secreta123")
	require.NoError(t, err)

	assert.False(t, result.TwoFactorRequired)
	assert.Empty(t, result.TempToken)
	require.NotEmpty(t, result.Token)

	claims, err := f.svc.TokenManager().ParseFinal(result.Token)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, claims.SubjectID)
	assert.Equal(t, domain.RoleAdministrador, claims.Role)
}

func TestLoginStaff_WithTwoFactor_NeverMintsFinalToken(t *testing.T) {
	f := newAuthFixture(t)
	f.seedStaff(t, "a@x.com", "secreta123", 2, totpSecret(t))

	result, err := f.svc.LoginStaff(context.Background(), "a@x.com", "secreta123")
	require.NoError(t, err)

	assert.True(t, result.TwoFactorRequired)
	assert.Empty(t, result.Token, "con 2FA activo el login nunca entrega el token final")
	require.NotEmpty(t, result.TempToken)

	_, err = f.svc.TokenManager().ParseFinal(result.TempToken)
	assert.Error(t, err, "el token temporal no debe validar como final")

	claims, err := f.svc.TokenManager().ParsePreAuth(result.TempToken)
	require.NoError(t, err)
	assert.Empty(t, claims.Role)
}

func TestVerifyTwoFactor_CorrectCode(t *testing.T) {
	f := newAuthFixture(t)
	secret := totpSecret(t)
	staff := f.seedStaff(t, "a@x.com", "secreta123", 2, secret)

	login, err := f.svc.LoginStaff(context.Background(), "a@x.com", "secreta123")
	require.NoError(t, err)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	result, err := f.svc.VerifyTwoFactor(context.Background(), login.TempToken, code)
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	claims, err := f.svc.TokenManager().ParseFinal(result.Token)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, claims.SubjectID)
	assert.Equal(t, domain.RoleEmpleado, claims.Role)
}

func TestVerifyTwoFactor_WrongCode(t *testing.T) {
	f := newAuthFixture(t)
	f.seedStaff(t, "a@x.com", "secreta123", 2, totpSecret(t))

	login, err := f.svc.LoginStaff(context.Background(), "a@x.com", "secreta123")
	require.NoError(t, err)

	_, err = f.svc.VerifyTwoFactor(context.Background(), login.TempToken, "000000")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 401, domainErr.HTTPStatus)
	assert.Equal(t, "Código 2FA incorrecto.", domainErr.Message)
}

func TestVerifyTwoFactor_FinalTokenAsTempRejected(t *testing.T) {
	f := newAuthFixture(t)
	secret := totpSecret(t)
	f.seedStaff(t, "a@x.com", "secreta123", 2, secret)
	f.seedStaff(t, "b@x.com", "secreta123", 2, "")

	login, err := f.svc.LoginStaff(context.Background(), "b@x.com", "secreta123")
	require.NoError(t, err)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	_, err = f.svc.VerifyTwoFactor(context.Background(), login.Token, code)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Token inválido o expirado.", domainErr.Message)
}

func TestSetupTwoFactor_PersistsNothing(t *testing.T) {
	f := newAuthFixture(t)
	staff := f.seedStaff(t, "a@x.com", "secreta123", 2, "")

	first, err := f.svc.SetupTwoFactor(context.Background(), staff)
	require.NoError(t, err)
	second, err := f.svc.SetupTwoFactor(context.Background(), staff)
	require.NoError(t, err)

	assert.NotEqual(t, first.Secret, second.Secret)
	assert.Zero(t, f.staff.twoFactorSets, "setup no debe tocar el estado almacenado")

	stored, err := f.staff.GetByID(context.Background(), staff.ID)
	require.NoError(t, err)
	assert.False(t, stored.TwoFactorEnabled)
	assert.Empty(t, stored.TwoFactorSecret)
}

func TestConfirmTwoFactor_WrongCodeDoesNotEnable(t *testing.T) {
	f := newAuthFixture(t)
	staff := f.seedStaff(t, "a@x.com", "secreta123", 2, "")
	secret := totpSecret(t)

	err := f.svc.ConfirmTwoFactor(context.Background(), staff.ID, secret, "000000")
	require.Error(t, err)
	assert.Zero(t, f.staff.twoFactorSets)
}

func TestConfirmTwoFactor_ValidCodeEnables(t *testing.T) {
	f := newAuthFixture(t)
	staff := f.seedStaff(t, "a@x.com", "secreta123", 2, "")
	secret := totpSecret(t)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	require.NoError(t, f.svc.ConfirmTwoFactor(context.Background(), staff.ID, secret, code))

	stored, err := f.staff.GetByID(context.Background(), staff.ID)
	require.NoError(t, err)
	assert.True(t, stored.TwoFactorEnabled)
	assert.Equal(t, secret, stored.TwoFactorSecret)

	// From now on login demands the second step.
	login, err := f.svc.LoginStaff(context.Background(), "a@x.com", "secreta123")
	require.NoError(t, err)
	assert.True(t, login.TwoFactorRequired)
}

func TestRegisterStaff_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.seedStaff(t, "a@x.com", "secreta123", 2, "")

	_, err := f.svc.RegisterStaff(context.Background(), "Otra", "Persona", "a@x.com", "otra-clave", 2)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 409, domainErr.HTTPStatus)
	assert.Equal(t, "El email ya está registrado.", domainErr.Message)
}

func TestLoginStaff_UnknownRoleFallsBackToEmpleado(t *testing.T) {
	f := newAuthFixture(t)
	f.seedStaff(t, "a@x.com", "secreta123", 99, "")

	result, err := f.svc.LoginStaff(context.Background(), "a@x.com", "secreta123")
	require.NoError(t, err)

	claims, err := f.svc.TokenManager().ParseFinal(result.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmpleado, claims.Role)
}

func TestRegisterClient_IssuesClientToken(t *testing.T) {
	f := newAuthFixture(t)

	client, token, exp, err := f.svc.RegisterClient(context.Background(), "Luis", "Gómez", "l@x.com", "+593999999999", "clave1234")
	require.NoError(t, err)
	require.NotNil(t, client)
	require.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now().Add(6*24*time.Hour)), "el token de cliente dura siete días")

	claims, err := f.svc.TokenManager().ParseFinal(token)
	require.NoError(t, err)
	assert.Equal(t, domain.SubjectTypeClient, claims.Subject)
	assert.Equal(t, domain.RoleCliente, claims.Role)
}

func TestLoginClient_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	_, _, _, err := f.svc.RegisterClient(context.Background(), "Luis", "Gómez", "l@x.com", "", "clave1234")
	require.NoError(t, err)

	_, _, _, err = f.svc.LoginClient(context.Background(), "l@x.com", "otra")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Credenciales inválidas.", domainErr.Message)
}

func TestLoginClient_Success(t *testing.T) {
	f := newAuthFixture(t)
	created, _, _, err := f.svc.RegisterClient(context.Background(), "Luis", "Gómez", "l@x.com", "", "clave1234")
	require.NoError(t, err)

	client, token, _, err := f.svc.LoginClient(context.Background(), "l@x.com", "clave1234")
	require.NoError(t, err)
	assert.Equal(t, created.ID, client.ID)
	require.NotEmpty(t, token)
}
