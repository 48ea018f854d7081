package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/la-capital/crm-service/internal/auth"
	"github.com/la-capital/crm-service/internal/config"
	"github.com/la-capital/crm-service/internal/domain"
	"github.com/la-capital/crm-service/internal/events"
	"github.com/la-capital/crm-service/internal/repository"
	apperrors "github.com/la-capital/crm-service/pkg/util"
)

// Deliberately generic: the response must not reveal whether the email
// exists or the password was wrong.
const msgInvalidCredentials = "Credenciales inválidas."

// AuthService coordinates the two-step login flow for staff, the direct
// login flow for clients, and the two-phase 2FA enrollment.
type AuthService struct {
	staff      repository.StaffRepository
	clients    repository.ClientRepository
	roles      repository.RoleRepository
	tokens     *auth.TokenManager
	totp       *auth.TOTPEngine
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	StaffRepo  repository.StaffRepository
	ClientRepo repository.ClientRepository
	RoleRepo   repository.RoleRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, logger *zap.Logger, deps AuthDependencies) *AuthService {
	return &AuthService{
		staff:      deps.StaffRepo,
		clients:    deps.ClientRepo,
		roles:      deps.RoleRepo,
		tokens:     auth.NewTokenManager(cfg.Auth),
		totp:       auth.NewTOTPEngine(cfg.Auth.TOTPIssuer),
		dispatcher: deps.Dispatcher,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// LoginResult is the outcome of a successful credential check. Either a
// final token, or a temp token demanding the second factor.
type LoginResult struct {
	TwoFactorRequired bool
	TempToken         string
	Token             string
	ExpiresAt         time.Time
}

// RegisterStaff creates a staff account.
func (s *AuthService) RegisterStaff(ctx context.Context, nombres, apellidos, email, password string, roleID int) (*domain.StaffAccount, error) {
	if _, err := s.staff.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("El email ya está registrado.", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	staff := &domain.StaffAccount{
		Nombres:      nombres,
		Apellidos:    apellidos,
		Email:        email,
		PasswordHash: hash,
		RoleID:       roleID,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// LoginStaff checks the primary credential. With 2FA disabled it mints the
// final token directly; with 2FA enabled it hands back a pre-auth token
// and demands a TOTP code. No code path mints a final token from the
// password alone when 2FA is on.
func (s *AuthService) LoginStaff(ctx context.Context, email, password string) (*LoginResult, error) {
	staff, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized(msgInvalidCredentials)
		}
		return nil, err
	}
	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized(msgInvalidCredentials)
	}

	if staff.TwoFactorEnabled {
		tempToken, _, err := s.tokens.IssuePreAuth(staff.ID)
		if err != nil {
			return nil, err
		}
		return &LoginResult{TwoFactorRequired: true, TempToken: tempToken}, nil
	}

	return s.issueStaffToken(ctx, staff)
}

// VerifyTwoFactor completes the second login step. The temp token must be
// a pre-auth token; a final token or garbage fails identically.
func (s *AuthService) VerifyTwoFactor(ctx context.Context, tempToken, code string) (*LoginResult, error) {
	claims, err := s.tokens.ParsePreAuth(tempToken)
	if err != nil {
		return nil, apperrors.NewUnauthorized("Token inválido o expirado.")
	}

	staff, err := s.staff.GetByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("Token inválido o expirado.")
		}
		return nil, err
	}

	if !s.totp.Verify(code, staff.TwoFactorSecret) {
		return nil, apperrors.NewUnauthorized("Código 2FA incorrecto.")
	}

	return s.issueStaffToken(ctx, staff)
}

// SetupTwoFactor generates a fresh secret for the account. Nothing is
// persisted here: calling setup any number of times leaves stored state
// untouched until the owner confirms a code.
func (s *AuthService) SetupTwoFactor(ctx context.Context, staff *domain.StaffAccount) (*auth.TOTPSetup, error) {
	return s.totp.GenerateSecret(staff.Email)
}

// ConfirmTwoFactor persists the secret and enables 2FA, but only after
// the submitted code proves the owner captured the secret.
func (s *AuthService) ConfirmTwoFactor(ctx context.Context, staffID, secret, code string) error {
	if !s.totp.Verify(code, secret) {
		return apperrors.NewValidationError("Código 2FA incorrecto.", nil)
	}
	if err := s.staff.SetTwoFactor(ctx, staffID, secret, true); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventTwoFactorEnabled,
			Timestamp: time.Now(),
			Payload:   events.TwoFactorEnabledPayload{StaffID: staffID},
		})
	}
	return nil
}

// RegisterClient creates a loyalty client and mints its final token
// directly; clients have no 2FA path.
func (s *AuthService) RegisterClient(ctx context.Context, nombres, apellidos, email, telefono, password string) (*domain.ClientAccount, string, time.Time, error) {
	if _, err := s.clients.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("El email ya está registrado.", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	client := &domain.ClientAccount{
		Nombres:      nombres,
		Apellidos:    apellidos,
		Email:        email,
		Telefono:     telefono,
		PasswordHash: hash,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokens.IssueFinal(client.ID, domain.SubjectTypeClient, domain.RoleCliente, client.FullName())
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventClientRegistered,
			Timestamp: time.Now(),
			Payload:   events.ClientRegisteredPayload{ClientID: client.ID, Email: client.Email},
		})
	}
	return client, token, exp, nil
}

// LoginClient authenticates a client account.
func (s *AuthService) LoginClient(ctx context.Context, email, password string) (*domain.ClientAccount, string, time.Time, error) {
	client, err := s.clients.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized(msgInvalidCredentials)
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(client.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized(msgInvalidCredentials)
	}

	token, exp, err := s.tokens.IssueFinal(client.ID, domain.SubjectTypeClient, domain.RoleCliente, client.FullName())
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return client, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) issueStaffToken(ctx context.Context, staff *domain.StaffAccount) (*LoginResult, error) {
	role := s.resolveRole(ctx, staff.RoleID)
	token, exp, err := s.tokens.IssueFinal(staff.ID, domain.SubjectTypeStaff, role, staff.FullName())
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp}, nil
}

// resolveRole maps the stored role id to its name. A failed lookup falls
// back to Empleado but is logged, so a data integrity problem is visible
// instead of silently granting the default.
func (s *AuthService) resolveRole(ctx context.Context, roleID int) domain.RoleName {
	role, err := s.roles.GetByID(ctx, roleID)
	if err != nil {
		s.logger.Warn("role lookup failed, defaulting to Empleado",
			zap.Int("role_id", roleID), zap.Error(err))
		return domain.RoleEmpleado
	}
	return role.Nombre
}
