package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/la-capital/crm-service/internal/config"
	"github.com/la-capital/crm-service/internal/domain"
)

// TokenKind distinguishes the two token classes issued during login.
type TokenKind string

const (
	// TokenKindPreAuth proves password correctness only; it bridges the
	// credential check and the TOTP step and authorizes nothing else.
	TokenKindPreAuth TokenKind = "pre_auth"
	// TokenKindFinal is the full-access bearer token carrying a role claim.
	TokenKindFinal TokenKind = "final"
)

var (
	// ErrWrongTokenKind is returned when a token of one class is presented
	// where the other is required.
	ErrWrongTokenKind = errors.New("wrong token kind")
	// ErrInvalidToken covers signature, expiry and claim-shape failures.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims describes the JWT payload for both token classes. Kind is the
// tagged discriminator; Role and Name are only present on final tokens.
type Claims struct {
	SubjectID string             `json:"sub_id"`
	Kind      TokenKind          `json:"kind"`
	Subject   domain.SubjectType `json:"subject,omitempty"`
	Role      domain.RoleName    `json:"role,omitempty"`
	Name      string             `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager handles issuing and validating JWT tokens. Pre-auth tokens
// are signed with a key derived from the main secret, so a leaked pre-auth
// token can never validate as a final token even if a caller skips the
// kind check.
type TokenManager struct {
	finalSecret   []byte
	preAuthSecret []byte
	staffTTL      time.Duration
	clientTTL     time.Duration
	preAuthTTL    time.Duration
}

// NewTokenManager builds a manager from auth configuration.
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		finalSecret:   []byte(cfg.JWTSecret),
		preAuthSecret: []byte(cfg.JWTSecret + ".preauth"),
		staffTTL:      cfg.StaffTokenTTL(),
		clientTTL:     cfg.ClientTokenTTL(),
		preAuthTTL:    cfg.PreAuthTTL(),
	}
}

// IssueFinal signs a full-access token for the subject. Staff and client
// tokens differ only in lifetime.
func (tm *TokenManager) IssueFinal(subjectID string, subject domain.SubjectType, role domain.RoleName, name string) (string, time.Time, error) {
	ttl := tm.staffTTL
	if subject == domain.SubjectTypeClient {
		ttl = tm.clientTTL
	}
	expiresAt := time.Now().Add(ttl)
	claims := &Claims{
		SubjectID: subjectID,
		Kind:      TokenKindFinal,
		Subject:   subject,
		Role:      role,
		Name:      name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return tm.sign(claims, tm.finalSecret, expiresAt)
}

// IssuePreAuth signs a short-lived token proving password correctness for
// a staff account awaiting its second factor.
func (tm *TokenManager) IssuePreAuth(staffID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.preAuthTTL)
	claims := &Claims{
		SubjectID: staffID,
		Kind:      TokenKindPreAuth,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   staffID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return tm.sign(claims, tm.preAuthSecret, expiresAt)
}

// ParseFinal validates a final token and returns its claims. Tokens of any
// other kind fail here regardless of signature.
func (tm *TokenManager) ParseFinal(tokenStr string) (*Claims, error) {
	claims, err := tm.parse(tokenStr, tm.finalSecret)
	if err != nil {
		return nil, err
	}
	if claims.Kind != TokenKindFinal || claims.Role == "" {
		return nil, ErrWrongTokenKind
	}
	return claims, nil
}

// ParsePreAuth validates a pre-auth token and returns its claims.
func (tm *TokenManager) ParsePreAuth(tokenStr string) (*Claims, error) {
	claims, err := tm.parse(tokenStr, tm.preAuthSecret)
	if err != nil {
		return nil, err
	}
	if claims.Kind != TokenKindPreAuth {
		return nil, ErrWrongTokenKind
	}
	return claims, nil
}

func (tm *TokenManager) sign(claims *Claims, secret []byte, expiresAt time.Time) (string, time.Time, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func (tm *TokenManager) parse(tokenStr string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
