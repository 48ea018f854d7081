package auth

import (
	"encoding/base64"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
)

// TOTPEngine generates and verifies RFC 6238 time-based one-time codes.
// Standard parameters: 30-second period, SHA1, 6 digits, one step of skew.
type TOTPEngine struct {
	issuer string
}

// NewTOTPEngine builds the engine with the issuer shown in authenticator apps.
func NewTOTPEngine(issuer string) *TOTPEngine {
	return &TOTPEngine{issuer: issuer}
}

// TOTPSetup is the result of generating a new secret. Nothing is persisted
// at this point; the caller must hold on to the secret until the owner
// proves possession with a valid code.
type TOTPSetup struct {
	Secret     string
	OtpauthURL string
	QRDataURL  string
}

// GenerateSecret produces a fresh base32 secret plus a provisioning URI and
// a QR code rendered as a PNG data URL for direct embedding.
func (e *TOTPEngine) GenerateSecret(accountEmail string) (*TOTPSetup, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      e.issuer,
		AccountName: accountEmail,
		Algorithm:   otp.AlgorithmSHA1,
		Digits:      otp.DigitsSix,
		Period:      30,
	})
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		return nil, err
	}

	return &TOTPSetup{
		Secret:     key.Secret(),
		OtpauthURL: key.URL(),
		QRDataURL:  "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	}, nil
}

// Verify checks a submitted code against the secret at the current time.
// totp.Validate allows one time step of clock skew in either direction.
func (e *TOTPEngine) Verify(code, secret string) bool {
	if code == "" || secret == "" {
		return false
	}
	return totp.Validate(code, secret)
}
