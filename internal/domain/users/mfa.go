package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const mfaIssuer = "HR Admin"

var (
	ErrMFARequired    = errors.New("two-factor code required")
	ErrMFAInvalid     = errors.New("invalid two-factor code")
	ErrMFAUnavailable = errors.New("two-factor login is not configured")
	ErrMFANotSetUp    = errors.New("two-factor setup required")
)

// SecretSealer encrypts TOTP seeds before they reach the database.
type SecretSealer interface {
	Seal(plain string) ([]byte, error)
	Open(sealed []byte) (string, error)
}

// SetupMFA issues a fresh TOTP seed for the user. The seed stays disabled until EnableMFA
// confirms a code generated from it.
func (s *Service) SetupMFA(ctx context.Context, userUUID, accountName string) (MFASetup, error) {
	if s.Sealer == nil {
		return MFASetup{}, ErrMFAUnavailable
	}
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      mfaIssuer,
		AccountName: accountName,
		Period:      30,
		Digits:      otp.DigitsSix,
	})
	if err != nil {
		return MFASetup{}, fmt.Errorf("generate totp seed: %w", err)
	}
	sealed, err := s.Sealer.Seal(key.Secret())
	if err != nil {
		return MFASetup{}, fmt.Errorf("seal totp seed: %w", err)
	}
	if err := s.Store.SetMFA(ctx, userUUID, sealed, false); err != nil {
		return MFASetup{}, err
	}
	return MFASetup{Secret: key.Secret(), OTPAuthURL: key.URL()}, nil
}

func (s *Service) EnableMFA(ctx context.Context, userUUID, code string) error {
	return s.toggleMFA(ctx, userUUID, code, true)
}

// DisableMFA turns the second factor off; the caller proves possession with a current code.
func (s *Service) DisableMFA(ctx context.Context, userUUID, code string) error {
	return s.toggleMFA(ctx, userUUID, code, false)
}

func (s *Service) toggleMFA(ctx context.Context, userUUID, code string, enable bool) error {
	if s.Sealer == nil {
		return ErrMFAUnavailable
	}
	sealed, _, err := s.Store.MFA(ctx, userUUID)
	if err != nil {
		return err
	}
	if len(sealed) == 0 {
		return ErrMFANotSetUp
	}
	if err := s.checkCode(sealed, code); err != nil {
		return err
	}
	if err := s.Store.SetMFA(ctx, userUUID, sealed, enable); err != nil {
		return err
	}
	slog.Info("user mfa changed", "userUuid", userUUID, "enabled", enable)
	return nil
}

func (s *Service) checkCode(sealed []byte, code string) error {
	if s.Sealer == nil || len(sealed) == 0 {
		return ErrMFAUnavailable
	}
	secret, err := s.Sealer.Open(sealed)
	if err != nil {
		return fmt.Errorf("open totp seed: %w", err)
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	ok, err := totp.ValidateCustom(code, secret, now().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil || !ok {
		return ErrMFAInvalid
	}
	return nil
}
