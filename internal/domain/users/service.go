// Package users manages login accounts and issues the bearer tokens that gate the API.
package users

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"hradmin/internal/platform/apperr"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactive           = errors.New("user is inactive")
)

type Service struct {
	Store  StoreAPI
	Secret string
	TTL    time.Duration
	// Sealer protects TOTP seeds at rest; without one two-factor setup is refused.
	Sealer SecretSealer
	Now    func() time.Time
}

func NewService(store StoreAPI, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Service{Store: store, Secret: secret, TTL: ttl, Now: time.Now}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	cred, err := s.Store.Credentials(ctx, req.Email)
	if errors.Is(err, apperr.ErrNotFound) {
		return LoginResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResponse{}, err
	}
	if err := CheckPassword(cred.Hash, req.Pass); err != nil {
		return LoginResponse{}, ErrInvalidCredentials
	}
	user := cred.User
	if !user.Status {
		return LoginResponse{}, ErrInactive
	}
	if cred.MFAEnabled {
		if req.OTP == "" {
			return LoginResponse{}, ErrMFARequired
		}
		if err := s.checkCode(cred.MFASecret, req.OTP); err != nil {
			return LoginResponse{}, err
		}
	}

	token, err := GenerateToken(s.Secret, Claims{UserUUID: user.UUID, Name: user.Name, Email: user.Email}, s.TTL)
	if err != nil {
		return LoginResponse{}, err
	}
	slog.Info("user login", "userUuid", user.UUID)
	return LoginResponse{Token: token, ExpiresIn: int64(s.TTL.Seconds()), User: user}, nil
}

// SeedAdmin creates the first account when the user table is empty.
func (s *Service) SeedAdmin(ctx context.Context, uuid, email, password string) (bool, error) {
	n, err := s.Store.CountAll(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	active := true
	if err := s.Store.Create(ctx, []Input{{
		UUID:   uuid,
		Name:   "Administrator",
		Email:  email,
		Pass:   password,
		Status: &active,
	}}); err != nil {
		return false, err
	}
	return true, nil
}
