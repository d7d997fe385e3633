package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hradmin/internal/domain/crud"
	"hradmin/internal/platform/apperr"
	"hradmin/internal/platform/db"
)

var table = db.Table[User]{
	Name:   "hr.users",
	Entity: "user",
	Key:    "uuid",
	KeyRef: "t.uuid",
	Select: `SELECT t.uuid, t.name, t.email, t.department_uuid, d.department AS department_name,
      t.designation_uuid, g.designation AS designation_name, t.phone, t.ext, t.status, ` + crud.AuditColumns + `
    FROM hr.users t
    LEFT JOIN hr.department d ON d.uuid = t.department_uuid
    LEFT JOIN hr.designation g ON g.uuid = t.designation_uuid ` + crud.AuditJoin,
	OrderBy: "t.created_at DESC",
	Touch:   true,
}

type StoreAPI interface {
	crud.Resource[User, Input, Patch]
	Credentials(ctx context.Context, email string) (Credential, error)
	CountAll(ctx context.Context) (int, error)
	MFA(ctx context.Context, userUUID string) (sealed []byte, enabled bool, err error)
	SetMFA(ctx context.Context, userUUID string, sealed []byte, enabled bool) error
}

// Credential is what login checks: the account, its password hash and the second factor.
type Credential struct {
	User       User
	Hash       string
	MFAEnabled bool
	MFASecret  []byte
}

type Store struct {
	*crud.Repo[User, Input, Patch]
}

func NewStore(pool db.DB) *Store {
	return &Store{Repo: &crud.Repo[User, Input, Patch]{
		DB:    pool,
		Table: table,
		Filters: map[string]string{
			"department_uuid":  "t.department_uuid",
			"designation_uuid": "t.designation_uuid",
			"status":           "t.status::text",
		},
		Prepare: func(_ context.Context, input *Input) error {
			hashed, err := HashPassword(input.Pass)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			input.Pass = hashed
			return nil
		},
	}}
}

// Patch hashes a new password before handing the update to the table.
func (s *Store) Patch(ctx context.Context, id string, patch Patch) error {
	if patch.Pass != nil {
		hashed, err := HashPassword(*patch.Pass)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		patch.Pass = &hashed
	}
	return s.Repo.Patch(ctx, id, patch)
}

// Credentials returns the user with the given email, its password hash and second factor.
func (s *Store) Credentials(ctx context.Context, email string) (Credential, error) {
	var c Credential
	err := s.DB.QueryRow(ctx, `
    SELECT uuid, name, email, status, created_at, pass, mfa_enabled, mfa_secret_enc
    FROM hr.users
    WHERE lower(email) = lower($1)
  `, email).Scan(&c.User.UUID, &c.User.Name, &c.User.Email, &c.User.Status, &c.User.CreatedAt, &c.Hash, &c.MFAEnabled, &c.MFASecret)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credential{}, apperr.NotFound("user")
	}
	if err != nil {
		return Credential{}, err
	}
	return c, nil
}

func (s *Store) MFA(ctx context.Context, userUUID string) ([]byte, bool, error) {
	var sealed []byte
	var enabled bool
	err := s.DB.QueryRow(ctx, `SELECT mfa_secret_enc, mfa_enabled FROM hr.users WHERE uuid = $1`, userUUID).Scan(&sealed, &enabled)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, apperr.NotFound("user")
	}
	if err != nil {
		return nil, false, err
	}
	return sealed, enabled, nil
}

func (s *Store) SetMFA(ctx context.Context, userUUID string, sealed []byte, enabled bool) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE hr.users SET mfa_secret_enc = $2, mfa_enabled = $3, updated_at = now() WHERE uuid = $1
  `, userUUID, sealed, enabled)
	if err != nil {
		return fmt.Errorf("update user mfa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}
	return nil
}

func (s *Store) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := s.DB.QueryRow(ctx, `SELECT COUNT(1) FROM hr.users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
