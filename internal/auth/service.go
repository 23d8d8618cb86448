package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Aaryan1901/Gigyasa-backend/internal/audit"
)

// Service is the one canonical auth flow. The earlier deployment
// skipped the pre-insert email check; Precheck keeps that behavior
// selectable, with the unique index on users(email) as the backstop
// either way.
type Service struct {
	Dir      Directory
	JWT      *JWT
	Audit    audit.Sink
	Precheck bool
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// NormalizeEmail makes email matching case-insensitive: every lookup
// and every stored record goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)

	if name == "" || email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, ErrMissingFields
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	if s.Precheck {
		_, err := s.Dir.FindByEmail(ctx, email)
		switch {
		case err == nil:
			return nil, ErrEmailTaken
		case errors.Is(err, ErrUserNotFound):
			// free to insert
		default:
			return nil, err
		}
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{Name: name, Email: email, PasswordHash: hash}
	if err := s.Dir.Insert(ctx, u); err != nil {
		return nil, err
	}

	s.record(ctx, audit.Event{UserID: &u.ID, Email: u.Email, Kind: audit.KindRegister})
	return u, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	email = NormalizeEmail(email)

	u, err := s.Dir.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		s.record(ctx, audit.Event{Email: email, Kind: audit.KindLoginFailed, Labels: []string{"unknown_email"}})
		return "", nil, ErrUserNotFound
	}
	if err != nil {
		return "", nil, err
	}

	if !ComparePassword(u.PasswordHash, password) {
		s.record(ctx, audit.Event{UserID: &u.ID, Email: u.Email, Kind: audit.KindLoginFailed, Labels: []string{"password_mismatch"}})
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.JWT.Sign(u)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	s.record(ctx, audit.Event{UserID: &u.ID, Email: u.Email, Kind: audit.KindLogin})
	return token, u, nil
}

// Profile resolves the id claim of an already-verified token back to
// the stored record. The token outlives record changes, so the user
// may legitimately be gone by now.
func (s *Service) Profile(ctx context.Context, id string) (*User, error) {
	uid, err := ParseUserID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return s.Dir.FindByID(ctx, uid)
}

// Audit writes are best-effort; a full event log is never worth a
// failed login.
func (s *Service) record(ctx context.Context, ev audit.Event) {
	if s.Audit == nil {
		return
	}
	if err := s.Audit.Record(ctx, ev); err != nil {
		slog.Warn("audit record failed", "kind", ev.Kind, "err", err)
	}
}
