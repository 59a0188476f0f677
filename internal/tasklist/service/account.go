package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/tidylabs/tasklist/internal/tasklist/domain"
	"github.com/tidylabs/tasklist/internal/tasklist/store"
	"github.com/tidylabs/tasklist/pkg/cryptox"
	"github.com/tidylabs/tasklist/pkg/idx"
	"github.com/tidylabs/tasklist/pkg/slogx"
)

var (
	ErrInvalidRegistration = errors.New("invalid registration request")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrPasswordMismatch    = errors.New("current password is incorrect")
)

// AccountService handles registration, login verification and credential
// updates. It never issues sessions; the request layer does that.
type AccountService struct {
	Store store.Store

	// Now overrides the clock in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Register creates a new user account with a hashed password.
func (s *AccountService) Register(ctx context.Context, email, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input before touching the store.
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if email == "" || !strings.Contains(email, "@") || username == "" || password == "" {
		return domain.User{}, ErrInvalidRegistration
	}

	// 2. Check username availability up front for a friendlier error.
	_, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err == nil {
		return domain.User{}, ErrUsernameTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check username availability", slog.Any("error", err))
		return domain.User{}, err
	}

	// 3. Hash the password using Argon2id.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	now := s.now()
	user := domain.User{
		ID:                   idx.New().String(),
		Email:                email,
		Username:             username,
		PasswordHash:         hash,
		NotificationSettings: map[string]any{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	// 4. Insert; a unique-constraint hit at this point means the email (or a
	// racing username) is taken.
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		log.Error("failed to create user", slog.String("username", username), slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// Authenticate verifies a username/password pair and returns the account.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Warn("failed login attempt", slog.String("username", username))
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// FindByID fetches a user by id.
func (s *AccountService) FindByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// FindByUsername fetches a user by username.
func (s *AccountService) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return s.Store.Users().GetUserByUsername(ctx, username)
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AccountService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	log := slogx.FromContext(ctx)

	if newPassword == "" {
		return ErrInvalidRegistration
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := cryptox.VerifyPassword(currentPassword, user.PasswordHash); err != nil {
		log.Warn("password change with wrong current password", slog.String("user_id", userID))
		return ErrPasswordMismatch
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash, s.now()); err != nil {
		return err
	}

	log.Info("password updated", slog.String("user_id", userID))
	return nil
}

// UpdatePassword stores a pre-hashed password without any verification. It
// exists for administrative resets; interactive changes go through
// ChangePassword.
func (s *AccountService) UpdatePassword(ctx context.Context, userID, newHash string) error {
	return s.Store.Users().UpdatePasswordHash(ctx, userID, newHash, s.now())
}

// UpdateNotificationSettings replaces the user's notification settings map.
func (s *AccountService) UpdateNotificationSettings(ctx context.Context, userID string, settings map[string]any) error {
	if settings == nil {
		settings = map[string]any{}
	}
	return s.Store.Users().UpdateNotificationSettings(ctx, userID, settings, s.now())
}
