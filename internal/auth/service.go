// Package auth registers and authenticates users and issues their tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/errs"
	"github.com/stwalsh4118/vidhub/internal/logger"
	"github.com/stwalsh4118/vidhub/internal/models"
)

// RegisterInput holds the fields of a new account
type RegisterInput struct {
	Email       string
	Username    string
	Password    string
	ChannelName string
}

// ProfileInput holds optional profile changes; nil fields are left unchanged
type ProfileInput struct {
	Username    *string
	ChannelName *string
	Description *string
}

// AuthService handles registration, login and profile maintenance
type AuthService struct {
	repos  *db.Repositories
	hasher *PasswordHasher
	tokens *TokenManager
}

// NewAuthService creates a new auth service instance
func NewAuthService(repos *db.Repositories, hasher *PasswordHasher, tokens *TokenManager) *AuthService {
	return &AuthService{
		repos:  repos,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates an account and returns it with a fresh token
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.TrimSpace(in.Username)

	if err := s.checkEmailFree(ctx, email); err != nil {
		return nil, "", err
	}
	if err := s.checkUsernameFree(ctx, username, uuid.Nil); err != nil {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := models.NewUser(email, username, hash)
	if name := strings.TrimSpace(in.ChannelName); name != "" {
		user.ChannelName = name
	}

	if err := s.repos.Users.Create(ctx, user); err != nil {
		if db.IsDuplicate(err) {
			logger.Log.Warn().
				Str("email", email).
				Str("username", username).
				Msg("Registration failed: concurrent duplicate")
			return nil, "", errs.New(errs.KindConflict, "Email or username already registered")
		}
		logger.Log.Error().
			Err(err).
			Str("username", username).
			Msg("Failed to create user in database")
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}

	logger.Log.Info().
		Str("user_id", user.ID.String()).
		Str("username", user.Username).
		Msg("User registered successfully")

	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// login may be an email address or a username.
func (s *AuthService) Login(ctx context.Context, login, password string) (*models.User, string, error) {
	login = strings.TrimSpace(login)
	if strings.Contains(login, "@") {
		login = strings.ToLower(login)
	}
	user, err := s.repos.Users.GetByLogin(ctx, login)
	if err != nil {
		if db.IsNotFound(err) {
			logger.Log.Warn().Str("login", login).Msg("Login failed: unknown user")
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.Password)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", user.ID.String()).
			Msg("Failed to verify password")
		return nil, "", ErrInvalidCredentials
	}
	if !ok {
		logger.Log.Warn().Str("user_id", user.ID.String()).Msg("Login failed: wrong password")
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		logger.Log.Warn().Str("user_id", user.ID.String()).Msg("Login failed: account disabled")
		return nil, "", ErrAccountDisabled
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}

	logger.Log.Info().
		Str("user_id", user.ID.String()).
		Msg("User logged in")

	return user, token, nil
}

// Authenticate resolves a bearer token to an active user
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return nil, errs.New(errs.KindUnauthorized, "Invalid or expired token")
	}

	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errs.New(errs.KindUnauthorized, "User no longer exists")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, errs.New(errs.KindUnauthorized, "Account is disabled")
	}
	return user, nil
}

// GetByID returns a user by id
func (s *AuthService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of in to the user's profile
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username != user.Username {
			if err := s.checkUsernameFree(ctx, username, user.ID); err != nil {
				return nil, err
			}
			user.Username = username
		}
	}
	if in.ChannelName != nil {
		if name := strings.TrimSpace(*in.ChannelName); name != "" {
			user.ChannelName = name
		}
	}
	if in.Description != nil {
		user.Description = strings.TrimSpace(*in.Description)
	}

	if err := s.repos.Users.UpdateProfile(ctx, user); err != nil {
		if db.IsDuplicate(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	logger.Log.Info().
		Str("user_id", user.ID.String()).
		Msg("Profile updated")

	return user, nil
}

// UpdateAvatar sets the user's avatar URL
func (s *AuthService) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatar string) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Avatar = strings.TrimSpace(avatar)
	if err := s.repos.Users.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	logger.Log.Info().
		Str("user_id", user.ID.String()).
		Msg("Avatar updated")

	return user, nil
}

func (s *AuthService) checkEmailFree(ctx context.Context, email string) error {
	_, err := s.repos.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		logger.Log.Warn().Str("email", email).Msg("Registration failed: duplicate email")
		return ErrEmailTaken
	case db.IsNotFound(err):
		return nil
	default:
		return fmt.Errorf("failed to check email: %w", err)
	}
}

// checkUsernameFree fails when a user other than self holds username
func (s *AuthService) checkUsernameFree(ctx context.Context, username string, self uuid.UUID) error {
	existing, err := s.repos.Users.GetByUsername(ctx, username)
	switch {
	case err == nil && existing.ID != self:
		logger.Log.Warn().Str("username", username).Msg("Username already taken")
		return ErrUsernameTaken
	case err == nil, errors.Is(err, db.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("failed to check username: %w", err)
	}
}
