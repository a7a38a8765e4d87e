package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	"linkup/internal/graph"
	apperr "linkup/pkg/errors"
	"linkup/pkg/logger"
)

// usernameLength is the length of generated handles
const usernameLength = 6

// Store is the user-directory access the credential service needs
type Store interface {
	CreateUser(ctx context.Context, u *graph.User) error
	GetUserByID(ctx context.Context, id string) (*graph.User, error)
	GetUserByEmail(ctx context.Context, email string) (*graph.User, error)
	GetUserByEmailAndSecret(ctx context.Context, email, secret string) (*graph.User, error)
	UpdateUser(ctx context.Context, id string, props map[string]interface{}) (*graph.User, error)
}

// Service implements registration, login and profile management
type Service struct {
	store  Store
	tokens *TokenManager
	logger *zap.Logger
}

// NewService creates a credential service
func NewService(store Store, tokens *TokenManager) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
		logger: logger.Get(),
	}
}

// ProfileUpdate carries the optional fields of a profile edit; empty fields
// are left untouched.
type ProfileUpdate struct {
	Name     string
	Username string
	About    string
	Password string
	Secret   string
	Image    *graph.Image
}

// Register creates a new user with a generated handle
func (s *Service) Register(ctx context.Context, name, email, password, secret string) (*graph.User, error) {
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if len(password) < MinPasswordLength {
		return nil, apperr.Validation("password is required and should be at least %d characters", MinPasswordLength)
	}
	if secret == "" {
		return nil, apperr.Validation("answer is required")
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("email already in use")
	} else if !apperr.IsKind(err, apperr.KindNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	username, err := gonanoid.New(usernameLength)
	if err != nil {
		return nil, apperr.Internal("failed to generate username", err)
	}

	user := &graph.User{
		ID:        uuid.NewString(),
		Name:      name,
		Username:  username,
		Email:     email,
		Password:  hash,
		Secret:    secret,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID))
	return user.Redact(), nil
}

// Login verifies credentials and issues a signed token
func (s *Service) Login(ctx context.Context, email, password string) (string, *graph.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return "", nil, apperr.NotFound("no user found")
		}
		return "", nil, err
	}

	if !CheckPassword(user.Password, password) {
		return "", nil, apperr.Unauthorized("invalid password")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user.Redact(), nil
}

// Current returns the authenticated caller's own record
func (s *Service) Current(ctx context.Context, userID string) (*graph.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Redact(), nil
}

// ForgotPassword resets the password for a user whose email and recovery
// secret both match.
func (s *Service) ForgotPassword(ctx context.Context, email, newPassword, secret string) error {
	if len(newPassword) < MinPasswordLength {
		return apperr.Validation("new password is required and should be at least %d characters", MinPasswordLength)
	}
	if secret == "" {
		return apperr.Validation("secret is required")
	}

	user, err := s.store.GetUserByEmailAndSecret(ctx, email, secret)
	if err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return apperr.Internal("failed to hash password", err)
	}

	if _, err := s.store.UpdateUser(ctx, user.ID, map[string]interface{}{"password": hash}); err != nil {
		return err
	}

	s.logger.Info("Password reset", zap.String("user_id", user.ID))
	return nil
}

// UpdateProfile patches the caller's profile fields
func (s *Service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*graph.User, error) {
	props := map[string]interface{}{}
	if update.Name != "" {
		props["name"] = update.Name
	}
	if update.Username != "" {
		props["username"] = update.Username
	}
	if update.About != "" {
		props["about"] = update.About
	}
	if update.Secret != "" {
		props["secret"] = update.Secret
	}
	if update.Password != "" {
		if len(update.Password) < MinPasswordLength {
			return nil, apperr.Validation("password needs to be at least %d characters", MinPasswordLength)
		}
		hash, err := HashPassword(update.Password)
		if err != nil {
			return nil, apperr.Internal("failed to hash password", err)
		}
		props["password"] = hash
	}
	if update.Image != nil {
		props["image_url"] = update.Image.URL
		props["image_public_id"] = update.Image.PublicID
	}

	user, err := s.store.UpdateUser(ctx, userID, props)
	if err != nil {
		return nil, err
	}

	return user.Redact(), nil
}
