package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/notes-api/internal/domain/entity"
	repo "github.com/oksasatya/notes-api/internal/domain/repository"
	"github.com/oksasatya/notes-api/pkg/helpers"
	"github.com/oksasatya/notes-api/pkg/mailer"
)

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService owns the credential store contract: signup creates a user with
// a bcrypt hash, login exchanges valid credentials for a signed session token.
type AuthService struct {
	Repo        repo.UserRepository
	JWT         *helpers.JWTManager
	Pub         *helpers.RabbitPublisher
	Logger      *logrus.Logger
	AppName     string
	MailEnabled bool
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger, appName string, mailEnabled bool) *AuthService {
	return &AuthService{
		Repo:        r,
		JWT:         jwt,
		Pub:         pub,
		Logger:      logger,
		AppName:     appName,
		MailEnabled: mailEnabled,
	}
}

// Signup validates presence of all fields, rejects duplicate emails and
// stores the new user. No token is issued; the caller logs in separately.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return ErrMissingFields
	}

	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return ErrEmailTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}

	u := &entity.User{Name: name, Email: email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		// The unique index is the backstop for the pre-check race.
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return ErrEmailTaken
		}
		return err
	}

	if s.Pub != nil && s.MailEnabled {
		job := mailer.WelcomeEmail(u.Email, u.Name, s.AppName)
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email enqueue failed")
		}
	}
	return nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password both return ErrInvalidCredentials so callers cannot probe
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.GenerateToken(u.Name, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Error("token generation failed")
		}
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// GetProfile looks the user up by the verified email from the token. The row
// can be gone if the account was deleted after issuance; tokens are never
// revoked early.
func (s *AuthService) GetProfile(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// DeleteUser removes the user record. Notes owned by the user are left in
// place; there is deliberately no cascade.
func (s *AuthService) DeleteUser(ctx context.Context, email string) error {
	if err := s.Repo.DeleteByEmail(ctx, email); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
