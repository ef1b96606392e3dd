package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-fitness-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-fitness-tracker/internal/domain/repository"
	"github.com/oksasatya/go-fitness-tracker/internal/observability"
	"github.com/oksasatya/go-fitness-tracker/pkg/helpers"
	"github.com/oksasatya/go-fitness-tracker/pkg/mailer"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

type TokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, time.Time, error)
	Verify(token string) (string, error)
}

// JobPublisher queues background work such as outgoing email.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type Service struct {
	Repo    repo.UserRepository
	Hasher  PasswordHasher
	Tokens  TokenIssuer
	Mail    JobPublisher
	AppName string
	Logger  *logrus.Logger
}

// AccessToken is what a successful login hands back.
type AccessToken struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
}

func NewService(users repo.UserRepository, hasher PasswordHasher, tokens TokenIssuer, mail JobPublisher, appName string, logger *logrus.Logger) *Service {
	return &Service{
		Repo:    users,
		Hasher:  hasher,
		Tokens:  tokens,
		Mail:    mail,
		AppName: appName,
		Logger:  logger,
	}
}

// Signup registers a new account. Emails are compared exactly as given.
func (s *Service) Signup(ctx context.Context, email, password string) (*entity.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, invalid("email", "is required")
	}
	if password == "" {
		return nil, invalid("password", "is required")
	}
	digest, err := s.Hasher.Hash(password)
	if err != nil {
		if helpers.IsPasswordTooLong(err) {
			return nil, invalid("password", "must be at most 72 bytes")
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{Email: email, Password: digest}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	observability.RecordSignup()
	s.Logger.WithField("user_id", u.ID).Info("user signed up")

	s.sendWelcome(ctx, u)
	return u, nil
}

// sendWelcome queues the welcome email. Failures never fail the signup.
func (s *Service) sendWelcome(ctx context.Context, u *entity.User) {
	if s.Mail == nil {
		return
	}
	job := mailer.WelcomeJob(s.AppName, u.Email, u.CreatedAt)
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.Mail.PublishJSON(c, job); err != nil {
		helpers.LogError(s.Logger, "queue welcome email failed", err, logrus.Fields{"user_id": u.ID})
	}
}

// Authenticate validates email/password and returns the user without issuing tokens.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if !s.Hasher.Verify(password, u.Password) {
		return nil, ErrUnauthenticated
	}
	return u, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (AccessToken, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			observability.RecordLogin(false)
		}
		return AccessToken{}, err
	}
	tok, exp, err := s.Tokens.Issue(u.Email, 0)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return AccessToken{}, err
	}
	observability.RecordLogin(true)
	return AccessToken{Token: tok, TokenType: "bearer", ExpiresAt: exp}, nil
}

// ResolveToken maps a bearer token to its user. Every failure, including a
// valid token for a since-deleted user, is ErrUnauthenticated.
func (s *Service) ResolveToken(ctx context.Context, token string) (*entity.User, error) {
	email, err := s.Tokens.Verify(token)
	if err != nil {
		s.Logger.WithError(err).Debug("token rejected")
		return nil, ErrUnauthenticated
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return u, nil
}
