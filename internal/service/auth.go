package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"branches-api/internal/model"
)

// UserStore is the credential store behind registration and login. Create
// must be atomic with respect to the unique-email check: concurrent inserts
// for the same email yield exactly one success and one ErrEmailTaken.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, user model.User) error
}

type AuthService struct {
	users       UserStore
	tokens      *TokenService
	recheckUser bool
}

// NewAuthService wires the credential store and token service. When
// recheckUser is set, every identity resolution re-validates that the subject
// still exists in the store, so deleted users lose access before their tokens
// expire.
func NewAuthService(users UserStore, tokens *TokenService, recheckUser bool) *AuthService {
	return &AuthService{users: users, tokens: tokens, recheckUser: recheckUser}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, email string, password string) (model.TokenPair, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return model.TokenPair{}, model.ErrInvalidInput
	}

	hash, err := HashPassword(password)
	if err != nil {
		return model.TokenPair{}, err
	}

	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.TokenPair{}, err
	}

	return s.issueTokenPair(email)
}

// Login deliberately collapses "unknown email" and "wrong password" into one
// generic failure so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email string, password string) (model.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.TokenPair{}, model.ErrInvalidCredentials
		}
		return model.TokenPair{}, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	return s.issueTokenPair(user.Email)
}

// ResolveIdentity turns a raw bearer token into the caller's identity. It is
// the single entry point the auth middleware uses for protected routes.
func (s *AuthService) ResolveIdentity(ctx context.Context, tokenString string) (model.Identity, error) {
	claims, err := s.tokens.Decode(tokenString)
	if err != nil {
		return model.Identity{}, err
	}

	if s.recheckUser {
		if _, err := s.users.FindByEmail(ctx, claims.Subject); err != nil {
			return model.Identity{}, err
		}
	}

	return model.Identity{Email: claims.Subject}, nil
}

func (s *AuthService) issueTokenPair(subject string) (model.TokenPair, error) {
	accessToken, err := s.tokens.IssueAccessToken(subject)
	if err != nil {
		return model.TokenPair{}, err
	}

	refreshToken, err := s.tokens.IssueRefreshToken(subject)
	if err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}
