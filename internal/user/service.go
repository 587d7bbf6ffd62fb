package user

import (
	"context"
	"errors"
	"strings"

	"handmade-market/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service backs the authentication API: registration, login and profile
// updates, each answering with a fresh session token.
type Service interface {
	Register(ctx context.Context, in RegisterInput) (string, User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	UpdateProfile(ctx context.Context, userID string, p ProfileUpdate) (string, User, error)
	Authenticate(ctx context.Context, token string) (User, error)
}

type service struct {
	repo   Repository
	tokens *TokenIssuer
}

func NewService(repo Repository, tokens *TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, in RegisterInput) (string, User, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "Register"))

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if strings.TrimSpace(in.Name) == "" || email == "" || in.Password == "" {
		return "", User{}, ErrInvalidInput
	}

	// Administrators are provisioned out of band.
	role := in.Role
	if role == (Role{}) {
		role = Customer
	}
	if role == Admin {
		return "", User{}, ErrRoleNotAllowed
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, User{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(in.Name),
		Email:           email,
		Role:            role,
		Phone:           in.Phone,
		Address:         in.Address,
		ShopName:        in.ShopName,
		ShopDescription: in.ShopDescription,
	}, hashed)
	if err != nil {
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return "", User{}, err
	}

	token, err := s.tokens.Generate(u)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register completed",
		zap.String("user_id", u.ID),
		zap.String("role", u.Role.String()),
	)
	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "Login"))

	u, hash, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Error("failed to look up user", zap.Error(err))
			return "", User{}, err
		}
		log.Info("login for unknown email")
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, hash) {
		log.Info("password mismatch", zap.String("user_id", u.ID))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u)
	if err != nil {
		return "", User{}, err
	}
	return token, u, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID string, p ProfileUpdate) (string, User, error) {
	if p.IsEmpty() {
		return "", User{}, ErrEmptyProfile
	}

	u, err := s.repo.UpdateProfile(ctx, userID, p)
	if err != nil {
		return "", User{}, err
	}

	token, err := s.tokens.Generate(u)
	if err != nil {
		return "", User{}, err
	}

	logger.FromCtx(ctx).Info("profile updated", zap.String("user_id", userID))
	return token, u, nil
}

// Authenticate verifies token and loads the user it names.
func (s *service) Authenticate(ctx context.Context, token string) (User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return User{}, err
	}
	return s.repo.FindByID(ctx, claims.UserID)
}
