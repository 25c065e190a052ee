package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/agrolink/farmmarket/internal/auth"
	"github.com/agrolink/farmmarket/internal/logging"
	"github.com/agrolink/farmmarket/internal/models"
	"github.com/agrolink/farmmarket/internal/repo"
	"github.com/agrolink/farmmarket/internal/transport"
)

type UserService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) VerifyUser(ctx context.Context, email string) (*transport.VerifyUserResponse, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &transport.VerifyUserResponse{Exists: false}, nil
		}
		return nil, err
	}
	return &transport.VerifyUserResponse{Exists: true, User: user}, nil
}

// CreateUser registers a user once per normalized email. Profile extras
// outside the declared set are not accepted: the request DTO is the
// allowlist.
func (s *UserService) CreateUser(ctx context.Context, req transport.CreateUserRequest) (*transport.AuthResponse, error) {
	l := logging.FromContext(ctx).With("svc", "users.create_user")

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if req.Role == "" {
		return nil, fmt.Errorf("%w: role is required", ErrValidation)
	}
	if !models.ValidRole(req.Role) {
		return nil, fmt.Errorf("%w: invalid role %q", ErrValidation, req.Role)
	}

	email := NormalizeEmail(req.Email)
	user := &models.User{
		Name:     req.Name,
		Email:    email,
		Role:     req.Role,
		Age:      req.Age,
		Region:   req.Region,
		FarmSize: req.FarmSize,
		Phone:    req.Phone,
	}
	if req.Password != "" {
		pwHash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = pwHash
	}

	// The unique index on email decides duplicates. Checking first and
	// creating after would leave a window where two concurrent requests
	// both pass the check.
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if repo.IsDuplicateKey(err) {
			return nil, fmt.Errorf("%w: user with email %s already exists", ErrConflict, email)
		}
		return nil, err
	}

	token, err := auth.MintAccessToken(user.Email, user.Name, user.Role, s.JWTSecret)
	if err != nil {
		l.Error("create_user_token_error", "error", err)
		return nil, err
	}

	l.Info("user_created", "email", user.Email, "role", user.Role)
	return &transport.AuthResponse{User: user, AccessToken: token}, nil
}

func (s *UserService) GetUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.Repo.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
		}
		return nil, err
	}
	return user, nil
}

// Login re-issues an access token for an existing user. Accounts that
// registered with a password must present it.
func (s *UserService) Login(ctx context.Context, req transport.LoginRequest) (*transport.AuthResponse, error) {
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, req.Email)
		}
		return nil, err
	}

	if user.PasswordHash != "" && !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrValidation)
	}

	token, err := auth.MintAccessToken(user.Email, user.Name, user.Role, s.JWTSecret)
	if err != nil {
		return nil, err
	}
	return &transport.AuthResponse{User: user, AccessToken: token}, nil
}
