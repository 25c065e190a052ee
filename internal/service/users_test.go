package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agrolink/farmmarket/internal/auth"
	"github.com/agrolink/farmmarket/internal/models"
	"github.com/agrolink/farmmarket/internal/transport"
)

var testSecret = []byte("test-secret")

func newUserService(t *testing.T) *UserService {
	return &UserService{Repo: newTestRepo(t), JWTSecret: testSecret}
}

func TestCreateUserAndVerify(t *testing.T) {
	svc := newUserService(t)

	result, err := svc.CreateUser(context.Background(), transport.CreateUserRequest{
		Name:   "Alice",
		Email:  "Alice@Example.com",
		Role:   models.RoleProducer,
		Region: "north",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", result.User.Email)
	require.Equal(t, "north", result.User.Region)
	require.NotEmpty(t, result.AccessToken)

	claims, err := auth.ClaimsFromToken(result.AccessToken, testSecret)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", claims.Subject)
	require.Equal(t, models.RoleProducer, claims.Role)

	verified, err := svc.VerifyUser(context.Background(), "ALICE@example.COM")
	require.NoError(t, err)
	require.True(t, verified.Exists)
	require.Equal(t, result.User.ID, verified.User.ID)

	missing, err := svc.VerifyUser(context.Background(), "bob@example.com")
	require.NoError(t, err)
	require.False(t, missing.Exists)
	require.Nil(t, missing.User)
}

func TestCreateUserConflictAcrossLetterCase(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.CreateUser(context.Background(), transport.CreateUserRequest{
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  models.RoleBuyer,
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), transport.CreateUserRequest{
		Name:  "Other Alice",
		Email: "ALICE@EXAMPLE.COM",
		Role:  models.RoleBuyer,
	})
	require.ErrorIs(t, err, ErrConflict)
}

func TestCreateUserDuplicateRowMapsToConflict(t *testing.T) {
	r := newTestRepo(t)
	svc := &UserService{Repo: r, JWTSecret: testSecret}

	// Row inserted behind the service's back, as a concurrent request
	// would: the unique index, not a prior lookup, must report the
	// duplicate as a conflict.
	require.NoError(t, r.CreateUser(context.Background(), &models.User{
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  models.RoleBuyer,
	}))

	_, err := svc.CreateUser(context.Background(), transport.CreateUserRequest{
		Name:  "Other Alice",
		Email: "alice@example.com",
		Role:  models.RoleBuyer,
	})
	require.ErrorIs(t, err, ErrConflict)
}

func TestCreateUserValidation(t *testing.T) {
	svc := newUserService(t)

	cases := []transport.CreateUserRequest{
		{Email: "a@b.com", Role: models.RoleBuyer},
		{Name: "Alice", Role: models.RoleBuyer},
		{Name: "Alice", Email: "a@b.com"},
		{Name: "Alice", Email: "a@b.com", Role: "wizard"},
	}
	for _, req := range cases {
		_, err := svc.CreateUser(context.Background(), req)
		require.ErrorIs(t, err, ErrValidation)
	}
}

func TestGetUser(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.CreateUser(context.Background(), transport.CreateUserRequest{
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  models.RoleOfficial,
	})
	require.NoError(t, err)

	user, err := svc.GetUser(context.Background(), "Alice@Example.com")
	require.NoError(t, err)
	require.Equal(t, models.RoleOfficial, user.Role)

	_, err = svc.GetUser(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoginWithAndWithoutPassword(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.CreateUser(context.Background(), transport.CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Role:     models.RoleBuyer,
		Password: "hunter2",
	})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), transport.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)

	_, err = svc.Login(context.Background(), transport.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	require.ErrorIs(t, err, ErrValidation)

	// Accounts without a password log in by email alone.
	_, err = svc.CreateUser(context.Background(), transport.CreateUserRequest{
		Name:  "Bob",
		Email: "bob@example.com",
		Role:  models.RoleProducer,
	})
	require.NoError(t, err)

	result, err = svc.Login(context.Background(), transport.LoginRequest{Email: "bob@example.com"})
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", result.User.Email)

	_, err = svc.Login(context.Background(), transport.LoginRequest{Email: "nobody@example.com"})
	require.ErrorIs(t, err, ErrNotFound)
}
