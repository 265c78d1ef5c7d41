package service

import (
	"context"
	"testing"

	"library-membership-be/internal/dto"
	"library-membership-be/internal/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	factory := newFakeFactory()
	svc := NewAuthService(factory)

	reg, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "John Michael Doe",
		Email:    "john.doe@gmail.com",
		Password: "super-secret-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "john.doe@gmail.com", reg.Email)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "john.doe@gmail.com",
		Password: "super-secret-1",
	}, "127.0.0.1", "go-test")
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Empty(t, res.RefreshToken)
	assert.Equal(t, "applicant", res.User.Role)

	// Token claims carry identity and role for the middleware.
	token, err := jwt.Parse(res.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, reg.Id.String(), claims["user_id"])
	assert.Equal(t, "applicant", claims["role"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAuthService(factory)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "John Michael Doe",
		Email:    "john.doe@gmail.com",
		Password: "super-secret-1",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Someone Else",
		Email:    "john.doe@gmail.com",
		Password: "other-secret-2",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestLoginWrongPassword(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAuthService(factory)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "John Michael Doe",
		Email:    "john.doe@gmail.com",
		Password: "super-secret-1",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "john.doe@gmail.com",
		Password: "wrong",
	}, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestLoginStaffRejectsApplicants(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAuthService(factory)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "John Michael Doe",
		Email:    "john.doe@gmail.com",
		Password: "super-secret-1",
	})
	require.NoError(t, err)

	_, err = svc.LoginStaff(context.Background(), &dto.LoginRequest{
		Email:    "john.doe@gmail.com",
		Password: "super-secret-1",
	}, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "staff only")
}

func TestLoginStaffAllowsAdmins(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAuthService(factory)

	// Staff accounts are provisioned by the seeder, not self-registration.
	reg, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Library Administrator",
		Email:    "library.admin@university.edu",
		Password: "super-secret-1",
	})
	require.NoError(t, err)

	user, err := factory.uow.users.FindOne(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	user.Role = entity.UserRoleLibraryAdmin
	require.NoError(t, factory.uow.users.Update(context.Background(), user))

	res, err := svc.LoginStaff(context.Background(), &dto.LoginRequest{
		Email:    "library.admin@university.edu",
		Password: "super-secret-1",
	}, "", "")
	require.NoError(t, err)
	assert.Equal(t, reg.Id, res.User.Id)
	assert.Equal(t, "library_admin", res.User.Role)
}

func TestLoginBlockedUser(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAuthService(factory)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "John Michael Doe",
		Email:    "john.doe@gmail.com",
		Password: "super-secret-1",
	})
	require.NoError(t, err)

	user, err := factory.uow.users.FindOne(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NoError(t, factory.uow.users.UpdateStatus(context.Background(), user.Id, "blocked"))

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "john.doe@gmail.com",
		Password: "super-secret-1",
	}, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
}
