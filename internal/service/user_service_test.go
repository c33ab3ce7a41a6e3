package service

import (
	"context"
	"testing"

	"auth-api/internal/model"
	"auth-api/internal/repository"
	"auth-api/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	userService := NewUserService(users, zap.NewNop())

	users.On("ExistsByEmail", ctx, "taken@example.com").Return(true, nil)

	_, err := userService.Create(ctx, CreateUserRequest{
		Email:    "taken@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestCreateUser_HashesPasswordAndDefaultsRole(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	userService := NewUserService(users, zap.NewNop())

	users.On("ExistsByEmail", ctx, "new@example.com").Return(false, nil)

	var inserted *model.User
	users.On("Insert", ctx, mock.MatchedBy(func(u *model.User) bool {
		inserted = u
		return u.Email == "new@example.com"
	})).Return(nil)

	user, err := userService.Create(ctx, CreateUserRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     "new@example.com",
		Password:  "password123",
	})
	require.NoError(t, err)
	require.NotNil(t, inserted)

	assert.NotEqual(t, "password123", inserted.Password)
	assert.True(t, security.VerifyPassword("password123", inserted.Password))
	assert.Equal(t, []string{model.RoleUser}, []string(inserted.Roles))
	assert.False(t, user.IsVerified)
	assert.NotEmpty(t, user.Id)
}

func TestUpdateUser_NotFound(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	userService := NewUserService(users, zap.NewNop())

	users.On("FindById", ctx, "missing").Return(nil, repository.ErrNotFound)

	_, err := userService.Update(ctx, "missing", UpdateUserRequest{Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUser_EmailConflict(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	userService := NewUserService(users, zap.NewNop())

	users.On("FindById", ctx, "user-1").Return(&model.User{
		Id:    "user-1",
		Email: "old@example.com",
	}, nil)
	users.On("ExistsByEmail", ctx, "taken@example.com").Return(true, nil)

	_, err := userService.Update(ctx, "user-1", UpdateUserRequest{Email: "taken@example.com"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUpdateUser_Success(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	userService := NewUserService(users, zap.NewNop())

	users.On("FindById", ctx, "user-1").Return(&model.User{
		Id:    "user-1",
		Email: "old@example.com",
	}, nil)
	users.On("ExistsByEmail", ctx, "new@example.com").Return(false, nil)
	users.On("Update", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Id == "user-1" && u.Email == "new@example.com" && u.FirstName == "Renamed"
	})).Return(nil)

	user, err := userService.Update(ctx, "user-1", UpdateUserRequest{
		FirstName: "Renamed",
		Email:     "new@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	users.AssertExpectations(t)
}

func TestDeleteUser_NotFound(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	userService := NewUserService(users, zap.NewNop())

	users.On("Delete", ctx, "missing").Return(repository.ErrNotFound)

	err := userService.Delete(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFindUsers_DefaultsPageSize(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	userService := NewUserService(users, zap.NewNop())

	users.On("Search", ctx, model.SearchCriteria{}, model.PageRequest{Size: 10}).
		Return(&model.UserPage{Size: 10}, nil)

	result, err := userService.Find(ctx, model.SearchCriteria{}, model.PageRequest{Size: 0})
	require.NoError(t, err)
	assert.Equal(t, 10, result.Size)
}
