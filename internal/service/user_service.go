package service

import (
	"context"
	"fmt"
	"time"

	"auth-api/internal/model"
	"auth-api/internal/ports"
	"auth-api/internal/security"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService struct {
	UserRepository ports.UserRepositoryInterface
	Logger         *zap.Logger
}

func NewUserService(userRepository ports.UserRepositoryInterface, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: userRepository,
		Logger:         logger,
	}
}

type CreateUserRequest struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber string
}

type UpdateUserRequest struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
}

func (service *UserService) Create(ctx context.Context, request CreateUserRequest) (*model.User, error) {
	exists, err := service.UserRepository.ExistsByEmail(ctx, request.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := security.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		Id:          uuid.New().String(),
		FirstName:   request.FirstName,
		LastName:    request.LastName,
		Email:       request.Email,
		Password:    hashedPassword,
		PhoneNumber: request.PhoneNumber,
		Roles:       []string{model.RoleUser},
		IsVerified:  false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.UserRepository.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	service.Logger.Info("user created", zap.String("userId", user.Id))
	return user, nil
}

func (service *UserService) Find(ctx context.Context, criteria model.SearchCriteria, page model.PageRequest) (*model.UserPage, error) {
	if page.Size <= 0 {
		page.Size = 10
	}
	if page.Page < 0 {
		page.Page = 0
	}

	result, err := service.UserRepository.Search(ctx, criteria, page)
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}

	return result, nil
}

func (service *UserService) Update(ctx context.Context, id string, request UpdateUserRequest) (*model.User, error) {
	user, err := service.UserRepository.FindById(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if request.Email != user.Email {
		exists, err := service.UserRepository.ExistsByEmail(ctx, request.Email)
		if err != nil {
			return nil, fmt.Errorf("checking email: %w", err)
		}
		if exists {
			return nil, ErrEmailExists
		}
	}

	user.FirstName = request.FirstName
	user.LastName = request.LastName
	user.Email = request.Email
	user.PhoneNumber = request.PhoneNumber
	user.UpdatedAt = time.Now()

	if err := service.UserRepository.Update(ctx, user); err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	service.Logger.Info("user updated", zap.String("userId", user.Id))
	return user, nil
}

func (service *UserService) Delete(ctx context.Context, id string) error {
	if err := service.UserRepository.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("deleting user: %w", err)
	}

	service.Logger.Info("user deleted", zap.String("userId", id))
	return nil
}
