package ports

import (
	"context"

	"auth-api/internal/model"
	"auth-api/internal/security"
)

type UserRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindById(ctx context.Context, id string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, criteria model.SearchCriteria, page model.PageRequest) (*model.UserPage, error)
}

type RefreshTokenRepositoryInterface interface {
	FindActiveByUser(ctx context.Context, userId string) ([]model.RefreshCredential, error)
	FindByTokenValue(ctx context.Context, tokenValue string) (*model.RefreshCredential, error)
	Save(ctx context.Context, credential *model.RefreshCredential) error
	RevokeAll(ctx context.Context, userId string) error
}

type JWTServiceInterface interface {
	GenerateAccessToken(subject string, roles []string) (string, error)
	GenerateRefreshToken(subject string, roles []string) (string, error)
	Parse(tokenStr string) (*security.Claims, error)
	ValidateAccessToken(tokenStr string) bool
	ValidateRefreshToken(tokenStr string) bool
	Roles(tokenStr string) []string
	Subject(tokenStr string) string
}

// SecurityNotifierInterface receives fire-and-forget security events such as
// refresh-token reuse.
type SecurityNotifierInterface interface {
	NotifyTokenReuse(userId string, tokenId string)
}
