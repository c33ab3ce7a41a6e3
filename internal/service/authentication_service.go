package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auth-api/internal/metrics"
	"auth-api/internal/model"
	"auth-api/internal/ports"
	"auth-api/internal/security"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// AuthenticationService orchestrates login, logout and refresh. A refresh
// credential moves through exactly one lifecycle: issued, then revoked by
// logout, by rotation, or by a superseding login. Never back.
type AuthenticationService struct {
	UserRepository         ports.UserRepositoryInterface
	RefreshTokenRepository ports.RefreshTokenRepositoryInterface
	JWTService             ports.JWTServiceInterface
	Notifier               ports.SecurityNotifierInterface
	RefreshRecordTTL       time.Duration
	Logger                 *zap.Logger

	rotation *userLocks
}

func NewAuthenticationService(
	userRepository ports.UserRepositoryInterface,
	refreshTokenRepository ports.RefreshTokenRepositoryInterface,
	jwtService ports.JWTServiceInterface,
	notifier ports.SecurityNotifierInterface,
	refreshRecordTTL time.Duration,
	logger *zap.Logger,
) *AuthenticationService {
	return &AuthenticationService{
		UserRepository:         userRepository,
		RefreshTokenRepository: refreshTokenRepository,
		JWTService:             jwtService,
		Notifier:               notifier,
		RefreshRecordTTL:       refreshRecordTTL,
		Logger:                 logger,
		rotation:               newUserLocks(),
	}
}

// Login verifies the credentials and issues a fresh access/refresh pair. All
// previously issued refresh credentials of the user are revoked before the
// new one is persisted, so at most one stays active.
func (service *AuthenticationService) Login(ctx context.Context, email string, password string) (*model.TokensPair, error) {
	user, err := service.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !security.VerifyPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	roles := []string(user.Roles)
	if len(roles) == 0 {
		roles = []string{model.RoleUser}
	}

	tokensPair, refreshToken, err := service.issueTokens(user.Id, roles)
	if err != nil {
		return nil, err
	}

	if err := service.rotate(ctx, user.Id, refreshToken); err != nil {
		return nil, err
	}

	metrics.LoginsTotal.Inc()
	service.Logger.Info("user logged in", zap.String("userId", user.Id))
	return tokensPair, nil
}

// Logout revokes the presented refresh credential. The bearer value must
// carry the refresh token, not the access token: revocation is keyed by the
// stored token value.
func (service *AuthenticationService) Logout(ctx context.Context, bearerValue string) error {
	refreshToken := strings.TrimPrefix(bearerValue, bearerPrefix)

	credential, err := service.findCredential(ctx, refreshToken)
	if err != nil {
		return err
	}

	credential.Revoked = true
	if err := service.RefreshTokenRepository.Save(ctx, credential); err != nil {
		return fmt.Errorf("revoking refresh token: %w", err)
	}

	service.Logger.Info("user logged out", zap.String("userId", credential.UserId))
	return nil
}

// Refresh exchanges a live refresh token for a new access/refresh pair and
// revokes the one just used, making every refresh token single-use. A token
// that is already revoked is reported as ErrTokenRevoked and a security
// event is emitted: replay after rotation means the token leaked.
func (service *AuthenticationService) Refresh(ctx context.Context, bearerValue string) (*model.TokensPair, error) {
	refreshToken := strings.TrimPrefix(bearerValue, bearerPrefix)

	// The first lookup only learns whose lock to take. The authoritative read
	// happens under the lock: two racing calls carrying the same token would
	// otherwise both observe it unrevoked and both rotate.
	credential, err := service.findCredential(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	unlock := service.rotation.Lock(credential.UserId)
	defer unlock()

	credential, err = service.findCredential(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if credential.Revoked {
		service.Logger.Warn("revoked refresh token presented",
			zap.String("userId", credential.UserId),
			zap.String("tokenId", credential.Id))
		metrics.TokenReuseTotal.Inc()
		if service.Notifier != nil {
			service.Notifier.NotifyTokenReuse(credential.UserId, credential.Id)
		}
		return nil, ErrTokenRevoked
	}

	// The stored record carries its own expiry, shorter-or-equal to the one
	// embedded in the token; an outlived record is dead even if the token
	// still parses.
	if time.Now().After(credential.ExpiryDate) {
		service.Logger.Warn("expired refresh credential presented",
			zap.String("userId", credential.UserId),
			zap.String("tokenId", credential.Id))
		return nil, ErrTokenInvalid
	}

	if !service.JWTService.ValidateRefreshToken(refreshToken) {
		return nil, ErrTokenInvalid
	}

	// The new pair carries the same roles the consumed token was issued with.
	roles := service.JWTService.Roles(refreshToken)

	tokensPair, newRefreshToken, err := service.issueTokens(credential.UserId, roles)
	if err != nil {
		return nil, err
	}

	credential.Revoked = true
	if err := service.RefreshTokenRepository.Save(ctx, credential); err != nil {
		return nil, fmt.Errorf("revoking consumed refresh token: %w", err)
	}

	if err := service.saveCredential(ctx, credential.UserId, newRefreshToken); err != nil {
		return nil, err
	}

	metrics.RotationsTotal.Inc()
	service.Logger.Info("refresh token rotated", zap.String("userId", credential.UserId))
	return tokensPair, nil
}

func (service *AuthenticationService) issueTokens(userId string, roles []string) (*model.TokensPair, string, error) {
	accessToken, err := service.JWTService.GenerateAccessToken(userId, roles)
	if err != nil {
		return nil, "", fmt.Errorf("generating access token: %w", err)
	}

	refreshToken, err := service.JWTService.GenerateRefreshToken(userId, roles)
	if err != nil {
		return nil, "", fmt.Errorf("generating refresh token: %w", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, refreshToken, nil
}

func (service *AuthenticationService) findCredential(ctx context.Context, refreshToken string) (*model.RefreshCredential, error) {
	credential, err := service.RefreshTokenRepository.FindByTokenValue(ctx, refreshToken)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("looking up refresh token: %w", err)
	}
	return credential, nil
}

// rotate sweeps every standing credential of the user and persists the new
// one under the per-user lock, so a concurrent login or refresh cannot
// interleave and leave two active records.
func (service *AuthenticationService) rotate(ctx context.Context, userId string, newRefreshToken string) error {
	unlock := service.rotation.Lock(userId)
	defer unlock()

	if err := service.RefreshTokenRepository.RevokeAll(ctx, userId); err != nil {
		return fmt.Errorf("revoking previous refresh tokens: %w", err)
	}

	return service.saveCredential(ctx, userId, newRefreshToken)
}

func (service *AuthenticationService) saveCredential(ctx context.Context, userId string, newRefreshToken string) error {
	now := time.Now()
	credential := &model.RefreshCredential{
		Id:         uuid.New().String(),
		UserId:     userId,
		TokenValue: newRefreshToken,
		ExpiryDate: now.Add(service.RefreshRecordTTL),
		Revoked:    false,
		CreatedAt:  now,
	}

	if err := service.RefreshTokenRepository.Save(ctx, credential); err != nil {
		return fmt.Errorf("saving refresh token: %w", err)
	}

	return nil
}
