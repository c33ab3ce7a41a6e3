package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"auth-api/internal"
	"auth-api/internal/model"
)

// ErrNotFound is returned by lookups that match no row. Storage-layer
// failures are returned as-is so callers never mistake an outage for a
// missing credential.
var ErrNotFound = errors.New("record not found")

type RefreshTokenRepository struct {
	*internal.Database
}

func NewRefreshTokenRepository(database *internal.Database) *RefreshTokenRepository {
	return &RefreshTokenRepository{database}
}

func (repository *RefreshTokenRepository) FindActiveByUser(ctx context.Context, userId string) ([]model.RefreshCredential, error) {
	query := `SELECT id, user_id, token_value, expiry_date, revoked, created_at
			  FROM refresh_tokens
			  WHERE user_id = $1 AND revoked = FALSE`

	var credentials []model.RefreshCredential
	if err := repository.DB.SelectContext(ctx, &credentials, query, userId); err != nil {
		return nil, fmt.Errorf("selecting active refresh tokens: %w", err)
	}

	return credentials, nil
}

func (repository *RefreshTokenRepository) FindByTokenValue(ctx context.Context, tokenValue string) (*model.RefreshCredential, error) {
	query := `SELECT id, user_id, token_value, expiry_date, revoked, created_at
			  FROM refresh_tokens
			  WHERE token_value = $1`

	var credential model.RefreshCredential
	if err := repository.DB.GetContext(ctx, &credential, query, tokenValue); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("selecting refresh token: %w", err)
	}

	return &credential, nil
}

// Save inserts the credential or, when a row with the same id exists,
// overwrites its revocation state. Token value and ownership never change
// after creation.
func (repository *RefreshTokenRepository) Save(ctx context.Context, credential *model.RefreshCredential) error {
	query := `INSERT INTO refresh_tokens (id, user_id, token_value, expiry_date, revoked, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (id) DO UPDATE SET revoked = EXCLUDED.revoked`

	_, err := repository.DB.ExecContext(ctx, query,
		credential.Id,
		credential.UserId,
		credential.TokenValue,
		credential.ExpiryDate,
		credential.Revoked,
		credential.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving refresh token: %w", err)
	}

	return nil
}

// RevokeAll marks every credential of the user as revoked. Login and refresh
// call this before inserting a fresh record so that at most one active
// credential per user survives either operation.
func (repository *RefreshTokenRepository) RevokeAll(ctx context.Context, userId string) error {
	query := `UPDATE refresh_tokens SET revoked = TRUE WHERE user_id = $1 AND revoked = FALSE`

	if _, err := repository.DB.ExecContext(ctx, query, userId); err != nil {
		return fmt.Errorf("revoking refresh tokens: %w", err)
	}

	return nil
}
