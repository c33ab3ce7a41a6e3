package model

import "time"

// RefreshCredential is the persisted record of an issued refresh token.
// Records are never deleted in normal operation; revocation flips Revoked
// exactly once (logout, rotation, or a superseding login) and the row is
// retained for audit.
type RefreshCredential struct {
	Id         string    `db:"id"`
	UserId     string    `db:"user_id"`
	TokenValue string    `db:"token_value"`
	ExpiryDate time.Time `db:"expiry_date"`
	Revoked    bool      `db:"revoked"`
	CreatedAt  time.Time `db:"created_at"`
}

// TokensPair is the access/refresh pair returned by login and refresh.
type TokensPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
