package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// TokenTypeRefresh marks refresh tokens via the tokenType claim.
	// Access tokens carry no tokenType claim at all.
	TokenTypeRefresh = "REFRESH"

	// clockSkew is the permitted drift between signer and verifier clocks
	// when judging expiry.
	clockSkew = 60 * time.Second
)

// Claims is the only claims shape this service signs or accepts. Keeping the
// set of fields fixed avoids the loosely typed claim-map lookups that make
// cross-type confusion possible.
type Claims struct {
	Roles     []string `json:"roles"`
	TokenType string   `json:"tokenType,omitempty"`
	jwt.RegisteredClaims
}

// JWTService signs and parses the service's bearer tokens. It is the sole
// authority on cryptographic validity and claim semantics; everything else
// treats tokens as opaque strings.
type JWTService struct {
	secretKey       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewJWTService(secretKey []byte, accessTokenTTL, refreshTokenTTL time.Duration) *JWTService {
	return &JWTService{
		secretKey:       secretKey,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

func (s *JWTService) issue(subject string, roles []string, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := Claims{
		Roles:     roles,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			// Unique jti keeps two tokens minted for the same subject in the
			// same second distinct; the refresh store keys on token value.
			ID:        uuid.New().String(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return token, nil
}

func (s *JWTService) GenerateAccessToken(subject string, roles []string) (string, error) {
	return s.issue(subject, roles, s.accessTokenTTL, "")
}

func (s *JWTService) GenerateRefreshToken(subject string, roles []string) (string, error) {
	return s.issue(subject, roles, s.refreshTokenTTL, TokenTypeRefresh)
}

// Parse verifies signature and expiry (with clock-skew tolerance) and returns
// the claims. Every recoverable validation failure comes back as an error the
// caller must treat as "unauthenticated", never as a system fault.
func (s *JWTService) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithLeeway(clockSkew))

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// ValidateAccessToken reports whether the token parses and carries no
// tokenType marker. A refresh token presented on the access path fails here
// even though its signature is valid.
func (s *JWTService) ValidateAccessToken(tokenStr string) bool {
	claims, err := s.Parse(tokenStr)
	if err != nil {
		return false
	}
	return claims.TokenType == ""
}

// ValidateRefreshToken reports whether the token parses and is explicitly
// marked as a refresh token.
func (s *JWTService) ValidateRefreshToken(tokenStr string) bool {
	claims, err := s.Parse(tokenStr)
	if err != nil {
		return false
	}
	return claims.TokenType == TokenTypeRefresh
}

// Roles returns the role claims of the token, or an empty slice when the
// token does not parse or carries none. Never nil.
func (s *JWTService) Roles(tokenStr string) []string {
	claims, err := s.Parse(tokenStr)
	if err != nil || claims.Roles == nil {
		return []string{}
	}
	return claims.Roles
}

// Subject returns the subject of the token, or "" when the token does not
// parse.
func (s *JWTService) Subject(tokenStr string) string {
	claims, err := s.Parse(tokenStr)
	if err != nil {
		return ""
	}
	return claims.Subject
}
