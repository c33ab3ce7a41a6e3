package security

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// AuthenticationGate is the per-request stateless authentication middleware.
// It owns the only path by which an identity enters a request context.
type AuthenticationGate struct {
	jwtService  *JWTService
	publicPaths []string
	logger      *zap.Logger
}

// NewAuthenticationGate builds the gate. publicPaths is the configured
// allow-list of path prefixes that bypass authentication entirely.
func NewAuthenticationGate(jwtService *JWTService, publicPaths []string, logger *zap.Logger) *AuthenticationGate {
	return &AuthenticationGate{
		jwtService:  jwtService,
		publicPaths: publicPaths,
		logger:      logger,
	}
}

func (g *AuthenticationGate) isPublic(path string) bool {
	for _, prefix := range g.publicPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Middleware authenticates each inbound request exactly once:
//
//   - allow-listed paths pass through untouched,
//   - a missing or non-Bearer Authorization header passes through without an
//     identity (downstream authorization rejects where one is required),
//   - a bearer token that fails access validation is a hard 401 — a forged,
//     expired, or refresh-typed token is hostile evidence, not a missing
//     credential,
//   - a valid access token populates the request context with an Identity.
//
// Any unexpected fault is downgraded to 401 so it never escapes the gate.
func (g *AuthenticationGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		defer func() {
			if r := recover(); r != nil {
				g.logger.Error("authentication gate panic", zap.Any("panic", r))
				http.Error(writer, "unauthorized", http.StatusUnauthorized)
			}
		}()

		if g.isPublic(request.URL.Path) {
			next.ServeHTTP(writer, request)
			return
		}

		authorizationHeader := request.Header.Get("Authorization")
		if !strings.HasPrefix(authorizationHeader, bearerPrefix) {
			next.ServeHTTP(writer, request)
			return
		}

		tokenStr := strings.TrimPrefix(authorizationHeader, bearerPrefix)
		claims, err := g.jwtService.Parse(tokenStr)
		if err != nil || claims.TokenType != "" {
			g.logger.Warn("rejected bearer token", zap.String("path", request.URL.Path))
			http.Error(writer, "invalid token", http.StatusUnauthorized)
			return
		}

		roles := claims.Roles
		if roles == nil {
			roles = []string{}
		}
		identity := Identity{
			Subject: claims.Subject,
			Roles:   roles,
		}

		next.ServeHTTP(writer, request.WithContext(WithIdentity(request.Context(), identity)))
	})
}

// RequireIdentity rejects requests that reached a protected handler without
// an identity established by the gate.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if _, ok := IdentityFrom(request.Context()); !ok {
			http.Error(writer, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(writer, request)
	})
}
