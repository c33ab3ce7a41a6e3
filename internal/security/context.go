package security

import "context"

// Identity is the request-scoped authenticated principal, rebuilt on every
// request from a validated access token and discarded with the request.
type Identity struct {
	Subject string
	Roles   []string
}

// HasRole reports whether the identity carries the given authority.
func (id Identity) HasRole(role string) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type identityKey struct{}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom returns the identity established by the authentication gate,
// if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}
