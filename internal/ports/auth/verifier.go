package auth

import "context"

// AuthVerifier valida un bearer token y devuelve sus claims.
// La implementación en uso es adapters/auth/jwtauth (HS256).
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
