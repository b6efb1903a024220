package deploy

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"bear-tracker/internal/middleware"
	"bear-tracker/internal/ports/auth"
)

const SignatureHeader = "X-Hub-Signature-256"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// SignatureVerifier valida la firma HMAC de un webhook sobre el body crudo.
type SignatureVerifier interface {
	Verify(body []byte, signature string) error
}

// Guard decide si un POST a /bears/update puede disparar un redeploy.
// Acepta firma de webhook (si hay secreto) o un JWT con rol deployer
// (si el router tiene verifier). Sin ninguno de los dos, rechaza todo.
type Guard struct {
	Signatures   SignatureVerifier
	AcceptTokens bool
}

func (g *Guard) Enabled() bool {
	return g != nil && (g.Signatures != nil || g.AcceptTokens)
}

func (g *Guard) Authorize(ctx context.Context, h http.Header, body []byte) error {
	if !g.Enabled() {
		return ErrForbidden
	}

	if sig := strings.TrimSpace(h.Get(SignatureHeader)); sig != "" {
		if g.Signatures == nil {
			return ErrForbidden
		}
		if err := g.Signatures.Verify(body, sig); err != nil {
			return ErrForbidden
		}
		return nil
	}

	if !g.AcceptTokens {
		return ErrUnauthenticated
	}

	claims, ok := middleware.GetClaims(ctx)
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		return ErrUnauthenticated
	}
	if !claims.HasRole(auth.RoleDeployer) {
		return ErrForbidden
	}
	return nil
}
