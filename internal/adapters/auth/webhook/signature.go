package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

const prefix = "sha256="

var (
	ErrNoSecret         = errors.New("webhook secret not configured")
	ErrMalformed        = errors.New("malformed signature")
	ErrSignatureInvalid = errors.New("signature mismatch")
)

// Verifier valida firmas estilo GitHub: "sha256=" + hex(HMAC-SHA256(body)).
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrNoSecret
	}
	return &Verifier{secret: []byte(secret)}, nil
}

func (v *Verifier) Verify(body []byte, signature string) error {
	signature = strings.TrimSpace(signature)
	if !strings.HasPrefix(signature, prefix) {
		return ErrMalformed
	}
	got, err := hex.DecodeString(signature[len(prefix):])
	if err != nil {
		return ErrMalformed
	}
	if !hmac.Equal(got, Sign(v.secret, body)) {
		return ErrSignatureInvalid
	}
	return nil
}

// Sign devuelve el HMAC-SHA256 crudo del body.
func Sign(secret, body []byte) []byte {
	m := hmac.New(sha256.New, secret)
	m.Write(body)
	return m.Sum(nil)
}

// Header arma el valor del header para un body (útil en tests y clientes).
func Header(secret string, body []byte) string {
	return prefix + hex.EncodeToString(Sign([]byte(secret), body))
}
