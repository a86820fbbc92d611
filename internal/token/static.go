package token

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"noti-server/internal/domain"
)

// StaticVerifier validates HS256 tokens signed with a shared secret. It is
// the development fallback when no OIDC issuer is configured.
type StaticVerifier struct {
	secret []byte
}

func NewStaticVerifier(secret string) *StaticVerifier {
	return &StaticVerifier{secret: []byte(secret)}
}

func (v *StaticVerifier) Verify(ctx context.Context, raw string) (*domain.Identity, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	// Round-trip through JSON so the nested realm_access claim decodes the
	// same way it does for OIDC tokens.
	buf, err := json.Marshal(map[string]interface{}(mapClaims))
	if err != nil {
		return nil, ErrInvalidToken
	}
	var claims domain.TokenClaims
	if err := json.Unmarshal(buf, &claims); err != nil {
		return nil, ErrInvalidToken
	}

	return claims.Identity(), nil
}
