package remote

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pourlog/pourlog/internal/bridge"
	"github.com/pourlog/pourlog/internal/common"
)

// Claims are the token claims the identity provider cares about.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// TokenFileIdentity resolves the current user from an access token stored on
// disk by the sign-in flow (which itself is outside the core). Any condition
// that leaves the identity unresolvable — missing file, malformed or expired
// token — reports common.ErrAuthRequired.
type TokenFileIdentity struct {
	path      string
	secretKey []byte
}

func NewTokenFileIdentity(path string, secretKey []byte) *TokenFileIdentity {
	return &TokenFileIdentity{path: path, secretKey: secretKey}
}

// CurrentUser parses and validates the stored token.
func (t *TokenFileIdentity) CurrentUser(ctx context.Context) (*bridge.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(t.path)
	if err != nil {
		return nil, fmt.Errorf("%w: no stored token", common.ErrAuthRequired)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(string(raw)), claims, func(tk *jwt.Token) (interface{}, error) {
		return t.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAuthRequired, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("%w: invalid token", common.ErrAuthRequired)
	}

	return &bridge.User{ID: claims.UserID, Email: claims.Email}, nil
}
