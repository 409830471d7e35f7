package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/corkboard/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims — структура утверждений, которая включает стандартные утверждения и
// пользовательские UID, Name и Email
type Claims struct {
	jwt.RegisteredClaims
	UID   string `json:"uid,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// JWTVerifier validates HS256 tokens signed with a shared secret and maps
// their claims onto an Identity.
type JWTVerifier struct {
	secretKey []byte
}

func NewJWTVerifier(secretKey []byte) *JWTVerifier {
	return &JWTVerifier{secretKey: secretKey}
}

// Verify parses and validates the token. The UID claim falls back to the
// registered subject; a missing display name becomes the default one, as the
// upstream identity provider does not guarantee the profile claims.
func (v *JWTVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	if credential == "" {
		return nil, common.ErrInvalidToken
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(credential, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	uid := claims.UID
	if uid == "" {
		uid = claims.Subject
	}
	if uid == "" {
		return nil, common.ErrInvalidToken
	}

	name := claims.Name
	if name == "" {
		name = common.DefaultDisplayName
	}

	return &Identity{UID: uid, Name: name, Email: claims.Email}, nil
}

// GenerateToken mints a token for the given identity. The server itself only
// verifies tokens; this is used by tests and local tooling.
func GenerateToken(identity *Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UID:   identity.UID,
		Name:  identity.Name,
		Email: identity.Email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
