package auth

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/corkboard/internal/common"
)

func TestGenerateAndVerify_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	identity := &Identity{UID: "user-123", Name: "Alice", Email: "alice@example.com"}

	tok, err := GenerateToken(identity, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := NewJWTVerifier(secret).Verify(context.Background(), tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got.UID != identity.UID {
		t.Fatalf("uid mismatch: got %q want %q", got.UID, identity.UID)
	}
	if got.Name != identity.Name {
		t.Fatalf("name mismatch: got %q want %q", got.Name, identity.Name)
	}
	if got.Email != identity.Email {
		t.Fatalf("email mismatch: got %q want %q", got.Email, identity.Email)
	}
}

func TestVerify_NameFallsBackToDefault(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken(&Identity{UID: "u9"}, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := NewJWTVerifier(secret).Verify(context.Background(), tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got.Name != common.DefaultDisplayName {
		t.Fatalf("expected default display name, got %q", got.Name)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken(&Identity{UID: "u1"}, secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = NewJWTVerifier(secret).Verify(context.Background(), tok)
	if err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
	if err != common.ErrTokenExpired {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(&Identity{UID: "u2"}, []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = NewJWTVerifier([]byte("wrong-secret")).Verify(context.Background(), tok)
	if err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := NewJWTVerifier([]byte("k")).Verify(context.Background(), "not.a.jwt")
	if err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func TestVerify_EmptyCredential(t *testing.T) {
	t.Parallel()

	_, err := NewJWTVerifier([]byte("k")).Verify(context.Background(), "")
	if err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}
