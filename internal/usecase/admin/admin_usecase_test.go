package admin

import (
	"errors"
	"testing"
	"time"

	"github.com/fredluz/Cupido/internal/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestUseCase(t *testing.T, password string) *UseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return NewUseCase(string(hash), testSecret, time.Hour, logger.NewNop())
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	uc := newTestUseCase(t, "correct-horse")

	token, expiresAt, err := uc.Login("correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("token already expired: %v", expiresAt)
	}
	if err := uc.VerifyToken(token); err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	uc := newTestUseCase(t, "correct-horse")

	if _, _, err := uc.Login("battery-staple"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	uc := newTestUseCase(t, "correct-horse")

	if err := uc.VerifyToken("not-a-jwt"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestVerifyTokenRejectsForeignSecret(t *testing.T) {
	issuer := newTestUseCase(t, "correct-horse")
	verifier := NewUseCase("irrelevant", "another-secret-another-secret-00", time.Hour, logger.NewNop())

	token, _, err := issuer.Login("correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := verifier.VerifyToken(token); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}
