package admin

import (
	"errors"
	"fmt"
	"time"

	"github.com/fredluz/Cupido/internal/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong operator password or a bad token.
var ErrInvalidCredentials = errors.New("invalid operator credentials")

const operatorSubject = "operator"

// UseCase authenticates the event operator, the only actor allowed to toggle
// the global reveal flag. Participants never log in; their identity key is
// device-generated and validated at the middleware boundary instead.
type UseCase struct {
	passwordHash string
	jwtSecret    []byte
	tokenTTL     time.Duration
	log          *logger.Logger
}

func NewUseCase(passwordHash, jwtSecret string, tokenTTL time.Duration, log *logger.Logger) *UseCase {
	return &UseCase{
		passwordHash: passwordHash,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
		log:          log.With("usecase", "admin"),
	}
}

func (uc *UseCase) Login(password string) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(uc.passwordHash), []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(uc.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   operatorSubject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString(uc.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign operator token: %w", err)
	}
	return signed, expiresAt, nil
}

func (uc *UseCase) VerifyToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return uc.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidCredentials
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject != operatorSubject {
		return ErrInvalidCredentials
	}
	return nil
}
