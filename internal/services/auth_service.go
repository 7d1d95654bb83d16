package services

import (
	"errors"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// ErrUnauthorized covers both unknown emails and wrong passwords so the
// login response never reveals which one failed.
var ErrUnauthorized = errors.New("invalid credentials")

// Authorizer decides whether a principal may use the admin surface. The
// shipped implementation is a static allow-list, but the dashboard only
// ever sees this interface.
type Authorizer interface {
	IsAuthorized(email string) bool
}

// StaticAllowList authorizes a fixed set of admin emails from config.
type StaticAllowList []string

func (l StaticAllowList) IsAuthorized(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, allowed := range l {
		if strings.ToLower(allowed) == email {
			return true
		}
	}
	return false
}

type AuthService interface {
	Login(email, password string) (string, error)
	Verify(token string) (string, error)
}

type authService struct {
	authorizer   Authorizer
	passwordHash []byte
	jwtSecret    []byte
}

func NewAuthService(authorizer Authorizer, passwordHash, jwtSecret string) AuthService {
	return &authService{
		authorizer:   authorizer,
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
	}
}

type adminClaims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

func (s *authService) Login(email, password string) (string, error) {
	if !s.authorizer.IsAuthorized(email) {
		return "", ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) != nil {
		return "", ErrUnauthorized
	}

	claims := adminClaims{
		Email: strings.ToLower(strings.TrimSpace(email)),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *authService) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &adminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", ErrUnauthorized
	}
	claims, ok := token.Claims.(*adminClaims)
	if !ok || !token.Valid || !s.authorizer.IsAuthorized(claims.Email) {
		return "", ErrUnauthorized
	}
	return claims.Email, nil
}
