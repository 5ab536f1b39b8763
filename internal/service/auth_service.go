// Package service implements the application's business rules on top of the
// repository layer.
package service

import (
	"context"
	"fmt"
	"strconv"

	"tastebook/internal/models"
	"tastebook/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "tastebook-api"
	tokenAudience = "tastebook-client"
)

// AuthService issues and verifies credentials: password hashes and bearer tokens.
type AuthService struct {
	userRepo repository.UserRepository
	secret   string
}

// NewAuthService returns an AuthService signing tokens with the given secret.
func NewAuthService(userRepo repository.UserRepository, secret string) *AuthService {
	return &AuthService{userRepo: userRepo, secret: secret}
}

// HashPassword derives a salted one-way hash from the plaintext.
func (s *AuthService) HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plaintext matches the stored hash.
func (s *AuthService) VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// Login verifies the email/password pair and returns a signed token.
// Unknown email and wrong password are deliberately indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", models.NewUnauthorizedError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil || !s.VerifyPassword(password, user.Password) {
		return "", models.NewUnauthorizedError("Invalid credentials")
	}

	return s.IssueToken(user.ID)
}

// IssueToken encodes the user id into a signed HMAC token.
// Tokens carry no expiry claim, so issued tokens remain valid until the
// signing secret rotates.
func (s *AuthService) IssueToken(userID uint) (string, error) {
	if s.secret == "" {
		return "", models.NewInternalError(fmt.Errorf("JWT secret not configured"))
	}

	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": tokenIssuer,
		"aud": tokenAudience,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return signed, nil
}

// Authenticate verifies the token signature and returns the encoded user id.
func (s *AuthService) Authenticate(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return 0, models.NewUnauthorizedError("Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid token claims")
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return 0, models.NewUnauthorizedError("Invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return 0, models.NewUnauthorizedError("Invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid subject claim")
	}

	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, models.NewUnauthorizedError("Invalid user ID in token")
	}

	return uint(userID), nil
}
