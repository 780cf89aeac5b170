package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"stylemart-backend/internal/domain"
)

type AuthService struct {
	Stores    Stores
	JWTSecret []byte
	TokenTTL  time.Duration
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *AuthService) Signup(ctx context.Context, email, password, confirmPassword string, role domain.UserRole) (*domain.User, string, error) {
	if existing, err := s.Stores.UserByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", ErrInvalidState("email already in use")
	} else if err != nil && !IsNotFound(err) {
		return nil, "", err
	}
	if confirmPassword != "" && password != confirmPassword {
		return nil, "", ErrInvalidState("password does not meet security requirements or does not match confirmation")
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, "", ErrInvalidState("password does not meet security requirements or does not match confirmation")
	}
	if role == "" {
		role = domain.RoleBuyer
	}
	if role != domain.RoleBuyer && role != domain.RoleSeller {
		return nil, "", ErrInvalidState("invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       domain.UserActive,
	}
	if err := s.Stores.CreateUser(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}
	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Signin(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.Stores.UserByEmail(ctx, email)
	if err != nil {
		if IsNotFound(err) {
			return nil, "", ErrUnauthorized("invalid credentials")
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrUnauthorized("invalid credentials")
	}
	if user.Status != domain.UserActive {
		return nil, "", ErrForbidden("user account is not active")
	}
	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	claims := Claims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
}

// UserFromToken resolves and re-validates the token's subject against the
// user store; deactivated or banned accounts fail even with a live token.
func (s *AuthService) UserFromToken(ctx context.Context, tokenString string) (*domain.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized("could not validate credentials")
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrUnauthorized("could not validate credentials")
	}
	user, err := s.Stores.UserByID(ctx, userID)
	if err != nil {
		return nil, ErrUnauthorized("could not validate credentials")
	}
	if user.Status != domain.UserActive {
		return nil, ErrForbidden("user account is not active")
	}
	return user, nil
}

// validatePasswordStrength requires at least 8 characters containing both a
// letter and a digit.
func validatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password too short")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password needs letters and digits")
	}
	return nil
}
