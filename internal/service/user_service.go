package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"crimson-pos/internal/domain"
	"crimson-pos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10

	// TokenIssuer is the iss claim of every token this service signs
	TokenIssuer = "crimson-pos"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// TokenConfig controls how session tokens are signed and how long they live
type TokenConfig struct {
	Secret      string
	AccessTTL   time.Duration
	RememberTTL time.Duration
}

// AuthResult is returned by a successful signup or login
type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// UserService defines the interface for account business logic
type UserService interface {
	Signup(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string, rememberMe bool) (*AuthResult, error)
}

type userService struct {
	userRepo repository.UserRepository
	tokens   TokenConfig
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository, tokens TokenConfig) UserService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Signup creates an account with a hashed password and signs the first token
func (s *userService) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, repository.ErrUserAlreadyExists
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hashedPassword,
	}

	// the unique index still catches a concurrent signup for the same email
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.generateToken(user, s.tokens.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies the password and signs a token; rememberMe extends its lifetime
func (s *userService) Login(ctx context.Context, email, password string, rememberMe bool) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	ttl := s.tokens.AccessTTL
	if rememberMe {
		ttl = s.tokens.RememberTTL
	}

	token, err := s.generateToken(user, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

func hashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// generateToken signs an HS256 token whose subject is the user id
func (s *userService) generateToken(user *domain.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    TokenIssuer,
		Subject:   strconv.FormatInt(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.tokens.Secret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
