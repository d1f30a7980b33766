package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fittrack/internal/apperror"
	"fittrack/internal/domain"
	"fittrack/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
)

// Identity is the caller identity a verified bearer token resolves to.
type Identity struct {
	UserID primitive.ObjectID
}

// TokenVerifier maps a bearer token to a caller identity. The auth service
// implements it for real JWTs; StaticVerifier serves local development and
// tests. Which one handles requests is a wiring decision, made once.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

// AuthService handles registration, login and token verification.
type AuthService interface {
	TokenVerifier
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
}

type authService struct {
	users         repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour
	}
	return &authService{
		users:         users,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperror.New(apperror.KindValidation, "name, email and password are required")
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Wrap(apperror.KindPersistence, "Failed to check existing user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	userID, err := s.users.Create(ctx, user)
	if err != nil {
		// Unique index closes the race between the existence check and
		// the insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, apperror.Wrap(apperror.KindPersistence, "Failed to create user", err)
	}
	user.ID = userID

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, apperror.New(apperror.KindValidation, "email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, apperror.Wrap(apperror.KindPersistence, "Failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	user.PasswordHash = ""
	return token, user, nil
}

// Verify implements TokenVerifier for HS256 JWTs minted by Login.
func (s *authService) Verify(tokenString string) (Identity, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, apperror.Wrap(apperror.KindAuth, "Unauthorized", err)
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil || userID == primitive.NilObjectID {
		return Identity{}, apperror.New(apperror.KindAuth, "Unauthorized")
	}
	return Identity{UserID: userID}, nil
}

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func (s *authService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "fittrack",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// StaticVerifier maps fixed bearer tokens to user ids. It is the local
// development and test double for the JWT verifier.
type StaticVerifier map[string]primitive.ObjectID

// NewStaticVerifier builds a StaticVerifier from token -> hex user id
// pairs, skipping entries whose id does not parse.
func NewStaticVerifier(tokens map[string]string) StaticVerifier {
	v := StaticVerifier{}
	for token, hexID := range tokens {
		id, err := primitive.ObjectIDFromHex(hexID)
		if err != nil {
			continue
		}
		v[token] = id
	}
	return v
}

func (v StaticVerifier) Verify(token string) (Identity, error) {
	id, ok := v[token]
	if !ok {
		return Identity{}, apperror.New(apperror.KindAuth, "Unauthorized")
	}
	return Identity{UserID: id}, nil
}
