package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventaris/internal/models"
	"inventaris/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Login for an unknown username or a
// wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Identity is the signed-in petugas carried by a token.
type Identity struct {
	PetugasID   uint
	Username    string
	NamaPetugas string
}

// AuthService handles petugas accounts and session tokens.
type AuthService struct {
	petugasRepo repositories.PetugasRepository
	jwtSecret   []byte
	tokenDurat  time.Duration // Duration for which JWT is valid
	validate    *validator.Validate
	log         *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(petugasRepo repositories.PetugasRepository, jwtSecret string, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		petugasRepo: petugasRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenDurat:  12 * time.Hour,
		validate:    validator.New(),
		log:         log,
	}
}

// TokenDuration is how long an issued token stays valid.
func (s *AuthService) TokenDuration() time.Duration { return s.tokenDurat }

// RegisterPetugas hashes the password and saves a new staff account.
func (s *AuthService) RegisterPetugas(ctx context.Context, petugas *models.Petugas) error {
	if err := s.validate.Struct(petugas); err != nil {
		return fmt.Errorf("invalid petugas: %w", err)
	}
	if existing, err := s.petugasRepo.GetByUsername(ctx, petugas.Username); err == nil && existing != nil {
		return fmt.Errorf("username '%s' already taken", petugas.Username)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(petugas.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	petugas.Password = string(hashedPassword)

	if err := s.petugasRepo.Create(ctx, petugas); err != nil {
		return fmt.Errorf("failed to register petugas: %w", err)
	}
	s.log.Info("petugas registered", zap.Uint("id", petugas.ID), zap.String("username", petugas.Username))
	return nil
}

// Login checks the credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	petugas, err := s.petugasRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(petugas.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"petugas_id":   petugas.ID,
		"username":     petugas.Username,
		"nama_petugas": petugas.NamaPetugas,
		"exp":          now.Add(s.tokenDurat).Unix(),
		"iat":          now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a token and returns who it belongs to.
func (s *AuthService) ValidateToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		s.log.Debug("token validation error", zap.Error(err))
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	id, ok := claims["petugas_id"].(float64)
	if !ok || id < 1 {
		return nil, fmt.Errorf("invalid token: missing petugas_id")
	}
	username, _ := claims["username"].(string)
	nama, _ := claims["nama_petugas"].(string)
	return &Identity{PetugasID: uint(id), Username: username, NamaPetugas: nama}, nil
}
