package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"inventaris/internal/models"
	"inventaris/internal/repositories"
	"inventaris/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockPetugasRepository is a mock implementation of repositories.PetugasRepository
type MockPetugasRepository struct {
	mock.Mock
}

func (m *MockPetugasRepository) Create(ctx context.Context, petugas *models.Petugas) error {
	args := m.Called(ctx, petugas)
	return args.Error(0)
}

func (m *MockPetugasRepository) GetByUsername(ctx context.Context, username string) (*models.Petugas, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Petugas), args.Error(1)
}

func (m *MockPetugasRepository) GetByID(ctx context.Context, id uint) (*models.Petugas, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Petugas), args.Error(1)
}

const testJWTSecret = "test_jwt_secret"

func TestAuthService_RegisterPetugas(t *testing.T) {
	mockRepo := new(MockPetugasRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, nil)
	ctx := context.Background()

	petugas := &models.Petugas{Username: "admin", Password: "rahasia123", NamaPetugas: "Administrator"}

	mockRepo.On("GetByUsername", ctx, "admin").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Petugas")).Return(nil).Once()

	err := authService.RegisterPetugas(ctx, petugas)
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(petugas.Password), []byte("rahasia123")), "password is stored hashed")
	mockRepo.AssertExpectations(t)

	// Username already taken
	mockRepo.On("GetByUsername", ctx, "admin").Return(&models.Petugas{ID: 1}, nil).Once()
	err = authService.RegisterPetugas(ctx, &models.Petugas{Username: "admin", Password: "rahasia123", NamaPetugas: "Other"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "username 'admin' already taken")
	mockRepo.AssertExpectations(t)

	// Password too short is rejected before any lookup
	err = authService.RegisterPetugas(ctx, &models.Petugas{Username: "budi", Password: "123", NamaPetugas: "Budi"})
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "GetByUsername", ctx, "budi")
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockPetugasRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, nil)
	ctx := context.Background()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)
	petugas := &models.Petugas{ID: 3, Username: "admin", Password: string(hashedPassword), NamaPetugas: "Administrator"}

	mockRepo.On("GetByUsername", ctx, "admin").Return(petugas, nil).Once()
	token, err := authService.Login(ctx, "admin", "rahasia123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, 3, claims["petugas_id"])
	assert.Equal(t, "admin", claims["username"])
	assert.Equal(t, "Administrator", claims["nama_petugas"])

	// Wrong password
	mockRepo.On("GetByUsername", ctx, "admin").Return(petugas, nil).Once()
	_, err = authService.Login(ctx, "admin", "salah")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown username gets the same error
	mockRepo.On("GetByUsername", ctx, "nobody").Return(nil, repositories.ErrNotFound).Once()
	_, err = authService.Login(ctx, "nobody", "rahasia123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(new(MockPetugasRepository), testJWTSecret, nil)

	sign := func(claims jwt.MapClaims, secret string) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}

	identity, err := authService.ValidateToken(sign(jwt.MapClaims{
		"petugas_id":   5,
		"username":     "admin",
		"nama_petugas": "Administrator",
		"exp":          jwt.TimeFunc().Add(time.Hour).Unix(),
	}, testJWTSecret))
	require.NoError(t, err)
	assert.Equal(t, &services.Identity{PetugasID: 5, Username: "admin", NamaPetugas: "Administrator"}, identity)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "invalid.token.string"},
		{"wrong secret", sign(jwt.MapClaims{"petugas_id": 5, "exp": jwt.TimeFunc().Add(time.Hour).Unix()}, "other")},
		{"expired", sign(jwt.MapClaims{"petugas_id": 5, "exp": jwt.TimeFunc().Add(-time.Hour).Unix()}, testJWTSecret)},
		{"no petugas", sign(jwt.MapClaims{"username": "admin", "exp": jwt.TimeFunc().Add(time.Hour).Unix()}, testJWTSecret)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := authService.ValidateToken(tc.token)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid token")
		})
	}
}
