package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yomiyu15/Workingspacebackend/internal/domain"
	"github.com/yomiyu15/Workingspacebackend/internal/pkg/jwt"
	"github.com/yomiyu15/Workingspacebackend/internal/repository"
)

type mockAdminRepo struct {
	mock.Mock
}

func (m *mockAdminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin_Success(t *testing.T) {
	repo := new(mockAdminRepo)
	tokens := jwt.New("secret", time.Hour)
	repo.On("GetByUsername", mock.Anything, "root").
		Return(&domain.Admin{ID: 3, Username: "root", PasswordHash: hashed(t, "pa55"), Role: domain.RoleAdmin}, nil)

	res, err := NewService(repo, tokens).Login(context.Background(), " root ", "pa55")

	require.NoError(t, err)
	assert.Equal(t, int64(3), res.ID)
	assert.Equal(t, "admin", res.Role)

	claims, err := tokens.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.AdminID)
	repo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mockAdminRepo)
	repo.On("GetByUsername", mock.Anything, "root").
		Return(&domain.Admin{ID: 3, Username: "root", PasswordHash: hashed(t, "pa55"), Role: domain.RoleAdmin}, nil)

	_, err := NewService(repo, jwt.New("secret", time.Hour)).Login(context.Background(), "root", "nope")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	repo := new(mockAdminRepo)
	repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	_, err := NewService(repo, jwt.New("secret", time.Hour)).Login(context.Background(), "ghost", "x")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_StorageFailure(t *testing.T) {
	repo := new(mockAdminRepo)
	repo.On("GetByUsername", mock.Anything, "root").Return(nil, errors.New("db down"))

	_, err := NewService(repo, jwt.New("secret", time.Hour)).Login(context.Background(), "root", "x")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginHandler_StatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := new(mockAdminRepo)
	repo.On("GetByUsername", mock.Anything, "root").
		Return(&domain.Admin{ID: 1, Username: "root", PasswordHash: hashed(t, "pa55"), Role: domain.RoleAdmin}, nil)

	router := gin.New()
	NewHandler(NewService(repo, jwt.New("secret", time.Hour))).RegisterRoutes(router.Group("/api"))

	cases := []struct {
		name string
		body any
		want int
	}{
		{"ok", gin.H{"username": "root", "password": "pa55"}, http.StatusOK},
		{"bad password", gin.H{"username": "root", "password": "x"}, http.StatusUnauthorized},
		{"missing fields", gin.H{"username": "root"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, _ := json.Marshal(tc.body)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(raw))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
		})
	}
}
