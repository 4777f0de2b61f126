package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"burgero/internal/middleware"
	"burgero/internal/models"
	"burgero/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAuthService struct{}

func (s *stubAuthService) Login(username, password string) (string, *models.AdminUser, error) {
	if username == "admin" && password == "admin123" {
		return "valid-token", &models.AdminUser{ID: 1, Username: "admin"}, nil
	}
	return "", nil, services.ErrInvalidCredentials
}

func (s *stubAuthService) ValidateToken(token string) (*services.TokenClaims, error) {
	if token == "valid-token" {
		return &services.TokenClaims{UserID: 1, Username: "admin", Role: "admin"}, nil
	}
	return nil, services.ErrInvalidCredentials
}

func (s *stubAuthService) CreateAdmin(username, password string) error { return nil }

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	authService := &stubAuthService{}
	handler := NewAuthHandler(authService)
	router := gin.New()
	router.POST("/api/auth/login", handler.Login)
	router.POST("/api/auth/logout", handler.Logout)
	router.GET("/api/auth/check", middleware.RequireAuth(authService), handler.CheckAuth)
	return router
}

func TestLoginSuccessReturnsToken(t *testing.T) {
	router := newAuthRouter()

	rec, body := doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"username": "admin",
		"password": "admin123",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "valid-token", body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "admin", user["username"])
}

func TestLoginBadCredentialsReturns401(t *testing.T) {
	router := newAuthRouter()

	rec, body := doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"username": "admin",
		"password": "nope",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body, "token")
}

func TestCheckAuthWithValidToken(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"admin"`)
}

func TestCheckAuthRejectsMissingHeader(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckAuthRejectsBadToken(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
