package routes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientsapi/internal/handlers"
	"clientsapi/internal/models"
	"clientsapi/internal/repositories"
	"clientsapi/internal/routes"
	"clientsapi/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func build(t *testing.T, opts routes.Options) *gin.Engine {
	t.Helper()
	repo := repositories.NewClientMemoryRepository()
	require.NoError(t, repo.Add(context.Background(), &models.Client{
		ID: 1, Name: "Ana", Email: "ana@example.com", Gender: models.GenderFemale, Phone: "111",
	}))
	h := handlers.NewClientHandler(services.NewClientService(repo))
	return routes.SetupRoutes(gin.New(), h, opts)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSetupRoutes(t *testing.T) {
	r := build(t, routes.Options{Swagger: true})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	// search must not be swallowed by the :id route
	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/clients/search?gender=Female", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Ana"`)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v1/clients")
}

func TestSetupRoutes_Lifecycle(t *testing.T) {
	r := build(t, routes.Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients",
		strings.NewReader(`{"name":"Bruno","email":"b@example.com","gender":"Male","phone":"2"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":2}`, w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodPatch, "/api/v1/clients/2?enabled=true", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodDelete, "/api/v1/clients/2", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/clients/2", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetupRoutes_Auth(t *testing.T) {
	const secret = "s3cret"
	r := build(t, routes.Options{JWTSecret: secret})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "tester",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
}
