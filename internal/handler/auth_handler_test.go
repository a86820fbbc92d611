package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noti-server/internal/middleware"
	"noti-server/internal/token"
)

const testSecret = "test-secret-32-characters-long!!"

func newAuthRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Identity(token.NewStaticVerifier(testSecret)))
	r.HandleFunc("/auth/user-info", NewAuthHandler().UserInfo).Methods("GET")
	return r
}

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}

func TestUserInfoUnauthenticated(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/auth/user-info", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated": false}`, rec.Body.String())
}

func TestUserInfoInvalidTokenIsAnonymous(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/auth/user-info", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated": false}`, rec.Body.String())
}

func TestUserInfoAuthenticated(t *testing.T) {
	router := newAuthRouter()

	raw := signTestToken(t, jwt.MapClaims{
		"sub":                "user-123",
		"preferred_username": "alice",
		"email":              "alice@example.com",
		"name":               "Alice Martin",
		"realm_access":       map[string]interface{}{"roles": []string{"user", "admin"}},
		"exp":                time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/user-info", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, "user-123", body["sub"])
	assert.Equal(t, "alice", body["preferred_username"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, "Alice Martin", body["name"])
	assert.ElementsMatch(t, []interface{}{"user", "admin"}, body["roles"])
	assert.ElementsMatch(t, []interface{}{"ROLE_user", "ROLE_admin"}, body["authorities"])
}

func TestUserInfoMissingRealmAccess(t *testing.T) {
	router := newAuthRouter()

	raw := signTestToken(t, jwt.MapClaims{
		"sub": "user-456",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/user-info", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, []interface{}{}, body["roles"], "missing realm_access yields an empty role list")
	assert.Equal(t, []interface{}{}, body["authorities"])
}
