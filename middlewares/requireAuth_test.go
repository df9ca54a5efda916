package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authTestServer() *gin.Engine {
	gin.SetMode(gin.TestMode)
	server := gin.New()
	server.GET("/private", RequireAuth(), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, strconv.FormatUint(uint64(UserID(ctx)), 10))
	})
	server.GET("/open", OptionalAuth(), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, strconv.FormatUint(uint64(UserID(ctx)), 10))
	})
	return server
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	server := authTestServer()

	token := signToken(t, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", rec.Body.String())
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	server := authTestServer()

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/private", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	server := authTestServer()

	token := signToken(t, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}, "other-secret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	server := authTestServer()

	token := signToken(t, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}, testSecret)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthLetsGuestsThrough(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	server := authTestServer()

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/open", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Body.String())
}

func TestCartSessionIssuesCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	server := gin.New()
	server.GET("/cart", CartSession(), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, CartSessionID(ctx))
	})

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	issued := rec.Body.String()
	assert.Len(t, issued, 32)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "cart_session" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, issued, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	// an existing cookie is reused, not rotated
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(cookie)
	server.ServeHTTP(rec, req)
	assert.Equal(t, issued, rec.Body.String())
}
