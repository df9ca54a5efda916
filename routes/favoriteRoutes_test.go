package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Both toggle shapes are registered; unauthenticated requests hit the auth
// gate rather than a 404.
func TestFavoriteRouteShapes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	server := gin.New()
	FavoriteRoutes(server)

	for _, path := range []string{"/favorites/toggle", "/favorites/42"} {
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}
