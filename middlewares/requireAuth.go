package middlewares

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func parseToken(ctx *gin.Context) (jwt.MapClaims, bool) {
	header := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

func setIdentity(ctx *gin.Context, claims jwt.MapClaims) {
	ctx.Set("user", claims)
	if id, ok := claims["user_id"].(float64); ok {
		ctx.Set("userID", uint(id))
	}
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := parseToken(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			return
		}
		setIdentity(ctx, claims)
		ctx.Next()
	}
}

// OptionalAuth identifies the caller when a token is present but lets guests
// through. Cart routes use it: the same endpoints serve both actors.
func OptionalAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if claims, ok := parseToken(ctx); ok {
			setIdentity(ctx, claims)
		}
		ctx.Next()
	}
}

// UserID returns the authenticated user's id, or 0 for guests.
func UserID(ctx *gin.Context) uint {
	if id, exists := ctx.Get("userID"); exists {
		return id.(uint)
	}
	return 0
}
