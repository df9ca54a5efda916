package middlewares

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ekomponents/elektrokomp-api/utils"
)

const cartSessionCookie = "cart_session"

// thirty days, matching the guest cart TTL in the store
const cartSessionMaxAge = 30 * 24 * 60 * 60

// CartSession guarantees an opaque session id for guest cart routes. The id
// only keys the external cart store; it carries no identity.
func CartSession() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sessionID, err := ctx.Cookie(cartSessionCookie)
		if err != nil || sessionID == "" {
			sessionID, err = utils.GenerateCode(16)
			if err != nil {
				log.Println("cart session id generation failed:", err)
				ctx.Next()
				return
			}
			ctx.SetCookie(cartSessionCookie, sessionID, cartSessionMaxAge, "/", "", false, true)
		}
		ctx.Set("cartSessionID", sessionID)
		ctx.Next()
	}
}

// CartSessionID returns the request's guest cart session id, if any.
func CartSessionID(ctx *gin.Context) string {
	if id, exists := ctx.Get("cartSessionID"); exists {
		return id.(string)
	}
	return ""
}
