package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/westcutz/booking-web/internal/gate"
)

// AdminCookie carries the signed admin session token.
const AdminCookie = "westcutz_admin"

// AdminGate rejects requests without a valid admin session.
func AdminGate(g *gate.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AdminCookie)
		if err != nil || !g.Verify(c.Request.Context(), token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			return
		}

		c.Next()
	}
}
