package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rideshare/internal/auth"
	"rideshare/internal/domain"
	"rideshare/internal/service"
)

const actorContextKey = "actor"

// RequireAuth returns middleware that verifies the bearer token and stores
// the resulting actor in the request context. Every handler behind it can
// rely on ActorFromContext returning a verified identity.
func RequireAuth(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(actorContextKey, service.Actor{
			ID:   claims.UserID,
			Role: domain.Role(claims.Role),
		})

		c.Next()
	}
}

// ActorFromContext returns the actor stored by RequireAuth.
func ActorFromContext(c *gin.Context) (service.Actor, bool) {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return service.Actor{}, false
	}
	actor, ok := v.(service.Actor)
	return actor, ok
}
