package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/classboard/backend/internal/model"
	"github.com/classboard/backend/internal/service"
)

const principalKey = "principal"

// requireAuth validates the Bearer token and stashes the asserted Principal
// in the request context. Handlers behind it can call currentPrincipal
// without checking for absence.
func requireAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			respondMessage(c, http.StatusUnauthorized, "Authorization token not provided")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			respondMessage(c, http.StatusUnauthorized, "Invalid Authorization header format")
			c.Abort()
			return
		}

		principal, err := auth.ParsePrincipal(parts[1])
		if err != nil {
			respondMessage(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

func currentPrincipal(c *gin.Context) model.Principal {
	return c.MustGet(principalKey).(model.Principal)
}
