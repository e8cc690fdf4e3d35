package handlers

import (
	"net/http"
	"strings"

	"verbatim/internal/models"

	"github.com/gin-gonic/gin"
)

const ctxUserKey = "currentUser"

// authGuard validates the bearer token and resolves it to a live user
// record. All failures answer 401 with a non-revealing message.
func (h *Handler) authGuard(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	user, err := h.services.CurrentUser(c.Request.Context(), parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(ctxUserKey, user)
	c.Next()
}

// currentUser returns the user resolved by authGuard. Only valid on routes
// behind the guard.
func (h *Handler) currentUser(c *gin.Context) *models.User {
	u, _ := c.Get(ctxUserKey)
	user, _ := u.(*models.User)
	return user
}

// corsMiddleware answers cross-origin requests. Origins on the configured
// list are echoed back with credentials allowed; any other origin gets the
// wildcard response, matching the default-open fallback of the deployment.
func (h *Handler) corsMiddleware(c *gin.Context) {
	origin := strings.TrimSpace(c.GetHeader("Origin"))
	if origin == "" {
		c.Next()
		return
	}

	c.Header("Vary", "Origin")
	if h.originAllowed(origin) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Credentials", "true")
	} else {
		c.Header("Access-Control-Allow-Origin", "*")
	}

	if c.Request.Method == http.MethodOptions {
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
			c.Header("Access-Control-Allow-Headers", requested)
		} else {
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	c.Next()
}

func (h *Handler) originAllowed(origin string) bool {
	for _, allowed := range h.corsOrigins {
		if strings.EqualFold(strings.TrimSpace(allowed), origin) {
			return true
		}
	}
	return false
}
