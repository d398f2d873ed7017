package auth

import (
	"net/http"
	"strings"

	"iot-manager/repositories"

	"github.com/gin-gonic/gin"
)

// userKey is the gin context key the middleware stores the acting user id
// under.
const userKey = "auth.user_id"

// Middleware validates the Authorization bearer token and resolves it to
// a stored user. Requests without a valid token are rejected with 401.
func Middleware(manager *JWTManager, users repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractBearer(c.Request)
		if tokenStr == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		claims, err := manager.VerifyToken(tokenStr)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}
		user, err := users.GetByID(claims.Subject)
		if err != nil {
			abortUnauthorized(c, "could not validate credentials")
			return
		}
		c.Set(userKey, user.ID)
		c.Next()
	}
}

// CurrentUserID returns the acting user id set by Middleware.
func CurrentUserID(c *gin.Context) string {
	id, _ := c.Get(userKey)
	s, _ := id.(string)
	return s
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
