// Package middleware contains any custom middleware used in the app
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// NewAuthMiddleware resolves the caller's identity from the session token
// issued by the external auth provider. The token travels either as a
// bearer header or as the auth_token cookie. Anything that doesn't
// resolve to a stable identity aborts with 401 before the request touches
// storage or the media service.
//
// Identity is re-resolved on every request. Nothing is cached and no
// account row is required to exist yet, accounts are provisioned lazily
// by the first mutating action.
func NewAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		tokenStr := bearerToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Unauthorized",
				"requestID": requestID,
			})
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
			}

			return []byte(viper.GetString("auth.jwt_secret")), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Unauthorized",
				"requestID": requestID,
			})

			zap.L().Debug("Rejected session token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Unauthorized",
				"requestID": requestID,
			})
			return
		}

		userID, err := claims.GetSubject()
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Unauthorized",
				"requestID": requestID,
			})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}

	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}

	return ""
}
