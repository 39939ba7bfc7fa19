package middleware

import (
	"net/http"
	"strings"

	"github.com/snap-point/activity-api/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a bearer token signed with secret and stores its
// claims on the context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization header is required"})
			c.Abort()
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || !strings.EqualFold(bearerToken[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token format"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(secret, bearerToken[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(string(utils.ClaimsContextKey), claims)

		c.Next()
	}
}

// OwnerOnly lets a request through only when the token belongs to the record
// addressed by the :id path parameter. It must run after AuthMiddleware.
func OwnerOnly(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := utils.GetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			c.Abort()
			return
		}

		id, err := utils.ParseIDParam(c, "id")
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Record not found"})
			c.Abort()
			return
		}

		if claims.Kind != kind || claims.ParentID != id {
			c.JSON(http.StatusForbidden, gin.H{"message": "You can only modify your own record"})
			c.Abort()
			return
		}

		c.Next()
	}
}
