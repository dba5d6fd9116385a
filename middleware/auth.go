package middleware

import (
	"net/http"
	"strings"

	userRepo "evcare/database/repository/user"
	"evcare/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the bearer token, checks that its hash is still
// held by one of the account's devices, and stores the caller's userID and
// role on the request context. Logout clears the stored hash, so revoked
// tokens fail here even before they expire.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		user, err := users.GetByID(userID)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		active := false
		for _, d := range user.Devices {
			if d.TokenHash == computedHash {
				active = true
				break
			}
		}
		if !active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked or unknown device"})
			return
		}

		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}
