package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/accountsvc/domain"
)

// AuthMiddleware creates authentication middleware. Besides signature and
// expiry checks it compares the password digest embedded at issuance with
// the digest of the currently stored hash, so a password change (or a
// consumed temporary password) invalidates every earlier token without a
// revocation list.
func AuthMiddleware(tokenSvc domain.TokenService, userRepo domain.UserRepository, passwordSvc domain.PasswordService) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := tokenSvc.Validate(tokenParts[1])
		if err != nil {
			switch err {
			case domain.ErrTokenExpired:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		// Re-resolve the account: it must still be active and not blocked.
		user, err := userRepo.FindActiveByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer valid"})
			c.Abort()
			return
		}

		if passwordSvc.Digest(user.PasswordHash) != claims.PasswordDigest {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token no longer valid"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID.String())
		c.Set("user_email", user.Email)
		c.Set("user_role", user.Role)

		c.Next()
	})
}
