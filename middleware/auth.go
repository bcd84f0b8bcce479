package middleware

import (
	"log"
	"net/http"
	"strings"

	"dinedash/models"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// SessionResolver reads the caller's identity from the request.
type SessionResolver interface {
	ResolveSession(c *gin.Context) (*models.Identity, error)
}

// SessionRequired resolves the session cookie against the user store and
// injects the identity into the context
func SessionRequired(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := sessions.ResolveSession(c)
		if err != nil {
			log.Printf("resolve session: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
			return
		}
		if id == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please log in to continue."})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// RoleRequired enforces that caller has one of the allowed roles. It must
// run after SessionRequired.
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := GetIdentity(c)
		if id == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Role not found in context"})
			return
		}
		for _, r := range roles {
			if id.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Access denied. Required role(s): " + rolesString(roles),
		})
	}
}

func rolesString(roles []models.UserRole) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// GetIdentity extracts the caller identity from context, or nil
func GetIdentity(c *gin.Context) *models.Identity {
	val, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := val.(*models.Identity)
	return id
}

// GetUserID extracts caller user ID from context
func GetUserID(c *gin.Context) uint {
	if id := GetIdentity(c); id != nil {
		return id.ID
	}
	return 0
}
