package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	staffRepo "dentra/database/repository/staff"
	"dentra/models"
	"dentra/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// PrincipalKey is the gin context key under which the authenticated
// principal is stored.
const PrincipalKey = "principal"

// StaffAuthMiddleware authenticates staff requests via Bearer JWT. The
// auth cache holds token-hash keys so the hot path skips both JWT parsing
// against the DB and the staff lookup; on a miss the token is validated
// and the staff account loaded from Mongo, then the cache is primed.
func StaffAuthMiddleware(staff staffRepo.StaffRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "insufficient authorization"})
			return
		}

		cacheKey := utils.AuthCachePrefix + utils.HashToken(tokenString)
		authCache := utils.GetAuthCacheClient()
		cacheEnabled := authCache != nil
		if !cacheEnabled {
			log.Printf("WARNING: auth cache client not available, falling back to token validation")
		}

		if cacheEnabled {
			cached, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				staffID, role, ok := splitPrincipal(cached)
				if ok {
					_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
					c.Set(PrincipalKey, models.Principal{StaffID: staffID, Role: role})
					c.Next()
					return
				}
			} else if err != redis.Nil {
				log.Printf("WARNING: error reading auth cache: %v, falling back to token validation", err)
			}
		}

		// Cache miss: validate the JWT and confirm the account still exists.
		staffID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || staffID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "insufficient authorization"})
			return
		}
		account, err := staff.GetByID(staffID)
		if err != nil || account == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication error"})
			return
		}
		// The stored role wins over the token claim so demotions take
		// effect without waiting for token expiry.
		role = account.Role

		if cacheEnabled {
			_ = authCache.Set(ctx, cacheKey, staffID+":"+role, utils.AuthCacheTTL).Err()
		}

		c.Set(PrincipalKey, models.Principal{StaffID: staffID, Role: role})
		c.Next()
	}
}

func splitPrincipal(cached string) (staffID, role string, ok bool) {
	i := strings.LastIndex(cached, ":")
	if i <= 0 || i == len(cached)-1 {
		return "", "", false
	}
	return cached[:i], cached[i+1:], true
}

// GetPrincipal returns the authenticated principal set by
// StaffAuthMiddleware.
func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	v, exists := c.Get(PrincipalKey)
	if !exists {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}
