package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Juanarielok/prototipoR1-backend/internal/apierror"
)

const (
	ClaimsKey = "claims"
)

// JWTClaims are the custom claims embedded in every access token.
type JWTClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Rol   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			e := apierror.NewUnauthorized("Authentication required")
			c.AbortWithStatusJSON(e.Status(), e)
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			e := apierror.NewUnauthorized("Invalid or expired token")
			c.AbortWithStatusJSON(e.Status(), e)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRol rejects requests whose JWT role is not in the allowed list.
// A missing token is a 401; a valid token with the wrong role is a 403.
func RequireRol(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		v, exists := c.Get(ClaimsKey)
		claims, ok := v.(*JWTClaims)
		if !exists || !ok {
			e := apierror.NewUnauthorized("Authentication required")
			c.AbortWithStatusJSON(e.Status(), e)
			return
		}
		if !allowed[claims.Rol] {
			e := apierror.NewForbidden("Insufficient permissions")
			c.AbortWithStatusJSON(e.Status(), e)
			return
		}
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
// Returns nil when the request never went through JWTAuth.
func GetClaims(c *gin.Context) *JWTClaims {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil
	}
	claims, _ := v.(*JWTClaims)
	return claims
}
