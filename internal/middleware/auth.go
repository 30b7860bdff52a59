package middleware

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const ContextProviderID = "providerID"

// AuthMiddleware accepts HS256 bearer tokens issued by the account service.
// The "sub" claim carries the provider id.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a bearer token.")
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(
			parts[1],
			claims,
			func(token *jwt.Token) (any, error) {
				return []byte(secret), nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		)
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Token is invalid or expired.")
			c.Abort()
			return
		}

		providerID, ok := providerFromClaims(claims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_payload", "Token has no provider.")
			c.Abort()
			return
		}

		c.Set(ContextProviderID, providerID)
		c.Next()
	}
}

// Provider ids are serial keys; anything past 32 bits is not one of ours.
const maxProviderID = math.MaxUint32

// sub may arrive as a JSON number or a numeric string.
func providerFromClaims(claims jwt.MapClaims) (uint, bool) {
	switch v := claims["sub"].(type) {
	case float64:
		if v < 1 || v > maxProviderID || v != math.Trunc(v) {
			return 0, false
		}
		return uint(v), true
	case string:
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil || n == 0 {
			return 0, false
		}
		return uint(n), true
	}
	return 0, false
}

func ProviderID(c *gin.Context) uint {
	return c.MustGet(ContextProviderID).(uint)
}
