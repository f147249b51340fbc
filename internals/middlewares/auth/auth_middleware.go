// Bearer JWT validation for the manager API. Token issuance lives in
// the external auth provider; this service only verifies.
package auth

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"clearproof_backend/internals/configs"
	helperAuth "clearproof_backend/internals/helpers/auth"
)

func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secretKey), nil
		}); err != nil {
			log.Println("[ERROR] Token parse failed:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			log.Println("[ERROR] Exp validation:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			log.Println("[ERROR] user_id:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		c.Locals(helperAuth.LocUserID, userID)

		if name, ok := claims["name"].(string); ok {
			c.Locals(helperAuth.LocUserName, name)
		}

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	const p = "Bearer "
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, p) && len(auth) > len(p) {
		return strings.TrimSpace(auth[len(p):]), nil
	}
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v, nil
	}
	return "", errors.New("Unauthorized - missing Authorization header")
}

// validateTokenExpiry checks exp with a small leeway for clock skew.
func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return errors.New("missing exp claim")
	}
	expFloat, ok := expVal.(float64)
	if !ok {
		return errors.New("invalid exp claim")
	}
	expTime := time.Unix(int64(expFloat), 0)
	if time.Now().After(expTime.Add(leeway)) {
		return fmt.Errorf("token expired at %s", expTime)
	}
	return nil
}

// extractUserID accepts either "sub" (external issuer convention) or
// "user_id".
func extractUserID(claims jwt.MapClaims) (string, error) {
	for _, key := range []string{"sub", "user_id"} {
		if v, ok := claims[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}
	return "", errors.New("no user id claim")
}
