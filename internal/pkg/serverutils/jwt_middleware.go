package serverutils

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const UserIDLocal = "user_id"

var ErrUnauthenticated = errors.New("unauthenticated")

func unauthorized(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, message))
}

// NewJwtMiddleware verifies an HS256 bearer token and stores its user_id claim.
func NewJwtMiddleware(secret string) fiber.Handler {
	key := []byte(secret)
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return unauthorized(ctx, "Missing token")
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return unauthorized(ctx, "Invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(ctx, "Invalid claims")
		}
		userID, ok := claims["user_id"].(string)
		if !ok || strings.TrimSpace(userID) == "" {
			return unauthorized(ctx, "Invalid claims")
		}

		ctx.Locals(UserIDLocal, userID)
		return ctx.Next()
	}
}

// NewHeaderAuthMiddleware trusts a user id set by an authenticating gateway.
func NewHeaderAuthMiddleware(header string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := strings.TrimSpace(ctx.Get(header))
		if userID == "" {
			return unauthorized(ctx, "Missing user id")
		}
		ctx.Locals(UserIDLocal, userID)
		return ctx.Next()
	}
}

// NewAuthMiddleware picks the middleware for the configured auth mode.
func NewAuthMiddleware(mode, jwtSecret, header string) fiber.Handler {
	if mode == "jwt" {
		return NewJwtMiddleware(jwtSecret)
	}
	return NewHeaderAuthMiddleware(header)
}

// UserID returns the authenticated user id stored by the auth middleware.
func UserID(ctx *fiber.Ctx) (string, error) {
	userID, ok := ctx.Locals(UserIDLocal).(string)
	if !ok || userID == "" {
		return "", ErrUnauthenticated
	}
	return userID, nil
}
