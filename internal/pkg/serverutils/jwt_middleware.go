package serverutils

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserIdLocal is the locals key controllers read the caller id from.
const UserIdLocal = "user_id"

// JwtMiddleware authenticates the request with a Bearer token and
// stores the caller's user id in the request locals.
func JwtMiddleware(ctx *fiber.Ctx) error {
	header := ctx.Get(fiber.HeaderAuthorization)
	tokenStr, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenStr == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid claims")
	}
	userId, _ := claims["user_id"].(string)
	if userId == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "token missing user id")
	}

	ctx.Locals(UserIdLocal, userId)
	return ctx.Next()
}

// UserId returns the authenticated caller id stored by JwtMiddleware.
// A claim that is not a UUID is rejected rather than degraded to the
// zero id.
func UserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := ctx.Locals(UserIdLocal).(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}
	return id, nil
}
