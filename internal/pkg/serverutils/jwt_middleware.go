package serverutils

import (
	"os"

	"hr-assistant-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const identityLocal = "identity"

// JwtMiddleware decodes an already-issued token into an entity.Identity.
// Token issuance lives outside this service; the claims are trusted once
// the signature verifies.
func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Missing token"))
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid claims"))
	}

	userIdStr, _ := claims["user_id"].(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid user id claim"))
	}

	roleStr, _ := claims["role"].(string)
	if !entity.IsValidRole(roleStr) {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Unknown role claim"))
	}

	name, _ := claims["name"].(string)

	ctx.Locals(identityLocal, &entity.Identity{
		UserId: userId,
		Role:   entity.Role(roleStr),
		Name:   name,
	})
	return ctx.Next()
}

// IdentityFromCtx returns the identity placed by JwtMiddleware.
func IdentityFromCtx(ctx *fiber.Ctx) *entity.Identity {
	identity, _ := ctx.Locals(identityLocal).(*entity.Identity)
	return identity
}

// RequireRole gates a route group to one role.
func RequireRole(role entity.Role) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		identity := IdentityFromCtx(ctx)
		if identity == nil || identity.Role != role {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(403, "Insufficient role"))
		}
		return ctx.Next()
	}
}
