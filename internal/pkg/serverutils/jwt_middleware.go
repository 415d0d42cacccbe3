package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"volunteer-marketplace-be/internal/entity"
)

const (
	localUserID = "user_id"
	localRole   = "role"
)

// JwtMiddleware verifies the bearer token and stores the caller's public id
// and role in the request locals.
func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid claims"))
		}

		userID, _ := claims["user_id"].(string)
		role, _ := claims["role"].(string)
		if userID == "" || !entity.UserRole(role).Valid() {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Token missing user_id or role"))
		}

		ctx.Locals(localUserID, userID)
		ctx.Locals(localRole, role)
		return ctx.Next()
	}
}

// Actor returns the authenticated caller. Routes behind JwtMiddleware
// always have one.
func Actor(ctx *fiber.Ctx) entity.Actor {
	userID, _ := ctx.Locals(localUserID).(string)
	role, _ := ctx.Locals(localRole).(string)
	return entity.Actor{PublicId: userID, Role: entity.UserRole(role)}
}

// SignToken issues an HS256 token carrying the claims JwtMiddleware reads.
func SignToken(secret string, actor entity.Actor, claims jwt.MapClaims) (string, error) {
	if claims == nil {
		claims = jwt.MapClaims{}
	}
	claims["user_id"] = actor.PublicId
	claims["role"] = string(actor.Role)
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
