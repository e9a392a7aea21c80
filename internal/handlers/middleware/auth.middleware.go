package middleware

import (
	"strings"

	authController "reworn/internal/controllers/auth"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

// DeviceKeyFiber is the Fiber locals key holding the validated device claims.
const DeviceKeyFiber = "Device"

// RequireDevice validates the bearer device token and stores its claims in
// the request context.
func (m *Middleware) RequireDevice(auth authController.AuthControllerInterface) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := logger.New("middleware").TraceFromContext(c.Context()).Function("RequireDevice")

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			log.Info("missing authorization header")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			log.Info("invalid authorization header format")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		token := tokenParts[1]
		if token == "" {
			log.Info("empty token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token required",
			})
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			log.Info("token validation failed", "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals(DeviceKeyFiber, claims)

		log.Info("device authenticated", "deviceID", claims.DeviceID)
		return c.Next()
	}
}

// GetDevice extracts the validated device claims from Fiber context
func GetDevice(c *fiber.Ctx) *authController.DeviceClaims {
	claims, ok := c.Locals(DeviceKeyFiber).(*authController.DeviceClaims)
	if !ok {
		return nil
	}
	return claims
}
