package handlers

import (
	"strings"

	"reworn/internal/app"
	authController "reworn/internal/controllers/auth"
	"reworn/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authController authController.AuthControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		authController: app.Controllers.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")
	auth.Post("/device", h.registerDevice)
}

func (h *AuthHandler) registerDevice(c *fiber.Ctx) error {
	var req authController.RegisterDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	token, err := h.authController.RegisterDevice(c.Context(), &req)
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "required") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": errMsg,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to register device",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(token)
}
