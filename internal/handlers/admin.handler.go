package handlers

import (
	"strings"

	"reworn/internal/app"
	adminController "reworn/internal/controllers/admin"
	"reworn/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Handler
	adminController adminController.AdminControllerInterface
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		adminController: app.Controllers.Admin,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin")
	admin.Post("/reset", h.resetAllData)

	settings := h.router.Group("/settings")
	settings.Get("", h.getSettings)
	settings.Patch("", h.updateSettings)
}

func (h *AdminHandler) resetAllData(c *fiber.Ctx) error {
	response, err := h.adminController.ResetAllData(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reset data",
		})
	}

	return c.JSON(response)
}

func (h *AdminHandler) getSettings(c *fiber.Ctx) error {
	settings, err := h.adminController.GetSettings(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get settings",
		})
	}

	return c.JSON(fiber.Map{
		"settings": settings,
	})
}

func (h *AdminHandler) updateSettings(c *fiber.Ctx) error {
	var req adminController.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	settings, err := h.adminController.UpdateSettings(c.Context(), &req)
	if err != nil {
		errMsg := err.Error()
		if isValidationError(errMsg) || strings.Contains(errMsg, "empty") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": errMsg,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update settings",
		})
	}

	return c.JSON(fiber.Map{
		"settings": settings,
	})
}
