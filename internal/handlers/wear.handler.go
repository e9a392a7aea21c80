package handlers

import (
	"strings"
	"time"

	"reworn/internal/app"
	wearController "reworn/internal/controllers/wears"
	"reworn/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type WearHandler struct {
	Handler
	wearController wearController.WearControllerInterface
}

func NewWearHandler(app app.App, router fiber.Router) *WearHandler {
	log := logger.New("handlers").File("wear_handler")
	return &WearHandler{
		wearController: app.Controllers.Wear,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *WearHandler) Register() {
	wears := h.router.Group("/wears")
	wears.Post("", h.logWear)
	wears.Get("", h.getLogsForDate)
	wears.Get("/item/:id", h.getLogsForItem)
	wears.Get("/item/:id/today", h.hasLoggedToday)
}

func (h *WearHandler) logWear(c *fiber.Ctx) error {
	var req wearController.LogWearRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	wearLog, err := h.wearController.LogWear(c.Context(), &req)
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": errMsg,
			})
		}
		if isValidationError(errMsg) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": errMsg,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log wear",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"wearLog": wearLog,
	})
}

func (h *WearHandler) getLogsForDate(c *fiber.Ctx) error {
	date := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date format, expected YYYY-MM-DD",
			})
		}
		date = parsed
	}

	logs, err := h.wearController.GetLogsForDate(c.Context(), date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get wear logs",
		})
	}

	return c.JSON(fiber.Map{
		"wearLogs": logs,
	})
}

func (h *WearHandler) getLogsForItem(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	logs, err := h.wearController.GetLogsForItem(c.Context(), itemID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get wear logs",
		})
	}

	return c.JSON(fiber.Map{
		"wearLogs": logs,
	})
}

func (h *WearHandler) hasLoggedToday(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	logged, err := h.wearController.HasLoggedToday(c.Context(), itemID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check wear state",
		})
	}

	return c.JSON(fiber.Map{
		"loggedToday": logged,
	})
}
