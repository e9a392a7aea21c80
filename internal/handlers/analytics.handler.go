package handlers

import (
	"strings"

	"reworn/internal/app"
	analyticsController "reworn/internal/controllers/analytics"
	"reworn/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	Handler
	analyticsController analyticsController.AnalyticsControllerInterface
}

func NewAnalyticsHandler(app app.App, router fiber.Router) *AnalyticsHandler {
	log := logger.New("handlers").File("analytics_handler")
	return &AnalyticsHandler{
		analyticsController: app.Controllers.Analytics,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AnalyticsHandler) Register() {
	analytics := h.router.Group("/analytics")
	analytics.Get("/dashboard", h.dashboard)
	analytics.Get("/categories", h.categories)
	analytics.Get("/trends", h.trends)
	analytics.Get("/calendar", h.calendar)
	analytics.Get("/unused", h.unusedItems)
}

func (h *AnalyticsHandler) dashboard(c *fiber.Ctx) error {
	summary, err := h.analyticsController.Dashboard(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build dashboard",
		})
	}

	return c.JSON(summary)
}

func (h *AnalyticsHandler) categories(c *fiber.Ctx) error {
	summary, err := h.analyticsController.Categories(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build category summary",
		})
	}

	return c.JSON(summary)
}

func (h *AnalyticsHandler) trends(c *fiber.Ctx) error {
	summary, err := h.analyticsController.Trends(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build trend summary",
		})
	}

	return c.JSON(summary)
}

func (h *AnalyticsHandler) calendar(c *fiber.Ctx) error {
	day, err := h.analyticsController.Calendar(c.Context(), c.Query("date"))
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "invalid") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": errMsg,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve calendar day",
		})
	}

	return c.JSON(day)
}

func (h *AnalyticsHandler) unusedItems(c *fiber.Ctx) error {
	summary, err := h.analyticsController.UnusedItems(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute unused items",
		})
	}

	return c.JSON(summary)
}
