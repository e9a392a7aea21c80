package handlers

import (
	"reworn/internal/app"
	"reworn/internal/handlers/middleware"
	"reworn/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewAuthHandler(*app, api).Register()

	protected := api.Group("", app.Middleware.RequireDevice(app.Controllers.Auth))
	NewItemHandler(*app, protected).Register()
	NewWearHandler(*app, protected).Register()
	NewGoalHandler(*app, protected).Register()
	NewAnalyticsHandler(*app, protected).Register()
	NewAdminHandler(*app, protected).Register()

	return nil
}
