package handlers

import (
	"strings"

	"reworn/internal/app"
	goalController "reworn/internal/controllers/goals"
	"reworn/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type GoalHandler struct {
	Handler
	goalController goalController.GoalControllerInterface
}

func NewGoalHandler(app app.App, router fiber.Router) *GoalHandler {
	log := logger.New("handlers").File("goal_handler")
	return &GoalHandler{
		goalController: app.Controllers.Goal,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *GoalHandler) Register() {
	goals := h.router.Group("/goals")
	goals.Post("", h.createGoal)
	goals.Get("", h.getGoals)
	goals.Delete("/:id", h.deleteGoal)

	h.router.Get("/achievements", h.getAchievements)
}

func (h *GoalHandler) createGoal(c *fiber.Ctx) error {
	var req goalController.CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	goal, err := h.goalController.Create(c.Context(), &req)
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": errMsg,
			})
		}
		if isValidationError(errMsg) || strings.Contains(errMsg, "unknown") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": errMsg,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create goal",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"goal": goal,
	})
}

func (h *GoalHandler) getGoals(c *fiber.Ctx) error {
	goals, err := h.goalController.GetAllWithProgress(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get goals",
		})
	}

	return c.JSON(fiber.Map{
		"goals": goals,
	})
}

func (h *GoalHandler) deleteGoal(c *fiber.Ctx) error {
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	if err := h.goalController.Delete(c.Context(), goalID); err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": errMsg,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete goal",
		})
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *GoalHandler) getAchievements(c *fiber.Ctx) error {
	achievements, err := h.goalController.GetAchievements(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get achievements",
		})
	}

	return c.JSON(fiber.Map{
		"achievements": achievements,
	})
}
