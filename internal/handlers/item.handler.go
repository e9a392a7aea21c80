package handlers

import (
	"strings"

	"reworn/internal/app"
	itemController "reworn/internal/controllers/items"
	"reworn/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ItemHandler struct {
	Handler
	itemController itemController.ItemControllerInterface
}

func NewItemHandler(app app.App, router fiber.Router) *ItemHandler {
	log := logger.New("handlers").File("item_handler")
	return &ItemHandler{
		itemController: app.Controllers.Item,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ItemHandler) Register() {
	items := h.router.Group("/items")
	items.Post("", h.createItem)
	items.Get("", h.getItems)
	items.Get("/:id", h.getItemDetail)
	items.Patch("/:id", h.updateItem)
	items.Post("/:id/archive", h.archiveItem)
	items.Post("/:id/unarchive", h.unarchiveItem)
	items.Delete("/:id", h.deleteItem)
}

func isValidationError(errMsg string) bool {
	return strings.Contains(errMsg, "required") ||
		strings.Contains(errMsg, "invalid") ||
		strings.Contains(errMsg, "cannot be") ||
		strings.Contains(errMsg, "exceed") ||
		strings.Contains(errMsg, "no fields") ||
		strings.Contains(errMsg, "must be")
}

func (h *ItemHandler) createItem(c *fiber.Ctx) error {
	var req itemController.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	item, err := h.itemController.Create(c.Context(), &req)
	if err != nil {
		errMsg := err.Error()
		if isValidationError(errMsg) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": errMsg,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create item",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"item": item,
	})
}

func (h *ItemHandler) getItems(c *fiber.Ctx) error {
	includeArchived := c.QueryBool("includeArchived", false)

	var err error
	var items any
	if includeArchived {
		items, err = h.itemController.GetAllItems(c.Context())
	} else {
		items, err = h.itemController.GetActiveItems(c.Context())
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get items",
		})
	}

	return c.JSON(fiber.Map{
		"items": items,
	})
}

func (h *ItemHandler) getItemDetail(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	detail, err := h.itemController.GetDetail(c.Context(), itemID)
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": errMsg,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get item",
		})
	}

	return c.JSON(detail)
}

func (h *ItemHandler) updateItem(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	var req itemController.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	item, err := h.itemController.Update(c.Context(), itemID, &req)
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
			"error": "Failed to update item",
		})
	}

	return c.JSON(fiber.Map{
		"item": item,
	})
}

func (h *ItemHandler) archiveItem(c *fiber.Ctx) error {
	return h.setArchived(c, true)
}

func (h *ItemHandler) unarchiveItem(c *fiber.Ctx) error {
	return h.setArchived(c, false)
}

func (h *ItemHandler) setArchived(c *fiber.Ctx, archived bool) error {
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	item, err := h.itemController.SetArchived(c.Context(), itemID, archived)
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": errMsg,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to change archive state",
		})
	}

	return c.JSON(fiber.Map{
		"item": item,
	})
}

func (h *ItemHandler) deleteItem(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	if err := h.itemController.Delete(c.Context(), itemID); err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": errMsg,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete item",
		})
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
