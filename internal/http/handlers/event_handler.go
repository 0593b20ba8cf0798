package handlers

import (
	"errors"

	"vitrine/internal/domain"
	applog "vitrine/internal/log"
	"vitrine/internal/services"
	"vitrine/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type EventHandler struct {
	Events *services.EventService
}

// List serves the public event listing with derived statuses and
// calendar flags.
func (h *EventHandler) List(c *fiber.Ctx) error {
	q, err := pipelineQuery(c)
	if err != nil {
		return err
	}
	page, err := h.Events.List(q, requestNow(c))
	if err != nil {
		return fail(c, "event.list", err)
	}
	return c.JSON(page)
}

// Mine serves the organizer's own events.
func (h *EventHandler) Mine(c *fiber.Ctx) error {
	u := currentUser(c)
	q, err := pipelineQuery(c)
	if err != nil {
		return err
	}
	q.Criteria.OwnerID = u.ID
	page, err := h.Events.List(q, requestNow(c))
	if err != nil {
		return fail(c, "event.mine", err)
	}
	return c.JSON(page)
}

func (h *EventHandler) Stats(c *fiber.Ctx) error {
	u := currentUser(c)
	counts, err := h.Events.Stats(u.ID, requestNow(c))
	if err != nil {
		return fail(c, "event.stats", err)
	}
	return c.JSON(counts)
}

type eventInput struct {
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	StartsAt    string  `json:"starts_at"`
	EndsAt      string  `json:"ends_at"`
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)
	var in eventInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	title, ok := validate.Name(in.Title)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid title"})
	}
	if in.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "price must not be negative"})
	}
	created, err := h.Events.Create(u.ID, domain.Event{
		Category:    in.Category,
		Title:       title,
		Description: in.Description,
		Location:    in.Location,
		Price:       in.Price,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
	})
	if err != nil {
		if errors.Is(err, services.ErrMissingStart) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return fail(c, "event.create", err)
	}
	applog.Audit(c, "event.create", map[string]any{"id": created.ID})
	return c.Status(fiber.StatusCreated).JSON(created)
}

// SetActive toggles the administrative flag on one event.
func (h *EventHandler) SetActive(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "event not found"})
	}
	var in struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := h.Events.SetActive(id, u, in.Active); err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			applog.Security(c, "access.denied.event", map[string]any{"id": id})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
		}
		return fail(c, "event.active", err)
	}
	applog.Audit(c, "event.active", map[string]any{"id": id, "active": in.Active})
	return c.JSON(fiber.Map{"ok": true})
}
