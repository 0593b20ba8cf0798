package handlers

import (
	"errors"

	"vitrine/internal/domain"
	"vitrine/internal/services"
	"vitrine/internal/validate"

	"github.com/gofiber/fiber/v2"

	applog "vitrine/internal/log"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// Browse serves the filtered/sorted/paginated product listing.
func (h *CatalogHandler) Browse(c *fiber.Ctx) error {
	q, err := pipelineQuery(c)
	if err != nil {
		return err
	}
	page, err := h.Catalog.Browse(q, requestNow(c))
	if err != nil {
		return fail(c, "catalog.browse", err)
	}
	return c.JSON(page)
}

// Categories lists categories together with per-category product counts.
// The counts cover the whole collection, not the current filtered view.
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return fail(c, "catalog.categories", err)
	}
	counts, err := h.Catalog.Counts("", requestNow(c))
	if err != nil {
		return fail(c, "catalog.counts", err)
	}
	return c.JSON(fiber.Map{"categories": cats, "counts": counts})
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "this item is no longer available"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil || p.ID == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "this item is no longer available"})
	}
	return c.JSON(p)
}

// Mine serves the seller's own products.
func (h *CatalogHandler) Mine(c *fiber.Ctx) error {
	u := currentUser(c)
	q, err := pipelineQuery(c)
	if err != nil {
		return err
	}
	q.Criteria.OwnerID = u.ID
	page, err := h.Catalog.Browse(q, requestNow(c))
	if err != nil {
		return fail(c, "catalog.mine", err)
	}
	return c.JSON(page)
}

type productInput struct {
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)
	var in productInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid name"})
	}
	if in.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "price must not be negative"})
	}
	created, err := h.Catalog.CreateProduct(u.ID, domain.Product{
		CategoryID:  in.CategoryID,
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
	})
	if err != nil {
		if errors.Is(err, services.ErrMissingCategory) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return fail(c, "catalog.create", err)
	}
	applog.Audit(c, "product.create", map[string]any{"id": created.ID})
	return c.Status(fiber.StatusCreated).JSON(created)
}

// SetActive toggles the administrative flag on one product.
func (h *CatalogHandler) SetActive(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	var in struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := h.Catalog.SetProductActive(id, u, in.Active); err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			applog.Security(c, "access.denied.product", map[string]any{"id": id})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
		}
		return fail(c, "product.active", err)
	}
	applog.Audit(c, "product.active", map[string]any{"id": id, "active": in.Active})
	return c.JSON(fiber.Map{"ok": true})
}
