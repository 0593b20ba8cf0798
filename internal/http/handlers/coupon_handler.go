package handlers

import (
	"errors"
	"time"

	"vitrine/internal/domain"
	applog "vitrine/internal/log"
	"vitrine/internal/repos"
	"vitrine/internal/services"
	"vitrine/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CouponHandler struct {
	Coupons *services.CouponService
}

// List serves the public coupon listing with derived statuses.
func (h *CouponHandler) List(c *fiber.Ctx) error {
	q, err := pipelineQuery(c)
	if err != nil {
		return err
	}
	page, err := h.Coupons.List(q, requestNow(c))
	if err != nil {
		return fail(c, "coupon.list", err)
	}
	return c.JSON(page)
}

// Mine serves the seller's own coupons; the ownership criterion is forced
// from the session, whatever the query string says.
func (h *CouponHandler) Mine(c *fiber.Ctx) error {
	u := currentUser(c)
	q, err := pipelineQuery(c)
	if err != nil {
		return err
	}
	q.Criteria.OwnerID = u.ID
	page, err := h.Coupons.List(q, requestNow(c))
	if err != nil {
		return fail(c, "coupon.mine", err)
	}
	return c.JSON(page)
}

// Stats serves the seller dashboard counters: coupons per derived status
// over everything the seller owns, independent of any list filters.
func (h *CouponHandler) Stats(c *fiber.Ctx) error {
	u := currentUser(c)
	counts, err := h.Coupons.Stats(u.ID, requestNow(c))
	if err != nil {
		return fail(c, "coupon.stats", err)
	}
	return c.JSON(counts)
}

type couponInput struct {
	Code        string  `json:"code"`
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Kind        string  `json:"kind"`
	Value       float64 `json:"value"`
	UsageLimit  int     `json:"usage_limit"`
	ValidFrom   string  `json:"valid_from"`
	ValidUntil  string  `json:"valid_until"`
}

func (h *CouponHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)
	var in couponInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	code, ok := validate.Code(in.Code)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid coupon code"})
	}
	title, ok := validate.Name(in.Title)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid title"})
	}
	if in.Value <= 0 || in.UsageLimit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "value must be positive"})
	}
	created, err := h.Coupons.Create(u.ID, domain.Coupon{
		Code:        code,
		Category:    in.Category,
		Title:       title,
		Description: in.Description,
		Kind:        in.Kind,
		Value:       in.Value,
		UsageLimit:  in.UsageLimit,
		ValidFrom:   in.ValidFrom,
		ValidUntil:  in.ValidUntil,
	})
	if err != nil {
		if errors.Is(err, services.ErrBadCouponKind) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return fail(c, "coupon.create", err)
	}
	applog.Audit(c, "coupon.create", map[string]any{"id": created.ID, "code": created.Code})
	return c.Status(fiber.StatusCreated).JSON(created)
}

// SetActive toggles the administrative flag on one coupon.
func (h *CouponHandler) SetActive(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "coupon not found"})
	}
	var in struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := h.Coupons.SetActive(id, u, in.Active); err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			applog.Security(c, "access.denied.coupon", map[string]any{"id": id})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
		}
		return fail(c, "coupon.active", err)
	}
	applog.Audit(c, "coupon.active", map[string]any{"id": id, "active": in.Active})
	return c.JSON(fiber.Map{"ok": true})
}

// Redeem consumes one use of a coupon. Uses the wall clock, never a
// client-supplied instant: redemption moves a counter.
func (h *CouponHandler) Redeem(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "coupon not found"})
	}
	status, err := h.Coupons.Redeem(id, time.Now().UTC())
	if err != nil {
		if errors.Is(err, services.ErrNotRedeemable) || errors.Is(err, repos.ErrUsageExhausted) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "coupon not redeemable", "status": status})
		}
		return fail(c, "coupon.redeem", err)
	}
	applog.Audit(c, "coupon.redeem", map[string]any{"id": id})
	return c.JSON(fiber.Map{"ok": true, "status": status})
}
