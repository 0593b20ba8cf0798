package handlers

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	applog "vitrine/internal/log"
	"vitrine/internal/pipeline"
	"vitrine/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const defaultPageSize = 12

// pipelineQuery assembles a pipeline.Query from the request's query
// string. Only the search text gets handler-side validation (character
// allowlist); everything else is
// passed through so the pipeline itself rejects bad configuration.
func pipelineQuery(c *fiber.Ctx) (pipeline.Query, error) {
	rawQ := c.Query("q")
	search := ""
	if strings.TrimSpace(rawQ) != "" {
		q, ok := validate.Q(rawQ)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
			return pipeline.Query{}, fiber.NewError(fiber.StatusBadRequest, "enter a valid keyword (letters/numbers only)")
		}
		search = q
	}
	return pipeline.Query{
		Criteria: pipeline.Criteria{
			Category: strings.TrimSpace(c.Query("category")),
			Search:   search,
			MinValue: validate.FloatParam(c.Query("min_value")),
			Status:   strings.TrimSpace(c.Query("status")),
		},
		Sort:     pipeline.SortKey(strings.TrimSpace(c.Query("sort"))),
		PageSize: validate.IntParam(c.Query("page_size"), defaultPageSize),
		Page:     validate.IntParam(c.Query("page"), 1),
	}, nil
}

// requestNow resolves the reference instant for status derivation. Tests
// pin it via the X-Now header; real traffic uses the wall clock.
func requestNow(c *fiber.Ctx) time.Time {
	if raw := c.Get("X-Now"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}

// fail maps service errors to JSON responses: a missing row is a 404,
// configuration errors are the caller's fault (400), everything else is
// logged and masked (500).
func fail(c *fiber.Ctx, action string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	if pipeline.IsConfigError(err) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	applog.Error(c, action, err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}
