package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"vitrine/internal/config"
	"vitrine/internal/http/handlers"
	applog "vitrine/internal/log"
	"vitrine/internal/repos"
	"vitrine/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Surface fiber errors (bad input) as-is, mask everything else
			if fe, ok := err.(*fiber.Error); ok && fe.Code < fiber.StatusInternalServerError {
				return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
			}
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong, please try again"})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for audit logs)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc)

	api := app.Group("/api/v1")

	// Public catalog
	api.Get("/products", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.CatalogHandler.Browse)
	api.Get("/products/:id", deps.CatalogHandler.Detail)
	api.Get("/categories", deps.CatalogHandler.Categories)

	// Public coupons & events
	api.Get("/coupons", deps.CouponHandler.List)
	api.Post("/coupons/:id/redeem", deps.CouponHandler.Redeem)
	api.Get("/events", deps.EventHandler.List)

	// Auth (login throttled)
	api.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, please try again later"})
		},
	}), authH.Login)
	api.Post("/logout", authH.Logout)

	// Seller-scoped management
	my := app.Group("/my", handlers.RequireUser(authSvc))
	my.Get("/products", deps.CatalogHandler.Mine)
	my.Post("/products", deps.CatalogHandler.Create)
	my.Post("/products/:id/active", deps.CatalogHandler.SetActive)
	my.Get("/coupons", deps.CouponHandler.Mine)
	my.Get("/coupons/stats", deps.CouponHandler.Stats)
	my.Post("/coupons", deps.CouponHandler.Create)
	my.Post("/coupons/:id/active", deps.CouponHandler.SetActive)
	my.Get("/events", deps.EventHandler.Mine)
	my.Get("/events/stats", deps.EventHandler.Stats)
	my.Post("/events", deps.EventHandler.Create)
	my.Post("/events/:id/active", deps.EventHandler.SetActive)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
