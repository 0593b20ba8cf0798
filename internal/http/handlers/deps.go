package handlers

import (
	"vitrine/internal/config"
	"vitrine/internal/repos"
	"vitrine/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CatalogHandler *CatalogHandler
	CouponHandler  *CouponHandler
	EventHandler   *EventHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	couponRepo := repos.NewCouponRepo(db)
	eventRepo := repos.NewEventRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	couponSvc := services.NewCouponService(couponRepo, cfg.AvgBasket)
	eventSvc := services.NewEventService(eventRepo)

	return &Deps{
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
		CouponHandler:  &CouponHandler{Coupons: couponSvc},
		EventHandler:   &EventHandler{Events: eventSvc},
	}
}
