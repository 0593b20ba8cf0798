package services

import (
	"errors"
	"time"

	"vitrine/internal/domain"
	"vitrine/internal/pipeline"
	"vitrine/internal/repos"

	"github.com/google/uuid"
)

var ErrMissingCategory = errors.New("product needs a category")

// CatalogService runs the browse pipeline over the product collection.
// Every call reloads the snapshot wholesale and recomputes from scratch;
// a change in filters or data means a fresh pass, never an incremental
// update.
type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
	store *pipeline.Store[domain.Product]
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods, store: pipeline.NewStore[domain.Product]()}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) refresh() error {
	all, err := s.Prods.All()
	if err != nil {
		return err
	}
	s.store.Replace(all)
	return nil
}

// Browse filters, sorts and paginates the product collection.
func (s *CatalogService) Browse(q pipeline.Query, now time.Time) (pipeline.Page[domain.Product], error) {
	if err := s.refresh(); err != nil {
		return pipeline.Page[domain.Product]{}, err
	}
	return pipeline.Run(s.store.Snapshot(), q, now)
}

// Counts returns per-category product counts plus the "all" total. Scoped
// by owner when ownerID is set, never by the view's search/category
// filters: badges show what exists, not what is currently visible.
func (s *CatalogService) Counts(ownerID string, now time.Time) (map[string]int, error) {
	if err := s.refresh(); err != nil {
		return nil, err
	}
	records := s.store.Snapshot()
	if ownerID != "" {
		records = pipeline.Filter(records, pipeline.Criteria{OwnerID: ownerID}, now)
	}
	return pipeline.CountBy(records, func(p domain.Product) string { return p.CategoryID }), nil
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

// CreateProduct stores a new product for the seller. Products are born
// active; deactivation is a separate toggle.
func (s *CatalogService) CreateProduct(ownerID string, p domain.Product) (domain.Product, error) {
	if p.CategoryID == "" {
		return domain.Product{}, ErrMissingCategory
	}
	p.ID = uuid.NewString()
	p.OwnerID = ownerID
	p.Active = true
	if err := s.Prods.Create(p); err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Get(p.ID)
}

// SetProductActive toggles the administrative flag with the same
// ownership rule as coupons and events.
func (s *CatalogService) SetProductActive(id string, requester *domain.User, active bool) error {
	p, err := s.Prods.Get(id)
	if err != nil {
		return err
	}
	if !requester.CanManage(p.OwnerID) {
		return ErrNotOwner
	}
	return s.Prods.SetActive(id, active)
}
