package services

import (
	"errors"
	"strings"
	"time"

	"vitrine/internal/domain"
	"vitrine/internal/pipeline"
	"vitrine/internal/repos"

	"github.com/google/uuid"
)

var (
	ErrNotOwner      = errors.New("record belongs to another seller")
	ErrBadCouponKind = errors.New("kind must be PERCENT or FLAT")
	ErrNotRedeemable = errors.New("coupon not redeemable")
)

// CouponView is the transient per-pass annotation of a coupon: the
// derived status and the saving estimate are computed from "now" and the
// configured basket value, returned to the caller and never written back.
type CouponView struct {
	domain.Coupon
	Status          string  `json:"status"`
	EstimatedSaving float64 `json:"estimated_saving"`
}

type CouponService struct {
	Coupons *repos.CouponRepo
	// Basket is the average basket value used to express percentage
	// discounts as currency. Comes from configuration, not a constant.
	Basket float64
	store  *pipeline.Store[domain.Coupon]
}

func NewCouponService(coupons *repos.CouponRepo, basket float64) *CouponService {
	return &CouponService{Coupons: coupons, Basket: basket, store: pipeline.NewStore[domain.Coupon]()}
}

func (s *CouponService) refresh() error {
	all, err := s.Coupons.All()
	if err != nil {
		return err
	}
	s.store.Replace(all)
	return nil
}

// List runs the coupon pipeline and annotates the resulting page.
func (s *CouponService) List(q pipeline.Query, now time.Time) (pipeline.Page[CouponView], error) {
	if err := s.refresh(); err != nil {
		return pipeline.Page[CouponView]{}, err
	}
	page, err := pipeline.Run(s.store.Snapshot(), q, now)
	if err != nil {
		return pipeline.Page[CouponView]{}, err
	}
	views := make([]CouponView, len(page.Items))
	for i, c := range page.Items {
		views[i] = CouponView{
			Coupon:          c,
			Status:          c.StatusAt(now),
			EstimatedSaving: c.EstimatedSaving(s.Basket),
		}
	}
	return pipeline.Page[CouponView]{Items: views, Page: page.Page, TotalPages: page.TotalPages}, nil
}

// Stats counts coupons per derived status over the full collection,
// scoped only by owner. The dashboard shows these regardless of whatever
// filter the list view currently holds.
func (s *CouponService) Stats(ownerID string, now time.Time) (map[string]int, error) {
	if err := s.refresh(); err != nil {
		return nil, err
	}
	records := s.store.Snapshot()
	if ownerID != "" {
		records = pipeline.Filter(records, pipeline.Criteria{OwnerID: ownerID}, now)
	}
	return pipeline.CountBy(records, func(c domain.Coupon) string { return c.StatusAt(now) }), nil
}

// Create stores a new coupon for the seller. Usage starts at zero and the
// coupon is born active; validity bounds are optional.
func (s *CouponService) Create(ownerID string, c domain.Coupon) (domain.Coupon, error) {
	c.Kind = strings.ToUpper(strings.TrimSpace(c.Kind))
	if c.Kind != "PERCENT" && c.Kind != "FLAT" {
		return domain.Coupon{}, ErrBadCouponKind
	}
	c.ID = uuid.NewString()
	c.OwnerID = ownerID
	c.UsageCount = 0
	c.Active = true
	if err := s.Coupons.Create(c); err != nil {
		return domain.Coupon{}, err
	}
	return s.Coupons.Get(c.ID)
}

// SetActive toggles the administrative flag. Sellers may only touch their
// own coupons; admins may touch any.
func (s *CouponService) SetActive(id string, requester *domain.User, active bool) error {
	c, err := s.Coupons.Get(id)
	if err != nil {
		return err
	}
	if !requester.CanManage(c.OwnerID) {
		return ErrNotOwner
	}
	return s.Coupons.SetActive(id, active)
}

// Redeem consumes one use. The derived-status check runs first so an
// inactive, pending or expired coupon is refused before the counter
// moves; the repository guard then keeps the count at or under the limit
// no matter what.
func (s *CouponService) Redeem(id string, now time.Time) (string, error) {
	c, err := s.Coupons.Get(id)
	if err != nil {
		return "", err
	}
	status := c.StatusAt(now)
	switch status {
	case domain.CouponActive, domain.CouponExpiringSoon:
		if err := s.Coupons.IncrementUsage(id); err != nil {
			return "", err
		}
		return status, nil
	default:
		return status, ErrNotRedeemable
	}
}
