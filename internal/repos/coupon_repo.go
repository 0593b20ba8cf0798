package repos

import (
	"errors"

	"vitrine/internal/domain"

	"github.com/jmoiron/sqlx"
)

var ErrUsageExhausted = errors.New("coupon usage limit reached")

type CouponRepo struct{ db *sqlx.DB }

func NewCouponRepo(db *sqlx.DB) *CouponRepo { return &CouponRepo{db: db} }

const couponCols = `
    id, code, COALESCE(category,'') AS category, title,
    COALESCE(description,'') AS description, kind, value,
    usage_count, usage_limit,
    COALESCE(valid_from,'') AS valid_from, COALESCE(valid_until,'') AS valid_until,
    active, COALESCE(owner_id,'') AS owner_id,
    COALESCE(created_at,'') AS created_at`

// All loads the full coupon collection for a pipeline snapshot.
func (r *CouponRepo) All() ([]domain.Coupon, error) {
	var out []domain.Coupon
	err := r.db.Select(&out, `SELECT`+couponCols+` FROM coupons ORDER BY created_at, id`)
	return out, err
}

func (r *CouponRepo) Get(id string) (domain.Coupon, error) {
	var c domain.Coupon
	err := r.db.Get(&c, `SELECT`+couponCols+` FROM coupons WHERE id = ?`, id)
	return c, err
}

func (r *CouponRepo) Create(c domain.Coupon) error {
	_, err := r.db.Exec(`
  INSERT INTO coupons(id, code, category, title, description, kind, value,
                      usage_count, usage_limit, valid_from, valid_until, active, owner_id)
  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)
`, c.ID, c.Code, c.Category, c.Title, c.Description, c.Kind, c.Value,
		c.UsageCount, c.UsageLimit, c.ValidFrom, c.ValidUntil, c.Active, c.OwnerID)
	return err
}

// SetActive flips the administrative flag; owner/admin action only.
func (r *CouponRepo) SetActive(id string, active bool) error {
	_, err := r.db.Exec(`UPDATE coupons SET active=? WHERE id=?`, active, id)
	return err
}

// IncrementUsage bumps usage_count by one, refusing to pass usage_limit
// when a limit is set (limit 0 means unlimited). The counter only moves
// forward; the guard lives in the UPDATE so concurrent redeems cannot
// overshoot.
func (r *CouponRepo) IncrementUsage(id string) error {
	res, err := r.db.Exec(`
  UPDATE coupons SET usage_count = usage_count + 1
  WHERE id = ? AND (usage_limit = 0 OR usage_count < usage_limit)
`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUsageExhausted
	}
	return nil
}
