package domain

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at,omitempty"`
}

type Product struct {
	ID          string  `db:"id" json:"id"`
	CategoryID  string  `db:"category_id" json:"category_id"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Price       float64 `db:"price" json:"price"`
	Active      bool    `db:"active" json:"active"`
	OwnerID     string  `db:"owner_id" json:"owner_id,omitempty"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
	UpdatedAt   string  `db:"updated_at" json:"updated_at,omitempty"`
}

// Coupon is a time- and counter-bounded record. UsageCount is read-only
// input for status derivation: it only moves forward, and only the
// repository layer writes it. Active is an administrative flag toggled by
// the owner.
type Coupon struct {
	ID          string  `db:"id" json:"id"`
	Code        string  `db:"code" json:"code"`
	Category    string  `db:"category" json:"category,omitempty"`
	Title       string  `db:"title" json:"title"`
	Description string  `db:"description" json:"description"`
	Kind        string  `db:"kind" json:"kind"` // PERCENT | FLAT
	Value       float64 `db:"value" json:"value"`
	UsageCount  int     `db:"usage_count" json:"usage_count"`
	UsageLimit  int     `db:"usage_limit" json:"usage_limit"`
	ValidFrom   string  `db:"valid_from" json:"valid_from,omitempty"`
	ValidUntil  string  `db:"valid_until" json:"valid_until,omitempty"`
	Active      bool    `db:"active" json:"active"`
	OwnerID     string  `db:"owner_id" json:"owner_id,omitempty"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
}

type Event struct {
	ID          string  `db:"id" json:"id"`
	Category    string  `db:"category" json:"category,omitempty"`
	Title       string  `db:"title" json:"title"`
	Description string  `db:"description" json:"description"`
	Location    string  `db:"location" json:"location"`
	Price       float64 `db:"price" json:"price"`
	StartsAt    string  `db:"starts_at" json:"starts_at"`
	EndsAt      string  `db:"ends_at" json:"ends_at,omitempty"`
	Active      bool    `db:"active" json:"active"`
	OwnerID     string  `db:"owner_id" json:"owner_id,omitempty"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
}

// EstimatedSaving converts a percentage discount into an estimated
// currency amount against the given basket value. The basket value is a
// business heuristic, so the caller always supplies it (from config)
// rather than this package baking one in. Flat coupons return their value
// directly.
func (c Coupon) EstimatedSaving(basket float64) float64 {
	if c.Kind == "PERCENT" {
		return basket * c.Value / 100
	}
	return c.Value
}
