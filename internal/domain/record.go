package domain

import "time"

// Pipeline accessors. These satisfy pipeline.Record for each domain type
// so all three collections flow through the same filter/sort/paginate
// code. Text search covers name and description, plus location for events
// and code for coupons.

func (p Product) Key() string { return p.ID }

func (p Product) Group() string { return p.CategoryID }

func (p Product) OwnedBy() string { return p.OwnerID }

func (p Product) Amount() float64 { return p.Price }

func (p Product) Label() string { return p.Name }

func (p Product) OccurredAt() time.Time { return ParseTime(p.CreatedAt, time.Time{}) }

func (p Product) SearchText() []string { return []string{p.Name, p.Description} }

func (p Product) Lifecycle(now time.Time) string { return p.StatusAt(now) }

func (c Coupon) Key() string { return c.ID }

func (c Coupon) Group() string { return c.Category }

func (c Coupon) OwnedBy() string { return c.OwnerID }

func (c Coupon) Amount() float64 { return c.Value }

func (c Coupon) Label() string { return c.Title }

func (c Coupon) OccurredAt() time.Time { return ParseTime(c.CreatedAt, time.Time{}) }

func (c Coupon) SearchText() []string { return []string{c.Title, c.Description, c.Code} }

func (c Coupon) Lifecycle(now time.Time) string { return c.StatusAt(now) }

func (e Event) Key() string { return e.ID }

func (e Event) Group() string { return e.Category }

func (e Event) OwnedBy() string { return e.OwnerID }

func (e Event) Amount() float64 { return e.Price }

func (e Event) Label() string { return e.Title }

// OccurredAt uses the start instant rather than creation time: "date"
// ordering for events is chronological by schedule.
func (e Event) OccurredAt() time.Time { return ParseTime(e.StartsAt, time.Time{}) }

func (e Event) SearchText() []string { return []string{e.Title, e.Description, e.Location} }

func (e Event) Lifecycle(now time.Time) string { return e.StatusAt(now) }
