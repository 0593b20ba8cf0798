package domain

import "time"

// Lifecycle statuses derived from wall-clock time, the administrative
// flag and usage counters. A status is never stored: it is recomputed per
// pipeline pass because "now" advances.
const (
	CouponInactive     = "inactive"
	CouponExhausted    = "exhausted"
	CouponPending      = "pending"
	CouponExpired      = "expired"
	CouponExpiringSoon = "expiring-soon"
	CouponActive       = "active"

	EventUpcoming = "upcoming"
	EventLive     = "live"
	EventPast     = "past"

	ProductActive   = "active"
	ProductInactive = "inactive"
)

// ExpiringSoonWindow is how close to ValidUntil a coupon counts as
// expiring-soon. Named rather than inlined so callers with a different
// policy can use StatusWithin.
const ExpiringSoonWindow = 7 * 24 * time.Hour

// StatusAt derives the coupon lifecycle status at now using the default
// expiring-soon window.
func (c Coupon) StatusAt(now time.Time) string {
	return c.StatusWithin(now, ExpiringSoonWindow)
}

// StatusWithin derives the coupon lifecycle status at now. The checks run
// in a fixed order and the first match wins: inactive, exhausted, pending,
// expired, expiring-soon, active. That order is load-bearing; it is what
// resolves a coupon that is both exhausted and expiring-soon to exhausted.
//
// Date handling: an empty or unparsable ValidFrom is treated as already
// started. An empty ValidUntil means the coupon never expires; an
// unparsable one parses to now and therefore classifies as expiring-soon.
// A UsageCount at or past UsageLimit is exhausted even if the input
// violated the monotonicity precondition. A zero UsageLimit disables the
// exhaustion check entirely: limits are opt-in, so a coupon that never
// set one is not born exhausted at 0/0. That widens the plain
// count-versus-limit comparison on purpose.
func (c Coupon) StatusWithin(now time.Time, window time.Duration) string {
	if !c.Active {
		return CouponInactive
	}
	if c.UsageLimit > 0 && c.UsageCount >= c.UsageLimit {
		return CouponExhausted
	}
	if now.Before(ParseTime(c.ValidFrom, now)) {
		return CouponPending
	}
	if c.ValidUntil != "" {
		until := ParseTime(c.ValidUntil, now)
		if now.After(until) {
			return CouponExpired
		}
		if !until.After(now.Add(window)) {
			return CouponExpiringSoon
		}
	}
	return CouponActive
}

// StatusAt classifies an event as upcoming, live or past at now. An event
// without EndsAt stays live once started, never past. A missing or
// unparsable StartsAt counts as already started.
func (e Event) StatusAt(now time.Time) string {
	if ParseTime(e.StartsAt, now).After(now) {
		return EventUpcoming
	}
	if e.EndsAt != "" && ParseTime(e.EndsAt, now).Before(now) {
		return EventPast
	}
	return EventLive
}

// IsToday reports whether the event starts on the same calendar day as
// now. Independent of StatusAt: a live or past event can still be today's.
func (e Event) IsToday(now time.Time) bool {
	starts := ParseTime(e.StartsAt, now)
	y1, m1, d1 := starts.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsThisWeek reports whether the event starts within the current week,
// defined Sunday through Saturday anchored on now.
func (e Event) IsThisWeek(now time.Time) bool {
	starts := ParseTime(e.StartsAt, now)
	y, m, d := now.Date()
	weekStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -int(now.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 7)
	return !starts.Before(weekStart) && starts.Before(weekEnd)
}

// StatusAt reduces a product to active/inactive from its administrative
// flag; products carry no temporal bounds.
func (p Product) StatusAt(time.Time) string {
	if p.Active {
		return ProductActive
	}
	return ProductInactive
}
