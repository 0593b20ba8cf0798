package domain_test

import (
	"testing"
	"time"

	"vitrine/internal/domain"
)

var now = time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC) // a Wednesday

func ts(t time.Time) string { return t.Format(time.RFC3339) }

func TestCouponStatusPrecedence(t *testing.T) {
	limitReached := domain.Coupon{Active: true, UsageCount: 5, UsageLimit: 5}
	expiring := domain.Coupon{Active: true, UsageLimit: 10, ValidUntil: ts(now.Add(3 * 24 * time.Hour))}
	inactive := domain.Coupon{Active: false}

	if got := limitReached.StatusAt(now); got != domain.CouponExhausted {
		t.Fatalf("exhausted coupon classified %q", got)
	}
	if got := expiring.StatusAt(now); got != domain.CouponExpiringSoon {
		t.Fatalf("expiring coupon classified %q", got)
	}
	if got := inactive.StatusAt(now); got != domain.CouponInactive {
		t.Fatalf("inactive coupon classified %q", got)
	}

	// The flag check precedes the exhaustion check.
	both := domain.Coupon{Active: false, UsageCount: 9, UsageLimit: 5}
	if got := both.StatusAt(now); got != domain.CouponInactive {
		t.Fatalf("inactive+exhausted must resolve to inactive, got %q", got)
	}

	// Exhaustion beats expiring-soon.
	exhaustedSoon := domain.Coupon{Active: true, UsageCount: 5, UsageLimit: 5, ValidUntil: ts(now.Add(time.Hour))}
	if got := exhaustedSoon.StatusAt(now); got != domain.CouponExhausted {
		t.Fatalf("exhausted+expiring must resolve to exhausted, got %q", got)
	}
}

func TestCouponStatusTemporalBounds(t *testing.T) {
	cases := []struct {
		name   string
		coupon domain.Coupon
		want   string
	}{
		{"pending", domain.Coupon{Active: true, ValidFrom: ts(now.Add(24 * time.Hour))}, domain.CouponPending},
		{"expired", domain.Coupon{Active: true, ValidUntil: ts(now.Add(-time.Minute))}, domain.CouponExpired},
		{"expiring at window edge", domain.Coupon{Active: true, ValidUntil: ts(now.Add(domain.ExpiringSoonWindow))}, domain.CouponExpiringSoon},
		{"active beyond window", domain.Coupon{Active: true, ValidUntil: ts(now.Add(domain.ExpiringSoonWindow + time.Second))}, domain.CouponActive},
		{"no expiry", domain.Coupon{Active: true}, domain.CouponActive},
		{"usage over limit still exhausted", domain.Coupon{Active: true, UsageCount: 12, UsageLimit: 5}, domain.CouponExhausted},
		{"zero limit means unlimited", domain.Coupon{Active: true, UsageCount: 100}, domain.CouponActive},
	}
	for _, tc := range cases {
		if got := tc.coupon.StatusAt(now); got != tc.want {
			t.Errorf("%s: want %q, got %q", tc.name, tc.want, got)
		}
	}
}

// Unparsable dates fall back to "now": a bad ValidFrom counts as already
// started, a bad ValidUntil lands exactly on now and therefore classifies
// the coupon expiring-soon. Pinned here so a change is deliberate.
func TestCouponStatusMalformedDates(t *testing.T) {
	badFrom := domain.Coupon{Active: true, ValidFrom: "not-a-date"}
	if got := badFrom.StatusAt(now); got != domain.CouponActive {
		t.Fatalf("bad ValidFrom must count as started, got %q", got)
	}
	badUntil := domain.Coupon{Active: true, ValidUntil: "garbage"}
	if got := badUntil.StatusAt(now); got != domain.CouponExpiringSoon {
		t.Fatalf("bad ValidUntil must classify expiring-soon, got %q", got)
	}
}

func TestCouponStatusWithinCustomWindow(t *testing.T) {
	c := domain.Coupon{Active: true, ValidUntil: ts(now.Add(10 * 24 * time.Hour))}
	if got := c.StatusAt(now); got != domain.CouponActive {
		t.Fatalf("default window: want active, got %q", got)
	}
	if got := c.StatusWithin(now, 14*24*time.Hour); got != domain.CouponExpiringSoon {
		t.Fatalf("wide window: want expiring-soon, got %q", got)
	}
}

func TestEventStatus(t *testing.T) {
	cases := []struct {
		name  string
		event domain.Event
		want  string
	}{
		{"upcoming", domain.Event{StartsAt: ts(now.Add(time.Hour))}, domain.EventUpcoming},
		{"live", domain.Event{StartsAt: ts(now.Add(-time.Hour)), EndsAt: ts(now.Add(time.Hour))}, domain.EventLive},
		{"live at end instant", domain.Event{StartsAt: ts(now.Add(-time.Hour)), EndsAt: ts(now)}, domain.EventLive},
		{"past", domain.Event{StartsAt: ts(now.Add(-2 * time.Hour)), EndsAt: ts(now.Add(-time.Hour))}, domain.EventPast},
		{"no end stays live", domain.Event{StartsAt: ts(now.Add(-30 * 24 * time.Hour))}, domain.EventLive},
		{"missing start counts as started", domain.Event{}, domain.EventLive},
	}
	for _, tc := range cases {
		if got := tc.event.StatusAt(now); got != tc.want {
			t.Errorf("%s: want %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestEventDayAndWeekFlags(t *testing.T) {
	today := domain.Event{StartsAt: ts(time.Date(2025, 3, 12, 23, 0, 0, 0, time.UTC))}
	if !today.IsToday(now) {
		t.Fatal("event later today must be IsToday")
	}
	if !today.IsThisWeek(now) {
		t.Fatal("event later today must be IsThisWeek")
	}

	// now is Wednesday 2025-03-12; the week runs Sunday 03-09 through
	// Saturday 03-15.
	saturday := domain.Event{StartsAt: ts(time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC))}
	if saturday.IsToday(now) {
		t.Fatal("Saturday event is not today")
	}
	if !saturday.IsThisWeek(now) {
		t.Fatal("Saturday event is this week")
	}
	nextSunday := domain.Event{StartsAt: ts(time.Date(2025, 3, 16, 10, 0, 0, 0, time.UTC))}
	if nextSunday.IsThisWeek(now) {
		t.Fatal("next Sunday is outside the Sunday-Saturday week")
	}
	lastSaturday := domain.Event{StartsAt: ts(time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC))}
	if lastSaturday.IsThisWeek(now) {
		t.Fatal("last Saturday is outside the current week")
	}

	// Flags are independent of status: a past event can still be today's.
	pastToday := domain.Event{
		StartsAt: ts(time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)),
		EndsAt:   ts(time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)),
	}
	if pastToday.StatusAt(now) != domain.EventPast || !pastToday.IsToday(now) {
		t.Fatal("past event starting today must keep IsToday")
	}
}

func TestParseTimeLayouts(t *testing.T) {
	fallback := now
	if got := domain.ParseTime("2025-03-01T10:00:00Z", fallback); got.Equal(fallback) {
		t.Fatal("RFC3339 value should parse")
	}
	if got := domain.ParseTime("2025-03-01 10:00:00", fallback); got.Equal(fallback) {
		t.Fatal("sqlite timestamp should parse")
	}
	if got := domain.ParseTime("", fallback); !got.Equal(fallback) {
		t.Fatal("empty value must use fallback")
	}
	if got := domain.ParseTime("35/99/20", fallback); !got.Equal(fallback) {
		t.Fatal("garbage must use fallback")
	}
}

func TestEstimatedSaving(t *testing.T) {
	percent := domain.Coupon{Kind: "PERCENT", Value: 10}
	if got := percent.EstimatedSaving(200); got != 20 {
		t.Fatalf("10%% of 200 = %v", got)
	}
	flat := domain.Coupon{Kind: "FLAT", Value: 15}
	if got := flat.EstimatedSaving(200); got != 15 {
		t.Fatalf("flat saving = %v", got)
	}
}
