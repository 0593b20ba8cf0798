package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"vitrine/internal/domain"
	"vitrine/internal/pipeline"
	"vitrine/internal/repos"
	"vitrine/internal/services"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE categories(id TEXT PRIMARY KEY, name TEXT, created_at TEXT, updated_at TEXT);
	CREATE TABLE products(id TEXT PRIMARY KEY, category_id TEXT, name TEXT, description TEXT,
	  price NUMERIC, active INTEGER, owner_id TEXT, created_at TEXT, updated_at TEXT);
	CREATE TABLE coupons(id TEXT PRIMARY KEY, code TEXT, category TEXT, title TEXT, description TEXT,
	  kind TEXT, value NUMERIC, usage_count INTEGER, usage_limit INTEGER,
	  valid_from TEXT, valid_until TEXT, active INTEGER, owner_id TEXT, created_at TEXT);
	CREATE TABLE events(id TEXT PRIMARY KEY, category TEXT, title TEXT, description TEXT, location TEXT,
	  price NUMERIC, starts_at TEXT, ends_at TEXT, active INTEGER, owner_id TEXT, created_at TEXT);

	INSERT INTO categories(id,name) VALUES ('tecnologia','Tecnologia'),('moda','Moda');

	INSERT INTO products(id,category_id,name,description,price,active,owner_id,created_at) VALUES
	  ('p1','tecnologia','Teclado','Mecanico',249.90,1,'s1','2025-01-03 10:00:00'),
	  ('p2','moda','Tenis','Retro',329.50,1,'s2','2025-01-01 10:00:00'),
	  ('p3','tecnologia','Mouse','Sem fio',189.00,1,'s1','2025-01-02 10:00:00');

	INSERT INTO coupons(id,code,category,title,description,kind,value,usage_count,usage_limit,
	  valid_from,valid_until,active,owner_id,created_at) VALUES
	  ('c1','TECH10','tecnologia','Dez','','PERCENT',10,0,100,'','2025-12-31T00:00:00Z',1,'s1','2025-01-01 10:00:00'),
	  ('c2','CHEIO','','Esgotado','','FLAT',20,5,5,'','',1,'s1','2025-01-02 10:00:00'),
	  ('c3','BREVE','','Quase','','FLAT',15,0,10,'','2025-06-04T00:00:00Z',1,'s2','2025-01-03 10:00:00'),
	  ('c4','PAUSA','','Pausado','','FLAT',5,0,10,'','',0,'s2','2025-01-04 10:00:00');

	INSERT INTO events(id,category,title,description,location,price,starts_at,ends_at,active,owner_id,created_at) VALUES
	  ('e1','tecnologia','Feira','','Centro',0,'2025-06-10T09:00:00Z','2025-06-10T18:00:00Z',1,'s1','2025-01-01 10:00:00'),
	  ('e2','moda','Bazar','','Galpao',10,'2025-05-20T10:00:00Z','2025-05-20T18:00:00Z',1,'s2','2025-01-02 10:00:00'),
	  ('e3','moda','Mostra','','Praca',0,'2025-06-01T08:00:00Z','',1,'s2','2025-01-03 10:00:00');
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestCouponService_ListAnnotatesStatus(t *testing.T) {
	db := memdb(t)
	svc := services.NewCouponService(repos.NewCouponRepo(db), 200)

	page, err := svc.List(pipeline.Query{Sort: pipeline.SortRelevance, PageSize: 10, Page: 1}, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if page.TotalPages != 1 || len(page.Items) != 4 {
		t.Fatalf("want 4 coupons, got %+v", page)
	}
	want := map[string]string{
		"c1": domain.CouponActive,
		"c2": domain.CouponExhausted,
		"c3": domain.CouponExpiringSoon,
		"c4": domain.CouponInactive,
	}
	for _, v := range page.Items {
		if v.Status != want[v.ID] {
			t.Errorf("%s: want status %q, got %q", v.ID, want[v.ID], v.Status)
		}
	}
}

func TestCouponService_ListFiltersByStatus(t *testing.T) {
	db := memdb(t)
	svc := services.NewCouponService(repos.NewCouponRepo(db), 200)

	page, err := svc.List(pipeline.Query{
		Criteria: pipeline.Criteria{Status: domain.CouponExpiringSoon},
		Sort:     pipeline.SortRelevance,
		PageSize: 10,
		Page:     1,
	}, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "c3" {
		t.Fatalf("want [c3], got %+v", page.Items)
	}
}

func TestCouponService_EstimatedSavingUsesBasket(t *testing.T) {
	db := memdb(t)
	svc := services.NewCouponService(repos.NewCouponRepo(db), 300)

	page, err := svc.List(pipeline.Query{
		Criteria: pipeline.Criteria{Search: "TECH10"},
		Sort:     pipeline.SortRelevance,
		PageSize: 10,
		Page:     1,
	}, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("want the TECH10 coupon, got %+v", page.Items)
	}
	// 10% of the configured 300 basket
	if page.Items[0].EstimatedSaving != 30 {
		t.Fatalf("want saving 30, got %v", page.Items[0].EstimatedSaving)
	}
}

func TestCouponService_StatsIndependentOfFilters(t *testing.T) {
	db := memdb(t)
	svc := services.NewCouponService(repos.NewCouponRepo(db), 200)

	counts, err := svc.Stats("s1", testNow)
	if err != nil {
		t.Fatal(err)
	}
	if counts[pipeline.AllKey] != 2 {
		t.Fatalf("s1 owns 2 coupons, got all=%d", counts[pipeline.AllKey])
	}
	if counts[domain.CouponActive] != 1 || counts[domain.CouponExhausted] != 1 {
		t.Fatalf("bad status buckets: %v", counts)
	}

	all, err := svc.Stats("", testNow)
	if err != nil {
		t.Fatal(err)
	}
	if all[pipeline.AllKey] != 4 {
		t.Fatalf("unscoped stats must cover the whole collection, got %v", all)
	}
}

func TestCouponService_CreateAndOwnership(t *testing.T) {
	db := memdb(t)
	svc := services.NewCouponService(repos.NewCouponRepo(db), 200)

	created, err := svc.Create("s1", domain.Coupon{Code: "NOVO5", Title: "Novo", Kind: "flat", Value: 5})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.OwnerID != "s1" || !created.Active || created.UsageCount != 0 {
		t.Fatalf("bad created coupon: %+v", created)
	}
	if created.Kind != "FLAT" {
		t.Fatalf("kind must be normalized, got %q", created.Kind)
	}

	if _, err := svc.Create("s1", domain.Coupon{Code: "RUIM", Title: "Ruim", Kind: "half-off", Value: 5}); !errors.Is(err, services.ErrBadCouponKind) {
		t.Fatalf("want ErrBadCouponKind, got %v", err)
	}

	// another seller cannot deactivate it
	other := &domain.User{ID: "s2", Role: "SELLER"}
	if err := svc.SetActive(created.ID, other, false); !errors.Is(err, services.ErrNotOwner) {
		t.Fatalf("want ErrNotOwner, got %v", err)
	}
	// an admin can
	admin := &domain.User{ID: "u-admin", Role: "ADMIN"}
	if err := svc.SetActive(created.ID, admin, false); err != nil {
		t.Fatal(err)
	}
	got, err := svc.Coupons.Get(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Active {
		t.Fatal("coupon should be inactive after admin toggle")
	}
}

func TestCouponService_Redeem(t *testing.T) {
	db := memdb(t)
	repo := repos.NewCouponRepo(db)
	svc := services.NewCouponService(repo, 200)

	// redeemable: usage moves forward
	if _, err := svc.Redeem("c1", testNow); err != nil {
		t.Fatal(err)
	}
	c, err := repo.Get("c1")
	if err != nil {
		t.Fatal(err)
	}
	if c.UsageCount != 1 {
		t.Fatalf("want usage 1, got %d", c.UsageCount)
	}

	// exhausted coupon refuses before touching the counter
	status, err := svc.Redeem("c2", testNow)
	if !errors.Is(err, services.ErrNotRedeemable) {
		t.Fatalf("want ErrNotRedeemable, got %v", err)
	}
	if status != domain.CouponExhausted {
		t.Fatalf("want exhausted, got %q", status)
	}
	c2, _ := repo.Get("c2")
	if c2.UsageCount != 5 {
		t.Fatalf("refused redeem must not move the counter, got %d", c2.UsageCount)
	}

	// inactive coupon refused as well
	if _, err := svc.Redeem("c4", testNow); !errors.Is(err, services.ErrNotRedeemable) {
		t.Fatalf("want ErrNotRedeemable for inactive, got %v", err)
	}
}

func TestEventService_ListAnnotatesFlags(t *testing.T) {
	db := memdb(t)
	svc := services.NewEventService(repos.NewEventRepo(db))

	// testNow is Sunday 2025-06-01: e3 started this morning with no end,
	// e2 finished in May, e1 is next week.
	page, err := svc.List(pipeline.Query{Sort: pipeline.SortRelevance, PageSize: 10, Page: 1}, testNow)
	if err != nil {
		t.Fatal(err)
	}
	byID := map[string]services.EventView{}
	for _, v := range page.Items {
		byID[v.ID] = v
	}
	if v := byID["e1"]; v.Status != domain.EventUpcoming || v.IsToday || v.IsThisWeek {
		t.Fatalf("e1: %+v", v)
	}
	if v := byID["e2"]; v.Status != domain.EventPast || v.IsToday || v.IsThisWeek {
		t.Fatalf("e2: %+v", v)
	}
	if v := byID["e3"]; v.Status != domain.EventLive || !v.IsToday || !v.IsThisWeek {
		t.Fatalf("e3: %+v", v)
	}
}

func TestEventService_CreateRequiresStart(t *testing.T) {
	db := memdb(t)
	svc := services.NewEventService(repos.NewEventRepo(db))

	if _, err := svc.Create("s1", domain.Event{Title: "Sem data"}); !errors.Is(err, services.ErrMissingStart) {
		t.Fatalf("want ErrMissingStart, got %v", err)
	}
	created, err := svc.Create("s1", domain.Event{Title: "Com data", StartsAt: "2025-07-01T10:00:00Z"})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.OwnerID != "s1" || !created.Active {
		t.Fatalf("bad created event: %+v", created)
	}
}
