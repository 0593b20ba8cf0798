package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Users first: seeded products and coupons reference their owners.
	if err := seedUsers(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (categories/products/coupons/events)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('SELLER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  active INTEGER NOT NULL DEFAULT 1,
  owner_id TEXT REFERENCES users(id),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_owner    ON products(owner_id);

-- Coupons
CREATE TABLE IF NOT EXISTS coupons(
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  category TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  kind TEXT NOT NULL CHECK (kind IN ('PERCENT','FLAT')),
  value NUMERIC NOT NULL CHECK (value >= 0),
  usage_count INTEGER NOT NULL DEFAULT 0 CHECK (usage_count >= 0),
  usage_limit INTEGER NOT NULL DEFAULT 0 CHECK (usage_limit >= 0),
  valid_from  TEXT NOT NULL DEFAULT '',
  valid_until TEXT NOT NULL DEFAULT '',
  active INTEGER NOT NULL DEFAULT 1,
  owner_id TEXT REFERENCES users(id),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_coupons_owner ON coupons(owner_id);

-- Events
CREATE TABLE IF NOT EXISTS events(
  id TEXT PRIMARY KEY,
  category TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
  starts_at TEXT NOT NULL,
  ends_at   TEXT NOT NULL DEFAULT '',
  active INTEGER NOT NULL DEFAULT 1,
  owner_id TEXT REFERENCES users(id),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_events_owner     ON events(owner_id);
CREATE INDEX IF NOT EXISTS idx_events_starts_at ON events(starts_at);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products/coupons/events")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name) VALUES
	  ('tecnologia','Tecnologia'),
	  ('moda','Moda'),
	  ('casa','Casa e Decoracao'),
	  ('esporte','Esporte')`)

	tx.MustExec(`INSERT INTO products(id,category_id,name,description,price,owner_id) VALUES
	  ('prod-teclado','tecnologia','Teclado Mecanico','Teclado mecanico com switches azuis',249.90,'u-marina'),
	  ('prod-mouse','tecnologia','Mouse Gamer','Mouse sem fio 16000 DPI',189.00,'u-marina'),
	  ('prod-tenis','moda','Tenis Retro','Tenis classico anos 90',329.50,'u-carlos'),
	  ('prod-luminaria','casa','Luminaria de Mesa','Luminaria articulada LED',99.90,'u-carlos')`)

	tx.MustExec(`INSERT INTO coupons(id,code,category,title,description,kind,value,usage_limit,valid_until,owner_id) VALUES
	  ('cpn-tech10','TECH10','tecnologia','10% em Tecnologia','Desconto em toda a categoria','PERCENT',10,100,'2026-12-31T23:59:59Z','u-marina'),
	  ('cpn-frete','FRETEGRATIS','','Frete Gratis','Frete por nossa conta acima de R$150','FLAT',25,50,'','u-marina'),
	  ('cpn-moda15','MODA15','moda','15% em Moda','Valido em pecas selecionadas','PERCENT',15,30,'2026-06-30T23:59:59Z','u-carlos')`)

	tx.MustExec(`INSERT INTO events(id,category,title,description,location,price,starts_at,ends_at,owner_id) VALUES
	  ('evt-feira','tecnologia','Feira de Tecnologia','Lancamentos e demonstracoes','Centro de Convencoes',0,'2026-05-10T09:00:00Z','2026-05-10T18:00:00Z','u-marina'),
	  ('evt-bazar','moda','Bazar de Inverno','Pecas de colecoes passadas','Galpao 7',10,'2026-07-02T10:00:00Z','','u-carlos')`)

	return tx.Commit()
}

// seedUsers ensures two SELLERs and one ADMIN exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-marina", "marina@vitrine.test", "Marina", "SELLER", "Passw0rd!"),
		mk("u-carlos", "carlos@vitrine.test", "Carlos", "SELLER", "Passw0rd!"),
		mk("u-admin", "admin@vitrine.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
