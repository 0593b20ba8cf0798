package repos

import (
	"vitrine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// All loads the full product collection for a pipeline snapshot. The rows
// come back in creation order so "relevance" sorting has a defined base.
func (r *ProductRepo) All() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
  SELECT
    id, category_id, name, COALESCE(description,'') AS description, price,
    active, COALESCE(owner_id,'') AS owner_id,
    COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at
  FROM products
  ORDER BY created_at, id
`)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
  SELECT
    id, category_id, name, COALESCE(description,'') AS description, price,
    active, COALESCE(owner_id,'') AS owner_id,
    COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at
  FROM products
  WHERE id = ?
`, id)
	return p, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
  INSERT INTO products(id, category_id, name, description, price, active, owner_id)
  VALUES(?,?,?,?,?,?,?)
`, p.ID, p.CategoryID, p.Name, p.Description, p.Price, p.Active, p.OwnerID)
	return err
}

// SetActive flips the administrative flag. This is the only product field
// the owner mutates through the API; everything else is replaced wholesale.
func (r *ProductRepo) SetActive(id string, active bool) error {
	_, err := r.db.Exec(`UPDATE products SET active=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, active, id)
	return err
}
