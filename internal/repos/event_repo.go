package repos

import (
	"vitrine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type EventRepo struct{ db *sqlx.DB }

func NewEventRepo(db *sqlx.DB) *EventRepo { return &EventRepo{db: db} }

const eventCols = `
    id, COALESCE(category,'') AS category, title,
    COALESCE(description,'') AS description, COALESCE(location,'') AS location,
    price, starts_at, COALESCE(ends_at,'') AS ends_at,
    active, COALESCE(owner_id,'') AS owner_id,
    COALESCE(created_at,'') AS created_at`

// All loads the full event collection for a pipeline snapshot.
func (r *EventRepo) All() ([]domain.Event, error) {
	var out []domain.Event
	err := r.db.Select(&out, `SELECT`+eventCols+` FROM events ORDER BY starts_at, id`)
	return out, err
}

func (r *EventRepo) Get(id string) (domain.Event, error) {
	var e domain.Event
	err := r.db.Get(&e, `SELECT`+eventCols+` FROM events WHERE id = ?`, id)
	return e, err
}

func (r *EventRepo) Create(e domain.Event) error {
	_, err := r.db.Exec(`
  INSERT INTO events(id, category, title, description, location, price,
                     starts_at, ends_at, active, owner_id)
  VALUES(?,?,?,?,?,?,?,?,?,?)
`, e.ID, e.Category, e.Title, e.Description, e.Location, e.Price,
		e.StartsAt, e.EndsAt, e.Active, e.OwnerID)
	return err
}

func (r *EventRepo) SetActive(id string, active bool) error {
	_, err := r.db.Exec(`UPDATE events SET active=? WHERE id=?`, active, id)
	return err
}
