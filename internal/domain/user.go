package domain

// Account roles. Sellers manage their own products, coupons and events;
// admins may toggle anyone's.
const (
	RoleSeller = "SELLER"
	RoleAdmin  = "ADMIN"
)

type User struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`
	Hash  string `db:"password_hash" json:"-"`
	Role  string `db:"role" json:"role"`
}

// CanManage reports whether the user may administer a record owned by
// ownerID.
func (u *User) CanManage(ownerID string) bool {
	return u != nil && (u.Role == RoleAdmin || u.ID == ownerID)
}
