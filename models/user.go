package models

// Actor roles as stored in the `users` table and carried in JWT claims.
const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

// User represents an account in the system.
// It maps to the `users` table in SQLite. Vendors additionally have a
// Vendor record linked through Vendor.UserID.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
	Role     string `db:"role" json:"role"`
}
