package models

// Vendor represents a fulfillment company able to take deliveries.
// UserID links to the account used for login and notification targeting;
// Delivery.VendorID references the vendor record itself.
type Vendor struct {
	ID          int64  `db:"id" json:"id"`
	UserID      int64  `db:"user_id" json:"user_id"`
	CompanyName string `db:"company_name" json:"company_name"`
	Phone       string `db:"phone" json:"phone"`
}
