package models

// PaymentStatus represents the outcome of a (simulated) gateway charge.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusSuccessful PaymentStatus = "successful"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// PaymentMethod enumerates the accepted payment instruments.
type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodUPI    PaymentMethod = "upi"
	PaymentMethodWallet PaymentMethod = "wallet"
	PaymentMethodCOD    PaymentMethod = "cod"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodUPI, PaymentMethodWallet, PaymentMethodCOD:
		return true
	}
	return false
}

// Payment records a charge for a delivery. One payment per delivery;
// Reference is a generated opaque id handed to the customer.
type Payment struct {
	ID         int64         `db:"id" json:"id"`
	DeliveryID int64         `db:"delivery_id" json:"delivery_id"`
	Reference  string        `db:"reference" json:"reference"`
	Amount     float64       `db:"amount" json:"amount"`
	Method     PaymentMethod `db:"method" json:"method"`
	Status     PaymentStatus `db:"status" json:"status"`
	CreatedAt  string        `db:"created_at" json:"created_at"`
}
