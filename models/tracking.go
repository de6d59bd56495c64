package models

// TrackingUpdate is one append-only audit entry in a delivery's history.
// StatusLabel uses the display vocabulary ("Dispatched", "In Transit",
// "Delivered"), not the canonical DeliveryStatus values.
// Lat/Lng are vendor-supplied and nullable; use pointers to distinguish
// null vs zero.
type TrackingUpdate struct {
	ID          int64    `db:"id" json:"id"`
	DeliveryID  int64    `db:"delivery_id" json:"delivery_id"`
	StatusLabel string   `db:"status_label" json:"status_label"`
	Lat         *float64 `db:"lat" json:"lat,omitempty"`
	Lng         *float64 `db:"lng" json:"lng,omitempty"`
	CreatedAt   string   `db:"created_at" json:"created_at"`
}
