package lifecycle

import "github.com/kedarbajaj/CargoMate-sub000/models"

// Authorized reports whether the actor is a rightful party on the delivery:
// the owning customer, the assigned vendor, or an admin. It is a pure function
// of the already-fetched delivery and the explicit actor identity; it never
// reads ambient session state.
//
// This membership check runs before any transition-legality check so that an
// unrelated actor learns nothing about the delivery's current state.
func Authorized(d *models.Delivery, actorID int64, actorRole string) bool {
	if d == nil {
		return false
	}
	switch actorRole {
	case models.RoleAdmin:
		return true
	case models.RoleCustomer:
		return d.UserID == actorID
	case models.RoleVendor:
		return d.VendorID != nil && *d.VendorID == actorID
	}
	return false
}
