package lifecycle

import "github.com/kedarbajaj/CargoMate-sub000/models"

// transition is one directed edge of the delivery state machine.
type transition struct {
	From models.DeliveryStatus
	To   models.DeliveryStatus
}

// legalTransitions maps each allowed edge to the actor roles permitted to
// request it. Edges absent from the map are illegal for every actor, which
// also locks the terminal states (delivered, rejected, cancelled): no edge
// leaves them.
var legalTransitions = map[transition][]string{
	{models.DeliveryStatusPending, models.DeliveryStatusAccepted}:    {models.RoleVendor},
	{models.DeliveryStatusPending, models.DeliveryStatusRejected}:    {models.RoleVendor},
	{models.DeliveryStatusPending, models.DeliveryStatusCancelled}:   {models.RoleCustomer, models.RoleAdmin},
	{models.DeliveryStatusAccepted, models.DeliveryStatusInTransit}:  {models.RoleVendor},
	{models.DeliveryStatusInTransit, models.DeliveryStatusDelivered}: {models.RoleVendor},
	// Admin override: cancel anything not yet terminal.
	{models.DeliveryStatusAccepted, models.DeliveryStatusCancelled}:  {models.RoleAdmin},
	{models.DeliveryStatusInTransit, models.DeliveryStatusCancelled}: {models.RoleAdmin},
}

// CanTransition reports whether the edge from -> to may be requested by the
// given actor role. Self-transitions are always illegal so that every
// successful transition produces exactly one meaningful tracking entry.
func CanTransition(from, to models.DeliveryStatus, role string) bool {
	if from == to {
		return false
	}
	roles, ok := legalTransitions[transition{From: from, To: to}]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
