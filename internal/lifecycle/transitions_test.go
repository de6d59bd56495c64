package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kedarbajaj/CargoMate-sub000/models"
)

var allStatuses = []models.DeliveryStatus{
	models.DeliveryStatusPending,
	models.DeliveryStatusAccepted,
	models.DeliveryStatusRejected,
	models.DeliveryStatusInTransit,
	models.DeliveryStatusDelivered,
	models.DeliveryStatusCancelled,
}

var allRoles = []string{models.RoleCustomer, models.RoleVendor, models.RoleAdmin}

func TestCanTransition_LegalEdges(t *testing.T) {
	cases := []struct {
		from models.DeliveryStatus
		to   models.DeliveryStatus
		role string
	}{
		{models.DeliveryStatusPending, models.DeliveryStatusAccepted, models.RoleVendor},
		{models.DeliveryStatusPending, models.DeliveryStatusRejected, models.RoleVendor},
		{models.DeliveryStatusPending, models.DeliveryStatusCancelled, models.RoleCustomer},
		{models.DeliveryStatusPending, models.DeliveryStatusCancelled, models.RoleAdmin},
		{models.DeliveryStatusAccepted, models.DeliveryStatusInTransit, models.RoleVendor},
		{models.DeliveryStatusAccepted, models.DeliveryStatusCancelled, models.RoleAdmin},
		{models.DeliveryStatusInTransit, models.DeliveryStatusDelivered, models.RoleVendor},
		{models.DeliveryStatusInTransit, models.DeliveryStatusCancelled, models.RoleAdmin},
	}
	for _, c := range cases {
		assert.True(t, CanTransition(c.from, c.to, c.role), "%s -> %s by %s should be legal", c.from, c.to, c.role)
	}
}

func TestCanTransition_RoleMismatchOnLegalEdge(t *testing.T) {
	// The edge exists but the actor role is not in its allow list.
	assert.False(t, CanTransition(models.DeliveryStatusPending, models.DeliveryStatusAccepted, models.RoleCustomer))
	assert.False(t, CanTransition(models.DeliveryStatusPending, models.DeliveryStatusAccepted, models.RoleAdmin))
	assert.False(t, CanTransition(models.DeliveryStatusAccepted, models.DeliveryStatusCancelled, models.RoleCustomer))
	assert.False(t, CanTransition(models.DeliveryStatusAccepted, models.DeliveryStatusCancelled, models.RoleVendor))
	assert.False(t, CanTransition(models.DeliveryStatusInTransit, models.DeliveryStatusDelivered, models.RoleCustomer))
}

func TestCanTransition_SelfTransitionAlwaysIllegal(t *testing.T) {
	for _, s := range allStatuses {
		for _, role := range allRoles {
			assert.False(t, CanTransition(s, s, role), "self transition %s by %s must be illegal", s, role)
		}
	}
}

func TestCanTransition_TerminalStatesLocked(t *testing.T) {
	terminals := []models.DeliveryStatus{
		models.DeliveryStatusRejected,
		models.DeliveryStatusDelivered,
		models.DeliveryStatusCancelled,
	}
	for _, from := range terminals {
		for _, to := range allStatuses {
			for _, role := range allRoles {
				assert.False(t, CanTransition(from, to, role), "%s -> %s by %s must be illegal", from, to, role)
			}
		}
	}
}

func TestCanTransition_ExhaustiveComplement(t *testing.T) {
	// Every (from, to, role) triple must be illegal unless it is one of the
	// eight explicitly allowed combinations.
	legal := map[[3]string]bool{
		{"pending", "accepted", models.RoleVendor}:     true,
		{"pending", "rejected", models.RoleVendor}:     true,
		{"pending", "cancelled", models.RoleCustomer}:  true,
		{"pending", "cancelled", models.RoleAdmin}:     true,
		{"accepted", "in_transit", models.RoleVendor}:  true,
		{"accepted", "cancelled", models.RoleAdmin}:    true,
		{"in_transit", "delivered", models.RoleVendor}: true,
		{"in_transit", "cancelled", models.RoleAdmin}:  true,
	}
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			for _, role := range allRoles {
				want := legal[[3]string{string(from), string(to), role}]
				assert.Equal(t, want, CanTransition(from, to, role), "%s -> %s by %s", from, to, role)
			}
		}
	}
}
