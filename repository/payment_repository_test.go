package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/kedarbajaj/CargoMate-sub000/internal/testutil"
	"github.com/kedarbajaj/CargoMate-sub000/models"
)

func TestPaymentCreateGetAndSettle(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "repo_payments")
	customer, vendor := seedCustomerAndVendor(t, d)
	deliveries := NewDeliveryRepository(d)
	repo := NewPaymentRepository(d)
	ctx := context.Background()

	del, err := deliveries.Create(ctx, newTestDelivery(customer.ID, &vendor.ID))
	if err != nil {
		t.Fatalf("create delivery: %v", err)
	}

	p, err := repo.Create(ctx, &models.Payment{
		DeliveryID: del.ID,
		Reference:  "ref-001",
		Amount:     149.50,
		Method:     models.PaymentMethodUPI,
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if p.Status != models.PaymentStatusPending {
		t.Errorf("default status should be pending, got %s", p.Status)
	}

	// One payment per delivery.
	_, err = repo.Create(ctx, &models.Payment{
		DeliveryID: del.ID,
		Reference:  "ref-002",
		Amount:     10,
		Method:     models.PaymentMethodCard,
	})
	if !errors.Is(err, ErrPaymentExists) {
		t.Fatalf("expected ErrPaymentExists, got %v", err)
	}

	if err := repo.UpdateStatus(ctx, p.ID, models.PaymentStatusSuccessful); err != nil {
		t.Fatalf("settle payment: %v", err)
	}

	got, err := repo.GetByDeliveryID(ctx, del.ID)
	if err != nil {
		t.Fatalf("get payment: %v", err)
	}
	if got == nil || got.Status != models.PaymentStatusSuccessful {
		t.Errorf("payment should be successful: %+v", got)
	}
	if got.Reference != "ref-001" {
		t.Errorf("reference mismatch: %s", got.Reference)
	}

	missing, err := repo.GetByDeliveryID(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing payment: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing payment")
	}
}
