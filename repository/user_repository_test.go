package repository

import (
	"context"
	"testing"

	"github.com/kedarbajaj/CargoMate-sub000/internal/testutil"
	"github.com/kedarbajaj/CargoMate-sub000/models"
)

func TestUserRepository_CreateAndQueries(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "repo_users")
	repo := NewUserRepository(d)
	ctx := context.Background()

	alice, err := repo.Create(ctx, "alice", "alice@example.com", models.RoleCustomer)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if alice.ID == 0 {
		t.Fatal("user id not assigned")
	}

	// Empty role defaults to customer.
	bob, err := repo.Create(ctx, "bob", "", "")
	if err != nil {
		t.Fatalf("create user without role: %v", err)
	}
	if bob.Role != models.RoleCustomer {
		t.Errorf("default role should be customer, got %s", bob.Role)
	}

	got, err := repo.GetByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got == nil || got.Username != "alice" || got.Email != "alice@example.com" {
		t.Errorf("user mismatch: %+v", got)
	}

	byName, err := repo.GetByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if byName == nil || byName.ID != bob.ID {
		t.Errorf("lookup by username mismatch: %+v", byName)
	}

	missing, err := repo.GetByUsername(ctx, "nobody")
	if err != nil {
		t.Fatalf("get missing user: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing user")
	}
}

func TestUserRepository_ListAdmins(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "repo_users_admins")
	repo := NewUserRepository(d)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "alice", "", models.RoleCustomer); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	for _, name := range []string{"root", "ops"} {
		if _, err := repo.Create(ctx, name, "", models.RoleAdmin); err != nil {
			t.Fatalf("create admin %s: %v", name, err)
		}
	}

	admins, err := repo.ListAdmins(ctx)
	if err != nil {
		t.Fatalf("list admins: %v", err)
	}
	if len(admins) != 2 {
		t.Fatalf("expected 2 admins, got %d", len(admins))
	}
	for _, a := range admins {
		if a.Role != models.RoleAdmin {
			t.Errorf("non-admin in admin list: %+v", a)
		}
	}

	all, err := repo.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 users, got %d", len(all))
	}
}

func TestVendorRepository_CreateAndLookups(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "repo_vendors")
	users := NewUserRepository(d)
	repo := NewVendorRepository(d)
	ctx := context.Background()

	vu, err := users.Create(ctx, "acme", "", models.RoleVendor)
	if err != nil {
		t.Fatalf("create vendor user: %v", err)
	}
	v, err := repo.Create(ctx, &models.Vendor{UserID: vu.ID, CompanyName: "Acme Logistics", Phone: "555-0100"})
	if err != nil {
		t.Fatalf("create vendor: %v", err)
	}

	got, err := repo.GetByID(ctx, v.ID)
	if err != nil {
		t.Fatalf("get vendor: %v", err)
	}
	if got == nil || got.CompanyName != "Acme Logistics" {
		t.Errorf("vendor mismatch: %+v", got)
	}

	byUser, err := repo.GetByUserID(ctx, vu.ID)
	if err != nil {
		t.Fatalf("get vendor by user: %v", err)
	}
	if byUser == nil || byUser.ID != v.ID {
		t.Errorf("lookup by user mismatch: %+v", byUser)
	}

	list, err := repo.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list vendors: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 vendor, got %d", len(list))
	}
}
