package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/kedarbajaj/CargoMate-sub000/internal/testutil"
	"github.com/kedarbajaj/CargoMate-sub000/models"
)

func TestNotificationCreateAndList(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "repo_notes")
	repo := NewNotificationRepository(d)
	users := NewUserRepository(d)
	ctx := context.Background()

	alice, err := users.Create(ctx, "alice", "", models.RoleCustomer)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	admin, err := users.Create(ctx, "root", "", models.RoleAdmin)
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}

	if _, err := repo.Create(ctx, &models.Notification{UserID: &alice.ID, Message: "delivery accepted"}); err != nil {
		t.Fatalf("create targeted notification: %v", err)
	}
	// NULL target: broadcast to admins as a class.
	if _, err := repo.Create(ctx, &models.Notification{Message: "new delivery scheduled"}); err != nil {
		t.Fatalf("create broadcast notification: %v", err)
	}

	aliceNotes, err := repo.ListByUserID(ctx, alice.ID, false)
	if err != nil {
		t.Fatalf("list alice notifications: %v", err)
	}
	if len(aliceNotes) != 1 {
		t.Fatalf("alice should see 1 notification, got %d", len(aliceNotes))
	}
	if aliceNotes[0].Status != models.NotificationStatusUnread {
		t.Errorf("new notification should be unread, got %s", aliceNotes[0].Status)
	}

	adminNotes, err := repo.ListByUserID(ctx, admin.ID, true)
	if err != nil {
		t.Fatalf("list admin notifications: %v", err)
	}
	if len(adminNotes) != 1 {
		t.Fatalf("admin should see the broadcast, got %d", len(adminNotes))
	}
	if adminNotes[0].UserID != nil {
		t.Errorf("broadcast row should have nil user_id")
	}
}

func TestNotificationMarkRead(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "repo_notes_read")
	repo := NewNotificationRepository(d)
	users := NewUserRepository(d)
	ctx := context.Background()

	alice, err := users.Create(ctx, "alice", "", models.RoleCustomer)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	n, err := repo.Create(ctx, &models.Notification{UserID: &alice.ID, Message: "hello"})
	if err != nil {
		t.Fatalf("create notification: %v", err)
	}

	// Wrong owner cannot flip it.
	if err := repo.MarkRead(ctx, n.ID, alice.ID+1); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for wrong owner, got %v", err)
	}

	if err := repo.MarkRead(ctx, n.ID, alice.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	notes, _ := repo.ListByUserID(ctx, alice.ID, false)
	if len(notes) != 1 || notes[0].Status != models.NotificationStatusRead {
		t.Errorf("notification should be read: %+v", notes)
	}
}
