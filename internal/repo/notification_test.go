package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/vepsplus/fieldops/internal/models"
)

func TestNotificationOwnershipAndMarkRead(t *testing.T) {
	conn := newTestDB(t)
	notifications := NewNotificationRepo(conn)
	alice := seedUser(t, conn, "alice", "user")
	bob := seedUser(t, conn, "bob", "user")
	ctx := context.Background()

	created, errCreate := notifications.Create(ctx, alice.UserID, "Timesheet reviewed", "approved", models.NotificationTypeTimesheet)
	if errCreate != nil {
		t.Fatalf("create: %v", errCreate)
	}

	views, errList := notifications.List(ctx, bob)
	if errList != nil {
		t.Fatalf("list: %v", errList)
	}
	if len(views) != 0 {
		t.Fatalf("bob must not see alice's notifications, got %d", len(views))
	}

	if errForeign := notifications.MarkRead(ctx, bob, created.ID); !errors.Is(errForeign, ErrNotFound) {
		t.Fatalf("foreign mark-read must read as not found, got %v", errForeign)
	}

	if errRead := notifications.MarkRead(ctx, alice, created.ID); errRead != nil {
		t.Fatalf("mark read: %v", errRead)
	}
	// Marking an already-read notification is a no-op.
	if errAgain := notifications.MarkRead(ctx, alice, created.ID); errAgain != nil {
		t.Fatalf("repeat mark read: %v", errAgain)
	}

	own, errOwn := notifications.List(ctx, alice)
	if errOwn != nil {
		t.Fatalf("list own: %v", errOwn)
	}
	if len(own) != 1 || !own[0].IsRead {
		t.Fatalf("expected one read notification, got %+v", own)
	}

	unread, errCount := notifications.UnreadCount(ctx, alice.UserID)
	if errCount != nil {
		t.Fatalf("unread count: %v", errCount)
	}
	if unread != 0 {
		t.Fatalf("expected no unread notifications, got %d", unread)
	}
}

func TestNotificationListNewestFirst(t *testing.T) {
	conn := newTestDB(t)
	notifications := NewNotificationRepo(conn)
	alice := seedUser(t, conn, "alice", "user")
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if _, errCreate := notifications.Create(ctx, alice.UserID, title, "m", models.NotificationTypeSystem); errCreate != nil {
			t.Fatalf("create %s: %v", title, errCreate)
		}
	}
	views, errList := notifications.List(ctx, alice)
	if errList != nil {
		t.Fatalf("list: %v", errList)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(views))
	}
}
