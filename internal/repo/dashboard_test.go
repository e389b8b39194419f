package repo

import (
	"context"
	"testing"

	"github.com/vepsplus/fieldops/internal/models"
)

func TestDashboardSummarizesOwnRowsOnly(t *testing.T) {
	conn := newTestDB(t)
	notifications := NewNotificationRepo(conn)
	dashboard := NewDashboardRepo(conn, notifications)
	ts := NewTimesheetRepo(conn)
	fuel := NewFuelRepo(conn, NewReferenceRepo(conn), 50.0)
	alice := seedUser(t, conn, "alice", "user")
	bob := seedUser(t, conn, "bob", "user")
	ctx := context.Background()

	if _, err := ts.Create(ctx, alice, timesheetInput(1, 8)); err != nil {
		t.Fatalf("timesheet 1: %v", err)
	}
	if _, err := ts.Create(ctx, alice, timesheetInput(2, 6)); err != nil {
		t.Fatalf("timesheet 2: %v", err)
	}
	if _, err := ts.Create(ctx, bob, timesheetInput(1, 12)); err != nil {
		t.Fatalf("bob timesheet: %v", err)
	}

	if _, err := fuel.Create(ctx, alice, fuelInput(1, 100)); err != nil {
		t.Fatalf("fuel 1: %v", err)
	}
	if _, err := fuel.Create(ctx, alice, fuelInput(2, 200)); err != nil {
		t.Fatalf("fuel 2: %v", err)
	}

	if _, err := notifications.Create(ctx, alice.UserID, "n1", "m", models.NotificationTypeSystem); err != nil {
		t.Fatalf("notification: %v", err)
	}

	view, errSum := dashboard.Summarize(ctx, alice)
	if errSum != nil {
		t.Fatalf("summarize: %v", errSum)
	}
	if view.TotalHours != 14 {
		t.Fatalf("expected 14 hours, got %d", view.TotalHours)
	}
	if view.TotalFuelCost != 1104.0 {
		t.Fatalf("expected fuel cost 1104.0, got %v", view.TotalFuelCost)
	}
	if view.TotalMileage != 300 {
		t.Fatalf("expected mileage 300, got %d", view.TotalMileage)
	}
	if view.UnreadNotifications != 1 {
		t.Fatalf("expected 1 unread notification, got %d", view.UnreadNotifications)
	}
}

func TestDashboardEmptyUser(t *testing.T) {
	conn := newTestDB(t)
	notifications := NewNotificationRepo(conn)
	dashboard := NewDashboardRepo(conn, notifications)
	p := seedUser(t, conn, "alice", "user")

	view, errSum := dashboard.Summarize(context.Background(), p)
	if errSum != nil {
		t.Fatalf("summarize: %v", errSum)
	}
	if view.TotalHours != 0 || view.TotalFuelCost != 0 || view.TotalMileage != 0 || view.UnreadNotifications != 0 {
		t.Fatalf("expected zero aggregates, got %+v", view)
	}
}
