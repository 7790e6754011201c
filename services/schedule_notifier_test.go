// services/schedule_notifier_test.go
package services

import (
	"testing"
	"time"

	"coursemart-backend/models"
)

func TestUpcomingSessions(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "budi@example.com")
	method := seedPaymentMethod(t, db)
	product := seedProduct(t, db, "Go Fundamentals", 150000, 10)

	now := time.Now().UTC()
	soon := seedSchedule(t, db, now.Add(12*time.Hour))
	alsoSoon := seedSchedule(t, db, now.Add(18*time.Hour))
	farOff := seedSchedule(t, db, now.Add(48*time.Hour))
	past := seedSchedule(t, db, now.Add(-12*time.Hour))

	invoice := seedInvoice(t, db, "INV-20260901-AAAA", buyer.ID, method.ID, now,
		[]models.InvoiceItem{
			{ProductID: product.ID, ScheduleID: uintPtr(soon.ID), Quantity: 1, SubTotal: 150000},
			{ProductID: product.ID, ScheduleID: uintPtr(alsoSoon.ID), Quantity: 1, SubTotal: 150000},
			{ProductID: product.ID, ScheduleID: uintPtr(farOff.ID), Quantity: 1, SubTotal: 150000},
			{ProductID: product.ID, ScheduleID: uintPtr(past.ID), Quantity: 1, SubTotal: 150000},
		})

	// The item for the second session was already reminded; the failed log
	// on the first one must not suppress a retry.
	var items []models.InvoiceItem
	if err := db.Where("invoice_id = ?", invoice.ID).Order("id").Find(&items).Error; err != nil {
		t.Fatalf("load items: %v", err)
	}
	logs := []models.NotificationLog{
		{UserID: buyer.ID, InvoiceItemID: items[1].ID, Channel: "sms", Status: "sent", SentAt: now},
		{UserID: buyer.ID, InvoiceItemID: items[0].ID, Channel: "sms", Status: "failed", SentAt: now},
	}
	if err := db.Create(&logs).Error; err != nil {
		t.Fatalf("seed notification logs: %v", err)
	}

	notifier := &ScheduleNotifier{db: db}
	sessions, err := notifier.upcomingSessions()
	if err != nil {
		t.Fatalf("upcomingSessions: %v", err)
	}

	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	got := sessions[0]
	if got.ItemID != items[0].ID {
		t.Errorf("item = %d, want %d (first session, failed log)", got.ItemID, items[0].ID)
	}
	if got.Username != "budi" || got.Email != "budi@example.com" {
		t.Errorf("joined user = %q / %q", got.Username, got.Email)
	}
	if got.ProductName != "Go Fundamentals" {
		t.Errorf("product name = %q", got.ProductName)
	}
	if !got.ScheduleTime.Equal(soon.Time) {
		t.Errorf("schedule time = %v, want %v", got.ScheduleTime, soon.Time)
	}
}
