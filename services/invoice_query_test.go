// services/invoice_query_test.go
package services

import (
	"errors"
	"testing"
	"time"

	"coursemart-backend/models"

	"gorm.io/gorm"
)

func seedInvoice(t *testing.T, db *gorm.DB, code string, userID, methodID uint, date time.Time, items []models.InvoiceItem) models.Invoice {
	t.Helper()
	var total float64
	for _, item := range items {
		total += item.SubTotal
	}
	invoice := models.Invoice{
		InvoiceCode:     code,
		UserID:          userID,
		Date:            date,
		TotalPrice:      total,
		TotalCourse:     len(items),
		PaymentMethodID: methodID,
		Items:           items,
	}
	if err := db.Create(&invoice).Error; err != nil {
		t.Fatalf("seed invoice %s: %v", code, err)
	}
	return invoice
}

func TestInvoicesByUser(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "budi@example.com")
	other := seedUser(t, db, "sari@example.com")
	method := seedPaymentMethod(t, db)
	product := seedProduct(t, db, "Go Fundamentals", 150000, 10)

	now := time.Now().UTC()
	older := seedInvoice(t, db, "INV-20260830-AAAA", buyer.ID, method.ID, now.Add(-48*time.Hour),
		[]models.InvoiceItem{{ProductID: product.ID, Quantity: 1, SubTotal: 150000}})
	newer := seedInvoice(t, db, "INV-20260901-BBBB", buyer.ID, method.ID, now,
		[]models.InvoiceItem{{ProductID: product.ID, Quantity: 2, SubTotal: 300000}})
	seedInvoice(t, db, "INV-20260901-CCCC", other.ID, method.ID, now,
		[]models.InvoiceItem{{ProductID: product.ID, Quantity: 1, SubTotal: 150000}})

	svc := NewInvoiceQueryService(db)
	invoices, err := svc.InvoicesByUser(buyer.ID)
	if err != nil {
		t.Fatalf("InvoicesByUser: %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("invoices = %d, want 2", len(invoices))
	}
	if invoices[0].ID != newer.ID || invoices[1].ID != older.ID {
		t.Errorf("order = [%d %d], want most recent first [%d %d]",
			invoices[0].ID, invoices[1].ID, newer.ID, older.ID)
	}
	if len(invoices[0].Items) != 1 {
		t.Errorf("items not preloaded: got %d", len(invoices[0].Items))
	}

	// Reads are idempotent: asking again returns the same result.
	again, err := svc.InvoicesByUser(buyer.ID)
	if err != nil {
		t.Fatalf("second InvoicesByUser: %v", err)
	}
	if len(again) != len(invoices) || again[0].ID != invoices[0].ID {
		t.Errorf("repeated read differs: %v vs %v", again, invoices)
	}
}

func TestInvoiceByID(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "budi@example.com")
	method := seedPaymentMethod(t, db)
	product := seedProduct(t, db, "Go Fundamentals", 150000, 10)

	created := seedInvoice(t, db, "INV-20260901-AAAA", buyer.ID, method.ID, time.Now().UTC(),
		[]models.InvoiceItem{{ProductID: product.ID, Quantity: 1, SubTotal: 150000}})

	svc := NewInvoiceQueryService(db)
	invoice, err := svc.InvoiceByID(created.ID)
	if err != nil {
		t.Fatalf("InvoiceByID: %v", err)
	}
	if invoice.InvoiceCode != "INV-20260901-AAAA" {
		t.Errorf("code = %q", invoice.InvoiceCode)
	}
	if len(invoice.Items) != 1 {
		t.Errorf("items = %d, want 1", len(invoice.Items))
	}

	_, err = svc.InvoiceByID(9999)
	var notFoundErr *NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestSearchByCode(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "budi@example.com")
	method := seedPaymentMethod(t, db)
	product := seedProduct(t, db, "Go Fundamentals", 150000, 10)

	seedInvoice(t, db, "INV-20260901-AAAA", buyer.ID, method.ID, time.Now().UTC(),
		[]models.InvoiceItem{{ProductID: product.ID, Quantity: 1, SubTotal: 150000}})

	svc := NewInvoiceQueryService(db)

	found, err := svc.SearchByCode("INV-20260901-AAAA")
	if err != nil {
		t.Fatalf("SearchByCode: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("matches = %d, want 1", len(found))
	}

	none, err := svc.SearchByCode("INV-20260901-ZZZZ")
	if err != nil {
		t.Fatalf("SearchByCode miss: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("matches = %d, want 0", len(none))
	}
}

func TestAllWithNames(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "budi@example.com")
	method := seedPaymentMethod(t, db)
	product := seedProduct(t, db, "Go Fundamentals", 150000, 10)

	now := time.Now().UTC()
	seedInvoice(t, db, "INV-20260830-AAAA", buyer.ID, method.ID, now.Add(-24*time.Hour),
		[]models.InvoiceItem{{ProductID: product.ID, Quantity: 1, SubTotal: 150000}})
	latest := seedInvoice(t, db, "INV-20260901-BBBB", buyer.ID, method.ID, now,
		[]models.InvoiceItem{{ProductID: product.ID, Quantity: 1, SubTotal: 150000}})

	svc := NewInvoiceQueryService(db)
	rows, err := svc.AllWithNames()
	if err != nil {
		t.Fatalf("AllWithNames: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].ID != latest.ID {
		t.Errorf("first row = invoice %d, want most recent %d", rows[0].ID, latest.ID)
	}
	if rows[0].Username != "budi" {
		t.Errorf("username = %q, want budi", rows[0].Username)
	}
	if rows[0].PaymentMethodName != "Bank Transfer" {
		t.Errorf("payment method name = %q", rows[0].PaymentMethodName)
	}
}

func TestItemsDetail(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "budi@example.com")
	method := seedPaymentMethod(t, db)

	courseType := models.ProductType{Name: "Course"}
	if err := db.Create(&courseType).Error; err != nil {
		t.Fatalf("seed product type: %v", err)
	}
	typed := models.Product{Name: "Go Fundamentals", Price: 150000, Stock: 10, ProductTypeID: &courseType.ID}
	if err := db.Create(&typed).Error; err != nil {
		t.Fatalf("seed typed product: %v", err)
	}
	untyped := seedProduct(t, db, "Sticker Pack", 25000, 100)
	schedule := seedSchedule(t, db, time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC))

	invoice := seedInvoice(t, db, "INV-20260901-AAAA", buyer.ID, method.ID, time.Now().UTC(),
		[]models.InvoiceItem{
			{ProductID: typed.ID, ScheduleID: uintPtr(schedule.ID), Quantity: 1, SubTotal: 150000},
			{ProductID: untyped.ID, Quantity: 2, SubTotal: 50000},
		})

	svc := NewInvoiceQueryService(db)
	rows, err := svc.ItemsDetail(invoice.ID)
	if err != nil {
		t.Fatalf("ItemsDetail: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	byProduct := make(map[uint]ItemDetail, len(rows))
	for _, row := range rows {
		byProduct[row.ProductID] = row
	}

	course := byProduct[typed.ID]
	if course.ProductName != "Go Fundamentals" || course.ProductTypeName != "Course" {
		t.Errorf("joined names = %q / %q", course.ProductName, course.ProductTypeName)
	}
	if course.ScheduleTime == nil || !course.ScheduleTime.Equal(schedule.Time) {
		t.Errorf("schedule time = %v, want %v", course.ScheduleTime, schedule.Time)
	}

	sticker := byProduct[untyped.ID]
	if sticker.ProductTypeName != "" {
		t.Errorf("untyped product type name = %q, want empty", sticker.ProductTypeName)
	}
	if sticker.ScheduleTime != nil {
		t.Errorf("schedule time = %v, want nil", sticker.ScheduleTime)
	}
}

func TestUpcomingSchedules(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "budi@example.com")
	other := seedUser(t, db, "sari@example.com")
	method := seedPaymentMethod(t, db)
	product := seedProduct(t, db, "Go Fundamentals", 150000, 10)

	now := time.Now().UTC()
	past := seedSchedule(t, db, now.Add(-48*time.Hour))
	tomorrow := seedSchedule(t, db, now.Add(24*time.Hour))
	nextWeek := seedSchedule(t, db, now.Add(7*24*time.Hour))

	seedInvoice(t, db, "INV-20260901-AAAA", buyer.ID, method.ID, now,
		[]models.InvoiceItem{
			{ProductID: product.ID, ScheduleID: uintPtr(past.ID), Quantity: 1, SubTotal: 150000},
			{ProductID: product.ID, ScheduleID: uintPtr(nextWeek.ID), Quantity: 1, SubTotal: 150000},
			{ProductID: product.ID, ScheduleID: uintPtr(tomorrow.ID), Quantity: 1, SubTotal: 150000},
			{ProductID: product.ID, Quantity: 1, SubTotal: 150000},
		})
	seedInvoice(t, db, "INV-20260901-BBBB", other.ID, method.ID, now,
		[]models.InvoiceItem{
			{ProductID: product.ID, ScheduleID: uintPtr(tomorrow.ID), Quantity: 1, SubTotal: 150000},
		})

	svc := NewInvoiceQueryService(db)
	rows, err := svc.UpcomingSchedules(buyer.ID)
	if err != nil {
		t.Fatalf("UpcomingSchedules: %v", err)
	}

	// Past sessions and schedule-less items fall out; soonest comes first.
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].ScheduleID == nil || *rows[0].ScheduleID != tomorrow.ID {
		t.Errorf("first row schedule = %v, want %d", rows[0].ScheduleID, tomorrow.ID)
	}
	if rows[1].ScheduleID == nil || *rows[1].ScheduleID != nextWeek.ID {
		t.Errorf("second row schedule = %v, want %d", rows[1].ScheduleID, nextWeek.ID)
	}
}
