// services/invoice_query.go
package services

import (
	"errors"
	"time"

	"coursemart-backend/models"
	"coursemart-backend/utils"

	"gorm.io/gorm"
)

// InvoiceQueryService is the read side of invoices: lists, detail joins and
// the upcoming-schedule digest. It never writes.
type InvoiceQueryService struct {
	db *gorm.DB
}

func NewInvoiceQueryService(db *gorm.DB) *InvoiceQueryService {
	return &InvoiceQueryService{db: db}
}

// InvoiceSummary is an invoice row joined with display names.
type InvoiceSummary struct {
	ID                uint      `json:"id"`
	InvoiceCode       string    `json:"invoiceCode"`
	Date              time.Time `json:"date"`
	TotalPrice        float64   `json:"totalPrice"`
	TotalCourse       int       `json:"totalCourse"`
	UserID            uint      `json:"userId"`
	Username          string    `json:"username"`
	PaymentMethodID   uint      `json:"paymentMethodId"`
	PaymentMethodName string    `json:"paymentMethodName"`
}

// ItemDetail is one purchased line joined with product and schedule data.
type ItemDetail struct {
	ID              uint       `json:"id"`
	InvoiceID       uint       `json:"invoiceId"`
	ProductID       uint       `json:"productId"`
	ProductName     string     `json:"productName"`
	ProductPrice    float64    `json:"productPrice"`
	ProductTypeName string     `json:"productTypeName"`
	ProductImageURL string     `json:"productImageUrl"`
	Quantity        int        `json:"quantity"`
	SubTotal        float64    `json:"subTotal"`
	ScheduleID      *uint      `json:"scheduleId"`
	ScheduleTime    *time.Time `json:"scheduleTime"`
}

// InvoicesByUser returns a user's invoices, most recent first, items included.
func (s *InvoiceQueryService) InvoicesByUser(userID uint) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, &PersistenceError{Op: "invoice list", Err: err}
	}
	return invoices, nil
}

// InvoiceByID fetches one invoice with its items.
func (s *InvoiceQueryService) InvoiceByID(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.Preload("Items").First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "invoice", Key: id}
		}
		return nil, &PersistenceError{Op: "invoice read", Err: err}
	}
	return &invoice, nil
}

// SearchByCode finds invoices matching a human-readable code.
func (s *InvoiceQueryService) SearchByCode(code string) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.Preload("Items").Where("invoice_code = ?", code).Find(&invoices).Error
	if err != nil {
		return nil, &PersistenceError{Op: "invoice search", Err: err}
	}
	return invoices, nil
}

// AllWithNames lists every invoice joined with the buyer and payment method
// names for admin display, most recent first.
func (s *InvoiceQueryService) AllWithNames() ([]InvoiceSummary, error) {
	var rows []InvoiceSummary
	err := s.db.Model(&models.Invoice{}).
		Select(`invoices.id, invoices.invoice_code, invoices.date,
			invoices.total_price, invoices.total_course, invoices.user_id,
			users.username AS username,
			invoices.payment_method_id,
			payment_methods.name AS payment_method_name`).
		Joins("JOIN users ON users.id = invoices.user_id").
		Joins("JOIN payment_methods ON payment_methods.id = invoices.payment_method_id").
		Order("invoices.date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, &PersistenceError{Op: "invoice list with names", Err: err}
	}
	return rows, nil
}

// ItemsDetail returns an invoice's lines joined with product, type and
// schedule display data.
func (s *InvoiceQueryService) ItemsDetail(invoiceID uint) ([]ItemDetail, error) {
	var rows []ItemDetail
	err := s.db.Model(&models.InvoiceItem{}).
		Select(`invoice_items.id, invoice_items.invoice_id,
			invoice_items.product_id, invoice_items.quantity, invoice_items.sub_total,
			invoice_items.schedule_id,
			products.name AS product_name,
			products.price AS product_price,
			products.image_url AS product_image_url,
			product_types.name AS product_type_name,
			schedules.time AS schedule_time`).
		Joins("JOIN products ON products.id = invoice_items.product_id").
		Joins("LEFT JOIN product_types ON product_types.id = products.product_type_id").
		Joins("LEFT JOIN schedules ON schedules.id = invoice_items.schedule_id").
		Where("invoice_items.invoice_id = ?", invoiceID).
		Scan(&rows).Error
	if err != nil {
		return nil, &PersistenceError{Op: "invoice items detail", Err: err}
	}
	return rows, nil
}

// UpcomingSchedules returns a user's purchased sessions from today onward,
// soonest first.
func (s *InvoiceQueryService) UpcomingSchedules(userID uint) ([]ItemDetail, error) {
	today := utils.BeginningOfDay(time.Now().UTC())

	var rows []ItemDetail
	err := s.db.Model(&models.InvoiceItem{}).
		Select(`invoice_items.id, invoice_items.invoice_id,
			invoice_items.product_id, invoice_items.quantity, invoice_items.sub_total,
			invoice_items.schedule_id,
			products.name AS product_name,
			products.price AS product_price,
			products.image_url AS product_image_url,
			product_types.name AS product_type_name,
			schedules.time AS schedule_time`).
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id AND invoices.user_id = ?", userID).
		Joins("JOIN products ON products.id = invoice_items.product_id").
		Joins("LEFT JOIN product_types ON product_types.id = products.product_type_id").
		Joins("JOIN schedules ON schedules.id = invoice_items.schedule_id").
		Where("schedules.time >= ?", today).
		Order("schedules.time ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, &PersistenceError{Op: "upcoming schedules", Err: err}
	}
	return rows, nil
}
