// services/checkout.go
package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"coursemart-backend/models"
	"coursemart-backend/utils"

	"gorm.io/gorm"
)

// CheckoutLine is one requested product (optionally against a schedule slot).
type CheckoutLine struct {
	ProductID  uint  `json:"productId" binding:"required"`
	ScheduleID *uint `json:"scheduleId"`
	Quantity   int   `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest is the full input for one checkout commit.
type CheckoutRequest struct {
	// UserID comes from the session token at the HTTP boundary; a value in
	// the body is ignored there.
	UserID          uint           `json:"userId"`
	PaymentMethodID uint           `json:"paymentMethodId" binding:"required"`
	Lines           []CheckoutLine `json:"lines" binding:"required,min=1,dive"`
}

// CheckoutService converts a checkout request into a durable invoice while
// atomically enforcing stock sufficiency. Either the invoice, all its items
// and all stock decrements commit together, or nothing does.
type CheckoutService struct {
	db *gorm.DB

	// newCode is swappable so tests can force invoice-code collisions.
	newCode        func() string
	maxCodeRetries int
}

func NewCheckoutService(db *gorm.DB) *CheckoutService {
	return &CheckoutService{
		db:             db,
		newCode:        utils.GenerateInvoiceCode,
		maxCodeRetries: 3,
	}
}

// CreateInvoice commits the requested lines as one invoice.
func (s *CheckoutService) CreateInvoice(ctx context.Context, req CheckoutRequest) (*models.Invoice, error) {
	return s.create(ctx, req, false)
}

// CheckoutCart commits the user's staged cart as one invoice and clears the
// cart inside the same transaction.
func (s *CheckoutService) CheckoutCart(ctx context.Context, userID, paymentMethodID uint) (*models.Invoice, error) {
	var carts []models.Cart
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&carts).Error; err != nil {
		return nil, &PersistenceError{Op: "cart read", Err: err}
	}
	if len(carts) == 0 {
		return nil, &ValidationError{Message: "cart is empty"}
	}

	req := CheckoutRequest{UserID: userID, PaymentMethodID: paymentMethodID}
	for _, cart := range carts {
		req.Lines = append(req.Lines, CheckoutLine{
			ProductID:  cart.ProductID,
			ScheduleID: cart.ScheduleID,
			Quantity:   cart.Quantity,
		})
	}

	return s.create(ctx, req, true)
}

func (s *CheckoutService) create(ctx context.Context, req CheckoutRequest, clearCart bool) (*models.Invoice, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", req.UserID, true).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "user", Key: req.UserID}
		}
		return nil, &PersistenceError{Op: "user lookup", Err: err}
	}

	var method models.PaymentMethod
	if err := s.db.WithContext(ctx).First(&method, "id = ?", req.PaymentMethodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "payment method", Key: req.PaymentMethodID}
		}
		return nil, &PersistenceError{Op: "payment method lookup", Err: err}
	}

	products, err := s.loadProducts(ctx, req.Lines)
	if err != nil {
		return nil, err
	}
	if err := s.checkSchedules(ctx, req.Lines); err != nil {
		return nil, err
	}

	// Fixed processing order keeps concurrent checkouts from acquiring row
	// locks in conflicting orders.
	lines := make([]CheckoutLine, len(req.Lines))
	copy(lines, req.Lines)
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

	var lastErr error
	for attempt := 0; attempt < s.maxCodeRetries; attempt++ {
		invoice := buildInvoice(req, lines, products, s.newCode())

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// Inserts the header and all items in one go; a duplicate
			// invoice_code surfaces as gorm.ErrDuplicatedKey here.
			if err := tx.Create(invoice).Error; err != nil {
				return err
			}

			for _, item := range invoice.Items {
				res := tx.Model(&models.Product{}).
					Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
					UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
				if res.Error != nil {
					return res.Error
				}
				// Zero rows means the guard failed: stock ran out between
				// the pre-read and now. Abort the whole checkout.
				if res.RowsAffected == 0 {
					return &InsufficientStockError{ProductID: item.ProductID}
				}
			}

			if clearCart {
				if err := tx.Where("user_id = ?", req.UserID).Delete(&models.Cart{}).Error; err != nil {
					return err
				}
			}

			return nil
		})

		if err == nil {
			return invoice, nil
		}

		var stockErr *InsufficientStockError
		if errors.As(err, &stockErr) {
			return nil, stockErr
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Code collision: draw a fresh code and retry the whole commit.
			lastErr = err
			continue
		}
		return nil, &PersistenceError{Op: "checkout transaction", Err: err}
	}

	return nil, &PersistenceError{Op: "invoice code generation", Err: lastErr}
}

// DeleteInvoice is the administrative removal path: the invoice and its items
// go together in one transaction. Stock is not restored.
func (s *CheckoutService) DeleteInvoice(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&invoice).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "invoice", Key: id}
		}
		return &PersistenceError{Op: "invoice delete", Err: err}
	}
	return nil
}

func validateRequest(req CheckoutRequest) error {
	if req.UserID == 0 {
		return &ValidationError{Message: "userId is required"}
	}
	if req.PaymentMethodID == 0 {
		return &ValidationError{Message: "paymentMethodId is required"}
	}
	if len(req.Lines) == 0 {
		return &ValidationError{Message: "at least one line is required"}
	}
	for _, line := range req.Lines {
		if line.ProductID == 0 {
			return &ValidationError{Message: "every line needs a productId"}
		}
		if line.Quantity < 1 {
			return &ValidationError{Message: "every line needs a positive quantity"}
		}
	}
	return nil
}

// loadProducts resolves every referenced product for pricing. Stock is NOT
// trusted from this read; the guarded decrement inside the transaction is the
// authoritative check.
func (s *CheckoutService) loadProducts(ctx context.Context, lines []CheckoutLine) (map[uint]models.Product, error) {
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, &PersistenceError{Op: "product lookup", Err: err}
	}

	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, line := range lines {
		if _, ok := byID[line.ProductID]; !ok {
			return nil, &NotFoundError{Resource: "product", Key: line.ProductID}
		}
	}
	return byID, nil
}

func (s *CheckoutService) checkSchedules(ctx context.Context, lines []CheckoutLine) error {
	for _, line := range lines {
		if line.ScheduleID == nil {
			continue
		}
		var schedule models.Schedule
		if err := s.db.WithContext(ctx).First(&schedule, "id = ?", *line.ScheduleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "schedule", Key: *line.ScheduleID}
			}
			return &PersistenceError{Op: "schedule lookup", Err: err}
		}
	}
	return nil
}

func buildInvoice(req CheckoutRequest, lines []CheckoutLine, products map[uint]models.Product, code string) *models.Invoice {
	items := make([]models.InvoiceItem, 0, len(lines))
	var total float64
	for _, line := range lines {
		product := products[line.ProductID]
		subTotal := product.Price * float64(line.Quantity)
		total += subTotal
		items = append(items, models.InvoiceItem{
			ProductID:  line.ProductID,
			ScheduleID: line.ScheduleID,
			Quantity:   line.Quantity,
			SubTotal:   subTotal,
		})
	}

	return &models.Invoice{
		InvoiceCode:     code,
		UserID:          req.UserID,
		Date:            time.Now().UTC(),
		TotalPrice:      total,
		TotalCourse:     len(items),
		PaymentMethodID: req.PaymentMethodID,
		Items:           items,
	}
}
