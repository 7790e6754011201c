package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"coursemart-backend/config"
	"coursemart-backend/models"
	"coursemart-backend/services"
	"coursemart-backend/utils"

	"github.com/gin-gonic/gin"
)

// checkoutTimeout bounds one checkout transaction end to end. On expiry the
// transaction is rolled back, never left open.
const checkoutTimeout = 15 * time.Second

type CheckoutCartInput struct {
	PaymentMethodID uint `json:"paymentMethodId" binding:"required"`
}

// CreateInvoice commits a direct line-item checkout.
func CreateInvoice(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	req.UserID = userID.(uint)

	ctx, cancel := context.WithTimeout(c.Request.Context(), checkoutTimeout)
	defer cancel()

	invoice, err := services.NewCheckoutService(config.DB).CreateInvoice(ctx, req)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	go sendOrderConfirmation(invoice)

	c.JSON(http.StatusCreated, gin.H{"invoiceId": invoice.ID, "invoice": invoice})
}

// CheckoutCart commits the caller's staged cart as one invoice.
func CheckoutCart(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CheckoutCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), checkoutTimeout)
	defer cancel()

	invoice, err := services.NewCheckoutService(config.DB).
		CheckoutCart(ctx, userID.(uint), input.PaymentMethodID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	go sendOrderConfirmation(invoice)

	c.JSON(http.StatusCreated, gin.H{"invoiceId": invoice.ID, "invoice": invoice})
}

// respondCheckoutError maps the checkout error taxonomy onto HTTP codes.
// PersistenceError details stay server-side.
func respondCheckoutError(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		stockErr      *services.InsufficientStockError
		persistErr    *services.PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.RespondWithError(c, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &notFoundErr):
		utils.RespondWithError(c, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &stockErr):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":     "insufficient stock",
			"productId": stockErr.ProductID,
		})
	case errors.As(err, &persistErr):
		log.Printf("Checkout failed: %v", persistErr)
		utils.RespondWithError(c, http.StatusInternalServerError, "Checkout failed")
	default:
		log.Printf("Checkout failed with unexpected error: %v", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Checkout failed")
	}
}

// sendOrderConfirmation mails the receipt for a committed invoice. Delivery
// failure is logged and never affects the invoice.
func sendOrderConfirmation(invoice *models.Invoice) {
	var user models.User
	if err := config.DB.First(&user, "id = ?", invoice.UserID).Error; err != nil {
		log.Printf("Order confirmation skipped: user %d not found: %v", invoice.UserID, err)
		return
	}
	services.NewEmailService().SendOrderConfirmationEmail(
		user.Email, user.Username, invoice.InvoiceCode, invoice.TotalPrice)
}

// GetInvoicesByUser lists a user's invoices, most recent first.
func GetInvoicesByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	invoices, err := services.NewInvoiceQueryService(config.DB).InvoicesByUser(uint(userID))
	if err != nil {
		log.Printf("Invoice list failed for user %d: %v", userID, err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice returns one invoice with its items.
func GetInvoice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	invoice, err := services.NewInvoiceQueryService(config.DB).InvoiceByID(uint(id))
	if err != nil {
		var notFoundErr *services.NotFoundError
		if errors.As(err, &notFoundErr) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			log.Printf("Invoice read failed for %d: %v", id, err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// GetInvoiceItems returns an invoice's lines joined with display data.
func GetInvoiceItems(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	items, err := services.NewInvoiceQueryService(config.DB).ItemsDetail(uint(id))
	if err != nil {
		log.Printf("Invoice items read failed for %d: %v", id, err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoice items")
		return
	}

	c.JSON(http.StatusOK, items)
}

// SearchInvoices finds invoices by human-readable code.
func SearchInvoices(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Query parameter 'code' required")
		return
	}

	invoices, err := services.NewInvoiceQueryService(config.DB).SearchByCode(code)
	if err != nil {
		log.Printf("Invoice search failed for code %q: %v", code, err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to search invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetAllInvoices lists every invoice with buyer and payment-method names.
// Admin only.
func GetAllInvoices(c *gin.Context) {
	rows, err := services.NewInvoiceQueryService(config.DB).AllWithNames()
	if err != nil {
		log.Printf("Invoice list with names failed: %v", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, rows)
}

// GetUpcomingSchedules returns a user's purchased sessions from today onward.
func GetUpcomingSchedules(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	rows, err := services.NewInvoiceQueryService(config.DB).UpcomingSchedules(uint(userID))
	if err != nil {
		log.Printf("Upcoming schedules failed for user %d: %v", userID, err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve upcoming schedules")
		return
	}

	c.JSON(http.StatusOK, rows)
}

// DeleteInvoice removes an invoice and its items. Admin only.
func DeleteInvoice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	if err := services.NewCheckoutService(config.DB).DeleteInvoice(c.Request.Context(), uint(id)); err != nil {
		var notFoundErr *services.NotFoundError
		if errors.As(err, &notFoundErr) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			log.Printf("Invoice delete failed for %d: %v", id, err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}
