package models

import (
	"time"
)

type Invoice struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	InvoiceCode string    `gorm:"uniqueIndex;not null" json:"invoiceCode"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	Date        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"date"`

	TotalPrice  float64 `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	TotalCourse int     `gorm:"not null" json:"totalCourse"`

	PaymentMethodID uint           `gorm:"index;not null" json:"paymentMethodId"`
	PaymentMethod   *PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"paymentMethod,omitempty"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
}

type InvoiceItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	InvoiceID  uint    `gorm:"index;not null" json:"invoiceId"`
	ProductID  uint    `gorm:"index;not null" json:"productId"`
	ScheduleID *uint   `gorm:"index" json:"scheduleId"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	SubTotal   float64 `gorm:"type:decimal(10,2);not null" json:"subTotal"`

	Product  *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Schedule *Schedule `gorm:"foreignKey:ScheduleID" json:"schedule,omitempty"`
}

// ItemTotal sums the stored sub totals. It should reconcile with TotalPrice
// for any committed invoice.
func (i *Invoice) ItemTotal() float64 {
	var total float64
	for _, item := range i.Items {
		total += item.SubTotal
	}
	return total
}
