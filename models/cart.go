package models

// Cart is a staged line selection prior to checkout. Rows are read by the
// checkout service and removed once the invoice commits.
type Cart struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	UserID     uint  `gorm:"index;not null" json:"userId"`
	ProductID  uint  `gorm:"index;not null" json:"productId"`
	ScheduleID *uint `gorm:"index" json:"scheduleId"`
	Quantity   int   `gorm:"not null;default:1" json:"quantity"`

	Product  *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Schedule *Schedule `gorm:"foreignKey:ScheduleID" json:"schedule,omitempty"`
}
