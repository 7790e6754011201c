package models

type PaymentMethod struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	ImageURL string `json:"imageUrl"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}
