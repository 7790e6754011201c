package models

import (
	"time"

	"coursemart-backend/utils"

	"gorm.io/gorm"
)

const (
	RoleAdmin = 1
	RoleUser  = 2
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Phone    string `json:"phone"`
	RoleID   int    `gorm:"default:2" json:"roleId"`

	EmailVerified      bool       `gorm:"default:false" json:"emailVerified"`
	VerificationToken  string     `gorm:"index" json:"-"`
	VerificationExpiry *time.Time `json:"-"`
	ResetToken         string     `gorm:"index" json:"-"`
	ResetExpiry        *time.Time `json:"-"`

	LastLogin *time.Time `json:"lastLogin"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`

	Invoices []Invoice `gorm:"foreignKey:UserID" json:"-"`
	Carts    []Cart    `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Hash the password before the row is written
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

func (u *User) IsAdmin() bool {
	return u.RoleID == RoleAdmin
}
