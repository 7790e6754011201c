package models

import "time"

// Schedule is a bookable session slot a product can be purchased against.
type Schedule struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	Time time.Time `gorm:"index;not null" json:"time"`
}
