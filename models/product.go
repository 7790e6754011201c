package models

type ProductType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`

	Products []Product `gorm:"foreignKey:ProductTypeID" json:"-"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`

	ProductTypeID *uint        `gorm:"index" json:"productTypeId"`
	ProductType   *ProductType `gorm:"foreignKey:ProductTypeID" json:"productType,omitempty"`

	InvoiceItems []InvoiceItem `gorm:"foreignKey:ProductID" json:"-"`
}
