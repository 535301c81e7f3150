package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID               string         `gorm:"primarykey;type:varchar(64)" json:"id"`
	Title            string         `gorm:"type:varchar(255);not null" json:"title"`
	Description      string         `gorm:"type:text" json:"description"`
	ShortDescription string         `gorm:"type:varchar(500)" json:"short_description"`
	Price            Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	OldPrice         *Money         `gorm:"type:decimal(20,2)" json:"old_price"`
	Images           StringArray    `gorm:"type:json" json:"images"`
	MainImage        string         `gorm:"type:varchar(500)" json:"main_image"`
	IsNew            bool           `gorm:"default:false;index" json:"is_new"`
	Discount         bool           `gorm:"default:false" json:"discount"`
	StockQuantity    int            `gorm:"not null;default:0" json:"stock_quantity"`
	Specifications   StringMap      `gorm:"type:json" json:"specifications"`
	Options          OptionGroups   `gorm:"type:json" json:"options"`
	Category         string         `gorm:"type:varchar(100);index" json:"category"`
	Tags             StringArray    `gorm:"type:json" json:"tags"`
	SKU              string         `gorm:"type:varchar(100);index" json:"sku"`
	IsActive         bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// InStock 是否有货
func (p *Product) InStock() bool {
	return p != nil && p.StockQuantity > 0
}
