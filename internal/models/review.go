package models

import (
	"time"
)

const (
	// ReviewTypeText 文字评价
	ReviewTypeText = "text"
	// ReviewTypeVideo 视频评价
	ReviewTypeVideo = "video"
)

// Review 商品评价表
type Review struct {
	ID          string    `gorm:"primarykey;type:varchar(64)" json:"id"`
	ProductID   string    `gorm:"type:varchar(64);not null;index:idx_review_product_email" json:"product_id"`
	UserID      *uint     `gorm:"index" json:"user_id"`
	Type        string    `gorm:"type:varchar(20);not null;default:'text'" json:"type"`
	Rating      int       `gorm:"not null" json:"rating"`
	Comment     string    `gorm:"type:text" json:"comment"`
	VideoURL    string    `gorm:"type:varchar(500)" json:"video_url"`
	AuthorName  string    `gorm:"type:varchar(100);not null" json:"author_name"`
	AuthorEmail string    `gorm:"type:varchar(255);not null;index:idx_review_product_email" json:"-"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
