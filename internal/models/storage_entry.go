package models

import "time"

// StorageEntry 键值持久化表，供服务端的购物车等状态容器使用
type StorageEntry struct {
	Key       string    `gorm:"primarykey;type:varchar(191)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"index"`
}

// TableName 指定表名
func (StorageEntry) TableName() string {
	return "storage_entries"
}
