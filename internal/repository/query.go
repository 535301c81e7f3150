package repository

import (
	"errors"

	"gorm.io/gorm"
)

// paginate 分页 scope，pageSize 非正数时不分页，page 小于 1 视为第一页
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		return db.Limit(pageSize).Offset((max(page, 1) - 1) * pageSize)
	}
}

// findPage 先统计总数再按顺序取出当前页
func findPage[T any](query *gorm.DB, page, pageSize int, order string) ([]T, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := make([]T, 0)
	if total == 0 {
		return items, 0, nil
	}
	if err := query.Scopes(paginate(page, pageSize)).Order(order).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// firstOrNil 取第一条记录，未找到时返回 (nil, nil)
func firstOrNil[T any](query *gorm.DB) (*T, error) {
	var item T
	if err := query.Take(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}
