package repository

import "gorm.io/gorm"

// applyPagination 追加 limit/offset；pageSize<=0 表示不分页，页码非法时回退首页
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
