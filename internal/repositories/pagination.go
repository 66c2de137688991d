package repositories

import "gorm.io/gorm"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// normalizePage clamps page/limit to sane values shared by all list queries.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	return page, limit
}

// paginate is a GORM scope applying offset/limit pagination.
func paginate(page, limit int) func(db *gorm.DB) *gorm.DB {
	page, limit = normalizePage(page, limit)
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * limit).Limit(limit)
	}
}
