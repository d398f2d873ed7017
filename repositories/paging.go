package repositories

import (
	"strings"

	"gorm.io/gorm"
)

const defaultLimit = 100

// paginate applies skip/limit with the default page size.
func paginate(skip, limit int) func(*gorm.DB) *gorm.DB {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Offset(skip).Limit(limit)
	}
}

// textSearch builds a case-insensitive LIKE filter across fields.
func textSearch(tx *gorm.DB, query string, fields ...string) *gorm.DB {
	pattern := "%" + strings.ToLower(query) + "%"
	conds := make([]string, len(fields))
	args := make([]interface{}, len(fields))
	for i, f := range fields {
		conds[i] = "LOWER(" + f + ") LIKE ?"
		args[i] = pattern
	}
	return tx.Where(strings.Join(conds, " OR "), args...)
}
