package persistence

import (
	"fmt"
	"strings"

	"github.com/projops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applySearch applies the filter's search term as a case-insensitive match
// over the given columns.
func applySearch(query *gorm.DB, filter shared.Filter, searchColumns ...string) *gorm.DB {
	if filter.Search == "" || len(searchColumns) == 0 {
		return query
	}

	clauses := make([]string, len(searchColumns))
	args := make([]interface{}, len(searchColumns))
	pattern := "%" + strings.ToLower(filter.Search) + "%"
	for i, col := range searchColumns {
		clauses[i] = fmt.Sprintf("LOWER(%s) LIKE ?", col)
		args[i] = pattern
	}
	return query.Where(strings.Join(clauses, " OR "), args...)
}

// applyFilter applies search, ordering and pagination from the filter
func applyFilter(query *gorm.DB, filter shared.Filter, searchColumns ...string) *gorm.DB {
	query = applySearch(query, filter, searchColumns...)

	if filter.OrderBy != "" {
		dir := "ASC"
		if strings.EqualFold(filter.OrderDir, "desc") {
			dir = "DESC"
		}
		query = query.Order(fmt.Sprintf("%s %s", filter.OrderBy, dir))
	} else {
		query = query.Order("created_at DESC")
	}

	if filter.PageSize > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.PageSize
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}
