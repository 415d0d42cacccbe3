package specification

import (
	"fmt"

	"gorm.io/gorm"
)

// ByPublicID filters by the externally visible identifier
type ByPublicID struct {
	PublicID string
}

func (s ByPublicID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("public_id = ?", s.PublicID)
}

// ByPublicIDs filters by a list of public identifiers
type ByPublicIDs struct {
	PublicIDs []string
}

func (s ByPublicIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("public_id IN ?", s.PublicIDs)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}

// Page converts a 1-based page number into a Pagination.
func Page(page, limit int) Pagination {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	return Pagination{Limit: limit, Offset: (page - 1) * limit}
}

// FilterBy Generic Filter
type FilterBy struct {
	Field string
	Value interface{}
}

func (s FilterBy) Apply(db *gorm.DB) *gorm.DB {
	query := fmt.Sprintf("%s = ?", s.Field)
	return db.Where(query, s.Value)
}

func Filter(field string, value interface{}) Specification {
	return FilterBy{Field: field, Value: value}
}

// In filters a column against a set of values
type In struct {
	Field  string
	Values []string
}

func (s In) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(fmt.Sprintf("%s IN ?", s.Field), s.Values)
}

// Scoped adapts a plain gorm scope to a Specification
type Scoped func(db *gorm.DB) *gorm.DB

func (s Scoped) Apply(db *gorm.DB) *gorm.DB {
	return s(db)
}
