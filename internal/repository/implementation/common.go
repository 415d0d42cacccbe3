package implementation

import (
	"context"
	"errors"

	"volunteer-marketplace-be/internal/repository/contract"
	"volunteer-marketplace-be/internal/repository/specification"

	"gorm.io/gorm"
)

func applySpecs(db *gorm.DB, specs []specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// conditionalUpdate writes every column of row, but only if the stored row
// still carries expectedVersion. row must already hold the bumped version.
func conditionalUpdate(ctx context.Context, db *gorm.DB, row interface{}, id uint, expectedVersion int) error {
	result := db.WithContext(ctx).
		Model(row).
		Where("id = ? AND version = ?", id, expectedVersion).
		Select("*").
		Omit("id", "public_id", "created_at").
		Updates(row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return contract.ErrStaleVersion
	}
	return nil
}
