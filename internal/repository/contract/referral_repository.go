package contract

import (
	"context"

	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/repository/specification"
)

type ReferralRepository interface {
	// Create returns gorm.ErrDuplicatedKey when the ordered pair exists.
	Create(ctx context.Context, referral *entity.Referral) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Referral, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Referral, error)
	UpdateIfVersion(ctx context.Context, referral *entity.Referral) error
}
