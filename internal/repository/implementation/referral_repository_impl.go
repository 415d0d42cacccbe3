package implementation

import (
	"context"

	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/mapper"
	"volunteer-marketplace-be/internal/model"
	"volunteer-marketplace-be/internal/repository/contract"
	"volunteer-marketplace-be/internal/repository/specification"

	"gorm.io/gorm"
)

type referralRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReferralMapper
}

func NewReferralRepository(db *gorm.DB) contract.ReferralRepository {
	return &referralRepositoryImpl{db: db, mapper: mapper.NewReferralMapper()}
}

func (r *referralRepositoryImpl) Create(ctx context.Context, referral *entity.Referral) error {
	referral.Version = 1
	m, err := r.mapper.ToModel(referral)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	referral.Id = m.ID
	referral.CreatedAt = m.CreatedAt
	referral.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *referralRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Referral, error) {
	var m model.Referral
	if err := applySpecs(r.db.WithContext(ctx), specs).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *referralRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Referral, error) {
	var rows []*model.Referral
	if err := applySpecs(r.db.WithContext(ctx), specs).Find(&rows).Error; err != nil {
		return nil, err
	}
	referrals := make([]*entity.Referral, 0, len(rows))
	for _, row := range rows {
		referral, err := r.mapper.ToEntity(row)
		if err != nil {
			return nil, err
		}
		referrals = append(referrals, referral)
	}
	return referrals, nil
}

func (r *referralRepositoryImpl) UpdateIfVersion(ctx context.Context, referral *entity.Referral) error {
	m, err := r.mapper.ToModel(referral)
	if err != nil {
		return err
	}
	m.Version = referral.Version + 1
	if err := conditionalUpdate(ctx, r.db, m, m.ID, referral.Version); err != nil {
		return err
	}
	referral.Version = m.Version
	referral.UpdatedAt = m.UpdatedAt
	return nil
}
