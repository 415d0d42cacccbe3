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

type featuredProjectRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FeaturedProjectMapper
}

func NewFeaturedProjectRepository(db *gorm.DB) contract.FeaturedProjectRepository {
	return &featuredProjectRepositoryImpl{db: db, mapper: mapper.NewFeaturedProjectMapper()}
}

func (r *featuredProjectRepositoryImpl) Create(ctx context.Context, featured *entity.FeaturedProject) error {
	if err := featured.CheckConsistency(); err != nil {
		return err
	}
	featured.Version = 1
	m := r.mapper.ToModel(featured)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*featured = *r.mapper.ToEntity(m)
	return nil
}

func (r *featuredProjectRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FeaturedProject, error) {
	var m model.FeaturedProject
	if err := applySpecs(r.db.WithContext(ctx), specs).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *featuredProjectRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FeaturedProject, error) {
	var rows []*model.FeaturedProject
	if err := applySpecs(r.db.WithContext(ctx), specs).Find(&rows).Error; err != nil {
		return nil, err
	}
	featured := make([]*entity.FeaturedProject, 0, len(rows))
	for _, row := range rows {
		featured = append(featured, r.mapper.ToEntity(row))
	}
	return featured, nil
}

func (r *featuredProjectRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	err := applySpecs(r.db.WithContext(ctx).Model(&model.FeaturedProject{}), specs).Count(&count).Error
	return count, err
}

// UpdateIfVersion asserts the is_active invariant in the same write as the
// status change.
func (r *featuredProjectRepositoryImpl) UpdateIfVersion(ctx context.Context, featured *entity.FeaturedProject) error {
	if err := featured.CheckConsistency(); err != nil {
		return err
	}
	m := r.mapper.ToModel(featured)
	m.Version = featured.Version + 1
	if err := conditionalUpdate(ctx, r.db, m, m.ID, featured.Version); err != nil {
		return err
	}
	featured.Version = m.Version
	featured.UpdatedAt = m.UpdatedAt
	return nil
}
