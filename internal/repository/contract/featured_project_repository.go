package contract

import (
	"context"

	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/repository/specification"
)

type FeaturedProjectRepository interface {
	Create(ctx context.Context, featured *entity.FeaturedProject) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FeaturedProject, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FeaturedProject, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	UpdateIfVersion(ctx context.Context, featured *entity.FeaturedProject) error
}
