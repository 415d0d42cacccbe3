package contract

import (
	"context"

	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/repository/specification"
)

type VolunteerSponsorshipRepository interface {
	Create(ctx context.Context, request *entity.VolunteerSponsorship) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VolunteerSponsorship, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VolunteerSponsorship, error)
	UpdateIfVersion(ctx context.Context, request *entity.VolunteerSponsorship) error
}

type SponsorshipRepository interface {
	Create(ctx context.Context, sponsorship *entity.Sponsorship) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Sponsorship, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Sponsorship, error)
	UpdateIfVersion(ctx context.Context, sponsorship *entity.Sponsorship) error
}
