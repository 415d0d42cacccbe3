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

type volunteerSponsorshipRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SponsorshipMapper
}

func NewVolunteerSponsorshipRepository(db *gorm.DB) contract.VolunteerSponsorshipRepository {
	return &volunteerSponsorshipRepositoryImpl{db: db, mapper: mapper.NewSponsorshipMapper()}
}

func (r *volunteerSponsorshipRepositoryImpl) Create(ctx context.Context, request *entity.VolunteerSponsorship) error {
	request.Version = 1
	m := r.mapper.RequestToModel(request)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.RequestToEntity(m)
	return nil
}

func (r *volunteerSponsorshipRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VolunteerSponsorship, error) {
	var m model.VolunteerSponsorship
	if err := applySpecs(r.db.WithContext(ctx), specs).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.RequestToEntity(&m), nil
}

func (r *volunteerSponsorshipRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VolunteerSponsorship, error) {
	var rows []*model.VolunteerSponsorship
	if err := applySpecs(r.db.WithContext(ctx), specs).Find(&rows).Error; err != nil {
		return nil, err
	}
	requests := make([]*entity.VolunteerSponsorship, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, r.mapper.RequestToEntity(row))
	}
	return requests, nil
}

func (r *volunteerSponsorshipRepositoryImpl) UpdateIfVersion(ctx context.Context, request *entity.VolunteerSponsorship) error {
	m := r.mapper.RequestToModel(request)
	m.Version = request.Version + 1
	if err := conditionalUpdate(ctx, r.db, m, m.ID, request.Version); err != nil {
		return err
	}
	request.Version = m.Version
	request.UpdatedAt = m.UpdatedAt
	return nil
}

type sponsorshipRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SponsorshipMapper
}

func NewSponsorshipRepository(db *gorm.DB) contract.SponsorshipRepository {
	return &sponsorshipRepositoryImpl{db: db, mapper: mapper.NewSponsorshipMapper()}
}

func (r *sponsorshipRepositoryImpl) Create(ctx context.Context, sponsorship *entity.Sponsorship) error {
	sponsorship.Version = 1
	m, err := r.mapper.ToModel(sponsorship)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	sponsorship.Id = m.ID
	sponsorship.CreatedAt = m.CreatedAt
	sponsorship.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *sponsorshipRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Sponsorship, error) {
	var m model.Sponsorship
	if err := applySpecs(r.db.WithContext(ctx), specs).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *sponsorshipRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Sponsorship, error) {
	var rows []*model.Sponsorship
	if err := applySpecs(r.db.WithContext(ctx), specs).Find(&rows).Error; err != nil {
		return nil, err
	}
	sponsorships := make([]*entity.Sponsorship, 0, len(rows))
	for _, row := range rows {
		s, err := r.mapper.ToEntity(row)
		if err != nil {
			return nil, err
		}
		sponsorships = append(sponsorships, s)
	}
	return sponsorships, nil
}

func (r *sponsorshipRepositoryImpl) UpdateIfVersion(ctx context.Context, sponsorship *entity.Sponsorship) error {
	m, err := r.mapper.ToModel(sponsorship)
	if err != nil {
		return err
	}
	m.Version = sponsorship.Version + 1
	if err := conditionalUpdate(ctx, r.db, m, m.ID, sponsorship.Version); err != nil {
		return err
	}
	sponsorship.Version = m.Version
	sponsorship.UpdatedAt = m.UpdatedAt
	return nil
}
