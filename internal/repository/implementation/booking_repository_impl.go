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

type bookingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BookingMapper
}

func NewBookingRepository(db *gorm.DB) contract.BookingRepository {
	return &bookingRepositoryImpl{db: db, mapper: mapper.NewBookingMapper()}
}

func (r *bookingRepositoryImpl) Create(ctx context.Context, booking *entity.VolunteerBooking) error {
	booking.Version = 1
	m := r.mapper.ToModel(booking)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*booking = *r.mapper.ToEntity(m)
	return nil
}

func (r *bookingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VolunteerBooking, error) {
	var m model.VolunteerBooking
	if err := applySpecs(r.db.WithContext(ctx), specs).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *bookingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VolunteerBooking, error) {
	var rows []*model.VolunteerBooking
	if err := applySpecs(r.db.WithContext(ctx), specs).Find(&rows).Error; err != nil {
		return nil, err
	}
	bookings := make([]*entity.VolunteerBooking, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, r.mapper.ToEntity(row))
	}
	return bookings, nil
}

func (r *bookingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	err := applySpecs(r.db.WithContext(ctx).Model(&model.VolunteerBooking{}), specs).Count(&count).Error
	return count, err
}

func (r *bookingRepositoryImpl) UpdateIfVersion(ctx context.Context, booking *entity.VolunteerBooking) error {
	m := r.mapper.ToModel(booking)
	m.Version = booking.Version + 1
	if err := conditionalUpdate(ctx, r.db, m, m.ID, booking.Version); err != nil {
		return err
	}
	booking.Version = m.Version
	booking.UpdatedAt = m.UpdatedAt
	return nil
}
