package contract

import (
	"context"

	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/repository/specification"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.VolunteerBooking) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VolunteerBooking, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VolunteerBooking, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// UpdateIfVersion writes the booking only if its stored version still
	// equals booking.Version, then bumps the version.
	UpdateIfVersion(ctx context.Context, booking *entity.VolunteerBooking) error
}
