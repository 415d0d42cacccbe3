package unitofwork

import (
	"context"

	"volunteer-marketplace-be/internal/repository"
	"volunteer-marketplace-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ProjectRepository() contract.ProjectRepository
	BookingRepository() contract.BookingRepository
	VolunteerSponsorshipRepository() contract.VolunteerSponsorshipRepository
	SponsorshipRepository() contract.SponsorshipRepository
	FeaturedProjectRepository() contract.FeaturedProjectRepository
	PointTransactionRepository() contract.PointTransactionRepository
	VolunteerPointsRepository() contract.VolunteerPointsRepository
	ReferralRepository() contract.ReferralRepository
	NotificationRepository() repository.NotificationRepository
}
