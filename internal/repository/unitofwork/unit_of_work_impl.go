package unitofwork

import (
	"context"
	"fmt"

	"volunteer-marketplace-be/internal/repository"
	"volunteer-marketplace-be/internal/repository/contract"
	"volunteer-marketplace-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // set between Begin and Commit/Rollback
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ProjectRepository() contract.ProjectRepository {
	return implementation.NewProjectRepository(u.getDB())
}

func (u *UnitOfWorkImpl) BookingRepository() contract.BookingRepository {
	return implementation.NewBookingRepository(u.getDB())
}

func (u *UnitOfWorkImpl) VolunteerSponsorshipRepository() contract.VolunteerSponsorshipRepository {
	return implementation.NewVolunteerSponsorshipRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SponsorshipRepository() contract.SponsorshipRepository {
	return implementation.NewSponsorshipRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FeaturedProjectRepository() contract.FeaturedProjectRepository {
	return implementation.NewFeaturedProjectRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PointTransactionRepository() contract.PointTransactionRepository {
	return implementation.NewPointTransactionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) VolunteerPointsRepository() contract.VolunteerPointsRepository {
	return implementation.NewVolunteerPointsRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ReferralRepository() contract.ReferralRepository {
	return implementation.NewReferralRepository(u.getDB())
}

func (u *UnitOfWorkImpl) NotificationRepository() repository.NotificationRepository {
	return implementation.NewNotificationRepository(u.getDB())
}
