package service

import (
	"context"
	"errors"
	"fmt"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/constant"
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/pkg/logger"
	"volunteer-marketplace-be/internal/repository/scope"
	"volunteer-marketplace-be/internal/repository/specification"
	"volunteer-marketplace-be/internal/repository/unitofwork"
	"volunteer-marketplace-be/pkg/publicid"

	"gorm.io/gorm"
)

type IBookingService interface {
	CreateBooking(ctx context.Context, actor entity.Actor, projectPublicID string) (*entity.VolunteerBooking, error)
	GetBooking(ctx context.Context, actor entity.Actor, bookingPublicID string) (*entity.VolunteerBooking, error)
	ListBookings(ctx context.Context, actor entity.Actor, page, limit int) ([]*entity.VolunteerBooking, error)
	ApproveBooking(ctx context.Context, actor entity.Actor, bookingPublicID string) (*entity.VolunteerBooking, error)
	RejectBooking(ctx context.Context, actor entity.Actor, bookingPublicID string, reason string) (*entity.VolunteerBooking, error)
	CancelBooking(ctx context.Context, actor entity.Actor, bookingPublicID string, reason string) (*entity.VolunteerBooking, error)
	CompleteBooking(ctx context.Context, actor entity.Actor, bookingPublicID string) (*entity.VolunteerBooking, error)
}

type BookingService struct {
	uowFactory       unitofwork.RepositoryFactory
	ledger           *LedgerService
	notifier         Notifier
	completionPoints int64
	now              Clock
	logger           logger.ILogger
}

func NewBookingService(
	uowFactory unitofwork.RepositoryFactory,
	ledger *LedgerService,
	notifier Notifier,
	completionPoints int64,
	now Clock,
	log logger.ILogger,
) *BookingService {
	if now == nil {
		now = systemClock
	}
	return &BookingService{
		uowFactory:       uowFactory,
		ledger:           ledger,
		notifier:         notifier,
		completionPoints: completionPoints,
		now:              now,
		logger:           log,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, actor entity.Actor, projectPublicID string) (*entity.VolunteerBooking, error) {
	if actor.Role != entity.RoleVolunteer {
		return nil, apperror.Field("role", "only volunteers can book projects")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByPublicID{PublicID: projectPublicID})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NotFound("project")
	}
	if project.Status != entity.ProjectStatusActive {
		return nil, apperror.Field("project", "project is not accepting bookings")
	}

	open, err := uow.BookingRepository().Count(ctx,
		specification.Filter("volunteer_public_id", actor.PublicId),
		specification.Filter("project_public_id", projectPublicID),
		specification.In{Field: "status", Values: []string{
			string(entity.BookingStatusPending),
			string(entity.BookingStatusApproved),
		}},
	)
	if err != nil {
		return nil, err
	}
	if open > 0 {
		return nil, apperror.Field("project", "you already have an open booking for this project")
	}

	booking := &entity.VolunteerBooking{
		PublicId:          publicid.New(),
		VolunteerPublicId: actor.PublicId,
		ProjectPublicId:   projectPublicID,
		Status:            entity.BookingStatusPending,
	}
	if err := uow.BookingRepository().Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("BOOKING", "Booking created", map[string]interface{}{
		"booking_id":   booking.PublicId,
		"project_id":   projectPublicID,
		"volunteer_id": actor.PublicId,
	})
	s.notifier.Notify(ctx, Notice{
		Type:           constant.NotifBookingCreated,
		UserPublicID:   project.OrganizationPublicId,
		Title:          "New booking request",
		Message:        fmt.Sprintf("A volunteer requested to join %s.", project.Title),
		EntityType:     constant.EntityBooking,
		EntityPublicID: booking.PublicId,
	})
	return booking, nil
}

// loadBooking resolves a booking and its project, hiding it from callers
// who are neither party nor admin.
func (s *BookingService) loadBooking(ctx context.Context, uow unitofwork.UnitOfWork, actor entity.Actor, bookingPublicID string, volunteerAllowed bool) (*entity.VolunteerBooking, *entity.Project, error) {
	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByPublicID{PublicID: bookingPublicID})
	if err != nil {
		return nil, nil, err
	}
	if booking == nil {
		return nil, nil, apperror.NotFound("booking")
	}
	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByPublicID{PublicID: booking.ProjectPublicId})
	if err != nil {
		return nil, nil, err
	}
	if project == nil {
		return nil, nil, apperror.NotFound("booking")
	}

	allowed := actor.IsAdmin() || project.OwnedBy(actor) ||
		(volunteerAllowed && booking.VolunteerPublicId == actor.PublicId)
	if !allowed {
		return nil, nil, apperror.NotFound("booking")
	}
	return booking, project, nil
}

func (s *BookingService) GetBooking(ctx context.Context, actor entity.Actor, bookingPublicID string) (*entity.VolunteerBooking, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	booking, _, err := s.loadBooking(ctx, uow, actor, bookingPublicID, true)
	return booking, err
}

// ListBookings returns the volunteer's own bookings, newest first.
func (s *BookingService) ListBookings(ctx context.Context, actor entity.Actor, page, limit int) ([]*entity.VolunteerBooking, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.BookingRepository().FindAll(ctx,
		specification.Filter("volunteer_public_id", actor.PublicId),
		specification.Scoped(scope.OrderByCreatedDesc),
		specification.Page(page, limit),
	)
}

func (s *BookingService) ApproveBooking(ctx context.Context, actor entity.Actor, bookingPublicID string) (*entity.VolunteerBooking, error) {
	return s.transition(ctx, actor, bookingPublicID, entity.BookingStatusApproved, "", false)
}

func (s *BookingService) RejectBooking(ctx context.Context, actor entity.Actor, bookingPublicID string, reason string) (*entity.VolunteerBooking, error) {
	return s.transition(ctx, actor, bookingPublicID, entity.BookingStatusRejected, reason, false)
}

func (s *BookingService) CancelBooking(ctx context.Context, actor entity.Actor, bookingPublicID string, reason string) (*entity.VolunteerBooking, error) {
	return s.transition(ctx, actor, bookingPublicID, entity.BookingStatusCancelled, reason, true)
}

func (s *BookingService) transition(ctx context.Context, actor entity.Actor, bookingPublicID string, next entity.BookingStatus, reason string, volunteerAllowed bool) (*entity.VolunteerBooking, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	booking, project, err := s.loadBooking(ctx, uow, actor, bookingPublicID, volunteerAllowed)
	if err != nil {
		return nil, err
	}
	if err := booking.Transition(next, reason, s.now()); err != nil {
		return nil, err
	}
	if err := uow.BookingRepository().UpdateIfVersion(ctx, booking); err != nil {
		return nil, translateWriteErr(err, "booking")
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("BOOKING", "Booking status changed", map[string]interface{}{
		"booking_id": booking.PublicId,
		"status":     booking.Status,
		"actor_id":   actor.PublicId,
	})
	s.notifyTransition(ctx, booking, project, actor)
	return booking, nil
}

// CompleteBooking records trip completion and awards the volunteer's
// points exactly once, in the same transaction as the status change.
func (s *BookingService) CompleteBooking(ctx context.Context, actor entity.Actor, bookingPublicID string) (*entity.VolunteerBooking, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	booking, project, err := s.loadBooking(ctx, uow, actor, bookingPublicID, false)
	if err != nil {
		return nil, err
	}
	if err := booking.Transition(entity.BookingStatusCompleted, "", s.now()); err != nil {
		return nil, err
	}
	if err := uow.BookingRepository().UpdateIfVersion(ctx, booking); err != nil {
		return nil, translateWriteErr(err, "booking")
	}

	if s.completionPoints > 0 {
		award := &entity.VolunteerPoints{
			PublicId:          publicid.New(),
			VolunteerPublicId: booking.VolunteerPublicId,
			BookingPublicId:   booking.PublicId,
			Points:            s.completionPoints,
			Reason:            "Completed volunteer trip",
		}
		if err := uow.VolunteerPointsRepository().Create(ctx, award); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperror.AlreadyProcessed("points for this booking were already awarded")
			}
			return nil, fmt.Errorf("failed to record volunteer points: %w", err)
		}
		if err := s.ledger.appendEntry(ctx, uow, &entity.PointTransaction{
			UserPublicId:         booking.VolunteerPublicId,
			Type:                 entity.TransactionCredit,
			Points:               s.completionPoints,
			Description:          fmt.Sprintf("Completed %s", project.Title),
			BookingPublicId:      strPtr(booking.PublicId),
			CounterpartyPublicId: strPtr(project.OrganizationPublicId),
			SourceRef:            "booking:" + booking.PublicId,
		}); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	s.ledger.invalidate(booking.VolunteerPublicId)

	s.logger.Info("BOOKING", "Booking completed", map[string]interface{}{
		"booking_id": booking.PublicId,
		"points":     s.completionPoints,
	})
	s.notifyTransition(ctx, booking, project, actor)
	return booking, nil
}

func (s *BookingService) notifyTransition(ctx context.Context, booking *entity.VolunteerBooking, project *entity.Project, actor entity.Actor) {
	notice := Notice{
		UserPublicID:   booking.VolunteerPublicId,
		EntityType:     constant.EntityBooking,
		EntityPublicID: booking.PublicId,
		Data:           map[string]interface{}{"project_title": project.Title, "reason": booking.Reason},
	}

	switch booking.Status {
	case entity.BookingStatusApproved:
		notice.Type = constant.NotifBookingApproved
		notice.Title = "Booking approved"
		notice.Message = fmt.Sprintf("Your booking for %s was approved.", project.Title)
	case entity.BookingStatusRejected:
		notice.Type = constant.NotifBookingRejected
		notice.Title = "Booking rejected"
		notice.Message = fmt.Sprintf("Your booking for %s was rejected.", project.Title)
	case entity.BookingStatusCancelled:
		notice.Type = constant.NotifBookingCancelled
		notice.Title = "Booking cancelled"
		notice.Message = fmt.Sprintf("The booking for %s was cancelled.", project.Title)
		// Tell the other party.
		if actor.PublicId == booking.VolunteerPublicId {
			notice.UserPublicID = project.OrganizationPublicId
		}
	case entity.BookingStatusCompleted:
		notice.Type = constant.NotifBookingCompleted
		notice.Title = "Trip completed"
		notice.Message = fmt.Sprintf("You earned %d points for completing %s.", s.completionPoints, project.Title)
		notice.Data["points"] = s.completionPoints
	default:
		return
	}
	s.notifier.Notify(ctx, notice)
}
