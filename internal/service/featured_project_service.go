package service

import (
	"context"
	"fmt"
	"time"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/constant"
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/pkg/logger"
	"volunteer-marketplace-be/internal/repository/scope"
	"volunteer-marketplace-be/internal/repository/specification"
	"volunteer-marketplace-be/internal/repository/unitofwork"
	"volunteer-marketplace-be/pkg/payment"
	"volunteer-marketplace-be/pkg/publicid"

	"github.com/shopspring/decimal"
)

type FeaturedProjectFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

type IFeaturedProjectService interface {
	Plans() []entity.FeaturePlan
	RequestFeature(ctx context.Context, actor entity.Actor, projectPublicID string, planType string, amount decimal.Decimal) (*entity.FeaturedProject, error)
	InitiateCheckout(ctx context.Context, actor entity.Actor, featuredPublicID string) (*payment.CheckoutSession, error)
	RecordCapture(ctx context.Context, featuredPublicID, orderID, captureID string) (*entity.FeaturedProject, error)
	RecordCaptureFailure(ctx context.Context, featuredPublicID, orderID, message string) error
	Approve(ctx context.Context, actor entity.Actor, featuredPublicID string) (*entity.FeaturedProject, error)
	Reject(ctx context.Context, actor entity.Actor, featuredPublicID string, reason string) (*entity.FeaturedProject, error)
	RunExpirySweep(ctx context.Context, now time.Time) (*SweepReport, error)
	ListFeaturedProjects(ctx context.Context, actor entity.Actor, filter FeaturedProjectFilter) ([]*entity.FeaturedProject, int64, error)
	GetFeaturedProject(ctx context.Context, actor entity.Actor, featuredPublicID string) (*entity.FeaturedProject, error)
}

type FeaturedProjectService struct {
	uowFactory unitofwork.RepositoryFactory
	gateway    payment.Gateway
	notifier   Notifier
	currency   string
	now        Clock
	logger     logger.ILogger
}

func NewFeaturedProjectService(
	uowFactory unitofwork.RepositoryFactory,
	gateway payment.Gateway,
	notifier Notifier,
	currency string,
	now Clock,
	log logger.ILogger,
) *FeaturedProjectService {
	if now == nil {
		now = systemClock
	}
	return &FeaturedProjectService{
		uowFactory: uowFactory,
		gateway:    gateway,
		notifier:   notifier,
		currency:   currency,
		now:        now,
		logger:     log,
	}
}

func (s *FeaturedProjectService) Plans() []entity.FeaturePlan {
	return entity.FeaturePlans()
}

func (s *FeaturedProjectService) RequestFeature(ctx context.Context, actor entity.Actor, projectPublicID string, planType string, amount decimal.Decimal) (*entity.FeaturedProject, error) {
	plan, err := entity.LookupPlan(entity.PlanType(planType))
	if err != nil {
		return nil, err
	}
	if !amount.Equal(plan.Price) {
		return nil, apperror.Field("amount", fmt.Sprintf("plan %s costs %s", plan.Type, plan.Price.StringFixed(2)))
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
	if project == nil || (!actor.IsAdmin() && !project.OwnedBy(actor)) {
		return nil, apperror.NotFound("project")
	}
	if project.Status != entity.ProjectStatusActive {
		return nil, apperror.Field("project", "only active projects can be featured")
	}

	live, err := uow.FeaturedProjectRepository().Count(ctx,
		specification.Filter("project_public_id", projectPublicID),
		specification.In{Field: "status", Values: []string{string(entity.FeaturedPending), string(entity.FeaturedApproved)}},
	)
	if err != nil {
		return nil, err
	}
	if live > 0 {
		return nil, apperror.Field("project", "project already has a pending or active featured campaign")
	}

	featured := &entity.FeaturedProject{
		PublicId:          publicid.New(),
		ProjectPublicId:   projectPublicID,
		RequesterPublicId: actor.PublicId,
		PlanType:          plan.Type,
		Amount:            plan.Price,
		Currency:          s.currency,
		Status:            entity.FeaturedPending,
		PaymentStatus:     entity.PaymentUnpaid,
		RefundStatus:      entity.RefundNone,
	}
	if err := uow.FeaturedProjectRepository().Create(ctx, featured); err != nil {
		return nil, fmt.Errorf("failed to create featured project: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("FEATURED", "Feature requested", map[string]interface{}{
		"featured_id": featured.PublicId,
		"project_id":  projectPublicID,
		"plan":        plan.Type,
	})
	s.notifier.Notify(ctx, Notice{
		Type:           constant.NotifFeatureRequested,
		TargetRole:     entity.RoleAdmin,
		Title:          "New featured project request",
		Message:        fmt.Sprintf("%s requested the %s plan.", project.Title, plan.Type),
		EntityType:     constant.EntityFeaturedProject,
		EntityPublicID: featured.PublicId,
	})
	return featured, nil
}

func (s *FeaturedProjectService) GetFeaturedProject(ctx context.Context, actor entity.Actor, featuredPublicID string) (*entity.FeaturedProject, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	featured, err := uow.FeaturedProjectRepository().FindOne(ctx, specification.ByPublicID{PublicID: featuredPublicID})
	if err != nil {
		return nil, err
	}
	if featured == nil || (!actor.IsAdmin() && featured.RequesterPublicId != actor.PublicId) {
		return nil, apperror.NotFound("featured project")
	}
	return featured, nil
}

func (s *FeaturedProjectService) InitiateCheckout(ctx context.Context, actor entity.Actor, featuredPublicID string) (*payment.CheckoutSession, error) {
	featured, err := s.GetFeaturedProject(ctx, actor, featuredPublicID)
	if err != nil {
		return nil, err
	}

	orderID := FeaturedOrderPrefix + featured.PublicId
	if err := featured.StartCheckout(orderID); err != nil {
		return nil, err
	}

	session, gatewayErr := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		OrderID:  orderID,
		Amount:   featured.Amount,
		Currency: featured.Currency,
		ItemID:   string(featured.PlanType),
		ItemName: fmt.Sprintf("Featured project (%s)", featured.PlanType),
	})
	if gatewayErr != nil {
		featured.PaymentError = gatewayErr.Error()
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.FeaturedProjectRepository().UpdateIfVersion(ctx, featured); err != nil {
		return nil, translateWriteErr(err, "featured project")
	}

	if gatewayErr != nil {
		s.logger.Error("FEATURED", "Checkout session failed", map[string]interface{}{
			"featured_id": featured.PublicId,
			"error":       gatewayErr,
		})
		return nil, apperror.Gateway("could not start checkout", gatewayErr)
	}
	return session, nil
}

// RecordCapture stores a confirmed payment. Only one capture can win for a
// campaign; every later attempt sees ConcurrentModification.
func (s *FeaturedProjectService) RecordCapture(ctx context.Context, featuredPublicID, orderID, captureID string) (*entity.FeaturedProject, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	featured, err := uow.FeaturedProjectRepository().FindOne(ctx, specification.ByPublicID{PublicID: featuredPublicID})
	if err != nil {
		return nil, err
	}
	if featured == nil {
		return nil, apperror.NotFound("featured project")
	}
	if err := featured.RecordCapture(orderID, captureID, s.now()); err != nil {
		return nil, err
	}
	if err := uow.FeaturedProjectRepository().UpdateIfVersion(ctx, featured); err != nil {
		return nil, translateWriteErr(err, "featured project")
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("FEATURED", "Payment captured", map[string]interface{}{
		"featured_id": featured.PublicId,
		"order_id":    orderID,
		"capture_id":  captureID,
	})
	s.notifier.Notify(ctx, Notice{
		Type:           constant.NotifFeaturePaymentCaptured,
		TargetRole:     entity.RoleAdmin,
		Title:          "Featured project paid",
		Message:        "A featured project payment was captured and awaits review.",
		EntityType:     constant.EntityFeaturedProject,
		EntityPublicID: featured.PublicId,
	})
	s.notifier.Notify(ctx, Notice{
		Type:           constant.NotifFeaturePaymentCaptured,
		UserPublicID:   featured.RequesterPublicId,
		Title:          "Payment received",
		Message:        "We received your payment. Your featured project is awaiting admin review.",
		EntityType:     constant.EntityFeaturedProject,
		EntityPublicID: featured.PublicId,
	})
	return featured, nil
}

// RecordCaptureFailure keeps the campaign pending with the gateway's
// message and reports the failure as GatewayError.
func (s *FeaturedProjectService) RecordCaptureFailure(ctx context.Context, featuredPublicID, orderID, message string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	featured, err := uow.FeaturedProjectRepository().FindOne(ctx, specification.ByPublicID{PublicID: featuredPublicID})
	if err != nil {
		return err
	}
	if featured == nil {
		return apperror.NotFound("featured project")
	}
	if err := featured.RecordCaptureFailure(orderID, message); err != nil {
		return err
	}
	if err := uow.FeaturedProjectRepository().UpdateIfVersion(ctx, featured); err != nil {
		return translateWriteErr(err, "featured project")
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Warn("FEATURED", "Payment failed", map[string]interface{}{
		"featured_id": featured.PublicId,
		"order_id":    orderID,
		"message":     message,
	})
	s.notifier.Notify(ctx, Notice{
		Type:           constant.NotifFeaturePaymentFailed,
		UserPublicID:   featured.RequesterPublicId,
		Title:          "Payment failed",
		Message:        fmt.Sprintf("Your featured project payment failed: %s", message),
		EntityType:     constant.EntityFeaturedProject,
		EntityPublicID: featured.PublicId,
	})
	return apperror.Gateway(message, nil)
}

func (s *FeaturedProjectService) Approve(ctx context.Context, actor entity.Actor, featuredPublicID string) (*entity.FeaturedProject, error) {
	if err := requireAdmin(actor, "featured project"); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	featured, err := uow.FeaturedProjectRepository().FindOne(ctx, specification.ByPublicID{PublicID: featuredPublicID})
	if err != nil {
		return nil, err
	}
	if featured == nil {
		return nil, apperror.NotFound("featured project")
	}
	if err := featured.Approve(s.now()); err != nil {
		return nil, err
	}
	if err := uow.FeaturedProjectRepository().UpdateIfVersion(ctx, featured); err != nil {
		return nil, translateWriteErr(err, "featured project")
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("FEATURED", "Feature approved", map[string]interface{}{
		"featured_id": featured.PublicId,
		"end_date":    featured.EndDate,
		"actor_id":    actor.PublicId,
	})
	s.notifier.Notify(ctx, Notice{
		Type:           constant.NotifFeatureApproved,
		UserPublicID:   featured.RequesterPublicId,
		Title:          "Featured project approved",
		Message:        fmt.Sprintf("Your project is featured until %s.", featured.EndDate.Format("2006-01-02")),
		EntityType:     constant.EntityFeaturedProject,
		EntityPublicID: featured.PublicId,
	})
	return featured, nil
}

// Reject ends the campaign. A captured payment on a campaign that never
// went live is refunded; a failed refund leaves the rejection in place and
// is reported as GatewayError.
func (s *FeaturedProjectService) Reject(ctx context.Context, actor entity.Actor, featuredPublicID string, reason string) (*entity.FeaturedProject, error) {
	if err := requireAdmin(actor, "featured project"); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	featured, err := uow.FeaturedProjectRepository().FindOne(ctx, specification.ByPublicID{PublicID: featuredPublicID})
	if err != nil {
		return nil, err
	}
	if featured == nil {
		return nil, apperror.NotFound("featured project")
	}
	refundDue, err := featured.Reject(reason)
	if err != nil {
		return nil, err
	}
	if err := uow.FeaturedProjectRepository().UpdateIfVersion(ctx, featured); err != nil {
		return nil, translateWriteErr(err, "featured project")
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("FEATURED", "Feature rejected", map[string]interface{}{
		"featured_id": featured.PublicId,
		"refund_due":  refundDue,
		"actor_id":    actor.PublicId,
	})
	s.notifier.Notify(ctx, Notice{
		Type:           constant.NotifFeatureRejected,
		UserPublicID:   featured.RequesterPublicId,
		Title:          "Featured project rejected",
		Message:        fmt.Sprintf("Your featured project request was rejected: %s", reason),
		EntityType:     constant.EntityFeaturedProject,
		EntityPublicID: featured.PublicId,
		Data:           map[string]interface{}{"reason": reason, "refund_due": refundDue},
	})

	if !refundDue {
		return featured, nil
	}
	if err := s.refund(ctx, featured, reason); err != nil {
		return nil, err
	}
	return featured, nil
}

func (s *FeaturedProjectService) refund(ctx context.Context, featured *entity.FeaturedProject, reason string) error {
	req := payment.RefundRequest{Amount: featured.Amount, Reason: reason}
	if featured.GatewayOrderId != nil {
		req.OrderID = *featured.GatewayOrderId
	}
	if featured.GatewayCaptureId != nil {
		req.CaptureID = *featured.GatewayCaptureId
	}

	_, refundErr := s.gateway.Refund(ctx, req)
	if refundErr != nil {
		featured.RefundStatus = entity.RefundFailed
		featured.RefundError = refundErr.Error()
	} else {
		featured.RefundStatus = entity.RefundRefunded
		featured.RefundError = ""
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.FeaturedProjectRepository().UpdateIfVersion(ctx, featured); err != nil {
		return translateWriteErr(err, "featured project")
	}

	if refundErr != nil {
		s.logger.Error("FEATURED", "Refund failed", map[string]interface{}{
			"featured_id": featured.PublicId,
			"error":       refundErr,
		})
		s.notifier.Notify(ctx, Notice{
			Type:           constant.NotifFeatureRefundFailed,
			TargetRole:     entity.RoleAdmin,
			Title:          "Featured project refund failed",
			Message:        fmt.Sprintf("Refund for a rejected featured project failed: %s", refundErr.Error()),
			EntityType:     constant.EntityFeaturedProject,
			EntityPublicID: featured.PublicId,
		})
		return apperror.Gateway("refund failed", refundErr)
	}

	s.logger.Info("FEATURED", "Refund issued", map[string]interface{}{"featured_id": featured.PublicId})
	return nil
}

// ListFeaturedProjects pages through campaigns, newest first. Admins see
// every campaign; everyone else sees their own.
func (s *FeaturedProjectService) ListFeaturedProjects(ctx context.Context, actor entity.Actor, filter FeaturedProjectFilter) ([]*entity.FeaturedProject, int64, error) {
	specs := make([]specification.Specification, 0, 4)
	if !actor.IsAdmin() {
		specs = append(specs, specification.Filter("requester_public_id", actor.PublicId))
	}
	if filter.Status != "" {
		status, err := entity.ParseFeaturedStatus(filter.Status)
		if err != nil {
			return nil, 0, err
		}
		specs = append(specs, specification.Filter("status", string(status)))
	}
	if filter.From != nil || filter.To != nil {
		specs = append(specs, specification.DateRange{Field: "created_at", From: filter.From, To: filter.To})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.FeaturedProjectRepository().Count(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	pageSpecs := append(specs,
		specification.Scoped(scope.OrderByCreatedDesc),
		specification.Page(filter.Page, filter.Limit),
	)
	items, err := uow.FeaturedProjectRepository().FindAll(ctx, pageSpecs...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
