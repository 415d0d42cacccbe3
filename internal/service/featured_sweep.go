package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"volunteer-marketplace-be/internal/constant"
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/repository/contract"
	"volunteer-marketplace-be/internal/repository/scope"
	"volunteer-marketplace-be/internal/repository/specification"
)

type SweepReport struct {
	Scanned           int `json:"scanned"`
	SevenDayReminders int `json:"seven_day_reminders"`
	OneDayReminders   int `json:"one_day_reminders"`
	Expired           int `json:"expired"`
	Conflicts         int `json:"conflicts"`
	Failed            int `json:"failed"`
}

// RunExpirySweep advances reminder flags and expires campaigns whose end
// date has passed. Each campaign is written on its own; a failure on one
// is counted and the sweep moves on. Running it twice at the same instant
// changes nothing the second time.
func (s *FeaturedProjectService) RunExpirySweep(ctx context.Context, now time.Time) (*SweepReport, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	due, err := uow.FeaturedProjectRepository().FindAll(ctx,
		specification.DueForSweep{},
		specification.Scoped(scope.OrderByCreatedAsc),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaigns for sweep: %w", err)
	}

	report := &SweepReport{Scanned: len(due)}
	for _, featured := range due {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		crossed, err := s.sweepOne(ctx, featured, now)
		if errors.Is(err, contract.ErrStaleVersion) {
			report.Conflicts++
			crossed, err = s.retrySweep(ctx, featured.PublicId, now)
		}
		if err != nil {
			report.Failed++
			s.logger.Error("SWEEP", "Failed to sweep featured project", map[string]interface{}{
				"featured_id": featured.PublicId,
				"error":       err,
			})
			continue
		}

		for _, c := range crossed {
			switch c.Threshold {
			case entity.ThresholdSevenDays:
				report.SevenDayReminders++
			case entity.ThresholdOneDay:
				report.OneDayReminders++
			case entity.ThresholdExpired:
				report.Expired++
			}
		}
	}

	s.logger.Info("SWEEP", "Featured expiry sweep finished", map[string]interface{}{
		"scanned":   report.Scanned,
		"reminders": report.SevenDayReminders + report.OneDayReminders,
		"expired":   report.Expired,
		"conflicts": report.Conflicts,
		"failed":    report.Failed,
	})
	return report, nil
}

// retrySweep reloads a campaign that changed under the sweep and tries
// once more.
func (s *FeaturedProjectService) retrySweep(ctx context.Context, featuredPublicID string, now time.Time) ([]entity.ThresholdCrossing, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	fresh, err := uow.FeaturedProjectRepository().FindOne(ctx, specification.ByPublicID{PublicID: featuredPublicID})
	if err != nil {
		return nil, err
	}
	if fresh == nil || fresh.Status != entity.FeaturedApproved {
		return nil, nil
	}
	return s.sweepOne(ctx, fresh, now)
}

func (s *FeaturedProjectService) sweepOne(ctx context.Context, featured *entity.FeaturedProject, now time.Time) ([]entity.ThresholdCrossing, error) {
	crossed := featured.AdvanceThresholds(now)
	if len(crossed) == 0 {
		return nil, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.FeaturedProjectRepository().UpdateIfVersion(ctx, featured); err != nil {
		return nil, err
	}

	for _, c := range crossed {
		if !c.Notify {
			continue
		}
		s.notifier.Notify(ctx, thresholdNotice(featured, c.Threshold))
	}
	return crossed, nil
}

func thresholdNotice(featured *entity.FeaturedProject, t entity.Threshold) Notice {
	notice := Notice{
		UserPublicID:   featured.RequesterPublicId,
		EntityType:     constant.EntityFeaturedProject,
		EntityPublicID: featured.PublicId,
		Data:           map[string]interface{}{"project_id": featured.ProjectPublicId},
	}
	if featured.EndDate != nil {
		notice.Data["end_date"] = featured.EndDate.Format(time.RFC3339)
	}

	switch t {
	case entity.ThresholdSevenDays:
		notice.Type = constant.NotifFeatureExpiring7Days
		notice.Title = "Featured project ends in 7 days"
		notice.Message = "Your featured placement ends in 7 days. Renew to stay on top."
	case entity.ThresholdOneDay:
		notice.Type = constant.NotifFeatureExpiring1Day
		notice.Title = "Featured project ends tomorrow"
		notice.Message = "Your featured placement ends within a day."
	default:
		notice.Type = constant.NotifFeatureExpired
		notice.Title = "Featured project expired"
		notice.Message = "Your featured placement has ended."
	}
	return notice
}
