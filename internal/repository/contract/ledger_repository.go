package contract

import (
	"context"

	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/repository/specification"
)

type PointTotals struct {
	Credits int64
	Debits  int64
}

func (t PointTotals) Balance() int64 {
	return t.Credits - t.Debits
}

// PointTransactionRepository is append-only: there is no update or delete.
type PointTransactionRepository interface {
	Create(ctx context.Context, tx *entity.PointTransaction) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PointTransaction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Totals(ctx context.Context, specs ...specification.Specification) (PointTotals, error)
}

type VolunteerPointsRepository interface {
	Create(ctx context.Context, points *entity.VolunteerPoints) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VolunteerPoints, error)
}
