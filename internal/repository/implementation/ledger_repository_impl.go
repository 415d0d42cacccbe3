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

type pointTransactionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LedgerMapper
}

func NewPointTransactionRepository(db *gorm.DB) contract.PointTransactionRepository {
	return &pointTransactionRepositoryImpl{db: db, mapper: mapper.NewLedgerMapper()}
}

func (r *pointTransactionRepositoryImpl) Create(ctx context.Context, tx *entity.PointTransaction) error {
	m := r.mapper.ToModel(tx)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tx = *r.mapper.ToEntity(m)
	return nil
}

func (r *pointTransactionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PointTransaction, error) {
	var rows []*model.PointTransaction
	if err := applySpecs(r.db.WithContext(ctx), specs).Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]*entity.PointTransaction, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, r.mapper.ToEntity(row))
	}
	return entries, nil
}

func (r *pointTransactionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	err := applySpecs(r.db.WithContext(ctx).Model(&model.PointTransaction{}), specs).Count(&count).Error
	return count, err
}

func (r *pointTransactionRepositoryImpl) Totals(ctx context.Context, specs ...specification.Specification) (contract.PointTotals, error) {
	var totals contract.PointTotals
	query := applySpecs(r.db.WithContext(ctx).Model(&model.PointTransaction{}), specs)
	err := query.Select(
		"CAST(COALESCE(SUM(CASE WHEN type = ? THEN points ELSE 0 END), 0) AS BIGINT) AS credits, "+
			"CAST(COALESCE(SUM(CASE WHEN type = ? THEN points ELSE 0 END), 0) AS BIGINT) AS debits",
		string(entity.TransactionCredit), string(entity.TransactionDebit),
	).Scan(&totals).Error
	return totals, err
}

type volunteerPointsRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LedgerMapper
}

func NewVolunteerPointsRepository(db *gorm.DB) contract.VolunteerPointsRepository {
	return &volunteerPointsRepositoryImpl{db: db, mapper: mapper.NewLedgerMapper()}
}

func (r *volunteerPointsRepositoryImpl) Create(ctx context.Context, points *entity.VolunteerPoints) error {
	m := r.mapper.PointsToModel(points)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*points = *r.mapper.PointsToEntity(m)
	return nil
}

func (r *volunteerPointsRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VolunteerPoints, error) {
	var m model.VolunteerPoints
	if err := applySpecs(r.db.WithContext(ctx), specs).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PointsToEntity(&m), nil
}
