package implementation

import (
	"context"
	"errors"

	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/mapper"
	"agentcraft-be/internal/model"
	"agentcraft-be/internal/repository/contract"
	"agentcraft-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OnboardingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OnboardingMapper
}

func NewOnboardingRepository(db *gorm.DB) contract.OnboardingRepository {
	return &OnboardingRepositoryImpl{
		db:     db,
		mapper: mapper.NewOnboardingMapper(),
	}
}

func (r *OnboardingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Upsert inserts or updates the single progress row per user.
func (r *OnboardingRepositoryImpl) Upsert(ctx context.Context, progress *entity.OnboardingProgress) error {
	m := r.mapper.ToModel(progress)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"current_step", "wizard_data", "completed", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*progress = *r.mapper.ToEntity(m)
	return nil
}

func (r *OnboardingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OnboardingProgress, error) {
	var m model.OnboardingProgress
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OnboardingRepositoryImpl) DeleteByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.OnboardingProgress{}).Error
}
