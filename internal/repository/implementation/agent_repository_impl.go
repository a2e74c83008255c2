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
)

type AgentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AgentMapper
}

func NewAgentRepository(db *gorm.DB) contract.AgentRepository {
	return &AgentRepositoryImpl{
		db:     db,
		mapper: mapper.NewAgentMapper(),
	}
}

func (r *AgentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AgentRepositoryImpl) Create(ctx context.Context, agent *entity.Agent) error {
	m := r.mapper.ToModel(agent)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*agent = *r.mapper.ToEntity(m)
	return nil
}

func (r *AgentRepositoryImpl) Update(ctx context.Context, agent *entity.Agent) error {
	m := r.mapper.ToModel(agent)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*agent = *r.mapper.ToEntity(m)
	return nil
}

func (r *AgentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Agent{}, id).Error
}

func (r *AgentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Agent, error) {
	var m model.Agent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AgentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Agent, error) {
	var models []*model.Agent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AgentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Agent{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
