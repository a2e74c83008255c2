package contract

import (
	"context"

	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AgentRepository interface {
	Create(ctx context.Context, agent *entity.Agent) error
	Update(ctx context.Context, agent *entity.Agent) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Agent, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Agent, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
