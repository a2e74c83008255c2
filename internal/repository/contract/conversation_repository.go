package contract

import (
	"context"

	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	Update(ctx context.Context, conversation *entity.Conversation) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByAgentId(ctx context.Context, agentId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Touch bumps updated_at so conversations sort by recent activity.
	Touch(ctx context.Context, id uuid.UUID) error
}
