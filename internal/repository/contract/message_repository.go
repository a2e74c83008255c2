package contract

import (
	"context"

	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error
	DeleteByConversationIds(ctx context.Context, conversationIds []uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	FindAllByConversationIds(ctx context.Context, conversationIds []uuid.UUID) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
