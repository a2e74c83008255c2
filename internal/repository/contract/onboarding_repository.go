package contract

import (
	"context"

	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/repository/specification"

	"github.com/google/uuid"
)

type OnboardingRepository interface {
	Upsert(ctx context.Context, progress *entity.OnboardingProgress) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OnboardingProgress, error)
	DeleteByUserId(ctx context.Context, userId uuid.UUID) error
}
