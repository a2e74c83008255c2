package unitofwork

import (
	"context"

	"agentcraft-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	AgentRepository() contract.AgentRepository
	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository
	OnboardingRepository() contract.OnboardingRepository
	SubscriptionRepository() contract.SubscriptionRepository
}
