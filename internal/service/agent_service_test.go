package service

import (
	"context"
	"testing"
	"time"

	"agentcraft-be/internal/dto"
	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAgent(t *testing.T) {
	factory := newFakeFactory()
	userId := uuid.New()
	svc := NewAgentService(factory, nil)

	res, err := svc.Create(context.Background(), userId, &dto.CreateAgentRequest{
		Name:        "Shop Helper",
		Description: "Answers questions about the shop",
		Template:    "website-faq",
	})

	require.NoError(t, err)
	assert.Equal(t, "Shop Helper", res.Name)
	assert.Equal(t, "website-faq", res.Template)
	assert.Equal(t, string(entity.AgentStatusDraft), res.Status)
	assert.Contains(t, res.SystemPrompt, "Shop Helper")
}

func TestCreateAgentUnknownTemplate(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAgentService(factory, nil)

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateAgentRequest{
		Name:     "Shop Helper",
		Template: "does-not-exist",
	})

	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))
	assert.Empty(t, factory.uow.agents.agents)
}

func TestCreateAgentFreeTierLimit(t *testing.T) {
	factory := newFakeFactory()
	userId := uuid.New()
	svc := NewAgentService(factory, nil)

	_, err := svc.Create(context.Background(), userId, &dto.CreateAgentRequest{
		Name:     "First",
		Template: "website-faq",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), userId, &dto.CreateAgentRequest{
		Name:     "Second",
		Template: "lead-qualification",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	// Another user still gets their own free slot.
	_, err = svc.Create(context.Background(), uuid.New(), &dto.CreateAgentRequest{
		Name:     "Other",
		Template: "website-faq",
	})
	assert.NoError(t, err)
}

func TestCreateAgentPlanLimits(t *testing.T) {
	factory := newFakeFactory()
	userId := uuid.New()
	svc := NewAgentService(factory, nil)

	plan := &entity.SubscriptionPlan{Id: uuid.New(), Name: "Professional", MaxAgents: -1}
	factory.uow.subscriptions.plans = append(factory.uow.subscriptions.plans, plan)
	factory.uow.subscriptions.subs = append(factory.uow.subscriptions.subs, &entity.UserSubscription{
		Id:     uuid.New(),
		UserId: userId,
		PlanId: plan.Id,
		Status: entity.SubscriptionStatusActive,
	})

	// MaxAgents -1 means unlimited; the count check is skipped entirely.
	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), userId, &dto.CreateAgentRequest{
			Name:     "Agent",
			Template: "website-faq",
		})
		require.NoError(t, err)
	}
	assert.Len(t, factory.uow.agents.agents, 5)
}

func TestUpdateAgentRerendersPrompt(t *testing.T) {
	factory := newFakeFactory()
	userId := uuid.New()
	svc := NewAgentService(factory, nil)

	created, err := svc.Create(context.Background(), userId, &dto.CreateAgentRequest{
		Name:        "Old Name",
		Description: "Old description",
		Template:    "website-faq",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), userId, created.Id, &dto.UpdateAgentRequest{
		Name: "New Name",
	})
	require.NoError(t, err)
	assert.Contains(t, updated.SystemPrompt, "New Name")
	assert.NotContains(t, updated.SystemPrompt, "Old Name")

	// A status-only change keeps the prompt as is.
	before := updated.SystemPrompt
	updated, err = svc.Update(context.Background(), userId, created.Id, &dto.UpdateAgentRequest{
		Status: "active",
	})
	require.NoError(t, err)
	assert.Equal(t, before, updated.SystemPrompt)
	assert.Equal(t, "active", updated.Status)
}

func TestUpdateAgentUnknownTemplate(t *testing.T) {
	factory := newFakeFactory()
	userId := uuid.New()
	svc := NewAgentService(factory, nil)

	created, err := svc.Create(context.Background(), userId, &dto.CreateAgentRequest{
		Name:     "Helper",
		Template: "website-faq",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), userId, created.Id, &dto.UpdateAgentRequest{
		Template: "does-not-exist",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))
}

func TestGetAgentOwnership(t *testing.T) {
	factory := newFakeFactory()
	owner := uuid.New()
	agent := seedAgent(factory, owner)
	svc := NewAgentService(factory, nil)

	t.Run("owner reads it", func(t *testing.T) {
		res, err := svc.Get(context.Background(), owner, agent.Id)
		require.NoError(t, err)
		assert.Equal(t, agent.Id, res.Id)
	})

	t.Run("missing agent", func(t *testing.T) {
		_, err := svc.Get(context.Background(), owner, uuid.New())
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})

	t.Run("foreign agent", func(t *testing.T) {
		_, err := svc.Get(context.Background(), uuid.New(), agent.Id)
		assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
	})
}

func TestDeleteAgentCascades(t *testing.T) {
	factory := newFakeFactory()
	userId := uuid.New()
	agent := seedAgent(factory, userId)
	other := seedAgent(factory, userId)

	conversation := &entity.Conversation{Id: uuid.New(), AgentId: agent.Id, UserId: userId}
	keepConversation := &entity.Conversation{Id: uuid.New(), AgentId: other.Id, UserId: userId}
	factory.uow.conversations.conversations = append(factory.uow.conversations.conversations, conversation, keepConversation)
	factory.uow.messages.messages = append(factory.uow.messages.messages,
		&entity.Message{Id: uuid.New(), ConversationId: conversation.Id, Role: entity.MessageRoleUser, Content: "hi", CreatedAt: time.Now()},
		&entity.Message{Id: uuid.New(), ConversationId: conversation.Id, Role: entity.MessageRoleAssistant, Content: "hello", CreatedAt: time.Now()},
		&entity.Message{Id: uuid.New(), ConversationId: keepConversation.Id, Role: entity.MessageRoleUser, Content: "other", CreatedAt: time.Now()},
	)

	svc := NewAgentService(factory, nil)
	require.NoError(t, svc.Delete(context.Background(), userId, agent.Id))

	// Only the deleted agent's conversation tree is gone.
	assert.Len(t, factory.uow.agents.agents, 1)
	require.Len(t, factory.uow.conversations.conversations, 1)
	assert.Equal(t, keepConversation.Id, factory.uow.conversations.conversations[0].Id)
	require.Len(t, factory.uow.messages.messages, 1)
	assert.Equal(t, keepConversation.Id, factory.uow.messages.messages[0].ConversationId)
}

func TestListAgentsNewestFirst(t *testing.T) {
	factory := newFakeFactory()
	userId := uuid.New()
	now := time.Now()

	old := &entity.Agent{Id: uuid.New(), UserId: userId, Name: "old", CreatedAt: now.Add(-time.Hour)}
	fresh := &entity.Agent{Id: uuid.New(), UserId: userId, Name: "fresh", CreatedAt: now}
	factory.uow.agents.agents = append(factory.uow.agents.agents, old, fresh)

	svc := NewAgentService(factory, nil)
	res, err := svc.List(context.Background(), userId)

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "fresh", res[0].Name)
	assert.Equal(t, "old", res[1].Name)
}
