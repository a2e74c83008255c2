package service

import (
	"context"
	"testing"

	"agentcraft-be/internal/dto"
	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProgressFreshAccount(t *testing.T) {
	factory := newFakeFactory()
	svc := NewOnboardingService(factory, nil)

	res, err := svc.GetProgress(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Equal(t, 0, res.CurrentStep)
	assert.False(t, res.Completed)
}

func TestUpdateProgressSyncsProfile(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, "ada@example.com", "pw")
	svc := NewOnboardingService(factory, nil)

	res, err := svc.UpdateProgress(context.Background(), user.Id, &dto.UpdateOnboardingRequest{
		CurrentStep:  2,
		WizardData:   map[string]interface{}{"industry": "retail"},
		BusinessName: "Ada's Bakery",
		Industry:     "Food",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, res.CurrentStep)
	assert.False(t, res.Completed)

	require.NotNil(t, user.BusinessName)
	assert.Equal(t, "Ada's Bakery", *user.BusinessName)
	require.NotNil(t, user.Industry)
	assert.Equal(t, "Food", *user.Industry)
	assert.Nil(t, user.Goal)
}

func TestCompleteOnboarding(t *testing.T) {
	factory := newFakeFactory()
	user := seedUser(factory, "ada@example.com", "pw")
	svc := NewOnboardingService(factory, nil)

	res, err := svc.Complete(context.Background(), user.Id, &dto.CompleteOnboardingRequest{
		TemplateId:   "website-faq",
		BusinessName: "Ada's Bakery",
		Goal:         "Answer customer questions",
	})

	require.NoError(t, err)
	assert.Equal(t, "Website FAQ Chatbot", res.Agent.Name)
	assert.Equal(t, string(entity.AgentStatusActive), res.Agent.Status)
	assert.True(t, res.Progress.Completed)
	assert.Equal(t, onboardingFinalStep, res.Progress.CurrentStep)

	// The wizard's agent is a real agent row.
	require.Len(t, factory.uow.agents.agents, 1)
	assert.Equal(t, user.Id, factory.uow.agents.agents[0].UserId)
}

func TestCompleteOnboardingUnknownTemplate(t *testing.T) {
	factory := newFakeFactory()
	svc := NewOnboardingService(factory, nil)

	_, err := svc.Complete(context.Background(), uuid.New(), &dto.CompleteOnboardingRequest{
		TemplateId: "does-not-exist",
	})

	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))
}
