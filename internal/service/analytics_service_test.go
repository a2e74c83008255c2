package service

import (
	"context"
	"testing"
	"time"

	"agentcraft-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationsByDay(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)

	conversations := []*entity.Conversation{
		{Id: uuid.New(), CreatedAt: now},                        // today
		{Id: uuid.New(), CreatedAt: now.AddDate(0, 0, -1)},      // yesterday
		{Id: uuid.New(), CreatedAt: now.AddDate(0, 0, -1)},      // yesterday
		{Id: uuid.New(), CreatedAt: now.AddDate(0, 0, -6)},      // oldest tracked day
		{Id: uuid.New(), CreatedAt: now.AddDate(0, 0, -7)},      // outside the window
		{Id: uuid.New(), CreatedAt: now.Add(24 * time.Hour)},    // future, ignored
	}

	buckets := conversationsByDay(conversations, now)

	require.Len(t, buckets, 7)
	assert.Equal(t, 1, buckets[0].Count)
	assert.Equal(t, 2, buckets[5].Count)
	assert.Equal(t, 1, buckets[6].Count)

	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, 4, total)

	// Labels run oldest to newest ending on today.
	assert.Equal(t, now.AddDate(0, 0, -6).Format("Mon"), buckets[0].Day)
	assert.Equal(t, now.Format("Mon"), buckets[6].Day)
}

func TestConversationsByDayEmpty(t *testing.T) {
	buckets := conversationsByDay(nil, time.Now())

	require.Len(t, buckets, 7)
	for _, b := range buckets {
		assert.Equal(t, 0, b.Count)
	}
}

func TestResponseTimeByBlock(t *testing.T) {
	conv := uuid.New()
	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC) // 9am falls in the 8am block

	messages := []*entity.Message{
		{Id: uuid.New(), ConversationId: conv, Role: entity.MessageRoleUser, CreatedAt: base},
		{Id: uuid.New(), ConversationId: conv, Role: entity.MessageRoleAssistant, CreatedAt: base.Add(10 * time.Second)},
		{Id: uuid.New(), ConversationId: conv, Role: entity.MessageRoleUser, CreatedAt: base.Add(time.Minute)},
		{Id: uuid.New(), ConversationId: conv, Role: entity.MessageRoleAssistant, CreatedAt: base.Add(time.Minute + 20*time.Second)},
	}

	buckets, overall := responseTimeByBlock(messages)

	require.Len(t, buckets, 6)
	assert.Equal(t, "8am", buckets[2].Block)
	assert.Equal(t, 2, buckets[2].Samples)
	assert.InDelta(t, 15.0, buckets[2].AvgSeconds, 0.01)
	assert.InDelta(t, 15.0, overall, 0.01)

	// The other five blocks stay empty.
	for i, b := range buckets {
		if i == 2 {
			continue
		}
		assert.Equal(t, 0, b.Samples)
		assert.Equal(t, 0.0, b.AvgSeconds)
	}
}

func TestResponseTimeByBlockDiscardsSkew(t *testing.T) {
	conv := uuid.New()
	base := time.Date(2026, 8, 30, 1, 0, 0, 0, time.UTC)

	messages := []*entity.Message{
		// Assistant timestamped before the user message it answers.
		{Id: uuid.New(), ConversationId: conv, Role: entity.MessageRoleUser, CreatedAt: base},
		{Id: uuid.New(), ConversationId: conv, Role: entity.MessageRoleAssistant, CreatedAt: base},
	}

	buckets, overall := responseTimeByBlock(messages)

	assert.Equal(t, 0.0, overall)
	for _, b := range buckets {
		assert.Equal(t, 0, b.Samples)
	}
}

func TestResponseTimeByBlockIgnoresUnpairedTurns(t *testing.T) {
	conv := uuid.New()
	base := time.Date(2026, 8, 30, 13, 0, 0, 0, time.UTC)

	messages := []*entity.Message{
		// Two user messages in a row, only the second is answered.
		{Id: uuid.New(), ConversationId: conv, Role: entity.MessageRoleUser, CreatedAt: base},
		{Id: uuid.New(), ConversationId: conv, Role: entity.MessageRoleUser, CreatedAt: base.Add(5 * time.Second)},
		{Id: uuid.New(), ConversationId: conv, Role: entity.MessageRoleAssistant, CreatedAt: base.Add(8 * time.Second)},
	}

	buckets, overall := responseTimeByBlock(messages)

	assert.Equal(t, 1, buckets[3].Samples)
	assert.InDelta(t, 3.0, overall, 0.01)
}

func TestRecentActivity(t *testing.T) {
	now := time.Now()
	agentId := uuid.New()
	agentNames := map[uuid.UUID]string{agentId: "Support Bot"}

	withMessages := &entity.Conversation{Id: uuid.New(), AgentId: agentId, Title: "Opening hours", UpdatedAt: now}
	noMessages := &entity.Conversation{Id: uuid.New(), AgentId: uuid.New(), Title: "Silent", UpdatedAt: now.Add(-time.Hour)}

	messages := []*entity.Message{
		{Id: uuid.New(), ConversationId: withMessages.Id, Role: entity.MessageRoleUser, Content: "first question", CreatedAt: now.Add(-2 * time.Minute)},
		{Id: uuid.New(), ConversationId: withMessages.Id, Role: entity.MessageRoleAssistant, Content: "an answer", CreatedAt: now.Add(-time.Minute)},
		{Id: uuid.New(), ConversationId: withMessages.Id, Role: entity.MessageRoleUser, Content: "latest question", CreatedAt: now},
	}

	items := recentActivity([]*entity.Conversation{noMessages, withMessages}, messages, agentNames)

	require.Len(t, items, 2)

	// Most recently touched first.
	assert.Equal(t, withMessages.Id, items[0].ConversationId)
	assert.Equal(t, "Support Bot", items[0].AgentName)
	assert.Equal(t, "latest question", items[0].LastMessage)
	assert.Equal(t, "success", items[0].Status)

	// Fallbacks for a conversation with no agent row and no messages.
	assert.Equal(t, "Unknown Agent", items[1].AgentName)
	assert.Equal(t, "No messages", items[1].LastMessage)
}

func TestRecentActivityLimit(t *testing.T) {
	now := time.Now()
	var conversations []*entity.Conversation
	for i := 0; i < recentActivityLimit+5; i++ {
		conversations = append(conversations, &entity.Conversation{
			Id:        uuid.New(),
			UpdatedAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}

	items := recentActivity(conversations, nil, nil)

	assert.Len(t, items, recentActivityLimit)
	assert.Equal(t, conversations[0].Id, items[0].ConversationId)
}

func TestDeriveDashboard(t *testing.T) {
	factory := newFakeFactory()
	userId := uuid.New()
	now := time.Now()

	active := &entity.Agent{Id: uuid.New(), UserId: userId, Name: "Active", Status: entity.AgentStatusActive}
	draft := &entity.Agent{Id: uuid.New(), UserId: userId, Name: "Draft", Status: entity.AgentStatusDraft}
	factory.uow.agents.agents = append(factory.uow.agents.agents, active, draft)

	conv := &entity.Conversation{Id: uuid.New(), AgentId: active.Id, UserId: userId, CreatedAt: now, UpdatedAt: now}
	foreign := &entity.Conversation{Id: uuid.New(), AgentId: uuid.New(), UserId: uuid.New(), CreatedAt: now, UpdatedAt: now}
	factory.uow.conversations.conversations = append(factory.uow.conversations.conversations, conv, foreign)

	factory.uow.messages.messages = append(factory.uow.messages.messages,
		&entity.Message{Id: uuid.New(), ConversationId: conv.Id, Role: entity.MessageRoleUser, Content: "hi", CreatedAt: now.Add(-time.Minute)},
		&entity.Message{Id: uuid.New(), ConversationId: conv.Id, Role: entity.MessageRoleAssistant, Content: "hello", CreatedAt: now},
		&entity.Message{Id: uuid.New(), ConversationId: foreign.Id, Role: entity.MessageRoleUser, Content: "not mine", CreatedAt: now},
	)

	svc := NewAnalyticsService(factory)
	res, err := svc.DeriveDashboard(context.Background(), userId)

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalConversations)
	assert.Equal(t, 2, res.TotalMessages)
	assert.Equal(t, 1, res.ActiveAgents)
	require.Len(t, res.RecentActivity, 1)
	assert.Equal(t, "Active", res.RecentActivity[0].AgentName)
}
