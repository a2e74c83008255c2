package service

import (
	"context"
	"sort"
	"time"

	"agentcraft-be/internal/dto"
	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/repository/specification"
	"agentcraft-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const recentActivityLimit = 10

// responseTimeBlocks are the fixed 4-hour windows of a day, keyed by the
// hour of the assistant message that closed the exchange.
var responseTimeBlockLabels = [6]string{"12am", "4am", "8am", "12pm", "4pm", "8pm"}

type IAnalyticsService interface {
	DeriveDashboard(ctx context.Context, userId uuid.UUID) (*dto.AnalyticsResponse, error)
}

type analyticsService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAnalyticsService(uowFactory unitofwork.RepositoryFactory) IAnalyticsService {
	return &analyticsService{uowFactory: uowFactory}
}

// DeriveDashboard recomputes every dashboard figure from the stored rows
// on each call. Nothing is cached, so the numbers always reflect the
// transcript as it exists right now.
func (s *analyticsService) DeriveDashboard(ctx context.Context, userId uuid.UUID) (*dto.AnalyticsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	agents, err := uow.AgentRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	conversationIds := make([]uuid.UUID, len(conversations))
	for i, c := range conversations {
		conversationIds[i] = c.Id
	}

	messages, err := uow.MessageRepository().FindAllByConversationIds(ctx, conversationIds)
	if err != nil {
		return nil, err
	}

	activeAgents := 0
	agentNames := make(map[uuid.UUID]string, len(agents))
	for _, a := range agents {
		agentNames[a.Id] = a.Name
		if a.Status == entity.AgentStatusActive {
			activeAgents++
		}
	}

	blocks, overallAvg := responseTimeByBlock(messages)

	return &dto.AnalyticsResponse{
		TotalConversations:  len(conversations),
		TotalMessages:       len(messages),
		ActiveAgents:        activeAgents,
		AvgResponseSeconds:  overallAvg,
		ConversationsPerDay: conversationsByDay(conversations, time.Now()),
		ResponseTimeBlocks:  blocks,
		RecentActivity:      recentActivity(conversations, messages, agentNames),
	}, nil
}

// conversationsByDay buckets conversation creation into the trailing seven
// days, oldest first. Days with no conversations keep a zero entry.
func conversationsByDay(conversations []*entity.Conversation, now time.Time) []dto.DayBucket {
	buckets := make([]dto.DayBucket, 7)
	index := make(map[string]int, 7)

	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i-6)
		key := day.Format("2006-01-02")
		buckets[i] = dto.DayBucket{Day: day.Format("Mon"), Count: 0}
		index[key] = i
	}

	for _, c := range conversations {
		key := c.CreatedAt.Format("2006-01-02")
		if i, ok := index[key]; ok {
			buckets[i].Count++
		}
	}

	return buckets
}

// responseTimeByBlock pairs each user message with the assistant message
// that directly follows it in the same conversation and averages the gap
// per 4-hour block of the assistant's local hour. Clock skew can produce
// non-positive deltas; those samples are discarded.
func responseTimeByBlock(messages []*entity.Message) ([]dto.ResponseTimeBucket, float64) {
	byConversation := make(map[uuid.UUID][]*entity.Message)
	for _, m := range messages {
		byConversation[m.ConversationId] = append(byConversation[m.ConversationId], m)
	}

	sums := [6]float64{}
	counts := [6]int{}
	var totalSum float64
	var totalCount int

	for _, msgs := range byConversation {
		sort.Slice(msgs, func(i, j int) bool {
			return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
		})
		for i := 0; i+1 < len(msgs); i++ {
			if msgs[i].Role != entity.MessageRoleUser || msgs[i+1].Role != entity.MessageRoleAssistant {
				continue
			}
			delta := msgs[i+1].CreatedAt.Sub(msgs[i].CreatedAt).Seconds()
			if delta <= 0 {
				continue
			}
			block := msgs[i+1].CreatedAt.Hour() / 4
			sums[block] += delta
			counts[block]++
			totalSum += delta
			totalCount++
		}
	}

	buckets := make([]dto.ResponseTimeBucket, 6)
	for i := range buckets {
		avg := 0.0
		if counts[i] > 0 {
			avg = sums[i] / float64(counts[i])
		}
		buckets[i] = dto.ResponseTimeBucket{
			Block:      responseTimeBlockLabels[i],
			AvgSeconds: avg,
			Samples:    counts[i],
		}
	}

	overallAvg := 0.0
	if totalCount > 0 {
		overallAvg = totalSum / float64(totalCount)
	}

	return buckets, overallAvg
}

// recentActivity lists the ten most recently touched conversations with a
// preview of the customer's last message.
func recentActivity(conversations []*entity.Conversation, messages []*entity.Message, agentNames map[uuid.UUID]string) []*dto.RecentActivityItem {
	lastUserMessage := make(map[uuid.UUID]*entity.Message)
	for _, m := range messages {
		if m.Role != entity.MessageRoleUser {
			continue
		}
		prev, ok := lastUserMessage[m.ConversationId]
		if !ok || m.CreatedAt.After(prev.CreatedAt) {
			lastUserMessage[m.ConversationId] = m
		}
	}

	sorted := make([]*entity.Conversation, len(conversations))
	copy(sorted, conversations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})

	limit := len(sorted)
	if limit > recentActivityLimit {
		limit = recentActivityLimit
	}

	items := make([]*dto.RecentActivityItem, 0, limit)
	for _, c := range sorted[:limit] {
		agentName := agentNames[c.AgentId]
		if agentName == "" {
			agentName = "Unknown Agent"
		}

		preview := "No messages"
		if m, ok := lastUserMessage[c.Id]; ok {
			preview = deriveTitle(m.Content)
		}

		items = append(items, &dto.RecentActivityItem{
			ConversationId: c.Id,
			AgentName:      agentName,
			Title:          c.Title,
			LastMessage:    preview,
			Timestamp:      c.UpdatedAt,
			Status:         "success",
		})
	}

	return items
}
