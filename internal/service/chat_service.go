package service

import (
	"context"
	"strings"
	"time"

	"agentcraft-be/internal/dto"
	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/pkg/apperror"
	"agentcraft-be/internal/repository/specification"
	"agentcraft-be/internal/repository/unitofwork"

	"agentcraft-be/pkg/llm"

	"github.com/google/uuid"
)

const (
	chatTemperature    = 0.7
	chatMaxTokens      = 500
	maxTitleLength     = 50
	conversationEnding = "..."
)

type IChatService interface {
	SendTurn(ctx context.Context, userId uuid.UUID, agentId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   llm.LLMProvider
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, provider llm.LLMProvider) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		provider:   provider,
	}
}

func (s *chatService) SendTurn(ctx context.Context, userId uuid.UUID, agentId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperror.InvalidInput("message content is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Ownership is settled before anything touches the provider.
	agent, err := uow.AgentRepository().FindOne(ctx, specification.ByID{ID: agentId})
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, apperror.NotFound("agent not found")
	}
	if agent.UserId != userId {
		return nil, apperror.Forbidden("agent belongs to another user")
	}

	conversation, err := s.resolveConversation(ctx, uow, userId, agent, req.ConversationId, content)
	if err != nil {
		return nil, err
	}

	userMessage := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Role:           entity.MessageRoleUser,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, userMessage); err != nil {
		return nil, err
	}

	history, err := uow.MessageRepository().FindAll(ctx,
		specification.Filter("conversation_id", conversation.Id),
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	prompt := make([]llm.Message, 0, len(history)+1)
	prompt = append(prompt, llm.Message{Role: "system", Content: agent.SystemPrompt})
	for _, m := range history {
		prompt = append(prompt, llm.Message{Role: string(m.Role), Content: m.Content})
	}

	// The user message above stays persisted even when the provider fails;
	// the client retries the turn and the transcript keeps every attempt.
	reply, err := s.provider.Chat(ctx, prompt,
		llm.WithTemperature(chatTemperature),
		llm.WithMaxTokens(chatMaxTokens),
	)
	if err != nil {
		return nil, mapProviderError(err)
	}

	assistantMessage := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Role:           entity.MessageRoleAssistant,
		Content:        reply,
		CreatedAt:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, assistantMessage); err != nil {
		return nil, err
	}

	if err := uow.ConversationRepository().Touch(ctx, conversation.Id); err != nil {
		return nil, err
	}

	return &dto.SendChatResponse{
		ConversationId:    conversation.Id,
		ConversationTitle: conversation.Title,
		Sent:              messageToResponse(userMessage),
		Reply:             messageToResponse(assistantMessage),
	}, nil
}

func (s *chatService) resolveConversation(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, agent *entity.Agent, conversationId *uuid.UUID, firstMessage string) (*entity.Conversation, error) {
	if conversationId != nil {
		conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: *conversationId})
		if err != nil {
			return nil, err
		}
		if conversation == nil {
			return nil, apperror.NotFound("conversation not found")
		}
		// A conversation is bound to both its owner and its agent; routing a
		// turn through a different agent would leak another prompt's context.
		if conversation.UserId != userId || conversation.AgentId != agent.Id {
			return nil, apperror.Forbidden("conversation does not belong to this agent")
		}
		return conversation, nil
	}

	conversation := &entity.Conversation{
		Id:        uuid.New(),
		AgentId:   agent.Id,
		UserId:    userId,
		Title:     deriveTitle(firstMessage),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

// deriveTitle takes the first 50 characters of the opening message.
func deriveTitle(message string) string {
	runes := []rune(message)
	if len(runes) <= maxTitleLength {
		return message
	}
	return string(runes[:maxTitleLength]) + conversationEnding
}

func mapProviderError(err error) error {
	switch llm.KindOf(err) {
	case llm.KindQuotaExceeded:
		return apperror.Wrap(apperror.KindQuotaExceeded, "AI provider quota exceeded, try again later", err)
	case llm.KindInvalidRequest:
		return apperror.Wrap(apperror.KindUpstreamInvalid, "AI provider rejected the request", err)
	default:
		return apperror.Wrap(apperror.KindUnknown, "AI provider request failed", err)
	}
}

func messageToResponse(m *entity.Message) *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
		Id:        m.Id,
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
