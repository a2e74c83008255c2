package service

import (
	"context"

	"agentcraft-be/internal/dto"
	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/pkg/apperror"
	"agentcraft-be/internal/repository/specification"
	"agentcraft-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IConversationService interface {
	List(ctx context.Context, userId uuid.UUID, agentId *uuid.UUID) ([]*dto.ConversationResponse, error)
	GetDetail(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) (*dto.ConversationDetailResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) error
}

type conversationService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewConversationService(uowFactory unitofwork.RepositoryFactory) IConversationService {
	return &conversationService{uowFactory: uowFactory}
}

func (s *conversationService) List(ctx context.Context, userId uuid.UUID, agentId *uuid.UUID) ([]*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if agentId != nil {
		specs = append(specs, specification.Filter("agent_id", *agentId))
	}

	conversations, err := uow.ConversationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ConversationResponse, len(conversations))
	for i, c := range conversations {
		res[i] = conversationToResponse(c)
	}
	return res, nil
}

func (s *conversationService) GetDetail(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) (*dto.ConversationDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := s.findOwnedConversation(ctx, uow, userId, conversationId)
	if err != nil {
		return nil, err
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.Filter("conversation_id", conversation.Id),
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	msgRes := make([]*dto.ChatMessageResponse, len(messages))
	for i, m := range messages {
		msgRes[i] = messageToResponse(m)
	}

	return &dto.ConversationDetailResponse{
		Conversation: conversationToResponse(conversation),
		Messages:     msgRes,
	}, nil
}

func (s *conversationService) Delete(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := s.findOwnedConversation(ctx, uow, userId, conversationId)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().DeleteByConversationId(ctx, conversation.Id); err != nil {
		return err
	}
	if err := uow.ConversationRepository().Delete(ctx, conversation.Id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *conversationService) findOwnedConversation(ctx context.Context, uow unitofwork.UnitOfWork, userId, conversationId uuid.UUID) (*entity.Conversation, error) {
	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, apperror.NotFound("conversation not found")
	}
	if conversation.UserId != userId {
		return nil, apperror.Forbidden("conversation belongs to another user")
	}
	return conversation, nil
}

func conversationToResponse(c *entity.Conversation) *dto.ConversationResponse {
	return &dto.ConversationResponse{
		Id:        c.Id,
		AgentId:   c.AgentId,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
