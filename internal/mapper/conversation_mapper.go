package mapper

import (
	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}
	return &entity.Conversation{
		Id:        c.Id,
		AgentId:   c.AgentId,
		UserId:    c.UserId,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}
	return &model.Conversation{
		Id:        c.Id,
		AgentId:   c.AgentId,
		UserId:    c.UserId,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *ConversationMapper) ToEntities(convs []*model.Conversation) []*entity.Conversation {
	entities := make([]*entity.Conversation, len(convs))
	for i, c := range convs {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           entity.MessageRole(msg.Role),
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           string(msg.Role),
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *MessageMapper) ToEntities(msgs []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}
