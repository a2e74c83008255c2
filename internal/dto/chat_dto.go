package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	ConversationId *uuid.UUID `json:"conversation_id"`
	Content        string     `json:"content" validate:"required"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatResponse struct {
	ConversationId    uuid.UUID            `json:"conversation_id"`
	ConversationTitle string               `json:"title"`
	Sent              *ChatMessageResponse `json:"sent"`
	Reply             *ChatMessageResponse `json:"reply"`
}

type ConversationResponse struct {
	Id        uuid.UUID `json:"id"`
	AgentId   uuid.UUID `json:"agent_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ConversationDetailResponse struct {
	Conversation *ConversationResponse  `json:"conversation"`
	Messages     []*ChatMessageResponse `json:"messages"`
}
