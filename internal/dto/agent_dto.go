package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAgentRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description"`
	Template    string `json:"template" validate:"required"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive draft"`
}

type UpdateAgentRequest struct {
	Name        string `json:"name" validate:"omitempty,min=1,max=255"`
	Description string `json:"description"`
	Template    string `json:"template"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive draft"`
}

type AgentResponse struct {
	Id           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Template     string    `json:"template"`
	SystemPrompt string    `json:"system_prompt"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
