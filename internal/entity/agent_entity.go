package entity

import (
	"time"

	"github.com/google/uuid"
)

type AgentStatus string

const (
	AgentStatusActive   AgentStatus = "active"
	AgentStatusInactive AgentStatus = "inactive"
	AgentStatusDraft    AgentStatus = "draft"
)

type Agent struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Name         string
	Description  string
	Template     string // template id, e.g. "website-faq"
	SystemPrompt string
	Status       AgentStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
