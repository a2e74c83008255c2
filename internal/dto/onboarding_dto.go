package dto

import (
	"time"

	"github.com/google/uuid"
)

type OnboardingProgressResponse struct {
	Id          uuid.UUID              `json:"id"`
	CurrentStep int                    `json:"current_step"`
	WizardData  map[string]interface{} `json:"wizard_data,omitempty"`
	Completed   bool                   `json:"completed"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

type UpdateOnboardingRequest struct {
	CurrentStep  int                    `json:"current_step" validate:"min=0"`
	WizardData   map[string]interface{} `json:"wizard_data"`
	BusinessName string                 `json:"business_name"`
	Industry     string                 `json:"industry"`
	Goal         string                 `json:"goal"`
}

type CompleteOnboardingRequest struct {
	TemplateId   string `json:"template_id" validate:"required"`
	BusinessName string `json:"business_name"`
	Industry     string `json:"industry"`
	Goal         string `json:"goal"`
}

type CompleteOnboardingResponse struct {
	Agent    *AgentResponse              `json:"agent"`
	Progress *OnboardingProgressResponse `json:"progress"`
}
