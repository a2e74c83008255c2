package entity

import (
	"time"

	"github.com/google/uuid"
)

type OnboardingProgress struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	CurrentStep int
	WizardData  map[string]interface{}
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
