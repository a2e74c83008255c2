package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OnboardingProgress struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	CurrentStep int            `gorm:"default:0"`
	WizardData  datatypes.JSON `gorm:"type:jsonb"`
	Completed   bool           `gorm:"default:false"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (OnboardingProgress) TableName() string {
	return "onboarding_progress"
}
