package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Agent struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name         string         `gorm:"type:varchar(255);not null"`
	Description  string         `gorm:"type:text"`
	Template     string         `gorm:"type:varchar(100);not null"`
	SystemPrompt string         `gorm:"type:text;not null"`
	Status       string         `gorm:"type:varchar(20);not null;default:'draft'"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Agent) TableName() string {
	return "agents"
}
