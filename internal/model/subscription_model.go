package model

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlan struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Slug          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description   string    `gorm:"type:text"`
	Tagline       string    `gorm:"type:text"` // Subtitle for pricing modal
	Price         float64   `gorm:"type:decimal(10,2);not null"`
	BillingPeriod string    `gorm:"type:varchar(20);not null"`
	// Limits, -1 = unlimited
	MaxAgents           int `gorm:"default:1"`
	MaxMessagesPerMonth int `gorm:"default:100"`
	// Feature Flags
	AnalyticsEnabled bool `gorm:"default:false"`
	PrioritySupport  bool `gorm:"default:false"`
	// Display Settings
	IsMostPopular bool `gorm:"default:false"`
	IsActive      bool `gorm:"default:true"`
	SortOrder     int  `gorm:"default:0"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

type UserSubscription struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId                uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanId                uuid.UUID `gorm:"type:uuid;not null;index"`
	Status                string    `gorm:"type:varchar(50);not null"`
	CurrentPeriodStart    time.Time `gorm:"not null"`
	CurrentPeriodEnd      time.Time `gorm:"not null"`
	PaymentStatus         string    `gorm:"type:varchar(50);not null"`
	MidtransTransactionId *string   `gorm:"type:varchar(255)"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}
