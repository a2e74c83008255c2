package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string
type PaymentStatus string
type BillingPeriod string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusInactive SubscriptionStatus = "inactive"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"

	BillingPeriodMonthly BillingPeriod = "monthly"
	BillingPeriodYearly  BillingPeriod = "yearly"
)

type SubscriptionPlan struct {
	Id            uuid.UUID
	Name          string
	Slug          string
	Description   string
	Tagline       string
	Price         float64
	BillingPeriod BillingPeriod
	// -1 = unlimited
	MaxAgents           int
	MaxMessagesPerMonth int
	AnalyticsEnabled    bool
	PrioritySupport     bool
	IsMostPopular       bool
	IsActive            bool
	SortOrder           int
}

type UserSubscription struct {
	Id                    uuid.UUID
	UserId                uuid.UUID
	PlanId                uuid.UUID
	Status                SubscriptionStatus
	CurrentPeriodStart    time.Time
	CurrentPeriodEnd      time.Time
	PaymentStatus         PaymentStatus
	MidtransTransactionId *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
