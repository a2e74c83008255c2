package dto

import (
	"time"

	"github.com/google/uuid"
)

type PlanResponse struct {
	Id                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Slug                string    `json:"slug"`
	Description         string    `json:"description"`
	Tagline             string    `json:"tagline,omitempty"`
	Price               float64   `json:"price"`
	BillingPeriod       string    `json:"billing_period"`
	MaxAgents           int       `json:"max_agents"`
	MaxMessagesPerMonth int       `json:"max_messages_per_month"`
	AnalyticsEnabled    bool      `json:"analytics_enabled"`
	PrioritySupport     bool      `json:"priority_support"`
	IsMostPopular       bool      `json:"is_most_popular"`
}

type CheckoutRequest struct {
	PlanId uuid.UUID `json:"plan_id" validate:"required"`
}

type CheckoutResponse struct {
	OrderId     string `json:"order_id"`
	SnapToken   string `json:"snap_token"`
	RedirectURL string `json:"redirect_url"`
}

type SubscriptionStatusResponse struct {
	SubscriptionId   uuid.UUID `json:"subscription_id"`
	PlanName         string    `json:"plan_name"`
	PlanSlug         string    `json:"plan_slug"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"payment_status"`
	CurrentPeriodEnd time.Time `json:"current_period_end"`
	IsActive         bool      `json:"is_active"`
}

// PaymentNotificationRequest mirrors the Midtrans webhook payload fields we
// verify and act on.
type PaymentNotificationRequest struct {
	TransactionStatus string `json:"transaction_status"`
	OrderId           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	FraudStatus       string `json:"fraud_status"`
	TransactionId     string `json:"transaction_id"`
}
