package dto

import (
	"time"

	"github.com/google/uuid"
)

type DayBucket struct {
	Day   string `json:"day"` // weekday label, e.g. "Mon"
	Count int    `json:"count"`
}

type ResponseTimeBucket struct {
	Block      string  `json:"block"` // "12am", "4am", "8am", "12pm", "4pm", "8pm"
	AvgSeconds float64 `json:"avg_seconds"`
	Samples    int     `json:"samples"`
}

type RecentActivityItem struct {
	ConversationId uuid.UUID `json:"conversation_id"`
	AgentName      string    `json:"agent_name"`
	Title          string    `json:"title"`
	LastMessage    string    `json:"last_message"`
	Timestamp      time.Time `json:"timestamp"`
	Status         string    `json:"status"`
}

type AnalyticsResponse struct {
	TotalConversations  int                   `json:"total_conversations"`
	TotalMessages       int                   `json:"total_messages"`
	ActiveAgents        int                   `json:"active_agents"`
	AvgResponseSeconds  float64               `json:"avg_response_seconds"`
	ConversationsPerDay []DayBucket           `json:"conversations_per_day"`
	ResponseTimeBlocks  []ResponseTimeBucket  `json:"response_time_blocks"`
	RecentActivity      []*RecentActivityItem `json:"recent_activity"`
}
