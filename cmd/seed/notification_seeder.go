package main

import (
	"log"

	"agentcraft-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedNotificationTypes populates the database with default notification types.
func SeedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "USER_LOGIN",
			DisplayName: "Login Activity",
			Template:    "You logged in as {email}",
			TargetType:  "SELF",
			Priority:    "LOW",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "AGENT_CREATED",
			DisplayName: "Agent Created",
			Template:    "Your new AI agent is ready to chat",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "SUBSCRIPTION_ACTIVATED",
			DisplayName: "Subscription Activated",
			Template:    "Your subscription is now active. Order: {order_id}",
			TargetType:  "SELF",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		// --- Administrative & System Notifications ---
		{
			Code:        "USER_REGISTERED",
			DisplayName: "New User Registration",
			Template:    "New user registered: {email} ({user_id})",
			TargetType:  "ADMIN",
			Priority:    "MEDIUM",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        "USER_DELETED",
			DisplayName: "User Account Deleted",
			Template:    "User deleted account: {user_id}",
			TargetType:  "ADMIN",
			Priority:    "MEDIUM",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        "SUBSCRIPTION_CREATED",
			DisplayName: "New Checkout Started",
			Template:    "Checkout started by user {user_id}. Order: {order_id}",
			TargetType:  "ADMIN",
			Priority:    "HIGH",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        "SYSTEM_BROADCAST",
			DisplayName: "System Announcement",
			Template:    "{message}",
			TargetType:  "BROADCAST",
			Priority:    "HIGH",
			Channels:    datatypes.JSON([]byte(`["web"]`)),
			IsActive:    true,
		},
	}

	for _, t := range types {
		err := db.Where("code = ?", t.Code).FirstOrCreate(&t).Error
		if err != nil {
			log.Printf("Error seeding notification type %s: %v", t.Code, err)
		}
	}
	log.Println("✅ Notification types seeded successfully.")
}
