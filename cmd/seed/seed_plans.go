package main

import (
	"log"
	"os"

	"agentcraft-be/internal/model"
	"agentcraft-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Subscription Plans...")

	plans := []model.SubscriptionPlan{
		{
			Name:                "Starter",
			Slug:                "starter",
			Tagline:             "For businesses trying out their first AI agent",
			Description:         "One AI agent with basic chat and dashboard access",
			Price:               49000,
			BillingPeriod:       "monthly",
			MaxAgents:           1,
			MaxMessagesPerMonth: 500,
			AnalyticsEnabled:    false,
			PrioritySupport:     false,
			IsMostPopular:       false,
			IsActive:            true,
			SortOrder:           1,
		},
		{
			Name:                "Growth",
			Slug:                "growth",
			Tagline:             "For growing teams that need more than one agent",
			Description:         "Up to five AI agents with full dashboard analytics",
			Price:               149000,
			BillingPeriod:       "monthly",
			MaxAgents:           5,
			MaxMessagesPerMonth: 5000,
			AnalyticsEnabled:    true,
			PrioritySupport:     false,
			IsMostPopular:       true,
			IsActive:            true,
			SortOrder:           2,
		},
		{
			Name:                "Professional",
			Slug:                "professional",
			Tagline:             "For businesses running AI agents at scale",
			Description:         "Unlimited AI agents, unlimited messages and priority support",
			Price:               399000,
			BillingPeriod:       "monthly",
			MaxAgents:           -1,
			MaxMessagesPerMonth: -1,
			AnalyticsEnabled:    true,
			PrioritySupport:     true,
			IsMostPopular:       false,
			IsActive:            true,
			SortOrder:           3,
		},
	}

	for _, p := range plans {
		var existing model.SubscriptionPlan
		if err := db.Where("slug = ?", p.Slug).First(&existing).Error; err == nil {
			log.Printf("Plan '%s' already exists, skipping...", p.Slug)
			continue
		}

		if err := db.Create(&p).Error; err != nil {
			color.Red("Error creating plan '%s': %v", p.Slug, err)
		} else {
			color.Green("Created plan: %s (%s)", p.Name, p.Slug)
		}
	}

	color.Cyan("Plan seeding completed!")

	log.Println("Seeding Notification Types...")
	SeedNotificationTypes(db)
}
