package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"agentcraft-be/internal/repository/unitofwork"
	"agentcraft-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.AgentRepository())
	assert.NotNil(t, uow.SubscriptionRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Agent Repository", func(t *testing.T) {
		count, err := uow.AgentRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Agent count: %d", count)
	})

	t.Run("Check Message Repository", func(t *testing.T) {
		count, err := uow.MessageRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Message count: %d", count)
	})
}
