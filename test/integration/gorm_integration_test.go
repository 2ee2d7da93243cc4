package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/repository/specification"
	"hr-assistant-be/internal/repository/unitofwork"
	"hr-assistant-be/pkg/database"
	"hr-assistant-be/pkg/memory"

	"github.com/google/uuid"
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

	assert.NotNil(t, uow.RecordRepository())
	assert.NotNil(t, uow.ConversationRepository())
	assert.NotNil(t, uow.PolicyEmbeddingRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Check Record Repository Roundtrip", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()
		join := time.Date(2022, 2, 14, 0, 0, 0, 0, time.UTC)

		record := &entity.EmployeeRecord{
			Id:              uuid.New(),
			UserId:          userId,
			Name:            "Integration Test",
			Email:           "integration-" + uuid.New().String() + "@example.com",
			Role:            entity.RoleEmployee,
			Position:        "Tester",
			Department:      "QA",
			BaseSalary:      50000,
			Bonus:           1000,
			AnnualLeaveDays: 10,
			SickLeaveDays:   5,
			JoinDate:        &join,
			UploadedDocuments: map[string]bool{
				"contract": true,
			},
		}
		assert.NoError(t, uow.RecordRepository().Create(ctx, record))
		defer uow.RecordRepository().Delete(ctx, record.Id)

		found, err := uow.RecordRepository().FindOne(ctx, specification.ByUserID{UserID: userId})
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.Equal(t, record.Email, found.Email)
			assert.Equal(t, 50000.0, found.BaseSalary)
			assert.True(t, found.UploadedDocuments["contract"])
		}
	})

	t.Run("Check Conversation Append Ordering", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()
		store := memory.NewStore(uowFactory)

		err := store.Append(ctx, userId,
			&entity.Turn{Role: entity.TurnRoleUser, Content: "first"},
			&entity.Turn{Role: entity.TurnRoleAssistant, Content: "second"},
		)
		assert.NoError(t, err)
		err = store.Append(ctx, userId,
			&entity.Turn{Role: entity.TurnRoleUser, Content: "third"},
			&entity.Turn{Role: entity.TurnRoleAssistant, Content: "fourth"},
		)
		assert.NoError(t, err)

		turns, err := store.Read(ctx, userId)
		assert.NoError(t, err)
		if assert.Len(t, turns, 4) {
			assert.Equal(t, "first", turns[0].Content)
			assert.Equal(t, "fourth", turns[3].Content)
			for i := 1; i < len(turns); i++ {
				assert.Greater(t, turns[i].Seq, turns[i-1].Seq, "seq must be strictly increasing")
			}
		}
	})

	t.Run("Check Policy Embedding Repository", func(t *testing.T) {
		count, err := uow.PolicyEmbeddingRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("PolicyChunk count: %d", count)
	})
}
