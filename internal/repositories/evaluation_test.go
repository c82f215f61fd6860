package repositories_test

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/smart-ats/internal/models"
	"alfredoptarigan/smart-ats/internal/repositories"
)

func setUpTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set, skipping integration test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	require.NoError(t, db.AutoMigrate(&models.EvaluationRecord{}))
	return db
}

func TestEvaluationRepository_CreateAndFind(t *testing.T) {
	db := setUpTestDB(t)
	repo := repositories.NewEvaluationRepository(db)

	score, match, summary := "82%", "75%", "Solid backend candidate"
	record := &models.EvaluationRecord{
		ID:              uuid.New(),
		Status:          models.StatusRendered,
		DocumentName:    "resume.pdf",
		OverallATSScore: &score,
		JDMatch:         &match,
		MissingKeywords: []string{"Docker"},
		SkillGaps:       []string{"Leadership"},
		ProfileSummary:  &summary,
		SchemaValid:     true,
		CreatedAt:       time.Now(),
	}
	t.Cleanup(func() { db.Delete(&models.EvaluationRecord{}, "id = ?", record.ID) })

	require.NoError(t, repo.Create(record))

	found, err := repo.FindByID(record.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRendered, found.Status)
	assert.Equal(t, []string{"Docker"}, found.MissingKeywords)
	assert.Equal(t, []string{"Leadership"}, found.SkillGaps)
	require.NotNil(t, found.OverallATSScore)
	assert.Equal(t, "82%", *found.OverallATSScore)

	recent, err := repo.FindRecent(10)
	require.NoError(t, err)
	assert.NotEmpty(t, recent)
}

func TestEvaluationRepository_FindByIDNotFound(t *testing.T) {
	db := setUpTestDB(t)
	repo := repositories.NewEvaluationRepository(db)

	_, err := repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, repositories.ErrEvaluationNotFound)
}
