package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/askhubdev/askhub/backend/internal/models"
	"github.com/askhubdev/askhub/backend/internal/votes"
)

// setupTestDB starts a throwaway Postgres container and migrates the
// schema into it. Set INTEGRATION=1 to run these tests; they need Docker.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("set INTEGRATION=1 to run container-backed tests")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("askhub_test"),
		tcpostgres.WithUsername("askhub"),
		tcpostgres.WithPassword("askhub"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(time.Minute)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Question{},
		&models.Answer{},
		&models.Vote{},
	))
	return db
}

func TestRepositories_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	asker := models.User{Username: "asker", Email: "asker@example.com"}
	voter := models.User{Username: "voter", Email: "voter@example.com"}
	require.NoError(t, db.Create(&asker).Error)
	require.NoError(t, db.Create(&voter).Error)

	questions := NewQuestionRepo(db)
	answers := NewAnswerRepo(db)
	tags := NewTagRepo(db)

	created, err := tags.FindOrCreateTags(ctx, []string{"go", "storage"})
	require.NoError(t, err)
	require.Len(t, created, 2)

	q := &models.Question{Title: "Object storage in Go", Body: "details", AuthorID: asker.ID, Tags: created}
	require.NoError(t, questions.CreateQuestion(ctx, q))

	require.NoError(t, answers.CreateAnswer(ctx, &models.Answer{
		Body: "use presigned urls", QuestionID: q.ID, AuthorID: voter.ID,
	}))

	all, err := questions.FetchAllQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Tags, 2)
	assert.Len(t, all[0].Answers, 1)
	assert.Equal(t, "asker", all[0].Author.Username)

	counts, err := tags.FetchTagCounts(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.TagCount{
		{Name: "go", QuestionCount: 1},
		{Name: "storage", QuestionCount: 1},
	}, counts)

	author, err := questions.AuthorOf(ctx, q.ID, models.KindQuestion)
	require.NoError(t, err)
	assert.Equal(t, asker.ID, author)
}

func TestVoteRepo_LedgerAgainstPostgres(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	asker := models.User{Username: "asker", Email: "asker@example.com"}
	voter := models.User{Username: "voter", Email: "voter@example.com"}
	require.NoError(t, db.Create(&asker).Error)
	require.NoError(t, db.Create(&voter).Error)

	questions := NewQuestionRepo(db)
	q := &models.Question{Title: "t", AuthorID: asker.ID}
	require.NoError(t, questions.CreateQuestion(ctx, q))

	ledger := votes.NewLedger(NewVoteRepo(db), questions)

	require.NoError(t, ledger.RegisterVote(ctx, voter.ID, q.ID, models.KindQuestion, 1))
	require.NoError(t, ledger.RegisterVote(ctx, voter.ID, q.ID, models.KindQuestion, -1))

	var score int
	require.NoError(t, db.Model(&models.Question{}).Where("id = ?", q.ID).Select("score").Take(&score).Error)
	assert.Equal(t, -1, score)

	var voteRows int64
	require.NoError(t, db.Model(&models.Vote{}).Count(&voteRows).Error)
	assert.EqualValues(t, 1, voteRows)

	assert.ErrorIs(t, ledger.RegisterVote(ctx, asker.ID, q.ID, models.KindQuestion, 1), votes.ErrSelfVote)
}
