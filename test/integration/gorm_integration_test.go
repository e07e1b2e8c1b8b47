package integration

import (
	"context"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"supercharged-notes-be/internal/entity"
	"supercharged-notes-be/internal/model"
	"supercharged-notes-be/internal/pkg/logger"
	"supercharged-notes-be/internal/repository/cache"
	"supercharged-notes-be/internal/repository/store"
	"supercharged-notes-be/internal/repository/unitofwork"
	"supercharged-notes-be/pkg/database"
	ragcontext "supercharged-notes-be/pkg/rag/context"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverAgainstPostgres(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err, "Failed to connect to DB")
	require.NoError(t, gormDB.AutoMigrate(model.All()...))

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(ctx)

	// A fresh user id per run keeps the test independent of existing rows.
	userID := "it-" + uuid.NewString()
	note := &entity.Note{UserId: userID, Title: "Integration note", Content: "Kirchhoff's current law"}
	require.NoError(t, uow.NoteRepository().Create(ctx, note))
	t.Cleanup(func() {
		gormDB.Unscoped().Where("user_id = ?", userID).Delete(&model.Note{})
	})

	resolver := ragcontext.NewResolver(
		store.NewDocumentStore(uowFactory),
		cache.NewMemoryContextCache(5*time.Minute),
		logger.NewNop(),
	)

	t.Run("document scope reads the note", func(t *testing.T) {
		text := resolver.Resolve(ctx, userID, ragcontext.Document(ragcontext.DocumentRef{
			Kind: ragcontext.KindNote,
			ID:   note.Id.String(),
		}))
		assert.Contains(t, text, "Kirchhoff's current law")
	})

	t.Run("general scope lists every category", func(t *testing.T) {
		text := resolver.Resolve(ctx, userID, ragcontext.General())
		assert.Contains(t, text, "Integration note")
		assert.True(t, strings.Contains(text, "no quizzes"), "empty categories get a placeholder")
	})

	t.Run("other users cannot read the note", func(t *testing.T) {
		text := resolver.Resolve(ctx, "someone-else", ragcontext.Document(ragcontext.DocumentRef{
			Kind:        ragcontext.KindNote,
			ID:          note.Id.String(),
			DisplayName: "Integration note",
		}))
		assert.NotContains(t, text, "Kirchhoff")
		assert.Contains(t, text, "Integration note")
	})
}
