package store

import (
	"context"

	"supercharged-notes-be/internal/entity"
	"supercharged-notes-be/internal/repository/specification"
	"supercharged-notes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// DocumentStore is the read side of the study material tables, scoped by owner.
// Malformed document ids are reported as not found.
type DocumentStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDocumentStore(uowFactory unitofwork.RepositoryFactory) *DocumentStore {
	return &DocumentStore{uowFactory: uowFactory}
}

var newestFirst = specification.OrderBy{Field: "created_at", Desc: true}

func (s *DocumentStore) FetchNote(ctx context.Context, id, userID string) (*entity.Note, error) {
	noteID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: noteID},
		specification.UserOwnedBy{UserID: userID},
	)
}

func (s *DocumentStore) FetchQuiz(ctx context.Context, id, userID string) (*entity.QuizSet, error) {
	quizID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.QuizRepository().FindOne(ctx,
		specification.ByID{ID: quizID},
		specification.UserOwnedBy{UserID: userID},
		specification.WithQuestions{},
	)
}

func (s *DocumentStore) FetchFlashcardSet(ctx context.Context, id, userID string) (*entity.FlashcardSet, error) {
	setID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.FlashcardSetRepository().FindOne(ctx,
		specification.ByID{ID: setID},
		specification.UserOwnedBy{UserID: userID},
		specification.WithCards{},
	)
}

func (s *DocumentStore) ListNotes(ctx context.Context, userID string) ([]*entity.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NoteRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userID},
		newestFirst,
	)
}

func (s *DocumentStore) ListQuizzes(ctx context.Context, userID string) ([]*entity.QuizSet, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.QuizRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userID},
		specification.WithQuestions{},
		newestFirst,
	)
}

func (s *DocumentStore) ListFlashcardSets(ctx context.Context, userID string) ([]*entity.FlashcardSet, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.FlashcardSetRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userID},
		specification.WithCards{},
		newestFirst,
	)
}
