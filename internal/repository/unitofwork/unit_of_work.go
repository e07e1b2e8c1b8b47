package unitofwork

import (
	"context"

	"supercharged-notes-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NoteRepository() contract.NoteRepository
	QuizRepository() contract.QuizRepository
	FlashcardSetRepository() contract.FlashcardSetRepository
}
