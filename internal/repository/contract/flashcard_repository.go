package contract

import (
	"context"

	"supercharged-notes-be/internal/entity"
	"supercharged-notes-be/internal/repository/specification"
)

type FlashcardSetRepository interface {
	Create(ctx context.Context, set *entity.FlashcardSet) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FlashcardSet, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FlashcardSet, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
