package contract

import (
	"context"

	"supercharged-notes-be/internal/entity"
	"supercharged-notes-be/internal/repository/specification"
)

type QuizRepository interface {
	Create(ctx context.Context, quiz *entity.QuizSet) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QuizSet, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizSet, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
