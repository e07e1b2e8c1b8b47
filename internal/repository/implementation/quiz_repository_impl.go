package implementation

import (
	"context"
	"errors"

	"supercharged-notes-be/internal/entity"
	"supercharged-notes-be/internal/mapper"
	"supercharged-notes-be/internal/model"
	"supercharged-notes-be/internal/repository/contract"
	"supercharged-notes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuizMapper
}

func NewQuizRepository(db *gorm.DB) contract.QuizRepository {
	return &QuizRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuizMapper(),
	}
}

// Create inserts the set together with its questions.
func (r *QuizRepositoryImpl) Create(ctx context.Context, quiz *entity.QuizSet) error {
	if quiz.Id == uuid.Nil {
		quiz.Id = uuid.New()
	}
	for i := range quiz.Questions {
		if quiz.Questions[i].Id == uuid.Nil {
			quiz.Questions[i].Id = uuid.New()
		}
	}
	m := r.mapper.ToModel(quiz)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*quiz = *r.mapper.ToEntity(m)
	return nil
}

func (r *QuizRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QuizSet, error) {
	var m model.QuizSet
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *QuizRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizSet, error) {
	var models []*model.QuizSet
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *QuizRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.QuizSet{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
