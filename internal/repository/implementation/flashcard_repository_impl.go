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

type FlashcardSetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FlashcardMapper
}

func NewFlashcardSetRepository(db *gorm.DB) contract.FlashcardSetRepository {
	return &FlashcardSetRepositoryImpl{
		db:     db,
		mapper: mapper.NewFlashcardMapper(),
	}
}

// Create inserts the set together with its cards.
func (r *FlashcardSetRepositoryImpl) Create(ctx context.Context, set *entity.FlashcardSet) error {
	if set.Id == uuid.Nil {
		set.Id = uuid.New()
	}
	for i := range set.Cards {
		if set.Cards[i].Id == uuid.Nil {
			set.Cards[i].Id = uuid.New()
		}
	}
	m := r.mapper.ToModel(set)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*set = *r.mapper.ToEntity(m)
	return nil
}

func (r *FlashcardSetRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FlashcardSet, error) {
	var m model.FlashcardSet
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FlashcardSetRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FlashcardSet, error) {
	var models []*model.FlashcardSet
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FlashcardSetRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.FlashcardSet{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
