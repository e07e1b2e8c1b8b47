package mapper

import (
	"supercharged-notes-be/internal/entity"
	"supercharged-notes-be/internal/model"
)

type FlashcardMapper struct{}

func NewFlashcardMapper() *FlashcardMapper {
	return &FlashcardMapper{}
}

func (m *FlashcardMapper) ToEntity(s *model.FlashcardSet) *entity.FlashcardSet {
	if s == nil {
		return nil
	}

	cards := make([]entity.Flashcard, len(s.Cards))
	for i, c := range s.Cards {
		cards[i] = entity.Flashcard{
			Id:             c.Id,
			FlashcardSetId: c.FlashcardSetId,
			Front:          c.Front,
			Back:           c.Back,
			CreatedAt:      c.CreatedAt,
		}
	}

	return &entity.FlashcardSet{
		Id:        s.Id,
		UserId:    s.UserId,
		NoteId:    s.NoteId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		Cards:     cards,
	}
}

func (m *FlashcardMapper) ToModel(s *entity.FlashcardSet) *model.FlashcardSet {
	if s == nil {
		return nil
	}

	cards := make([]model.Flashcard, len(s.Cards))
	for i, c := range s.Cards {
		cards[i] = model.Flashcard{
			Id:             c.Id,
			FlashcardSetId: s.Id,
			Front:          c.Front,
			Back:           c.Back,
			CreatedAt:      c.CreatedAt,
		}
	}

	return &model.FlashcardSet{
		Id:        s.Id,
		UserId:    s.UserId,
		NoteId:    s.NoteId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		Cards:     cards,
	}
}

func (m *FlashcardMapper) ToEntities(sets []*model.FlashcardSet) []*entity.FlashcardSet {
	entities := make([]*entity.FlashcardSet, len(sets))
	for i, s := range sets {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
