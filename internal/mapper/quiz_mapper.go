package mapper

import (
	"supercharged-notes-be/internal/entity"
	"supercharged-notes-be/internal/model"
)

type QuizMapper struct{}

func NewQuizMapper() *QuizMapper {
	return &QuizMapper{}
}

func (m *QuizMapper) ToEntity(q *model.QuizSet) *entity.QuizSet {
	if q == nil {
		return nil
	}

	questions := make([]entity.QuizQuestion, len(q.Questions))
	for i, qq := range q.Questions {
		questions[i] = entity.QuizQuestion{
			Id:            qq.Id,
			QuizSetId:     qq.QuizSetId,
			QuestionText:  qq.QuestionText,
			OptionA:       qq.OptionA,
			OptionB:       qq.OptionB,
			OptionC:       qq.OptionC,
			OptionD:       qq.OptionD,
			CorrectOption: qq.CorrectOption,
			Explanation:   qq.Explanation,
			CreatedAt:     qq.CreatedAt,
		}
	}

	return &entity.QuizSet{
		Id:        q.Id,
		UserId:    q.UserId,
		NoteId:    q.NoteId,
		Title:     q.Title,
		CreatedAt: q.CreatedAt,
		Questions: questions,
	}
}

func (m *QuizMapper) ToModel(q *entity.QuizSet) *model.QuizSet {
	if q == nil {
		return nil
	}

	questions := make([]model.QuizQuestion, len(q.Questions))
	for i, qq := range q.Questions {
		questions[i] = model.QuizQuestion{
			Id:            qq.Id,
			QuizSetId:     q.Id,
			QuestionText:  qq.QuestionText,
			OptionA:       qq.OptionA,
			OptionB:       qq.OptionB,
			OptionC:       qq.OptionC,
			OptionD:       qq.OptionD,
			CorrectOption: qq.CorrectOption,
			Explanation:   qq.Explanation,
			CreatedAt:     qq.CreatedAt,
		}
	}

	return &model.QuizSet{
		Id:        q.Id,
		UserId:    q.UserId,
		NoteId:    q.NoteId,
		Title:     q.Title,
		CreatedAt: q.CreatedAt,
		Questions: questions,
	}
}

func (m *QuizMapper) ToEntities(sets []*model.QuizSet) []*entity.QuizSet {
	entities := make([]*entity.QuizSet, len(sets))
	for i, q := range sets {
		entities[i] = m.ToEntity(q)
	}
	return entities
}
