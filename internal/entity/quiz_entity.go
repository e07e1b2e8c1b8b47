package entity

import (
	"time"

	"github.com/google/uuid"
)

type QuizSet struct {
	Id        uuid.UUID
	UserId    string
	NoteId    *uuid.UUID
	Title     string
	CreatedAt time.Time
	Questions []QuizQuestion
}

type QuizQuestion struct {
	Id            uuid.UUID
	QuizSetId     uuid.UUID
	QuestionText  string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectOption string
	Explanation   string
	CreatedAt     time.Time
}
