package model

import (
	"time"

	"github.com/google/uuid"
)

type QuizSet struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserId    string         `gorm:"type:varchar(255);not null;index"`
	NoteId    *uuid.UUID     `gorm:"type:uuid;index"`
	Title     string         `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	Questions []QuizQuestion `gorm:"foreignKey:QuizSetId;constraint:OnDelete:CASCADE"`
}

func (QuizSet) TableName() string {
	return "quiz_sets"
}

type QuizQuestion struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	QuizSetId     uuid.UUID `gorm:"type:uuid;not null;index"`
	QuestionText  string    `gorm:"type:text;not null"`
	OptionA       string    `gorm:"type:text"`
	OptionB       string    `gorm:"type:text"`
	OptionC       string    `gorm:"type:text"`
	OptionD       string    `gorm:"type:text"`
	CorrectOption string    `gorm:"type:varchar(1)"` // "A".."D"
	Explanation   string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
