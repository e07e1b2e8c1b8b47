package model

import (
	"time"

	"github.com/google/uuid"
)

type FlashcardSet struct {
	Id        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	UserId    string      `gorm:"type:varchar(255);not null;index"`
	NoteId    *uuid.UUID  `gorm:"type:uuid;index"`
	Title     string      `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time   `gorm:"autoCreateTime"`
	Cards     []Flashcard `gorm:"foreignKey:FlashcardSetId;constraint:OnDelete:CASCADE"`
}

func (FlashcardSet) TableName() string {
	return "flashcard_sets"
}

type Flashcard struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	FlashcardSetId uuid.UUID `gorm:"type:uuid;not null;index"`
	Front          string    `gorm:"type:text;not null"`
	Back           string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (Flashcard) TableName() string {
	return "individual_flashcards"
}
