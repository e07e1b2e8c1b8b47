package entity

import (
	"time"

	"github.com/google/uuid"
)

type FlashcardSet struct {
	Id        uuid.UUID
	UserId    string
	NoteId    *uuid.UUID
	Title     string
	CreatedAt time.Time
	Cards     []Flashcard
}

type Flashcard struct {
	Id             uuid.UUID
	FlashcardSetId uuid.UUID
	Front          string
	Back           string
	CreatedAt      time.Time
}
