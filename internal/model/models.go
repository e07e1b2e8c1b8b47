package model

// All lists every table owned by the document store, in migration order.
func All() []interface{} {
	return []interface{}{
		&Note{},
		&QuizSet{},
		&QuizQuestion{},
		&FlashcardSet{},
		&Flashcard{},
	}
}
