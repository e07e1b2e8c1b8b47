package specification

import "gorm.io/gorm"

// WithQuestions preloads quiz questions in creation order.
type WithQuestions struct{}

func (s WithQuestions) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Questions", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at ASC")
	})
}

// WithCards preloads flashcards in creation order.
type WithCards struct{}

func (s WithCards) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Cards", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at ASC")
	})
}
