package main

import (
	"log"
	"os"

	"supercharged-notes-be/internal/model"
	"supercharged-notes-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewVerboseGormDB(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. AutoMigrate the document tables read by the context resolver
	models := model.All()
	log.Printf("Running AutoMigrate for %d tables...", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 4. Composite indexes for the user scoped, newest first listings
	indexSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_notes_user_created ON notes (user_id, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_quiz_sets_user_created ON quiz_sets (user_id, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_flashcard_sets_user_created ON flashcard_sets (user_id, created_at DESC);`,
	}
	for _, sql := range indexSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to create index: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
