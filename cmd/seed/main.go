package main

import (
	"context"
	"flag"
	"log"
	"os"

	"supercharged-notes-be/internal/entity"
	"supercharged-notes-be/internal/repository/specification"
	"supercharged-notes-be/internal/repository/unitofwork"
	"supercharged-notes-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	userID := flag.String("user", "demo-user", "owner of the seeded study material")
	flag.Parse()

	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	existing, err := uow.NoteRepository().Count(ctx, specification.UserOwnedBy{UserID: *userID})
	if err != nil {
		log.Fatalf("Error: Failed to count notes: %v", err)
	}
	if existing > 0 {
		log.Printf("User '%s' already has %d notes, skipping...", *userID, existing)
		return
	}

	log.Printf("Seeding study material for user '%s'...", *userID)

	if err := uow.Begin(ctx); err != nil {
		log.Fatalf("Error: Failed to begin transaction: %v", err)
	}
	if err := seed(ctx, uow, *userID); err != nil {
		_ = uow.Rollback()
		log.Fatalf("Error: Seeding failed: %v", err)
	}
	if err := uow.Commit(); err != nil {
		log.Fatalf("Error: Failed to commit: %v", err)
	}

	log.Println("Seeding completed!")
}

func seed(ctx context.Context, uow unitofwork.UnitOfWork, userID string) error {
	notes := []*entity.Note{
		{
			UserId:  userID,
			Title:   "Ohm's law",
			Content: "Voltage equals current times resistance (V = IR). Resistors in series add; in parallel the reciprocals add.",
		},
		{
			UserId:  userID,
			Title:   "Voltage dividers",
			Content: "Two series resistors split the input voltage: Vout = Vin * R2 / (R1 + R2).\n\n```circuit\nR1=10k\nR2=10k\nVin=5V\n```",
		},
	}
	for _, n := range notes {
		if err := uow.NoteRepository().Create(ctx, n); err != nil {
			return err
		}
		log.Printf("Created note: %s", n.Title)
	}

	quiz := &entity.QuizSet{
		UserId: userID,
		Title:  "Basic circuits",
		Questions: []entity.QuizQuestion{
			{
				QuestionText:  "What is the unit of resistance?",
				OptionA:       "Ohm",
				OptionB:       "Volt",
				OptionC:       "Ampere",
				OptionD:       "Watt",
				CorrectOption: "A",
				Explanation:   "Resistance is measured in ohms.",
			},
			{
				QuestionText:  "Two 10k resistors in parallel give?",
				OptionA:       "20k",
				OptionB:       "10k",
				OptionC:       "5k",
				OptionD:       "1k",
				CorrectOption: "C",
				Explanation:   "Equal resistors in parallel halve the resistance.",
			},
		},
	}
	if err := uow.QuizRepository().Create(ctx, quiz); err != nil {
		return err
	}
	log.Printf("Created quiz: %s", quiz.Title)

	set := &entity.FlashcardSet{
		UserId: userID,
		Title:  "Organic chemistry",
		Cards: []entity.Flashcard{
			{Front: "Benzene formula", Back: "C6H6"},
			{Front: "Functional group of alcohols", Back: "Hydroxyl (-OH)"},
		},
	}
	if err := uow.FlashcardSetRepository().Create(ctx, set); err != nil {
		return err
	}
	log.Printf("Created flashcard set: %s", set.Title)

	return nil
}
