package prompt

import (
	"fmt"
	"strings"

	"supercharged-notes-be/internal/entity"
)

const (
	// NoMaterial is the general context for a user who has not uploaded anything yet.
	NoMaterial = "<task>\nYou are a study assistant. The user has not added any notes, quizzes, or flashcard sets yet, " +
		"so there is no study material to draw on. Answer general questions helpfully, and when the user asks " +
		"about their own material, tell them nothing has been uploaded yet and suggest adding notes first.\n</task>"
)

// Section is one labeled block of the general context.
type Section struct {
	Heading string
	Body    string
}

// NoteText renders a note as plain text.
func NoteText(note *entity.Note) string {
	return fmt.Sprintf("Note: %s\n\n%s", note.Title, note.Content)
}

// QuizText renders every question of a quiz set with its four options and explanation.
func QuizText(quiz *entity.QuizSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Quiz: %s", quiz.Title)
	for _, q := range quiz.Questions {
		fmt.Fprintf(&b, "\n\nQuestion: %s\n", q.QuestionText)
		fmt.Fprintf(&b, "Option A: %s\n", q.OptionA)
		fmt.Fprintf(&b, "Option B: %s\n", q.OptionB)
		fmt.Fprintf(&b, "Option C: %s\n", q.OptionC)
		fmt.Fprintf(&b, "Option D: %s\n", q.OptionD)
		fmt.Fprintf(&b, "Correct Option: %s\n", q.CorrectOption)
		fmt.Fprintf(&b, "Explanation: %s", q.Explanation)
	}
	return b.String()
}

// FlashcardSetText renders the front/back pairs of a flashcard set.
func FlashcardSetText(set *entity.FlashcardSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Flashcard Set: %s", set.Title)
	for _, c := range set.Cards {
		fmt.Fprintf(&b, "\n\nFront: %s\nBack: %s", c.Front, c.Back)
	}
	return b.String()
}

// DocumentInstruction scopes the model to a single document.
func DocumentInstruction(kindLabel, displayName, body string) string {
	var b strings.Builder

	b.WriteString("<reference_material>\n")
	b.WriteString(body)
	b.WriteString("\n</reference_material>\n\n")

	b.WriteString("<task>\n")
	fmt.Fprintf(&b, "The user is asking about their %s \"%s\", shown above as reference material.\n", kindLabel, displayName)
	b.WriteString("Answer exclusively from that content. Do not use outside knowledge to fill gaps.\n")
	fmt.Fprintf(&b, "If the answer is not in the %s, say explicitly that this information is not available in this document.\n", kindLabel)
	b.WriteString("</task>")

	return b.String()
}

// UnavailableInstruction replaces a document that could not be loaded.
func UnavailableInstruction(kindLabel, displayName string) string {
	var b strings.Builder

	b.WriteString("<task>\n")
	fmt.Fprintf(&b, "The user selected their %s \"%s\" as context, but that document is unavailable right now ", kindLabel, displayName)
	b.WriteString("(it may have been deleted, or it could not be loaded).\n")
	fmt.Fprintf(&b, "Tell the user that \"%s\" could not be accessed. If you still answer, make clear the answer is not based on that document.\n", displayName)
	b.WriteString("</task>")

	return b.String()
}

// CategoryUnavailable is the placeholder for a category that failed to load.
func CategoryUnavailable(categoryLabel string) string {
	return fmt.Sprintf("The user's %s could not be retrieved right now.", categoryLabel)
}

// CategoryEmpty is the placeholder for a category with no entries.
func CategoryEmpty(categoryLabel string) string {
	return fmt.Sprintf("The user has no %s yet.", categoryLabel)
}

// GeneralInstruction wraps all sections of the user's material.
func GeneralInstruction(sections []Section) string {
	var b strings.Builder

	b.WriteString("<study_material>\n")
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "=== %s ===\n%s", strings.ToUpper(s.Heading), s.Body)
	}
	b.WriteString("\n</study_material>\n\n")

	b.WriteString("<task>\n")
	b.WriteString("You are a study assistant with access to all of the user's notes, quizzes, and flashcard sets above.\n")
	b.WriteString("Prefer the user's own material when answering and mention which note, quiz, or flashcard set you used.\n")
	b.WriteString("If the material does not cover the question, say so before answering from general knowledge.\n")
	b.WriteString("</task>")

	return b.String()
}
