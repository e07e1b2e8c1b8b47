package context

import "strings"

// DocumentKind is the type of a user-selected document.
type DocumentKind string

const (
	KindNote         DocumentKind = "note"
	KindQuiz         DocumentKind = "quiz"
	KindFlashcardSet DocumentKind = "flashcard_set"
)

// ParseDocumentKind accepts the wire spellings used by the web client.
func ParseDocumentKind(s string) (DocumentKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "note", "notes":
		return KindNote, true
	case "quiz", "quizzes", "quiz_set":
		return KindQuiz, true
	case "flashcard_set", "flashcard", "flashcards", "flashcardset":
		return KindFlashcardSet, true
	default:
		return DocumentKind(s), false
	}
}

// Label is the human-readable name used inside prompts.
func (k DocumentKind) Label() string {
	switch k {
	case KindNote:
		return "note"
	case KindQuiz:
		return "quiz"
	case KindFlashcardSet:
		return "flashcard set"
	default:
		return "document"
	}
}

// DocumentRef names one document of the user.
type DocumentRef struct {
	Kind        DocumentKind
	ID          string
	DisplayName string
}

// Scope selects what the model may answer from: one document, or all of the
// user's material when no document is set. The zero value is the general scope.
type Scope struct {
	doc *DocumentRef
}

func General() Scope {
	return Scope{}
}

func Document(ref DocumentRef) Scope {
	return Scope{doc: &ref}
}

func (s Scope) IsGeneral() bool {
	return s.doc == nil
}

// Document returns the referenced document for a document scope.
func (s Scope) Document() (DocumentRef, bool) {
	if s.doc == nil {
		return DocumentRef{}, false
	}
	return *s.doc, true
}

// Kind reports "general" or the document kind, for logs and usage events.
func (s Scope) Kind() string {
	if s.doc == nil {
		return "general"
	}
	return string(s.doc.Kind)
}
