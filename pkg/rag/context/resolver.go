package context

import (
	"context"
	"fmt"
	"strings"

	"supercharged-notes-be/internal/entity"
	"supercharged-notes-be/internal/pkg/logger"
	"supercharged-notes-be/pkg/rag/prompt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const logModule = "RESOLVER"

// Store is read-only, user-scoped access to study material.
// Fetch* return (nil, nil) when the document does not exist for that user.
type Store interface {
	FetchNote(ctx context.Context, id, userID string) (*entity.Note, error)
	FetchQuiz(ctx context.Context, id, userID string) (*entity.QuizSet, error)
	FetchFlashcardSet(ctx context.Context, id, userID string) (*entity.FlashcardSet, error)
	ListNotes(ctx context.Context, userID string) ([]*entity.Note, error)
	ListQuizzes(ctx context.Context, userID string) ([]*entity.QuizSet, error)
	ListFlashcardSets(ctx context.Context, userID string) ([]*entity.FlashcardSet, error)
}

// Cache holds at most one general context per user.
// Get must never return an entry older than the cache TTL.
type Cache interface {
	Get(ctx context.Context, userID string) (string, bool)
	Set(ctx context.Context, userID, contextText string)
}

// Resolver builds the system context for a chat request. It never fails:
// lookup problems turn into instructions for the model.
type Resolver struct {
	store  Store
	cache  Cache
	logger logger.ILogger
	tracer trace.Tracer
}

func NewResolver(store Store, cache Cache, log logger.ILogger) *Resolver {
	return &Resolver{
		store:  store,
		cache:  cache,
		logger: log,
		tracer: otel.Tracer("supercharged-notes-be/pkg/rag/context"),
	}
}

// Resolve returns a non-empty system context for userID and scope.
func (r *Resolver) Resolve(ctx context.Context, userID string, scope Scope) string {
	ctx, span := r.tracer.Start(ctx, "context.Resolve", trace.WithAttributes(
		attribute.String("scope", scope.Kind()),
	))
	defer span.End()

	if ref, ok := scope.Document(); ok {
		return r.resolveDocument(ctx, userID, ref)
	}

	if text, ok := r.cache.Get(ctx, userID); ok {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		r.logger.Debug(logModule, "General context cache hit", map[string]interface{}{"user_id": userID})
		return text
	}
	span.SetAttributes(attribute.Bool("cache_hit", false))

	text, degraded := r.assembleGeneral(ctx, userID)
	if degraded {
		// Not cached: a transient store failure must not pin a degraded context for the whole TTL.
		return text
	}
	r.cache.Set(ctx, userID, text)
	return text
}

func (r *Resolver) resolveDocument(ctx context.Context, userID string, ref DocumentRef) string {
	name := strings.TrimSpace(ref.DisplayName)
	if name == "" {
		name = ref.ID
	}
	label := ref.Kind.Label()

	body, err := r.fetchDocument(ctx, userID, ref)
	if err != nil {
		r.logger.Warn(logModule, "Document fetch failed", map[string]interface{}{
			"user_id": userID,
			"kind":    string(ref.Kind),
			"id":      ref.ID,
			"error":   err.Error(),
		})
		return prompt.UnavailableInstruction(label, name)
	}
	if body == "" {
		r.logger.Info(logModule, "Document not found", map[string]interface{}{
			"user_id": userID,
			"kind":    string(ref.Kind),
			"id":      ref.ID,
		})
		return prompt.UnavailableInstruction(label, name)
	}

	return prompt.DocumentInstruction(label, name, body)
}

// fetchDocument returns "" when the document does not exist.
func (r *Resolver) fetchDocument(ctx context.Context, userID string, ref DocumentRef) (string, error) {
	switch ref.Kind {
	case KindNote:
		note, err := r.store.FetchNote(ctx, ref.ID, userID)
		if err != nil || note == nil {
			return "", err
		}
		return prompt.NoteText(note), nil
	case KindQuiz:
		quiz, err := r.store.FetchQuiz(ctx, ref.ID, userID)
		if err != nil || quiz == nil {
			return "", err
		}
		return prompt.QuizText(quiz), nil
	case KindFlashcardSet:
		set, err := r.store.FetchFlashcardSet(ctx, ref.ID, userID)
		if err != nil || set == nil {
			return "", err
		}
		return prompt.FlashcardSetText(set), nil
	default:
		return "", fmt.Errorf("unknown document kind %q", ref.Kind)
	}
}

// categoryResult is the outcome of loading one category of material.
type categoryResult struct {
	heading string
	label   string
	entries []string
	err     error
}

func (c categoryResult) section() prompt.Section {
	switch {
	case c.err != nil:
		return prompt.Section{Heading: c.heading, Body: prompt.CategoryUnavailable(c.label)}
	case len(c.entries) == 0:
		return prompt.Section{Heading: c.heading, Body: prompt.CategoryEmpty(c.label)}
	default:
		return prompt.Section{Heading: c.heading, Body: strings.Join(c.entries, "\n\n---\n\n")}
	}
}

// assembleGeneral loads every category concurrently and folds the results.
// degraded reports whether any category failed.
func (r *Resolver) assembleGeneral(ctx context.Context, userID string) (text string, degraded bool) {
	results := make([]categoryResult, 3)

	// Each goroutine owns one slot and always returns nil so no fetch cancels another.
	var g errgroup.Group
	g.Go(func() error {
		results[0] = r.loadNotes(ctx, userID)
		return nil
	})
	g.Go(func() error {
		results[1] = r.loadQuizzes(ctx, userID)
		return nil
	})
	g.Go(func() error {
		results[2] = r.loadFlashcardSets(ctx, userID)
		return nil
	})
	_ = g.Wait()

	text, degraded = r.fold(userID, results)
	return text, degraded
}

func (r *Resolver) fold(userID string, results []categoryResult) (string, bool) {
	sections := make([]prompt.Section, 0, len(results))
	total := 0
	degraded := false

	for _, res := range results {
		if res.err != nil {
			degraded = true
			r.logger.Warn(logModule, "Category could not be retrieved", map[string]interface{}{
				"user_id":  userID,
				"category": res.label,
				"error":    res.err.Error(),
			})
		}
		total += len(res.entries)
		sections = append(sections, res.section())
	}

	if total == 0 && !degraded {
		return prompt.NoMaterial, false
	}
	return prompt.GeneralInstruction(sections), degraded
}

func (r *Resolver) loadNotes(ctx context.Context, userID string) categoryResult {
	res := categoryResult{heading: "Notes", label: "notes"}
	notes, err := r.store.ListNotes(ctx, userID)
	if err != nil {
		res.err = err
		return res
	}
	for _, n := range notes {
		res.entries = append(res.entries, prompt.NoteText(n))
	}
	return res
}

func (r *Resolver) loadQuizzes(ctx context.Context, userID string) categoryResult {
	res := categoryResult{heading: "Quizzes", label: "quizzes"}
	quizzes, err := r.store.ListQuizzes(ctx, userID)
	if err != nil {
		res.err = err
		return res
	}
	for _, q := range quizzes {
		res.entries = append(res.entries, prompt.QuizText(q))
	}
	return res
}

func (r *Resolver) loadFlashcardSets(ctx context.Context, userID string) categoryResult {
	res := categoryResult{heading: "Flashcard Sets", label: "flashcard sets"}
	sets, err := r.store.ListFlashcardSets(ctx, userID)
	if err != nil {
		res.err = err
		return res
	}
	for _, s := range sets {
		res.entries = append(res.entries, prompt.FlashcardSetText(s))
	}
	return res
}
