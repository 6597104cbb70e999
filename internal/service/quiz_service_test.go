package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notewell/notewell-api/internal/domain"
	"github.com/notewell/notewell-api/internal/generation"
	"github.com/notewell/notewell-api/internal/store"
)

// fakeQuizStore is an in-memory store.QuizStore for service tests.
type fakeQuizStore struct {
	quizzes map[uuid.UUID]*domain.Quiz

	createErr error
}

func newFakeQuizStore() *fakeQuizStore {
	return &fakeQuizStore{quizzes: make(map[uuid.UUID]*domain.Quiz)}
}

func (s *fakeQuizStore) Create(_ context.Context, quiz *domain.Quiz) error {
	if s.createErr != nil {
		return s.createErr
	}
	cp := *quiz
	s.quizzes[quiz.ID] = &cp
	return nil
}

func (s *fakeQuizStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Quiz, error) {
	quiz, ok := s.quizzes[id]
	if !ok {
		return nil, store.ErrQuizNotFound
	}
	cp := *quiz
	return &cp, nil
}

func (s *fakeQuizStore) ListByNote(_ context.Context, noteID uuid.UUID) ([]*domain.Quiz, error) {
	out := []*domain.Quiz{}
	for _, quiz := range s.quizzes {
		if quiz.NoteID == noteID {
			cp := *quiz
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeGenerator returns canned questions or a fixed error.
type fakeGenerator struct {
	questions []domain.QuizQuestion
	err       error

	lastNoteText string
	calls        int
}

func (g *fakeGenerator) GenerateQuestions(_ context.Context, noteText string) ([]domain.QuizQuestion, error) {
	g.calls++
	g.lastNoteText = noteText
	if g.err != nil {
		return nil, g.err
	}
	return g.questions, nil
}

func validQuestions() []domain.QuizQuestion {
	return []domain.QuizQuestion{
		{
			Prompt:      "What do mitochondria produce?",
			Options:     []string{"ATP", "DNA", "Chlorophyll"},
			Answer:      0,
			Explanation: "Mitochondria produce ATP through respiration.",
		},
	}
}

type quizFixture struct {
	notes   *fakeNoteStore
	quizzes *fakeQuizStore
	gen     *fakeGenerator
	svc     QuizService
	userID  uuid.UUID
	note    *domain.Note
}

func newQuizFixture(t *testing.T) *quizFixture {
	t.Helper()

	notes := newFakeNoteStore()
	noteSvc, err := NewNoteService(notes, slog.Default())
	require.NoError(t, err)

	userID := uuid.New()
	note, err := noteSvc.CreateNote(context.Background(), userID, "Biology", "Mitochondria are organelles.")
	require.NoError(t, err)

	quizzes := newFakeQuizStore()
	gen := &fakeGenerator{questions: validQuestions()}
	svc, err := NewQuizService(quizzes, noteSvc, gen, slog.Default())
	require.NoError(t, err)

	return &quizFixture{
		notes:   notes,
		quizzes: quizzes,
		gen:     gen,
		svc:     svc,
		userID:  userID,
		note:    note,
	}
}

func TestQuizService_GenerateQuiz(t *testing.T) {
	t.Parallel()

	f := newQuizFixture(t)
	ctx := context.Background()

	quiz, err := f.svc.GenerateQuiz(ctx, f.userID, f.note.ID)
	require.NoError(t, err)
	assert.Equal(t, f.note.ID, quiz.NoteID)
	assert.Equal(t, f.userID, quiz.UserID)
	assert.Len(t, quiz.Questions, 1)

	// The generator receives the note's content, not its title.
	assert.Equal(t, f.note.Content, f.gen.lastNoteText)

	stored, err := f.quizzes.GetByID(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.Questions, stored.Questions)
}

func TestQuizService_GenerateQuiz_NotOwner(t *testing.T) {
	t.Parallel()

	f := newQuizFixture(t)

	_, err := f.svc.GenerateQuiz(context.Background(), uuid.New(), f.note.ID)
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
	assert.Zero(t, f.gen.calls, "generator must not run for foreign notes")
}

func TestQuizService_GenerateQuiz_GeneratorFails(t *testing.T) {
	t.Parallel()

	f := newQuizFixture(t)
	f.gen.err = generation.ErrContentBlocked

	_, err := f.svc.GenerateQuiz(context.Background(), f.userID, f.note.ID)
	assert.ErrorIs(t, err, generation.ErrGenerationFailed)
	assert.ErrorIs(t, err, generation.ErrContentBlocked)
	assert.Empty(t, f.quizzes.quizzes, "nothing should be persisted on failure")
}

func TestQuizService_GenerateQuiz_InvalidQuestions(t *testing.T) {
	t.Parallel()

	f := newQuizFixture(t)
	f.gen.questions = []domain.QuizQuestion{
		{Prompt: "Broken", Options: []string{"only one"}, Answer: 0},
	}

	_, err := f.svc.GenerateQuiz(context.Background(), f.userID, f.note.ID)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	assert.Empty(t, f.quizzes.quizzes)
}

func TestQuizService_GenerateQuiz_StoreFails(t *testing.T) {
	t.Parallel()

	f := newQuizFixture(t)
	f.quizzes.createErr = errors.New("connection reset")

	_, err := f.svc.GenerateQuiz(context.Background(), f.userID, f.note.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, generation.ErrGenerationFailed)
}

func TestQuizService_GetQuiz(t *testing.T) {
	t.Parallel()

	f := newQuizFixture(t)
	ctx := context.Background()

	quiz, err := f.svc.GenerateQuiz(ctx, f.userID, f.note.ID)
	require.NoError(t, err)

	got, err := f.svc.GetQuiz(ctx, f.userID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.ID, got.ID)

	// Foreign users see the same error as for a missing quiz.
	_, err = f.svc.GetQuiz(ctx, uuid.New(), quiz.ID)
	assert.ErrorIs(t, err, store.ErrQuizNotFound)

	_, err = f.svc.GetQuiz(ctx, f.userID, uuid.New())
	assert.ErrorIs(t, err, store.ErrQuizNotFound)
}

func TestQuizService_ListQuizzes(t *testing.T) {
	t.Parallel()

	f := newQuizFixture(t)
	ctx := context.Background()

	_, err := f.svc.GenerateQuiz(ctx, f.userID, f.note.ID)
	require.NoError(t, err)
	_, err = f.svc.GenerateQuiz(ctx, f.userID, f.note.ID)
	require.NoError(t, err)

	list, err := f.svc.ListQuizzes(ctx, f.userID, f.note.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = f.svc.ListQuizzes(ctx, uuid.New(), f.note.ID)
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}
