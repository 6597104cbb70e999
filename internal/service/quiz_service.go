package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/notewell/notewell-api/internal/domain"
	"github.com/notewell/notewell-api/internal/generation"
	"github.com/notewell/notewell-api/internal/store"
)

// QuizService provides quiz generation and retrieval operations.
// Version: 1.0
type QuizService interface {
	// GenerateQuiz generates a quiz from one of the user's notes and
	// persists it.
	GenerateQuiz(ctx context.Context, userID, noteID uuid.UUID) (*domain.Quiz, error)

	// GetQuiz retrieves one of the user's quizzes.
	// Returns store.ErrQuizNotFound when it does not exist or belongs
	// to someone else.
	GetQuiz(ctx context.Context, userID, quizID uuid.UUID) (*domain.Quiz, error)

	// ListQuizzes retrieves the quizzes generated from one of the
	// user's notes, newest first.
	ListQuizzes(ctx context.Context, userID, noteID uuid.UUID) ([]*domain.Quiz, error)
}

// quizService is the default QuizService implementation.
type quizService struct {
	quizzes   store.QuizStore
	notes     NoteService
	generator generation.Generator
	logger    *slog.Logger
}

// NewQuizService creates a QuizService over the given dependencies.
func NewQuizService(
	quizzes store.QuizStore,
	notes NoteService,
	generator generation.Generator,
	logger *slog.Logger,
) (QuizService, error) {
	if quizzes == nil {
		return nil, errors.New("quiz store cannot be nil")
	}
	if notes == nil {
		return nil, errors.New("note service cannot be nil")
	}
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &quizService{
		quizzes:   quizzes,
		notes:     notes,
		generator: generator,
		logger:    logger.With(slog.String("component", "quiz_service")),
	}, nil
}

// GenerateQuiz implements QuizService.GenerateQuiz.
func (s *quizService) GenerateQuiz(ctx context.Context, userID, noteID uuid.UUID) (*domain.Quiz, error) {
	note, err := s.notes.GetNote(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	questions, err := s.generator.GenerateQuestions(ctx, note.Content)
	if err != nil {
		s.logger.ErrorContext(ctx, "quiz generation failed",
			slog.String("note_id", noteID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
	}

	quiz, err := domain.NewQuiz(userID, noteID, questions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", generation.ErrInvalidResponse, err)
	}

	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to save quiz: %w", err)
	}

	s.logger.InfoContext(ctx, "quiz generated",
		slog.String("quiz_id", quiz.ID.String()),
		slog.String("note_id", noteID.String()),
		slog.Int("question_count", len(quiz.Questions)))
	return quiz, nil
}

// GetQuiz implements QuizService.GetQuiz.
func (s *quizService) GetQuiz(ctx context.Context, userID, quizID uuid.UUID) (*domain.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if quiz.UserID != userID {
		s.logger.WarnContext(ctx, "quiz access denied",
			slog.String("quiz_id", quizID.String()),
			slog.String("user_id", userID.String()))
		return nil, store.ErrQuizNotFound
	}

	return quiz, nil
}

// ListQuizzes implements QuizService.ListQuizzes.
func (s *quizService) ListQuizzes(ctx context.Context, userID, noteID uuid.UUID) ([]*domain.Quiz, error) {
	// Ownership gate: listing quizzes requires owning the note.
	if _, err := s.notes.GetNote(ctx, userID, noteID); err != nil {
		return nil, err
	}

	return s.quizzes.ListByNote(ctx, noteID)
}
