package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/notewell/notewell-api/internal/domain"
)

// QuizStore defines the interface for quiz data persistence.
// Version: 1.0
type QuizStore interface {
	// Create saves a new quiz with its questions.
	// Returns ErrInvalidEntity if the note or user does not exist.
	Create(ctx context.Context, quiz *domain.Quiz) error

	// GetByID retrieves a quiz by its unique ID.
	// Returns ErrQuizNotFound if the quiz does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Quiz, error)

	// ListByNote retrieves the quizzes generated from one note, newest
	// first. Returns an empty slice when the note has none.
	ListByNote(ctx context.Context, noteID uuid.UUID) ([]*domain.Quiz, error)
}
