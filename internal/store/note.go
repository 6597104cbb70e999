package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/notewell/notewell-api/internal/domain"
)

// NoteStore defines the interface for note data persistence.
// Version: 1.0
type NoteStore interface {
	// Create saves a new note. It handles domain validation internally.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, note *domain.Note) error

	// GetByID retrieves a note by its unique ID.
	// Returns ErrNoteNotFound if the note does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error)

	// ListByUser retrieves the user's notes ordered by most recently
	// updated. Returns an empty slice when the user has none.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Note, error)

	// Update saves changes to an existing note.
	// Returns ErrNoteNotFound if the note does not exist.
	Update(ctx context.Context, note *domain.Note) error

	// Delete removes a note and its quizzes.
	// Returns ErrNoteNotFound if the note does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
