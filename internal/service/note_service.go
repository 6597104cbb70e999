package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/notewell/notewell-api/internal/domain"
	"github.com/notewell/notewell-api/internal/store"
)

// NoteService provides note management operations.
// Version: 1.0
type NoteService interface {
	// CreateNote creates a note owned by userID.
	CreateNote(ctx context.Context, userID uuid.UUID, title, content string) (*domain.Note, error)

	// GetNote retrieves one of the user's notes.
	// Returns store.ErrNoteNotFound when it does not exist or belongs
	// to someone else.
	GetNote(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error)

	// ListNotes retrieves the user's notes, most recently updated first.
	ListNotes(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Note, error)

	// UpdateNote edits one of the user's notes.
	UpdateNote(ctx context.Context, userID, noteID uuid.UUID, title, content string) (*domain.Note, error)

	// DeleteNote removes one of the user's notes and its quizzes.
	DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error
}

// noteService is the default NoteService implementation.
type noteService struct {
	notes  store.NoteStore
	logger *slog.Logger
}

// NewNoteService creates a NoteService over the given store.
func NewNoteService(notes store.NoteStore, logger *slog.Logger) (NoteService, error) {
	if notes == nil {
		return nil, errors.New("note store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &noteService{
		notes:  notes,
		logger: logger.With(slog.String("component", "note_service")),
	}, nil
}

// CreateNote implements NoteService.CreateNote.
func (s *noteService) CreateNote(ctx context.Context, userID uuid.UUID, title, content string) (*domain.Note, error) {
	note, err := domain.NewNote(userID, title, content)
	if err != nil {
		return nil, err
	}

	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return note, nil
}

// GetNote implements NoteService.GetNote.
func (s *noteService) GetNote(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error) {
	note, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	// A foreign note reads as absent so existence is not leaked.
	if note.UserID != userID {
		s.logger.WarnContext(ctx, "note access denied",
			slog.String("note_id", noteID.String()),
			slog.String("user_id", userID.String()))
		return nil, store.ErrNoteNotFound
	}

	return note, nil
}

// ListNotes implements NoteService.ListNotes.
func (s *noteService) ListNotes(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Note, error) {
	return s.notes.ListByUser(ctx, userID, limit, offset)
}

// UpdateNote implements NoteService.UpdateNote.
func (s *noteService) UpdateNote(ctx context.Context, userID, noteID uuid.UUID, title, content string) (*domain.Note, error) {
	note, err := s.GetNote(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	if err := note.Edit(title, content); err != nil {
		return nil, err
	}

	if err := s.notes.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

// DeleteNote implements NoteService.DeleteNote.
func (s *noteService) DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error {
	if _, err := s.GetNote(ctx, userID, noteID); err != nil {
		return err
	}

	if err := s.notes.Delete(ctx, noteID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	s.logger.InfoContext(ctx, "note deleted",
		slog.String("note_id", noteID.String()),
		slog.String("user_id", userID.String()))
	return nil
}
