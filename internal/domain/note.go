package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Note
var (
	ErrNoteIDEmpty      = errors.New("note ID cannot be empty")
	ErrNoteUserIDEmpty  = errors.New("note user ID cannot be empty")
	ErrNoteContentEmpty = errors.New("note content cannot be empty")
	ErrNoteTitleTooLong = errors.New("note title exceeds maximum length")
)

// maxNoteTitleLength bounds the title; content length is unbounded.
const maxNoteTitleLength = 200

// Note is a piece of study material written by a user. Notes feed quiz
// generation and can be edited freely afterwards; quizzes keep the text
// they were generated from.
type Note struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote creates a Note owned by userID. Returns an error if validation
// fails.
func NewNote(userID uuid.UUID, title, content string) (*Note, error) {
	note := &Note{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := note.Validate(); err != nil {
		return nil, err
	}

	return note, nil
}

// Validate checks if the Note has valid data.
func (n *Note) Validate() error {
	if n.ID == uuid.Nil {
		return ErrNoteIDEmpty
	}
	if n.UserID == uuid.Nil {
		return ErrNoteUserIDEmpty
	}
	if n.Content == "" {
		return ErrNoteContentEmpty
	}
	if len(n.Title) > maxNoteTitleLength {
		return ErrNoteTitleTooLong
	}
	return nil
}

// Edit replaces the note's title and content and bumps UpdatedAt.
// Returns an error if the resulting note would be invalid.
func (n *Note) Edit(title, content string) error {
	prevTitle, prevContent := n.Title, n.Content
	n.Title = title
	n.Content = content

	if err := n.Validate(); err != nil {
		n.Title = prevTitle
		n.Content = prevContent
		return err
	}

	n.UpdatedAt = time.Now().UTC()
	return nil
}
