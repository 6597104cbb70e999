package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/notewell/notewell-api/internal/domain"
	"github.com/notewell/notewell-api/internal/refdata"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`
}

// CreateNoteRequest defines the payload for creating a note.
type CreateNoteRequest struct {
	Title   string `json:"title"   validate:"max=200"`
	Content string `json:"content" validate:"required"`
}

// UpdateNoteRequest defines the payload for updating a note.
type UpdateNoteRequest struct {
	Title   string `json:"title"   validate:"max=200"`
	Content string `json:"content" validate:"required"`
}

// NoteResponse is the JSON representation of a note.
type NoteResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNoteResponse converts a domain note into its API representation.
func NewNoteResponse(note *domain.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// NoteListResponse wraps a page of notes.
type NoteListResponse struct {
	Notes []NoteResponse `json:"notes"`
}

// QuizResponse is the JSON representation of a quiz.
type QuizResponse struct {
	ID        uuid.UUID             `json:"id"`
	NoteID    uuid.UUID             `json:"note_id"`
	Questions []domain.QuizQuestion `json:"questions"`
	CreatedAt time.Time             `json:"created_at"`
}

// NewQuizResponse converts a domain quiz into its API representation.
func NewQuizResponse(quiz *domain.Quiz) QuizResponse {
	return QuizResponse{
		ID:        quiz.ID,
		NoteID:    quiz.NoteID,
		Questions: quiz.Questions,
		CreatedAt: quiz.CreatedAt,
	}
}

// QuizListResponse wraps the quizzes generated from one note.
type QuizListResponse struct {
	Quizzes []QuizResponse `json:"quizzes"`
}

// CountryListResponse wraps the country reference list.
type CountryListResponse struct {
	Countries []refdata.Country `json:"countries"`
}

// FrameworkResponse is the JSON representation of an education framework.
type FrameworkResponse struct {
	CountryCode string          `json:"country_code"`
	Name        string          `json:"name,omitempty"`
	Levels      json.RawMessage `json:"levels,omitempty"`
}

// NewFrameworkResponse converts a framework record into its API
// representation.
func NewFrameworkResponse(fw *refdata.EducationFramework) FrameworkResponse {
	return FrameworkResponse{
		CountryCode: fw.CountryCode,
		Name:        fw.Name,
		Levels:      fw.Levels,
	}
}
