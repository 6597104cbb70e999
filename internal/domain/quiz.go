package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Quiz
var (
	ErrQuizIDEmpty           = errors.New("quiz ID cannot be empty")
	ErrQuizNoteIDEmpty       = errors.New("quiz note ID cannot be empty")
	ErrQuizUserIDEmpty       = errors.New("quiz user ID cannot be empty")
	ErrQuizNoQuestions       = errors.New("quiz must have at least one question")
	ErrQuestionPromptEmpty   = errors.New("quiz question prompt cannot be empty")
	ErrQuestionTooFewOptions = errors.New("quiz question must have at least two options")
	ErrQuestionAnswerRange   = errors.New("quiz question answer index is out of range")
)

// QuizQuestion is a single multiple-choice question. Answer indexes into
// Options.
type QuizQuestion struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Answer      int      `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

// Validate checks if the question has valid data.
func (q *QuizQuestion) Validate() error {
	if q.Prompt == "" {
		return ErrQuestionPromptEmpty
	}
	if len(q.Options) < 2 {
		return ErrQuestionTooFewOptions
	}
	if q.Answer < 0 || q.Answer >= len(q.Options) {
		return ErrQuestionAnswerRange
	}
	return nil
}

// Quiz is a set of questions generated from one note.
type Quiz struct {
	ID        uuid.UUID      `json:"id"`
	NoteID    uuid.UUID      `json:"note_id"`
	UserID    uuid.UUID      `json:"user_id"`
	Questions []QuizQuestion `json:"questions"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewQuiz creates a Quiz for the given note and owner from generated
// questions. Returns an error if validation fails.
func NewQuiz(userID, noteID uuid.UUID, questions []QuizQuestion) (*Quiz, error) {
	quiz := &Quiz{
		ID:        uuid.New(),
		NoteID:    noteID,
		UserID:    userID,
		Questions: questions,
		CreatedAt: time.Now().UTC(),
	}

	if err := quiz.Validate(); err != nil {
		return nil, err
	}

	return quiz, nil
}

// Validate checks if the Quiz and every question in it has valid data.
func (q *Quiz) Validate() error {
	if q.ID == uuid.Nil {
		return ErrQuizIDEmpty
	}
	if q.NoteID == uuid.Nil {
		return ErrQuizNoteIDEmpty
	}
	if q.UserID == uuid.Nil {
		return ErrQuizUserIDEmpty
	}
	if len(q.Questions) == 0 {
		return ErrQuizNoQuestions
	}
	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
