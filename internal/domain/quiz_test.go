package domain

import (
	"testing"

	"github.com/google/uuid"
)

func validQuestions() []QuizQuestion {
	return []QuizQuestion{
		{
			Prompt:  "What do plants convert light into?",
			Options: []string{"Sound", "Energy", "Mass"},
			Answer:  1,
		},
	}
}

func TestNewQuiz(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	noteID := uuid.New()

	quiz, err := NewQuiz(userID, noteID, validQuestions())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if quiz.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if quiz.NoteID != noteID {
		t.Errorf("Expected note ID %s, got %s", noteID, quiz.NoteID)
	}
	if quiz.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, quiz.UserID)
	}
	if quiz.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if _, err := NewQuiz(uuid.Nil, noteID, validQuestions()); err != ErrQuizUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrQuizUserIDEmpty, err)
	}
	if _, err := NewQuiz(userID, uuid.Nil, validQuestions()); err != ErrQuizNoteIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrQuizNoteIDEmpty, err)
	}
	if _, err := NewQuiz(userID, noteID, nil); err != ErrQuizNoQuestions {
		t.Errorf("Expected error %v, got %v", ErrQuizNoQuestions, err)
	}
}

func TestQuizQuestionValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		question QuizQuestion
		want     error
	}{
		{
			name:     "valid",
			question: QuizQuestion{Prompt: "p", Options: []string{"a", "b"}, Answer: 0},
			want:     nil,
		},
		{
			name:     "empty prompt",
			question: QuizQuestion{Options: []string{"a", "b"}, Answer: 0},
			want:     ErrQuestionPromptEmpty,
		},
		{
			name:     "single option",
			question: QuizQuestion{Prompt: "p", Options: []string{"a"}, Answer: 0},
			want:     ErrQuestionTooFewOptions,
		},
		{
			name:     "answer past end",
			question: QuizQuestion{Prompt: "p", Options: []string{"a", "b"}, Answer: 2},
			want:     ErrQuestionAnswerRange,
		},
		{
			name:     "negative answer",
			question: QuizQuestion{Prompt: "p", Options: []string{"a", "b"}, Answer: -1},
			want:     ErrQuestionAnswerRange,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := tc.question.Validate(); err != tc.want {
				t.Errorf("Expected error %v, got %v", tc.want, err)
			}
		})
	}
}

func TestQuizValidateChecksEveryQuestion(t *testing.T) {
	t.Parallel()

	questions := validQuestions()
	questions = append(questions, QuizQuestion{Prompt: "", Options: []string{"a", "b"}})

	if _, err := NewQuiz(uuid.New(), uuid.New(), questions); err != ErrQuestionPromptEmpty {
		t.Errorf("Expected error %v, got %v", ErrQuestionPromptEmpty, err)
	}
}
