package generation

import (
	"context"

	"github.com/notewell/notewell-api/internal/domain"
)

// Generator defines the interface for generating quiz questions from
// note text. It is the seam between the application core and the
// external LLM service.
type Generator interface {
	// GenerateQuestions creates multiple-choice questions from the
	// provided note text. Returns the generated questions or an error
	// (see errors.go for the specific kinds).
	GenerateQuestions(ctx context.Context, noteText string) ([]domain.QuizQuestion, error)
}
