package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"text/template"
	"time"

	"google.golang.org/genai"

	"github.com/notewell/notewell-api/internal/config"
	"github.com/notewell/notewell-api/internal/domain"
	"github.com/notewell/notewell-api/internal/generation"
)

// defaultPromptTemplate asks the model for strict JSON matching
// ResponseSchema. Kept inline so the binary needs no template file.
const defaultPromptTemplate = `You are a study assistant. Read the note below and write a short
multiple-choice quiz checking the reader's understanding of it.

Respond with JSON only, in exactly this shape:
{"questions":[{"prompt":"...","options":["...","..."],"answer":0,"explanation":"..."}]}

Rules:
- 3 to 5 questions, each with 3 or 4 options.
- "answer" is the zero-based index of the correct option.
- Keep every question answerable from the note alone.

Note:
{{.NoteText}}
`

// Generator implements the generation.Generator interface using Google's
// Gemini API to generate quiz questions from note text.
type Generator struct {
	logger         *slog.Logger
	config         config.LLMConfig
	promptTemplate *template.Template
	client         *genai.Client
	model          string
}

// Ensure Generator implements the generation.Generator interface
var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Generator from the LLM configuration. The
// context is used for client initialization only.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("quiz").Parse(defaultPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:         logger,
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
	}, nil
}

// GenerateQuestions implements generation.Generator.GenerateQuestions.
func (g *Generator) GenerateQuestions(ctx context.Context, noteText string) ([]domain.QuizQuestion, error) {
	prompt, err := g.buildPrompt(noteText)
	if err != nil {
		return nil, err
	}

	response, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	questions, err := parseResponse(response)
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "quiz questions generated",
		slog.Int("question_count", len(questions)),
		slog.Int("note_length", len(noteText)))
	return questions, nil
}

// buildPrompt renders the prompt template with the note text.
func (g *Generator) buildPrompt(noteText string) (string, error) {
	if noteText == "" {
		return "", generation.ErrEmptyNoteText
	}

	var buf bytes.Buffer
	if err := g.promptTemplate.Execute(&buf, promptData{NoteText: noteText}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// callWithRetry calls the Gemini API with exponential backoff and jitter
// for transient failures. Permanent failures (blocked content, malformed
// responses) return immediately.
func (g *Generator) callWithRetry(ctx context.Context, prompt string) (*ResponseSchema, error) {
	maxRetries := g.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	baseDelaySeconds := g.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		baseDelaySeconds = 2
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		response, err, transient := g.callOnce(ctx, prompt)
		if err == nil {
			return response, nil
		}

		g.logger.WarnContext(ctx, "Gemini API call failed",
			slog.Int("attempt", attempt+1),
			slog.Bool("transient", transient),
			slog.String("error", err.Error()))

		if !transient {
			return nil, err
		}
		if attempt >= maxRetries {
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, maxRetries)
		}

		// delay = baseDelay * 2^attempt * jitter in [0.5, 1.0)
		backoff := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5) * float64(time.Second))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// callOnce performs a single Gemini call. The third return value reports
// whether a failure is worth retrying.
func (g *Generator) callOnce(ctx context.Context, prompt string) (*ResponseSchema, error, bool) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err), true
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse), false
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: content blocked by safety filters",
			generation.ErrContentBlocked), false
	}
	if candidate.Content == nil {
		return nil, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse), false
	}

	var text string
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text += part.Text
		}
	}

	var parsed ResponseSchema
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v",
			generation.ErrInvalidResponse, err), false
	}

	return &parsed, nil, false
}

// parseResponse converts a ResponseSchema into validated domain
// questions. Any invalid question fails the whole response.
func parseResponse(response *ResponseSchema) ([]domain.QuizQuestion, error) {
	if response == nil || len(response.Questions) == 0 {
		return nil, fmt.Errorf("%w: response contains no questions", generation.ErrInvalidResponse)
	}

	questions := make([]domain.QuizQuestion, 0, len(response.Questions))
	for i, q := range response.Questions {
		question := domain.QuizQuestion{
			Prompt:      q.Prompt,
			Options:     q.Options,
			Answer:      q.Answer,
			Explanation: q.Explanation,
		}
		if err := question.Validate(); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", generation.ErrInvalidResponse, i, err)
		}
		questions = append(questions, question)
	}

	return questions, nil
}
