package api

import (
	"log/slog"
	"net/http"

	"github.com/notewell/notewell-api/internal/api/shared"
	"github.com/notewell/notewell-api/internal/service"
)

// QuizHandler handles quiz generation and retrieval API requests.
type QuizHandler struct {
	quizService service.QuizService
	logger      *slog.Logger
}

// NewQuizHandler creates a new QuizHandler with the given dependencies.
func NewQuizHandler(quizService service.QuizService, logger *slog.Logger) *QuizHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuizHandler{
		quizService: quizService,
		logger:      logger.With(slog.String("component", "quiz_handler")),
	}
}

// GenerateQuiz handles POST /notes/{id}/quizzes.
func (h *QuizHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	quiz, err := h.quizService.GenerateQuiz(r.Context(), userID, noteID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewQuizResponse(quiz))
}

// ListQuizzes handles GET /notes/{id}/quizzes.
func (h *QuizHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	quizzes, err := h.quizService.ListQuizzes(r.Context(), userID, noteID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := QuizListResponse{Quizzes: make([]QuizResponse, 0, len(quizzes))}
	for _, quiz := range quizzes {
		resp.Quizzes = append(resp.Quizzes, NewQuizResponse(quiz))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetQuiz handles GET /quizzes/{id}.
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	userID, quizID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	quiz, err := h.quizService.GetQuiz(r.Context(), userID, quizID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewQuizResponse(quiz))
}
