package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/notewell/notewell-api/internal/domain"
	"github.com/notewell/notewell-api/internal/platform/logger"
	"github.com/notewell/notewell-api/internal/store"
)

// PostgresQuizStore implements the store.QuizStore interface using a
// PostgreSQL database as the storage backend. Questions are stored as a
// JSONB column: they are written and read as one unit and never queried
// individually.
type PostgresQuizStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresQuizStore creates a new PostgreSQL implementation of the
// QuizStore interface. If logger is nil, a default logger is used.
func NewPostgresQuizStore(db store.DBTX, logger *slog.Logger) *PostgresQuizStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresQuizStore{
		db:     db,
		logger: logger.With(slog.String("component", "quiz_store")),
	}
}

// Ensure PostgresQuizStore implements store.QuizStore interface
var _ store.QuizStore = (*PostgresQuizStore)(nil)

// Create implements store.QuizStore.Create.
func (s *PostgresQuizStore) Create(ctx context.Context, quiz *domain.Quiz) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := quiz.Validate(); err != nil {
		log.Warn("quiz validation failed during create",
			slog.String("error", err.Error()),
			slog.String("quiz_id", quiz.ID.String()))
		return err
	}

	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return fmt.Errorf("failed to serialize quiz questions: %w", err)
	}

	query := `
		INSERT INTO quizzes (id, note_id, user_id, questions, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = s.db.ExecContext(ctx, query,
		quiz.ID, quiz.NoteID, quiz.UserID, questions, quiz.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during quiz creation",
				slog.String("quiz_id", quiz.ID.String()),
				slog.String("note_id", quiz.NoteID.String()))
			return fmt.Errorf("%w: note with ID %s not found",
				store.ErrInvalidEntity, quiz.NoteID)
		}

		log.Error("failed to create quiz",
			slog.String("error", err.Error()),
			slog.String("quiz_id", quiz.ID.String()))
		return err
	}

	log.Info("quiz created successfully",
		slog.String("quiz_id", quiz.ID.String()),
		slog.String("note_id", quiz.NoteID.String()),
		slog.Int("question_count", len(quiz.Questions)))
	return nil
}

// GetByID implements store.QuizStore.GetByID.
func (s *PostgresQuizStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quiz, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, note_id, user_id, questions, created_at
		FROM quizzes
		WHERE id = $1
	`
	var quiz domain.Quiz
	var questions []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&quiz.ID, &quiz.NoteID, &quiz.UserID, &questions, &quiz.CreatedAt)
	if err != nil {
		err = mapGetError(err, store.ErrQuizNotFound)
		if !store.IsNotFoundError(err) {
			log.Error("failed to get quiz",
				slog.String("error", err.Error()),
				slog.String("quiz_id", id.String()))
		}
		return nil, err
	}

	if err := json.Unmarshal(questions, &quiz.Questions); err != nil {
		return nil, fmt.Errorf("failed to deserialize quiz questions: %w", err)
	}

	return &quiz, nil
}

// ListByNote implements store.QuizStore.ListByNote.
func (s *PostgresQuizStore) ListByNote(ctx context.Context, noteID uuid.UUID) ([]*domain.Quiz, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, note_id, user_id, questions, created_at
		FROM quizzes
		WHERE note_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, noteID)
	if err != nil {
		log.Error("failed to list quizzes",
			slog.String("error", err.Error()),
			slog.String("note_id", noteID.String()))
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	quizzes := []*domain.Quiz{}
	for rows.Next() {
		var quiz domain.Quiz
		var questions []byte
		if err := rows.Scan(
			&quiz.ID, &quiz.NoteID, &quiz.UserID, &questions, &quiz.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(questions, &quiz.Questions); err != nil {
			return nil, fmt.Errorf("failed to deserialize quiz questions: %w", err)
		}
		quizzes = append(quizzes, &quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return quizzes, nil
}
