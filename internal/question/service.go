package question

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/icebreaker/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/icebreaker/internal/db/sqlc"
)

// Store is the persistence surface the question bank needs (implemented by
// repository.QuestionRepository).
type Store interface {
	List(ctx context.Context) ([]sqlcgen.Question, error)
	Get(ctx context.Context, id uuid.UUID) (sqlcgen.Question, error)
	Create(ctx context.Context, params sqlcgen.CreateQuestionParams) (sqlcgen.Question, error)
	Update(ctx context.Context, params sqlcgen.UpdateQuestionParams) (sqlcgen.Question, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

var _ Store = (*repository.QuestionRepository)(nil)

// Service manages the question bank for the admin panel.
type Service struct {
	store  Store
	logger zerolog.Logger
}

func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With().Str("component", "question").Logger(),
	}
}

// List returns all questions, newest first.
func (s *Service) List(ctx context.Context) ([]Question, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromRow(row))
	}
	return out, nil
}

// Get returns a single question or ErrNotFound.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Question, error) {
	row, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Question{}, ErrNotFound
		}
		return Question{}, fmt.Errorf("get question: %w", err)
	}
	return FromRow(row), nil
}

// Create validates and stores a new question, applying the category and difficulty defaults.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Question, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return Question{}, ErrTextRequired
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = DefaultCategory
	}
	if !validCategory(category) {
		return Question{}, ErrInvalidCategory
	}
	difficulty := strings.TrimSpace(req.Difficulty)
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}
	if !validDifficulty(difficulty) {
		return Question{}, ErrInvalidDifficulty
	}

	row, err := s.store.Create(ctx, sqlcgen.CreateQuestionParams{
		Question:   text,
		Category:   category,
		Difficulty: difficulty,
	})
	if err != nil {
		return Question{}, fmt.Errorf("create question: %w", err)
	}
	s.logger.Info().Str("question_id", repository.UUIDFrom(row.QuestionID).String()).Msg("question created")
	return FromRow(row), nil
}

// Update applies the provided fields. Omitted fields are left untouched.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (Question, error) {
	params := sqlcgen.UpdateQuestionParams{QuestionID: repository.PgUUID(id)}

	if req.Text != nil {
		text := strings.TrimSpace(*req.Text)
		if text == "" {
			return Question{}, ErrTextRequired
		}
		params.Question = pgtype.Text{String: text, Valid: true}
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if !validCategory(category) {
			return Question{}, ErrInvalidCategory
		}
		params.Category = pgtype.Text{String: category, Valid: true}
	}
	if req.Difficulty != nil {
		difficulty := strings.TrimSpace(*req.Difficulty)
		if !validDifficulty(difficulty) {
			return Question{}, ErrInvalidDifficulty
		}
		params.Difficulty = pgtype.Text{String: difficulty, Valid: true}
	}

	row, err := s.store.Update(ctx, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Question{}, ErrNotFound
		}
		return Question{}, fmt.Errorf("update question: %w", err)
	}
	return FromRow(row), nil
}

// Delete removes a question together with every usage and skip record that references it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete question: %w", err)
	}
	s.logger.Info().Str("question_id", id.String()).Msg("question deleted")
	return nil
}

// SeedDefaults inserts the sample question set when the bank is empty. It returns the
// number of questions inserted.
func (s *Service) SeedDefaults(ctx context.Context) (int, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	for i, req := range DefaultQuestions {
		if _, err := s.Create(ctx, req); err != nil {
			return i, fmt.Errorf("seed question %d: %w", i, err)
		}
	}
	s.logger.Info().Int("count", len(DefaultQuestions)).Msg("sample questions initialized")
	return len(DefaultQuestions), nil
}

// FromRow converts a sqlc row into the API document.
func FromRow(row sqlcgen.Question) Question {
	return Question{
		ID:         repository.UUIDFrom(row.QuestionID),
		Text:       row.Question,
		Category:   row.Category,
		Difficulty: row.Difficulty,
		CreatedAt:  row.CreatedAt.Time,
		UpdatedAt:  row.UpdatedAt.Time,
	}
}
