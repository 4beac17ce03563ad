package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	sqlcgen "github.com/gokatarajesh/icebreaker/internal/db/sqlc"
)

type questionStore interface {
	ListQuestions(ctx context.Context) ([]sqlcgen.Question, error)
	GetQuestion(ctx context.Context, questionID pgtype.UUID) (sqlcgen.Question, error)
	CreateQuestion(ctx context.Context, arg sqlcgen.CreateQuestionParams) (sqlcgen.Question, error)
	UpdateQuestion(ctx context.Context, arg sqlcgen.UpdateQuestionParams) (sqlcgen.Question, error)
	DeleteQuestion(ctx context.Context, questionID pgtype.UUID) (int64, error)
	CountQuestions(ctx context.Context) (int64, error)
}

// QuestionRepository wraps sqlc queries for the question bank.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns every question, newest first.
func (r *QuestionRepository) List(ctx context.Context) ([]sqlcgen.Question, error) {
	rows, err := r.store.ListQuestions(ctx)
	return rows, translate(err)
}

// Get fetches one question or ErrNotFound.
func (r *QuestionRepository) Get(ctx context.Context, id uuid.UUID) (sqlcgen.Question, error) {
	row, err := r.store.GetQuestion(ctx, PgUUID(id))
	return row, translate(err)
}

func (r *QuestionRepository) Create(ctx context.Context, params sqlcgen.CreateQuestionParams) (sqlcgen.Question, error) {
	row, err := r.store.CreateQuestion(ctx, params)
	return row, translate(err)
}

// Update applies the non-null fields of params; ErrNotFound when the id is unknown.
func (r *QuestionRepository) Update(ctx context.Context, params sqlcgen.UpdateQuestionParams) (sqlcgen.Question, error) {
	row, err := r.store.UpdateQuestion(ctx, params)
	return row, translate(err)
}

// Delete removes a question. Usage and skip rows go with it through ON DELETE CASCADE.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.store.DeleteQuestion(ctx, PgUUID(id))
	if err != nil {
		return translate(err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.store.CountQuestions(ctx)
	return n, translate(err)
}
