package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	sqlcgen "github.com/gokatarajesh/icebreaker/internal/db/sqlc"
)

type teamStore interface {
	ListTeams(ctx context.Context) ([]sqlcgen.Team, error)
	GetTeam(ctx context.Context, teamID pgtype.UUID) (sqlcgen.Team, error)
	CreateTeam(ctx context.Context, arg sqlcgen.CreateTeamParams) (sqlcgen.Team, error)
	CountTeams(ctx context.Context) (int64, error)
}

// TeamRepository exposes typed DB operations for teams.
type TeamRepository struct {
	store teamStore
}

// NewTeamRepository wraps sqlc Queries for team-specific operations.
func NewTeamRepository(store teamStore) *TeamRepository {
	return &TeamRepository{store: store}
}

// List returns teams in creation order.
func (r *TeamRepository) List(ctx context.Context) ([]sqlcgen.Team, error) {
	rows, err := r.store.ListTeams(ctx)
	return rows, translate(err)
}

// Get fetches a team by ID.
func (r *TeamRepository) Get(ctx context.Context, id uuid.UUID) (sqlcgen.Team, error) {
	row, err := r.store.GetTeam(ctx, PgUUID(id))
	return row, translate(err)
}

// Create inserts a team; a taken name yields ErrDuplicate.
func (r *TeamRepository) Create(ctx context.Context, params sqlcgen.CreateTeamParams) (sqlcgen.Team, error) {
	row, err := r.store.CreateTeam(ctx, params)
	return row, translate(err)
}

func (r *TeamRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.store.CountTeams(ctx)
	return n, translate(err)
}
