package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	sqlcgen "github.com/gokatarajesh/icebreaker/internal/db/sqlc"
)

type ledgerStore interface {
	ListUsedQuestionIDs(ctx context.Context, teamID pgtype.UUID) ([]pgtype.UUID, error)
	ListSkippedQuestionIDs(ctx context.Context, teamID pgtype.UUID) ([]pgtype.UUID, error)
	UsageExists(ctx context.Context, arg sqlcgen.UsageExistsParams) (bool, error)
	SkipExists(ctx context.Context, arg sqlcgen.SkipExistsParams) (bool, error)
	InsertUsage(ctx context.Context, arg sqlcgen.InsertUsageParams) (sqlcgen.UsageHistory, error)
	InsertSkip(ctx context.Context, arg sqlcgen.InsertSkipParams) (sqlcgen.SkippedQuestion, error)
	ResetTeamLedgers(ctx context.Context, teamID pgtype.UUID) (sqlcgen.ResetTeamLedgersRow, error)
	ListTeamUserNames(ctx context.Context, teamID pgtype.UUID) ([]string, error)
	ListAllUserNames(ctx context.Context) ([]string, error)
	ListUsageDetails(ctx context.Context) ([]sqlcgen.ListUsageDetailsRow, error)
	ListSkipDetails(ctx context.Context) ([]sqlcgen.ListSkipDetailsRow, error)
}

// LedgerRepository covers both append-only ledgers: usage history and skipped questions.
type LedgerRepository struct {
	store ledgerStore
}

// NewLedgerRepository constructs a new ledger repository.
func NewLedgerRepository(store ledgerStore) *LedgerRepository {
	return &LedgerRepository{store: store}
}

// UsedQuestionIDs lists the distinct questions a team has used.
func (r *LedgerRepository) UsedQuestionIDs(ctx context.Context, teamID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := r.store.ListUsedQuestionIDs(ctx, PgUUID(teamID))
	if err != nil {
		return nil, translate(err)
	}
	return uuidsFrom(ids), nil
}

// SkippedQuestionIDs lists the distinct questions a team has skipped.
func (r *LedgerRepository) SkippedQuestionIDs(ctx context.Context, teamID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := r.store.ListSkippedQuestionIDs(ctx, PgUUID(teamID))
	if err != nil {
		return nil, translate(err)
	}
	return uuidsFrom(ids), nil
}

func (r *LedgerRepository) HasUsage(ctx context.Context, teamID, questionID uuid.UUID) (bool, error) {
	ok, err := r.store.UsageExists(ctx, sqlcgen.UsageExistsParams{
		TeamID:     PgUUID(teamID),
		QuestionID: PgUUID(questionID),
	})
	return ok, translate(err)
}

func (r *LedgerRepository) HasSkip(ctx context.Context, teamID, questionID uuid.UUID) (bool, error) {
	ok, err := r.store.SkipExists(ctx, sqlcgen.SkipExistsParams{
		TeamID:     PgUUID(teamID),
		QuestionID: PgUUID(questionID),
	})
	return ok, translate(err)
}

// RecordUsage appends to the usage ledger. The (team, question) unique key surfaces as ErrDuplicate.
func (r *LedgerRepository) RecordUsage(ctx context.Context, teamID, questionID uuid.UUID, userName string) (sqlcgen.UsageHistory, error) {
	row, err := r.store.InsertUsage(ctx, sqlcgen.InsertUsageParams{
		TeamID:     PgUUID(teamID),
		QuestionID: PgUUID(questionID),
		UserName:   userName,
	})
	return row, translate(err)
}

// RecordSkip appends to the skip ledger. The (team, question) unique key surfaces as ErrDuplicate.
func (r *LedgerRepository) RecordSkip(ctx context.Context, teamID, questionID uuid.UUID, userName string) (sqlcgen.SkippedQuestion, error) {
	row, err := r.store.InsertSkip(ctx, sqlcgen.InsertSkipParams{
		TeamID:     PgUUID(teamID),
		QuestionID: PgUUID(questionID),
		UserName:   userName,
	})
	return row, translate(err)
}

// ResetTeam deletes both ledgers for a team in a single statement.
func (r *LedgerRepository) ResetTeam(ctx context.Context, teamID uuid.UUID) (sqlcgen.ResetTeamLedgersRow, error) {
	row, err := r.store.ResetTeamLedgers(ctx, PgUUID(teamID))
	return row, translate(err)
}

// TeamUserNames returns distinct user names seen in either ledger for one team.
func (r *LedgerRepository) TeamUserNames(ctx context.Context, teamID uuid.UUID) ([]string, error) {
	names, err := r.store.ListTeamUserNames(ctx, PgUUID(teamID))
	return names, translate(err)
}

// AllUserNames returns distinct user names across every team.
func (r *LedgerRepository) AllUserNames(ctx context.Context) ([]string, error) {
	names, err := r.store.ListAllUserNames(ctx)
	return names, translate(err)
}

func (r *LedgerRepository) UsageDetails(ctx context.Context) ([]sqlcgen.ListUsageDetailsRow, error) {
	rows, err := r.store.ListUsageDetails(ctx)
	return rows, translate(err)
}

func (r *LedgerRepository) SkipDetails(ctx context.Context) ([]sqlcgen.ListSkipDetailsRow, error) {
	rows, err := r.store.ListSkipDetails(ctx)
	return rows, translate(err)
}
