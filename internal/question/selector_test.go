package question

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/icebreaker/internal/db/memdb"
	"github.com/gokatarajesh/icebreaker/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/icebreaker/internal/db/sqlc"
)

type selectorFixture struct {
	store     *memdb.Store
	bank      *repository.QuestionRepository
	ledger    *repository.LedgerRepository
	teamID    uuid.UUID
	questions []uuid.UUID
}

func newSelectorFixture(t *testing.T, n int) selectorFixture {
	t.Helper()
	ctx := context.Background()
	store := memdb.New()
	f := selectorFixture{
		store:  store,
		bank:   repository.NewQuestionRepository(store),
		ledger: repository.NewLedgerRepository(store),
	}
	team, err := repository.NewTeamRepository(store).Create(ctx, sqlcgen.CreateTeamParams{Name: "Team A", Color: "#3B82F6"})
	require.NoError(t, err)
	f.teamID = repository.UUIDFrom(team.TeamID)

	for i := 0; i < n; i++ {
		row, err := f.bank.Create(ctx, sqlcgen.CreateQuestionParams{
			Question:   "question " + string(rune('a'+i)),
			Category:   CategoryGeneral,
			Difficulty: DifficultyMedium,
		})
		require.NoError(t, err)
		f.questions = append(f.questions, repository.UUIDFrom(row.QuestionID))
	}
	return f
}

func TestPickReturnsOnlyRemainingCandidate(t *testing.T) {
	f := newSelectorFixture(t, 3)
	ctx := context.Background()

	_, err := f.ledger.RecordUsage(ctx, f.teamID, f.questions[0], "Ada")
	require.NoError(t, err)
	_, err = f.ledger.RecordSkip(ctx, f.teamID, f.questions[1], "Ada")
	require.NoError(t, err)

	for _, pick := range []func(int) int{
		func(int) int { return 0 },
		func(n int) int { return n - 1 },
	} {
		sel := NewSelector(f.bank, f.ledger, WithRand(pick))
		q, err := sel.Pick(ctx, f.teamID)
		require.NoError(t, err)
		assert.Equal(t, f.questions[2], q.ID)
	}
}

func TestAvailableIsBankMinusBothLedgers(t *testing.T) {
	f := newSelectorFixture(t, 5)
	ctx := context.Background()

	_, err := f.ledger.RecordUsage(ctx, f.teamID, f.questions[0], "Ada")
	require.NoError(t, err)
	_, err = f.ledger.RecordSkip(ctx, f.teamID, f.questions[3], "Grace")
	require.NoError(t, err)
	// the same pair in both ledgers must only be removed once
	_, err = f.ledger.RecordSkip(ctx, f.teamID, f.questions[0], "Grace")
	require.NoError(t, err)

	available, err := NewSelector(f.bank, f.ledger).Available(ctx, f.teamID)
	require.NoError(t, err)

	var ids []uuid.UUID
	for _, q := range available {
		ids = append(ids, q.ID)
	}
	assert.ElementsMatch(t, []uuid.UUID{f.questions[1], f.questions[2], f.questions[4]}, ids)
}

func TestAvailableIgnoresOtherTeams(t *testing.T) {
	f := newSelectorFixture(t, 2)
	ctx := context.Background()

	other, err := repository.NewTeamRepository(f.store).Create(ctx, sqlcgen.CreateTeamParams{Name: "Team B", Color: "#EF4444"})
	require.NoError(t, err)
	_, err = f.ledger.RecordUsage(ctx, repository.UUIDFrom(other.TeamID), f.questions[0], "Linus")
	require.NoError(t, err)

	available, err := NewSelector(f.bank, f.ledger).Available(ctx, f.teamID)
	require.NoError(t, err)
	assert.Len(t, available, 2)
}

func TestPickExhausted(t *testing.T) {
	f := newSelectorFixture(t, 2)
	ctx := context.Background()

	_, err := f.ledger.RecordUsage(ctx, f.teamID, f.questions[0], "Ada")
	require.NoError(t, err)
	_, err = f.ledger.RecordSkip(ctx, f.teamID, f.questions[1], "Ada")
	require.NoError(t, err)

	_, err = NewSelector(f.bank, f.ledger).Pick(ctx, f.teamID)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestPickEmptyBankIsExhausted(t *testing.T) {
	f := newSelectorFixture(t, 0)

	_, err := NewSelector(f.bank, f.ledger).Pick(context.Background(), f.teamID)

	assert.ErrorIs(t, err, ErrExhausted)
}

func TestPickIsNonConsuming(t *testing.T) {
	f := newSelectorFixture(t, 1)
	ctx := context.Background()
	sel := NewSelector(f.bank, f.ledger)

	first, err := sel.Pick(ctx, f.teamID)
	require.NoError(t, err)
	second, err := sel.Pick(ctx, f.teamID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestPickUsesFullRange(t *testing.T) {
	f := newSelectorFixture(t, 4)
	ctx := context.Background()

	var bounds []int
	sel := NewSelector(f.bank, f.ledger, WithRand(func(n int) int {
		bounds = append(bounds, n)
		return n - 1
	}))

	_, err := sel.Pick(ctx, f.teamID)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, bounds)
}

func TestPickNeverReturnsDisposedQuestions(t *testing.T) {
	f := newSelectorFixture(t, 6)
	ctx := context.Background()
	sel := NewSelector(f.bank, f.ledger)

	disposed := map[uuid.UUID]bool{}
	for i := 0; i < 6; i++ {
		q, err := sel.Pick(ctx, f.teamID)
		require.NoError(t, err)
		assert.False(t, disposed[q.ID], "picked a question already in a ledger")
		disposed[q.ID] = true
		if i%2 == 0 {
			_, err = f.ledger.RecordUsage(ctx, f.teamID, q.ID, "Ada")
		} else {
			_, err = f.ledger.RecordSkip(ctx, f.teamID, q.ID, "Ada")
		}
		require.NoError(t, err)
	}

	_, err := sel.Pick(ctx, f.teamID)
	assert.ErrorIs(t, err, ErrExhausted)
}

type brokenLedger struct{}

func (brokenLedger) UsedQuestionIDs(ctx context.Context, teamID uuid.UUID) ([]uuid.UUID, error) {
	return nil, errors.New("timeout")
}

func (brokenLedger) SkippedQuestionIDs(ctx context.Context, teamID uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func TestPickPropagatesLedgerErrors(t *testing.T) {
	f := newSelectorFixture(t, 1)

	_, err := NewSelector(f.bank, brokenLedger{}).Pick(context.Background(), f.teamID)

	assert.ErrorContains(t, err, "load used questions")
	assert.NotErrorIs(t, err, ErrExhausted)
}
