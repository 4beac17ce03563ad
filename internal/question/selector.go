package question

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/gokatarajesh/icebreaker/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/icebreaker/internal/db/sqlc"
)

type bankReader interface {
	List(ctx context.Context) ([]sqlcgen.Question, error)
}

type ledgerReader interface {
	UsedQuestionIDs(ctx context.Context, teamID uuid.UUID) ([]uuid.UUID, error)
	SkippedQuestionIDs(ctx context.Context, teamID uuid.UUID) ([]uuid.UUID, error)
}

var (
	_ bankReader   = (*repository.QuestionRepository)(nil)
	_ ledgerReader = (*repository.LedgerRepository)(nil)
)

// Selector draws a random question a team has neither used nor skipped. It keeps no
// state between calls: every draw re-reads the bank and both ledgers.
type Selector struct {
	bank   bankReader
	ledger ledgerReader
	intn   func(n int) int
}

// SelectorOption customises a Selector.
type SelectorOption func(*Selector)

// WithRand replaces the uniform source. intn must return a value in [0, n).
func WithRand(intn func(n int) int) SelectorOption {
	return func(s *Selector) {
		if intn != nil {
			s.intn = intn
		}
	}
}

func NewSelector(bank bankReader, ledger ledgerReader, opts ...SelectorOption) *Selector {
	s := &Selector{
		bank:   bank,
		ledger: ledger,
		intn:   rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available returns every question with no usage or skip record for the team, in bank order.
// The team is assumed to exist.
func (s *Selector) Available(ctx context.Context, teamID uuid.UUID) ([]Question, error) {
	used, err := s.ledger.UsedQuestionIDs(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("load used questions: %w", err)
	}
	skipped, err := s.ledger.SkippedQuestionIDs(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("load skipped questions: %w", err)
	}

	unavailable := make(map[uuid.UUID]struct{}, len(used)+len(skipped))
	for _, id := range used {
		unavailable[id] = struct{}{}
	}
	for _, id := range skipped {
		unavailable[id] = struct{}{}
	}

	rows, err := s.bank.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	available := make([]Question, 0, len(rows))
	for _, row := range rows {
		q := FromRow(row)
		if _, gone := unavailable[q.ID]; gone {
			continue
		}
		available = append(available, q)
	}
	return available, nil
}

// Pick returns one available question chosen uniformly at random, or ErrExhausted.
// It does not mark the question; callers record use or skip separately.
func (s *Selector) Pick(ctx context.Context, teamID uuid.UUID) (Question, error) {
	available, err := s.Available(ctx, teamID)
	if err != nil {
		return Question{}, err
	}
	if len(available) == 0 {
		return Question{}, ErrExhausted
	}
	return available[s.intn(len(available))], nil
}
