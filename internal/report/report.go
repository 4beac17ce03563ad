// Package report builds the admin usage statistics view.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gokatarajesh/icebreaker/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/icebreaker/internal/db/sqlc"
)

// LedgerReader lists every usage and skip record joined with team and question text.
type LedgerReader interface {
	UsageDetails(ctx context.Context) ([]sqlcgen.ListUsageDetailsRow, error)
	SkipDetails(ctx context.Context) ([]sqlcgen.ListSkipDetailsRow, error)
}

// Counter reports a table's row count.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

var (
	_ LedgerReader = (*repository.LedgerRepository)(nil)
	_ Counter      = (*repository.QuestionRepository)(nil)
	_ Counter      = (*repository.TeamRepository)(nil)
)

// UsageEntry is one question a team used.
type UsageEntry struct {
	ID           uuid.UUID `json:"id"`
	TeamID       uuid.UUID `json:"teamId"`
	TeamName     string    `json:"teamName"`
	QuestionID   uuid.UUID `json:"questionId"`
	QuestionText string    `json:"questionText"`
	UserName     string    `json:"userName"`
	UsedAt       time.Time `json:"usedAt"`
}

// SkipEntry is one question a team skipped.
type SkipEntry struct {
	ID           uuid.UUID `json:"id"`
	TeamID       uuid.UUID `json:"teamId"`
	TeamName     string    `json:"teamName"`
	QuestionID   uuid.UUID `json:"questionId"`
	QuestionText string    `json:"questionText"`
	UserName     string    `json:"userName"`
	SkippedAt    time.Time `json:"skippedAt"`
}

type Summary struct {
	TotalUsed      int   `json:"totalUsed"`
	TotalSkipped   int   `json:"totalSkipped"`
	TotalQuestions int64 `json:"totalQuestions"`
	TotalTeams     int64 `json:"totalTeams"`
}

// UsageStats is the body of GET /api/admin/usage-stats.
type UsageStats struct {
	Usage   []UsageEntry `json:"usage"`
	Skipped []SkipEntry  `json:"skipped"`
	Summary Summary      `json:"summary"`
}

type Service struct {
	ledger    LedgerReader
	questions Counter
	teams     Counter
	logger    zerolog.Logger
}

func NewService(ledger LedgerReader, questions, teams Counter, logger zerolog.Logger) *Service {
	return &Service{
		ledger:    ledger,
		questions: questions,
		teams:     teams,
		logger:    logger.With().Str("component", "report").Logger(),
	}
}

// UsageStats reads both ledgers and the table counts concurrently.
func (s *Service) UsageStats(ctx context.Context) (UsageStats, error) {
	var (
		usage     []sqlcgen.ListUsageDetailsRow
		skipped   []sqlcgen.ListSkipDetailsRow
		questions int64
		teams     int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		usage, err = s.ledger.UsageDetails(gctx)
		if err != nil {
			err = fmt.Errorf("usage details: %w", err)
		}
		return err
	})
	g.Go(func() (err error) {
		skipped, err = s.ledger.SkipDetails(gctx)
		if err != nil {
			err = fmt.Errorf("skip details: %w", err)
		}
		return err
	})
	g.Go(func() (err error) {
		questions, err = s.questions.Count(gctx)
		if err != nil {
			err = fmt.Errorf("count questions: %w", err)
		}
		return err
	})
	g.Go(func() (err error) {
		teams, err = s.teams.Count(gctx)
		if err != nil {
			err = fmt.Errorf("count teams: %w", err)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return UsageStats{}, err
	}

	stats := UsageStats{
		Usage:   make([]UsageEntry, 0, len(usage)),
		Skipped: make([]SkipEntry, 0, len(skipped)),
		Summary: Summary{
			TotalUsed:      len(usage),
			TotalSkipped:   len(skipped),
			TotalQuestions: questions,
			TotalTeams:     teams,
		},
	}
	for _, row := range usage {
		stats.Usage = append(stats.Usage, UsageEntry{
			ID:           repository.UUIDFrom(row.UsageID),
			TeamID:       repository.UUIDFrom(row.TeamID),
			TeamName:     row.TeamName,
			QuestionID:   repository.UUIDFrom(row.QuestionID),
			QuestionText: row.QuestionText,
			UserName:     row.UserName,
			UsedAt:       row.CreatedAt.Time,
		})
	}
	for _, row := range skipped {
		stats.Skipped = append(stats.Skipped, SkipEntry{
			ID:           repository.UUIDFrom(row.SkipID),
			TeamID:       repository.UUIDFrom(row.TeamID),
			TeamName:     row.TeamName,
			QuestionID:   repository.UUIDFrom(row.QuestionID),
			QuestionText: row.QuestionText,
			UserName:     row.UserName,
			SkippedAt:    row.CreatedAt.Time,
		})
	}
	return stats, nil
}
