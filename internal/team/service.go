package team

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/icebreaker/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/icebreaker/internal/db/sqlc"
	"github.com/gokatarajesh/icebreaker/internal/events"
	"github.com/gokatarajesh/icebreaker/internal/metrics"
	"github.com/gokatarajesh/icebreaker/internal/question"
)

// Store is the team persistence surface (implemented by repository.TeamRepository).
type Store interface {
	List(ctx context.Context) ([]sqlcgen.Team, error)
	Get(ctx context.Context, id uuid.UUID) (sqlcgen.Team, error)
	Create(ctx context.Context, params sqlcgen.CreateTeamParams) (sqlcgen.Team, error)
	Count(ctx context.Context) (int64, error)
}

// Ledger is the usage/skip persistence surface (implemented by repository.LedgerRepository).
type Ledger interface {
	HasUsage(ctx context.Context, teamID, questionID uuid.UUID) (bool, error)
	HasSkip(ctx context.Context, teamID, questionID uuid.UUID) (bool, error)
	RecordUsage(ctx context.Context, teamID, questionID uuid.UUID, userName string) (sqlcgen.UsageHistory, error)
	RecordSkip(ctx context.Context, teamID, questionID uuid.UUID, userName string) (sqlcgen.SkippedQuestion, error)
	ResetTeam(ctx context.Context, teamID uuid.UUID) (sqlcgen.ResetTeamLedgersRow, error)
	TeamUserNames(ctx context.Context, teamID uuid.UUID) ([]string, error)
	AllUserNames(ctx context.Context) ([]string, error)
}

// QuestionLookup confirms a question exists before it is recorded.
type QuestionLookup interface {
	Get(ctx context.Context, id uuid.UUID) (question.Question, error)
}

// Picker draws an available question for a team.
type Picker interface {
	Pick(ctx context.Context, teamID uuid.UUID) (question.Question, error)
}

var (
	_ Store          = (*repository.TeamRepository)(nil)
	_ Ledger         = (*repository.LedgerRepository)(nil)
	_ QuestionLookup = (*question.Service)(nil)
	_ Picker         = (*question.Selector)(nil)
)

// Service owns teams and their use/skip ledgers.
type Service struct {
	store     Store
	ledger    Ledger
	questions QuestionLookup
	picker    Picker
	events    events.Publisher
	metrics   *metrics.Collectors
	logger    zerolog.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithEvents publishes ledger changes to live listeners.
func WithEvents(p events.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.events = p
		}
	}
}

// WithMetrics records draws, dispositions and resets.
func WithMetrics(c *metrics.Collectors) Option {
	return func(s *Service) { s.metrics = c }
}

func NewService(store Store, ledger Ledger, questions QuestionLookup, picker Picker, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		store:     store,
		ledger:    ledger,
		questions: questions,
		picker:    picker,
		events:    events.Nop{},
		logger:    logger.With().Str("component", "team").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all teams, oldest first.
func (s *Service) List(ctx context.Context) ([]Team, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	out := make([]Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromRow(row))
	}
	return out, nil
}

// Get returns one team or ErrNotFound.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Team, error) {
	row, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Team{}, ErrNotFound
		}
		return Team{}, fmt.Errorf("get team: %w", err)
	}
	return FromRow(row), nil
}

// Create adds a team. Names are unique.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Team, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Team{}, ErrNameRequired
	}
	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = DefaultColor
	}

	row, err := s.store.Create(ctx, sqlcgen.CreateTeamParams{Name: name, Color: color})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return Team{}, ErrNameTaken
		}
		return Team{}, fmt.Errorf("create team: %w", err)
	}
	s.logger.Info().Str("team_id", repository.UUIDFrom(row.TeamID).String()).Str("name", name).Msg("team created")
	return FromRow(row), nil
}

// DrawQuestion returns a random question the team has neither used nor skipped.
// It returns question.ErrExhausted when none remain.
func (s *Service) DrawQuestion(ctx context.Context, teamID uuid.UUID) (question.Question, error) {
	if _, err := s.Get(ctx, teamID); err != nil {
		return question.Question{}, err
	}
	q, err := s.picker.Pick(ctx, teamID)
	if err != nil {
		if errors.Is(err, question.ErrExhausted) {
			s.metrics.ObserveDraw(metrics.DrawExhausted)
			return question.Question{}, err
		}
		return question.Question{}, fmt.Errorf("draw question: %w", err)
	}
	s.metrics.ObserveDraw(metrics.DrawServed)
	return q, nil
}

// RecordUse marks a question as used by the team.
func (s *Service) RecordUse(ctx context.Context, teamID uuid.UUID, req DispositionRequest) error {
	return s.record(ctx, teamID, req, KindUsed)
}

// RecordSkip marks a question as skipped by the team.
func (s *Service) RecordSkip(ctx context.Context, teamID uuid.UUID, req DispositionRequest) error {
	return s.record(ctx, teamID, req, KindSkipped)
}

func (s *Service) record(ctx context.Context, teamID uuid.UUID, req DispositionRequest, kind string) error {
	rawID := strings.TrimSpace(req.QuestionID)
	if rawID == "" {
		return ErrQuestionIDRequired
	}
	userName := strings.TrimSpace(req.UserName)
	if userName == "" {
		return ErrUserNameRequired
	}
	if _, err := s.Get(ctx, teamID); err != nil {
		return err
	}
	questionID, err := uuid.Parse(rawID)
	if err != nil {
		return ErrQuestionNotFound
	}
	if _, err := s.questions.Get(ctx, questionID); err != nil {
		if errors.Is(err, question.ErrNotFound) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("lookup question: %w", err)
	}

	conflict := ErrAlreadyUsed
	exists := s.ledger.HasUsage
	insert := func() error {
		_, err := s.ledger.RecordUsage(ctx, teamID, questionID, userName)
		return err
	}
	evtType := events.TypeQuestionUsed
	if kind == KindSkipped {
		conflict = ErrAlreadySkipped
		exists = s.ledger.HasSkip
		insert = func() error {
			_, err := s.ledger.RecordSkip(ctx, teamID, questionID, userName)
			return err
		}
		evtType = events.TypeQuestionSkipped
	}

	found, err := exists(ctx, teamID, questionID)
	if err != nil {
		return fmt.Errorf("check %s ledger: %w", kind, err)
	}
	if found {
		return conflict
	}
	if err := insert(); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return conflict
		case errors.Is(err, repository.ErrNotFound):
			// Team or question deleted between the checks and the insert.
			return ErrQuestionNotFound
		}
		return fmt.Errorf("record %s: %w", kind, err)
	}

	s.metrics.ObserveDisposition(kind)
	s.logger.Info().
		Str("team_id", teamID.String()).
		Str("question_id", questionID.String()).
		Str("kind", kind).
		Msg("question recorded")
	s.publish(ctx, events.Event{
		Type:       evtType,
		TeamID:     teamID,
		QuestionID: questionID,
		UserName:   userName,
	})
	return nil
}

// Reset clears both ledgers for the team. Resetting an already clean team succeeds.
func (s *Service) Reset(ctx context.Context, teamID uuid.UUID) (ResetResult, error) {
	if _, err := s.Get(ctx, teamID); err != nil {
		return ResetResult{}, err
	}
	row, err := s.ledger.ResetTeam(ctx, teamID)
	if err != nil {
		return ResetResult{}, fmt.Errorf("reset team: %w", err)
	}
	s.metrics.ObserveReset()
	s.logger.Info().
		Str("team_id", teamID.String()).
		Int64("used_deleted", row.UsedDeleted).
		Int64("skipped_deleted", row.SkippedDeleted).
		Msg("team reset")
	s.publish(ctx, events.Event{Type: events.TypeTeamReset, TeamID: teamID})
	return ResetResult{UsedDeleted: row.UsedDeleted, SkippedDeleted: row.SkippedDeleted}, nil
}

// TeamUserNames returns the sorted distinct names that used or skipped questions for the team.
func (s *Service) TeamUserNames(ctx context.Context, teamID uuid.UUID) ([]string, error) {
	names, err := s.ledger.TeamUserNames(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("team user names: %w", err)
	}
	return nonNil(names), nil
}

// AllUserNames returns the sorted distinct names across every team.
func (s *Service) AllUserNames(ctx context.Context) ([]string, error) {
	names, err := s.ledger.AllUserNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("all user names: %w", err)
	}
	return nonNil(names), nil
}

// SeedDefaults inserts the sample teams when none exist.
func (s *Service) SeedDefaults(ctx context.Context) (int, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count teams: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	for i, req := range DefaultTeams {
		if _, err := s.Create(ctx, req); err != nil {
			return i, fmt.Errorf("seed team %q: %w", req.Name, err)
		}
	}
	s.logger.Info().Int("count", len(DefaultTeams)).Msg("sample teams initialized")
	return len(DefaultTeams), nil
}

func (s *Service) publish(ctx context.Context, evt events.Event) {
	if err := s.events.Publish(ctx, evt); err != nil {
		s.logger.Warn().Err(err).Str("type", evt.Type).Msg("event publish failed")
	}
}

// FromRow converts a sqlc row into the API document.
func FromRow(row sqlcgen.Team) Team {
	return Team{
		ID:        repository.UUIDFrom(row.TeamID),
		Name:      row.Name,
		Color:     row.Color,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
