// Package memdb is an in-memory sqlcgen.Querier used by service tests. It mirrors the
// constraints of db/migrations: unique team names, unique (team, question) per ledger,
// foreign keys and ON DELETE CASCADE.
package memdb

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	sqlcgen "github.com/gokatarajesh/icebreaker/internal/db/sqlc"
)

// Store holds all four tables behind one mutex.
type Store struct {
	mu        sync.Mutex
	clock     func() time.Time
	questions []sqlcgen.Question
	teams     []sqlcgen.Team
	usage     []sqlcgen.UsageHistory
	skips     []sqlcgen.SkippedQuestion
}

var _ sqlcgen.Querier = (*Store)(nil)

// New returns an empty store. Timestamps advance by one millisecond per insert so
// ordering by created_at is deterministic.
func New() *Store {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var tick int64
	return &Store{
		clock: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Millisecond)
		},
	}
}

func newID() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.New(), Valid: true}
}

func (s *Store) now() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: s.clock(), Valid: true}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func foreignKeyViolation(constraint string) error {
	return &pgconn.PgError{Code: "23503", ConstraintName: constraint}
}

func (s *Store) CountQuestions(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.questions)), nil
}

func (s *Store) CountTeams(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.teams)), nil
}

func (s *Store) CreateQuestion(ctx context.Context, arg sqlcgen.CreateQuestionParams) (sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	q := sqlcgen.Question{
		QuestionID: newID(),
		Question:   arg.Question,
		Category:   arg.Category,
		Difficulty: arg.Difficulty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.questions = append(s.questions, q)
	return q, nil
}

func (s *Store) CreateTeam(ctx context.Context, arg sqlcgen.CreateTeamParams) (sqlcgen.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.teams {
		if t.Name == arg.Name {
			return sqlcgen.Team{}, uniqueViolation("teams_name_key")
		}
	}
	now := s.now()
	t := sqlcgen.Team{TeamID: newID(), Name: arg.Name, Color: arg.Color, CreatedAt: now, UpdatedAt: now}
	s.teams = append(s.teams, t)
	return t, nil
}

func (s *Store) DeleteQuestion(ctx context.Context, questionID pgtype.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.questionIndex(questionID)
	if idx < 0 {
		return 0, nil
	}
	s.questions = append(s.questions[:idx], s.questions[idx+1:]...)

	usage := s.usage[:0]
	for _, u := range s.usage {
		if u.QuestionID != questionID {
			usage = append(usage, u)
		}
	}
	s.usage = usage
	skips := s.skips[:0]
	for _, sk := range s.skips {
		if sk.QuestionID != questionID {
			skips = append(skips, sk)
		}
	}
	s.skips = skips
	return 1, nil
}

func (s *Store) GetQuestion(ctx context.Context, questionID pgtype.UUID) (sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.questionIndex(questionID); idx >= 0 {
		return s.questions[idx], nil
	}
	return sqlcgen.Question{}, pgx.ErrNoRows
}

func (s *Store) GetTeam(ctx context.Context, teamID pgtype.UUID) (sqlcgen.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.teamIndex(teamID); idx >= 0 {
		return s.teams[idx], nil
	}
	return sqlcgen.Team{}, pgx.ErrNoRows
}

func (s *Store) InsertSkip(ctx context.Context, arg sqlcgen.InsertSkipParams) (sqlcgen.SkippedQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkRefs(arg.TeamID, arg.QuestionID, "skipped_questions"); err != nil {
		return sqlcgen.SkippedQuestion{}, err
	}
	for _, sk := range s.skips {
		if sk.TeamID == arg.TeamID && sk.QuestionID == arg.QuestionID {
			return sqlcgen.SkippedQuestion{}, uniqueViolation("skipped_questions_team_question_key")
		}
	}
	row := sqlcgen.SkippedQuestion{
		SkipID:     newID(),
		TeamID:     arg.TeamID,
		QuestionID: arg.QuestionID,
		UserName:   arg.UserName,
		CreatedAt:  s.now(),
	}
	s.skips = append(s.skips, row)
	return row, nil
}

func (s *Store) InsertUsage(ctx context.Context, arg sqlcgen.InsertUsageParams) (sqlcgen.UsageHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkRefs(arg.TeamID, arg.QuestionID, "usage_history"); err != nil {
		return sqlcgen.UsageHistory{}, err
	}
	for _, u := range s.usage {
		if u.TeamID == arg.TeamID && u.QuestionID == arg.QuestionID {
			return sqlcgen.UsageHistory{}, uniqueViolation("usage_history_team_question_key")
		}
	}
	row := sqlcgen.UsageHistory{
		UsageID:    newID(),
		TeamID:     arg.TeamID,
		QuestionID: arg.QuestionID,
		UserName:   arg.UserName,
		CreatedAt:  s.now(),
	}
	s.usage = append(s.usage, row)
	return row, nil
}

func (s *Store) ListAllUserNames(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := map[string]struct{}{}
	for _, u := range s.usage {
		set[u.UserName] = struct{}{}
	}
	for _, sk := range s.skips {
		set[sk.UserName] = struct{}{}
	}
	return sortedKeys(set), nil
}

func (s *Store) ListQuestions(ctx context.Context) ([]sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sqlcgen.Question, len(s.questions))
	copy(out, s.questions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Time.After(out[j].CreatedAt.Time)
	})
	return out, nil
}

func (s *Store) ListSkipDetails(ctx context.Context) ([]sqlcgen.ListSkipDetailsRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []sqlcgen.ListSkipDetailsRow
	for _, sk := range s.skips {
		team := s.teams[s.teamIndex(sk.TeamID)]
		q := s.questions[s.questionIndex(sk.QuestionID)]
		out = append(out, sqlcgen.ListSkipDetailsRow{
			SkipID:       sk.SkipID,
			TeamID:       sk.TeamID,
			TeamName:     team.Name,
			QuestionID:   sk.QuestionID,
			QuestionText: q.Question,
			UserName:     sk.UserName,
			CreatedAt:    sk.CreatedAt,
		})
	}
	return out, nil
}

func (s *Store) ListSkippedQuestionIDs(ctx context.Context, teamID pgtype.UUID) ([]pgtype.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []pgtype.UUID
	for _, sk := range s.skips {
		if sk.TeamID == teamID {
			out = append(out, sk.QuestionID)
		}
	}
	return out, nil
}

func (s *Store) ListTeamUserNames(ctx context.Context, teamID pgtype.UUID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := map[string]struct{}{}
	for _, u := range s.usage {
		if u.TeamID == teamID {
			set[u.UserName] = struct{}{}
		}
	}
	for _, sk := range s.skips {
		if sk.TeamID == teamID {
			set[sk.UserName] = struct{}{}
		}
	}
	return sortedKeys(set), nil
}

func (s *Store) ListTeams(ctx context.Context) ([]sqlcgen.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sqlcgen.Team, len(s.teams))
	copy(out, s.teams)
	return out, nil
}

func (s *Store) ListUsageDetails(ctx context.Context) ([]sqlcgen.ListUsageDetailsRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []sqlcgen.ListUsageDetailsRow
	for _, u := range s.usage {
		team := s.teams[s.teamIndex(u.TeamID)]
		q := s.questions[s.questionIndex(u.QuestionID)]
		out = append(out, sqlcgen.ListUsageDetailsRow{
			UsageID:      u.UsageID,
			TeamID:       u.TeamID,
			TeamName:     team.Name,
			QuestionID:   u.QuestionID,
			QuestionText: q.Question,
			UserName:     u.UserName,
			CreatedAt:    u.CreatedAt,
		})
	}
	return out, nil
}

func (s *Store) ListUsedQuestionIDs(ctx context.Context, teamID pgtype.UUID) ([]pgtype.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []pgtype.UUID
	for _, u := range s.usage {
		if u.TeamID == teamID {
			out = append(out, u.QuestionID)
		}
	}
	return out, nil
}

func (s *Store) ResetTeamLedgers(ctx context.Context, teamID pgtype.UUID) (sqlcgen.ResetTeamLedgersRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var row sqlcgen.ResetTeamLedgersRow
	usage := s.usage[:0]
	for _, u := range s.usage {
		if u.TeamID == teamID {
			row.UsedDeleted++
			continue
		}
		usage = append(usage, u)
	}
	s.usage = usage
	skips := s.skips[:0]
	for _, sk := range s.skips {
		if sk.TeamID == teamID {
			row.SkippedDeleted++
			continue
		}
		skips = append(skips, sk)
	}
	s.skips = skips
	return row, nil
}

func (s *Store) SkipExists(ctx context.Context, arg sqlcgen.SkipExistsParams) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sk := range s.skips {
		if sk.TeamID == arg.TeamID && sk.QuestionID == arg.QuestionID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) UpdateQuestion(ctx context.Context, arg sqlcgen.UpdateQuestionParams) (sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.questionIndex(arg.QuestionID)
	if idx < 0 {
		return sqlcgen.Question{}, pgx.ErrNoRows
	}
	q := &s.questions[idx]
	if arg.Question.Valid {
		q.Question = arg.Question.String
	}
	if arg.Category.Valid {
		q.Category = arg.Category.String
	}
	if arg.Difficulty.Valid {
		q.Difficulty = arg.Difficulty.String
	}
	q.UpdatedAt = s.now()
	return *q, nil
}

func (s *Store) UsageExists(ctx context.Context, arg sqlcgen.UsageExistsParams) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.usage {
		if u.TeamID == arg.TeamID && u.QuestionID == arg.QuestionID {
			return true, nil
		}
	}
	return false, nil
}

// UsageCount and SkipCount expose table sizes for assertions.
func (s *Store) UsageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.usage)
}

func (s *Store) SkipCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.skips)
}

func (s *Store) checkRefs(teamID, questionID pgtype.UUID, table string) error {
	if s.teamIndex(teamID) < 0 {
		return foreignKeyViolation(table + "_team_id_fkey")
	}
	if s.questionIndex(questionID) < 0 {
		return foreignKeyViolation(table + "_question_id_fkey")
	}
	return nil
}

func (s *Store) questionIndex(id pgtype.UUID) int {
	for i, q := range s.questions {
		if q.QuestionID == id {
			return i
		}
	}
	return -1
}

func (s *Store) teamIndex(id pgtype.UUID) int {
	for i, t := range s.teams {
		if t.TeamID == id {
			return i
		}
	}
	return -1
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return strings.Compare(out[i], out[j]) < 0 })
	return out
}
