package team

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultColor is applied when a team is created without a colour.
const DefaultColor = "#3B82F6"

// Disposition kinds recorded against a team.
const (
	KindUsed    = "used"
	KindSkipped = "skipped"
)

var (
	ErrNotFound           = errors.New("team not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrNameRequired       = errors.New("team name is required")
	ErrNameTaken          = errors.New("team name already exists")
	ErrQuestionIDRequired = errors.New("question ID is required")
	ErrUserNameRequired   = errors.New("user name is required")
	ErrAlreadyUsed        = errors.New("question already marked as used")
	ErrAlreadySkipped     = errors.New("question already marked as skipped")
)

// Team is the JSON document served to the SPA.
type Team struct {
	ID        uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateRequest is the body of POST /api/teams.
type CreateRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DispositionRequest is the body of the use-question and skip-question endpoints.
// QuestionID stays a string so an empty value can be told apart from a malformed one.
type DispositionRequest struct {
	QuestionID string `json:"questionId"`
	UserName   string `json:"userName"`
}

// ResetResult reports how many ledger rows a reset removed.
type ResetResult struct {
	UsedDeleted    int64 `json:"usedDeleted"`
	SkippedDeleted int64 `json:"skippedDeleted"`
}

// DefaultTeams is the sample team set inserted into an empty database.
var DefaultTeams = []CreateRequest{
	{Name: "Engineering Team", Color: "#3B82F6"},
	{Name: "Design Team", Color: "#EF4444"},
	{Name: "Marketing Team", Color: "#10B981"},
	{Name: "Sales Team", Color: "#F59E0B"},
}
