package question

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Difficulty constants.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Category constants.
const (
	CategoryPersonal     = "personal"
	CategoryWork         = "work"
	CategoryHypothetical = "hypothetical"
	CategoryCreative     = "creative"
	CategoryThoughtful   = "thoughtful"
	CategoryGeneral      = "general"
)

// Defaults applied when a create request leaves the field empty.
const (
	DefaultCategory   = CategoryGeneral
	DefaultDifficulty = DifficultyMedium
)

var (
	categories   = []string{CategoryPersonal, CategoryWork, CategoryHypothetical, CategoryCreative, CategoryThoughtful, CategoryGeneral}
	difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}
)

var (
	ErrNotFound          = errors.New("question not found")
	ErrTextRequired      = errors.New("question text is required")
	ErrInvalidCategory   = errors.New("category must be one of personal, work, hypothetical, creative, thoughtful, general")
	ErrInvalidDifficulty = errors.New("difficulty must be one of easy, medium, hard")
	// ErrExhausted means the team has used or skipped every question in the bank.
	ErrExhausted = errors.New("no more questions available for this team")
)

// Question is the JSON document served to the SPA. Field names follow the original
// document store so existing clients keep working.
type Question struct {
	ID         uuid.UUID `json:"_id"`
	Text       string    `json:"question"`
	Category   string    `json:"category"`
	Difficulty string    `json:"difficulty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateRequest is the admin payload for a new question.
type CreateRequest struct {
	Text       string `json:"question"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

// UpdateRequest carries optional fields; nil means "leave unchanged".
type UpdateRequest struct {
	Text       *string `json:"question"`
	Category   *string `json:"category"`
	Difficulty *string `json:"difficulty"`
}

// Categories returns the allowed category values.
func Categories() []string {
	return append([]string(nil), categories...)
}

// Difficulties returns the allowed difficulty values.
func Difficulties() []string {
	return append([]string(nil), difficulties...)
}

func validCategory(c string) bool {
	return slices.Contains(categories, c)
}

func validDifficulty(d string) bool {
	return slices.Contains(difficulties, d)
}
