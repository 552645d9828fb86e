package models

import "time"

type TrainingSource string

const (
	TrainingSourceManual   TrainingSource = "manual"
	TrainingSourceFeedback TrainingSource = "feedback"
	TrainingSourceSeed     TrainingSource = "seed"
)

// TrainingExample is a curated question/answer pair used as prompt context.
type TrainingExample struct {
	ID         int64          `db:"id"`
	Question   string         `db:"question"`
	Answer     string         `db:"answer"`
	Context    string         `db:"context"`
	Source     TrainingSource `db:"source"`
	ApprovedBy string         `db:"approved_by"`
	CreatedAt  time.Time      `db:"created_at"`
}
