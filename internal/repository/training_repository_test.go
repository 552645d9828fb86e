package repository

import (
	"context"
	"testing"
	"time"

	"prompt-insights/internal/models"

	"github.com/pashagolub/pgxmock/v4"
	"go.uber.org/zap"
)

var trainingRowColumns = []string{"id", "question", "answer", "context", "source", "approved_by", "created_at"}

func TestTrainingCreateDefaultsToManual(t *testing.T) {
	mock := newMock(t)
	repo := NewTrainingRepository(mock, zap.NewNop())
	now := time.Now()

	mock.ExpectQuery("INSERT INTO training_data").
		WithArgs("top desks", "SELECT desk FROM trades;", "", models.TrainingSourceManual, "admin").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))

	ex := &models.TrainingExample{Question: "top desks", Answer: "SELECT desk FROM trades;", ApprovedBy: "admin"}
	if err := repo.Create(context.Background(), ex); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if ex.ID != 1 || ex.Source != models.TrainingSourceManual {
		t.Errorf("example = %+v", ex)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSemanticContextUsesFirstKeywords(t *testing.T) {
	mock := newMock(t)
	repo := NewTrainingRepository(mock, zap.NewNop())
	now := time.Now()

	pattern := "%show exposure by%"
	mock.ExpectQuery(`SELECT (.+) FROM training_data WHERE \(question ILIKE \$1 OR answer ILIKE \$2\) LIMIT 5`).
		WithArgs(pattern, pattern).
		WillReturnRows(pgxmock.NewRows(trainingRowColumns).
			AddRow(int64(3), "show exposure by sector", "SELECT ...", "", "seed", "", now))

	got, err := repo.SemanticContext(context.Background(), "Show Exposure by sector please")
	if err != nil {
		t.Fatalf("SemanticContext() error = %v", err)
	}
	if len(got) != 1 || got[0].Source != models.TrainingSourceSeed {
		t.Errorf("got = %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSemanticContextEmptyQuestion(t *testing.T) {
	mock := newMock(t)
	repo := NewTrainingRepository(mock, zap.NewNop())

	got, err := repo.SemanticContext(context.Background(), "   ")
	if err != nil || got != nil {
		t.Errorf("SemanticContext() = %v, %v", got, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestTrainingList(t *testing.T) {
	mock := newMock(t)
	repo := NewTrainingRepository(mock, zap.NewNop())
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM training_data ORDER BY created_at DESC").
		WithArgs().
		WillReturnRows(pgxmock.NewRows(trainingRowColumns).
			AddRow(int64(2), "q2", "a2", "c", "manual", "admin", now).
			AddRow(int64(1), "q1", "a1", "", "feedback", "admin", now))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 || got[1].Source != models.TrainingSourceFeedback {
		t.Errorf("got = %+v", got)
	}
}
