package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"prompt-insights/internal/models"

	"go.uber.org/zap"
)

type recordingCreator struct {
	created []*models.TrainingExample
}

func (r *recordingCreator) Create(_ context.Context, ex *models.TrainingExample) error {
	r.created = append(r.created, ex)
	return nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestSeedTrainingDataSkipsUnchangedFiles(t *testing.T) {
	dir := t.TempDir()
	cacheFile := filepath.Join(dir, ".seed_cache.json")
	seed := filepath.Join(dir, "desks.json")
	writeFile(t, seed, `[
		{"question": "Top desks by notional", "answer": "SELECT desk, SUM(notional) FROM trade_new GROUP BY desk;"},
		{"question": "", "answer": "SELECT 1;"}
	]`)
	writeFile(t, filepath.Join(dir, "broken.json"), `{not json`)

	repo := &recordingCreator{}
	ctx := context.Background()

	if err := seedTrainingData(ctx, dir, cacheFile, repo, zap.NewNop()); err != nil {
		t.Fatal(err)
	}
	if len(repo.created) != 1 || repo.created[0].Source != models.TrainingSourceSeed {
		t.Fatalf("created = %+v", repo.created)
	}

	if err := seedTrainingData(ctx, dir, cacheFile, repo, zap.NewNop()); err != nil {
		t.Fatal(err)
	}
	if len(repo.created) != 1 {
		t.Errorf("unchanged file was seeded again, created = %d", len(repo.created))
	}

	writeFile(t, seed, `[{"question": "Trades per desk", "answer": "SELECT desk, COUNT(*) FROM trade_new GROUP BY desk;"}]`)
	if err := seedTrainingData(ctx, dir, cacheFile, repo, zap.NewNop()); err != nil {
		t.Fatal(err)
	}
	if len(repo.created) != 2 || repo.created[1].Question != "Trades per desk" {
		t.Errorf("changed file not reprocessed: %+v", repo.created)
	}

	cache, err := loadCache(cacheFile)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.ProcessedFiles[filepath.Join(dir, "broken.json")]; ok {
		t.Error("unparseable file should not be cached")
	}
}
