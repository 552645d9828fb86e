package main

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"prompt-insights/internal/models"
	"prompt-insights/internal/repository"
	"prompt-insights/pkg/config"
	"prompt-insights/pkg/logger"
	"prompt-insights/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	trainingRepo := repository.NewTrainingRepository(db, appLogger)

	appLogger.Info("Starting training data seeding...")

	seedDir := filepath.Join("cmd", "seed")
	if len(os.Args) > 1 {
		seedDir = os.Args[1]
	}
	cacheFile := filepath.Join(seedDir, ".seed_cache.json")
	if err := seedTrainingData(ctx, seedDir, cacheFile, trainingRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed training data", zap.Error(err))
	}

	appLogger.Info("Training data seeding completed successfully!")
}

// ProcessedFile represents a seed file already loaded into the store
type ProcessedFile struct {
	FilePath    string    `json:"file_path"`
	FileHash    string    `json:"file_hash"`
	Examples    int       `json:"examples"`
	ProcessedAt time.Time `json:"processed_at"`
}

// CacheData stores information about processed files
type CacheData struct {
	ProcessedFiles map[string]ProcessedFile `json:"processed_files"` // key: file path
}

// seedExample is one entry of a seed file.
type seedExample struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Context  string `json:"context,omitempty"`
}

type trainingCreator interface {
	Create(ctx context.Context, ex *models.TrainingExample) error
}

func loadCache(cacheFile string) (*CacheData, error) {
	cache := &CacheData{
		ProcessedFiles: make(map[string]ProcessedFile),
	}

	data, err := os.ReadFile(cacheFile)
	if os.IsNotExist(err) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	if len(data) == 0 {
		return cache, nil
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	if cache.ProcessedFiles == nil {
		cache.ProcessedFiles = make(map[string]ProcessedFile)
	}
	return cache, nil
}

func saveCache(cacheFile string, cache *CacheData) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// calculateFileHash calculates MD5 hash of a file
func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

func readSeedFile(path string) ([]seedExample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var examples []seedExample
	if err := json.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return examples, nil
}

// seedTrainingData loads every *.json file in seedDir whose content changed
// since the last run. Entries without a question or answer are skipped.
func seedTrainingData(
	ctx context.Context,
	seedDir string,
	cacheFile string,
	repo trainingCreator,
	logger *zap.Logger,
) error {
	now := time.Now()

	cache, err := loadCache(cacheFile)
	if err != nil {
		logger.Warn("Failed to load cache, will process all files", zap.Error(err))
		cache = &CacheData{ProcessedFiles: make(map[string]ProcessedFile)}
	}

	files, err := filepath.Glob(filepath.Join(seedDir, "*.json"))
	if err != nil {
		return fmt.Errorf("failed to list seed files: %w", err)
	}
	sort.Strings(files)

	for _, path := range files {
		if filepath.Base(path) == filepath.Base(cacheFile) {
			continue
		}

		fileHash, err := calculateFileHash(path)
		if err != nil {
			logger.Warn("Failed to calculate file hash, will process anyway", zap.String("path", path), zap.Error(err))
		}

		if cached, exists := cache.ProcessedFiles[path]; exists && fileHash != "" {
			if cached.FileHash == fileHash {
				logger.Info("Seed file already processed, skipping",
					zap.String("path", path),
					zap.Time("processed_at", cached.ProcessedAt),
				)
				continue
			}
			logger.Info("Seed file changed, reprocessing",
				zap.String("path", path),
				zap.String("old_hash", cached.FileHash),
				zap.String("new_hash", fileHash),
			)
		}

		examples, err := readSeedFile(path)
		if err != nil {
			logger.Error("Failed to read seed file", zap.String("path", path), zap.Error(err))
			continue
		}

		created := 0
		for _, se := range examples {
			q, a := strings.TrimSpace(se.Question), strings.TrimSpace(se.Answer)
			if q == "" || a == "" {
				continue
			}
			ex := &models.TrainingExample{
				Question:   q,
				Answer:     a,
				Context:    strings.TrimSpace(se.Context),
				Source:     models.TrainingSourceSeed,
				ApprovedBy: "seed",
			}
			if err := repo.Create(ctx, ex); err != nil {
				logger.Error("Failed to create training example", zap.String("path", path), zap.Error(err))
				continue
			}
			created++
		}

		logger.Info("Seeded training examples",
			zap.String("path", path),
			zap.Int("examples", created),
		)

		cache.ProcessedFiles[path] = ProcessedFile{
			FilePath:    path,
			FileHash:    fileHash,
			Examples:    created,
			ProcessedAt: now,
		}
	}

	if err := saveCache(cacheFile, cache); err != nil {
		logger.Warn("Failed to save cache", zap.Error(err))
	} else {
		logger.Info("Cache saved", zap.Int("processed_files", len(cache.ProcessedFiles)))
	}

	return nil
}
