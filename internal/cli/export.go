package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"prompt-insights/internal/models"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var exportOut string

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type fineTuneRecord struct {
	Messages []chatMessage `json:"messages"`
}

// writeTrainingJSONL writes one chat-format fine-tune record per example
// and returns how many were written. Examples without a question or answer
// are skipped.
func writeTrainingJSONL(w io.Writer, schemaText string, examples []*models.TrainingExample) (int, error) {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)

	written := 0
	for _, ex := range examples {
		q, a := strings.TrimSpace(ex.Question), strings.TrimSpace(ex.Answer)
		if q == "" || a == "" {
			continue
		}
		rec := fineTuneRecord{Messages: []chatMessage{
			{Role: "system", Content: schemaText},
			{Role: "user", Content: q},
			{Role: "assistant", Content: a},
		}}
		if err := enc.Encode(rec); err != nil {
			return written, fmt.Errorf("failed to encode training example %d: %w", ex.ID, err)
		}
		written++
	}
	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("failed to write training data: %w", err)
	}
	return written, nil
}

var exportTrainingCmd = &cobra.Command{
	Use:   "export-training",
	Short: "Export training examples as fine-tune JSONL",
	Long: `The export-training command reads every curated training example from the
feedback store and writes it as a chat-format fine-tune record. The schema
description from the cache file becomes the system message of each record.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		if !e.cfg.Database.Enabled {
			pterm.Warning.Println("Feedback store is disabled (FEEDBACK_STORE_ENABLED=false)")
			return nil
		}

		snap, err := e.schema.Load()
		if err != nil {
			pterm.Info.Println("Schema cache not found, generating it...")
			if err := e.connect(ctx); err != nil {
				return err
			}
			if snap, err = e.schema.Refresh(ctx); err != nil {
				return err
			}
		}

		repo := e.trainingStore(ctx)
		if repo == nil {
			return fmt.Errorf("feedback store is unreachable")
		}
		examples, err := repo.List(ctx)
		if err != nil {
			return err
		}

		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOut, err)
		}
		defer f.Close()

		n, err := writeTrainingJSONL(f, snap.Schema, examples)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Exported %d training examples to %s", n, exportOut)
		return nil
	},
}

func init() {
	exportTrainingCmd.Flags().StringVar(&exportOut, "out", "training_data.jsonl", "Output file")
}
