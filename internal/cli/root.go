// Package cli is the terminal front end: an interactive question loop plus
// maintenance subcommands for the schema cache, the analytics connection and
// training data export.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"prompt-insights/internal/schema"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var logLevel string

// rootCmd without a subcommand starts the interactive loop.
var rootCmd = &cobra.Command{
	Use:           "insights",
	Short:         "Ask questions about your data in plain English",
	Long:          `insights turns natural language questions into SQL, runs them read-only against the analytics database and explains the results.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		pterm.Info.Println("Initializing...")
		assistant, err := e.assistant(ctx)
		if err != nil {
			return err
		}
		pterm.Success.Println("Ready")

		shell := NewShell(assistant, e.schema, NewPrompter(os.Stdin, os.Stdout), os.Stdout, ShellConfig{
			ReportDir: e.cfg.Reports.Dir,
			Spinner:   isatty.IsTerminal(os.Stdout.Fd()),
		})
		return shell.Run(ctx)
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Answer a single question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		assistant, err := e.assistant(ctx)
		if err != nil {
			return err
		}

		shell := NewShell(assistant, e.schema, NewPrompter(os.Stdin, os.Stdout), os.Stdout, ShellConfig{
			ReportDir: e.cfg.Reports.Dir,
			Spinner:   isatty.IsTerminal(os.Stdout.Fd()),
		})
		shell.Ask(ctx, strings.Join(args, " "))
		return nil
	},
}

var generateSchemaCmd = &cobra.Command{
	Use:   "generate-schema",
	Short: "Regenerate the schema cache file from the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		pterm.Info.Println("Generating schema cache...")
		if err := e.connect(ctx); err != nil {
			return err
		}
		snap, err := e.schema.Refresh(ctx)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Schema cached to %s (%d tables)", e.cfg.Schema.CacheFile, snap.TableCount)
		return nil
	},
}

var schemaInfoCmd = &cobra.Command{
	Use:   "schema-info",
	Short: "Show information about the schema cache file",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		info, err := e.schema.Info()
		if errors.Is(err, schema.ErrCacheMissing) {
			pterm.Error.Println("No schema cache found")
			pterm.Println("   Please run: insights generate-schema")
			return nil
		}
		if err != nil {
			return err
		}

		body := fmt.Sprintf("Database:  %s\nTables:    %d\nGenerated: %s\nFile size: %d bytes",
			info.Database, info.TableCount, info.GeneratedAt.Format("2006-01-02 15:04:05"), info.FileSize)
		pterm.Println(titled("Schema Cache Information", body))
		return nil
	},
}

var testConnectionCmd = &cobra.Command{
	Use:   "test-connection",
	Short: "Check the analytics database is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		pterm.Info.Println("Testing database connection...")
		if err := e.connect(cmd.Context()); err != nil {
			pterm.Error.Println("Connection failed!")
			return err
		}
		pterm.Success.Println("Connection successful!")
		return nil
	},
}

// Execute runs the command line with a context cancelled on SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
		// the interactive loop blocks on stdin, so leave from here
		pterm.Println()
		pterm.Success.Println("Goodbye!")
		os.Exit(130)
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(generateSchemaCmd)
	rootCmd.AddCommand(schemaInfoCmd)
	rootCmd.AddCommand(testConnectionCmd)
	rootCmd.AddCommand(exportTrainingCmd)
}
