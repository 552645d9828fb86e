package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"prompt-insights/internal/schema"
	"prompt-insights/internal/service"
	"prompt-insights/internal/sqlgen"
	"prompt-insights/internal/summary"

	"github.com/pterm/pterm"
)

// SchemaRefresher regenerates the cached schema description.
type SchemaRefresher interface {
	Refresh(ctx context.Context) (*schema.Snapshot, error)
}

// Shell is the interactive question loop. It remembers the last question,
// the last statement and the last answered result so that retry, fix and
// report can act on them.
type Shell struct {
	assistant *service.Assistant
	schema    SchemaRefresher
	prompt    Prompter
	out       io.Writer
	reportDir string
	spinner   bool
	now       func() time.Time

	lastQuestion string
	lastSQL      string
	lastError    string
	last         *service.Answer
}

type ShellConfig struct {
	ReportDir string
	// Spinner animates long model calls; off when output is not a terminal.
	Spinner bool
}

func NewShell(assistant *service.Assistant, refresher SchemaRefresher, prompt Prompter, out io.Writer, cfg ShellConfig) *Shell {
	return &Shell{
		assistant: assistant,
		schema:    refresher,
		prompt:    prompt,
		out:       out,
		reportDir: cfg.ReportDir,
		spinner:   cfg.Spinner,
		now:       time.Now,
	}
}

// Run reads commands and questions until quit or end of input.
func (s *Shell) Run(ctx context.Context) error {
	s.print(pterm.Info.Sprintln("Interactive mode. Ask questions about your data!"))
	s.print(pterm.Info.Sprintln("Commands: 'quit' to exit, 'refresh' to reload schema, 'retry' to try the last question again"))
	s.print(pterm.Info.Sprintln("          'fix' to repair the last failed query, 'summary' or 'report' to brief on the last results"))

	prompt := pterm.NewStyle(pterm.FgBlue, pterm.Bold).Sprint("> ")
	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := s.prompt.ReadLine("\n" + prompt)
		if errors.Is(err, io.EOF) {
			s.print(pterm.Success.Sprintln("Goodbye!"))
			return nil
		}
		if err != nil {
			return err
		}

		cmd := strings.ToLower(line)
		switch {
		case cmd == "":
		case cmd == "quit" || cmd == "exit" || cmd == "q":
			s.print(pterm.Success.Sprintln("Goodbye!"))
			return nil
		case cmd == "refresh":
			s.Refresh(ctx)
		case cmd == "retry" || cmd == "try again":
			if s.lastQuestion == "" {
				s.print(pterm.Warning.Sprintln("No previous question to retry."))
				continue
			}
			s.print(pterm.Info.Sprintln("Retrying last question..."))
			s.Ask(ctx, s.lastQuestion)
		case strings.HasPrefix(cmd, "fix"):
			if s.lastError == "" || s.lastSQL == "" {
				s.print(pterm.Warning.Sprintln("No failed query to fix."))
				continue
			}
			s.print(pterm.Info.Sprintln("Attempting to fix the last failed query..."))
			s.repair(ctx, s.lastQuestion, s.lastSQL, s.lastError)
		case strings.HasPrefix(cmd, "summary"):
			s.Summary(ctx)
		case strings.HasPrefix(cmd, "report"):
			s.Report(ctx)
		default:
			s.Ask(ctx, line)
		}
	}
}

// Ask runs one question through the loop and prints what happened. A
// failed statement leads into the repair path.
func (s *Shell) Ask(ctx context.Context, question string) {
	s.print(pterm.Sprintln(strings.Repeat("─", 60)))
	s.print(pterm.NewStyle(pterm.FgBlue, pterm.Bold).Sprintln("Question: " + question))
	s.lastQuestion = question

	stop := s.busy("Converting to SQL...")
	ans, err := s.assistant.Ask(ctx, question)
	stop()
	if err != nil {
		s.print(pterm.Error.Sprintfln("Error processing question: %v", err))
		return
	}

	if ans.Generation != nil && ans.Generation.Substituted() {
		s.print(pterm.Warning.Sprintfln("Generated SQL used %s and was replaced with a safe query", ans.Generation.ForbiddenToken))
	}
	s.lastSQL = ans.SQL
	s.print(pterm.Success.Sprintln("Generated SQL:"))
	s.print(sqlText(ans.SQL))

	s.show(ans, "Query")
	if ans.Outcome == service.OutcomeFailed {
		s.lastError = ans.Result.Error
		s.repair(ctx, question, ans.SQL, ans.Result.Error)
		return
	}
	s.lastError = ""

	if s.prompt.Confirm("Would you like an explanation of the SQL?") {
		s.explain(ctx, ans.SQL)
	}
}

// Summary prints a short executive summary of the last answered question.
func (s *Shell) Summary(ctx context.Context) {
	if s.last == nil {
		s.print(pterm.Warning.Sprintln("No recent query results available for a summary."))
		return
	}
	stop := s.busy("Summarizing results...")
	text := s.assistant.ExecutiveSummary(ctx, s.last.Question, s.last.Result)
	stop()
	s.print(titled("Executive Summary", text) + "\n")
}

// Report shows the executive report for the last answered question and
// saves it when the user agrees.
func (s *Shell) Report(ctx context.Context) {
	if s.last == nil {
		s.print(pterm.Warning.Sprintln("No recent query results available for report generation."))
		return
	}

	stop := s.busy("Generating executive summary report...")
	report, err := s.assistant.Report(ctx, s.last.Question, s.last.SQL, s.last.Result)
	stop()
	if err != nil {
		s.print(pterm.Error.Sprintfln("Error generating report: %v", err))
		return
	}
	s.print(titled("Executive Summary Report", report.Body) + "\n")

	if !s.prompt.Confirm("Save report to file?") {
		return
	}
	path, err := summary.SaveReport(s.reportDir, report, s.now())
	if err != nil {
		s.print(pterm.Error.Sprintfln("Error saving report: %v", err))
		return
	}
	s.print(pterm.Success.Sprintfln("Report saved to %s", path))
}

func (s *Shell) Refresh(ctx context.Context) {
	stop := s.busy("Refreshing schema...")
	snap, err := s.schema.Refresh(ctx)
	stop()
	if err != nil {
		s.print(pterm.Error.Sprintfln("Schema refresh failed: %v", err))
		return
	}
	s.print(pterm.Success.Sprintfln("Schema refreshed: %d tables in %s", snap.TableCount, snap.Database))
}

func (s *Shell) show(ans *service.Answer, label string) {
	switch ans.Outcome {
	case service.OutcomeFailed:
		s.print(pterm.Error.Sprintfln("%s failed: %s", label, ans.Result.Error))
	case service.OutcomeNoResults:
		s.print(pterm.Success.Sprintfln("%s executed successfully (0 rows)", label))
		s.print(pterm.Warning.Sprintln("No results found."))
		if ans.Suggestions != "" {
			s.print(pterm.Info.Sprintln("Suggestions:"))
			s.print(pterm.NewStyle(pterm.FgYellow).Sprintln(ans.Suggestions))
		}
	default:
		s.print(pterm.Success.Sprintfln("%s executed successfully (%d rows)", label, ans.Result.RowCount))
		s.print(pterm.Info.Sprintln("Answer:"))
		s.print(pterm.NewStyle(pterm.FgGreen).Sprintln(ans.Text))
		s.print(renderResult(ans.Result))
		s.print(pterm.Info.Sprintln("Type 'report' to generate an executive summary report"))
		s.last = ans
	}
}

// repair asks for a corrected statement and runs it only when the user
// agrees. Without a usable fix the alternatives are shown instead.
func (s *Shell) repair(ctx context.Context, question, failedSQL, dbError string) {
	s.print(pterm.Info.Sprintln("Let me try to fix this query..."))

	stop := s.busy("Generating a fix...")
	fixed, err := s.assistant.Repair(ctx, failedSQL, dbError)
	stop()

	if err == nil && fixed != "" && fixed != failedSQL {
		s.print(pterm.Info.Sprintln("Suggested fix:"))
		s.print(sqlText(fixed))
		if !s.prompt.Confirm("Try this fixed query?") {
			return
		}

		stop := s.busy("Executing fixed query...")
		ans := s.assistant.Run(ctx, question, fixed)
		stop()

		s.lastSQL = fixed
		s.show(ans, "Fixed query")
		if ans.Outcome == service.OutcomeFailed {
			s.lastError = ans.Result.Error
		} else {
			s.lastError = ""
		}
		return
	}
	if err != nil {
		s.print(pterm.Warning.Sprintfln("Could not generate a fix: %v", err))
	}

	if suggestions := s.assistant.Alternatives(ctx, question, failedSQL); suggestions != "" {
		s.print(pterm.Info.Sprintln("Suggestions:"))
		s.print(pterm.NewStyle(pterm.FgYellow).Sprintln(suggestions))
	}
}

func (s *Shell) explain(ctx context.Context, query string) {
	explanation, err := s.assistant.Explain(ctx, query)
	if err != nil {
		s.print(pterm.Error.Sprintfln("Could not explain the query: %v", err))
		return
	}
	s.print(pterm.Info.Sprintln("Explanation:"))
	s.print(explanation + "\n")
}

func (s *Shell) busy(text string) func() {
	if !s.spinner {
		s.print(pterm.Info.Sprintln(text))
		return func() {}
	}
	return startInlineSpinner(s.out, text, spinnerFrames, 100*time.Millisecond)
}

func (s *Shell) print(text string) {
	fmt.Fprint(s.out, text)
}

func sqlText(query string) string {
	return "\n" + pterm.NewStyle(pterm.FgCyan).Sprint(sqlgen.FormatSQL(query)) + "\n\n"
}
