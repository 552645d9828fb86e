package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"prompt-insights/internal/executor"

	"github.com/pterm/pterm"
)

const (
	displayRows    = 10
	displayColumns = 8
	cellWidth      = 40
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// startInlineSpinner animates frames followed by text on one line until the
// returned stop function is called. The line is cleared on stop.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
			select {
			case <-stop:
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s", line)
				i++
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
	}
}

func titled(title, body string) string {
	return pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(title)).
		WithPadding(1).
		Sprint(body)
}

// renderResult draws up to displayRows rows as a table. Wide results are cut
// to the first displayColumns columns.
func renderResult(res *executor.Result) string {
	if res == nil || len(res.Rows) == 0 {
		return pterm.Warning.Sprintln("No results found.")
	}

	columns := res.Columns
	var note string
	if len(columns) > displayColumns {
		note = pterm.Warning.Sprintfln("Table has %d columns, showing first %d", len(columns), displayColumns)
		columns = columns[:displayColumns]
	}

	data := pterm.TableData{columns}
	shown := res.Rows
	if len(shown) > displayRows {
		shown = shown[:displayRows]
	}
	for _, row := range shown {
		line := make([]string, len(columns))
		for i, c := range columns {
			line[i] = cell(row[c])
		}
		data = append(data, line)
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		table = fmt.Sprint(data)
	}

	out := note + table + "\n"
	if extra := len(res.Rows) - len(shown); extra > 0 {
		out += pterm.Info.Sprintfln("... and %d more rows", extra)
	}
	if res.Truncated {
		out += pterm.Warning.Sprintfln("Result truncated at %d rows", res.RowCount)
	}
	return out
}

func cell(v any) string {
	if v == nil {
		return "NULL"
	}
	s := fmt.Sprint(v)
	if r := []rune(s); len(r) > cellWidth {
		s = string(r[:cellWidth-3]) + "..."
	}
	return s
}
