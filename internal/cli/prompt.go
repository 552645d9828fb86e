package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
)

// Prompter reads answers from the user.
type Prompter interface {
	// ReadLine shows label and returns the trimmed line. io.EOF means the
	// input is closed.
	ReadLine(label string) (string, error)
	// Confirm asks a y/n question; anything but y or yes is a no.
	Confirm(question string) bool
}

type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter reads answers line by line from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) Prompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

func (p *linePrompter) ReadLine(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *linePrompter) Confirm(question string) bool {
	label := pterm.NewStyle(pterm.FgMagenta).Sprint(question + " (y/n): ")
	answer, err := p.ReadLine(label)
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}
