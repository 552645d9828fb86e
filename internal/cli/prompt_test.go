package cli

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Yes\n", true},
		{"  Y  \n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		p := NewPrompter(strings.NewReader(tt.input), io.Discard)
		if got := p.Confirm("Proceed?"); got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestReadLine(t *testing.T) {
	var out strings.Builder
	p := NewPrompter(strings.NewReader(" top desks \nlast"), &out)

	line, err := p.ReadLine("> ")
	if err != nil || line != "top desks" {
		t.Fatalf("ReadLine() = %q, %v", line, err)
	}
	line, err = p.ReadLine("> ")
	if err != nil || line != "last" {
		t.Fatalf("ReadLine() = %q, %v", line, err)
	}
	if _, err := p.ReadLine("> "); !errors.Is(err, io.EOF) {
		t.Errorf("ReadLine() at end error = %v", err)
	}
	if out.String() != "> > > " {
		t.Errorf("prompts written = %q", out.String())
	}
}
