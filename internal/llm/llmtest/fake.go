// Package llmtest provides a scripted Completer for tests.
package llmtest

import (
	"context"
	"errors"
	"sync"

	"prompt-insights/internal/llm"
)

// Call records one Complete invocation.
type Call struct {
	Prompt  string
	Options llm.Options
}

// Fake returns scripted responses in order. When the script runs out the
// last response repeats. A response with a non-nil Err fails the call.
type Fake struct {
	mu        sync.Mutex
	responses []Response
	calls     []Call
}

type Response struct {
	Text string
	Err  error
}

var ErrUnavailable = errors.New("model unavailable")

func New(responses ...Response) *Fake {
	return &Fake{responses: responses}
}

// Text is shorthand for a fake that always answers with the given strings in order.
func Text(texts ...string) *Fake {
	f := &Fake{}
	for _, t := range texts {
		f.responses = append(f.responses, Response{Text: t})
	}
	return f
}

// Failing returns a fake whose every call fails.
func Failing() *Fake {
	return New(Response{Err: ErrUnavailable})
}

func (f *Fake) Complete(_ context.Context, prompt string, opts llm.Options) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := len(f.calls)
	f.calls = append(f.calls, Call{Prompt: prompt, Options: opts})
	if len(f.responses) == 0 {
		return "", ErrUnavailable
	}
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	r := f.responses[idx]
	return r.Text, r.Err
}

func (f *Fake) Close() error { return nil }

func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}
