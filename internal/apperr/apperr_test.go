package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestError(t *testing.T) {
	tests := []struct {
		name string
		err  *E
		want string
	}{
		{
			name: "message only",
			err:  New(NotFound, "session not found"),
			want: "not_found: session not found",
		},
		{
			name: "wrapped cause",
			err:  Wrap(ModelCallFailed, "completion failed", errors.New("timeout")),
			want: "model_call_failed: completion failed: timeout",
		},
		{
			name: "with op",
			err:  Wrap(ExecutionFailed, "query failed", errors.New("syntax")).WithOp("executor.Execute"),
			want: "executor.Execute: execution_failed: query failed: syntax",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindOfThroughWrapping(t *testing.T) {
	base := Wrap(SchemaUnavailable, "no schema", nil)
	wrapped := fmt.Errorf("loading: %w", base)

	if got := KindOf(wrapped); got != SchemaUnavailable {
		t.Fatalf("KindOf() = %q, want %q", got, SchemaUnavailable)
	}
	if got := KindOf(errors.New("plain")); got != Unknown {
		t.Fatalf("KindOf(plain) = %q, want %q", got, Unknown)
	}
	if !errors.Is(wrapped, New(SchemaUnavailable, "")) {
		t.Fatal("errors.Is should match on kind")
	}
	if errors.Is(wrapped, New(NotFound, "")) {
		t.Fatal("errors.Is should not match a different kind")
	}
}

func TestUnwrapAndMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ModelCallFailed, "model unreachable", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if got := Message(fmt.Errorf("ctx: %w", err)); got != "model unreachable" {
		t.Errorf("Message() = %q", got)
	}
	if got := Message(cause); got != "connection refused" {
		t.Errorf("Message(plain) = %q", got)
	}
	if got := Message(nil); got != "" {
		t.Errorf("Message(nil) = %q", got)
	}
}
