package clipboard

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"copytext/internal/core"
)

type mockSink struct {
	name    string
	err     error
	written []string
}

func (m *mockSink) Name() string { return m.name }

func (m *mockSink) Write(text string) error {
	if m.err != nil {
		return m.err
	}
	m.written = append(m.written, text)
	return nil
}

func TestChain_FirstSinkWins(t *testing.T) {
	first := &mockSink{name: "first"}
	second := &mockSink{name: "second"}
	chain := NewChain(zap.NewNop(), first, second)

	if err := chain.Copy(context.Background(), "Song A; Artist B"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(first.written) != 1 || len(second.written) != 0 {
		t.Errorf("Expected only the first sink to be used, got first=%v second=%v", first.written, second.written)
	}
}

func TestChain_FallsBack(t *testing.T) {
	failing := &mockSink{name: "system", err: errors.New("xclip not found")}
	fallback := &mockSink{name: "osc52"}
	chain := NewChain(zap.NewNop(), failing, fallback)

	if err := chain.Copy(context.Background(), "text"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(fallback.written) != 1 || fallback.written[0] != "text" {
		t.Errorf("Expected fallback sink to receive text, got %v", fallback.written)
	}
}

func TestChain_Unavailable(t *testing.T) {
	tests := []struct {
		name  string
		sinks []Sink
	}{
		{"No sinks", nil},
		{"All sinks fail", []Sink{
			&mockSink{name: "system", err: errNoSystemClipboard},
			&mockSink{name: "osc52", err: errNotTerminal},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewChain(zap.NewNop(), tt.sinks...).Copy(context.Background(), "text")
			if !errors.Is(err, core.ErrClipboardUnavailable) {
				t.Errorf("Expected ErrClipboardUnavailable, got %v", err)
			}
		})
	}
}

func TestChain_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &mockSink{name: "system"}
	if err := NewChain(zap.NewNop(), sink).Copy(ctx, "text"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if len(sink.written) != 0 {
		t.Errorf("Expected nothing written, got %v", sink.written)
	}
}

func TestTerminal_Write(t *testing.T) {
	var buf bytes.Buffer
	term := &Terminal{out: &buf, isTerminal: true}

	if err := term.Write("hello"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\x1b]52;c;") {
		t.Errorf("Expected OSC 52 prefix, got %q", out)
	}
	if !strings.Contains(out, base64.StdEncoding.EncodeToString([]byte("hello"))) {
		t.Errorf("Expected base64 payload, got %q", out)
	}
}

func TestTerminal_NotATerminal(t *testing.T) {
	var buf bytes.Buffer
	term := &Terminal{out: &buf}

	if err := term.Write("hello"); !errors.Is(err, errNotTerminal) {
		t.Errorf("Expected errNotTerminal, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}
