// Package clipboard writes text to the system clipboard, falling back to the
// OSC 52 terminal escape when no system clipboard is reachable.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"copytext/internal/core"
)

var (
	errNoSystemClipboard = errors.New("no system clipboard utility found")
	errNotTerminal       = errors.New("output is not a terminal")
)

// Sink is one way of getting text onto a clipboard.
type Sink interface {
	Name() string
	Write(text string) error
}

// System writes through the platform clipboard utilities.
type System struct{}

func (System) Name() string { return "system" }

func (System) Write(text string) error {
	if clipboard.Unsupported {
		return errNoSystemClipboard
	}
	return clipboard.WriteAll(text)
}

// Terminal emits an OSC 52 sequence, which most terminal emulators turn
// into a clipboard write, including over SSH.
type Terminal struct {
	out        io.Writer
	isTerminal bool
	tmux       bool
}

// NewTerminal writes to f when it is a terminal.
func NewTerminal(f *os.File) *Terminal {
	fd := f.Fd()
	return &Terminal{
		out:        f,
		isTerminal: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		tmux:       os.Getenv("TMUX") != "",
	}
}

func (t *Terminal) Name() string { return "osc52" }

func (t *Terminal) Write(text string) error {
	if !t.isTerminal {
		return errNotTerminal
	}
	seq := osc52.New(text)
	if t.tmux {
		seq = seq.Tmux()
	}
	_, err := seq.WriteTo(t.out)
	return err
}

// Chain tries each sink in order and stops at the first that succeeds.
type Chain struct {
	sinks  []Sink
	logger *zap.Logger
}

func NewChain(logger *zap.Logger, sinks ...Sink) *Chain {
	return &Chain{sinks: sinks, logger: logger}
}

// New builds the default chain: the system clipboard, then OSC 52 on stderr
// when enabled.
func New(config *core.ClipboardConfig, logger *zap.Logger) *Chain {
	sinks := []Sink{System{}}
	if config.OSC52 {
		sinks = append(sinks, NewTerminal(os.Stderr))
	}
	return NewChain(logger, sinks...)
}

// Copy implements core.Clipboard.
func (c *Chain) Copy(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var lastErr error
	for _, sink := range c.sinks {
		err := sink.Write(text)
		if err == nil {
			c.logger.Debug("Copied to clipboard", zap.String("sink", sink.Name()))
			return nil
		}
		c.logger.Debug("Clipboard sink failed", zap.String("sink", sink.Name()), zap.Error(err))
		lastErr = err
	}

	if lastErr == nil {
		return core.ErrClipboardUnavailable
	}
	return fmt.Errorf("%w: %w", core.ErrClipboardUnavailable, lastErr)
}
