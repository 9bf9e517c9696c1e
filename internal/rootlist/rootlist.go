// Package rootlist reads the user's library tree from an exported rootlist file.
package rootlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"copytext/internal/core"
)

// ErrNoPath is returned when no rootlist file is configured.
var ErrNoPath = errors.New("no rootlist file configured")

// File lists folders from a JSON document of the form
// {"items":[{"type":"folder","uri":"...","name":"..."}]}.
// The file is read on every call so edits are picked up without a restart.
type File struct {
	path   string
	logger *zap.Logger
}

func NewFile(path string, logger *zap.Logger) *File {
	return &File{path: path, logger: logger}
}

// Contents returns the top level of the library tree.
func (f *File) Contents(ctx context.Context) (*core.Rootlist, error) {
	if f.path == "" {
		return nil, ErrNoPath
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rootlist: %w", err)
	}

	var rootlist core.Rootlist
	if err := json.Unmarshal(data, &rootlist); err != nil {
		return nil, fmt.Errorf("failed to parse rootlist %s: %w", f.path, err)
	}

	f.logger.Debug("Loaded rootlist",
		zap.String("path", f.path),
		zap.Int("items", len(rootlist.Items)))

	return &rootlist, nil
}
