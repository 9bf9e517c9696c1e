// Package export writes track listings to CSV files.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"go.uber.org/zap"

	"copytext/internal/core"
)

const (
	// FilePermission is the permission of written export files
	FilePermission = 0o644
	// DirPermission is the permission of a created export directory
	DirPermission = 0o755
)

var header = []string{"Name", "Artists", "Album", "Duration", "URI"}

// ConfirmFunc asks whether an existing file may be replaced.
type ConfirmFunc func(path string) bool

// FileExporter saves listings into a directory. When the target file
// exists and overwriting is off, confirm decides; a nil confirm or a
// declined prompt cancels the export.
type FileExporter struct {
	dir       string
	overwrite bool
	confirm   ConfirmFunc
	logger    *zap.Logger
}

// NewFileExporter creates an exporter. An empty directory means the user's
// download directory.
func NewFileExporter(config *core.ExportConfig, confirm ConfirmFunc, logger *zap.Logger) *FileExporter {
	dir := config.Directory
	if dir == "" {
		dir = DefaultDirectory()
	}
	return &FileExporter{
		dir:       dir,
		overwrite: config.Overwrite,
		confirm:   confirm,
		logger:    logger,
	}
}

// DefaultDirectory returns the XDG download directory.
func DefaultDirectory() string {
	return xdg.UserDirs.Download
}

// ExportCSV implements core.Exporter.
func (e *FileExporter) ExportCSV(
	ctx context.Context, rows []core.ListedTrack, suggestedName string,
) (*core.ExportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := Encode(rows)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(e.dir, DirPermission); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(e.dir, filepath.Base(suggestedName))
	if _, err := os.Stat(path); err == nil && !e.overwrite {
		if e.confirm == nil || !e.confirm(path) {
			e.logger.Info("Export not confirmed", zap.String("path", path))
			return nil, core.ErrExportCanceled
		}
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to check export file: %w", err)
	}

	if err := os.WriteFile(path, data, FilePermission); err != nil {
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}

	e.logger.Debug("Wrote export file", zap.String("path", path), zap.Int("bytes", len(data)))
	return &core.ExportResult{Path: path, Size: int64(len(data))}, nil
}

// Encode renders rows as CSV with a header line.
func Encode(rows []core.ListedTrack) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{row.Name, row.Artists, row.Album, FormatDuration(row.Duration), row.URI}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode csv: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatDuration renders a track length as m:ss, or h:mm:ss past an hour.
func FormatDuration(d time.Duration) string {
	total := int(d.Round(time.Second) / time.Second)
	hours, minutes, seconds := total/3600, total%3600/60, total%60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
