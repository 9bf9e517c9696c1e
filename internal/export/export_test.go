package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"copytext/internal/core"
)

var testRows = []core.ListedTrack{
	{Name: "Song A", Artists: "Artist B, Artist C", Album: "Album \"D\"", Duration: 215 * time.Second, URI: "spotify:track:T1"},
	{Name: "Song E", Artists: "Artist F", Album: "Album G", Duration: 59 * time.Second, URI: "spotify:track:T2"},
}

func TestEncode(t *testing.T) {
	data, err := Encode(testRows)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := "Name,Artists,Album,Duration,URI\n" +
		"Song A,\"Artist B, Artist C\",\"Album \"\"D\"\"\",3:35,spotify:track:T1\n" +
		"Song E,Artist F,Album G,0:59,spotify:track:T2\n"
	if string(data) != expected {
		t.Errorf("Unexpected CSV:\n%s\nexpected:\n%s", data, expected)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{215 * time.Second, "3:35"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
		{1500 * time.Millisecond, "0:02"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.input); got != tt.expected {
			t.Errorf("FormatDuration(%v) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestFileExporter_Writes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	exporter := NewFileExporter(&core.ExportConfig{Directory: dir}, nil, zap.NewNop())

	result, err := exporter.ExportCSV(context.Background(), testRows, "Road-Trip.csv")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Path != filepath.Join(dir, "Road-Trip.csv") {
		t.Errorf("Unexpected path %s", result.Path)
	}

	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	if int64(len(data)) != result.Size {
		t.Errorf("Expected size %d, got %d", len(data), result.Size)
	}
	if !strings.HasPrefix(string(data), "Name,Artists,Album,Duration,URI\n") {
		t.Errorf("Missing header in %q", data)
	}
}

func TestFileExporter_ExistingFile(t *testing.T) {
	tests := []struct {
		name        string
		overwrite   bool
		confirm     ConfirmFunc
		expectedErr error
		replaced    bool
	}{
		{"No prompt cancels", false, nil, core.ErrExportCanceled, false},
		{"Declined prompt cancels", false, func(string) bool { return false }, core.ErrExportCanceled, false},
		{"Accepted prompt replaces", false, func(string) bool { return true }, nil, true},
		{"Overwrite skips prompt", true, func(string) bool { t.Error("unexpected prompt"); return false }, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "list.csv")
			if err := os.WriteFile(path, []byte("old"), FilePermission); err != nil {
				t.Fatal(err)
			}

			exporter := NewFileExporter(&core.ExportConfig{Directory: dir, Overwrite: tt.overwrite}, tt.confirm, zap.NewNop())
			_, err := exporter.ExportCSV(context.Background(), testRows, "list.csv")
			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("Expected %v, got %v", tt.expectedErr, err)
			}

			data, _ := os.ReadFile(path)
			if replaced := string(data) != "old"; replaced != tt.replaced {
				t.Errorf("Expected replaced=%v, got %v", tt.replaced, replaced)
			}
		})
	}
}

func TestFileExporter_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	exporter := NewFileExporter(&core.ExportConfig{Directory: dir}, nil, zap.NewNop())

	result, err := exporter.ExportCSV(context.Background(), nil, "../escape.csv")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if filepath.Dir(result.Path) != dir {
		t.Errorf("Expected file inside %s, got %s", dir, result.Path)
	}
}

func TestNewFileExporter_DefaultDirectory(t *testing.T) {
	exporter := NewFileExporter(&core.ExportConfig{}, nil, zap.NewNop())
	if exporter.dir != DefaultDirectory() {
		t.Errorf("Expected default directory %s, got %s", DefaultDirectory(), exporter.dir)
	}
}
