package core

import (
	"context"
	"time"

	"copytext/pkg/spuri"
)

// Mode selects which field of an entity ResolveDisplayText returns.
type Mode int

const (
	// ModeName resolves the display name
	ModeName Mode = iota
	// ModeImage resolves an image link
	ModeImage
)

func (m Mode) String() string {
	if m == ModeImage {
		return "image"
	}
	return "name"
}

// Order picks which operand FormatSongAndArtist puts first.
type Order int

const (
	// OrderSongFirst renders "<song><sep><artists>"
	OrderSongFirst Order = iota
	// OrderArtistFirst renders "<artists><sep><song>"
	OrderArtistFirst
)

type Image struct {
	URL    string
	Width  int
	Height int
}

// Entity is the subset of a metadata response the dispatcher reads.
type Entity struct {
	Name   string
	Images []Image
	// PictureURI is a playlist picture or show cover reference. It may be a
	// plain URL, a spotify:image:<id> reference or a mosaic reference.
	PictureURI string
	// Header is the artist header image, nil when the artist has none
	Header *Image
}

// ListedTrack is one row of an exported track listing.
type ListedTrack struct {
	Name     string
	Artists  string
	Album    string
	Duration time.Duration
	URI      string
}

type RootlistItem struct {
	Type string `json:"type"`
	URI  string `json:"uri"`
	Name string `json:"name"`
}

type Rootlist struct {
	Items []RootlistItem `json:"items"`
}

// ExportResult describes a written export file.
type ExportResult struct {
	Path string
	Size int64
}

// MetadataLookup is the read-only metadata query service.
type MetadataLookup interface {
	Get(ctx context.Context, ref spuri.Reference) (*Entity, error)
	TrackArtists(ctx context.Context, ref spuri.Reference) ([]string, error)
	// ListTracks lists an album or playlist. name is its display name when
	// the caller already resolved it, or empty.
	ListTracks(ctx context.Context, ref spuri.Reference, name string) ([]ListedTrack, error)
}

// FolderLister lists the top level of the user's library tree.
type FolderLister interface {
	Contents(ctx context.Context) (*Rootlist, error)
}

type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

// Notifier shows a short confirmation. Delivery is best effort.
type Notifier interface {
	Show(message string)
}

// Exporter writes a CSV listing. A user cancel returns ErrExportCanceled.
type Exporter interface {
	ExportCSV(ctx context.Context, rows []ListedTrack, suggestedName string) (*ExportResult, error)
}

type Transliterator interface {
	Romanize(ctx context.Context, text string) (string, error)
}

// Recorder receives invocation and lookup measurements.
type Recorder interface {
	RecordInvocation(command, status string)
	RecordLookup(kind, status string, duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordInvocation(_, _ string)                {}
func (nopRecorder) RecordLookup(_, _ string, _ time.Duration) {}
