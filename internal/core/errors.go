package core

import "errors"

var (
	// ErrLookupFailed wraps any metadata service or transport failure
	ErrLookupFailed = errors.New("lookup failed")
	// ErrNotFound is returned when an expected field is absent from a successful response
	ErrNotFound = errors.New("not found")
	// ErrNoImage is returned when the entity has no image to copy
	ErrNoImage = errors.New("no images")
	// ErrUnsupportedImageReference is returned for mosaic images that have no single URL
	ErrUnsupportedImageReference = errors.New("cannot copy mosaic image")
	// ErrClipboardUnavailable is returned when no clipboard sink accepted the text
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
	// ErrUnsupportedPlaylistExport is returned for playlist forms that cannot be exported
	ErrUnsupportedPlaylistExport = errors.New("this playlist cannot be exported")
	// ErrUnsupportedKind is returned when a rule has no arm for the reference kind
	ErrUnsupportedKind = errors.New("unsupported selection")
	// ErrExportCanceled is returned by exporters when the user declines to save
	ErrExportCanceled = errors.New("export canceled")
	// ErrUnknownCommand is returned when a command id is not registered
	ErrUnknownCommand = errors.New("unknown command")
)
