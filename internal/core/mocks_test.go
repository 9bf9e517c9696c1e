package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"copytext/pkg/spuri"
)

// Mock implementations for testing

var errTransport = errors.New("transport error")

type mockLookup struct {
	entities    map[string]*Entity
	artists     map[string][]string
	tracks      map[string][]ListedTrack
	failGet     bool
	failArtists bool
	failList    bool

	mu    sync.Mutex
	calls []string
}

func (m *mockLookup) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockLookup) Get(_ context.Context, ref spuri.Reference) (*Entity, error) {
	m.record("get:" + ref.Raw)
	if m.failGet {
		return nil, errTransport
	}
	return m.entities[ref.Raw], nil
}

func (m *mockLookup) TrackArtists(_ context.Context, ref spuri.Reference) ([]string, error) {
	m.record("artists:" + ref.Raw)
	if m.failArtists {
		return nil, errTransport
	}
	return m.artists[ref.Raw], nil
}

func (m *mockLookup) ListTracks(_ context.Context, ref spuri.Reference, name string) ([]ListedTrack, error) {
	m.record("list:" + ref.Raw + ":" + name)
	if m.failList {
		return nil, errTransport
	}
	return m.tracks[ref.Raw], nil
}

type mockFolders struct {
	rootlist *Rootlist
	err      error
}

func (m *mockFolders) Contents(_ context.Context) (*Rootlist, error) {
	return m.rootlist, m.err
}

type mockClipboard struct {
	copied []string
	err    error
}

func (m *mockClipboard) Copy(_ context.Context, text string) error {
	if m.err != nil {
		return m.err
	}
	m.copied = append(m.copied, text)
	return nil
}

type mockNotifier struct {
	messages []string
}

func (m *mockNotifier) Show(message string) {
	m.messages = append(m.messages, message)
}

type mockExporter struct {
	rows          []ListedTrack
	suggestedName string
	err           error
}

func (m *mockExporter) ExportCSV(_ context.Context, rows []ListedTrack, suggestedName string) (*ExportResult, error) {
	m.rows = rows
	m.suggestedName = suggestedName
	if m.err != nil {
		return nil, m.err
	}
	return &ExportResult{Path: "/tmp/" + suggestedName, Size: 2048}, nil
}

type mockTransliterator struct {
	inputs []string
	output string
	err    error
}

func (m *mockTransliterator) Romanize(_ context.Context, text string) (string, error) {
	m.inputs = append(m.inputs, text)
	return m.output, m.err
}

type mockRecorder struct {
	mu          sync.Mutex
	invocations map[string]int
	lookups     int
}

func (m *mockRecorder) RecordInvocation(command, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.invocations == nil {
		m.invocations = make(map[string]int)
	}
	m.invocations[command+"/"+status]++
}

func (m *mockRecorder) RecordLookup(_, _ string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
}
