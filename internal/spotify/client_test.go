package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zmb3/spotify/v2"
	"go.uber.org/zap"

	"copytext/internal/core"
	"copytext/internal/store"
	"copytext/pkg/spuri"
)

var errAPI = errors.New("api error")

type fakeAPI struct {
	track         *spotify.FullTrack
	album         *spotify.FullAlbum
	albumPages    []*spotify.SimpleTrackPage
	artist        *spotify.FullArtist
	playlist      *spotify.FullPlaylist
	playlistPages []*spotify.PlaylistItemPage
	show          *spotify.FullShow
	episode       *spotify.EpisodePage
	user          *spotify.User
	err           error

	requestedIDs []string
	albumCalls   int
	itemCalls    int
}

func (f *fakeAPI) GetTrack(_ context.Context, id spotify.ID, _ ...spotify.RequestOption) (*spotify.FullTrack, error) {
	f.requestedIDs = append(f.requestedIDs, string(id))
	return f.track, f.err
}

func (f *fakeAPI) GetAlbum(_ context.Context, id spotify.ID, _ ...spotify.RequestOption) (*spotify.FullAlbum, error) {
	f.requestedIDs = append(f.requestedIDs, string(id))
	return f.album, f.err
}

func (f *fakeAPI) GetAlbumTracks(_ context.Context, _ spotify.ID,
	_ ...spotify.RequestOption) (*spotify.SimpleTrackPage, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.albumPages[f.albumCalls]
	f.albumCalls++
	return page, nil
}

func (f *fakeAPI) GetArtist(_ context.Context, id spotify.ID) (*spotify.FullArtist, error) {
	f.requestedIDs = append(f.requestedIDs, string(id))
	return f.artist, f.err
}

func (f *fakeAPI) GetPlaylist(_ context.Context, id spotify.ID,
	_ ...spotify.RequestOption) (*spotify.FullPlaylist, error) {
	f.requestedIDs = append(f.requestedIDs, string(id))
	return f.playlist, f.err
}

func (f *fakeAPI) GetPlaylistItems(_ context.Context, _ spotify.ID,
	_ ...spotify.RequestOption) (*spotify.PlaylistItemPage, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.playlistPages[f.itemCalls]
	f.itemCalls++
	return page, nil
}

func (f *fakeAPI) GetShow(_ context.Context, id spotify.ID, _ ...spotify.RequestOption) (*spotify.FullShow, error) {
	f.requestedIDs = append(f.requestedIDs, string(id))
	return f.show, f.err
}

func (f *fakeAPI) GetEpisode(_ context.Context, id string, _ ...spotify.RequestOption) (*spotify.EpisodePage, error) {
	f.requestedIDs = append(f.requestedIDs, id)
	return f.episode, f.err
}

func (f *fakeAPI) GetUsersPublicProfile(_ context.Context, userID spotify.ID) (*spotify.User, error) {
	f.requestedIDs = append(f.requestedIDs, string(userID))
	return f.user, f.err
}

func newTestClient(fake *fakeAPI) *Client {
	c := NewClient(&core.SpotifyConfig{}, zap.NewNop())
	c.api = fake
	return c
}

func testFullTrack(name, uri string, artists ...string) *spotify.FullTrack {
	var simpleArtists []spotify.SimpleArtist
	for _, a := range artists {
		simpleArtists = append(simpleArtists, spotify.SimpleArtist{Name: a})
	}
	return &spotify.FullTrack{
		SimpleTrack: spotify.SimpleTrack{
			Name:     name,
			Artists:  simpleArtists,
			Duration: 215000,
			URI:      spotify.URI(uri),
		},
		Album: spotify.SimpleAlbum{
			Name:   "Album C",
			Images: []spotify.Image{{URL: "https://img/cover", Width: 640, Height: 640}},
		},
	}
}

func TestClient_Get(t *testing.T) {
	fake := &fakeAPI{
		track: testFullTrack("Song A", "spotify:track:T1", "Artist B"),
		album: &spotify.FullAlbum{SimpleAlbum: spotify.SimpleAlbum{
			Name:   "Album A",
			Images: []spotify.Image{{URL: "https://img/a-640", Width: 640}, {URL: "https://img/a-64", Width: 64}},
		}},
		artist: &spotify.FullArtist{
			SimpleArtist: spotify.SimpleArtist{Name: "Artist B"},
			Images:       []spotify.Image{{URL: "https://img/artist", Width: 640}},
		},
		playlist: &spotify.FullPlaylist{SimplePlaylist: spotify.SimplePlaylist{
			Name:   "Playlist P",
			Images: []spotify.Image{{URL: "https://mosaic.scdn.co/640/abc"}},
		}},
		show: &spotify.FullShow{SimpleShow: spotify.SimpleShow{
			Name:   "Show S",
			Images: []spotify.Image{{URL: "https://img/s-64", Width: 64}, {URL: "https://img/s-640", Width: 640}},
		}},
		episode: &spotify.EpisodePage{
			Name:   "Episode E",
			Images: []spotify.Image{{URL: "https://img/e-300", Width: 300}},
		},
		user: &spotify.User{ID: "someone", Images: []spotify.Image{{URL: "https://img/u", Width: 300}}},
	}
	client := newTestClient(fake)

	tests := []struct {
		identifier    string
		expectedName  string
		expectedImage string
		check         func(t *testing.T, e *core.Entity)
	}{
		{"spotify:track:T1", "Song A", "https://img/cover", nil},
		{"spotify:album:A1", "Album A", "https://img/a-640", nil},
		{"spotify:artist:R1", "Artist B", "https://img/artist", func(t *testing.T, e *core.Entity) {
			if e.Header == nil || e.Header.URL != "https://img/artist" {
				t.Errorf("Expected header image, got %+v", e.Header)
			}
		}},
		{"spotify:playlist:P1", "Playlist P", "https://mosaic.scdn.co/640/abc", func(t *testing.T, e *core.Entity) {
			if e.PictureURI != "https://mosaic.scdn.co/640/abc" {
				t.Errorf("Expected picture URI from first image, got %q", e.PictureURI)
			}
		}},
		{"spotify:show:S1", "Show S", "https://img/s-64", func(t *testing.T, e *core.Entity) {
			if e.PictureURI != "https://img/s-640" {
				t.Errorf("Expected largest cover as picture URI, got %q", e.PictureURI)
			}
		}},
		{"spotify:episode:E1", "Episode E", "https://img/e-300", nil},
		{"spotify:user:someone", "someone", "https://img/u", nil},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			entity, err := client.Get(context.Background(), spuri.Classify(tt.identifier))
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if entity.Name != tt.expectedName {
				t.Errorf("Expected name %q, got %q", tt.expectedName, entity.Name)
			}
			if len(entity.Images) == 0 || entity.Images[0].URL != tt.expectedImage {
				t.Errorf("Expected first image %q, got %+v", tt.expectedImage, entity.Images)
			}
			if tt.check != nil {
				tt.check(t, entity)
			}
		})
	}

	expectedIDs := []string{"T1", "A1", "R1", "P1", "S1", "E1", "someone"}
	if fmt.Sprint(fake.requestedIDs) != fmt.Sprint(expectedIDs) {
		t.Errorf("Expected lookups %v, got %v", expectedIDs, fake.requestedIDs)
	}
}

func TestClient_GetErrors(t *testing.T) {
	client := newTestClient(&fakeAPI{err: errAPI})
	if _, err := client.Get(context.Background(), spuri.Classify("spotify:album:A1")); !errors.Is(err, errAPI) {
		t.Errorf("Expected wrapped api error, got %v", err)
	}

	if _, err := client.Get(context.Background(), spuri.Classify("spotify:local:Artist")); !errors.Is(err, core.ErrUnsupportedKind) {
		t.Errorf("Expected ErrUnsupportedKind for local references, got %v", err)
	}

	unauthenticated := NewClient(&core.SpotifyConfig{}, zap.NewNop())
	if _, err := unauthenticated.Get(context.Background(), spuri.Classify("spotify:track:T1")); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Expected ErrNotAuthenticated, got %v", err)
	}
}

func TestClient_GetNotFound(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectMissing bool
	}{
		{"Not found", spotify.Error{Status: http.StatusNotFound, Message: "non existing id"}, true},
		{"Wrapped not found", fmt.Errorf("request: %w", spotify.Error{Status: http.StatusNotFound}), true},
		{"Server error", spotify.Error{Status: http.StatusInternalServerError, Message: "boom"}, false},
		{"Transport error", errAPI, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(&fakeAPI{err: tt.err})

			for _, identifier := range []string{"spotify:track:missing", "spotify:album:missing", "spotify:user:missing"} {
				entity, err := client.Get(context.Background(), spuri.Classify(identifier))
				if tt.expectMissing {
					if err != nil || entity != nil {
						t.Errorf("Get(%s) = %+v, %v, expected nil, nil", identifier, entity, err)
					}
					continue
				}
				if err == nil {
					t.Errorf("Get(%s) expected an error", identifier)
				}
			}
		})
	}
}

func TestClient_NotFoundRememberedByCache(t *testing.T) {
	fake := &fakeAPI{err: spotify.Error{Status: http.StatusNotFound, Message: "non existing id"}}
	cache, err := store.NewLookupCache(newTestClient(fake), 10, 0, zap.NewNop())
	if err != nil {
		t.Fatalf("NewLookupCache() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		entity, err := cache.Get(context.Background(), spuri.Classify("spotify:track:missing"))
		if err != nil || entity != nil {
			t.Fatalf("Get() = %+v, %v, expected nil, nil", entity, err)
		}
	}
	if len(fake.requestedIDs) != 1 {
		t.Errorf("Expected one upstream request for a missing track, got %v", fake.requestedIDs)
	}

	fake.err = spotify.Error{Status: http.StatusInternalServerError, Message: "boom"}
	for i := 0; i < 2; i++ {
		if _, err := cache.Get(context.Background(), spuri.Classify("spotify:album:A1")); err == nil {
			t.Fatal("Expected server errors to surface")
		}
	}
	if len(fake.requestedIDs) != 3 {
		t.Errorf("Expected server errors to be retried, got %v", fake.requestedIDs)
	}
}

func TestClient_TrackArtists(t *testing.T) {
	client := newTestClient(&fakeAPI{track: testFullTrack("Song A", "spotify:track:T1", "Artist B", "Artist C")})

	artists, err := client.TrackArtists(context.Background(), spuri.Classify("spotify:track:T1"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if fmt.Sprint(artists) != "[Artist B Artist C]" {
		t.Errorf("Unexpected artists %v", artists)
	}

	if _, err := client.TrackArtists(context.Background(), spuri.Classify("spotify:album:A1")); !errors.Is(err, core.ErrUnsupportedKind) {
		t.Errorf("Expected ErrUnsupportedKind, got %v", err)
	}
}

func TestClient_ListAlbumTracksPaging(t *testing.T) {
	fullPage := make([]spotify.SimpleTrack, PageLimit)
	for i := range fullPage {
		fullPage[i] = spotify.SimpleTrack{Name: fmt.Sprintf("Track %d", i), Duration: 1000}
	}
	fake := &fakeAPI{
		album: &spotify.FullAlbum{SimpleAlbum: spotify.SimpleAlbum{Name: "Long Album"}},
		albumPages: []*spotify.SimpleTrackPage{
			{Tracks: fullPage},
			{Tracks: []spotify.SimpleTrack{{Name: "Last", Artists: []spotify.SimpleArtist{{Name: "X"}, {Name: "Y"}}}}},
		},
	}
	client := newTestClient(fake)

	rows, err := client.ListTracks(context.Background(), spuri.Classify("spotify:album:A1"), "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(rows) != PageLimit+1 {
		t.Fatalf("Expected %d rows, got %d", PageLimit+1, len(rows))
	}
	if fake.albumCalls != 2 {
		t.Errorf("Expected 2 page requests, got %d", fake.albumCalls)
	}
	last := rows[len(rows)-1]
	if last.Album != "Long Album" || last.Artists != "X, Y" {
		t.Errorf("Unexpected last row %+v", last)
	}
	if rows[0].Duration != time.Second {
		t.Errorf("Expected 1s duration, got %v", rows[0].Duration)
	}
}

func TestClient_ListAlbumTracksWithKnownName(t *testing.T) {
	fake := &fakeAPI{
		album:      &spotify.FullAlbum{SimpleAlbum: spotify.SimpleAlbum{Name: "Fetched Album"}},
		albumPages: []*spotify.SimpleTrackPage{{Tracks: []spotify.SimpleTrack{{Name: "Only"}}}},
	}
	client := newTestClient(fake)

	rows, err := client.ListTracks(context.Background(), spuri.Classify("spotify:album:A1"), "Resolved Album")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(fake.requestedIDs) != 0 {
		t.Errorf("Expected no album request when the name is known, got %v", fake.requestedIDs)
	}
	if len(rows) != 1 || rows[0].Album != "Resolved Album" {
		t.Errorf("Expected the given album name on every row, got %+v", rows)
	}
}

func TestClient_ListPlaylistTracksSkipsEpisodes(t *testing.T) {
	fake := &fakeAPI{
		playlistPages: []*spotify.PlaylistItemPage{{
			Items: []spotify.PlaylistItem{
				{Track: spotify.PlaylistItemTrack{Track: testFullTrack("Song A", "spotify:track:T1", "Artist B")}},
				{Track: spotify.PlaylistItemTrack{}},
				{Track: spotify.PlaylistItemTrack{Track: testFullTrack("Song D", "spotify:track:T2", "Artist E")}},
			},
		}},
	}
	client := newTestClient(fake)

	rows, err := client.ListTracks(context.Background(), spuri.Classify("spotify:playlist:P1"), "Playlist P")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	expected := core.ListedTrack{
		Name:     "Song A",
		Artists:  "Artist B",
		Album:    "Album C",
		Duration: 215 * time.Second,
		URI:      "spotify:track:T1",
	}
	if rows[0] != expected {
		t.Errorf("Expected %+v, got %+v", expected, rows[0])
	}
}

func TestClient_TokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	client := NewClient(&core.SpotifyConfig{TokenPath: path}, zap.NewNop())

	if _, err := client.loadToken(); err == nil {
		t.Fatal("Expected error for missing token file")
	}

	if err := os.WriteFile(path, []byte(`{"token":{"access_token":"abc","token_type":"Bearer","refresh_token":"r"}}`),
		FilePermission); err != nil {
		t.Fatal(err)
	}
	token, err := client.loadToken()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if token.AccessToken != "abc" || token.RefreshToken != "r" {
		t.Errorf("Unexpected token %+v", token)
	}

	token.AccessToken = "def"
	if err := client.saveToken(token); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	reloaded, err := client.loadToken()
	if err != nil || reloaded.AccessToken != "def" {
		t.Errorf("Expected saved token, got %+v (%v)", reloaded, err)
	}
}

func TestClient_AuthenticateRequiresCredentials(t *testing.T) {
	client := NewClient(&core.SpotifyConfig{TokenPath: filepath.Join(t.TempDir(), "missing.json")}, zap.NewNop())

	if err := client.Authenticate(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Expected ErrNotAuthenticated without credentials, got %v", err)
	}
}
