// Package spotify provides Spotify Web API metadata lookups for selection references.
package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"copytext/internal/core"
	"copytext/pkg/spuri"
)

const (
	// FilePermission is the permission for token files
	FilePermission = 0600
	// PageLimit is the page size used when listing album and playlist tracks
	PageLimit = 50
	// authState is the OAuth state parameter of the interactive login
	authState = "copytext-auth-state"
)

// ErrNotAuthenticated is returned by lookups before Authenticate succeeded.
var ErrNotAuthenticated = errors.New("client not authenticated")

// api is the subset of *spotify.Client the lookups use.
type api interface {
	GetTrack(ctx context.Context, id spotify.ID, opts ...spotify.RequestOption) (*spotify.FullTrack, error)
	GetAlbum(ctx context.Context, id spotify.ID, opts ...spotify.RequestOption) (*spotify.FullAlbum, error)
	GetAlbumTracks(ctx context.Context, id spotify.ID, opts ...spotify.RequestOption) (*spotify.SimpleTrackPage, error)
	GetArtist(ctx context.Context, id spotify.ID) (*spotify.FullArtist, error)
	GetPlaylist(ctx context.Context, playlistID spotify.ID, opts ...spotify.RequestOption) (*spotify.FullPlaylist, error)
	GetPlaylistItems(ctx context.Context, playlistID spotify.ID,
		opts ...spotify.RequestOption) (*spotify.PlaylistItemPage, error)
	GetShow(ctx context.Context, id spotify.ID, opts ...spotify.RequestOption) (*spotify.FullShow, error)
	GetEpisode(ctx context.Context, id string, opts ...spotify.RequestOption) (*spotify.EpisodePage, error)
	GetUsersPublicProfile(ctx context.Context, userID spotify.ID) (*spotify.User, error)
}

type Client struct {
	config *core.SpotifyConfig
	logger *zap.Logger
	auth   *spotifyauth.Authenticator
	api    api
}

type TokenData struct {
	Token *oauth2.Token `json:"token"`
}

func NewClient(config *core.SpotifyConfig, logger *zap.Logger) *Client {
	auth := spotifyauth.New(
		spotifyauth.WithRedirectURL(config.RedirectURL),
		spotifyauth.WithScopes(
			spotifyauth.ScopePlaylistReadPrivate,
			spotifyauth.ScopePlaylistReadCollaborative,
			spotifyauth.ScopeUserReadPrivate,
		),
		spotifyauth.WithClientID(config.ClientID),
		spotifyauth.WithClientSecret(config.ClientSecret),
	)

	return &Client{
		config: config,
		logger: logger,
		auth:   auth,
	}
}

// Authenticate uses the saved user token when there is one and falls back
// to the client-credentials grant, which can read every public entity.
func (c *Client) Authenticate(ctx context.Context) error {
	if token, err := c.loadToken(); err == nil {
		c.api = spotify.New(c.auth.Client(ctx, token))
		c.logger.Info("Using saved user token", zap.String("path", c.config.TokenPath))
		return nil
	}

	if c.config.ClientID == "" || c.config.ClientSecret == "" {
		return fmt.Errorf("%w: spotify client id and secret are required", ErrNotAuthenticated)
	}

	credentials := &clientcredentials.Config{
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	if _, err := credentials.Token(ctx); err != nil {
		return fmt.Errorf("failed to obtain client credentials token: %w", err)
	}

	c.api = spotify.New(credentials.Client(ctx))
	c.logger.Info("Authenticated with client credentials")
	return nil
}

// Login runs the interactive authorization code flow and saves the token,
// which gives access to private playlists.
func (c *Client) Login(ctx context.Context, in io.Reader, out io.Writer) error {
	authURL := c.auth.AuthURL(authState)

	fmt.Fprintf(out, "Please visit the following URL to authorize the application:\n%s\n", authURL)
	fmt.Fprint(out, "Enter the authorization code: ")

	var code string
	if _, err := fmt.Fscanln(in, &code); err != nil {
		return fmt.Errorf("failed to read authorization code: %w", err)
	}

	token, err := c.auth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange code for token: %w", err)
	}

	if err := c.saveToken(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	client := spotify.New(c.auth.Client(ctx, token))
	c.api = client

	user, err := client.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	c.logger.Info("OAuth flow completed successfully", zap.String("user", user.DisplayName))
	return nil
}

func (c *Client) options() []spotify.RequestOption {
	if c.config.Market == "" {
		return nil
	}
	return []spotify.RequestOption{spotify.Market(c.config.Market)}
}

// Get looks up the entity a reference points at. It returns a nil entity
// and no error when the Web API answers 404.
func (c *Client) Get(ctx context.Context, ref spuri.Reference) (*core.Entity, error) {
	if c.api == nil {
		return nil, ErrNotAuthenticated
	}

	entity, err := c.fetch(ctx, ref)
	if isNotFound(err) {
		c.logger.Debug("Entity not found", zap.String("uri", ref.URI()), zap.Error(err))
		return nil, nil
	}
	return entity, err
}

func isNotFound(err error) bool {
	var apiErr spotify.Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

func (c *Client) fetch(ctx context.Context, ref spuri.Reference) (*core.Entity, error) {
	id := spotify.ID(ref.ID)
	switch ref.Kind {
	case spuri.KindTrack:
		track, err := c.api.GetTrack(ctx, id, c.options()...)
		if err != nil {
			return nil, fmt.Errorf("failed to get track %s: %w", ref.ID, err)
		}
		return trackEntity(track), nil

	case spuri.KindAlbum:
		album, err := c.api.GetAlbum(ctx, id, c.options()...)
		if err != nil {
			return nil, fmt.Errorf("failed to get album %s: %w", ref.ID, err)
		}
		return albumEntity(album), nil

	case spuri.KindArtist:
		artist, err := c.api.GetArtist(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get artist %s: %w", ref.ID, err)
		}
		return artistEntity(artist), nil

	case spuri.KindPlaylist:
		playlist, err := c.api.GetPlaylist(ctx, id, c.options()...)
		if err != nil {
			return nil, fmt.Errorf("failed to get playlist %s: %w", ref.ID, err)
		}
		return playlistEntity(playlist), nil

	case spuri.KindShow:
		show, err := c.api.GetShow(ctx, id, c.options()...)
		if err != nil {
			return nil, fmt.Errorf("failed to get show %s: %w", ref.ID, err)
		}
		return showEntity(show), nil

	case spuri.KindEpisode:
		episode, err := c.api.GetEpisode(ctx, ref.ID, c.options()...)
		if err != nil {
			return nil, fmt.Errorf("failed to get episode %s: %w", ref.ID, err)
		}
		return episodeEntity(episode), nil

	case spuri.KindProfile:
		user, err := c.api.GetUsersPublicProfile(ctx, spotify.ID(ref.Username))
		if err != nil {
			return nil, fmt.Errorf("failed to get profile %s: %w", ref.Username, err)
		}
		return profileEntity(user), nil

	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedKind, ref.Kind)
	}
}

// TrackArtists returns the artist names of a track in credit order.
func (c *Client) TrackArtists(ctx context.Context, ref spuri.Reference) ([]string, error) {
	if c.api == nil {
		return nil, ErrNotAuthenticated
	}
	if ref.Kind != spuri.KindTrack {
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedKind, ref.Kind)
	}

	track, err := c.api.GetTrack(ctx, spotify.ID(ref.ID), c.options()...)
	if err != nil {
		return nil, fmt.Errorf("failed to get track %s: %w", ref.ID, err)
	}
	return artistNames(track.Artists), nil
}

// ListTracks returns every track of an album or playlist, following pages.
// Album rows carry name as their album column; the album is fetched only
// when name is empty.
func (c *Client) ListTracks(ctx context.Context, ref spuri.Reference, name string) ([]core.ListedTrack, error) {
	if c.api == nil {
		return nil, ErrNotAuthenticated
	}

	switch ref.Kind {
	case spuri.KindAlbum:
		return c.listAlbumTracks(ctx, spotify.ID(ref.ID), name)
	case spuri.KindPlaylist:
		return c.listPlaylistTracks(ctx, spotify.ID(ref.ID))
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedKind, ref.Kind)
	}
}

func (c *Client) listAlbumTracks(ctx context.Context, albumID spotify.ID, albumName string) ([]core.ListedTrack, error) {
	if albumName == "" {
		album, err := c.api.GetAlbum(ctx, albumID, c.options()...)
		if err != nil {
			return nil, fmt.Errorf("failed to get album %s: %w", albumID, err)
		}
		albumName = album.Name
	}

	var rows []core.ListedTrack
	offset := 0

	for {
		opts := append(c.options(), spotify.Limit(PageLimit), spotify.Offset(offset))
		page, err := c.api.GetAlbumTracks(ctx, albumID, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to get album tracks: %w", err)
		}

		for i := range page.Tracks {
			rows = append(rows, simpleTrackRow(&page.Tracks[i], albumName))
		}

		if len(page.Tracks) < PageLimit {
			break
		}

		offset += PageLimit
	}

	c.logger.Info("Retrieved album tracks",
		zap.String("albumID", string(albumID)),
		zap.Int("count", len(rows)))

	return rows, nil
}

func (c *Client) listPlaylistTracks(ctx context.Context, playlistID spotify.ID) ([]core.ListedTrack, error) {
	var rows []core.ListedTrack
	offset := 0

	for {
		opts := append(c.options(), spotify.Limit(PageLimit), spotify.Offset(offset))
		items, err := c.api.GetPlaylistItems(ctx, playlistID, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to get playlist items: %w", err)
		}

		for i := range items.Items {
			// Only process tracks (not episodes or null items)
			if track := items.Items[i].Track.Track; track != nil {
				rows = append(rows, fullTrackRow(track))
			}
		}

		if len(items.Items) < PageLimit {
			break
		}

		offset += PageLimit
	}

	c.logger.Info("Retrieved playlist tracks",
		zap.String("playlistID", string(playlistID)),
		zap.Int("count", len(rows)))

	return rows, nil
}

func (c *Client) loadToken() (*oauth2.Token, error) {
	file, err := os.Open(c.config.TokenPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	var tokenData TokenData
	if err := json.Unmarshal(data, &tokenData); err != nil {
		return nil, err
	}
	if tokenData.Token == nil {
		return nil, fmt.Errorf("no token in %s", c.config.TokenPath)
	}

	return tokenData.Token, nil
}

func (c *Client) saveToken(token *oauth2.Token) error {
	tokenData := TokenData{Token: token}

	data, err := json.MarshalIndent(tokenData, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.config.TokenPath, data, FilePermission)
}
