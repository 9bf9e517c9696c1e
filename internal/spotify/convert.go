package spotify

import (
	"strings"
	"time"

	"github.com/zmb3/spotify/v2"

	"copytext/internal/core"
)

const artistSeparator = ", "

func convertImages(images []spotify.Image) []core.Image {
	if len(images) == 0 {
		return nil
	}
	converted := make([]core.Image, 0, len(images))
	for _, img := range images {
		converted = append(converted, core.Image{
			URL:    img.URL,
			Width:  int(img.Width),
			Height: int(img.Height),
		})
	}
	return converted
}

// largestImage returns the URL of the widest image, or "" when there is none.
func largestImage(images []core.Image) string {
	var largest core.Image
	for _, img := range images {
		if largest.URL == "" || img.Width > largest.Width {
			largest = img
		}
	}
	return largest.URL
}

func artistNames(artists []spotify.SimpleArtist) []string {
	names := make([]string, 0, len(artists))
	for _, artist := range artists {
		names = append(names, artist.Name)
	}
	return names
}

func joinArtists(artists []spotify.SimpleArtist) string {
	return strings.Join(artistNames(artists), artistSeparator)
}

func trackEntity(track *spotify.FullTrack) *core.Entity {
	return &core.Entity{
		Name:   track.Name,
		Images: convertImages(track.Album.Images),
	}
}

func albumEntity(album *spotify.FullAlbum) *core.Entity {
	return &core.Entity{
		Name:   album.Name,
		Images: convertImages(album.Images),
	}
}

// artistEntity uses the first artist image as the header image.
func artistEntity(artist *spotify.FullArtist) *core.Entity {
	entity := &core.Entity{
		Name:   artist.Name,
		Images: convertImages(artist.Images),
	}
	if len(entity.Images) > 0 {
		header := entity.Images[0]
		entity.Header = &header
	}
	return entity
}

func playlistEntity(playlist *spotify.FullPlaylist) *core.Entity {
	entity := &core.Entity{
		Name:   playlist.Name,
		Images: convertImages(playlist.Images),
	}
	if len(entity.Images) > 0 {
		entity.PictureURI = entity.Images[0].URL
	}
	return entity
}

func showEntity(show *spotify.FullShow) *core.Entity {
	entity := &core.Entity{
		Name:   show.Name,
		Images: convertImages(show.Images),
	}
	entity.PictureURI = largestImage(entity.Images)
	return entity
}

func episodeEntity(episode *spotify.EpisodePage) *core.Entity {
	return &core.Entity{
		Name:   episode.Name,
		Images: convertImages(episode.Images),
	}
}

func profileEntity(user *spotify.User) *core.Entity {
	name := user.DisplayName
	if name == "" {
		name = string(user.ID)
	}
	return &core.Entity{
		Name:   name,
		Images: convertImages(user.Images),
	}
}

func simpleTrackRow(track *spotify.SimpleTrack, album string) core.ListedTrack {
	return core.ListedTrack{
		Name:     track.Name,
		Artists:  joinArtists(track.Artists),
		Album:    album,
		Duration: time.Duration(track.Duration) * time.Millisecond,
		URI:      string(track.URI),
	}
}

func fullTrackRow(track *spotify.FullTrack) core.ListedTrack {
	return simpleTrackRow(&track.SimpleTrack, track.Album.Name)
}
