// Package spuri parses Spotify selection identifiers into typed references
// and normalizes share links into URIs.
package spuri

// Kind is the closed set of selectable entity categories.
type Kind int

const (
	// KindUnsupported is returned for any identifier that is not one of the kinds below
	KindUnsupported Kind = iota
	// KindTrack is a catalog track
	KindTrack
	// KindLocalTrack is an offline file without a catalog id
	KindLocalTrack
	// KindLocalArtist is an artist entry of the local files library
	KindLocalArtist
	// KindLocalAlbum is an album entry of the local files library
	KindLocalAlbum
	// KindAlbum is a catalog album
	KindAlbum
	// KindArtist is a catalog artist
	KindArtist
	// KindPlaylist is a playlist, either plain or user-scoped
	KindPlaylist
	// KindShow is a podcast show
	KindShow
	// KindEpisode is a podcast episode or audiobook chapter
	KindEpisode
	// KindProfile is a user profile
	KindProfile
	// KindFolder is a playlist folder of the user's library
	KindFolder
)

var kindNames = map[Kind]string{
	KindUnsupported: "unsupported",
	KindTrack:       "track",
	KindLocalTrack:  "local",
	KindLocalArtist: "local-artist",
	KindLocalAlbum:  "local-album",
	KindAlbum:       "album",
	KindArtist:      "artist",
	KindPlaylist:    "playlist",
	KindShow:        "show",
	KindEpisode:     "episode",
	KindProfile:     "profile",
	KindFolder:      "folder",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnsupported]
}

// IsLocal reports whether references of this kind carry their metadata inline.
func (k Kind) IsLocal() bool {
	return k == KindLocalTrack || k == KindLocalArtist || k == KindLocalAlbum
}

// AllKinds returns every supported kind, excluding KindUnsupported.
func AllKinds() []Kind {
	return []Kind{
		KindTrack, KindLocalTrack, KindLocalArtist, KindLocalAlbum, KindAlbum,
		KindArtist, KindPlaylist, KindShow, KindEpisode, KindProfile, KindFolder,
	}
}

// catalogKinds maps the URI tag of simple "spotify:<tag>:<id>" identifiers.
var catalogKinds = map[string]Kind{
	"track":    KindTrack,
	"album":    KindAlbum,
	"artist":   KindArtist,
	"playlist": KindPlaylist,
	"show":     KindShow,
	"episode":  KindEpisode,
}
