package spuri

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// Scheme is the identifier scheme for every supported reference
	Scheme = "spotify"

	tagUser   = "user"
	tagLocal  = "local"
	tagFolder = "folder"

	// minParts is the smallest "scheme:tag:value" split
	minParts = 3
	// localTrackParts is "spotify:local:artist:album:track:seconds"
	localTrackParts = 6
	// localAlbumParts is "spotify:local:artist:album"
	localAlbumParts = 4
)

// Reference is a parsed selection identifier.
type Reference struct {
	Kind Kind
	// ID is the entity's canonical identifier (base62 id, folder id or username)
	ID string
	// Raw is the identifier as it was given to Classify
	Raw string

	// Inline metadata of local files.
	TrackName  string
	ArtistName string
	AlbumName  string
	Duration   time.Duration

	// Username is set for profiles and user-scoped playlists and folders
	Username string
	// FolderID is set for folders
	FolderID string
	// UserScoped marks the legacy "spotify:user:<u>:playlist:<id>" form
	UserScoped bool
}

// Classify parses an identifier. It never fails: identifiers it cannot
// place degrade to KindUnsupported with ID set to the last segment.
func Classify(identifier string) Reference {
	raw := strings.TrimSpace(identifier)
	parts := strings.Split(raw, ":")
	ref := Reference{Kind: KindUnsupported, Raw: identifier, ID: parts[len(parts)-1]}

	if len(parts) < minParts || parts[0] != Scheme {
		return ref
	}

	tag := parts[1]
	if kind, ok := catalogKinds[tag]; ok {
		if len(parts) != minParts || parts[2] == "" {
			return ref
		}
		ref.Kind = kind
		ref.ID = parts[2]
		return ref
	}

	switch tag {
	case tagUser:
		return classifyUser(ref, parts)
	case tagLocal:
		return classifyLocal(ref, parts)
	default:
		return ref
	}
}

func classifyUser(ref Reference, parts []string) Reference {
	username := decodeSegment(parts[2])
	if username == "" {
		return ref
	}

	switch len(parts) {
	case minParts:
		ref.Kind = KindProfile
		ref.ID = username
		ref.Username = username
	case minParts + 2:
		id := parts[4]
		if id == "" {
			return ref
		}
		switch parts[3] {
		case "playlist":
			ref.Kind = KindPlaylist
			ref.UserScoped = true
		case tagFolder:
			ref.Kind = KindFolder
			ref.FolderID = id
		default:
			return ref
		}
		ref.ID = id
		ref.Username = username
	}

	return ref
}

func classifyLocal(ref Reference, parts []string) Reference {
	switch len(parts) {
	case minParts:
		ref.Kind = KindLocalArtist
		ref.ArtistName = decodeSegment(parts[2])
	case localAlbumParts:
		ref.Kind = KindLocalAlbum
		ref.ArtistName = decodeSegment(parts[2])
		ref.AlbumName = decodeSegment(parts[3])
	case localTrackParts:
		ref.Kind = KindLocalTrack
		ref.ArtistName = decodeSegment(parts[2])
		ref.AlbumName = decodeSegment(parts[3])
		ref.TrackName = decodeSegment(parts[4])
		if secs, err := strconv.Atoi(parts[5]); err == nil && secs > 0 {
			ref.Duration = time.Duration(secs) * time.Second
		}
	default:
		return ref
	}
	ref.ID = ""
	return ref
}

// decodeSegment undoes the form encoding used inside local file identifiers.
func decodeSegment(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

func encodeSegment(s string) string {
	return url.QueryEscape(s)
}

// URI rebuilds the canonical identifier of the reference.
// Unsupported references return Raw.
func (r Reference) URI() string {
	switch r.Kind {
	case KindTrack, KindAlbum, KindArtist, KindShow, KindEpisode:
		return Scheme + ":" + r.Kind.String() + ":" + r.ID
	case KindPlaylist:
		if r.UserScoped {
			return Scheme + ":" + tagUser + ":" + encodeSegment(r.Username) + ":playlist:" + r.ID
		}
		return Scheme + ":playlist:" + r.ID
	case KindProfile:
		return Scheme + ":" + tagUser + ":" + encodeSegment(r.Username)
	case KindFolder:
		return Scheme + ":" + tagUser + ":" + encodeSegment(r.Username) + ":" + tagFolder + ":" + r.FolderID
	case KindLocalArtist:
		return Scheme + ":" + tagLocal + ":" + encodeSegment(r.ArtistName)
	case KindLocalAlbum:
		return Scheme + ":" + tagLocal + ":" + encodeSegment(r.ArtistName) + ":" + encodeSegment(r.AlbumName)
	case KindLocalTrack:
		return Scheme + ":" + tagLocal + ":" + encodeSegment(r.ArtistName) + ":" +
			encodeSegment(r.AlbumName) + ":" + encodeSegment(r.TrackName) + ":" +
			strconv.Itoa(int(r.Duration.Seconds()))
	default:
		return r.Raw
	}
}
