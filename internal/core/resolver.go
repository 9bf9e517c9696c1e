package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"copytext/pkg/spuri"
)

const (
	// imageCDN serves images referenced as spotify:image:<id>
	imageCDN = "https://i.scdn.co/image/"
	// mosaicMarker identifies composite images built from several covers
	mosaicMarker = "mosaic:"
	// folderItemType is the rootlist type of playlist folders
	folderItemType = "folder"
)

type fetchFunc func(ctx context.Context, r *Resolver, ref spuri.Reference) (string, error)

// strategy holds the name and image rules of one kind. A nil image rule
// means the kind has no image to copy.
type strategy struct {
	name  fetchFunc
	image fetchFunc
}

var strategies = map[spuri.Kind]strategy{
	spuri.KindTrack:       {name: entityName, image: entityName},
	spuri.KindLocalTrack:  {name: localTrackText},
	spuri.KindLocalArtist: {name: localArtistText},
	spuri.KindLocalAlbum:  {name: localAlbumText},
	spuri.KindAlbum:       {name: entityName, image: albumImage},
	spuri.KindArtist:      {name: entityName, image: artistImage},
	spuri.KindPlaylist:    {name: entityName, image: pictureImage},
	spuri.KindShow:        {name: entityName, image: pictureImage},
	spuri.KindEpisode:     {name: entityName, image: episodeImage},
	spuri.KindProfile:     {name: entityName, image: profileImage},
	spuri.KindFolder:      {name: folderName},
}

// Resolver turns references into display text using the metadata collaborators.
type Resolver struct {
	lookup   MetadataLookup
	folders  FolderLister
	recorder Recorder
	logger   *zap.Logger
}

// NewResolver creates a resolver. folders may be nil when no library tree is available.
func NewResolver(lookup MetadataLookup, folders FolderLister, recorder Recorder, logger *zap.Logger) *Resolver {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Resolver{
		lookup:   lookup,
		folders:  folders,
		recorder: recorder,
		logger:   logger,
	}
}

// ResolveDisplayText routes by reference kind to exactly one rule of the
// dispatch table and returns its result.
func (r *Resolver) ResolveDisplayText(ctx context.Context, ref spuri.Reference, mode Mode) (string, error) {
	s, ok := strategies[ref.Kind]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedKind, ref.Kind)
	}

	fetch := s.name
	if mode == ModeImage {
		fetch = s.image
	}
	if fetch == nil {
		return "", fmt.Errorf("%w: no %s for %s", ErrUnsupportedKind, mode, ref.Kind)
	}

	return fetch(ctx, r, ref)
}

// get performs one metadata lookup, wrapping failures in ErrLookupFailed.
func (r *Resolver) get(ctx context.Context, ref spuri.Reference) (*Entity, error) {
	start := time.Now()
	entity, err := r.lookup.Get(ctx, ref)
	if err != nil {
		r.recorder.RecordLookup(ref.Kind.String(), "error", time.Since(start))
		r.logger.Debug("Metadata lookup failed",
			zap.String("kind", ref.Kind.String()),
			zap.String("id", ref.ID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	r.recorder.RecordLookup(ref.Kind.String(), "ok", time.Since(start))

	if entity == nil {
		return nil, ErrNotFound
	}
	return entity, nil
}

// trackArtists looks up the artist names of a track and joins them.
func (r *Resolver) trackArtists(ctx context.Context, ref spuri.Reference) (string, error) {
	start := time.Now()
	artists, err := r.lookup.TrackArtists(ctx, ref)
	if err != nil {
		r.recorder.RecordLookup("track-artists", "error", time.Since(start))
		return "", fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	r.recorder.RecordLookup("track-artists", "ok", time.Since(start))
	return strings.Join(artists, artistListSeparator), nil
}

func entityName(ctx context.Context, r *Resolver, ref spuri.Reference) (string, error) {
	entity, err := r.get(ctx, ref)
	if err != nil {
		return "", err
	}
	return entity.Name, nil
}

func localTrackText(_ context.Context, _ *Resolver, ref spuri.Reference) (string, error) {
	return JoinNonEmpty([]string{ref.TrackName, ref.ArtistName, ref.AlbumName}, localTrackSeparator), nil
}

func localArtistText(_ context.Context, _ *Resolver, ref spuri.Reference) (string, error) {
	return ref.ArtistName, nil
}

func localAlbumText(_ context.Context, _ *Resolver, ref spuri.Reference) (string, error) {
	return ref.AlbumName, nil
}

func albumImage(ctx context.Context, r *Resolver, ref spuri.Reference) (string, error) {
	entity, err := r.get(ctx, ref)
	if err != nil {
		return "", err
	}
	if len(entity.Images) == 0 || entity.Images[0].URL == "" {
		return "", ErrNoImage
	}
	return entity.Images[0].URL, nil
}

func artistImage(ctx context.Context, r *Resolver, ref spuri.Reference) (string, error) {
	entity, err := r.get(ctx, ref)
	if err != nil {
		return "", err
	}
	if entity.Header == nil || entity.Header.URL == "" {
		return "", ErrNoImage
	}
	return entity.Header.URL, nil
}

func pictureImage(ctx context.Context, r *Resolver, ref spuri.Reference) (string, error) {
	entity, err := r.get(ctx, ref)
	if err != nil {
		return "", err
	}
	return ResolveImageURI(entity.PictureURI)
}

func episodeImage(ctx context.Context, r *Resolver, ref spuri.Reference) (string, error) {
	entity, err := r.get(ctx, ref)
	if err != nil {
		return "", err
	}
	return ResolveImageURI(widestImage(entity.Images).URL)
}

func profileImage(ctx context.Context, r *Resolver, ref spuri.Reference) (string, error) {
	entity, err := r.get(ctx, ref)
	if err != nil {
		return "", err
	}
	return widestImage(entity.Images).URL, nil
}

func folderName(ctx context.Context, r *Resolver, ref spuri.Reference) (string, error) {
	if r.folders == nil {
		return "", fmt.Errorf("%w: no library tree configured", ErrLookupFailed)
	}

	rootlist, err := r.folders.Contents(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	for _, item := range rootlist.Items {
		if item.Type == folderItemType && strings.Contains(item.URI, ref.FolderID) {
			return item.Name, nil
		}
	}
	return "", ErrNotFound
}

// ResolveImageURI converts an image reference into a link. Mosaic
// references cannot be resolved, spotify:image:<id> references map onto
// the image CDN and plain URLs pass through.
func ResolveImageURI(ref string) (string, error) {
	if strings.Contains(ref, mosaicMarker) {
		return "", ErrUnsupportedImageReference
	}
	if ref == "" {
		return "", ErrNotFound
	}
	if strings.HasPrefix(ref, spuri.Scheme) {
		segments := strings.Split(ref, ":")
		id := segments[len(segments)-1]
		if id == "" {
			return "", ErrNotFound
		}
		return imageCDN + id, nil
	}
	return ref, nil
}

// widestImage returns the image with the largest width, or a zero Image.
func widestImage(images []Image) Image {
	var widest Image
	for _, img := range images {
		if img.Width > widest.Width || widest.URL == "" && img.URL != "" && img.Width == widest.Width {
			widest = img
		}
	}
	return widest
}
