package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"copytext/pkg/spuri"
)

var errTransliterationUnavailable = errors.New("transliteration unavailable")

func runCopyText(ctx context.Context, d *Dispatcher, ref spuri.Reference) (outcome, error) {
	text, err := d.resolver.ResolveDisplayText(ctx, ref, ModeName)
	if err != nil {
		return outcome{}, err
	}
	return d.copied(text), nil
}

func runCopyImage(ctx context.Context, d *Dispatcher, ref spuri.Reference) (outcome, error) {
	url, err := d.resolver.ResolveDisplayText(ctx, ref, ModeImage)
	if err != nil {
		return outcome{}, err
	}
	return d.copied(url), nil
}

// runSongArtist looks up the track name and its artists in parallel. Both
// lookups run to completion; if either fails nothing is copied.
func runSongArtist(order Order) runFunc {
	return func(ctx context.Context, d *Dispatcher, ref spuri.Reference) (outcome, error) {
		var name, artists string
		var g errgroup.Group

		g.Go(func() error {
			var err error
			name, err = d.resolver.ResolveDisplayText(ctx, ref, ModeName)
			return err
		})
		g.Go(func() error {
			var err error
			artists, err = d.resolver.trackArtists(ctx, ref)
			return err
		})

		if err := g.Wait(); err != nil {
			d.logger.Debug("Song and artist lookup incomplete",
				zap.String("uri", ref.Raw),
				zap.Error(err))
			return outcome{}, nil
		}

		return d.copied(FormatSongAndArtist(name, artists, d.config.App.Separator, order)), nil
	}
}

func runCopyRomaji(ctx context.Context, d *Dispatcher, ref spuri.Reference) (outcome, error) {
	name, err := d.resolver.ResolveDisplayText(ctx, ref, ModeName)
	if err != nil {
		return outcome{}, err
	}

	if !ContainsJapanese(name) {
		return d.copied(name), nil
	}
	if d.transliterator == nil {
		return outcome{}, errTransliterationUnavailable
	}

	romanized, err := d.transliterator.Romanize(ctx, name)
	if err != nil {
		return outcome{}, fmt.Errorf("failed to romanize %q: %w", name, err)
	}
	return d.copied(TitleWords(romanized)), nil
}

func runExportList(ctx context.Context, d *Dispatcher, ref spuri.Reference) (outcome, error) {
	if ref.Kind == spuri.KindPlaylist && ref.UserScoped {
		return outcome{}, ErrUnsupportedPlaylistExport
	}
	if d.exporter == nil {
		return outcome{}, fmt.Errorf("%w: no exporter configured", ErrUnsupportedKind)
	}

	name, err := d.resolver.ResolveDisplayText(ctx, ref, ModeName)
	if err != nil {
		return outcome{}, err
	}

	rows, err := d.lookup.ListTracks(ctx, ref, name)
	if err != nil {
		return outcome{}, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	filename := SanitizeFilename(name)
	if filename == "" {
		filename = ref.ID
	}

	res, err := d.exporter.ExportCSV(ctx, rows, filename+".csv")
	if err != nil {
		return outcome{}, err
	}

	d.logger.Info("Exported track listing",
		zap.String("path", res.Path),
		zap.Int("tracks", len(rows)),
		zap.Int64("bytes", res.Size))

	size := uint64(0)
	if res.Size > 0 {
		size = uint64(res.Size)
	}
	return outcome{
		notice: d.localizer.T("notify.exported", len(rows), res.Path, humanize.IBytes(size)),
	}, nil
}
