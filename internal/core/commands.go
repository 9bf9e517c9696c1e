package core

import (
	"context"

	"copytext/pkg/spuri"
)

const (
	// GroupMore is the submenu that holds every command except copy-text
	GroupMore = "more"
	// GroupLabelKey is the localization key of the GroupMore submenu
	GroupLabelKey = "menu.copy_more"
)

// Command identifiers.
const (
	CommandCopyText       = "copy-text"
	CommandCopySongArtist = "copy-song-artist"
	CommandCopyArtistSong = "copy-artist-song"
	CommandCopyImage      = "copy-image"
	CommandExportList     = "export-list"
	CommandCopyRomaji     = "copy-romaji"
)

// outcome is what a command produced. An empty outcome copies and shows nothing.
type outcome struct {
	copy   string
	notice string
}

type runFunc func(ctx context.Context, d *Dispatcher, ref spuri.Reference) (outcome, error)

// Command is a static context-menu entry.
type Command struct {
	ID       string
	LabelKey string
	Icon     string
	// Group is "" for the top level or GroupMore
	Group string

	kinds map[spuri.Kind]bool
	run   runFunc
}

// Supports reports whether the command handles references of kind k.
func (c Command) Supports(k spuri.Kind) bool {
	return c.kinds[k]
}

// Kinds returns the supported kinds in enum order.
func (c Command) Kinds() []spuri.Kind {
	kinds := make([]spuri.Kind, 0, len(c.kinds))
	for _, k := range spuri.AllKinds() {
		if c.kinds[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func kindSet(kinds ...spuri.Kind) map[spuri.Kind]bool {
	set := make(map[spuri.Kind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}

var commandTable = []Command{
	{
		ID:       CommandCopyText,
		LabelKey: "menu.copy_text",
		Icon:     "copy",
		kinds:    kindSet(spuri.AllKinds()...),
		run:      runCopyText,
	},
	{
		ID:       CommandCopySongArtist,
		LabelKey: "menu.song_and_artist",
		Icon:     "artist",
		Group:    GroupMore,
		kinds:    kindSet(spuri.KindTrack),
		run:      runSongArtist(OrderSongFirst),
	},
	{
		ID:       CommandCopyArtistSong,
		LabelKey: "menu.artist_and_song",
		Icon:     "artist",
		Group:    GroupMore,
		kinds:    kindSet(spuri.KindTrack),
		run:      runSongArtist(OrderArtistFirst),
	},
	{
		ID:       CommandCopyImage,
		LabelKey: "menu.copy_image",
		Icon:     "copy",
		Group:    GroupMore,
		kinds: kindSet(spuri.KindAlbum, spuri.KindArtist, spuri.KindPlaylist,
			spuri.KindShow, spuri.KindEpisode, spuri.KindProfile),
		run: runCopyImage,
	},
	{
		ID:       CommandExportList,
		LabelKey: "menu.export_list",
		Icon:     "download",
		Group:    GroupMore,
		kinds:    kindSet(spuri.KindAlbum, spuri.KindPlaylist),
		run:      runExportList,
	},
	{
		ID:       CommandCopyRomaji,
		LabelKey: "menu.copy_romaji",
		Icon:     "copy",
		Group:    GroupMore,
		kinds:    kindSet(spuri.KindTrack, spuri.KindAlbum, spuri.KindArtist, spuri.KindPlaylist),
		run:      runCopyRomaji,
	},
}

// Commands returns the command table in menu order.
func Commands() []Command {
	commands := make([]Command, len(commandTable))
	copy(commands, commandTable)
	return commands
}

// LookupCommand finds a command by id.
func LookupCommand(id string) (Command, bool) {
	for _, cmd := range commandTable {
		if cmd.ID == id {
			return cmd, true
		}
	}
	return Command{}, false
}

// IsApplicable reports whether cmd can run on the selection. Only single
// selections of a supported kind qualify.
func IsApplicable(cmd Command, selection []string) bool {
	if len(selection) != 1 {
		return false
	}
	return cmd.Supports(spuri.Classify(selection[0]).Kind)
}
