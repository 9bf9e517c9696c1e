package core

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// localTrackSeparator joins the inline fields of a local file
	localTrackSeparator = "; "
	// artistListSeparator joins the artists of one track
	artistListSeparator = ", "
)

var (
	filenameReplacer = strings.NewReplacer(
		"/", "-", `\`, "-", "?", "-", "%", "-", "*", "-",
		":", "-", "|", "-", `"`, "-", "<", "-", ">", "-",
	)
	wordStartRegex = regexp.MustCompile(`(^|\s)\S`)
)

// FormatSongAndArtist concatenates a song name and an artist list.
func FormatSongAndArtist(name, artists, separator string, order Order) string {
	if order == OrderArtistFirst {
		return artists + separator + name
	}
	return name + separator + artists
}

// SanitizeFilename replaces characters that are invalid in file names with
// "-" and trims surrounding whitespace.
func SanitizeFilename(s string) string {
	return strings.TrimSpace(filenameReplacer.Replace(s))
}

// JoinNonEmpty joins the non-empty parts with sep.
func JoinNonEmpty(parts []string, sep string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// ContainsJapanese reports whether s has at least one hiragana, katakana or kanji rune.
func ContainsJapanese(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}

// TitleWords upper-cases the first character of every whitespace-delimited word.
func TitleWords(s string) string {
	return wordStartRegex.ReplaceAllStringFunc(s, strings.ToUpper)
}
