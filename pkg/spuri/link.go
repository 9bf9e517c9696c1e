package spuri

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

const (
	// minLinkPathParts is "<kind>/<id>"
	minLinkPathParts = 2
)

var (
	linkRegex = regexp.MustCompile(`https?://\S+`)
	uriRegex  = regexp.MustCompile(`spotify:[A-Za-z0-9:%+._~\-]+`)

	spotifyDomains = map[string]bool{
		"open.spotify.com": true,
		"play.spotify.com": true,
		"spotify.com":      true,
	}

	linkKinds = map[string]bool{
		"track":    true,
		"album":    true,
		"artist":   true,
		"playlist": true,
		"show":     true,
		"episode":  true,
	}
)

// Normalize converts an open.spotify.com share link into a URI. Input that
// is already a URI, or not a Spotify link at all, is returned trimmed but
// otherwise unchanged.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, Scheme+":") {
		return input
	}
	if uri, ok := linkToURI(input); ok {
		return uri
	}
	return input
}

// NormalizeAll applies Normalize to every element of a selection.
func NormalizeAll(inputs []string) []string {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, Normalize(in))
	}
	return out
}

// ExtractAll finds every Spotify URI or share link in free text and returns
// them as URIs, in order of appearance.
func ExtractAll(text string) []string {
	type match struct {
		pos int
		uri string
	}

	var matches []match
	for _, loc := range linkRegex.FindAllStringIndex(text, -1) {
		raw := strings.TrimRight(text[loc[0]:loc[1]], ".,!?;)")
		if uri, ok := linkToURI(raw); ok {
			matches = append(matches, match{pos: loc[0], uri: uri})
		}
	}
	for _, loc := range uriRegex.FindAllStringIndex(text, -1) {
		matches = append(matches, match{pos: loc[0], uri: strings.TrimRight(text[loc[0]:loc[1]], ".:")})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	uris := make([]string, 0, len(matches))
	for _, m := range matches {
		uris = append(uris, m.uri)
	}
	return uris
}

func linkToURI(rawURL string) (string, bool) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return "", false
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", false
	}

	if !spotifyDomains[strings.ToLower(u.Hostname())] {
		return "", false
	}

	pathParts := strings.Split(strings.Trim(u.Path, "/"), "/")
	// Localized links look like /intl-de/track/<id>.
	if len(pathParts) > 0 && strings.HasPrefix(pathParts[0], "intl-") {
		pathParts = pathParts[1:]
	}
	if len(pathParts) < minLinkPathParts || pathParts[1] == "" {
		return "", false
	}

	kind, id := pathParts[0], pathParts[1]
	switch {
	case linkKinds[kind]:
		return Scheme + ":" + kind + ":" + id, true
	case kind == tagUser:
		if len(pathParts) >= 4 && pathParts[2] == "playlist" {
			return Scheme + ":" + tagUser + ":" + id + ":playlist:" + pathParts[3], true
		}
		return Scheme + ":" + tagUser + ":" + id, true
	default:
		return "", false
	}
}
