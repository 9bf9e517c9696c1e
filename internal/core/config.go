package core

import (
	"time"
)

const (
	// DefaultSeparator sits between song and artist names
	DefaultSeparator = "; "
	// DefaultLanguage is used when no localization matches
	DefaultLanguage = "en"
)

type Config struct {
	Spotify   SpotifyConfig
	Clipboard ClipboardConfig
	Notify    NotifyConfig
	Export    ExportConfig
	Rootlist  RootlistConfig
	Cache     CacheConfig
	Server    ServerConfig
	Log       LogConfig
	App       AppConfig
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	TokenPath    string
	Market       string
}

type ClipboardConfig struct {
	// OSC52 enables the terminal escape fallback when no system clipboard is available
	OSC52 bool
}

type NotifyConfig struct {
	Desktop bool
	Title   string
}

type ExportConfig struct {
	Directory string
	Overwrite bool
}

type RootlistConfig struct {
	Path string
}

type CacheConfig struct {
	// Size of the lookup cache; zero disables caching
	Size int
	TTL  time.Duration
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type AppConfig struct {
	Language  string
	Separator string
}

func DefaultConfig() *Config {
	return &Config{
		Spotify: SpotifyConfig{
			RedirectURL: "http://127.0.0.1:8888/callback",
			TokenPath:   "./spotify_token.json",
		},
		Clipboard: ClipboardConfig{
			OSC52: true,
		},
		Notify: NotifyConfig{
			Desktop: true,
			Title:   "copytext",
		},
		Cache: CacheConfig{
			Size: 512,
			TTL:  10 * time.Minute,
		},
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         8765,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		App: AppConfig{
			Language:  DefaultLanguage,
			Separator: DefaultSeparator,
		},
	}
}
