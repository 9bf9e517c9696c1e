// Package main provides the copytext CLI application entry point.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"copytext/internal/core"
	"copytext/internal/i18n"
)

const (
	envPrefix = "COPYTEXT"
	logText   = "text"
)

var (
	cfgFile string
	config  *core.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "copytext",
	Short: "copytext - copy Spotify names, song lines and images",
	Long: `copytext resolves Spotify URIs and links to display text (names, "song; artist"
lines, image links or romaji) and copies it to the clipboard, or exports track listings as CSV.`,
	SilenceUsage: true,
	RunE:         runRoot,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := core.DefaultConfig()
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&cfgFile, "config", "", "config file (default is .env)")
	flags.String("log-level", defaults.Log.Level, "log level (debug, info, warn, error)")
	flags.String("log-format", defaults.Log.Format, "log format (json, text)")
	flags.String("spotify-client-id", "", "Spotify client ID")
	flags.String("spotify-client-secret", "", "Spotify client secret")
	flags.String("spotify-redirect-url", defaults.Spotify.RedirectURL, "Spotify OAuth redirect URL")
	flags.String("spotify-token-path", defaults.Spotify.TokenPath, "Spotify user token path")
	flags.String("spotify-market", "", "Spotify market (ISO 3166-1 alpha-2)")
	flags.Bool("clipboard-osc52", defaults.Clipboard.OSC52, "Fall back to the OSC 52 terminal escape")
	flags.Bool("notify-desktop", defaults.Notify.Desktop, "Show desktop notifications")
	flags.String("notify-title", defaults.Notify.Title, "Desktop notification title")
	flags.String("export-dir", "", "CSV export directory (default is the download directory)")
	flags.Bool("export-overwrite", defaults.Export.Overwrite, "Overwrite existing export files without asking")
	flags.String("rootlist-path", "", "Path of the playlist folder rootlist JSON file")
	flags.Int("cache-size", defaults.Cache.Size, "Lookup cache entries (0 disables the cache)")
	flags.Duration("cache-ttl", defaults.Cache.TTL, "Lookup cache entry lifetime")
	flags.String("server-host", defaults.Server.Host, "HTTP server host")
	flags.Int("server-port", defaults.Server.Port, "HTTP server port")
	supportedLangs := strings.Join(i18n.GetSupportedLanguages(), ", ")
	flags.String("language", i18n.DefaultLanguage, fmt.Sprintf("Menu and notification language (%s)", supportedLangs))
	flags.String("separator", defaults.App.Separator, "Separator between song and artist")
	rootCmd.Flags().Bool("generate-env-example", false, "Generate .env.example file from current configuration and exit")

	if err := viper.BindPFlags(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bind flags: %v\n", err)
		os.Exit(1)
	}
	if err := viper.BindPFlag("generate-env-example", rootCmd.Flags().Lookup("generate-env-example")); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bind flags: %v\n", err)
		os.Exit(1)
	}

	addCommands(rootCmd)
}

func initConfig() {
	envFile := ".env"
	if cfgFile != "" {
		envFile = cfgFile
	}

	if err := gotenv.Load(envFile); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		}
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	config = buildConfig()
	logger = buildLogger(config.Log.Level, config.Log.Format)
}

func buildConfig() *core.Config {
	cfg := core.DefaultConfig()

	configureSpotify(cfg)
	configureOutputs(cfg)
	configureServer(cfg)
	configureApp(cfg)

	return cfg
}

func configureSpotify(cfg *core.Config) {
	cfg.Spotify.ClientID = viper.GetString("spotify-client-id")
	cfg.Spotify.ClientSecret = viper.GetString("spotify-client-secret")
	cfg.Spotify.Market = strings.ToUpper(viper.GetString("spotify-market"))
	if redirect := viper.GetString("spotify-redirect-url"); redirect != "" {
		cfg.Spotify.RedirectURL = redirect
	}
	if tokenPath := viper.GetString("spotify-token-path"); tokenPath != "" {
		cfg.Spotify.TokenPath = tokenPath
	}
}

func configureOutputs(cfg *core.Config) {
	cfg.Clipboard.OSC52 = viper.GetBool("clipboard-osc52")
	cfg.Notify.Desktop = viper.GetBool("notify-desktop")
	if title := viper.GetString("notify-title"); title != "" {
		cfg.Notify.Title = title
	}
	cfg.Export.Directory = viper.GetString("export-dir")
	cfg.Export.Overwrite = viper.GetBool("export-overwrite")
	cfg.Rootlist.Path = viper.GetString("rootlist-path")
	cfg.Cache.Size = viper.GetInt("cache-size")
	cfg.Cache.TTL = viper.GetDuration("cache-ttl")
}

func configureServer(cfg *core.Config) {
	if host := viper.GetString("server-host"); host != "" {
		cfg.Server.Host = host
	}
	if port := viper.GetInt("server-port"); port > 0 {
		cfg.Server.Port = port
	}
	cfg.Log.Level = viper.GetString("log-level")
	cfg.Log.Format = viper.GetString("log-format")
}

func configureApp(cfg *core.Config) {
	// Any BCP 47 tag is accepted; it is matched to the closest supported language
	requested := viper.GetString("language")
	if requested == "" {
		requested = i18n.DefaultLanguage
	}
	cfg.App.Language = i18n.Match(requested)
	if cfg.App.Language != requested && !strings.HasPrefix(requested, cfg.App.Language) {
		fmt.Fprintf(os.Stderr, "Warning: Unsupported language '%s', falling back to '%s'. Supported languages: %s\n",
			requested, cfg.App.Language, strings.Join(i18n.GetSupportedLanguages(), ", "))
	}

	if viper.IsSet("separator") {
		cfg.App.Separator = viper.GetString("separator")
	}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func buildLogger(level, format string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if strings.EqualFold(format, logText) {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	builtLogger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to build logger: %v", err))
	}

	return builtLogger
}

func runRoot(cmd *cobra.Command, _ []string) error {
	if viper.GetBool("generate-env-example") {
		return generateEnvExample(cmd)
	}
	return cmd.Help()
}

func generateEnvExample(cmd *cobra.Command) error {
	fmt.Println("Generating .env.example file from current configuration...")

	content := generateEnvExampleContent(cmd)

	if err := os.WriteFile(".env.example", []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write .env.example: %w", err)
	}

	fmt.Println("✅ Successfully generated .env.example file")
	return nil
}

// envSections groups the persistent flags for .env.example.
var envSections = []struct {
	title string
	flags []string
}{
	{"Spotify (https://developer.spotify.com/dashboard)", []string{
		"spotify-client-id", "spotify-client-secret", "spotify-redirect-url", "spotify-token-path", "spotify-market",
	}},
	{"Clipboard and Notifications", []string{"clipboard-osc52", "notify-desktop", "notify-title"}},
	{"Export", []string{"export-dir", "export-overwrite", "rootlist-path"}},
	{"Lookup Cache", []string{"cache-size", "cache-ttl"}},
	{"Application", []string{"language", "separator"}},
	{"HTTP Server", []string{"server-host", "server-port"}},
	{"Logging", []string{"log-level", "log-format"}},
}

func generateEnvExampleContent(cmd *cobra.Command) string {
	var content strings.Builder

	content.WriteString("# =============================================================================\n")
	content.WriteString("# copytext Configuration\n")
	content.WriteString("# =============================================================================\n")
	content.WriteString("#\n")
	content.WriteString("# Copy this file to .env and update with your values\n")
	content.WriteString("# All environment variables have CLI flag equivalents (use --help to see them)\n")
	content.WriteString("#\n")
	fmt.Fprintf(&content, "# Format: %s_<SECTION>_<SETTING>=value\n", envPrefix)
	content.WriteString("# CLI equivalent: --<section>-<setting>\n")
	content.WriteString("#\n\n")

	for _, section := range envSections {
		content.WriteString("# -----------------------------------------------------------------------------\n")
		fmt.Fprintf(&content, "# %s\n", section.title)
		content.WriteString("# -----------------------------------------------------------------------------\n")
		fmt.Fprintf(&content, "# CLI: --%s\n", strings.Join(section.flags, ", --"))
		for _, name := range section.flags {
			f := cmd.Root().PersistentFlags().Lookup(name)
			if f == nil {
				continue
			}
			fmt.Fprintf(&content, "%s=%s  # %s (default: %q)\n", flagToEnvVar(name), f.DefValue, f.Usage, f.DefValue)
		}
		content.WriteString("\n")
	}

	return content.String()
}

func flagToEnvVar(flagName string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}
