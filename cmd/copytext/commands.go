package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"copytext/internal/clipboard"
	"copytext/internal/core"
	"copytext/internal/export"
	httpserver "copytext/internal/http"
	"copytext/internal/i18n"
	"copytext/internal/notify"
	"copytext/internal/rootlist"
	"copytext/internal/spotify"
	"copytext/internal/store"
	"copytext/pkg/romaji"
	"copytext/pkg/spuri"
)

var errNotApplicable = errors.New("command does not apply to the selection")

func addCommands(root *cobra.Command) {
	english := i18n.NewLocalizer(i18n.DefaultLanguage)

	root.AddCommand(&cobra.Command{
		Use:   "menu <uri|link>...",
		Short: "List the commands applicable to a selection",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runMenu,
	})

	root.AddCommand(&cobra.Command{
		Use:   "run <command> <uri|link>...",
		Short: "Run a command on a selection",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke(cmd, args[0], args[1:])
		},
	})

	for _, command := range core.Commands() {
		id := command.ID
		root.AddCommand(&cobra.Command{
			Use:   id + " <uri|link>",
			Short: english.T(command.LabelKey),
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return invoke(cmd, id, args)
			},
		})
	}

	root.AddCommand(&cobra.Command{
		Use:   "extract [text]",
		Short: "Print every Spotify URI found in the text or standard input",
		RunE:  runExtract,
	})

	root.AddCommand(&cobra.Command{
		Use:   "settings",
		Short: "Show the current copy settings",
		Args:  cobra.NoArgs,
		RunE:  runSettings,
	})

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the menu and invocation API over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	})

	root.AddCommand(&cobra.Command{
		Use:   "login",
		Short: "Authorize with a Spotify account to read private playlists",
		Args:  cobra.NoArgs,
		RunE:  runLogin,
	})
}

type services struct {
	spotify    *spotify.Client
	dispatcher *core.Dispatcher
}

func initializeServices(ctx context.Context, in io.Reader, out io.Writer, recorder core.Recorder) (*services, error) {
	spotifyClient := spotify.NewClient(&config.Spotify, logger.Named("spotify"))
	if err := spotifyClient.Authenticate(ctx); err != nil {
		return nil, fmt.Errorf("failed to authenticate with Spotify: %w", err)
	}

	var lookup core.MetadataLookup = spotifyClient
	if config.Cache.Size > 0 {
		cache, err := store.NewLookupCache(spotifyClient, config.Cache.Size, config.Cache.TTL, logger.Named("cache"))
		if err != nil {
			return nil, err
		}
		lookup = cache
	}

	localizer := i18n.NewLocalizer(config.App.Language)
	exporter := export.NewFileExporter(&config.Export, confirmOverwrite(in, out, localizer), logger.Named("export"))

	dispatcher := core.NewDispatcher(
		config,
		lookup,
		rootlist.NewFile(config.Rootlist.Path, logger.Named("rootlist")),
		clipboard.New(&config.Clipboard, logger.Named("clipboard")),
		notify.New(&config.Notify, logger.Named("notify")),
		exporter,
		romaji.NewRomanizer(),
		recorder,
		logger.Named("dispatcher"),
	)

	return &services{
		spotify:    spotifyClient,
		dispatcher: dispatcher,
	}, nil
}

// confirmOverwrite asks on out and reads the answer from in.
func confirmOverwrite(in io.Reader, out io.Writer, localizer *i18n.Localizer) export.ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(path string) bool {
		fmt.Fprint(out, localizer.T("prompt.overwrite", path))
		answer, err := reader.ReadString('\n')
		if err != nil && answer == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}

func runMenu(cmd *cobra.Command, args []string) error {
	dispatcher := core.NewDispatcher(config, nil, nil, nil, nil, nil, nil, nil, logger.Named("dispatcher"))
	selection := spuri.NormalizeAll(args)

	out := cmd.OutOrStdout()
	entries := dispatcher.Menu(selection)
	if len(entries) == 0 {
		fmt.Fprintln(out, "No commands apply to this selection")
		return nil
	}
	printMenu(out, entries)
	return nil
}

func printMenu(out io.Writer, entries []core.MenuEntry) {
	group := ""
	for _, entry := range entries {
		if entry.Group != group {
			group = entry.Group
			fmt.Fprintf(out, "%s\n", entry.GroupLabel)
		}
		indent := ""
		if entry.Group != "" {
			indent = "  "
		}
		fmt.Fprintf(out, "%s%-20s %s\n", indent, entry.ID, entry.Label)
	}
}

func invoke(cmd *cobra.Command, commandID string, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	defer func() { _ = logger.Sync() }()

	svcs, err := initializeServices(ctx, cmd.InOrStdin(), cmd.ErrOrStderr(), nil)
	if err != nil {
		return err
	}

	result := svcs.dispatcher.Invoke(ctx, commandID, spuri.NormalizeAll(args))
	return printResult(cmd.OutOrStdout(), result)
}

func printResult(out io.Writer, result core.Result) error {
	switch result.Status {
	case core.StatusError:
		return result.Err
	case core.StatusSkipped:
		return fmt.Errorf("%w: %s", errNotApplicable, result.Command)
	case core.StatusOK:
		if result.Text != "" {
			fmt.Fprintln(out, result.Text)
		} else {
			fmt.Fprintln(out, result.Notice)
		}
	}
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		text = string(data)
	}

	for _, uri := range spuri.ExtractAll(text) {
		fmt.Fprintln(cmd.OutOrStdout(), uri)
	}
	return nil
}

func runSettings(cmd *cobra.Command, _ []string) error {
	localizer := i18n.NewLocalizer(config.App.Language)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, localizer.T("settings.name"))
	fmt.Fprintf(out, "  %s: %q\n", localizer.T("settings.separator"), config.App.Separator)
	return nil
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("Starting copytext server",
		zap.String("language", config.App.Language),
		zap.Bool("desktop_notifications", config.Notify.Desktop))

	metrics := httpserver.NewMetrics()
	// Export prompts have no terminal behind an HTTP request; they decline.
	svcs, err := initializeServices(ctx, strings.NewReader(""), io.Discard, metrics)
	if err != nil {
		return err
	}

	httpServer := httpserver.NewServer(&config.Server, svcs.dispatcher, metrics, logger.Named("http"))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpServer.Start(gCtx)
	})

	logger.Info("copytext started successfully",
		zap.String("http_addr", fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)))

	if err := g.Wait(); err != nil {
		logger.Error("copytext stopped with error", zap.Error(err))
		return err
	}

	logger.Info("copytext stopped gracefully")
	return nil
}

func runLogin(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if config.Spotify.ClientID == "" || config.Spotify.ClientSecret == "" {
		return fmt.Errorf("spotify client ID and secret are required")
	}

	client := spotify.NewClient(&config.Spotify, logger.Named("spotify"))
	if err := client.Login(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Token saved to %s\n", config.Spotify.TokenPath)
	return nil
}
