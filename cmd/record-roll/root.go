package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/frippertronics/record-roll/internal/artwork"
	"github.com/frippertronics/record-roll/internal/catalog"
	"github.com/frippertronics/record-roll/internal/config"
	"github.com/frippertronics/record-roll/internal/discogs"
	"github.com/frippertronics/record-roll/internal/http"
	ioutils "github.com/frippertronics/record-roll/internal/io"
	"github.com/frippertronics/record-roll/internal/logger"
	"github.com/frippertronics/record-roll/internal/roll"
	"github.com/frippertronics/record-roll/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	configPath string
	seed       uint64
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "record-roll",
		Short: "Show the cover of a random record from your collection.",
		Long: `record-roll picks a random entry from a Discogs collection export (CSV),
looks up its release on the Discogs API and shows the primary cover image
in the terminal. Left-click the cover to roll again; press q to quit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "path to the config file (.ini or .toml)")
	flags.Uint64Var(&opts.seed, "seed", 0, "seed for the record picker (random when unset)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "show verbose progress")

	cmd.AddCommand(newPickCmd(opts), newInitCmd(opts))
	return cmd
}

// app is everything a roll needs, built from the config file.
type app struct {
	settings *config.Settings
	log      *zap.Logger
	store    *catalog.Store
	manager  *roll.Manager
	saver    *artwork.Saver
}

// newApp loads config, sets up logging and wires the roll pipeline.
// console, when set, also receives log output.
func newApp(cmd *cobra.Command, opts *rootOptions, console io.Writer, onProgress func(roll.ProgressEvent)) (*app, error) {
	settings, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{
		Level:      settings.LogLevel,
		OutputPath: settings.LogFile,
		Console:    console,
	})
	if err != nil {
		return nil, err
	}

	store, err := catalog.NewStore(settings.CSVFile, catalog.Options{
		HasHeader: settings.HasHeader,
		Logger:    log,
		OnSkip:    skipNotice(onProgress),
	})
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	log.Info("catalog loaded",
		zap.String("path", settings.CSVFile),
		zap.Int("records", store.Snapshot().Len()),
		zap.Int("skipped", store.Snapshot().Skipped))

	var rng *rand.Rand
	if cmd.Flags().Changed("seed") {
		rng = catalog.NewRand(opts.seed)
	}

	httpClient := http.NewClient(settings.Timeout())
	images := ioutils.NewImageService()
	manager := roll.NewManager(
		catalog.NewPicker(store, rng),
		discogs.NewClient(httpClient, settings.APIBaseURL, settings.Token),
		artwork.NewFetcher(httpClient, images),
		roll.Options{MaxRerolls: settings.MaxRerolls},
		log,
		onProgress,
	)

	return &app{
		settings: settings,
		log:      log,
		store:    store,
		manager:  manager,
		saver:    artwork.NewSaver(settings.ToCoverConfig()),
	}, nil
}

// skipNotice reports skipped catalog rows as progress events. The store
// keeps it, so rows skipped on reload are reported too.
func skipNotice(onProgress func(roll.ProgressEvent)) func(int, error) {
	if onProgress == nil {
		return nil
	}
	return func(line int, _ error) {
		onProgress(roll.ProgressEvent{Message: fmt.Sprintf("Skipping invalid line! (line %d)", line), Level: roll.LevelWarning})
	}
}

// watch reloads the catalog on change until ctx is done.
func (a *app) watch(ctx context.Context, onReload func(*catalog.Catalog)) {
	if !a.settings.WatchCatalog {
		return
	}
	go func() {
		if err := catalog.Watch(ctx, a.store, a.log, onReload); err != nil {
			a.log.Warn("catalog watching disabled", zap.Error(err))
		}
	}()
}

// newNotices returns a buffered notice channel for the viewer and a
// non-blocking sender. Events are dropped while the buffer is full.
func newNotices(size int) (<-chan roll.ProgressEvent, func(roll.ProgressEvent)) {
	notices := make(chan roll.ProgressEvent, size)
	return notices, func(event roll.ProgressEvent) {
		select {
		case notices <- event:
		default:
		}
	}
}

func runViewer(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()

	notices, notify := newNotices(16)
	a, err := newApp(cmd, opts, nil, notify)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	a.watch(ctx, func(cat *catalog.Catalog) {
		notify(roll.ProgressEvent{Message: fmt.Sprintf("Catalog reloaded (%d records)", cat.Len()), Level: roll.LevelInfo})
	})

	a.log.Info("viewer started")
	err = tui.Run(tui.Options{
		Context: ctx,
		Roller:  a.manager,
		Saver:   a.saver,
		Notices: notices,
		Logger:  a.log,
		Verbose: opts.verbose,
	})
	a.log.Info("viewer closed", zap.Error(err))
	return err
}
