package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/cptspacemanspiff/xbmpwall/internal/config"
	"github.com/cptspacemanspiff/xbmpwall/internal/logging"
	"github.com/cptspacemanspiff/xbmpwall/internal/notify"
	"github.com/cptspacemanspiff/xbmpwall/internal/script"
	"github.com/cptspacemanspiff/xbmpwall/internal/selection"
	"github.com/cptspacemanspiff/xbmpwall/internal/version"
	"github.com/cptspacemanspiff/xbmpwall/internal/wallpaper"
	"github.com/cptspacemanspiff/xbmpwall/internal/xbm"
)

const appID = "io.github.xbmpwall"

type options struct {
	configPath string
	initConfig bool
	verbose    bool
	logTopics  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "xbmpwall:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "xbmpwall [flags] FILE.xbm...",
		Short: "Pick an X11 bitmap and colors for the root window",
		Long: `XBmpWall shows the given X11 bitmaps and a color palette.

Clicking a bitmap sets it as the root window background with xsetroot.
Clicking a color assigns it to the active role; the space bar switches
between foreground and background. On exit the last applied command is
written to ~/.xbmpwall.sh so it can be replayed at login.`,
		Version:       version.Version,
		Args:          bitmapArgs(opts),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), opts, args)
		},
	}
	cmd.SetVersionTemplate(version.AppName + " {{.Version}}\n")

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to config.toml (default "+config.DefaultPath()+")")
	flags.BoolVar(&opts.initConfig, "init-config", false, "write the effective configuration to --config and exit")
	flags.BoolVar(&opts.verbose, "verbose", false, "enable all debug log topics")
	flags.StringVar(&opts.logTopics, "log", "", "comma-separated debug log topics: script,exec,ui,notify,all")

	return cmd
}

// bitmapArgs requires at least one bitmap unless only a config is written.
func bitmapArgs(opts *options) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if opts.initConfig {
			return nil
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	}
}

// deps holds everything the window needs once startup has succeeded.
type deps struct {
	cfg     *config.Config
	store   *script.Store
	session *selection.Session
	bitmaps []loadedBitmap
	log     *slog.Logger
	out     io.Writer
}

type loadedBitmap struct {
	path   string
	bitmap *xbm.Bitmap
}

func run(out io.Writer, opts *options, args []string) error {
	logger := logging.New(os.Stderr, logging.ParseTopics(opts.logTopics, opts.verbose))
	logger.Debug("starting", "version", version.String())

	d, closer, err := setup(out, logger, opts, args)
	if err != nil {
		return err
	}
	if d == nil {
		return nil
	}
	defer closer()

	a := app.NewWithID(appID)
	u := newUI(a, d)
	u.window.ShowAndRun()
	return u.saveErr
}

// setup resolves configuration, restores the persisted selection and decodes
// the bitmaps. A nil *deps with a nil error means there is nothing to show.
func setup(out io.Writer, logger *slog.Logger, opts *options, args []string) (*deps, func(), error) {
	scriptPath, err := script.DefaultPath()
	if err != nil {
		return nil, nil, err
	}

	cfg, err := loadConfig(opts.configPath, opts.initConfig)
	if err != nil {
		return nil, nil, err
	}
	if opts.initConfig {
		path := opts.configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if err := config.Save(path, cfg); err != nil {
			return nil, nil, fmt.Errorf("write config: %w", err)
		}
		fmt.Fprintln(out, path)
		return nil, nil, nil
	}
	if cfg.Script.Path != "" {
		scriptPath = cfg.Script.Path
	}

	bitmaps, err := loadBitmaps(logger.With("topic", logging.TopicUI), args)
	if err != nil {
		return nil, nil, err
	}

	scriptLog := logger.With("topic", logging.TopicScript)
	store := script.NewStore(scriptPath, cfg.Script.Shell)
	sel := selection.New()
	rec, err := store.Load()
	switch {
	case errors.Is(err, script.ErrUnreadable), errors.Is(err, script.ErrMalformed):
		logger.Error("ignoring saved selection", "path", store.Path(), "err", err)
	case err != nil:
		return nil, nil, err
	case rec != nil:
		scriptLog.Debug("restored selection", "path", store.Path(), "bitmap", rec.Bitmap)
	}
	sel.Restore(rec)

	notifier, closer := newNotifier(cfg, logger.With("topic", logging.TopicNotify))
	execLog := logger.With("topic", logging.TopicExec)
	session := selection.NewSession(sel, wallpaper.New(cfg.Wallpaper.Tool, execLog), notifier, execLog)

	return &deps{
		cfg:     cfg,
		store:   store,
		session: session,
		bitmaps: bitmaps,
		log:     logger.With("topic", logging.TopicUI),
		out:     out,
	}, closer, nil
}

// loadConfig reads the config file. An explicit path must exist unless it is
// about to be created with --init-config.
func loadConfig(path string, creating bool) (*config.Config, error) {
	if path == "" {
		cfg, err := config.LoadOrDefault(config.DefaultPath())
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", config.DefaultPath(), err)
		}
		return cfg, nil
	}
	load := config.Load
	if creating {
		load = config.LoadOrDefault
	}
	cfg, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func loadBitmaps(logger *slog.Logger, paths []string) ([]loadedBitmap, error) {
	var out []loadedBitmap
	for _, path := range paths {
		bm, err := xbm.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading the bitmap file: %w", err)
		}
		if bm.Empty() {
			logger.Debug("skipping empty bitmap", "path", path)
			continue
		}
		out = append(out, loadedBitmap{path: path, bitmap: bm})
	}
	return out, nil
}

func newNotifier(cfg *config.Config, logger *slog.Logger) (notify.Notifier, func()) {
	if !cfg.Notify.Enabled {
		return notify.Discard{}, func() {}
	}
	d, err := notify.NewDesktop(version.AppName)
	if err != nil {
		logger.Debug("desktop notifications unavailable", "err", err)
		return notify.Discard{}, func() {}
	}
	return d, func() { _ = d.Close() }
}

// persist writes the last applied command, if any, and echoes it to out.
func persist(store *script.Store, session *selection.Session, out io.Writer) error {
	command, _ := session.Command()
	wrote, err := store.Save(command)
	if err != nil {
		return err
	}
	if wrote {
		fmt.Fprintln(out, command)
	}
	return nil
}
