package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/example/tryon/internal/config"
	"github.com/example/tryon/internal/notify"
	"github.com/example/tryon/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	exportAlerts bool
	copyAlerts   bool
	themeName    string
	catalogSrc   string
	locale       string
	logLevel     string
	activeTheme  *theme.Theme
	stdout       io.Writer
	stderr       io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) out() io.Writer {
	if r.stdout == nil {
		return os.Stdout
	}
	return r.stdout
}

func (r *root) errOut() io.Writer {
	if r.stderr == nil {
		return os.Stderr
	}
	return r.stderr
}

func newRoot() *root {
	setupLogging("info")
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load config")
		cfg = config.New()
	}
	env, err := config.LoadEnv()
	if err != nil {
		log.Warn().Err(err).Msg("failed to read environment")
	}
	cfg.ApplyEnv(env)
	level := "info"
	if env != nil {
		level = env.LogLevel
	}

	r := &root{
		fs:       flag.NewFlagSet("tryon", flag.ExitOnError),
		program:  "tryon",
		notifier: notify.New(notify.LoadPreferences()),
		config:   cfg,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default. Empty flags fall through.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark)")
	r.fs.StringVar(&r.catalogSrc, "catalog", "", "catalog JSON file or product API base URL")
	r.fs.StringVar(&r.locale, "locale", "", "interface language (en, ru)")
	r.fs.StringVar(&r.logLevel, "log-level", level, "log level: debug, info, warn, error")
	r.fs.Usage = usageFunc(r)
	return r
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	setupLogging(r.logLevel)
	if r.notifier != nil {
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	if r.catalogSrc != "" {
		r.config.Catalog = r.catalogSrc
	}
	if r.locale != "" {
		r.config.Locale = r.locale
	}
	if err := r.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "render":
		cmd, err = parseRenderCmd(subArgs, r)
	case "script":
		cmd, err = parseScriptCmd(subArgs, r)
	case "catalog":
		cmd, err = parseCatalogCmd(subArgs, r)
	case "sizes":
		cmd, err = parseSizesCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// resolveTheme picks the theme by CLI flag, then environment, then config.
func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = r.config.Theme
	}
	if t, ok := r.config.Themes[name]; ok {
		return t
	}
	t, src, err := theme.NewLoader(filepath.Join(config.Dir(), "themes")).Find(name)
	if err != nil {
		if name != "" && name != "default" {
			log.Warn().Err(err).Str("theme", name).Msg("failed to load theme, using default")
		}
		return theme.Default()
	}
	log.Debug().Str("theme", name).Str("source", string(src)).Msg("theme loaded")
	return t
}

func (r *root) currentTheme() *theme.Theme {
	if r.activeTheme == nil {
		return theme.Default()
	}
	return r.activeTheme
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		log.Error().Err(err).Msg(r.program)
		os.Exit(1)
	}
}

func (r *root) notifyExport(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Export(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}
