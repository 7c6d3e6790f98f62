package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"dndml/internal/config"
	"dndml/internal/diagfmt"
	"dndml/internal/driver"
	"dndml/internal/parser"
)

// settings is the merged view of dndml.toml and command-line flags.
type settings struct {
	config.Config
	Quiet    bool
	Timings  bool
	PathMode diagfmt.PathMode
}

var current = settings{Config: config.Default()}

func setupRun(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	current = s

	logger, err := newLogger(cmd.ErrOrStderr(), s.LogLevel)
	if err != nil {
		return err
	}
	parser.SetLogger(logger)
	driver.SetLogger(logger)

	if s.Color == "off" {
		color.NoColor = true
	} else if s.Color == "on" {
		color.NoColor = false
	}
	if s.Config.Path != "" {
		logger.WithField("path", s.Config.Path).Debug("loaded config")
	}
	return startProfiling(cmd)
}

// loadSettings reads the config file and lets explicitly set flags win.
func loadSettings(flags *pflag.FlagSet) (settings, error) {
	cfgPath, err := flags.GetString("config")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		var wd string
		wd, err = os.Getwd()
		if err == nil {
			cfg, err = config.Discover(wd)
		}
	}
	if err != nil {
		return settings{}, err
	}

	override(flags, "color", func(f *pflag.Flag) { cfg.Color = strings.ToLower(f.Value.String()) })
	override(flags, "log-level", func(f *pflag.Flag) { cfg.LogLevel = f.Value.String() })
	override(flags, "max-diagnostics", func(*pflag.Flag) { cfg.MaxDiagnostics, _ = flags.GetInt("max-diagnostics") })
	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}

	s := settings{Config: cfg}
	s.Quiet, _ = flags.GetBool("quiet")
	s.Timings, _ = flags.GetBool("timings")
	pathMode, _ := flags.GetString("path-mode")
	if s.PathMode, err = diagfmt.ParsePathMode(strings.ToLower(pathMode)); err != nil {
		return settings{}, err
	}
	return s, nil
}

// override calls set when the flag was given on the command line.
func override(flags *pflag.FlagSet, name string, set func(*pflag.Flag)) {
	if f := flags.Lookup(name); f != nil && f.Changed {
		set(f)
	}
}

func newLogger(out io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger, nil
}

// useColor resolves the color mode for a stream.
func (s settings) useColor(f *os.File) bool {
	switch s.Color {
	case "on":
		return true
	case "off":
		return false
	default:
		return f != nil && isTerminal(f)
	}
}

func (s settings) driverOptions() driver.Options {
	return driver.Options{
		MaxDiagnostics: s.MaxDiagnostics,
		Timings:        s.Timings,
		Jobs:           s.Jobs,
	}
}

func (s settings) prettyOpts(w io.Writer) diagfmt.PrettyOpts {
	f, _ := w.(*os.File)
	return diagfmt.PrettyOpts{
		Color:     s.useColor(f),
		Context:   2,
		PathMode:  s.PathMode,
		ShowNotes: true,
		ShowFixes: true,
	}
}

// stringFlag returns the flag value, or fallback when the flag was not set.
func stringFlag(cmd *cobra.Command, name, fallback string) (string, error) {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	if !cmd.Flags().Changed(name) && fallback != "" {
		return fallback, nil
	}
	return strings.ToLower(v), nil
}
