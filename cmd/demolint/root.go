package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sirkon/demolint"
	"github.com/sirkon/demolint/internal/config"
	"github.com/sirkon/demolint/internal/dispatch"
	"github.com/sirkon/demolint/internal/logging"
	"github.com/sirkon/demolint/internal/render"
)

// errFindings is returned when the analysis reported diagnostics or faults.
var errFindings = errors.New("findings reported")

var (
	configPath   string
	workers      int
	outputFormat string
	debugMode    bool
	noColor      bool
)

var rootCmd = &cobra.Command{
	Use:           "demolint",
	Short:         "demolint - marker interface and static disposable checks",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "configuration file, .demolint.{yaml,yml,toml} is looked up when omitted")
	flags.IntVarP(&workers, "workers", "w", 0, "number of concurrent rule callbacks")
	flags.StringVarP(&outputFormat, "format", "f", "text", "output format: text or json")
	flags.BoolVar(&debugMode, "debug", false, "enable debug logging")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(checkCmd, unitsCmd, rulesCmd)
}

// session is what every command needs to run the analysis.
type session struct {
	logger *zap.Logger
	engine *dispatch.Engine
	format render.Format
}

func newSession() (*session, error) {
	var format render.Format
	if err := format.UnmarshalText([]byte(outputFormat)); err != nil {
		return nil, err
	}

	logger, err := logging.New(debugMode)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(logger)
	if err != nil {
		return nil, err
	}
	if workers > 0 {
		cfg.Workers = workers
	}

	engine, err := demolint.NewEngine(cfg, dispatch.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return &session{
		logger: logger,
		engine: engine,
		format: format,
	}, nil
}

func loadConfig(logger *zap.Logger) (config.Config, error) {
	path := configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return config.Config{}, fmt.Errorf("get working directory: %w", err)
		}
		path, err = config.Find(wd)
		if err != nil {
			return config.Config{}, err
		}
	}
	if path == "" {
		logger.Debug("no configuration file found, using defaults")
		return config.Default(), nil
	}

	logger.Debug("loading configuration", zap.String("path", path))
	return config.Load(path)
}

// finish renders the result and turns findings into errFindings.
func (s *session) finish(w io.Writer, res *dispatch.Result) error {
	defer func() { _ = s.logger.Sync() }()

	if err := render.Result(w, res, s.format, !noColor && !color.NoColor); err != nil {
		return err
	}
	if len(res.Diagnostics) > 0 || len(res.Faults) > 0 {
		return errFindings
	}

	return nil
}
