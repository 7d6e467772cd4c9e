package main

import (
	"fmt"
	"io"
	"log/slog"

	goutils "github.com/jkaninda/go-utils"
	"github.com/spf13/cobra"

	"github.com/cropadvisor/cropadvisor/advisor/internal/compute"
	"github.com/cropadvisor/cropadvisor/advisor/internal/config"
	"github.com/cropadvisor/cropadvisor/advisor/internal/croptable"
	"github.com/cropadvisor/cropadvisor/advisor/internal/report"
)

// app holds the persistent flags and everything built from them before a
// subcommand runs.
type app struct {
	configPath string
	tablePath  string
	output     string
	logFormat  string
	logLevel   string

	cfg   *config.Config
	table *croptable.Table
	rec   *compute.Recommender
}

// setup configures logging, loads the config and the crop table.
// Flags win over environment variables, which win over the config file.
func (a *app) setup(cmd *cobra.Command) error {
	if err := setupLogging(cmd.ErrOrStderr(), a.logFormat, a.logLevel); err != nil {
		return err
	}
	if cmd.Name() == "version" {
		return nil
	}

	if a.configPath == "" {
		a.configPath = goutils.Env(envConfig, "")
	}
	if a.configPath == "" {
		a.cfg = config.Default()
	} else {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
		slog.Debug("config loaded", "path", a.configPath)
	}

	if a.output == "" {
		a.output = a.cfg.Output.Format
	}
	if !contains(report.Formats, a.output) {
		return fmt.Errorf("--output %q must be one of %v", a.output, report.Formats)
	}

	if a.tablePath == "" {
		a.tablePath = goutils.Env(envTable, a.cfg.Table.Path)
	}
	var err error
	if a.tablePath == "" {
		a.table, err = croptable.Default()
	} else {
		a.table, err = croptable.Load(a.tablePath)
	}
	if err != nil {
		return err
	}

	a.rec = compute.NewRecommender(a.table)
	return nil
}

// setupLogging installs the default slog logger.
func setupLogging(w io.Writer, format, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	switch format {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "text":
		h = slog.NewTextHandler(w, opts)
	default:
		return fmt.Errorf("--log-format %q must be json or text", format)
	}
	slog.SetDefault(slog.New(h))
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
