package main

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/cropadvisor/cropadvisor/advisor/internal/alerts"
	"github.com/cropadvisor/cropadvisor/advisor/internal/config"
	"github.com/cropadvisor/cropadvisor/advisor/internal/exporter"
	"github.com/cropadvisor/cropadvisor/advisor/internal/report"
	"github.com/cropadvisor/cropadvisor/advisor/internal/sensor"
	"github.com/cropadvisor/cropadvisor/pkg/types"
)

// evaluator runs the full pipeline for long-running modes: recommend, print,
// export metrics, evaluate alert rules. It is safe for concurrent use.
type evaluator struct {
	app    *app
	out    io.Writer
	exp    *exporter.Exporter
	alerts *alerts.Engine

	mu       sync.Mutex
	textfile string
}

func newEvaluator(a *app, out io.Writer) (*evaluator, error) {
	eng, err := alerts.New(a.cfg.Alerts.Rules)
	if err != nil {
		return nil, err
	}
	return &evaluator{
		app:      a,
		out:      out,
		exp:      exporter.New(),
		alerts:   eng,
		textfile: a.cfg.Output.Textfile,
	}, nil
}

// evaluate scores c and publishes the result.
func (e *evaluator) evaluate(c types.Conditions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	res, ranking, err := e.app.rec.RecommendRanked(c)
	if err != nil {
		return err
	}

	for _, a := range e.alerts.Evaluate(res) {
		if a.State == alerts.StateFiring {
			e.exp.ObserveAlert(a.RuleName, a.Severity)
		}
	}

	env := report.NewEnvelope(res, time.Now())
	env.Alerts = e.alerts.Active()
	best, _ := res.Best()
	slog.Info("evaluation complete",
		"id", env.ID,
		"crop", res.RecommendedCrop,
		"confidence", best.Confidence,
		"rating", env.Rating,
		"alerts", len(env.Alerts),
	)

	if err := report.Write(e.out, e.app.output, env); err != nil {
		return err
	}

	e.exp.Observe(res, ranking)

	if e.textfile != "" {
		if err := e.exp.WriteTextfile(e.textfile); err != nil {
			return err
		}
	}
	return nil
}

// evaluateFile reads conditions from path and evaluates them.
func (e *evaluator) evaluateFile(path string, opts sensor.Options) error {
	c, err := sensor.Read(path, opts)
	if err != nil {
		return fmt.Errorf("read conditions: %w", err)
	}
	return e.evaluate(c)
}

// reload applies the parts of a new config that can change at runtime.
// Table, sensor and schedule changes need a restart.
func (e *evaluator) reload(cfg *config.Config) {
	if err := e.alerts.SetRules(cfg.Alerts.Rules); err != nil {
		slog.Error("config: alert rules rejected, keeping previous rules", "err", err)
		return
	}
	e.mu.Lock()
	e.textfile = cfg.Output.Textfile
	e.mu.Unlock()
	slog.Info("config hot-reloaded", "alert_rules", len(cfg.Alerts.Rules), "textfile", cfg.Output.Textfile)
}
