// Package logging wraps logrus with the "diagnostics channel" concept spec
// §7 refers to: the sink enrichment passes write non-fatal warnings to
// (missing input file, unresolved pattern match, fuzzy-match miss) without
// ever turning them into errors.
package logging

import (
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Diagnostics is a logrus-backed logger carrying a run correlation id and an
// optional pipeline-stage field. It is never used for any content-addressed
// entity id — uuid here is purely a log-correlation convenience.
type Diagnostics struct {
	log   *logrus.Logger
	runID string
	stage string
}

// New builds a Diagnostics channel writing structured logs to stderr.
// Text-mode output only gets ANSI coloring when stderr is an interactive
// terminal — a redirected or piped run (CI, `| tee`) gets plain text, since
// logrus can't reliably auto-detect that itself.
func New(jsonFormat bool, debug bool) *Diagnostics {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	if jsonFormat {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		isTTY := term.IsTerminal(int(os.Stderr.Fd()))
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: isTTY, DisableColors: !isTTY})
	}
	if debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return &Diagnostics{log: l, runID: uuid.NewString()}
}

// ForStage returns a Diagnostics scoped to stage, sharing the same run id.
func (d *Diagnostics) ForStage(stage string) *Diagnostics {
	return &Diagnostics{log: d.log, runID: d.runID, stage: stage}
}

func (d *Diagnostics) entry() *logrus.Entry {
	e := d.log.WithField("run_id", d.runID)
	if d.stage != "" {
		e = e.WithField("stage", d.stage)
	}
	return e
}

// Warn logs a non-fatal diagnostic: the caller continues without effect,
// never an error (spec §7's "missing input file" / "fuzzy-match miss" cases).
func (d *Diagnostics) Warn(msg string, fields map[string]interface{}) {
	d.entry().WithFields(fields).Warn(msg)
}

// Info logs a normal progress message.
func (d *Diagnostics) Info(msg string, fields map[string]interface{}) {
	d.entry().WithFields(fields).Info(msg)
}

// Error logs a caller-visible failure alongside its cause, without itself
// stopping execution — the caller decides whether to abort.
func (d *Diagnostics) Error(msg string, err error, fields map[string]interface{}) {
	e := d.entry().WithFields(fields)
	if err != nil {
		e = e.WithError(err)
	}
	e.Error(msg)
}

// RunID returns the correlation id shared by every log line from this
// Diagnostics channel and any it was derived from via ForStage.
func (d *Diagnostics) RunID() string { return d.runID }
