// Package cli implements the forcegraph command-line interface.
//
// Every command starts from a payload file: inspect prints what loaded and
// what was rejected, render exports the current snapshot, explore drives the
// state machine from the keyboard and serve hands diagrams to a browser over
// HTTP. Rendered SVG is kept in an on-disk cache managed by the cache command.
//
// # Commands
//
//   - inspect: element counts, rejections, clusters and layout parameters
//   - render: DOT, SVG, JSON frames or a re-exported payload
//   - serve: the HTTP bridge
//   - explore: terminal UI for click, hover and hide
//   - cache: clear or locate the SVG cache
//
// # Logging
//
// The logger is attached to the command context by the root command, so
// helpers take a context instead of a logger. --verbose lowers the level to
// debug.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger stamping each line with a centisecond clock
// ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one step of a command.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done reports the step at info level: "Loaded data.json (3ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext falls back to log.Default for contexts built outside the
// root command, as in tests.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
