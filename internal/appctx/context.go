// Package appctx provides application context helpers.
package appctx

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/whenq/whenq/internal/chrono"
	"github.com/whenq/whenq/internal/config"
	"github.com/whenq/whenq/internal/history"
	"github.com/whenq/whenq/internal/output"
	"github.com/whenq/whenq/internal/suggest"
)

// contextKey is a private type for context keys.
type contextKey string

const appKey contextKey = "app"

// App holds the shared application context for all commands.
type App struct {
	Config    *config.Config
	Output    *output.Writer
	Engine    *chrono.Engine
	Generator suggest.Generator
	History   *history.Store

	// Now returns the reference time for this invocation. It is time.Now
	// unless --ref pinned an explicit instant.
	Now func() time.Time

	// Flags holds the global flag values.
	Flags GlobalFlags
}

// GlobalFlags holds values for global CLI flags.
type GlobalFlags struct {
	// Output format flags
	JSON   bool
	Quiet  bool
	Styled bool
	Count  bool
	JQ     string

	// Behavior flags
	Ref       string // explicit reference time
	Limit     int
	Verbose   int
	NoHistory bool
	CacheDir  string
	Format    string
}

// NewApp creates a new App with the given configuration. The Engine carries
// the full parser chain for the parse command and --ref; the Generator stays
// on the strict grammar so suggestions never come from a lenient fallback.
func NewApp(cfg *config.Config) *App {
	return &App{
		Config:    cfg,
		Output:    output.New(output.Options{Format: output.ParseFormat(cfg.Format), Writer: os.Stdout}),
		Engine:    chrono.New(),
		Generator: suggest.NewGenerator(),
		History:   history.NewStore(cfg.CacheDir),
		Now:       time.Now,
	}
}

// ApplyFlags applies global flag values on top of the configured defaults.
// Flag-driven format selection wins over the config file.
func (a *App) ApplyFlags() error {
	format := output.ParseFormat(a.Config.Format)
	switch {
	case a.Flags.Quiet:
		format = output.FormatQuiet
	case a.Flags.JSON:
		format = output.FormatJSON
	case a.Flags.Styled:
		format = output.FormatStyled
	case a.Flags.Count:
		format = output.FormatCount
	}
	a.Output = output.New(output.Options{
		Format: format,
		Writer: os.Stdout,
		JQ:     a.Flags.JQ,
	})

	verbose := a.Flags.Verbose
	if os.Getenv("WHENQ_DEBUG") != "" {
		verbose = 1
	}
	if verbose > 0 {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if a.Flags.Ref != "" {
		ref, err := a.resolveRef(a.Flags.Ref)
		if err != nil {
			return err
		}
		a.Now = func() time.Time { return ref }
	}
	return nil
}

// resolveRef parses the --ref flag: RFC3339 first, then anything the phrase
// chain understands ("yesterday", "2026-03-05 15:04").
func (a *App) resolveRef(ref string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, ref); err == nil {
		return t, nil
	}
	t, err := a.Engine.Resolve(ref, time.Now())
	if err != nil {
		return time.Time{}, output.ErrUsageHint("invalid --ref value: "+ref,
			"Use RFC3339 (2026-03-05T15:04:00Z) or a phrase like \"yesterday\"")
	}
	return t, nil
}

// RecordHistory reports whether accepted phrases should be persisted.
func (a *App) RecordHistory() bool {
	return a.Config.History && !a.Flags.NoHistory
}

// WithApp stores the app in the context.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey, app)
}

// FromContext retrieves the app from the context, or nil.
func FromContext(ctx context.Context) *App {
	app, _ := ctx.Value(appKey).(*App)
	return app
}
