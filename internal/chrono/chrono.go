// Package chrono resolves natural-language date/time phrases against an
// explicit reference time. It is the calendar engine behind the suggestion
// core: a deterministic built-in grammar covers every phrase shape the
// suggestion rules construct, and a chain of ecosystem parsers handles
// free-form input typed directly by users.
package chrono

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/tj/go-naturaldate"
)

// ErrUnrecognized is returned when no parser in the chain claims a phrase.
var ErrUnrecognized = errors.New("chrono: unrecognized phrase")

// Resolver resolves a phrase relative to a reference time.
// Implementations must be deterministic for a fixed (phrase, now) pair.
type Resolver interface {
	Resolve(phrase string, now time.Time) (time.Time, error)
}

// Engine is the default Resolver. Resolution order:
//
//  1. Built-in grammar (weekdays, months, today/tomorrow/tonight, "in N units",
//     clock times): deterministic, covers all machine-constructed phrases.
//  2. Absolute formats via araddon/dateparse ("2026-03-05 15:04", "March 3, 2026").
//  3. olebedev/when English rules ("tomorrow at 5pm", "next friday evening").
//  4. tj/go-naturaldate with future bias, gated behind relative-phrase
//     indicators because it parses almost anything as "now".
type Engine struct {
	w *when.Parser
}

// New creates an Engine with the full parser chain.
func New() *Engine {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Engine{w: w}
}

// Grammar is a Resolver restricted to the built-in grammar. The suggestion
// rules resolve their constructed phrases through it: a phrase the grammar
// rejects (hour 13, minute 70, day 35) must drop that candidate, not be
// half-matched by the lenient fallback parsers.
type Grammar struct{}

// Resolve implements Resolver using only the built-in grammar.
func (Grammar) Resolve(phrase string, now time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(phrase))
	if t, ok := parseGrammar(s, now); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, phrase)
}

// Resolve implements Resolver.
func (e *Engine) Resolve(phrase string, now time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(phrase))
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrUnrecognized)
	}

	if t, ok := parseGrammar(s, now); ok {
		slog.Debug("phrase resolved", "layer", "grammar", "phrase", s, "time", t)
		return t, nil
	}

	if t, err := dateparse.ParseIn(s, now.Location()); err == nil {
		slog.Debug("phrase resolved", "layer", "absolute", "phrase", s, "time", t)
		return t, nil
	}

	if r, err := e.w.Parse(s, now); err == nil && r != nil {
		slog.Debug("phrase resolved", "layer", "when", "phrase", s, "time", r.Time)
		return r.Time, nil
	}

	if looksRelative(s) {
		if t, err := naturaldate.Parse(s, now, naturaldate.WithDirection(naturaldate.Future)); err == nil {
			slog.Debug("phrase resolved", "layer", "naturaldate", "phrase", s, "time", t)
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, phrase)
}

// relativeIndicators gate the naturaldate fallback. The library resolves
// arbitrary words to the reference time, so it only runs for input that
// plausibly contains a relative expression.
var relativeIndicators = []string{
	"next ", "last ", "in ", " ago", "from now",
	"this ", "coming ", "following ",
}

func looksRelative(s string) bool {
	for _, ind := range relativeIndicators {
		if strings.Contains(s, ind) {
			return true
		}
	}
	return false
}

// Predicates and component arithmetic used by the suggestion rules.

// IsPast reports whether t is strictly before now.
func IsPast(t, now time.Time) bool { return t.Before(now) }

// IsFuture reports whether t is strictly after now.
func IsFuture(t, now time.Time) bool { return t.After(now) }

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AddHours returns t shifted forward by n clock hours.
func AddHours(t time.Time, n int) time.Time {
	return t.Add(time.Duration(n) * time.Hour)
}

// AddDays returns t shifted forward by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}
