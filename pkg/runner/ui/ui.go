// Package ui starts the full-screen viewer.
package ui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/logging"
	"tableflip.dev/herbview/pkg/selection"
	"tableflip.dev/herbview/pkg/store"
	teaui "tableflip.dev/herbview/pkg/tui/app"
)

// ErrNotTerminal is returned when stdout is not a terminal.
var ErrNotTerminal = errors.New("herbview ui needs an interactive terminal")

// UI opens the viewer on Source.
type UI struct {
	Config *store.Config
	Source catalog.Source
	// Location is the starting location URL; empty resumes the last one
	// remembered for Source.
	Location string
	// Model overrides the `model` parameter of the starting location.
	Model string

	// Terminal reports whether stdout is interactive. Defaults to an isatty
	// check.
	Terminal func() bool
	// Run starts the program. Defaults to teaui.Run.
	Run func(teaui.Options) error
}

// Do resolves history and location, then blocks until the viewer exits.
func (u *UI) Do(ctx context.Context) error {
	if u.Config == nil {
		return errors.New("can not start ui, no config")
	}
	if !u.terminal() {
		return ErrNotTerminal
	}

	log, err := logging.New(u.Config.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	hist := u.history(log)
	loc, err := u.location(hist)
	if err != nil {
		return err
	}
	log.Info("starting viewer",
		zap.String("source", u.Source.String()),
		zap.String("location", loc.String()),
	)

	run := u.Run
	if run == nil {
		run = teaui.Run
	}
	opts := teaui.OptionsFromConfig(u.Config, u.Source, loc, log)
	if err := run(opts); err != nil {
		log.Error("viewer exited", zap.Error(err))
		return err
	}
	return ctx.Err()
}

func (u *UI) terminal() bool {
	if u.Terminal != nil {
		return u.Terminal()
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// history opens the persisted location slot, falling back to memory when
// the state path is unusable.
func (u *UI) history(log *zap.Logger) store.History {
	if u.Config.StatePath == "" {
		return store.NewMemoryHistory()
	}
	h, err := store.OpenHistory(u.Config.StatePath)
	if err != nil {
		log.Warn("history unavailable, selections will not persist", zap.Error(err))
		return store.NewMemoryHistory()
	}
	return h
}

func (u *UI) location(hist store.History) (*selection.Location, error) {
	raw := u.Location
	if raw == "" {
		var err error
		if raw, err = hist.Load(u.Source.String()); err != nil {
			raw = ""
		}
	}
	if u.Model != "" {
		if raw == "" {
			raw = selection.DefaultLocation
		}
		parsed, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("ui: parse location %q: %w", raw, err)
		}
		q := parsed.Query()
		q.Set(selection.ModelParam, u.Model)
		parsed.RawQuery = q.Encode()
		raw = parsed.String()
	}
	return selection.ParseLocation(raw, u.Source.String(), hist)
}
