package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/fieldboost/internal/persist"
	"github.com/san-kum/fieldboost/internal/state"
	"github.com/san-kum/fieldboost/internal/viz"
)

const lastSessionFile = "last.query"

var resume bool

// runTUI starts the interactive view. The scenario is written to the data
// directory after every burst of edits and restored on the next start.
func runTUI(cmd *cobra.Command, args []string) error {
	base, err := cfg.InitialState()
	if err != nil {
		return err
	}
	if err := ensureDataDir(); err != nil {
		return err
	}
	path := filepath.Join(cfg.DataDir, lastSessionFile)

	if resume && !stateFlagsChanged(cmd) {
		base = restoreSession(path, base)
	}
	initial, err := buildState(cmd, base)
	if err != nil {
		return err
	}

	store, err := state.New(cfg.Policy(), initial)
	if err != nil {
		return err
	}

	save := persist.NewDebouncer(time.Duration(cfg.DebounceMS)*time.Millisecond, func() {
		q := persist.EncodeQuery(store.Snapshot())
		if err := os.WriteFile(path, []byte(q+"\n"), 0644); err != nil {
			slog.Error("saving session", "path", path, "error", err)
		}
	})
	unsubscribe := store.Subscribe(func(state.State) { save.Trigger() })
	defer func() {
		unsubscribe()
		save.Stop()
	}()

	return viz.Run(store, viz.Options{
		Theme:      cfg.Theme,
		Preset:     cfg.Preset,
		SweepSteps: cfg.Sweep.Steps,
	})
}

func restoreSession(path string, base state.State) state.State {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return base
	}
	if err != nil {
		slog.Warn("reading last session", "path", path, "error", err)
		return base
	}
	s, warnings, err := persist.DecodeQuery(strings.TrimSpace(string(data)), base)
	if err != nil {
		slog.Warn("decoding last session", "path", path, "error", err)
		return base
	}
	logWarnings(warnings)
	return s
}
