// Package automation runs scripted scenario sequences and randomized
// consistency checks of the field transform.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fieldboost/internal/input"
	"github.com/san-kum/fieldboost/internal/lorentz"
	"github.com/san-kum/fieldboost/internal/persist"
	"github.com/san-kum/fieldboost/internal/state"
)

// ErrNoSaver indicates a step with save_as while no scenario store is open.
var ErrNoSaver = errors.New("automation: save_as needs a scenario database")

// Script is a named sequence of edits; each step's state is computed and
// reported.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step edits the state in a fixed order: reset, preset, query, set, flip,
// toggle. Values in Set are text as typed in the terminal view, so angles
// are in degrees.
type Step struct {
	Name   string            `yaml:"name"`
	Reset  bool              `yaml:"reset"`
	Preset string            `yaml:"preset"`
	Query  string            `yaml:"query"`
	Set    map[string]string `yaml:"set"`
	Flip   bool              `yaml:"flip"`
	Toggle []string          `yaml:"toggle"`
	SaveAs string            `yaml:"save_as"`
}

// Saver stores a named scenario; *persist.DB implements it.
type Saver interface {
	Save(ctx context.Context, name string, s state.State) (persist.Scenario, error)
}

type Result struct {
	Step       string
	State      state.State
	Quantities lorentz.Quantities
	Warnings   []persist.FieldWarning
	SavedID    string
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &script, nil
}

// applyQuery overlays a query string on the current state.
type applyQuery struct {
	query    string
	warnings *[]persist.FieldWarning
}

func (c applyQuery) Apply(st *state.Store) error {
	s, warnings, err := persist.DecodeQuery(c.query, st.Snapshot())
	if err != nil {
		return err
	}
	*c.warnings = append(*c.warnings, warnings...)
	st.Replace(s)
	return nil
}

func (s Step) commands(warnings *[]persist.FieldWarning) []input.Command {
	var cmds []input.Command
	if s.Reset {
		cmds = append(cmds, input.Reset{})
	}
	if s.Preset != "" {
		cmds = append(cmds, input.LoadPreset{Name: s.Preset})
	}
	if s.Query != "" {
		cmds = append(cmds, applyQuery{query: s.Query, warnings: warnings})
	}
	names := make([]string, 0, len(s.Set))
	for name := range s.Set {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmds = append(cmds, input.SetField{Name: name, Text: s.Set[name]})
	}
	if s.Flip {
		cmds = append(cmds, input.FlipBoost{})
	}
	for _, name := range s.Toggle {
		cmds = append(cmds, input.Toggle{Name: name})
	}
	return cmds
}

// Run applies every step to st in order. saver may be nil when no step
// uses save_as. Results of the steps completed so far are returned with
// any error.
func Run(ctx context.Context, script *Script, st *state.Store, saver Saver) ([]Result, error) {
	results := make([]Result, 0, len(script.Steps))
	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}
		slog.Debug("running step", "script", script.Name, "step", name, "index", i+1, "of", len(script.Steps))

		var warnings []persist.FieldWarning
		for _, cmd := range step.commands(&warnings) {
			if err := cmd.Apply(st); err != nil {
				return results, fmt.Errorf("%s: %w", name, err)
			}
		}

		s := st.Snapshot()
		res := Result{Step: name, State: s, Quantities: s.Quantities(), Warnings: warnings}
		if step.SaveAs != "" {
			if saver == nil {
				return results, fmt.Errorf("%s: %w", name, ErrNoSaver)
			}
			sc, err := saver.Save(ctx, step.SaveAs, s)
			if err != nil {
				return results, fmt.Errorf("%s: %w", name, err)
			}
			res.SavedID = sc.ID
		}
		results = append(results, res)
	}
	return results, nil
}
