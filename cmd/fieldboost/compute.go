package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/fieldboost/internal/config"
	"github.com/san-kum/fieldboost/internal/export"
	"github.com/san-kum/fieldboost/internal/input"
	"github.com/san-kum/fieldboost/internal/persist"
	"github.com/san-kum/fieldboost/internal/state"
	"github.com/san-kum/fieldboost/internal/viz"
)

func runCompute(cmd *cobra.Command, args []string) error {
	s, err := scenario(cmd)
	if err != nil {
		return err
	}
	return show(s)
}

// show prints the quantities of s as a table or JSON and writes the SVG
// when --svg is set.
func show(s state.State) error {
	q := s.Quantities()
	if svgOut != "" {
		svg := export.VectorsSVG(s, q, svgSize, viz.GetTheme(cfg.Theme))
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", svgOut)
	}
	if jsonOut {
		return export.WriteJSON(os.Stdout, export.NewReport(s, q))
	}
	fmt.Println(viz.RenderQuantities(s, q, viz.GetTheme(cfg.Theme)))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	base, err := cfg.InitialState()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tQUERY")
	for _, name := range input.PresetNames() {
		s, _ := input.ApplyPreset(base, name)
		fmt.Fprintf(w, "%s\t%s\n", name, persist.EncodeQuery(s))
	}
	return w.Flush()
}

func runEncode(cmd *cobra.Command, args []string) error {
	s, err := scenario(cmd)
	if err != nil {
		return err
	}
	fmt.Println(persist.EncodeQuery(s))
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	base, err := cfg.InitialState()
	if err != nil {
		return err
	}
	s, warnings, err := persist.DecodeQuery(args[0], base)
	if err != nil {
		return err
	}
	logWarnings(warnings)
	return show(cfg.Policy().Apply(s))
}

func runSave(cmd *cobra.Command, args []string) error {
	s, err := scenario(cmd)
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	sc, err := db.Save(context.Background(), args[0], s)
	if err != nil {
		return err
	}
	fmt.Printf("saved %s as %s\n", sc.Name, sc.ID)
	return nil
}

// runWriteConfig saves the effective config with the scenario built from
// the flags, so a tuned scenario becomes the start-up state.
func runWriteConfig(cmd *cobra.Command, args []string) error {
	s, err := scenario(cmd)
	if err != nil {
		return err
	}
	out := *cfg
	out.Scenario = config.ScenarioFromState(s)
	out.Preset = ""
	if err := config.Save(args[0], &out); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", args[0])
	return nil
}
