package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fieldboost/internal/export"
	"github.com/san-kum/fieldboost/internal/sweep"
	"github.com/san-kum/fieldboost/internal/viz"
)

var (
	sweepOver      string
	sweepFrom      float64
	sweepTo        float64
	sweepSteps     int
	sweepWorkers   int
	sweepQuantity  string
	sweepComponent string
	sweepCSV       string
	sweepJSON      string
	sweepSVG       string
)

func addSweepFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&sweepOver, "over", "speed", "parameter to sweep: "+strings.Join(sweep.Parameters(), ", "))
	f.Float64Var(&sweepFrom, "from", 0, "first value")
	f.Float64Var(&sweepTo, "to", 0.99, "last value")
	f.IntVar(&sweepSteps, "steps", 0, "number of samples (default from config)")
	f.IntVar(&sweepWorkers, "workers", 0, "concurrent workers (default from config)")
	f.StringVar(&sweepQuantity, "quantity", "e-prime", "quantity to plot: "+strings.Join(sweep.Quantities(), ", "))
	f.StringVar(&sweepComponent, "component", "mag", "component to plot: "+strings.Join(sweep.Components, ", "))
	f.StringVar(&sweepCSV, "csv", "", "write every sample as CSV to this path")
	f.StringVar(&sweepJSON, "json", "", "write every sample as JSON to this path")
	f.StringVar(&sweepSVG, "svg", "", "write the plotted series as SVG to this path")
}

func runSweep(cmd *cobra.Command, args []string) error {
	s, err := scenario(cmd)
	if err != nil {
		return err
	}
	spec := sweep.Spec{
		Over:    sweepOver,
		From:    sweepFrom,
		To:      sweepTo,
		Steps:   cfg.Sweep.Steps,
		Workers: cfg.Sweep.Workers,
		Policy:  cfg.Policy(),
	}
	if cmd.Flags().Changed("steps") {
		spec.Steps = sweepSteps
	}
	if cmd.Flags().Changed("workers") {
		spec.Workers = sweepWorkers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := sweep.Run(ctx, s.Input(), spec)
	if err != nil {
		return err
	}
	series, err := res.Series(sweepQuantity, sweepComponent)
	if err != nil {
		return err
	}

	caption := fmt.Sprintf("%s (%s) vs %s in [%g, %g]", sweepQuantity, sweepComponent, spec.Over, spec.From, spec.To)
	fmt.Println(asciigraph.Plot(plottable(series),
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	))
	fmt.Println()
	fmt.Printf("invariant drift: E·B %.3g, E²-B² %.3g (tolerance %g)\n", res.DotDrift, res.DifferenceDrift, cfg.Tolerance)
	if res.DotDrift > cfg.Tolerance || res.DifferenceDrift > cfg.Tolerance {
		fmt.Println("warning: invariant drift exceeds tolerance")
	}
	if res.NonFinite > 0 {
		fmt.Printf("warning: %d of %d samples are not finite\n", res.NonFinite, len(res.Samples))
	}

	if sweepCSV != "" {
		if err := writeFile(sweepCSV, func(w io.Writer) error { return export.SweepCSV(w, res) }); err != nil {
			return err
		}
	}
	if sweepJSON != "" {
		if err := writeFile(sweepJSON, func(w io.Writer) error { return export.SweepJSON(w, s.Input(), res) }); err != nil {
			return err
		}
	}
	if sweepSVG != "" {
		svg := export.SeriesSVG(spec.Values(), series, 640, 320, string(viz.GetTheme(cfg.Theme).E))
		if svg == "" {
			return fmt.Errorf("not enough finite samples to plot %s", sweepQuantity)
		}
		if err := os.WriteFile(sweepSVG, []byte(svg), 0644); err != nil {
			return err
		}
	}
	return nil
}

// plottable replaces non-finite samples with the previous finite value so
// asciigraph can scale the axis.
func plottable(series []float64) []float64 {
	out := make([]float64, len(series))
	last := 0.0
	for i, v := range series {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			last = v
		}
		out[i] = last
	}
	return out
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
