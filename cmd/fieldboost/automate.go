package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/fieldboost/internal/automation"
	"github.com/san-kum/fieldboost/internal/export"
	"github.com/san-kum/fieldboost/internal/input"
	"github.com/san-kum/fieldboost/internal/lorentz"
	"github.com/san-kum/fieldboost/internal/optim"
	"github.com/san-kum/fieldboost/internal/persist"
	"github.com/san-kum/fieldboost/internal/state"
	"github.com/san-kum/fieldboost/internal/sweep"
	"github.com/san-kum/fieldboost/internal/vecmath"
)

var (
	checkTrials int
	checkSeed   int64

	searchMinimize   string
	searchMaximize   string
	searchComponent  string
	searchSpeedSteps int
	searchAngleSteps int
)

func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&checkTrials, "trials", 1000, "number of random scenarios")
	cmd.Flags().Int64Var(&checkSeed, "seed", 0, "random seed (0 picks one)")
}

func addSearchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&searchMinimize, "minimize", "", "quantity to minimize: "+strings.Join(sweep.Quantities(), ", "))
	f.StringVar(&searchMaximize, "maximize", "", "quantity to maximize")
	f.StringVar(&searchComponent, "component", "mag", "component of a vector quantity: "+strings.Join(sweep.Components, ", "))
	f.IntVar(&searchSpeedSteps, "speed-steps", 40, "boost speeds to try")
	f.IntVar(&searchAngleSteps, "angle-steps", 24, "azimuths to try; half as many polar angles")
}

// runScript replays a YAML script. Steps with save_as write to the
// scenario database, which is only opened when a step needs it.
func runScript(cmd *cobra.Command, args []string) error {
	script, err := automation.LoadScript(args[0])
	if err != nil {
		return err
	}
	base, err := scenario(cmd)
	if err != nil {
		return err
	}
	st, err := state.New(cfg.Policy(), base)
	if err != nil {
		return err
	}

	var saver automation.Saver
	for _, step := range script.Steps {
		if step.SaveAs == "" {
			continue
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		saver = db
		break
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	results, runErr := automation.Run(ctx, script, st, saver)

	if jsonOut {
		reports := make([]stepReport, len(results))
		for i, r := range results {
			reports[i] = stepReport{Step: r.Step, SavedID: r.SavedID, Report: export.NewReport(r.State, r.Quantities)}
		}
		if err := export.WriteJSON(os.Stdout, reports); err != nil {
			return err
		}
		return runErr
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\t|E'|\t|B'|\tγ\tE·B\tE²-B²\tSAVED")
	for _, r := range results {
		q := r.Quantities
		fmt.Fprintf(w, "%s\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%s\n", r.Step,
			q.EPrime.Length(), q.BPrime.Length(), q.BoostGamma,
			q.InvariantsPrime.Dot, q.InvariantsPrime.Difference, r.SavedID)
		logWarnings(r.Warnings)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

type stepReport struct {
	Step    string        `json:"step"`
	SavedID string        `json:"saved_id,omitempty"`
	Report  export.Report `json:"report"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	cc := automation.DefaultCheckConfig(cfg.Tolerance)
	cc.Trials = checkTrials
	cc.Seed = checkSeed
	cc.MinMass = cfg.MinMass

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := automation.Check(ctx, cc)
	if err != nil {
		return err
	}

	fmt.Printf("trials %d  seed %d  tolerance %g\n", res.Trials, res.Seed, cc.Tolerance)
	fmt.Printf("round trip  %.3g\n", res.WorstRoundTrip)
	fmt.Printf("E·B         %.3g\n", res.WorstDot)
	fmt.Printf("E²-B²       %.3g\n", res.WorstDiff)
	if res.Passed() {
		fmt.Println("ok")
		return nil
	}
	f := res.First
	fmt.Printf("first failure at trial %d: %s (error %.3g)\n", f.Trial, f.Reason, f.Error)
	fmt.Printf("  query %s\n", persist.EncodeQuery(inputState(f.Input)))
	return fmt.Errorf("%d of %d trials failed", res.Failures, res.Trials)
}

// inputState wraps an engine input so it can be encoded as a query.
func inputState(in lorentz.Input) state.State {
	s := state.Default()
	s.Field.E, s.Field.B = in.EField, in.BField
	s.Boost.Velocity = in.BoostVelocity
	s.Particle.Velocity = in.ParticleVelocity
	s.Particle.Charge, s.Particle.Mass = in.ParticleCharge, in.ParticleMass
	return s
}

// runSearch grid-searches boost directions and speeds for the frame that
// minimizes (or maximizes) a quantity, then shows that frame.
func runSearch(cmd *cobra.Command, args []string) error {
	quantity, maximize := searchMinimize, false
	switch {
	case searchMinimize != "" && searchMaximize != "":
		return fmt.Errorf("--minimize and --maximize are exclusive")
	case searchMaximize != "":
		quantity, maximize = searchMaximize, true
	case searchMinimize == "":
		return fmt.Errorf("one of --minimize or --maximize is required")
	}

	s, err := scenario(cmd)
	if err != nil {
		return err
	}
	obj, err := optim.QuantityObjective(s.Input(), quantity, searchComponent, maximize)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	grid, err := optim.BoostGrid(cfg.MaxSpeed, searchSpeedSteps, searchAngleSteps)
	if err != nil {
		return err
	}
	best, score, err := grid.Search(ctx, obj)
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no boost gave a finite %s", quantity)
	}
	if maximize {
		score = -score
	}

	s.Boost.Velocity = vecmath.NewSpherical(best["speed"], best["phi"], best["theta"])
	s = cfg.Policy().Apply(s)
	fmt.Fprintf(os.Stderr, "%s %s = %.6g at v=%.4g φ=%.1f° θ=%.1f°\n", quantity, searchComponent, score,
		best["speed"], input.Degrees(best["phi"]), input.Degrees(best["theta"]))
	fmt.Fprintf(os.Stderr, "query %s\n", persist.EncodeQuery(s))
	return show(s)
}
