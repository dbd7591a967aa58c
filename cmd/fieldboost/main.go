package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/san-kum/fieldboost/internal/config"
	"github.com/san-kum/fieldboost/internal/input"
	"github.com/san-kum/fieldboost/internal/persist"
	"github.com/san-kum/fieldboost/internal/state"
	"github.com/san-kum/fieldboost/internal/vecmath"
	"github.com/san-kum/fieldboost/internal/viz"
)

var (
	configFile string
	dataDir    string
	logLevel   string
	theme      string

	// scenario
	preset     string
	query      string
	ex, ey, ez float64
	bx, by, bz float64
	boostR     float64
	boostPhi   float64
	boostTheta float64
	partR      float64
	partPhi    float64
	partTheta  float64
	charge     float64
	mass       float64

	// output
	jsonOut bool
	svgOut  string
	svgSize int

	cfg *config.Config
)

// main registers the commands and runs the interactive view when no
// subcommand is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "fieldboost",
		Short:         "relativistic field and velocity transforms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		RunE: runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	addStateFlags(rootCmd)

	computeCmd := &cobra.Command{
		Use:   "compute",
		Short: "compute primed-frame quantities",
		Args:  cobra.NoArgs,
		RunE:  runCompute,
	}
	addStateFlags(computeCmd)
	addOutputFlags(computeCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and plot a quantity",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addStateFlags(sweepCmd)
	addSweepFlags(sweepCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "print the scenario as a query string",
		Args:  cobra.NoArgs,
		RunE:  runEncode,
	}
	addStateFlags(encodeCmd)

	decodeCmd := &cobra.Command{
		Use:   "decode [query]",
		Short: "decode a query string and show the quantities",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecode,
	}
	addOutputFlags(decodeCmd)

	saveCmd := &cobra.Command{
		Use:   "save [name]",
		Short: "save the scenario to the database",
		Args:  cobra.ExactArgs(1),
		RunE:  runSave,
	}
	addStateFlags(saveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved scenarios",
		Args:  cobra.NoArgs,
		RunE:  listScenarios,
	}

	loadCmd := &cobra.Command{
		Use:   "load [id|name]",
		Short: "compute a saved scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runLoad,
	}
	addOutputFlags(loadCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete [id|name]",
		Short: "delete a saved scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the transform over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	addStateFlags(serveCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal view",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	addStateFlags(tuiCmd)
	tuiCmd.Flags().BoolVar(&resume, "resume", true, "restore the last session when no scenario flags are given")

	rootCmd.Flags().BoolVar(&resume, "resume", true, "restore the last session when no scenario flags are given")

	runCmd := &cobra.Command{
		Use:   "run [script.yaml]",
		Short: "replay a scripted sequence of edits",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	addStateFlags(runCmd)
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON instead of a table")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "verify the transform on random scenarios",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
	addCheckFlags(checkCmd)

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "find the boost that minimizes or maximizes a quantity",
		Args:  cobra.NoArgs,
		RunE:  runSearch,
	}
	addStateFlags(searchCmd)
	addOutputFlags(searchCmd)
	addSearchFlags(searchCmd)

	writeConfigCmd := &cobra.Command{
		Use:   "write-config [path]",
		Short: "write the config with the scenario as its start-up state",
		Args:  cobra.ExactArgs(1),
		RunE:  runWriteConfig,
	}
	addStateFlags(writeConfigCmd)

	rootCmd.AddCommand(computeCmd, sweepCmd, presetsCmd, encodeCmd, decodeCmd,
		saveCmd, listCmd, loadCmd, deleteCmd, serveCmd, tuiCmd,
		runCmd, checkCmd, searchCmd, writeConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func addStateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&preset, "preset", "", "start from a preset")
	f.StringVar(&query, "query", "", "start from a query string")
	f.Float64Var(&ex, "ex", 0, "electric field x")
	f.Float64Var(&ey, "ey", 0, "electric field y")
	f.Float64Var(&ez, "ez", 0, "electric field z")
	f.Float64Var(&bx, "bx", 0, "magnetic field x")
	f.Float64Var(&by, "by", 0, "magnetic field y")
	f.Float64Var(&bz, "bz", 0, "magnetic field z")
	f.Float64Var(&boostR, "v", 0, "boost speed (fraction of c)")
	f.Float64Var(&boostPhi, "vphi", 0, "boost polar angle from +y (degrees)")
	f.Float64Var(&boostTheta, "vtheta", 0, "boost azimuth from +z toward +x (degrees)")
	f.Float64Var(&partR, "u", 0, "particle speed (fraction of c)")
	f.Float64Var(&partPhi, "uphi", 0, "particle polar angle (degrees)")
	f.Float64Var(&partTheta, "utheta", 0, "particle azimuth (degrees)")
	f.Float64Var(&charge, "q", 0, "particle charge")
	f.Float64Var(&mass, "m", 0, "particle mass")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON instead of a table")
	cmd.Flags().StringVar(&svgOut, "svg", "", "also write the vectors as SVG to this path")
	cmd.Flags().IntVar(&svgSize, "svg-size", 480, "SVG width and height in pixels")
}

// setup loads the config, applies flag overrides and installs the logger.
func setup(cmd *cobra.Command) error {
	cfg = config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if _, ok := viz.LookupTheme(cfg.Theme); !ok {
		slog.Warn("unknown theme, using default", "theme", cfg.Theme, "available", viz.ThemeNames())
	}
	return nil
}

// stateFlagsChanged reports whether any scenario flag was given.
func stateFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range scenarioFlags {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			return true
		}
	}
	return false
}

var scenarioFlags = []string{"preset", "query", "ex", "ey", "ez", "bx", "by", "bz",
	"v", "vphi", "vtheta", "u", "uphi", "utheta", "q", "m"}

// buildState layers the scenario sources: config, preset, query, then
// individual flags. The result is clamped by the config's policy.
func buildState(cmd *cobra.Command, base state.State) (state.State, error) {
	s := base
	flags := cmd.Flags()
	if flags.Changed("preset") {
		var err error
		if s, err = input.ApplyPreset(s, preset); err != nil {
			return s, err
		}
	}
	if flags.Changed("query") {
		decoded, warnings, err := persist.DecodeQuery(query, s)
		if err != nil {
			return s, err
		}
		logWarnings(warnings)
		s = decoded
	}

	set := func(name string, dst *float64, val float64) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	e, b := s.Field.E.Array(), s.Field.B.Array()
	set("ex", &e[0], ex)
	set("ey", &e[1], ey)
	set("ez", &e[2], ez)
	set("bx", &b[0], bx)
	set("by", &b[1], by)
	set("bz", &b[2], bz)
	s.Field.E = vecmath.New(e[0], e[1], e[2])
	s.Field.B = vecmath.New(b[0], b[1], b[2])

	set("v", &s.Boost.Velocity.R, boostR)
	set("vphi", &s.Boost.Velocity.Phi, input.Radians(boostPhi))
	set("vtheta", &s.Boost.Velocity.Theta, input.Radians(boostTheta))
	set("u", &s.Particle.Velocity.R, partR)
	set("uphi", &s.Particle.Velocity.Phi, input.Radians(partPhi))
	set("utheta", &s.Particle.Velocity.Theta, input.Radians(partTheta))
	set("q", &s.Particle.Charge, charge)
	set("m", &s.Particle.Mass, mass)

	return cfg.Policy().Apply(s), nil
}

// scenario is buildState over the configured initial state.
func scenario(cmd *cobra.Command) (state.State, error) {
	base, err := cfg.InitialState()
	if err != nil {
		return base, err
	}
	return buildState(cmd, base)
}

func logWarnings(warnings []persist.FieldWarning) {
	for _, w := range warnings {
		slog.Warn("skipping query field", "field", w.Field, "value", w.Value, "error", w.Err)
	}
}

func ensureDataDir() error {
	return os.MkdirAll(cfg.DataDir, 0755)
}

func openDB() (*persist.DB, error) {
	if err := ensureDataDir(); err != nil {
		return nil, err
	}
	return persist.Open(filepath.Join(cfg.DataDir, "scenarios.db"))
}
