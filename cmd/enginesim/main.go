package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/enginesim/internal/config"
	"github.com/san-kum/enginesim/internal/dash"
	"github.com/san-kum/enginesim/internal/engine"
	"github.com/san-kum/enginesim/internal/metrics"
	"github.com/san-kum/enginesim/internal/sim"
	"github.com/san-kum/enginesim/internal/telemetry"
	"github.com/spf13/cobra"
)

var (
	dataDir      string
	dt           float64
	duration     float64
	seed         int64
	frameRate    int
	transmission string
	upgradeNames []string
	cruiseKMH    float64
	// Config file
	configFile string
	// Preset name
	preset string
)

// main registers commands and flags, launching the live dashboard when
// no subcommand is given. It exits with status 1 on command error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "enginesim",
		Short: "six-stroke engine and drivetrain simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return dash.Run(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".enginesim", "data directory")

	dashCmd := &cobra.Command{
		Use:   "dash",
		Short: "live dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return dash.Run(cfg)
		},
	}
	addSimFlags(dashCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				upgrades := "none"
				if len(cfg.Upgrades) > 0 {
					upgrades = strings.Join(cfg.Upgrades, ", ")
				}
				fmt.Printf("  %-10s %s transmission, upgrades: %s\n", name, cfg.Transmission, upgrades)
			}
			return nil
		},
	}

	upgradesCmd := &cobra.Command{
		Use:   "upgrades",
		Short: "list available upgrades and their effects",
		RunE:  listUpgrades,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the simulation step",
		RunE:  benchSteps,
	}

	rootCmd.AddCommand(dashCmd, runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, presetsCmd, upgradesCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")
	cmd.Flags().StringVar(&transmission, "transmission", "automatic", "transmission mode (automatic|manual)")
	cmd.Flags().StringSliceVar(&upgradeNames, "upgrade", nil, "install upgrade (repeatable)")
	cmd.Flags().Float64Var(&cruiseKMH, "cruise", config.DefaultCruiseKMH, "enable cruise control at target km/h")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves the effective config: preset, then config
// file, then CLI flags, each layer overriding the previous one.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Sim.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Sim.Duration = duration
	}
	if cmd.Flags().Changed("seed") || cfg.Sim.Seed == 0 {
		cfg.Sim.Seed = seed
	}
	if cmd.Flags().Changed("fps") {
		cfg.Sim.FrameRate = frameRate
	}
	if cmd.Flags().Changed("transmission") {
		cfg.Transmission = transmission
	}
	if cmd.Flags().Changed("cruise") {
		cfg.Cruise.TargetKMH = cruiseKMH
		cfg.Cruise.Enabled = true
	}
	for _, name := range upgradeNames {
		cfg.Upgrades = append(cfg.Upgrades, name)
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := telemetry.NewStore(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	e, err := cfg.BuildEngine(rand.New(rand.NewSource(cfg.Sim.Seed)))
	if err != nil {
		return err
	}

	runCfg := sim.Config{Dt: cfg.Sim.Dt, Duration: cfg.Sim.Duration, Seed: cfg.Sim.Seed}

	fmt.Println("running engine simulation...")
	start := time.Now()

	result, err := sim.Run(context.Background(), e, runCfg, metrics.DefaultSet())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	meta := telemetry.RunMetadata{
		Seed:         cfg.Sim.Seed,
		Dt:           cfg.Sim.Dt,
		Duration:     cfg.Sim.Duration,
		Transmission: e.Mode.String(),
		Upgrades:     cfg.Upgrades,
		Metrics:      result.Metrics,
	}
	runID, err := st.Save(meta, result.Samples)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(result.Samples))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := telemetry.NewStore(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tTRANS\tUPGRADES")

	for _, run := range runs {
		upgrades := "-"
		if len(run.Upgrades) > 0 {
			upgrades = strings.Join(run.Upgrades, ",")
		}
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%s\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Transmission,
			upgrades,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := telemetry.NewStore(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		value   func(telemetry.Sample) float64
	}{
		{"engine rpm", func(s telemetry.Sample) float64 { return s.RPM }},
		{"vehicle speed (km/h)", func(s telemetry.Sample) float64 { return s.VehicleSpeed * 3.6 }},
		{"temperature (°C)", func(s telemetry.Sample) float64 { return s.Temperature }},
		{"power output (kW)", func(s telemetry.Sample) float64 { return s.PowerOutput }},
	}

	for _, sr := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = sr.value(s)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := telemetry.NewStore(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	return telemetry.ExportJSONStdout(meta, samples)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := telemetry.NewStore(dataDir)
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "rpm", "speed_kmh", "gear", "temp", "power", "torque", "fuel"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatFloat(s.Time, 'f', 4, 64),
			strconv.FormatFloat(s.RPM, 'f', 1, 64),
			strconv.FormatFloat(s.VehicleSpeed*3.6, 'f', 2, 64),
			strconv.Itoa(s.Gear),
			strconv.FormatFloat(s.Temperature, 'f', 2, 64),
			strconv.FormatFloat(s.PowerOutput, 'f', 3, 64),
			strconv.FormatFloat(s.Torque, 'f', 3, 64),
			strconv.FormatFloat(s.FuelConsumption, 'f', 4, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func listUpgrades(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "UPGRADE\tEFFECTS")

	for _, u := range engine.AllUpgrades {
		fmt.Fprintf(w, "%s\t%s\n", u, describeEffect(u.Effect()))
	}

	return w.Flush()
}

func describeEffect(e engine.Effect) string {
	var parts []string
	pct := func(name string, mult float64) {
		if mult != 1 {
			parts = append(parts, fmt.Sprintf("%s %+.0f%%", name, (mult-1)*100))
		}
	}
	pct("power", e.Power)
	pct("thermal eff", e.ThermalEfficiency)
	pct("volumetric eff", e.VolumetricEfficiency)
	pct("fuel", e.FuelConsumption)
	pct("nox", e.NOxEmissions)
	if e.Temperature != 0 {
		parts = append(parts, fmt.Sprintf("temp %+.0f°C", e.Temperature))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func benchSteps(cmd *cobra.Command, args []string) error {
	durations := []float64{1.0, 10.0, 60.0}
	dts := []float64{0.001, 1.0 / 60, 0.1}

	fmt.Println("benchmarking simulation step")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			e := engine.New(engine.DefaultSpec(), rand.New(rand.NewSource(42)))
			cfg := sim.Config{Dt: step, Duration: dur, Seed: 42}

			start := time.Now()
			result, err := sim.Run(context.Background(), e, cfg, nil)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			steps := len(result.Samples) - 1
			stepsPerSec := float64(steps) / elapsed.Seconds()

			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, step, steps, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}
