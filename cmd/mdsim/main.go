package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/mdsim/internal/analysis"
	"github.com/san-kum/mdsim/internal/config"
	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/metrics"
	"github.com/san-kum/mdsim/internal/storage"
	"github.com/san-kum/mdsim/internal/viz"
)

var (
	dataDir    string
	particles  int
	dims       int
	mass       float64
	dt         float64
	steps      int
	seed       int32
	parallel   int
	configFile string
	preset     string
	noSave     bool
	numRuns    int
	frameRate  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mdsim",
		Short: "molecular dynamics simulation with a saturating central pair potential",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mdsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addParamFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's energy series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and energy series as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run energy series as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a run's total energy",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark force evaluation across particle counts",
		RunE:  benchSweep,
	}
	benchCmd.Flags().IntVar(&steps, "steps", 10, "steps per benchmark run")
	benchCmd.Flags().IntVar(&parallel, "parallel", 0, "force-evaluation workers (0 serial, -1 all cpus)")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run the same parameters under consecutive seeds",
		RunE:  runEnsemble,
	}
	addParamFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 4, "number of runs")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with a live terminal view",
		RunE:  runLive,
	}
	addParamFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPARTICLES\tDIMS\tDT\tSTEPS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%g\t%d\n",
					name, p.ParticleCount, p.Dimensions, p.TimeStep, p.StepCount)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd,
		analyzeCmd, benchCmd, ensembleCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "particle count")
	cmd.Flags().IntVar(&dims, "dims", config.DefaultDims, "spatial dimensions")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "particle mass")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultTimeStep, "time step")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "step count")
	cmd.Flags().Int32Var(&seed, "seed", config.DefaultSeed, "rng seed (non-zero)")
	cmd.Flags().IntVar(&parallel, "parallel", 0, "force-evaluation workers (0 serial, -1 all cpus)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset")
}

// resolveConfig layers preset, config file and flags, lowest to
// highest precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("particles") {
		cfg.ParticleCount = particles
	}
	if cmd.Flags().Changed("dims") {
		cfg.Dimensions = dims
	}
	if cmd.Flags().Changed("mass") {
		cfg.Mass = mass
	}
	if cmd.Flags().Changed("dt") {
		cfg.TimeStep = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.StepCount = steps
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallel = parallel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	runner, err := md.NewRunner(cfg.Params())
	if err != nil {
		return err
	}
	runner.AddMetric(metrics.NewEnergyDrift())
	runner.AddMetric(metrics.NewTemperature())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d particles in %dd for %d steps...\n",
		cfg.ParticleCount, cfg.Dimensions, cfg.StepCount)
	start := time.Now()

	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Println(result.Summary())
	fmt.Printf("completed in %v\n", elapsed)
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6e\n", name, val)
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Params(), result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPARTICLES\tDIMS\tSTEPS\tDT\tDRIFT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%g\t%.3e\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.ParticleCount,
			run.Dimensions,
			run.StepCount,
			run.TimeStep,
			run.Drift,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d, dims: %d, samples: %d\n\n",
		meta.ParticleCount, meta.Dimensions, len(samples))

	series := []struct {
		caption string
		value   func(md.Sample) float64
	}{
		{"potential energy", func(s md.Sample) float64 { return s.Potential }},
		{"kinetic energy", func(s md.Sample) float64 { return s.Kinetic }},
		{"total energy", func(s md.Sample) float64 { return s.Total() }},
	}

	for _, sr := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = sr.value(s)
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption),
		))
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.Export(os.Stdout, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"step", "time", "potential", "kinetic", "total"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Step),
			strconv.FormatFloat(s.Time, 'f', 6, 64),
			strconv.FormatFloat(s.Potential, 'g', -1, 64),
			strconv.FormatFloat(s.Kinetic, 'g', -1, 64),
			strconv.FormatFloat(s.Total(), 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("not enough data to analyze")
	}

	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = s.Total()
	}

	ps := analysis.PowerSpectrum(analysis.Pad(data))
	plotData := ps[:len(ps)/4+1]

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (total energy)"),
	))

	maxIdx := 1
	for i := 2; i < len(plotData); i++ {
		if plotData[i] > plotData[maxIdx] {
			maxIdx = i
		}
	}
	duration := meta.TimeStep * float64(meta.StepCount)
	if duration > 0 {
		freq := float64(maxIdx) / duration
		fmt.Printf("\ndominant frequency: %.3f hz (period %.3f s)\n", freq, 1.0/freq)
	}
	return nil
}

func benchSweep(cmd *cobra.Command, args []string) error {
	counts := []int{100, 200, 400, 800}

	fmt.Printf("benchmarking force evaluation (%d steps each)\n\n", steps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tSTEPS\tTIME\tSTEPS/SEC\tPAIRS/SEC")

	for _, np := range counts {
		p := md.Params{
			Particles: np,
			Dims:      config.DefaultDims,
			Mass:      config.DefaultMass,
			Dt:        config.DefaultTimeStep,
			Steps:     steps,
			Seed:      config.DefaultSeed,
			Workers:   parallel,
		}
		runner, err := md.NewRunner(p)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := runner.Run(context.Background())
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		evals := result.StepsTaken + 1
		pairs := float64(evals) * float64(np*np-np)
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.2e\n",
			np, result.StepsTaken, elapsed.Round(time.Millisecond),
			float64(result.StepsTaken)/elapsed.Seconds(),
			pairs/elapsed.Seconds())
	}
	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns < 1 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ens := md.NewEnsemble(cfg.Params(), numRuns, cfg.Seed)
	results, err := ens.Run(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tPOTENTIAL\tKINETIC\tDRIFT")
	sum, maxAbs := 0.0, 0.0
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%.3e\n",
			cfg.Seed+int32(i), r.Potential, r.Kinetic, r.Drift)
		sum += r.Drift
		maxAbs = math.Max(maxAbs, math.Abs(r.Drift))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nmean drift: %.3e, max |drift|: %.3e\n",
		sum/float64(len(results)), maxAbs)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	stepper, err := md.NewStepper(cfg.Params())
	if err != nil {
		return err
	}
	if _, err := stepper.Start(); err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(stepper, frameRate))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
