package main

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/epicycles/internal/config"
	"github.com/san-kum/epicycles/internal/epicycle"
	"github.com/san-kum/epicycles/internal/experiment"
	"github.com/san-kum/epicycles/internal/export"
	"github.com/san-kum/epicycles/internal/fourier"
	"github.com/san-kum/epicycles/internal/storage"
	"github.com/san-kum/epicycles/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	verbose bool
	// analysis flags, applied over config file and preset
	configFile    string
	preset        string
	pointsFile    string
	contourPoints int
	center        bool
	maxOrder      int
	minOrder      int
	samples       int
	method        string
	tolerance     float64
	workers       int
	// output
	noSave    bool
	plot      bool
	svgOut    string
	jsonOut   string
	every     int
	frameSVGs string
)

var tracedKeys = []string{
	"epicycles.quadrature",
	"epicycles.fourier",
	"epicycles.epicycle",
	"epicycles.sweep",
	"epicycles.storage",
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "epicycles",
		Short: "fourier series approximation of closed curves",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := tracing.LevelError
			if verbose {
				level = tracing.LevelDebug
			}
			for _, key := range tracedKeys {
				tracing.Select(key).SetTraceLevel(level)
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".epicycles", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug tracing")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [shape]",
		Short: "compute fourier coefficients and reconstruct a curve",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyze,
	}
	addAnalysisFlags(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&plot, "plot", false, "draw contour and reconstruction in the terminal")
	analyzeCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	sweepCmd := &cobra.Command{
		Use:   "sweep [shape]",
		Short: "reconstruction error over a range of orders",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addAnalysisFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&minOrder, "min-order", config.DefaultMinOrder, "smallest truncation order")
	sweepCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	framesCmd := &cobra.Command{
		Use:   "frames [shape]",
		Short: "step through epicycle frames",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFrames,
	}
	addAnalysisFlags(framesCmd)
	framesCmd.Flags().IntVar(&every, "every", 50, "print every n-th frame")
	framesCmd.Flags().StringVar(&frameSVGs, "svg-dir", "", "write every printed frame as svg into this directory")

	svgCmd := &cobra.Command{
		Use:   "svg [shape]",
		Short: "write contour and reconstruction as svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSVG,
	}
	addAnalysisFlags(svgCmd)
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "epicycles.svg", "output file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&jsonOut, "out", "o", "", "output file (default stdout)")

	shapesCmd := &cobra.Command{
		Use:   "shapes",
		Short: "list built-in shapes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range experiment.NewRegistry().ListShapes() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [shape]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shapes := config.ListPresetShapes()
			if len(args) > 0 {
				shapes = args
			}
			for _, shape := range shapes {
				presets := config.ListPresets(shape)
				if len(presets) == 0 {
					fmt.Printf("no presets for shape: %s\n", shape)
					continue
				}
				fmt.Printf("presets for %s:\n", shape)
				for _, p := range presets {
					cfg := config.GetPreset(shape, p)
					fmt.Printf("  %-12s %s, order %d\n", p, cfg.Mode, cfg.MaxOrder)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(analyzeCmd, sweepCmd, framesCmd, svgCmd, listCmd, showCmd, exportJSONCmd, shapesCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&pointsFile, "points", "", "csv file of x,y contour points")
	cmd.Flags().IntVar(&contourPoints, "contour-points", config.DefaultContourPoints, "points sampled from a built-in shape")
	cmd.Flags().BoolVar(&center, "center", true, "center the contour on its bounding box")
	cmd.Flags().IntVarP(&maxOrder, "order", "n", config.DefaultMaxOrder, "maximum order N")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "reconstruction samples M")
	cmd.Flags().StringVar(&method, "method", "quadrature", "coefficient method: quadrature or fft")
	cmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "absolute quadrature tolerance")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = all cpus)")
}

// resolveConfig layers preset, config file, positional shape and flags.
func resolveConfig(cmd *cobra.Command, args []string, mode string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	shape := ""
	if len(args) > 0 {
		shape = args[0]
	}

	if preset != "" {
		s := shape
		if s == "" {
			s = cfg.Shape
		}
		p := config.GetPreset(s, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available for %s: %v)", preset, s, config.ListPresets(s))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if shape != "" {
		cfg.Shape = shape
		cfg.Name = shape
	}

	flags := cmd.Flags()
	if flags.Changed("points") {
		cfg.PointsFile = pointsFile
		cfg.Name = strings.TrimSuffix(filepath.Base(pointsFile), filepath.Ext(pointsFile))
	}
	if flags.Changed("contour-points") {
		cfg.ContourPoints = contourPoints
	}
	if flags.Changed("center") {
		cfg.Center = center
	}
	if flags.Changed("order") {
		cfg.MaxOrder = maxOrder
	}
	if flags.Changed("min-order") {
		cfg.MinOrder = minOrder
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}
	if flags.Changed("method") {
		cfg.Analysis.Method = method
	}
	if flags.Changed("tol") {
		cfg.Analysis.Tolerance = tolerance
	}
	if flags.Changed("workers") {
		cfg.Analysis.Workers = workers
	}
	cfg.Mode = mode

	return cfg, cfg.Validate()
}

func buildSingle(cmd *cobra.Command, args []string) (*experiment.Single, *config.Config, error) {
	cfg, err := resolveConfig(cmd, args, config.ModeSingle)
	if err != nil {
		return nil, nil, err
	}
	built, err := experiment.NewRegistry().Build(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	single, err := experiment.AsSingle(built)
	return single, cfg, err
}

func shapeLabel(cfg *config.Config) string {
	if cfg.PointsFile != "" {
		return cfg.PointsFile
	}
	return cfg.Shape
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	start := time.Now()
	single, cfg, err := buildSingle(cmd, args)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	series := single.Series()
	discrete := single.Discrete()
	mse := single.Error()
	maxDev := fourier.MaxDeviation(single.Curve(), discrete)

	fmt.Println(viz.HeaderStyle.Render(fmt.Sprintf("%s  N=%d  M=%d", cfg.Name, series.MaxOrder(), discrete.Len())))
	fmt.Printf("completed in %v (%s)\n\n", elapsed, cfg.Analysis.Method)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "n\tre\tim\t|c|\t")
	mags := make([]float64, 0, series.Len())
	coeffs := series.Coefficients()
	for i, n := range series.Orders() {
		c := coeffs[i]
		mags = append(mags, cmplx.Abs(c))
		fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%.6f\t\n", n, real(c), imag(c), cmplx.Abs(c))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(viz.Metric("spectrum", viz.Sparkline(mags)))
	fmt.Println(viz.Metric("energy  ", fmt.Sprintf("%.6f", series.Energy())))
	fmt.Println(viz.Metric("mse     ", fmt.Sprintf("%.3e", mse)))
	fmt.Println(viz.Metric("max dev ", fmt.Sprintf("%.3e", maxDev)))

	if plot {
		canvas := viz.NewCanvas(60, 24)
		contour := single.Curve().Points()
		b := viz.Fit(0.05, contour, discrete.Points)
		canvas.DrawPath(contour, b, true)
		canvas.DrawPath(discrete.Points, b, false)
		fmt.Println()
		fmt.Print(canvas.String())
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.Run{
		Name:    cfg.Name,
		Shape:   shapeLabel(cfg),
		Mode:    cfg.Mode,
		Method:  cfg.Analysis.Method,
		Series:  series,
		Samples: discrete,
		Metrics: map[string]float64{
			"mse":           mse,
			"max_deviation": maxDev,
			"energy":        series.Energy(),
		},
	})
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args, config.ModeSweep)
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s over orders %d..%d...\n", cfg.Name, cfg.MinOrder, cfg.MaxOrder)
	start := time.Now()
	built, err := experiment.NewRegistry().Build(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	sw, err := experiment.AsSweep(built)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	orders := sw.Orders()
	errs := sw.Errors()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tTERMS\tMSE\tENERGY")
	logErrs := make([]float64, len(errs))
	metrics := make(map[string]float64, len(errs))
	for i, e := range sw.Entries() {
		fmt.Fprintf(w, "%d\t%d\t%.3e\t%.6f\n", e.Order, e.Series.Len(), errs[i], e.Series.Energy())
		logErrs[i] = math.Log10(math.Max(errs[i], 1e-300))
		metrics[fmt.Sprintf("mse_%d", e.Order)] = errs[i]
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(logErrs) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(logErrs,
			asciigraph.Height(12),
			asciigraph.Width(70),
			asciigraph.Caption(fmt.Sprintf("log10 mse, order %d..%d", orders[0], orders[len(orders)-1])),
		))
	}

	if noSave {
		return nil
	}
	top, _ := sw.Entry(sw.MaxOrder())
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.Run{
		Name:     cfg.Name,
		Shape:    shapeLabel(cfg),
		Mode:     cfg.Mode,
		Method:   cfg.Analysis.Method,
		MinOrder: sw.MinOrder(),
		Series:   top.Series,
		Samples:  top.Samples,
		Metrics:  metrics,
	})
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func runFrames(cmd *cobra.Command, args []string) error {
	single, cfg, err := buildSingle(cmd, args)
	if err != nil {
		return err
	}
	anim, err := single.Animation()
	if err != nil {
		return err
	}
	if every < 1 {
		every = 1
	}
	if frameSVGs != "" {
		if err := os.MkdirAll(frameSVGs, 0755); err != nil {
			return err
		}
	}

	contour := single.Curve().Points()
	last := anim.Frames() - 1

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAME\tT\tTIP\tPATH")
	var runErr error
	anim.Run(func(i int, f epicycle.Frame) bool {
		if i%every != 0 && i != last {
			return true
		}
		fmt.Fprintf(w, "%d\t%.4f\t%.4f%+.4fi\t%d\n", i, f.T, real(f.Tip), imag(f.Tip), len(anim.Path()))
		if frameSVGs == "" {
			return true
		}
		svg := export.FrameSVG(f, contour, anim.Path(), cfg.Render)
		path := filepath.Join(frameSVGs, fmt.Sprintf("frame_%05d.svg", i))
		if runErr = os.WriteFile(path, []byte(svg), 0644); runErr != nil {
			return false
		}
		return true
	})
	if err := w.Flush(); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}

	fmt.Printf("\n%d frames, %d epicycles, state %s\n", anim.Frames(), anim.Composer().Len(), anim.State())
	if frameSVGs != "" {
		fmt.Printf("frames written to %s\n", frameSVGs)
	}
	return nil
}

func runSVG(cmd *cobra.Command, args []string) error {
	single, cfg, err := buildSingle(cmd, args)
	if err != nil {
		return err
	}

	svg := export.ReconstructionSVG(single.Curve().Closed(), single.Discrete().Points, cfg.Render)
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}

	fmt.Printf("svg written to %s\n", svgOut)
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
	fmt.Fprintln(w, "ID\tSHAPE\tMODE\tTIME\tORDER\tSAMPLES\tMETHOD")

	for _, run := range runs {
		order := fmt.Sprintf("%d", run.MaxOrder)
		if run.Mode == config.ModeSweep {
			order = fmt.Sprintf("%d..%d", run.MinOrder, run.MaxOrder)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			run.ID,
			run.Shape,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			order,
			run.Samples,
			run.Method,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	discrete, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if discrete.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Println(viz.HeaderStyle.Render("run: " + meta.ID))
	fmt.Printf("shape: %s\n", meta.Shape)
	fmt.Printf("mode: %s\n", meta.Mode)
	fmt.Printf("order: %d (%d terms)\n", series.MaxOrder(), series.Len())
	fmt.Printf("samples: %d\n", discrete.Len())
	for name, val := range meta.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	xs := make([]float64, discrete.Len())
	ys := make([]float64, discrete.Len())
	for j, z := range discrete.Points {
		xs[j], ys[j] = real(z), imag(z)
	}
	for _, s := range []struct {
		data    []float64
		caption string
	}{{xs, "x(t)"}, {ys, "y(t)"}} {
		fmt.Println()
		fmt.Println(asciigraph.Plot(s.data,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption(s.caption),
		))
	}

	canvas := viz.NewCanvas(60, 24)
	canvas.DrawPath(discrete.Points, viz.Fit(0.05, discrete.Points), false)
	fmt.Println()
	fmt.Print(canvas.String())
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	data, err := st.Export(args[0])
	if err != nil {
		return err
	}
	if jsonOut == "" {
		return storage.WriteJSON(os.Stdout, data)
	}
	if err := storage.ExportJSON(jsonOut, data); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", jsonOut)
	return nil
}
