package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbital/internal/config"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	// Job parameters
	atomicNumber float64
	basisName    string
	span         float64
	steps        int
	samplingName string
	fractions    []float64
	normalize    bool
	channelSel   string
	zeroUniform  bool
	modeName     string
	maxOpacity   float64
	opacityExp   float64
	clip         bool
	workers      int
	themeName    string
	// Output
	width     int
	height    int
	sliceK    int
	outFile   string
	noSave    bool
	withField bool
	radialMax float64
	// Sweep
	sweepSpans []float64
	sweepSteps []int
	tolerance  float64
)

// main registers the orbital commands and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "orbital",
		Short:        "hydrogen orbital evaluation and preview",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "run directory (default from config, then ./runs)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [n l m]",
		Short: "evaluate an orbital and save the run",
		Args:  stateArgs,
		RunE:  runOrbital,
	}
	addJobFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not write a run directory")

	thresholdsCmd := &cobra.Command{
		Use:   "thresholds [n l m]",
		Short: "density levels enclosing each probability fraction",
		Args:  stateArgs,
		RunE:  showThresholds,
	}
	addJobFlags(thresholdsCmd)

	radialCmd := &cobra.Command{
		Use:   "radial n l",
		Short: "plot the radial probability distribution",
		Args:  cobra.ExactArgs(2),
		RunE:  plotRadial,
	}
	radialCmd.Flags().Float64Var(&atomicNumber, "z", config.DefaultAtomicNumber, "nuclear charge")
	radialCmd.Flags().Float64Var(&radialMax, "rmax", 0, "largest radius (default (1.5n)²)")
	radialCmd.Flags().StringVar(&outFile, "svg", "", "also write the curve as SVG")
	radialCmd.Flags().StringVar(&themeName, "theme", "nebula", "color theme")

	previewCmd := &cobra.Command{
		Use:   "preview [n l m]",
		Short: "print a Braille preview of the scene",
		Args:  stateArgs,
		RunE:  previewOrbital,
	}
	addJobFlags(previewCmd)
	previewCmd.Flags().IntVar(&width, "width", 60, "preview width in characters")
	previewCmd.Flags().IntVar(&height, "height", 30, "preview height in characters")

	viewCmd := &cobra.Command{
		Use:   "view [n l m]",
		Short: "open the terminal viewer",
		Args:  stateArgs,
		RunE:  viewOrbital,
	}
	addJobFlags(viewCmd)

	sliceCmd := &cobra.Command{
		Use:   "slice [n l m]",
		Short: "write one z plane of the colored field as SVG",
		Args:  stateArgs,
		RunE:  sliceOrbital,
	}
	addJobFlags(sliceCmd)
	sliceCmd.Flags().IntVar(&sliceK, "k", -1, "z index of the plane (default middle)")
	sliceCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().BoolVar(&withField, "field", false, "include the sampled field")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the sampled field as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [orbital]",
		Short: "list presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration as YAML",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	addJobFlags(initConfigCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [n l m]",
		Short: "find the smallest grid that reproduces the exact moments",
		Args:  stateArgs,
		RunE:  sweepGrid,
	}
	addJobFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&sweepSpans, "spans", nil, "spans to try (default 1x, 1.5x and 2x the default span)")
	sweepCmd.Flags().IntSliceVar(&sweepSteps, "step-list", []int{21, 41, 61, 81}, "steps per axis to try")
	sweepCmd.Flags().Float64Var(&tolerance, "tol", 0.02, "accepted error in norm and <r>")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a YAML scenario of jobs and save each run",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not write run directories")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time evaluation across states and worker counts",
		RunE:  benchEvaluate,
	}
	benchCmd.Flags().IntVar(&steps, "steps", 80, "grid steps per axis")
	benchCmd.Flags().IntVar(&workers, "workers", 4, "largest worker count")

	rootCmd.AddCommand(runCmd, thresholdsCmd, radialCmd, previewCmd, viewCmd, sliceCmd,
		listCmd, exportJSONCmd, exportCSVCmd, presetsCmd, initConfigCmd, benchCmd, sweepCmd, batchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addJobFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "preset as orbital/name, e.g. 2p/cutaway")
	f.Float64Var(&atomicNumber, "z", def.AtomicNumber, "nuclear charge")
	f.StringVar(&basisName, "basis", def.Basis.String(), "complex or real")
	f.Float64Var(&span, "span", 0, "grid half-width in Bohr radii (default (1.5n)²)")
	f.IntVar(&steps, "steps", def.Grid.Steps, "grid steps per axis")
	f.StringVar(&samplingName, "sampling", def.Grid.Sampling.String(), "uniform, stretched or spherical")
	f.Float64SliceVar(&fractions, "fractions", def.Fractions, "enclosed probability fractions")
	f.BoolVar(&normalize, "normalize", false, "take fractions relative to the sampled total")
	f.StringVar(&channelSel, "channels", "", "magnitude channels: any of s, v, a")
	f.BoolVar(&zeroUniform, "zero-uniform", false, "map uniform magnitude to 0 instead of 1")
	f.StringVar(&modeName, "mode", def.Mode.String(), "contour, multi-contour or volume")
	f.Float64Var(&maxOpacity, "max-opacity", def.Render.MaxOpacity, "largest volume opacity")
	f.Float64Var(&opacityExp, "opacity-exp", def.Render.OpacityExponent, "volume opacity exponent")
	f.BoolVar(&clip, "clip", false, "cut away the x>0, y>0, z>0 octant")
	f.IntVar(&workers, "workers", def.Workers, "evaluation goroutines")
	f.StringVar(&themeName, "theme", def.Render.Theme, "color theme")
}

func stateArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 3 {
		return fmt.Errorf("expected n l m or no arguments, got %d", len(args))
	}
	return nil
}
