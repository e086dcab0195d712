package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbital/internal/analysis"
	"github.com/san-kum/orbital/internal/automation"
	"github.com/san-kum/orbital/internal/config"
	"github.com/san-kum/orbital/internal/pipeline"
	"github.com/san-kum/orbital/internal/quantum"
	"github.com/san-kum/orbital/internal/render"
	"github.com/san-kum/orbital/internal/storage"
	"github.com/san-kum/orbital/internal/sweep"
	"github.com/san-kum/orbital/internal/tui"
	"github.com/san-kum/orbital/internal/wavefunction"
)

func execute(cmd *cobra.Command, args []string) (*config.Config, *pipeline.Result, error) {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	res, err := pipeline.New(pipeline.WithLogger(slog.Default())).Run(cfg.Job())
	if err != nil {
		return nil, nil, err
	}
	return cfg, res, nil
}

func runOrbital(cmd *cobra.Command, args []string) error {
	cfg, res, err := execute(cmd, args)
	if err != nil {
		return err
	}
	st := render.NewStyles(render.GetTheme(cfg.Render.Theme))
	printSummary(st, res)

	if noSave {
		return nil
	}
	store := storage.New(cfg.DataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(res)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	size := "?"
	if info, err := os.Stat(store.FieldPath(runID)); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}
	fmt.Printf("%s %s %s\n", st.Label.Render("saved"), st.Value.Render(runID), st.Muted.Render("("+size+")"))
	return nil
}

func printSummary(st render.Styles, res *pipeline.Result) {
	job := res.Job
	fmt.Println(st.Title.Render(fmt.Sprintf("%s  %s  Z=%g  %s", job.State.Label(), job.State, job.AtomicNumber, job.Basis)))
	row := func(label, value string) {
		fmt.Printf("%s %s\n", st.Label.Render(fmt.Sprintf("%-10s", label)), st.Value.Render(value))
	}
	row("grid", fmt.Sprintf("%s, %s points, span %.2f", res.Grid.Sampling, humanize.Comma(int64(res.Grid.Len())), job.EffectiveSpan()))
	row("norm", fmt.Sprintf("%.5f", res.Norm))
	row("<r>", fmt.Sprintf("%.4f (exact %.4f)", res.MeanRadius,
		analysis.ExpectedMeanRadius(job.State.N, job.State.L, job.AtomicNumber)))
	for _, l := range res.Levels {
		value := fmt.Sprintf("%.4e  (%s cells)", l.Density, humanize.Comma(int64(l.Cells)))
		if l.Saturated {
			value += "  " + st.Warning.Render("not reached")
		}
		row(fmt.Sprintf("p=%.3f", l.Fraction), value)
	}
	row(job.Mode.String(), fmt.Sprintf("%s points", humanize.Comma(int64(len(res.Scene.Points)))))
	row("elapsed", res.Elapsed.Round(time.Millisecond).String())
}

func showThresholds(cmd *cobra.Command, args []string) error {
	_, res, err := execute(cmd, args)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRACTION\tDENSITY\tENCLOSED\tCELLS\tSATURATED")
	for _, l := range res.Levels {
		fmt.Fprintf(w, "%.4f\t%.6e\t%.4f\t%d\t%v\n", l.Fraction, l.Density, l.Enclosed, l.Cells, l.Saturated)
	}
	return w.Flush()
}

func plotRadial(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	l, err := strconv.Atoi(args[1])
	if err != nil {
		return err
	}
	s := quantum.State{N: n, L: l}
	rmax := radialMax
	if rmax == 0 {
		rmax = pipeline.DefaultSpan(n)
	}

	r, p, err := analysis.RadialDistribution(s, atomicNumber, rmax, 400)
	if err != nil {
		return err
	}
	peak := analysis.MostProbableRadius(r, p)
	graph := asciigraph.Plot(p,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("P(r) for %s, r in [0, %.1f], peak at r=%.3f, <r>=%.3f",
			s.Label(), rmax, peak, analysis.ExpectedMeanRadius(n, l, atomicNumber))),
	)
	fmt.Println(graph)
	for _, frac := range []float64{0.5, 0.9, 0.99} {
		re, err := analysis.EnclosedRadius(s, atomicNumber, frac, 0)
		if err != nil {
			return err
		}
		fmt.Printf("  %2.0f%% within r=%.3f\n", frac*100, re)
	}

	if outFile != "" {
		svg := render.CurveSVG(r, p, 800, 400, render.GetTheme(themeName))
		if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
	}
	return nil
}

func previewOrbital(cmd *cobra.Command, args []string) error {
	_, res, err := execute(cmd, args)
	if err != nil {
		return err
	}
	if res.Scene.Empty() {
		return fmt.Errorf("nothing to draw for %s: every level lies above the sampled density", res.Job.State.Label())
	}
	cam := render.NewCamera()
	cam.Fit(res.Scene.Extent)
	canvas := render.Preview(res.Scene, cam, width, height)
	render.DrawAxes(canvas, cam, res.Scene.Extent/3)
	fmt.Print(canvas.Styled())
	return nil
}

func viewOrbital(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	job := cfg.Job()
	if err := job.Validate(); err != nil {
		return err
	}
	// Logging would corrupt the alternate screen.
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return tui.Run(job, pipeline.New(pipeline.WithLogger(quiet)), render.GetTheme(cfg.Render.Theme))
}

func sliceOrbital(cmd *cobra.Command, args []string) error {
	cfg, res, err := execute(cmd, args)
	if err != nil {
		return err
	}
	k := sliceK
	if k < 0 {
		k = res.Grid.Shape[2] / 2
	}
	svg, err := render.SliceSVG(res.Grid, res.Colors, k, 8, render.GetTheme(cfg.Render.Theme))
	if err != nil {
		return err
	}
	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	slog.Info("slice written", "path", outFile, "k", k)
	return nil
}

func openStore() *storage.Store {
	dir := dataDir
	if dir == "" {
		dir = config.DefaultDataDir
	}
	return storage.New(dir)
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := openStore().List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tORBITAL\tMODE\tPOINTS\tNORM\tCREATED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4f\t%s\n",
			r.ID, r.Label, r.Mode, humanize.Comma(int64(r.Points)), r.Norm, humanize.Time(r.Timestamp))
	}
	return w.Flush()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return openStore().ExportJSON(os.Stdout, args[0], withField)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return openStore().ExportCSV(os.Stdout, args[0])
}

func listPresets(cmd *cobra.Command, args []string) error {
	orbitals := config.ListOrbitals()
	if len(args) == 1 {
		orbitals = args
	}
	for _, orbital := range orbitals {
		presets := config.ListPresets(orbital)
		if len(presets) == 0 {
			fmt.Printf("no presets for orbital: %s\n", orbital)
			continue
		}
		fmt.Printf("%s: %s\n", orbital, strings.Join(presets, ", "))
	}
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func benchEvaluate(cmd *cobra.Command, args []string) error {
	states := []quantum.State{{N: 1}, {N: 2, L: 1, M: 1}, {N: 3, L: 2, M: -2}, {N: 4, L: 3, M: 0}}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATE\tWORKERS\tPOINTS\tTIME\tRATE")
	for _, s := range states {
		g, err := pipeline.Sample(pipeline.Job{State: s, Steps: steps})
		if err != nil {
			return err
		}
		for k := 1; k <= workers; k *= 2 {
			start := time.Now()
			if _, err := wavefunction.Evaluate(s, g, wavefunction.WithWorkers(k)); err != nil {
				return err
			}
			elapsed := time.Since(start)
			rate := float64(g.Len()) / elapsed.Seconds()
			fmt.Fprintf(w, "%s\t%d\t%s\t%v\t%s\n",
				s.Label(), k, humanize.Comma(int64(g.Len())), elapsed.Round(time.Microsecond), humanize.SI(rate, "pt/s"))
		}
	}
	return w.Flush()
}

func sweepGrid(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	job := cfg.Job()
	spans := sweepSpans
	if len(spans) == 0 {
		d := pipeline.DefaultSpan(job.State.N)
		spans = []float64{d, 1.5 * d, 2 * d}
	}

	runner := pipeline.New(pipeline.WithLogger(slog.Default()))
	samples, err := sweep.New(spans, sweepSteps).Run(context.Background(), job, runner.Run)
	if err != nil {
		return err
	}
	best, ok := sweep.Best(samples, tolerance)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPAN\tSTEPS\tPOINTS\tNORM\t<r>\tERROR\t")
	for _, s := range samples {
		mark := ""
		if s == best {
			mark = "*"
		}
		fmt.Fprintf(w, "%.2f\t%d\t%s\t%.5f\t%.4f\t%.2e\t%s\n",
			s.Span, s.Steps, humanize.Comma(int64(s.Points)), s.Norm, s.MeanRadius, s.Error(), mark)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if !ok {
		slog.Warn("no grid within tolerance", "tol", tolerance, "best_error", best.Error())
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	var store *storage.Store
	if !noSave {
		store = openStore()
		if err := store.Init(); err != nil {
			return err
		}
	}

	logger := slog.Default()
	outcomes, err := automation.RunScenario(context.Background(), scenario, pipeline.New(pipeline.WithLogger(logger)), store, logger)
	for _, o := range outcomes {
		fmt.Printf("%-16s %-6s norm=%.4f points=%s %s\n", o.Step, o.Result.Job.State.Label(), o.Result.Norm,
			humanize.Comma(int64(len(o.Result.Scene.Points))), o.RunID)
	}
	return err
}
