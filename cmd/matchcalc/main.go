// Package main provides the matchcalc CLI for L-C matching sweeps.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/RMahshie/matchviz/internal/config"
	"github.com/RMahshie/matchviz/internal/export"
	"github.com/RMahshie/matchviz/internal/processing"
	"github.com/RMahshie/matchviz/internal/render"
	"github.com/RMahshie/matchviz/internal/sweep"
	"github.com/RMahshie/matchviz/internal/tui"
)

const (
	defaultTop = 10
	// rows taken by the title, best line and table borders
	tableChrome = 8
)

var (
	targetResistance float64
	targetReactance  float64
	targetFreqGHz    float64
	verbose          bool

	tableTop int
	tableAll bool

	plotOut    string
	plotWidth  int
	plotHeight int

	exportOut string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	limits := sweep.DefaultLimits()

	rootCmd := &cobra.Command{
		Use:   "matchcalc",
		Short: "L-C matching sweep for a 50 Ohm load",
		Long: "matchcalc sweeps a shunt inductor across 0.5..10 nH and, for each value, derives the series\n" +
			"capacitor that matches a 50 Ohm load to the target impedance.",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runTableCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.Float64VarP(&targetResistance, "resistance", "r", limits.ResistanceOhms.Default, "target resistance in Ohm")
	pf.Float64VarP(&targetReactance, "reactance", "x", limits.ReactanceOhms.Default, "target reactance in Ohm")
	pf.Float64VarP(&targetFreqGHz, "frequency-ghz", "f", limits.FrequencyGHz.Default, "frequency in GHz")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.Flags().IntVarP(&tableTop, "top", "n", defaultTop, "number of best samples to print")
	rootCmd.Flags().BoolVar(&tableAll, "all", false, "print every sample in inductance order")

	rootCmd.AddCommand(newPlotCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newTUICmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// setup configures logging and applies the config file to flags the user did not set.
func setup(cmd *cobra.Command, _ []string) error {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(level).
		With().Timestamp().Logger()

	path := config.DefaultConfigPath()
	fileCfg, err := config.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log.Debug().Str("path", path).Msg("Config file checked")

	applyFloatConfig(cmd, "resistance", &targetResistance, fileCfg.Target.Resistance)
	applyFloatConfig(cmd, "reactance", &targetReactance, fileCfg.Target.Reactance)
	applyFloatConfig(cmd, "frequency-ghz", &targetFreqGHz, fileCfg.Target.FrequencyGHz)
	applyIntConfig(cmd, "top", &tableTop, fileCfg.Output.Top)
	applyIntConfig(cmd, "width", &plotWidth, fileCfg.Output.Width)
	applyIntConfig(cmd, "height", &plotHeight, fileCfg.Output.Height)
	return nil
}

func runSweep(ctx context.Context) (*sweep.Result, error) {
	calc, err := sweep.NewCalculator(sweep.DefaultGrid())
	if err != nil {
		return nil, err
	}
	run, err := processing.NewSweepService(calc).Sweep(ctx, sweep.TargetFromGHz(targetResistance, targetReactance, targetFreqGHz))
	if err != nil {
		return nil, err
	}
	return run.Result, nil
}

func runTableCmd(cmd *cobra.Command, _ []string) error {
	res, err := runSweep(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, res.Title()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if best, ok := res.Best(); ok {
		if _, err := fmt.Fprintf(out, "Best: L = %.4g nH, C = %s, |Zin - Ztarget| = %.4g Ohm\n",
			best.InductanceNH(), formatCapacitance(best.Capacitance), best.MatchErrorOhms); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if n := res.NonFinite(); n > 0 {
		log.Warn().Int("nonFinite", n).Msg("Some samples are not finite")
	}

	points := res.Points
	if !tableAll {
		points = res.Ranked(tableRows(cmd, out))
	}
	if err := export.WriteTable(out, points); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

// tableRows returns --top, shrunk to the terminal height when printing to a
// terminal and --top was left at its default.
func tableRows(cmd *cobra.Command, out io.Writer) int {
	if cmd.Flags().Changed("top") {
		return tableTop
	}
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return tableTop
	}
	_, height, err := term.GetSize(int(f.Fd()))
	if err != nil || height-tableChrome < 1 {
		return tableTop
	}
	return min(tableTop, height-tableChrome)
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render the L vs C scatter chart to a PNG or SVG file",
		Args:  cobra.NoArgs,
		RunE:  runPlotCmd,
	}
	cmd.Flags().StringVarP(&plotOut, "out", "o", "sweep.png", "output file (.png or .svg)")
	cmd.Flags().IntVar(&plotWidth, "width", render.DefaultWidth, "image width in pixels")
	cmd.Flags().IntVar(&plotHeight, "height", render.DefaultHeight, "image height in pixels")
	return cmd
}

func runPlotCmd(cmd *cobra.Command, _ []string) error {
	format, err := render.ParseFormat(strings.TrimPrefix(filepath.Ext(plotOut), "."))
	if err != nil {
		return err
	}

	res, err := runSweep(cmd.Context())
	if err != nil {
		return err
	}

	if err := writeFile(plotOut, func(w io.Writer) error {
		return render.Scatter(w, res, render.Options{Width: plotWidth, Height: plotHeight, Format: format})
	}); err != nil {
		return err
	}
	log.Info().Str("path", plotOut).Str("format", string(format)).Msg("Wrote plot")
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every sample to an XLSX or TSV file",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVarP(&exportOut, "out", "o", "sweep.xlsx", "output file (.xlsx or .tsv)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	if _, err := export.FormatFromPath(exportOut); err != nil {
		return err
	}

	res, err := runSweep(cmd.Context())
	if err != nil {
		return err
	}
	if err := export.Save(exportOut, res); err != nil {
		return err
	}
	log.Info().Str("path", exportOut).Int("samples", len(res.Points)).Msg("Wrote export")
	return nil
}

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Adjust the target interactively",
		Args:  cobra.NoArgs,
		RunE:  runTUICmd,
	}
}

func runTUICmd(_ *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("tui needs an interactive terminal")
	}

	calc, err := sweep.NewCalculator(sweep.DefaultGrid())
	if err != nil {
		return err
	}

	// the TUI owns the screen, keep sweep logs quiet
	log.Logger = log.Logger.Level(zerolog.WarnLevel)

	model := tui.NewModel(calc, sweep.DefaultLimits(), sweep.TargetFromGHz(targetResistance, targetReactance, targetFreqGHz))
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	path, err := ensureConfigFile()
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	c := exec.Command(parts[0], append(parts[1:], path)...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the default template unless a config file exists.
func ensureConfigFile() (string, error) {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.DefaultFileTemplate), 0o644); err != nil {
			return "", fmt.Errorf("failed to write config: %w", err)
		}
		log.Info().Str("path", path).Msg("Created config file")
	}
	return path, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func formatCapacitance(c sweep.Capacitance) string {
	if c.Open {
		return "no capacitor"
	}
	return fmt.Sprintf("%.4g pF", c.Picofarads())
}

// applyFloatConfig copies a config file value unless the flag was given.
func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if flag := cmd.Flags().Lookup(name); flag == nil || flag.Changed {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if flag := cmd.Flags().Lookup(name); flag == nil || flag.Changed {
		return
	}
	*target = *value
}
