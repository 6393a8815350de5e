package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/snowfetti/internal/config"
	"github.com/san-kum/snowfetti/internal/overlay"
	"github.com/san-kum/snowfetti/internal/particle"
	"github.com/san-kum/snowfetti/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	mount      string
	profile    []string
	amount     int
	fps        int
	theme      string
	seed       int64
	drift      float64
	width      int
	height     int
	logFile    string
	verbose    bool
	// Host content for the overlay
	hostFile string
	// Headless output
	recordFrames   int
	snapshotFrames int
	benchFrames    int
	every          int
	scale          int
	cols           int
	rows           int
	svgOut         string
	vecOut         string
	// Benchmark
	benchAmounts []int
	benchSave    bool
)

const banner = `snowfetti

particles drifting over your terminal.
move the pointer to steer the wind, q to quit.`

// main registers the snowfetti commands and runs the overlay when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:          "snowfetti",
		Short:        "snow and confetti over your terminal",
		SilenceUsage: true,
		RunE:         runOverlay,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".snowfetti", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&mount, "mount", "", "mount preset (component, raw)")
	pf.StringSliceVar(&profile, "profile", nil, "particle profile, e.g. snow or confetti,snow")
	pf.IntVar(&amount, "amount", config.DefaultAmount, "number of particles")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&theme, "theme", "", "color theme")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = clock)")
	pf.Float64Var(&drift, "drift", 0, "initial horizontal drift")
	pf.IntVar(&width, "width", 0, "surface width in pixels (0 = viewport)")
	pf.IntVar(&height, "height", 0, "surface height in pixels (0 = viewport)")
	pf.StringVar(&logFile, "log", "", "write logs to this file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.Flags().StringVar(&hostFile, "file", "", "show this file under the overlay")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the overlay over a text host",
		Args:  cobra.NoArgs,
		RunE:  runOverlay,
	}
	runCmd.Flags().StringVar(&hostFile, "file", "", "show this file under the overlay")

	recordCmd := &cobra.Command{
		Use:   "record [out.gif]",
		Short: "render frames headless into an animated GIF",
		Args:  cobra.MaximumNArgs(1),
		RunE:  recordGIF,
	}
	recordCmd.Flags().IntVar(&recordFrames, "frames", 120, "frames to render")
	recordCmd.Flags().IntVar(&every, "every", 2, "capture every n-th frame")
	recordCmd.Flags().IntVar(&scale, "scale", 1, "output scale")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render frames headless and print the last one",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	snapshotCmd.Flags().IntVar(&snapshotFrames, "frames", 60, "frames to render")
	snapshotCmd.Flags().IntVar(&cols, "cols", overlay.DefaultCols, "terminal columns")
	snapshotCmd.Flags().IntVar(&rows, "rows", overlay.DefaultRows, "terminal rows")
	snapshotCmd.Flags().StringVar(&svgOut, "svg", "", "write the braille frame as svg")
	snapshotCmd.Flags().StringVar(&vecOut, "vector", "", "write the particles as vector svg")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the frame loop",
		Args:  cobra.NoArgs,
		RunE:  benchLoop,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 300, "frames per case")
	benchCmd.Flags().IntSliceVar(&benchAmounts, "amounts", []int{100, 800, 5000}, "particle counts")
	benchCmd.Flags().BoolVar(&benchSave, "save", false, "store sessions in the data directory")
	benchCmd.Flags().StringVar(&benchSurface, "surface", "raster", "surface to draw on (raster, braille)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored benchmark sessions",
		Args:  cobra.NoArgs,
		RunE:  listSessions,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [session_id]",
		Short: "plot frame times of a session",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSession,
	}

	exportCmd := &cobra.Command{
		Use:   "export [session_id] [out.json]",
		Short: "export a session as json",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportSession,
	}

	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "list particle profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, k := range particle.Kinds() {
				fmt.Printf("  %s\n", k)
			}
			return nil
		},
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list color themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range viz.Themes {
				fmt.Printf("  %-8s snow %s  confetti %s\n", t.Name, t.Snow, strings.Join(t.Confetti, " "))
			}
			return nil
		},
	}

	mountsCmd := &cobra.Command{
		Use:   "mounts",
		Short: "list mount presets",
		Args:  cobra.NoArgs,
		RunE:  listMounts,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved config as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, recordCmd, snapshotCmd, benchCmd, listCmd, plotCmd, exportCmd, profilesCmd, themesCmd, mountsCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// resolveConfig layers mount preset, config file and changed flags, in that
// order. A mount key in the config file wins over --mount.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if mount != "" {
		cfg = config.GetMount(mount)
		if cfg == nil {
			return nil, fmt.Errorf("%w: %s (available: %v)", config.ErrUnknownMount, mount, config.ListMounts())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("profile") {
		cfg.Profile = profile
	}
	if flags.Changed("amount") {
		cfg.Amount = amount
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("drift") {
		cfg.Drift = drift
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger logs to logFile, or nowhere: the overlay owns the terminal.
func newLogger() (*slog.Logger, func(), error) {
	if logFile == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log: %w", err)
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}

func runOverlay(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	content := banner
	if hostFile != "" {
		data, err := os.ReadFile(hostFile)
		if err != nil {
			return err
		}
		content = string(data)
	}

	m, err := overlay.Decorate(overlay.NewStaticHost(content), cfg, overlay.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to mount overlay: %w", err)
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listMounts(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MOUNT\tAMOUNT\tPROFILE\tZ\tPOINTER")
	for _, name := range config.ListMounts() {
		m := config.GetMount(name)
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%s\n",
			name,
			m.Amount,
			strings.Join(m.Profile, ","),
			m.Styles.ZIndex,
			m.Styles.PointerEvents,
		)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	path := "snowfetti.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
