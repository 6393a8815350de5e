package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/snowfetti/internal/config"
	"github.com/san-kum/snowfetti/internal/export"
	"github.com/san-kum/snowfetti/internal/metrics"
	"github.com/san-kum/snowfetti/internal/render"
	"github.com/san-kum/snowfetti/internal/storage"
	"github.com/san-kum/snowfetti/internal/viz"
	"github.com/spf13/cobra"
)

// Pixel size for headless surfaces when neither flags nor config set one.
const (
	headlessWidth  = 320
	headlessHeight = 200
)

var benchSurface string

func headlessSize(cfg *config.Config) (int, int) {
	w, h := cfg.Width, cfg.Height
	if w == 0 {
		w = headlessWidth
	}
	if h == 0 {
		h = headlessHeight
	}
	return w, h
}

func recordGIF(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	out := "snowfetti.gif"
	if len(args) > 0 {
		out = args[0]
	}

	rc, err := cfg.RenderConfig()
	if err != nil {
		return err
	}
	rc.Width, rc.Height = headlessSize(cfg)

	raster := export.NewRaster(rc.Width, rc.Height, cfg.ThemeOrDefault().Background)
	delay := 100 * max(every, 1) / cfg.FPS
	rec := export.NewGIFRecorder(raster, export.GIFOptions{Every: every, Scale: scale, Delay: delay})

	queue := render.NewFrameQueue()
	loop, err := render.Mount(raster, queue, rc, render.WithLogger(logger), render.WithObserver(rec))
	if err != nil {
		return fmt.Errorf("failed to mount: %w", err)
	}
	defer loop.Stop()

	fmt.Printf("recording %d frames (%dx%d, %d particles)...\n", recordFrames, rc.Width, rc.Height, rc.Amount)
	if err := queue.Run(cmd.Context(), 0, recordFrames); err != nil {
		return err
	}
	if err := rec.Save(out); err != nil {
		return fmt.Errorf("failed to write gif: %w", err)
	}
	fmt.Printf("wrote %d frames to %s\n", rec.Frames(), out)
	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	rc, err := cfg.RenderConfig()
	if err != nil {
		return err
	}
	if rc.Width == 0 {
		rc.Width = cols * 2
	}
	if rc.Height == 0 {
		rc.Height = rows * 4
	}

	theme := cfg.ThemeOrDefault()
	canvas := viz.NewCanvas(cols, rows, theme)
	queue := render.NewFrameQueue()
	loop, err := render.Mount(canvas, queue, rc, render.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to mount: %w", err)
	}
	if err := queue.Run(cmd.Context(), 0, snapshotFrames); err != nil {
		return err
	}
	loop.Stop()

	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.CanvasToSVG(canvas, 4, theme.Background)), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	if vecOut != "" {
		w, h := loop.Size()
		if err := os.WriteFile(vecOut, []byte(export.ParticlesToSVG(loop.Particles(), w, h, theme.Background)), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", vecOut)
	}
	if svgOut == "" && vecOut == "" {
		fmt.Println(canvas.Render())
	}
	return nil
}

// benchLoop draws every profile kind at every amount back to back and
// reports the frame cost.
func benchLoop(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	profiles := [][]string{{"snow"}, {"confetti"}}
	if cmd.Flags().Changed("profile") || configFile != "" {
		profiles = [][]string{cfg.Profile}
	}

	var store *storage.Store
	if benchSave {
		store = storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROFILE\tAMOUNT\tSURFACE\tFRAMES\tTIME\tFRAME_MS\tPARTICLES/SEC\tRECYCLE\tID")

	for _, p := range profiles {
		for _, n := range benchAmounts {
			c := *cfg
			c.Profile = p
			c.Amount = n
			rc, err := c.RenderConfig()
			if err != nil {
				return err
			}
			rc.Width, rc.Height = headlessSize(&c)

			surface, err := benchTarget(benchSurface, rc.Width, rc.Height, c.ThemeOrDefault())
			if err != nil {
				return err
			}

			set := metrics.Default()
			times := metrics.NewFrameTimes(0)
			queue := render.NewFrameQueue()

			start := time.Now()
			loop, err := render.Mount(surface, queue, rc, render.WithObserver(set), render.WithObserver(times))
			if err != nil {
				return err
			}
			if err := queue.Run(cmd.Context(), 0, benchFrames); err != nil {
				return err
			}
			loop.Stop()
			elapsed := time.Since(start)

			values := set.Values()
			id := "-"
			if store != nil {
				id, err = store.Save(storage.SessionMetadata{
					Profile: p,
					Amount:  n,
					Width:   rc.Width,
					Height:  rc.Height,
					Surface: benchSurface,
					Seed:    c.Seed,
					Metrics: values,
				}, times.Samples())
				if err != nil {
					return fmt.Errorf("failed to save session: %w", err)
				}
			}

			fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%v\t%.3f\t%.0f\t%.4f\t%s\n",
				strings.Join(p, ","),
				n,
				benchSurface,
				loop.Frames(),
				elapsed.Round(time.Millisecond),
				values["frame_ms"],
				values["particles_per_sec"],
				values["recycle_rate"],
				id,
			)
		}
	}
	return w.Flush()
}

func benchTarget(name string, w, h int, theme viz.Theme) (render.Surface, error) {
	switch name {
	case "raster":
		return export.NewRaster(w, h, theme.Background), nil
	case "braille":
		c := viz.NewCanvas(1, 1, theme)
		c.Resize(w, h)
		return c, nil
	}
	return nil, fmt.Errorf("unknown surface: %s (available: raster, braille)", name)
}

func listSessions(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	sessions, err := store.List()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no sessions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROFILE\tAMOUNT\tSIZE\tSURFACE\tFRAMES\tFRAME_MS\tTIME")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%d\t%dx%d\t%s\t%d\t%.3f\t%s\n",
			s.ID,
			strings.Join(s.Profile, ","),
			s.Amount,
			s.Width, s.Height,
			s.Surface,
			s.Frames,
			s.Metrics["frame_ms"],
			s.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

func plotSession(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := store.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("session %s has no frames", meta.ID)
	}

	ms := make([]float64, len(samples))
	recycled := make([]float64, len(samples))
	for i, s := range samples {
		ms[i] = float64(s.Elapsed) / float64(time.Millisecond)
		recycled[i] = float64(s.Recycled)
	}

	fmt.Printf("session: %s (%s, %d particles, %dx%d)\n\n",
		meta.ID, strings.Join(meta.Profile, ","), meta.Amount, meta.Width, meta.Height)

	fmt.Println(asciigraph.Plot(ms,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("frame time (ms)"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(recycled,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("recycled per frame"),
	))
	return nil
}

func exportSession(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	if len(args) < 2 {
		return store.Export(args[0], os.Stdout)
	}
	if err := store.ExportFile(args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", args[1])
	return nil
}
