// Command fxrun renders a graph file with the ggfx pipeline engine.
//
//	fxrun -graph blur.hcl -out blur.png
//	fxrun -config fx.toml -frames 10
//	fxrun -graph blur.hcl -serialize blur.json
//	fxrun -config fx.toml -watch
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/ggfx"
	"github.com/gogpu/ggfx/config"
	"github.com/gogpu/ggfx/graphfile"
	"github.com/gogpu/ggfx/render"
	"github.com/gogpu/ggfx/serial"
	_ "github.com/gogpu/ggfx/shaders"
	_ "github.com/gogpu/ggfx/shaders/wgsl"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML or YAML config file")
		graphPath  = flag.String("graph", "", "HCL graph file (overrides config)")
		output     = flag.String("out", "", "output PNG (overrides config)")
		frames     = flag.Int("frames", 0, "number of frames to run (overrides config)")
		serialize  = flag.String("serialize", "", "write JSON records to this file instead of rendering (- for stdout)")
		watch      = flag.Bool("watch", false, "re-run whenever the graph file changes")
		list       = flag.Bool("list", false, "list registered shaders and exit")
	)
	flag.Parse()

	if *list {
		for _, name := range ggfx.Shaders() {
			fmt.Println(name)
		}
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("fxrun: %v", err)
		}
	}
	if *graphPath != "" {
		cfg.Graph = *graphPath
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *frames > 0 {
		cfg.Frames = *frames
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("fxrun: %v", err)
	}
	level, _ := cfg.Level()
	ggfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	job := func() error {
		if *serialize != "" {
			return writeRecords(ctx, cfg, *serialize)
		}
		return renderGraph(ctx, cfg)
	}

	if err := job(); err != nil {
		if !*watch {
			log.Fatalf("fxrun: %v", err)
		}
		log.Printf("fxrun: %v", err)
	}
	if *watch {
		if err := watchGraph(ctx, cfg.Graph, job); err != nil {
			log.Fatalf("fxrun: %v", err)
		}
	}
}

// graphFunc loads the graph file and the configured assets.
func graphFunc(cfg config.Config) (*graphfile.Graph, ggfx.GraphFunc, error) {
	g, err := graphfile.Load(cfg.Graph)
	if err != nil {
		return nil, nil, err
	}
	assets := make(map[string]render.Target, len(cfg.Assets))
	for name, path := range cfg.Assets {
		px, err := graphfile.LoadAsset(path, cfg.Width, cfg.Height)
		if err != nil {
			return nil, nil, err
		}
		assets[name] = px
	}
	build := func(b *ggfx.Builder, out ggfx.TargetResolver) error {
		for _, name := range slices.Sorted(maps.Keys(assets)) {
			b.Asset(name, assets[name])
		}
		return g.Build(b, out)
	}
	return g, build, nil
}

func renderGraph(ctx context.Context, cfg config.Config) error {
	g, build, err := graphFunc(cfg)
	if err != nil {
		return err
	}
	defer g.Destroy()

	if cfg.Backend == config.BackendNull {
		p := ggfx.NewPipeline(render.NullEnvironment{}, ggfx.WithBufferSize(cfg.Width, cfg.Height), ggfx.WithLabel("dry-run"))
		defer p.Destroy()
		b := ggfx.NewBuilder(p)
		if err := build(b, ggfx.NewBufferReference("output")); err != nil {
			return err
		}
		if err := b.Err(); err != nil {
			return err
		}
		if err := p.Collect(ctx, nil); err != nil {
			return err
		}
		log.Printf("fxrun: %s: %d steps configured (dry run)", cfg.Graph, p.Len())
		return nil
	}

	out := render.NewPixmapTarget(cfg.Width, cfg.Height)
	fx := ggfx.NewGraphEffect(render.NewSoftwareEnvironment(out), build, ggfx.WithLabel(filepath.Base(cfg.Graph)))
	defer fx.Destroy()

	start := time.Now()
	for range cfg.Frames {
		if err := fx.DrawTo(ctx, out); err != nil {
			return err
		}
	}
	if err := savePNG(cfg.Output, out); err != nil {
		return err
	}
	log.Printf("fxrun: %s -> %s (%dx%d, %d frames, %v)", cfg.Graph, cfg.Output,
		cfg.Width, cfg.Height, cfg.Frames, time.Since(start).Round(time.Millisecond))
	return nil
}

func savePNG(path string, t *render.PixmapTarget) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, t.Image()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeRecords(ctx context.Context, cfg config.Config, path string) error {
	g, build, err := graphFunc(cfg)
	if err != nil {
		return err
	}
	defer g.Destroy()

	records, err := serial.Serialize(build, serial.WithSize(cfg.Width, cfg.Height), serial.WithContext(ctx))
	if err != nil {
		return err
	}
	if path == "-" {
		return serial.Encode(os.Stdout, records)
	}
	if err := serial.WriteFile(path, records); err != nil {
		return err
	}
	log.Printf("fxrun: %d records written to %s", len(records), path)
	return nil
}

// watchGraph runs job every time path is written, until ctx is done.
func watchGraph(ctx context.Context, path string, job func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Editors often replace files on save, so watch the directory.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)
	log.Printf("fxrun: watching %s", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := job(); err != nil {
				log.Printf("fxrun: %v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if !errors.Is(err, fsnotify.ErrEventOverflow) {
				return err
			}
			log.Printf("fxrun: %v", err)
		}
	}
}
