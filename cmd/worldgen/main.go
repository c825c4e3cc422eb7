// Command worldgen builds an island world headlessly, prints a summary, and
// optionally writes the debug map PNGs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"islegen/internal/render"
	"islegen/internal/store"
	"islegen/internal/worldgen"
	"islegen/pkg/world"
)

// overrideFlags collects repeatable -set key=value pairs.
type overrideFlags map[string]string

func (o overrideFlags) String() string {
	pairs := make([]string, 0, len(o))
	for k, v := range o {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (o overrideFlags) Set(arg string) error {
	key, value, ok := strings.Cut(arg, "=")
	if !ok || key == "" {
		return fmt.Errorf("want key=value, got %q", arg)
	}
	o[key] = value
	return nil
}

type options struct {
	configPath string
	seed       int64
	size       int
	workers    int
	outDir     string
	cacheDir   string
	verbose    bool
	overrides  overrideFlags
	passed     map[string]bool
}

func main() {
	opts := options{overrides: overrideFlags{}}
	flag.StringVar(&opts.configPath, "config", "", "JSON config file, merged over defaults")
	flag.Int64Var(&opts.seed, "seed", 0, "world seed")
	flag.IntVar(&opts.size, "size", 0, "map edge length in cells")
	flag.IntVar(&opts.workers, "workers", 0, "worker goroutines, 0 means one per CPU")
	flag.StringVar(&opts.outDir, "out", "", "directory to write debug map PNGs into")
	flag.StringVar(&opts.cacheDir, "cache", "", "LevelDB cache directory, reuses worlds already generated")
	flag.BoolVar(&opts.verbose, "v", false, "log pipeline stages")
	flag.Var(opts.overrides, "set", "config override key=value (repeatable)")
	flag.Parse()

	opts.passed = map[string]bool{}
	flag.Visit(func(f *flag.Flag) { opts.passed[f.Name] = true })

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	if err := run(opts, log); err != nil {
		log.Error("worldgen failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options, log *slog.Logger) error {
	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	wld, err := buildWorld(ctx, cfg, opts, log)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	printSummary(wld, cfg, elapsed)

	if opts.outDir != "" {
		if err := render.ExportMaps(opts.outDir, wld); err != nil {
			return err
		}
		log.Info("maps exported", "dir", opts.outDir)
	}
	return nil
}

// buildConfig layers the config sources: defaults, then the config file, then
// -set overrides, then the direct flags.
func buildConfig(opts options) (worldgen.Config, error) {
	cfg := worldgen.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := worldgen.Load(opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	cfg, err := worldgen.FromMap(cfg, opts.overrides)
	if err != nil {
		return cfg, err
	}
	if opts.passed["seed"] {
		cfg.Seed = opts.seed
	}
	if opts.passed["size"] {
		cfg.Size = opts.size
	}
	if opts.passed["workers"] {
		cfg.Workers = opts.workers
	}
	return cfg, nil
}

func buildWorld(ctx context.Context, cfg worldgen.Config, opts options, log *slog.Logger) (*world.World, error) {
	gen := worldgen.Generator{}
	if opts.verbose {
		gen.Reporter = worldgen.SlogReporter{Log: log}
	}

	if opts.cacheDir != "" {
		st, err := store.Open(opts.cacheDir)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		return st.LoadOrGenerate(ctx, cfg, gen)
	}
	return gen.Generate(ctx, cfg)
}

func printSummary(wld *world.World, cfg worldgen.Config, elapsed time.Duration) {
	fmt.Printf("world %s (seed %d, %dx%d) in %s\n",
		wld.ID, wld.Seed, wld.W, wld.H, elapsed.Round(time.Millisecond))

	largest := 0
	if len(wld.Islands) > 0 {
		largest = wld.Islands[0].Area
	}
	fmt.Printf("  land %.1f%%  islands %d (largest %d cells)\n",
		wld.LandFraction()*100, len(wld.Islands), largest)

	contours := 0
	for _, level := range wld.Contours.Levels {
		contours += len(level.Lines)
	}
	fmt.Printf("  rivers %d  contours %d lines over %d levels (iso step %g)\n",
		len(wld.Rivers), contours, len(wld.Contours.Levels), cfg.Topography.IsoStep)
}
