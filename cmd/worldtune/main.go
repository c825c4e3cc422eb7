// Command worldtune sweeps generation parameters over a seed range and
// reports which configurations settle inside the island area band most
// reliably.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"islegen/internal/worldgen"
)

type paramSet struct {
	cutoff   float64
	droplets int
	erosion  float64
	inertia  float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("cutoff=%.2f droplets=%d erosion=%.2f inertia=%.2f",
		p.cutoff, p.droplets, p.erosion, p.inertia)
}

type sweepResult struct {
	params     paramSet
	failures   int
	meanLand   float64
	meanRivers float64
	islands    int
	elapsed    time.Duration
	score      float64
}

func main() {
	size := flag.Int("size", 256, "map edge length for sweep runs")
	seeds := flag.Int("seeds", 3, "seeds per parameter set")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	base := worldgen.DefaultConfig()
	base.Size = *size

	cutoffOptions := []float64{0.35, 0.4, 0.45}
	dropletOptions := []int{10000, 25000, 50000}
	erosionOptions := []float64{0.05, 0.1, 0.2}
	inertiaOptions := []float64{0.05, 0.1, 0.2}

	var sets []paramSet
	for _, cutoff := range cutoffOptions {
		for _, droplets := range dropletOptions {
			for _, erosion := range erosionOptions {
				for _, inertia := range inertiaOptions {
					sets = append(sets, paramSet{
						cutoff:   cutoff,
						droplets: droplets,
						erosion:  erosion,
						inertia:  inertia,
					})
				}
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d seeds each, size %d)\n",
		len(sets), *workers, *seeds, *size)

	jobs := make(chan paramSet)
	results := make(chan sweepResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runSweep(base, params, *seeds)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []sweepResult
	for res := range results {
		all = append(all, res)
		if res.failures > 0 {
			fmt.Printf("%d/%d seeds failed to converge with %s\n", res.failures, *seeds, res.params)
		}
	}
	elapsed := time.Since(start)

	sort.Slice(all, func(i, j int) bool { return all[i].score < all[j].score })

	fmt.Printf("\nTop 5 results (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		res := all[i]
		fmt.Printf("%2d) land=%.1f%% rivers=%.1f islands=%d failures=%d in %s with %s\n",
			i+1, res.meanLand*100, res.meanRivers, res.islands, res.failures,
			res.elapsed.Round(time.Millisecond), res.params)
	}
}

// runSweep generates one world per seed with the parameter set applied and
// aggregates the outcomes. The score is the mean land fraction's distance
// from the area band center, plus one per failed seed.
func runSweep(base worldgen.Config, params paramSet, seeds int) sweepResult {
	cfg := base
	cfg.Island.Cutoff = params.cutoff
	cfg.Rivers.Droplets = params.droplets
	cfg.Rivers.Erosion = params.erosion
	cfg.Rivers.Inertia = params.inertia

	res := sweepResult{params: params}
	var landSum float64
	var riverSum int

	start := time.Now()
	for s := 0; s < seeds; s++ {
		cfg.Seed = base.Seed + int64(s)
		wld, err := worldgen.Generate(context.Background(), cfg)
		if err != nil {
			res.failures++
			continue
		}
		landSum += wld.LandFraction()
		riverSum += len(wld.Rivers)
		res.islands += len(wld.Islands)
	}
	res.elapsed = time.Since(start)

	ok := seeds - res.failures
	if ok > 0 {
		res.meanLand = landSum / float64(ok)
		res.meanRivers = float64(riverSum) / float64(ok)
	}
	center := (cfg.Island.MinTotalArea + cfg.Island.MaxTotalArea) / 2
	res.score = math.Abs(res.meanLand-center) + float64(res.failures)
	return res
}
