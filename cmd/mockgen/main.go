package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"dealboard/cmd/mockgen/engine"
)

func main() {
	scenario := flag.String("scenario", "messy", "Scenario to generate: clean, messy")
	outDir := flag.String("out", "./.data", "Output directory for mock workbooks")
	count := flag.Int("count", 25, "Number of deals to generate")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		Count:    *count,
		Now:      time.Now(),
		Seed:     *seed,
	}

	fmt.Printf("Generating scenario '%s' (Deals: %d, Seed: %d) to %s...\n", cfg.Scenario, cfg.Count, cfg.Seed, *outDir)

	combined, appointments := engine.Generate(cfg)

	paths, err := engine.Save(*outDir, combined, appointments)
	if err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	for _, p := range paths {
		fmt.Println(p)
	}
	fmt.Println("Done.")
}
