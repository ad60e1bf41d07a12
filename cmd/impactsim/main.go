// Command impactsim runs impact scenarios offline through the same calculator
// the service uses and writes the results as a JSON fixture.
//
// Usage:
//
//	go run ./cmd/impactsim -diameter 100 -velocity 20 -angle 45 -lat 40.7128 -lon -74.006
//	go run ./cmd/impactsim -scenarios testdata/scenarios.json -out results.json
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/couchcryptid/impact-sim-service/internal/impact"
)

// scenario is one entry of a -scenarios file. Composition is used when
// Density is zero.
type scenario struct {
	Name        string `json:"name"`
	Composition string `json:"composition"`
	impact.Parameters
	ApplyTrajectory bool `json:"applyTrajectory"`
}

type outcome struct {
	Name   string        `json:"name,omitempty"`
	Result impact.Result `json:"result"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("impactsim", flag.ContinueOnError)
	scenariosPath := fs.String("scenarios", "", "JSON file holding an array of scenarios")
	out := fs.String("out", "", "output path for results (default stdout)")
	diameter := fs.Float64("diameter", 0, "impactor diameter in meters")
	density := fs.Float64("density", 0, "impactor density in kg/m³ (overrides -composition)")
	composition := fs.String("composition", "stone", "impactor composition used when -density is unset")
	velocity := fs.Float64("velocity", 20, "impact velocity in km/s")
	angle := fs.Float64("angle", 45, "impact angle in degrees from horizontal")
	lat := fs.Float64("lat", 0, "aim latitude")
	lon := fs.Float64("lon", 0, "aim longitude")
	trajectory := fs.Bool("trajectory", false, "apply the trajectory offset to the aim point")
	stats := fs.Bool("stats", false, "print a summary of the results to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var scenarios []scenario
	switch {
	case *scenariosPath != "":
		loaded, err := loadScenarios(*scenariosPath)
		if err != nil {
			return err
		}
		scenarios = loaded
	case *diameter > 0:
		scenarios = []scenario{{
			Composition: *composition,
			Parameters: impact.Parameters{
				Diameter: *diameter, Density: *density, Velocity: *velocity,
				Angle: *angle, Latitude: *lat, Longitude: *lon,
			},
			ApplyTrajectory: *trajectory,
		}}
	default:
		fs.Usage()
		return errors.New("either -scenarios or -diameter is required")
	}

	outcomes := make([]outcome, 0, len(scenarios))
	for i, sc := range scenarios {
		res, err := simulate(sc)
		if err != nil {
			return fmt.Errorf("scenario %d %q: %w", i, sc.Name, err)
		}
		outcomes = append(outcomes, outcome{Name: sc.Name, Result: res})
	}

	if *out != "" {
		if err := writeJSON(*out, outcomes); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
		log.Printf("wrote %d results: %s", len(outcomes), *out)
	} else {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outcomes); err != nil {
			return err
		}
	}

	if *stats {
		printStats(os.Stderr, outcomes)
	}
	return nil
}

func simulate(sc scenario) (impact.Result, error) {
	p := sc.Parameters
	if p.Density == 0 {
		p.Density = impact.DensityOf(sc.Composition)
	}
	if err := impact.Validate(p); err != nil {
		return impact.Result{}, err
	}
	if sc.ApplyTrajectory {
		p.Latitude, p.Longitude = impact.ApplyTrajectoryOffset(p.Latitude, p.Longitude, p.Angle, p.Velocity, p.Diameter)
	}
	return impact.Calculate(p), nil
}

func loadScenarios(path string) ([]scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenarios: %w", err)
	}
	var scenarios []scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}
	if len(scenarios) == 0 {
		return nil, errors.New("no scenarios in " + path)
	}
	return scenarios, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(w io.Writer, outcomes []outcome) {
	targets := map[string]int{}
	levels := map[string]int{}
	var catastrophes int
	var maxMt float64
	for i := range outcomes {
		r := &outcomes[i].Result
		targets[r.Input.TargetType]++
		levels[r.Severity.Level]++
		if r.GlobalCatastrophe {
			catastrophes++
		}
		maxMt = max(maxMt, r.Energy.MegatonsTNT)
	}

	fmt.Fprintf(w, "\n=== %d scenarios ===\n", len(outcomes))
	fmt.Fprintf(w, "By target: land=%d, ocean=%d\n", targets[impact.TargetLand], targets[impact.TargetOcean])
	fmt.Fprintf(w, "Global catastrophes: %d\n", catastrophes)
	fmt.Fprintf(w, "Max yield: %g Mt\n", maxMt)

	names := make([]string, 0, len(levels))
	for l := range levels {
		names = append(names, l)
	}
	sort.Strings(names)
	fmt.Fprint(w, "By severity:")
	for _, l := range names {
		fmt.Fprintf(w, " %q=%d", l, levels[l])
	}
	fmt.Fprintln(w)
}
