// Command perft is the external CLI collaborator described in spec.md
// §6: it parses a scenario id or a raw FEN, runs engine.Perft at one or
// more depths, prints the elapsed time and node count per depth, and
// asserts the result against the known-answer table in scenarios.yaml
// when the position is a known scenario.
//
// Usage:
//
//	perft -scenario 1 -max-depth 5
//	perft -fen "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1" -depth 3
package main

import (
	_ "embed"
	"flag"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/zurichess/perft/engine"
)

//go:embed scenarios.yaml
var scenariosYAML []byte

// scenario is one row of the scenario table: a FEN plus the published
// reference node counts for a handful of depths.
type scenario struct {
	ID       int            `yaml:"id"`
	Name     string         `yaml:"name"`
	FEN      string         `yaml:"fen"`
	Expected map[int]uint64 `yaml:"expected"`
}

type scenarioTable struct {
	Scenarios []scenario `yaml:"scenarios"`
}

func loadScenarios() (map[string]scenario, error) {
	var table scenarioTable
	if err := yaml.Unmarshal(scenariosYAML, &table); err != nil {
		return nil, fmt.Errorf("parsing scenarios.yaml: %w", err)
	}
	byID := make(map[string]scenario, len(table.Scenarios))
	for _, s := range table.Scenarios {
		byID[strconv.Itoa(s.ID)] = s
	}
	return byID, nil
}

var (
	fenFlag      = flag.String("fen", "", "FEN to search; overrides -scenario")
	scenarioFlag = flag.String("scenario", "1", "scenario id to look up in scenarios.yaml")
	minDepth     = flag.Int("min-depth", 1, "minimum depth to search (inclusive)")
	maxDepth     = flag.Int("max-depth", 5, "maximum depth to search (inclusive)")
	depthFlag    = flag.Int("depth", 0, "if non-zero, search only this depth")
	splitFlag    = flag.Bool("divide", false, "print a perft-divide breakdown per root move")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	fen := *fenFlag
	var expected map[int]uint64
	if fen == "" {
		table, err := loadScenarios()
		if err != nil {
			log.Fatalln(err)
		}
		s, ok := table[*scenarioFlag]
		if !ok {
			log.Fatalf("unknown scenario %q", *scenarioFlag)
		}
		fen = s.FEN
		expected = s.Expected
		fmt.Printf("scenario %s: %s\n", *scenarioFlag, s.Name)
	}

	lo, hi := *minDepth, *maxDepth
	if *depthFlag != 0 {
		lo, hi = *depthFlag, *depthFlag
	}

	fmt.Printf("FEN %q\n", fen)
	fmt.Printf("%5s %14s %10s %9s %9s %10s %6s %10s\n",
		"depth", "nodes", "captures", "enpassant", "castles", "promotions", "status", "elapsed")

	bad := false
	for depth := lo; depth <= hi; depth++ {
		gs, err := engine.FromFEN(fen)
		if err != nil {
			log.Fatalln("cannot parse -fen:", err)
		}

		start := time.Now()
		var nodes uint64
		var counters engine.PerftCounters
		var divide map[string]uint64
		if *splitFlag {
			counters, divide = engine.PerftDivide(gs, depth)
			nodes = counters.Nodes
		} else {
			nodes = engine.Perft(gs, depth)
		}
		elapsed := time.Since(start)

		status := ""
		if want, ok := expected[depth]; ok {
			if want == nodes {
				status = color.GreenString("good")
			} else {
				status = color.RedString("bad")
				bad = true
			}
		}

		fmt.Printf("%5d %14d %10d %9d %9d %10d %6s %10s\n",
			depth, nodes, counters.Captures, counters.EnPassant, counters.Castles, counters.Promotions,
			status, elapsed)

		if *splitFlag {
			roots := make([]string, 0, len(divide))
			for m := range divide {
				roots = append(roots, m)
			}
			sort.Strings(roots)
			for _, m := range roots {
				fmt.Printf("      %s: %d\n", m, divide[m])
			}
		}

		if want, ok := expected[depth]; ok && want != nodes {
			fmt.Printf("      expected %d nodes at depth %d\n", want, depth)
			break
		}
	}

	if bad {
		log.Fatalln("perft mismatch against scenarios.yaml")
	}
}
