// Command oxide-perft counts legal move tree leaves from a position, with an
// optional per-move cross-check against an independent move generator.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/aspiringLich/oxide-gambit/internal/board"
	"github.com/aspiringLich/oxide-gambit/internal/engine"
	"github.com/aspiringLich/oxide-gambit/internal/game"
	"github.com/charmbracelet/log"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	verify := flag.Bool("verify", false, "Cross-check per-move counts against dragontoothmg")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	s, err := game.FromFEN(board.NewCatalog(), *fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	log.Debug("position", "fen", s.FEN())

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.Fatal("could not create CPU profile", "err", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile", "err", err)
		}
		defer pprof.StopCPUProfile()
	}

	if *verify {
		mismatches := Verify(s, *depth)
		for _, d := range mismatches {
			fmt.Printf("MISMATCH %s: ours %d, dragontoothmg %d\n", d.Move, d.Ours, d.Theirs)
		}
		if len(mismatches) > 0 {
			pprof.StopCPUProfile()
			os.Exit(1)
		}
		fmt.Println("verify: ok")
	}

	start := time.Now()
	var nodes uint64
	if *divide {
		for _, e := range engine.Divide(s, *depth) {
			fmt.Printf("%s: %d\n", e.Move, e.Nodes)
			nodes += e.Nodes
		}
	} else {
		nodes = engine.Perft(s, *depth)
	}
	elapsed := time.Since(start)

	nps := float64(nodes) / elapsed.Seconds()
	fmt.Printf("Total: %d\n", nodes)
	fmt.Printf("depth=%d time=%s nps=%.0f\n", *depth, elapsed.Round(time.Millisecond), nps)
}
