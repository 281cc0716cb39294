// oxide-gambit - a chess engine with a terminal front end
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/aspiringLich/oxide-gambit/internal/board"
	"github.com/aspiringLich/oxide-gambit/internal/engine"
	"github.com/aspiringLich/oxide-gambit/internal/game"
	"github.com/aspiringLich/oxide-gambit/internal/play"
	"github.com/aspiringLich/oxide-gambit/internal/storage"
	"github.com/aspiringLich/oxide-gambit/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup happens before exit.
func run() int {
	var (
		fen        = flag.String("fen", "", "start position (default: standard start)")
		dataDir    = flag.String("data", "", "data directory (default: platform data directory)")
		difficulty = flag.String("difficulty", "", "engine difficulty: easy, medium or hard (default: saved preference)")
		black      = flag.Bool("black", false, "play black")
		twoPlayer  = flag.Bool("hvh", false, "two humans share the board")
		list       = flag.Bool("list", false, "list recorded games and exit")
		export     = flag.Uint64("pgn", 0, "print recorded game `id` as PGN and exit")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	level, err := checkFlags(*fen, *difficulty)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	store, err := storage.Open(*dataDir)
	if err != nil {
		log.Error("failed to open storage", "err", err)
		return 1
	}
	defer store.Close()

	switch {
	case *list:
		if err := listGames(store); err != nil {
			log.Error("failed to list games", "err", err)
			return 1
		}
		return 0
	case *export != 0:
		if err := exportGame(store, *export); err != nil {
			log.Error("failed to export game", "err", err)
			return 1
		}
		return 0
	}

	// the terminal belongs to the board, so logs go to a file
	logDir := *dataDir
	if logDir == "" {
		if logDir, err = storage.DataDir(); err != nil {
			log.Error("failed to resolve data directory", "err", err)
			return 1
		}
	}
	logFile, err := os.OpenFile(filepath.Join(logDir, "oxide-gambit.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Error("failed to open log file", "err", err)
		return 1
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	prefs, err := store.LoadPreferences()
	if err != nil {
		log.Warn("failed to load preferences", "err", err)
		prefs = storage.DefaultPreferences()
	}
	if level != nil {
		prefs.Difficulty = *level
	}
	if *black {
		prefs.Team = board.Black
	}

	eng := engine.NewEngine(prefs.TTSizeMB)
	eng.SetDifficulty(prefs.Difficulty)

	mode := play.HumanVsComputer
	if *twoPlayer {
		mode = play.HumanVsHuman
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sess, err := play.NewSession(ctx, play.Config{
		Catalog:  board.NewCatalog(),
		Engine:   eng,
		FEN:      *fen,
		Mode:     mode,
		Human:    prefs.Team,
		Recorder: store,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer sess.Close()

	if err := store.SavePreferences(prefs); err != nil {
		log.Warn("failed to save preferences", "err", err)
	}

	p := tea.NewProgram(ui.New(sess, store, prefs), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Error("program failed", "err", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// checkFlags validates the start position and difficulty before anything is
// opened. A nil difficulty means the saved preference applies.
func checkFlags(fen, difficulty string) (*engine.Difficulty, error) {
	if fen != "" {
		if _, err := game.FromFEN(board.NewCatalog(), fen); err != nil {
			return nil, err
		}
	}
	if difficulty == "" {
		return nil, nil
	}
	d, err := engine.ParseDifficulty(difficulty)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func listGames(store *storage.Storage) error {
	games, err := store.ListGames()
	if err != nil {
		return err
	}
	for _, g := range games {
		fmt.Printf("%4d  %s  %-7s  %-8s %-6s %3d plies  %s\n",
			g.ID, g.Started.Format("2006-01-02 15:04"), g.Result, g.Human, g.Difficulty, len(g.Moves), g.Reason)
	}
	stats, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Printf("\n%d games: %d won, %d lost, %d drawn (%.0f%%)\n",
		stats.GamesPlayed, stats.Wins, stats.Losses, stats.Draws, stats.WinRate())
	return nil
}

func exportGame(store *storage.Storage, id uint64) error {
	rec, err := store.LoadGame(id)
	if err != nil {
		return err
	}
	pgn, err := rec.PGN()
	if err != nil {
		return err
	}
	fmt.Println(pgn)
	return nil
}
