// Command oxide-ssh serves the terminal chess game over SSH. Every session
// plays its own game against the engine.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aspiringLich/oxide-gambit/internal/board"
	"github.com/aspiringLich/oxide-gambit/internal/engine"
	"github.com/aspiringLich/oxide-gambit/internal/play"
	"github.com/aspiringLich/oxide-gambit/internal/storage"
	"github.com/aspiringLich/oxide-gambit/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/keygen"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

func main() {
	var (
		host       = flag.String("host", "0.0.0.0", "SSH listen host")
		port       = flag.Int("port", 2222, "SSH server port")
		dataDir    = flag.String("data", "", "data directory (default: platform data directory)")
		difficulty = flag.String("difficulty", "medium", "engine difficulty: easy, medium or hard")
		ttMB       = flag.Int("hash", 16, "transposition table size per session in MB")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	diff, err := engine.ParseDifficulty(*difficulty)
	if err != nil {
		log.Fatal("bad -difficulty", "err", err)
	}

	root := *dataDir
	if root == "" {
		if root, err = storage.DataDir(); err != nil {
			log.Fatal("failed to resolve data directory", "err", err)
		}
	}
	hostKeyPath, err := ensureHostKey(root)
	if err != nil {
		log.Fatal("failed to generate host key", "err", err)
	}

	store, err := storage.Open(root)
	if err != nil {
		log.Fatal("failed to open storage", "err", err)
	}
	defer store.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	h := &handler{store: store, difficulty: diff, ttMB: *ttMB}
	s, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(*host, fmt.Sprint(*port))),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(h.teaHandler),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatal("failed to create server", "err", err)
	}

	log.Info("Starting SSH chess server", "host", *host, "port", *port)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("server failed", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("Stopping SSH server")

	tctx, tcancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer tcancel()
	if err := s.Shutdown(tctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Fatal("shutdown failed", "err", err)
	}
}

// ensureHostKey generates an Ed25519 host key under root if none exists.
func ensureHostKey(root string) (string, error) {
	dir := filepath.Join(root, "ssh")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "host_ed25519")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Info("Generating SSH host key", "path", path)
		if _, err := keygen.New(path, keygen.WithKeyType(keygen.Ed25519), keygen.WithWrite()); err != nil {
			return "", err
		}
	}
	return path, nil
}

type handler struct {
	store      *storage.Storage
	difficulty engine.Difficulty
	ttMB       int
}

// teaHandler starts a game for one SSH session. The session context cancels
// any search still running when the client disconnects.
func (h *handler) teaHandler(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	eng := engine.NewEngine(h.ttMB)
	eng.SetDifficulty(h.difficulty)

	sess, err := play.NewSession(s.Context(), play.Config{
		Catalog:  board.NewCatalog(),
		Engine:   eng,
		Mode:     play.HumanVsComputer,
		Human:    board.White,
		Recorder: h.store,
	})
	if err != nil {
		wish.Fatalln(s, err)
		return nil, nil
	}
	log.Debug("game started", "user", s.User(), "difficulty", h.difficulty)

	prefs := storage.DefaultPreferences()
	prefs.Difficulty = h.difficulty
	m := ui.New(sess, nil, prefs).WithTitle(fmt.Sprintf("oxide-gambit: %s vs engine", s.User()))
	return m, []tea.ProgramOption{tea.WithAltScreen()}
}
