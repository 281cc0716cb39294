package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aspiringLich/oxide-gambit/internal/board"
	"github.com/aspiringLich/oxide-gambit/internal/engine"
	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyGameSeq     = "seq/game"
	gamePrefix     = "game/"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("storage: not found")

// Preferences stores user settings.
type Preferences struct {
	Difficulty engine.Difficulty `json:"difficulty"`
	Team       board.Team        `json:"team"`
	TTSizeMB   int               `json:"tt_size_mb"`
	ShowHints  bool              `json:"show_hints"`
	LastPlayed time.Time         `json:"last_played"`
}

// DefaultPreferences returns default user preferences.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Difficulty: engine.Medium,
		Team:       board.White,
		TTSizeMB:   16,
		ShowHints:  true,
	}
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db  *badger.DB
	seq *badger.Sequence
}

// Open opens the database under root, or under the platform data directory
// when root is empty.
func Open(root string) (*Storage, error) {
	dbDir, err := DatabaseDir(root)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return open(badger.DefaultOptions(dbDir))
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts = opts.WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	seq, err := db.GetSequence([]byte(keyGameSeq), 16)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return &Storage{db: db, seq: seq}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	if err := s.seq.Release(); err != nil {
		s.db.Close()
		return err
	}
	return s.db.Close()
}

// SavePreferences saves user preferences.
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads user preferences, returning defaults if none were
// saved.
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})
	return prefs, err
}

// GameRecord is a finished game.
type GameRecord struct {
	ID         uint64            `json:"id"`
	StartFEN   string            `json:"start_fen"`
	Moves      []string          `json:"moves"`
	Result     string            `json:"result"`
	Reason     string            `json:"reason"`
	Human      board.Team        `json:"human"`
	Difficulty engine.Difficulty `json:"difficulty"`
	Started    time.Time         `json:"started"`
	Finished   time.Time         `json:"finished"`
}

// Result strings as written in PGN.
const (
	WhiteWins  = "1-0"
	BlackWins  = "0-1"
	DrawResult = "1/2-1/2"
	Unfinished = "*"
)

// ResultFor returns the PGN result of a game that ended with loser to move.
// Only checkmate is decisive.
func ResultFor(decisive bool, toMove board.Team) string {
	if !decisive {
		return DrawResult
	}
	if toMove == board.White {
		return BlackWins
	}
	return WhiteWins
}

func gameKey(id uint64) []byte {
	key := make([]byte, len(gamePrefix)+8)
	copy(key, gamePrefix)
	binary.BigEndian.PutUint64(key[len(gamePrefix):], id)
	return key
}

// SaveGame stores a game record, assigning it an ID if it has none.
func (s *Storage) SaveGame(rec *GameRecord) error {
	if rec.ID == 0 {
		id, err := s.seq.Next()
		if err != nil {
			return fmt.Errorf("save game: %w", err)
		}
		// sequences start at 0, which means "unassigned"
		rec.ID = id + 1
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(rec.ID), data)
	})
}

// LoadGame loads one game record.
func (s *Storage) LoadGame(id uint64) (*GameRecord, error) {
	rec := &GameRecord{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load game %d: %w", id, err)
	}
	return rec, nil
}

// DeleteGame removes a game record.
func (s *Storage) DeleteGame(id uint64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete game %d: %w", id, ErrNotFound)
		} else if err != nil {
			return err
		}
		return txn.Delete(gameKey(id))
	})
}

// ListGames returns all game records in the order they were saved.
func (s *Storage) ListGames() ([]GameRecord, error) {
	var games []GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gamePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec GameRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			games = append(games, rec)
		}
		return nil
	})
	return games, err
}

// GameStats summarises the stored games from the human player's side.
type GameStats struct {
	GamesPlayed int
	Wins        int
	Losses      int
	Draws       int
	PlayTime    time.Duration
}

// Stats aggregates all stored game records.
func (s *Storage) Stats() (*GameStats, error) {
	games, err := s.ListGames()
	if err != nil {
		return nil, err
	}
	stats := &GameStats{}
	for _, g := range games {
		if g.Result == Unfinished {
			continue
		}
		stats.GamesPlayed++
		stats.PlayTime += g.Finished.Sub(g.Started)
		switch g.Result {
		case DrawResult:
			stats.Draws++
		case WhiteWins:
			if g.Human == board.White {
				stats.Wins++
			} else {
				stats.Losses++
			}
		case BlackWins:
			if g.Human == board.Black {
				stats.Wins++
			} else {
				stats.Losses++
			}
		}
	}
	return stats, nil
}

// WinRate returns the win rate as a percentage (0-100).
func (s *GameStats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}
