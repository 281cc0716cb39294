package storage

import (
	"fmt"
	"io"

	"github.com/aspiringLich/oxide-gambit/internal/board"
	"github.com/notnil/chess"
)

// PGN replays the record through an independent rules implementation and
// returns it as PGN text with SAN moves.
func (r *GameRecord) PGN() (string, error) {
	var opts []func(*chess.Game)
	if r.StartFEN != "" && r.StartFEN != board.StartFEN {
		fen, err := chess.FEN(r.StartFEN)
		if err != nil {
			return "", fmt.Errorf("export game %d: %w", r.ID, err)
		}
		opts = append(opts, fen)
	}
	g := chess.NewGame(opts...)
	if r.StartFEN != "" && r.StartFEN != board.StartFEN {
		g.AddTagPair("SetUp", "1")
		g.AddTagPair("FEN", r.StartFEN)
	}
	g.AddTagPair("Event", "oxide-gambit game")
	g.AddTagPair("Site", appName)
	if !r.Started.IsZero() {
		g.AddTagPair("Date", r.Started.Format("2006.01.02"))
	}
	white, black := "Human", "Computer"
	if r.Human == board.Black {
		white, black = black, white
	}
	g.AddTagPair("White", white)
	g.AddTagPair("Black", black)
	g.AddTagPair("Difficulty", r.Difficulty.String())
	if r.Reason != "" {
		g.AddTagPair("Termination", r.Reason)
	}

	// moves are stored in coordinate notation; the game keeps its default
	// algebraic notation so String writes SAN
	for i, mv := range r.Moves {
		m, err := chess.UCINotation{}.Decode(g.Position(), mv)
		if err == nil {
			err = g.Move(m)
		}
		if err != nil {
			return "", fmt.Errorf("export game %d: move %d %q: %w", r.ID, i+1, mv, err)
		}
	}
	// checkmate, stalemate and insufficient material are detected during
	// replay; repetition and fifty-move draws have to be claimed
	if r.Result == DrawResult && g.Outcome() == chess.NoOutcome {
		if err := g.Draw(chess.ThreefoldRepetition); err != nil {
			if err := g.Draw(chess.FiftyMoveRule); err != nil {
				return "", fmt.Errorf("export game %d: %w", r.ID, err)
			}
		}
	}
	if got := string(g.Outcome()); r.Result != "" && got != r.Result {
		return "", fmt.Errorf("export game %d: recorded result %s, replay gives %s", r.ID, r.Result, got)
	}
	return g.String(), nil
}

// ImportPGN reads the first game of a PGN stream as an unsaved record.
func ImportPGN(rd io.Reader) (*GameRecord, error) {
	pgn, err := chess.PGN(rd)
	if err != nil {
		return nil, fmt.Errorf("import pgn: %w", err)
	}
	g := chess.NewGame(pgn)

	positions := g.Positions()
	rec := &GameRecord{
		StartFEN: positions[0].String(),
		Result:   string(g.Outcome()),
		Reason:   g.Method().String(),
	}
	for i, m := range g.Moves() {
		rec.Moves = append(rec.Moves, chess.UCINotation{}.Encode(positions[i], m))
	}
	if g.Method() == chess.NoMethod {
		rec.Reason = ""
	}
	return rec, nil
}
