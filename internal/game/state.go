package game

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/aspiringLich/oxide-gambit/internal/board"
)

// Slot identifies a piece in the arena for its whole lifetime. Slot 0 is
// reserved as "no piece".
type Slot uint8

const (
	NoSlot   Slot = 0
	MaxSlots      = 33
)

// Piece is one entry of the arena.
type Piece struct {
	Kind   board.Kind
	Team   board.Team
	Square board.Square
}

// State is a chess position together with every derived structure that is
// kept up to date incrementally. It holds no pointers besides the shared
// catalog, so a plain value copy is a complete, independent clone.
type State struct {
	catalog *board.Catalog

	pieces   [MaxSlots]Piece
	live     [2]uint64 // slot bits per team
	squares  board.Grid[Slot]
	occupied [2]board.Bitboard
	kings    [2]Slot

	turn      board.Team
	castling  board.CastlingRights
	enPassant board.Square
	halfMove  int
	fullMove  int

	hash uint64
	key  board.Key

	attacks AttackTracker
	moves   MoveSet

	material   [2]int
	positional [2]int
}

// NewState builds a position from a parsed setup. Castling rights whose king
// or rook is not on its home square are dropped.
func NewState(c *board.Catalog, setup *board.Setup) (*State, error) {
	s := &State{
		catalog:   c,
		turn:      setup.Turn,
		enPassant: board.NoSquare,
		halfMove:  setup.HalfMove,
		fullMove:  setup.FullMove,
	}
	s.key.EnPassant = board.NoSquare
	s.key.Turn = setup.Turn

	for i, p := range setup.Pieces {
		if i+1 >= MaxSlots {
			return nil, fmt.Errorf("new state: more than %d pieces", MaxSlots-1)
		}
		slot := Slot(i + 1)
		s.pieces[slot] = Piece{Kind: p.Kind, Team: p.Team, Square: board.NoSquare}
		s.live[p.Team] |= 1 << slot
		if p.Kind == board.King {
			s.kings[p.Team] = slot
		}
		s.place(slot, p.Square)
	}
	if s.kings[board.White] == NoSlot || s.kings[board.Black] == NoSlot {
		return nil, fmt.Errorf("new state: missing king")
	}

	s.castling = sanitizeCastling(s, setup.Castling)
	s.key.Castling = s.castling

	if ep := setup.EnPassant; ep != board.NoSquare {
		pushed, _ := ep.Offset(0, -setup.Turn.Forward())
		p, ok := s.PieceAt(pushed)
		if !ok || p.Kind != board.Pawn || p.Team == setup.Turn || s.squares.Get(ep) != NoSlot {
			return nil, fmt.Errorf("new state: en passant square %v has no pushed pawn", ep)
		}
		s.enPassant = ep
		s.key.EnPassant = ep
	}
	s.hash = s.ComputeHash()

	s.attacks = GenerateAttacks(s)
	if s.attacks.IsAttacked(s.KingSquare(setup.Turn.Other()), setup.Turn) {
		return nil, fmt.Errorf("new state: %v king can be captured", setup.Turn.Other())
	}
	s.moves = GenerateMoves(s)
	s.material, s.positional = s.RecomputeScore()
	return s, nil
}

// FromFEN parses a FEN string and builds the position.
func FromFEN(c *board.Catalog, fen string) (*State, error) {
	setup, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	s, err := NewState(c, setup)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", fen, err)
	}
	return s, nil
}

func sanitizeCastling(s *State, cr board.CastlingRights) board.CastlingRights {
	for _, t := range []board.Team{board.White, board.Black} {
		y := 0
		if t == board.Black {
			y = 7
		}
		king := s.pieces[s.kings[t]]
		for _, kingSide := range []bool{true, false} {
			if !cr.Has(t, kingSide) {
				continue
			}
			x := 0
			if kingSide {
				x = 7
			}
			rook, ok := s.PieceAt(board.MustXY(x, y))
			if king.Square != board.MustXY(4, y) || !ok || rook.Kind != board.Rook || rook.Team != t {
				cr &^= board.Right(t, kingSide)
			}
		}
	}
	return cr
}

// Clone returns an independent copy of the position.
func (s *State) Clone() *State {
	c := *s
	return &c
}

// Catalog returns the piece catalog the position was built with.
func (s *State) Catalog() *board.Catalog { return s.catalog }

// Turn returns the side to move.
func (s *State) Turn() board.Team { return s.turn }

// Castling returns the remaining castling rights.
func (s *State) Castling() board.CastlingRights { return s.castling }

// EnPassant returns the en passant target, or NoSquare.
func (s *State) EnPassant() board.Square { return s.enPassant }

// HalfMove returns the halfmove clock.
func (s *State) HalfMove() int { return s.halfMove }

// FullMove returns the fullmove number.
func (s *State) FullMove() int { return s.fullMove }

// Hash returns the Zobrist hash of the position.
func (s *State) Hash() uint64 { return s.hash }

// Key returns the exact identity of the position.
func (s *State) Key() board.Key { return s.key }

// Attacks exposes the attack maps for evaluation and verification.
func (s *State) Attacks() *AttackTracker { return &s.attacks }

// Moves exposes the pseudo-legal move sets.
func (s *State) Moves() *MoveSet { return &s.moves }

// PieceAt returns the piece on sq, if any.
func (s *State) PieceAt(sq board.Square) (Piece, bool) {
	if !sq.IsValid() {
		return Piece{}, false
	}
	slot := s.squares.Get(sq)
	if slot == NoSlot {
		return Piece{}, false
	}
	return s.pieces[slot], true
}

// SlotAt returns the slot of the piece on sq, or NoSlot.
func (s *State) SlotAt(sq board.Square) Slot {
	if !sq.IsValid() {
		return NoSlot
	}
	return s.squares.Get(sq)
}

// Piece returns the arena entry of a slot.
func (s *State) Piece(slot Slot) Piece {
	return s.pieces[slot]
}

// Slots returns the live slots of a team in ascending order.
func (s *State) Slots(t board.Team) []Slot {
	out := make([]Slot, 0, bits.OnesCount64(s.live[t]))
	for m := s.live[t]; m != 0; m &= m - 1 {
		out = append(out, Slot(bits.TrailingZeros64(m)))
	}
	return out
}

// Occupied returns the squares occupied by a team.
func (s *State) Occupied(t board.Team) board.Bitboard {
	return s.occupied[t]
}

// KingSquare returns the square of a team's king.
func (s *State) KingSquare(t board.Team) board.Square {
	return s.pieces[s.kings[t]].Square
}

// InCheck reports whether the side to move is in check.
func (s *State) InCheck() bool {
	return s.attacks.IsAttacked(s.KingSquare(s.turn), s.turn.Other())
}

// place puts a lifted or new piece on an empty square. Attack maps are not
// touched.
func (s *State) place(slot Slot, sq board.Square) {
	p := &s.pieces[slot]
	p.Square = sq
	s.squares.Set(sq, slot)
	s.occupied[p.Team] = s.occupied[p.Team].With(sq)
	s.key.Put(sq, p.Kind, p.Team)
	s.hash ^= board.ZobristPiece(p.Team, p.Kind, sq)
}

// vacate clears the square of a piece that stays in the arena.
func (s *State) vacate(slot Slot) {
	p := s.pieces[slot]
	s.squares.Set(p.Square, NoSlot)
	s.occupied[p.Team] = s.occupied[p.Team].Without(p.Square)
	s.key.Put(p.Square, board.Empty, board.NoTeam)
	s.hash ^= board.ZobristPiece(p.Team, p.Kind, p.Square)
}

// kill removes a captured piece from the arena. Its square must already be
// vacated or taken over.
func (s *State) kill(slot Slot) {
	p := s.pieces[slot]
	s.live[p.Team] &^= 1 << slot
	s.pieces[slot] = Piece{Square: board.NoSquare}
	s.moves.clear(slot)
}

func (s *State) setCastling(cr board.CastlingRights) {
	s.hash ^= board.ZobristCastling(s.castling) ^ board.ZobristCastling(cr)
	s.castling = cr
	s.key.Castling = cr
}

func (s *State) setEnPassant(sq board.Square) {
	s.hash ^= board.ZobristEnPassant(s.enPassant) ^ board.ZobristEnPassant(sq)
	s.enPassant = sq
	s.key.EnPassant = sq
}

// ComputeHash computes the Zobrist hash from scratch.
func (s *State) ComputeHash() uint64 {
	h := board.ZobristTurn(s.turn) ^ board.ZobristCastling(s.castling) ^ board.ZobristEnPassant(s.enPassant)
	for sq := board.A1; sq <= board.H8; sq++ {
		if p, ok := s.PieceAt(sq); ok {
			h ^= board.ZobristPiece(p.Team, p.Kind, sq)
		}
	}
	return h
}

// Setup converts the position back into a FEN setup.
func (s *State) Setup() *board.Setup {
	setup := &board.Setup{
		Turn:      s.turn,
		Castling:  s.castling,
		EnPassant: s.enPassant,
		HalfMove:  s.halfMove,
		FullMove:  s.fullMove,
	}
	for sq := board.A1; sq <= board.H8; sq++ {
		if p, ok := s.PieceAt(sq); ok {
			setup.Pieces = append(setup.Pieces, board.Placement{Kind: p.Kind, Team: p.Team, Square: sq})
		}
	}
	return setup
}

// FEN returns the position as a FEN string.
func (s *State) FEN() string {
	return s.Setup().FEN(s.catalog)
}

// String draws the board with Unicode pieces, rank 8 first.
func (s *State) String() string {
	var sb strings.Builder
	for y := 7; y >= 0; y-- {
		sb.WriteByte(byte('1' + y))
		sb.WriteByte(' ')
		for x := 0; x < 8; x++ {
			if p, ok := s.PieceAt(board.MustXY(x, y)); ok {
				sb.WriteRune(s.catalog.DisplayRune(p.Kind, p.Team))
			} else {
				sb.WriteRune('·')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
