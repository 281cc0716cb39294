package board

import (
	"errors"
	"testing"
)

func TestTryFromXY(t *testing.T) {
	tests := []struct {
		x, y int
		want Square
		ok   bool
	}{
		{0, 0, A1, true},
		{7, 0, H1, true},
		{4, 3, E4, true},
		{7, 7, H8, true},
		{-1, 0, NoSquare, false},
		{8, 3, NoSquare, false},
		{3, 8, NoSquare, false},
	}
	for _, tc := range tests {
		got, ok := TryFromXY(tc.x, tc.y)
		if got != tc.want || ok != tc.ok {
			t.Errorf("TryFromXY(%d, %d) = %v, %v; want %v, %v", tc.x, tc.y, got, ok, tc.want, tc.ok)
		}
	}
}

func TestOffsetDoesNotWrap(t *testing.T) {
	if _, ok := H4.Offset(1, 0); ok {
		t.Error("h4 + (1,0) should leave the board")
	}
	if _, ok := A5.Offset(-1, 1); ok {
		t.Error("a5 + (-1,1) should leave the board")
	}
	if sq, ok := G1.Offset(-1, 2); !ok || sq != F3 {
		t.Errorf("g1 + (-1,2) = %v, %v; want f3", sq, ok)
	}
}

func TestParseSquare(t *testing.T) {
	sq, err := ParseSquare("e4")
	if err != nil || sq != E4 {
		t.Fatalf("ParseSquare(e4) = %v, %v", sq, err)
	}
	for _, s := range []string{"", "e", "i1", "a9", "e44"} {
		if _, err := ParseSquare(s); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("ParseSquare(%q) error = %v, want ErrInvalidSquare", s, err)
		}
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range AllDirections {
		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		if dx != -ox || dy != -oy {
			t.Errorf("%v opposite %v has delta (%d,%d), want (%d,%d)", d, d.Opposite(), ox, oy, -dx, -dy)
		}
		if d.IsDiagonal() != (dx != 0 && dy != 0) {
			t.Errorf("%v.IsDiagonal() = %v", d, d.IsDiagonal())
		}
	}
}

func TestBetween(t *testing.T) {
	tests := []struct {
		a, b Square
		want Bitboard
	}{
		{A1, A4, SquareBB(A2) | SquareBB(A3)},
		{H8, E5, SquareBB(G7) | SquareBB(F6)},
		{E1, E2, EmptyBB},
		{A1, B3, EmptyBB},
	}
	for _, tc := range tests {
		if got := Between(tc.a, tc.b); got != tc.want {
			t.Errorf("Between(%v, %v) =\n%v want\n%v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestRayMask(t *testing.T) {
	var m RayMask
	m = m.With(North).With(SouthWest)
	if !m.Has(North) || !m.Has(SouthWest) || m.Has(East) {
		t.Fatalf("unexpected mask %08b", m)
	}
	if m.Count() != 2 {
		t.Errorf("Count() = %d, want 2", m.Count())
	}
	if m = m.Without(North); m.Has(North) {
		t.Error("Without(North) left the bit set")
	}
}

func TestGridPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Grid.Get(NoSquare) did not panic")
		}
	}()
	var g Grid[uint8]
	g.Get(NoSquare)
}

func TestCatalogRules(t *testing.T) {
	c := NewCatalog()
	if r := c.Rule(Knight, White); len(r.Jumps) != 8 || len(r.Slides) != 0 {
		t.Errorf("knight rule = %+v", r)
	}
	if r := c.Rule(Queen, Black); len(r.Slides) != 8 {
		t.Errorf("queen slides = %v", r.Slides)
	}
	if r := c.Rule(Pawn, Black); !r.Pawn || r.Jumps[0].DY != -1 {
		t.Errorf("black pawn rule = %+v", r)
	}
	if c.FENChar(Knight, White) != 'N' || c.FENChar(Knight, Black) != 'n' {
		t.Error("knight FEN letters wrong")
	}
	if c.Value(Queen) != 900 || c.Value(King) != 0 {
		t.Error("unexpected piece values")
	}

	defer func() {
		if recover() == nil {
			t.Error("Rule(Empty) did not panic")
		}
	}()
	c.Rule(Empty, White)
}

func TestParseFEN(t *testing.T) {
	s, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN(start): %v", err)
	}
	if len(s.Pieces) != 32 || s.Turn != White || s.Castling != AllCastling || s.EnPassant != NoSquare {
		t.Errorf("unexpected start setup %+v", s)
	}
	if got := s.FEN(NewCatalog()); got != StartFEN {
		t.Errorf("FEN() = %q, want %q", got, StartFEN)
	}

	s, err = ParseFEN("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6")
	if err != nil {
		t.Fatalf("ParseFEN without counters: %v", err)
	}
	if s.HalfMove != 0 || s.FullMove != 1 || s.EnPassant != E6 {
		t.Errorf("counters = %d/%d ep=%v", s.HalfMove, s.FullMove, s.EnPassant)
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		field string
	}{
		{"too few fields", "8/8/8/8/8/8/8/8 w", "record"},
		{"seven ranks", "8/8/8/8/8/8/8 w - -", "placement"},
		{"bad letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq -", "placement"},
		{"long rank", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -", "placement"},
		{"no black king", "8/8/8/8/8/8/8/4K3 w - -", "placement"},
		{"pawn on rank 8", "P3k3/8/8/8/8/8/8/4K3 w - -", "placement"},
		{"bad turn", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq -", "turn"},
		{"bad castling", "4k3/8/8/8/8/8/8/4K3 w KX -", "castling"},
		{"bad en passant rank", "4k3/8/8/8/8/8/8/4K3 w - e4", "en passant"},
		{"negative clock", "4k3/8/8/8/8/8/8/4K3 w - - -1 1", "halfmove clock"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFEN(tc.fen)
			var fe *FENError
			if !errors.As(err, &fe) {
				t.Fatalf("ParseFEN(%q) error = %v, want *FENError", tc.fen, err)
			}
			if fe.Field != tc.field {
				t.Errorf("field = %q, want %q", fe.Field, tc.field)
			}
		})
	}
}

func TestParseFENEmptyRuns(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		reason string
	}{
		{"adjacent digits", "rnbqkbnr/pppppppp/71/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "consecutive empty-square digits"},
		{"split run", "4k3/8/8/8/8/8/8/3K13 w - - 0 1", "consecutive empty-square digits"},
		{"nine", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "invalid empty-square run"},
		{"zero", "4k3/8/8/8/08/8/8/4K3 w - - 0 1", "invalid empty-square run"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFEN(tc.fen)
			var fe *FENError
			if !errors.As(err, &fe) {
				t.Fatalf("ParseFEN(%q) error = %v, want *FENError", tc.fen, err)
			}
			if fe.Field != "placement" || fe.Reason != tc.reason {
				t.Errorf("error = %v, want placement: %s", fe, tc.reason)
			}
		})
	}
	if _, err := ParseFEN("4k3/8/8/8/3p4/8/8/4K3 w - - 0 1"); err != nil {
		t.Errorf("digit after a piece rejected: %v", err)
	}
}

func TestKeyPutAt(t *testing.T) {
	var a, b Key
	a.Put(E4, Knight, Black)
	if k, tm := a.At(E4); k != Knight || tm != Black {
		t.Fatalf("At(e4) = %v %v", k, tm)
	}
	if k, _ := a.At(E5); k != Empty {
		t.Fatalf("At(e5) = %v, want Empty", k)
	}
	if a == b {
		t.Fatal("keys with different placement compare equal")
	}
	a.Put(E4, Empty, NoTeam)
	if a != b {
		t.Fatal("clearing the square did not restore the key")
	}
	b.EnPassant = E3
	if a == b {
		t.Fatal("keys with different en passant compare equal")
	}
}
