package board

import "fmt"

// Offset is a relative step on the board.
type Offset struct {
	DX, DY int
}

// Rule describes how a piece of one kind and team moves and attacks.
type Rule struct {
	// Jumps are fixed offsets: knight and king moves, pawn captures.
	Jumps []Offset
	// Slides are the ray directions of bishops, rooks and queens.
	Slides []Direction
	// Pawn marks the push, double push, en passant and promotion rules.
	Pawn bool
}

// Catalog is the immutable table of piece rules and display data. Build it
// once with NewCatalog and share it by pointer.
type Catalog struct {
	rules  [2][NumKinds]Rule
	runes  [2][NumKinds]rune
	chars  [2][NumKinds]byte
	names  [NumKinds]string
	values [NumKinds]int
}

var (
	knightJumps = []Offset{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingJumps   = []Offset{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
)

// NewCatalog builds the standard chess catalog.
func NewCatalog() *Catalog {
	c := &Catalog{}
	for _, t := range []Team{White, Black} {
		f := t.Forward()
		c.rules[t][Pawn] = Rule{Jumps: []Offset{{-1, f}, {1, f}}, Pawn: true}
		c.rules[t][Knight] = Rule{Jumps: knightJumps}
		c.rules[t][Bishop] = Rule{Slides: Diagonals}
		c.rules[t][Rook] = Rule{Slides: Orthogonals}
		c.rules[t][Queen] = Rule{Slides: AllDirections[:]}
		c.rules[t][King] = Rule{Jumps: kingJumps}
	}

	white := []rune{' ', '♙', '♘', '♗', '♖', '♕', '♔'}
	black := []rune{' ', '♟', '♞', '♝', '♜', '♛', '♚'}
	letters := "-pnbrqk"
	for k := Kind(0); k < NumKinds; k++ {
		c.runes[White][k] = white[k]
		c.runes[Black][k] = black[k]
		c.chars[Black][k] = letters[k]
		c.chars[White][k] = upper(letters[k])
		c.names[k] = k.String()
	}
	c.values = [NumKinds]int{0, 100, 300, 300, 500, 900, 0}
	return c
}

// Rule returns the movement rule of a kind. Asking for Empty is a programming
// error.
func (c *Catalog) Rule(k Kind, t Team) *Rule {
	if k == Empty || k >= NumKinds || t > Black {
		panic(fmt.Sprintf("board: no rule for %v %v", t, k))
	}
	return &c.rules[t][k]
}

// DisplayRune returns the Unicode chess symbol of a piece.
func (c *Catalog) DisplayRune(k Kind, t Team) rune {
	return c.runes[t&1][k]
}

// FENChar returns the FEN letter of a piece: uppercase for White.
func (c *Catalog) FENChar(k Kind, t Team) byte {
	return c.chars[t&1][k]
}

// Name returns the English name of a kind.
func (c *Catalog) Name(k Kind) string {
	return c.names[k]
}

// Value returns the material value of a kind in centipawns.
func (c *Catalog) Value(k Kind) int {
	return c.values[k]
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
