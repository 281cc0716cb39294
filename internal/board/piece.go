package board

// Team is the side a piece belongs to.
type Team uint8

const (
	White Team = iota
	Black
	NoTeam Team = 2
)

// Other returns the opposing team.
func (t Team) Other() Team {
	return t ^ 1
}

// String returns the team name.
func (t Team) String() string {
	switch t {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoTeam"
	}
}

// Forward returns the rank step of the team's pawns.
func (t Team) Forward() int {
	if t == White {
		return 1
	}
	return -1
}

// Kind is the closed set of piece kinds. Empty is a sentinel that is never
// returned by a catalog lookup.
type Kind uint8

const (
	Empty Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// NumKinds is the number of kinds including Empty.
const NumKinds = 7

// PromotionKinds lists the promotion choices, strongest first.
var PromotionKinds = [4]Kind{Queen, Rook, Bishop, Knight}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "Empty"
	}
}

// IsSlider reports whether the kind moves along rays.
func (k Kind) IsSlider() bool {
	return k == Bishop || k == Rook || k == Queen
}

// SlidesAlong reports whether a piece of this kind attacks along d.
func (k Kind) SlidesAlong(d Direction) bool {
	switch k {
	case Queen:
		return true
	case Rook:
		return !d.IsDiagonal()
	case Bishop:
		return d.IsDiagonal()
	}
	return false
}

// KindFromChar maps a lowercase FEN letter to a kind.
func KindFromChar(c byte) Kind {
	switch c {
	case 'p':
		return Pawn
	case 'n':
		return Knight
	case 'b':
		return Bishop
	case 'r':
		return Rook
	case 'q':
		return Queen
	case 'k':
		return King
	}
	return Empty
}

// CastlingRights is the set of castling options still available.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// String returns the FEN castling field.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	for i, c := range "KQkq" {
		if cr&(1<<i) != 0 {
			s += string(c)
		}
	}
	return s
}

// Right returns the castling flag for a team and wing.
func Right(t Team, kingSide bool) CastlingRights {
	switch {
	case t == White && kingSide:
		return WhiteKingSide
	case t == White:
		return WhiteQueenSide
	case kingSide:
		return BlackKingSide
	default:
		return BlackQueenSide
	}
}

// Has reports whether the team may still castle on the given wing.
func (cr CastlingRights) Has(t Team, kingSide bool) bool {
	return cr&Right(t, kingSide) != 0
}
