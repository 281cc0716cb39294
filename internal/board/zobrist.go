package board

// Zobrist keys are drawn from a fixed-seed PRNG so hashes are reproducible
// across runs.
var (
	zobristPiece     [2][NumKinds][64]uint64
	zobristEnPassant [8]uint64
	zobristCastling  [16]uint64
	zobristBlack     uint64
)

func init() {
	rng := xorshift{state: 0x6F78696465C0FFEE}
	for t := White; t <= Black; t++ {
		for k := Pawn; k <= King; k++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[t][k][sq] = rng.next()
			}
		}
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristBlack = rng.next()
}

// xorshift64*
type xorshift struct {
	state uint64
}

func (x *xorshift) next() uint64 {
	x.state ^= x.state >> 12
	x.state ^= x.state << 25
	x.state ^= x.state >> 27
	return x.state * 0x2545F4914F6CDD1D
}

// ZobristPiece returns the key of a piece standing on a square.
func ZobristPiece(t Team, k Kind, sq Square) uint64 {
	return zobristPiece[t][k][sq]
}

// ZobristEnPassant returns the key of an en passant target, or 0 for none.
func ZobristEnPassant(sq Square) uint64 {
	if sq >= NoSquare {
		return 0
	}
	return zobristEnPassant[sq.X()]
}

// ZobristCastling returns the key of a castling rights combination.
func ZobristCastling(cr CastlingRights) uint64 {
	return zobristCastling[cr&AllCastling]
}

// ZobristTurn returns the key folded in when Black is to move.
func ZobristTurn(t Team) uint64 {
	if t == Black {
		return zobristBlack
	}
	return 0
}
