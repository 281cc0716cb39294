package board

// Key identifies a position exactly: placement, side to move, castling rights
// and en passant target. Two positions with equal keys have identical move
// trees. Keys are comparable with ==.
type Key struct {
	cells     [32]byte // one nibble per square: kind | team<<3
	Turn      Team
	Castling  CastlingRights
	EnPassant Square
}

// Put records a piece on sq. Empty clears the square.
func (k *Key) Put(sq Square, kind Kind, t Team) {
	var nibble byte
	if kind != Empty {
		nibble = byte(kind) | byte(t&1)<<3
	}
	shift := (sq & 1) * 4
	k.cells[sq/2] = k.cells[sq/2]&^(0xF<<shift) | nibble<<shift
}

// At returns the piece recorded on sq.
func (k *Key) At(sq Square) (Kind, Team) {
	nibble := k.cells[sq/2] >> ((sq & 1) * 4) & 0xF
	kind := Kind(nibble & 7)
	if kind == Empty {
		return Empty, NoTeam
	}
	return kind, Team(nibble >> 3)
}
