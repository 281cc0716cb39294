package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FENError reports which field of a FEN string was rejected.
type FENError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FENError) Error() string {
	return fmt.Sprintf("invalid FEN %s %q: %s", e.Field, e.Value, e.Reason)
}

// Placement is one piece of a parsed position.
type Placement struct {
	Kind   Kind
	Team   Team
	Square Square
}

// Setup is a parsed FEN position, before any derived state is built.
type Setup struct {
	Pieces    []Placement
	Turn      Team
	Castling  CastlingRights
	EnPassant Square
	HalfMove  int
	FullMove  int
}

// ParseFEN parses a FEN string. The halfmove clock and fullmove number may be
// omitted.
func ParseFEN(fen string) (*Setup, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, &FENError{Field: "record", Value: fen, Reason: fmt.Sprintf("need at least 4 fields, got %d", len(parts))}
	}
	if len(parts) > 6 {
		return nil, &FENError{Field: "record", Value: fen, Reason: fmt.Sprintf("too many fields: %d", len(parts))}
	}

	s := &Setup{EnPassant: NoSquare, FullMove: 1}

	if err := parsePlacement(s, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		s.Turn = White
	case "b":
		s.Turn = Black
	default:
		return nil, &FENError{Field: "turn", Value: parts[1], Reason: "must be w or b"}
	}

	if err := parseCastling(s, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, &FENError{Field: "en passant", Value: parts[3], Reason: err.Error()}
		}
		want := 5
		if s.Turn == Black {
			want = 2
		}
		if sq.Y() != want {
			return nil, &FENError{Field: "en passant", Value: parts[3], Reason: "square is not behind a double push"}
		}
		s.EnPassant = sq
	}

	if len(parts) > 4 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return nil, &FENError{Field: "halfmove clock", Value: parts[4], Reason: "must be a non-negative integer"}
		}
		s.HalfMove = n
	}
	if len(parts) > 5 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return nil, &FENError{Field: "fullmove number", Value: parts[5], Reason: "must be a positive integer"}
		}
		s.FullMove = n
	}

	return s, nil
}

func parsePlacement(s *Setup, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return &FENError{Field: "placement", Value: placement, Reason: fmt.Sprintf("need 8 ranks, got %d", len(ranks))}
	}

	var kings [2]int
	for i, rank := range ranks {
		y := 7 - i // FEN starts from rank 8
		x := 0
		prevDigit := false
		for j := 0; j < len(rank); j++ {
			c := rank[j]
			if c >= '0' && c <= '9' {
				if c == '0' || c == '9' {
					return &FENError{Field: "placement", Value: string(c), Reason: "invalid empty-square run"}
				}
				if prevDigit {
					return &FENError{Field: "placement", Value: rank, Reason: "consecutive empty-square digits"}
				}
				prevDigit = true
				x += int(c - '0')
				if x > 8 {
					return &FENError{Field: "placement", Value: rank, Reason: fmt.Sprintf("rank %d has more than 8 squares", y+1)}
				}
				continue
			}
			prevDigit = false
			team := White
			lower := c
			if c >= 'a' && c <= 'z' {
				team = Black
			} else {
				lower = c - 'A' + 'a'
			}
			kind := KindFromChar(lower)
			if kind == Empty {
				return &FENError{Field: "placement", Value: string(c), Reason: "unknown piece letter"}
			}
			sq, ok := TryFromXY(x, y)
			if !ok {
				return &FENError{Field: "placement", Value: rank, Reason: fmt.Sprintf("rank %d has more than 8 squares", y+1)}
			}
			if kind == Pawn && (y == 0 || y == 7) {
				return &FENError{Field: "placement", Value: sq.String(), Reason: "pawn on a back rank"}
			}
			if kind == King {
				kings[team]++
			}
			s.Pieces = append(s.Pieces, Placement{Kind: kind, Team: team, Square: sq})
			x++
		}
		if x != 8 {
			return &FENError{Field: "placement", Value: rank, Reason: fmt.Sprintf("rank %d has %d squares", y+1, x)}
		}
	}

	if kings[White] != 1 || kings[Black] != 1 {
		return &FENError{Field: "placement", Value: placement, Reason: "each side needs exactly one king"}
	}
	if len(s.Pieces) > 32 {
		return &FENError{Field: "placement", Value: placement, Reason: "more than 32 pieces"}
	}
	return nil
}

func parseCastling(s *Setup, castling string) error {
	if castling == "-" {
		return nil
	}
	for _, c := range castling {
		var r CastlingRights
		switch c {
		case 'K':
			r = WhiteKingSide
		case 'Q':
			r = WhiteQueenSide
		case 'k':
			r = BlackKingSide
		case 'q':
			r = BlackQueenSide
		default:
			return &FENError{Field: "castling", Value: castling, Reason: fmt.Sprintf("invalid character %q", c)}
		}
		if s.Castling&r != 0 {
			return &FENError{Field: "castling", Value: castling, Reason: fmt.Sprintf("repeated %q", c)}
		}
		s.Castling |= r
	}
	return nil
}

// FEN formats the setup back into a six-field FEN string.
func (s *Setup) FEN(c *Catalog) string {
	var grid Grid[Placement]
	var occupied Bitboard
	for _, p := range s.Pieces {
		grid.Set(p.Square, p)
		occupied = occupied.With(p.Square)
	}

	var sb strings.Builder
	for y := 7; y >= 0; y-- {
		empty := 0
		for x := 0; x < 8; x++ {
			sq := MustXY(x, y)
			if !occupied.Has(sq) {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			p := grid.Get(sq)
			sb.WriteByte(c.FENChar(p.Kind, p.Team))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if y > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if s.Turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(s.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(s.EnPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.HalfMove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.FullMove))
	return sb.String()
}
