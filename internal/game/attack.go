package game

import "github.com/aspiringLich/oxide-gambit/internal/board"

// AttackSet records the squares one team attacks. Jumping pieces and pawns
// add to NonSliding counters; each sliding ray sets its direction bit on
// every square it reaches, up to and including the first occupied one.
type AttackSet struct {
	NonSliding board.Grid[uint8]
	Sliding    board.Grid[board.RayMask]
}

// AttackTracker holds one AttackSet per team.
type AttackTracker struct {
	sets [2]AttackSet
}

// Set returns the attack set of a team.
func (a *AttackTracker) Set(t board.Team) *AttackSet {
	return &a.sets[t]
}

// AddStatic counts one more jumping attacker of sq.
func (a *AttackTracker) AddStatic(t board.Team, sq board.Square) {
	c := a.sets[t].NonSliding.Ptr(sq)
	if Invariant(*c < 255, "static attack counter overflow on %v", sq) {
		*c++
	}
}

// RemoveStatic counts one jumping attacker of sq less.
func (a *AttackTracker) RemoveStatic(t board.Team, sq board.Square) {
	c := a.sets[t].NonSliding.Ptr(sq)
	if Invariant(*c > 0, "static attack counter of %v %v would go negative", t, sq) {
		*c--
	}
}

// AddSliding marks sq as reached by a ray travelling in direction d.
func (a *AttackTracker) AddSliding(t board.Team, sq board.Square, d board.Direction) {
	m := a.sets[t].Sliding.Ptr(sq)
	if Invariant(!m.Has(d), "%v ray %v already set on %v", t, d, sq) {
		*m = m.With(d)
	}
}

// RemoveSliding clears the ray bit for direction d on sq.
func (a *AttackTracker) RemoveSliding(t board.Team, sq board.Square, d board.Direction) {
	m := a.sets[t].Sliding.Ptr(sq)
	if Invariant(m.Has(d), "%v ray %v not set on %v", t, d, sq) {
		*m = m.Without(d)
	}
}

// IsAttacked reports whether team by attacks sq.
func (a *AttackTracker) IsAttacked(sq board.Square, by board.Team) bool {
	set := &a.sets[by]
	return set.NonSliding.Get(sq) != 0 || set.Sliding.Get(sq) != 0
}

// Attackers returns the number of pieces of team by attacking sq.
func (a *AttackTracker) Attackers(sq board.Square, by board.Team) int {
	set := &a.sets[by]
	return int(set.NonSliding.Get(sq)) + set.Sliding.Get(sq).Count()
}

// GenerateAttacks recomputes both teams' attack maps from the placement.
func GenerateAttacks(s *State) AttackTracker {
	fresh := *s
	fresh.attacks = AttackTracker{}
	for _, t := range []board.Team{board.White, board.Black} {
		for _, slot := range fresh.Slots(t) {
			fresh.threats(slot, true)
		}
	}
	return fresh.attacks
}

// threats adds or removes every attack of the piece in slot, walking rays
// over the current occupancy.
func (s *State) threats(slot Slot, add bool) {
	p := s.pieces[slot]
	rule := s.catalog.Rule(p.Kind, p.Team)
	for _, o := range rule.Jumps {
		to, ok := p.Square.Offset(o.DX, o.DY)
		if !ok {
			continue
		}
		if add {
			s.attacks.AddStatic(p.Team, to)
		} else {
			s.attacks.RemoveStatic(p.Team, to)
		}
	}
	for _, d := range rule.Slides {
		s.ray(p.Team, p.Square, d, add)
	}
}

// ray sets or clears direction d on the squares after from, stopping at the
// first occupied square inclusive.
func (s *State) ray(t board.Team, from board.Square, d board.Direction, add bool) {
	for to, ok := from.Step(d); ok; to, ok = to.Step(d) {
		if add {
			s.attacks.AddSliding(t, to, d)
		} else {
			s.attacks.RemoveSliding(t, to, d)
		}
		if s.squares.Get(to) != NoSlot {
			return
		}
	}
}

// lift takes a piece off the board: its threats go, its square empties, and
// every ray that stopped on the square now continues past it.
func (s *State) lift(slot Slot) {
	sq := s.pieces[slot].Square
	s.threats(slot, false)
	s.vacate(slot)
	for _, t := range []board.Team{board.White, board.Black} {
		mask := s.attacks.sets[t].Sliding.Get(sq)
		for _, d := range board.AllDirections {
			if mask.Has(d) {
				s.ray(t, sq, d, true)
			}
		}
	}
}

// drop puts a lifted piece on an empty square: rays passing through it are
// cut short there, then the piece's own threats are added.
func (s *State) drop(slot Slot, sq board.Square) {
	Invariant(s.squares.Get(sq) == NoSlot, "drop onto occupied %v", sq)
	for _, t := range []board.Team{board.White, board.Black} {
		mask := s.attacks.sets[t].Sliding.Get(sq)
		for _, d := range board.AllDirections {
			if mask.Has(d) {
				s.ray(t, sq, d, false)
			}
		}
	}
	s.place(slot, sq)
	s.threats(slot, true)
}

// capture puts a lifted piece on an occupied square. The occupancy of the
// square does not change, so rays through it are untouched.
func (s *State) capture(slot Slot, sq board.Square) Slot {
	victim := s.squares.Get(sq)
	s.threats(victim, false)
	s.vacate(victim)
	s.kill(victim)
	s.place(slot, sq)
	s.threats(slot, true)
	return victim
}
