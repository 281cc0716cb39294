package board

import "fmt"

// Grid is a fixed board of 64 cells. It stores piece slots, attack
// counters or ray masks depending on T.
type Grid[T any] [64]T

// Get returns the cell at sq. An out-of-range square is a programming error.
func (g *Grid[T]) Get(sq Square) T {
	if sq >= NoSquare {
		panic(fmt.Sprintf("board: grid index %d out of range", sq))
	}
	return g[sq]
}

// Set stores v at sq. An out-of-range square is a programming error.
func (g *Grid[T]) Set(sq Square, v T) {
	if sq >= NoSquare {
		panic(fmt.Sprintf("board: grid index %d out of range", sq))
	}
	g[sq] = v
}

// Ptr returns a pointer to the cell at sq for in-place updates.
func (g *Grid[T]) Ptr(sq Square) *T {
	if sq >= NoSquare {
		panic(fmt.Sprintf("board: grid index %d out of range", sq))
	}
	return &g[sq]
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g {
		g[i] = v
	}
}
