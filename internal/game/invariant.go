// Package game maintains a legal chess position: the piece arena, the
// incremental attack maps, pins, per-piece move sets and the running
// material and positional score.
package game

import (
	"fmt"

	"github.com/charmbracelet/log"
)

var logger = log.WithPrefix("game")

// DebugInvariants makes invariant violations panic instead of being logged.
// Tests turn it on.
var DebugInvariants = false

// Invariant reports whether cond holds. A violation panics in debug mode and
// is logged otherwise; callers skip the offending update when it returns false.
func Invariant(cond bool, format string, args ...any) bool {
	if cond {
		return true
	}
	msg := fmt.Sprintf(format, args...)
	if DebugInvariants {
		panic("game: invariant violated: " + msg)
	}
	logger.Error("invariant violated", "detail", msg)
	return false
}
