//
// Kestrel - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 Kestrel contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package history holds the search's long-lived move-ordering tables: a
// butterfly history table for quiet moves, a capture-history table, and a
// counter-move table. Killer moves live with the per-ply move generators
// instead - they are positional to a ply, these tables are global to the
// search.
package history

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	. "github.com/kvchess/kestrel/internal/types"
)

var out = message.NewPrinter(language.German)

// historyCap bounds the magnitude a history/capture score can grow to;
// the gravity update keeps scores inside roughly this range on its own,
// but the cap guards against pathological depths.
const historyCap = 1 << 20

// History holds the move-ordering tables accumulated during a search.
// It is owned by the search driver and cleared between games, not between
// iterative-deepening depths, so ordering keeps improving across the
// iteration.
type History struct {
	quiet   [ColorLength][SqLength][SqLength]int32
	capture [PieceLength][SqLength][PtLength]int32
	counter [SqLength][SqLength]Move
}

// NewHistory creates an empty History table.
func NewHistory() *History {
	return &History{}
}

// Clear zeroes every table, used when a new game begins.
func (h *History) Clear() {
	*h = History{}
}

// bonus is the update magnitude for a fail-high at the given depth:
// grows with depth squared, capped so one huge beta cutoff at high depth
// can't swamp the table.
func bonus(depth int) int32 {
	b := int32(16 * (depth + 1) * (depth + 1))
	if b > 1200 {
		b = 1200
	}
	return b
}

// RewardQuiet credits a quiet move that caused a beta cutoff.
func (h *History) RewardQuiet(us Color, m Move, depth int) {
	h.applyQuiet(us, m, bonus(depth))
}

// PenalizeQuiet debits a quiet move that was searched before the cutoff
// move and failed, by the same magnitude the cutoff move gained.
func (h *History) PenalizeQuiet(us Color, m Move, depth int) {
	h.applyQuiet(us, m, -bonus(depth))
}

// applyQuiet is the "gravity" update: the delta is scaled down as the
// current score moves away from zero, so no entry runs away without
// bound and stale entries decay as soon as the evidence turns.
func (h *History) applyQuiet(us Color, m Move, delta int32) {
	cell := &h.quiet[us][m.From()][m.To()]
	scaled := delta - int32(abs64(int64(delta))*int64(*cell)/32768)
	*cell = clamp(*cell + scaled)
}

// RewardCapture credits a capture that caused a beta cutoff, keyed by
// the moving piece, destination square and captured piece type.
func (h *History) RewardCapture(moving Piece, m Move, captured PieceType, depth int) {
	h.applyCapture(moving, m, captured, bonus(depth))
}

// PenalizeCapture debits a capture searched before the cutoff move.
func (h *History) PenalizeCapture(moving Piece, m Move, captured PieceType, depth int) {
	h.applyCapture(moving, m, captured, -bonus(depth))
}

func (h *History) applyCapture(moving Piece, m Move, captured PieceType, delta int32) {
	if captured == PtNone {
		return
	}
	cell := &h.capture[moving][m.To()][captured]
	scaled := delta - int32(abs64(int64(delta))*int64(*cell)/32768)
	*cell = clamp(*cell + scaled)
}

// AddCounterMove records m as the refutation of the opponent's move prev.
func (h *History) AddCounterMove(prev Move, m Move) {
	if prev == MoveNone {
		return
	}
	h.counter[prev.From()][prev.To()] = m.MoveOf()
}

// CounterMove returns the recorded refutation of prev, or MoveNone.
func (h *History) CounterMove(prev Move) Move {
	if prev == MoveNone {
		return MoveNone
	}
	return h.counter[prev.From()][prev.To()]
}

// QuietScore returns the butterfly history score for a quiet move.
func (h *History) QuietScore(us Color, m Move) int32 {
	return h.quiet[us][m.From()][m.To()]
}

// CaptureScore returns the capture-history score for a capturing move.
func (h *History) CaptureScore(moving Piece, m Move, captured PieceType) int32 {
	if captured == PtNone {
		return 0
	}
	return h.capture[moving][m.To()][captured]
}

func clamp(v int32) int32 {
	if v > historyCap {
		return historyCap
	}
	if v < -historyCap {
		return -historyCap
	}
	return v
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func (h *History) String() string {
	sb := strings.Builder{}
	for sf := SqA1; sf < SqNone; sf++ {
		for st := SqA1; st < SqNone; st++ {
			w := h.quiet[White][sf][st]
			b := h.quiet[Black][sf][st]
			if w == 0 && b == 0 {
				continue
			}
			sb.WriteString(out.Sprintf("%s%s: w=%d b=%d\n", sf.String(), st.String(), w, b))
		}
	}
	return sb.String()
}
