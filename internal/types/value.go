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

package types

import (
	"strconv"
	"strings"
)

// Value is a centipawn score or search score, always from the
// side-to-move's perspective unless documented otherwise.
type Value int32

const (
	ValueZero Value = 0
	// ValueDraw is returned for stalemate and draw-by-rule nodes.
	ValueDraw Value = 0
	// ValueMate is the score magnitude of an immediate checkmate; a mate
	// found at ply p is scored ValueMate-p so that shorter mates sort
	// ahead of longer ones.
	ValueMate Value = 32000
	// ValueInfinite bounds the alpha-beta window at the root.
	ValueInfinite Value = 32001
	// ValueNone marks "no value", e.g. an empty TT slot's eval field.
	ValueNone Value = 32002
	// ValueNA marks a value that was never computed - distinct from
	// ValueNone, it's the sentinel search uses for "no result yet" at a
	// node it bailed out of early (checked with IsValid, not ==).
	ValueNA Value = -(ValueInfinite + 1)

	// ValueMax/ValueMin bound the alpha-beta window at the root of a
	// search - wide enough to never clip a real evaluation or mate score.
	ValueMax Value = ValueInfinite
	ValueMin Value = -ValueInfinite

	// ValueCheckMate is the search's immediate-mate score; search.go
	// subtracts the current ply from it so shorter mates outscore longer
	// ones. Kept equal to ValueMate so mate-distance code shares one scale.
	ValueCheckMate Value = ValueMate

	// ValueCheckMateThreshold is the score above which a value is treated
	// as a forced mate rather than a material/positional evaluation -
	// comfortably below any mate found within MaxDepth plies of the root.
	ValueCheckMateThreshold Value = ValueCheckMate - MaxDepth - 1
)

// MaxDepth bounds both the iterative-deepening search depth and the ply
// index into per-ply search state (pv lines, move generators, killer
// tables) - deep enough for any practical time control.
const MaxDepth = 128

// IsValid reports whether v is a usable search/eval score, excluding the
// ValueNA/ValueNone sentinels.
func (v Value) IsValid() bool {
	return v >= -ValueInfinite && v <= ValueInfinite
}

// IsMateScore reports whether v is within mate-distance range of ValueMate,
// i.e. it encodes "mate in N" rather than a material/positional score.
func IsMateScore(v Value) bool {
	return v >= ValueMate-256 || v <= -(ValueMate-256)
}

// IsCheckMateValue reports whether v encodes a mate score - the search
// driver uses this to adjust mate scores for distance-to-root when they
// cross a ply boundary going into or out of the TT.
func (v Value) IsCheckMateValue() bool {
	return IsMateScore(v)
}

// String renders v the way UCI "info score" expects: "cp <n>" for a
// material/positional score, "mate <n>" (negative if being mated) for a
// forced mate, or "N/A" for the ValueNA/ValueNone sentinels.
func (v Value) String() string {
	var b strings.Builder
	switch {
	case v == ValueNA || v == ValueNone:
		b.WriteString("N/A")
	case v.IsCheckMateValue():
		b.WriteString("mate ")
		n := MateIn(v)
		b.WriteString(strconv.Itoa(n))
	default:
		b.WriteString("cp ")
		b.WriteString(strconv.Itoa(int(v)))
	}
	return b.String()
}

// MateIn returns the number of full moves to an encoded mate score (a
// mate at ply p gives (p+1)/2), or 0 if v is not a mate score. Positive
// means the side to move delivers mate; negative means it is mated.
func MateIn(v Value) int {
	switch {
	case v >= ValueMate-256:
		return int(ValueMate-v+1) / 2
	case v <= -ValueMate+256:
		return -int(ValueMate+v+1) / 2
	}
	return 0
}

// GamePhaseMax is the game-phase counter value for a fully-loaded board
// (all non-pawn, non-king material present); evaluation interpolates
// between middlegame and endgame piece-square tables as this counter
// drops toward 0.
const GamePhaseMax = 24

// PhaseWeight is the game-phase contribution of one piece of the type,
// used to compute the tapered-eval phase counter incrementally as pieces
// are captured.
var PhaseWeight = [PtLength]int{
	Pawn:   0,
	Knight: 1,
	Bishop: 1,
	Rook:   2,
	Queen:  4,
	King:   0,
}
