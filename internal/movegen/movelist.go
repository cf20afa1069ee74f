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

package movegen

import (
	"github.com/kvchess/kestrel/internal/engineering/assert"
	. "github.com/kvchess/kestrel/internal/types"
)

// MaxMoves is an upper bound on the number of pseudo-legal moves any
// reachable chess position can have - comfortably above the theoretical
// maximum (218), so a MoveList never needs to grow.
const MaxMoves = 256

// MoveList is a fixed-capacity move buffer. It lives on the stack (or
// inline in whatever struct embeds it) so generating moves at every node
// of a search tree costs no heap allocation, unlike a growable slice.
type MoveList struct {
	moves [MaxMoves]Move
	n     int
}

// Add appends m to the list.
func (l *MoveList) Add(m Move) {
	assert.Assert(l.n < MaxMoves, "move list overflow")
	l.moves[l.n] = m
	l.n++
}

// Len returns the number of moves currently stored.
func (l *MoveList) Len() int { return l.n }

// At returns the i'th move.
func (l *MoveList) At(i int) Move { return l.moves[i] }

// Clear empties the list for reuse without releasing its backing array.
func (l *MoveList) Clear() { l.n = 0 }

// Slice returns the populated prefix of the backing array. The result
// aliases the MoveList's storage and is only valid until the next Add or
// Clear.
func (l *MoveList) Slice() []Move { return l.moves[:l.n] }

// SetAt overwrites the i'th move, used to attach sort values in place.
func (l *MoveList) SetAt(i int, m Move) { l.moves[i] = m }

// Contains reports whether m is present in the list, comparing purely on
// the packed from/to/flag bits and ignoring any attached sort values.
func (l *MoveList) Contains(m Move) bool {
	m = m.MoveOf()
	for i := 0; i < l.n; i++ {
		if l.moves[i].MoveOf() == m {
			return true
		}
	}
	return false
}

// Swap exchanges the moves at indices i and j, used by the insertion
// sort in move ordering.
func (l *MoveList) Swap(i, j int) {
	l.moves[i], l.moves[j] = l.moves[j], l.moves[i]
}

// SortByValue orders the list by descending attached sort value, with an
// insertion sort - move lists are short and mostly sorted once scored,
// where insertion sort beats the allocation-happy generic sorts.
func (l *MoveList) SortByValue() {
	for i := 1; i < l.n; i++ {
		tmp := l.moves[i]
		j := i
		for j > 0 && tmp.ValueOf() > l.moves[j-1].ValueOf() {
			l.moves[j] = l.moves[j-1]
			j--
		}
		l.moves[j] = tmp
	}
}
