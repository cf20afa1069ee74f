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

// CastlingRights packs the four castling rights (WK, WQ, BK, BQ) into the
// low 4 bits of a byte; also used directly as the index/XOR-key selector
// for the Zobrist castling-mask table (16 entries, one per combination).
type CastlingRights uint8

const (
	CastlingWK CastlingRights = 1 << iota
	CastlingWQ
	CastlingBK
	CastlingBQ
	CastlingNone CastlingRights = 0
	CastlingAll  CastlingRights = CastlingWK | CastlingWQ | CastlingBK | CastlingBQ
)

// Has reports whether all bits of mask are set.
func (c CastlingRights) Has(mask CastlingRights) bool {
	return c&mask == mask
}

// Remove clears the bits of mask and returns the result.
func (c CastlingRights) Remove(mask CastlingRights) CastlingRights {
	return c &^ mask
}

func (c CastlingRights) String() string {
	if c == CastlingNone {
		return "-"
	}
	s := ""
	if c.Has(CastlingWK) {
		s += "K"
	}
	if c.Has(CastlingWQ) {
		s += "Q"
	}
	if c.Has(CastlingBK) {
		s += "k"
	}
	if c.Has(CastlingBQ) {
		s += "q"
	}
	return s
}

// castlingRightsLostAt, indexed by square, clears the rights that square
// losing its original piece (king moving, or either rook's home square
// being vacated or captured on) invalidates. Computed once in init()
// from the well-known corner/king home squares.
var castlingRightsLostAt [SqLength]CastlingRights

func init() {
	castlingRightsLostAt[SqE1] = CastlingWK | CastlingWQ
	castlingRightsLostAt[SqA1] = CastlingWQ
	castlingRightsLostAt[SqH1] = CastlingWK
	castlingRightsLostAt[SqE8] = CastlingBK | CastlingBQ
	castlingRightsLostAt[SqA8] = CastlingBQ
	castlingRightsLostAt[SqH8] = CastlingBK
}

// CastlingRightsLostAt returns the castling-rights bits invalidated by a
// piece leaving or arriving on sq (used identically for the move's source
// and destination square in DoMove's rights update).
func CastlingRightsLostAt(sq Square) CastlingRights {
	return castlingRightsLostAt[sq]
}
