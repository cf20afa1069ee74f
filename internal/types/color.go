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

// Color is the side to move or the owning side of a piece. There is a
// single two-valued enumeration for this; earlier drafts of the engine
// kept a duplicate "Player" type with the same domain, which is unified
// here (the Zobrist/eval code never needs to tell them apart).
type Color int8

const (
	White Color = iota
	Black
	ColorLength
	ColorNone = ColorLength
)

// Flip returns the opposing color.
func (c Color) Flip() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// IsValid reports whether c is White or Black.
func (c Color) IsValid() bool {
	return c == White || c == Black
}

// PawnDir is the direction a pawn of this color advances in, expressed as
// a delta in square indices (+8 for White moving up the board, -8 for
// Black moving down it).
func (c Color) PawnDir() int {
	if c == White {
		return 8
	}
	return -8
}

// PromotionRank is the rank a pawn of this color must reach to promote.
func (c Color) PromotionRank() Rank {
	if c == White {
		return Rank8
	}
	return Rank1
}

// PawnStartRank is the rank pawns of this color stand on at game start.
func (c Color) PawnStartRank() Rank {
	if c == White {
		return Rank2
	}
	return Rank7
}

// Direction is +1 for White and -1 for Black, the sign a white-centric
// value is multiplied by to flip it to this color's point of view.
func (c Color) Direction() int {
	if c == White {
		return 1
	}
	return -1
}
