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

// Package types holds the closed enumerations and packed primitives shared
// by every other package: squares, files/ranks, colors, piece types, moves
// and bitboards. Nothing here allocates; dispatch on Color/PieceType is by
// array index, never a virtual call.

import "fmt"

// Square is a board square, 0..63, a1=0, h8=63. SqNone (64) means "no
// square" and is a valid, total value for every function taking a Square.
type Square int8

const (
	SqA1 Square = iota
	SqB1
	SqC1
	SqD1
	SqE1
	SqF1
	SqG1
	SqH1
	SqA2
	SqB2
	SqC2
	SqD2
	SqE2
	SqF2
	SqG2
	SqH2
	SqA3
	SqB3
	SqC3
	SqD3
	SqE3
	SqF3
	SqG3
	SqH3
	SqA4
	SqB4
	SqC4
	SqD4
	SqE4
	SqF4
	SqG4
	SqH4
	SqA5
	SqB5
	SqC5
	SqD5
	SqE5
	SqF5
	SqG5
	SqH5
	SqA6
	SqB6
	SqC6
	SqD6
	SqE6
	SqF6
	SqG6
	SqH6
	SqA7
	SqB7
	SqC7
	SqD7
	SqE7
	SqF7
	SqG7
	SqH7
	SqA8
	SqB8
	SqC8
	SqD8
	SqE8
	SqF8
	SqG8
	SqH8
	SqLength
	SqNone = SqLength
)

// File is the a..h column of a square, 0=a .. 7=h.
type File int8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
	FileLength
	FileNone = FileLength
)

func (f File) String() string {
	return string(rune('a' + int(f)))
}

// Rank is the 1..8 row of a square, 0=rank1 .. 7=rank8.
type Rank int8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	RankLength
	RankNone = RankLength
)

func (r Rank) String() string {
	return string(rune('1' + int(r)))
}

// NewSquare builds a Square from a file and rank.
func NewSquare(f File, r Rank) Square {
	return Square(int(r)*8 + int(f))
}

// FileOf returns the file of the square.
func (sq Square) FileOf() File {
	return File(int(sq) & 7)
}

// RankOf returns the rank of the square.
func (sq Square) RankOf() Rank {
	return Rank(int(sq) >> 3)
}

// IsValid reports whether sq is an on-board square (not SqNone or beyond).
func (sq Square) IsValid() bool {
	return sq >= SqA1 && sq < SqLength
}

// To returns the square reached by stepping delta squares in one of the 8
// single-step king/pawn directions (delta in {-9,-8,-7,-1,1,7,8,9}),
// returning SqNone if that would leave the board or wrap a file.
func (sq Square) To(d int) Square {
	t := int(sq) + d
	if t < 0 || t >= int(SqLength) {
		return SqNone
	}
	fileDelta := int(File(t&7)) - int(sq.FileOf())
	if fileDelta > 1 || fileDelta < -1 {
		return SqNone
	}
	return Square(t)
}

var squareNames = [SqLength]string{
	"a1", "b1", "c1", "d1", "e1", "f1", "g1", "h1",
	"a2", "b2", "c2", "d2", "e2", "f2", "g2", "h2",
	"a3", "b3", "c3", "d3", "e3", "f3", "g3", "h3",
	"a4", "b4", "c4", "d4", "e4", "f4", "g4", "h4",
	"a5", "b5", "c5", "d5", "e5", "f5", "g5", "h5",
	"a6", "b6", "c6", "d6", "e6", "f6", "g6", "h6",
	"a7", "b7", "c7", "d7", "e7", "f7", "g7", "h7",
	"a8", "b8", "c8", "d8", "e8", "f8", "g8", "h8",
}

func (sq Square) String() string {
	if sq < SqA1 || sq >= SqLength {
		return "-"
	}
	return squareNames[sq]
}

// SquareFromString parses an algebraic square ("e4") and reports ok=false
// on malformed input.
func SquareFromString(s string) (sq Square, ok bool) {
	if len(s) != 2 {
		return SqNone, false
	}
	f := s[0]
	r := s[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return SqNone, false
	}
	return NewSquare(File(f-'a'), Rank(r-'1')), true
}

// Direction is one of the 8 compass rays used by the precomputed ray/
// sliding-attack tables.
type Direction int8

const (
	North Direction = iota
	East
	South
	West
	Northeast
	Southeast
	Southwest
	Northwest
	DirectionLength
)

// SquareDistance is the Chebyshev (king-move) distance between two squares.
func SquareDistance(a, b Square) int {
	df := int(a.FileOf()) - int(b.FileOf())
	if df < 0 {
		df = -df
	}
	dr := int(a.RankOf()) - int(b.RankOf())
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}

func (sq Square) GoString() string {
	return fmt.Sprintf("Square(%d=%s)", int(sq), sq.String())
}
