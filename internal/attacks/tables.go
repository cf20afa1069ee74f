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

// Package attacks holds the process-wide, immutable attack/ray tables
// (king, knight, pawn, rays, between, line) built once in init(), plus the
// runtime sliding-piece attack computation that consumes them. Nothing in
// this package is mutated after package initialization; there is no
// Position dependency here so it can be imported by the position package
// itself.
package attacks

import (
	. "github.com/kvchess/kestrel/internal/types"
)

var (
	kingAttacks   [SqLength]Bitboard
	knightAttacks [SqLength]Bitboard
	pawnAttacks   [ColorLength][SqLength]Bitboard

	// rayAttacks[dir][sq] is every square strictly between sq and the
	// board edge along direction dir, not including sq itself.
	rayAttacks [DirectionLength][SqLength]Bitboard

	// betweenBb[a][b] is the squares strictly between a and b if they
	// share a rank, file or diagonal; else 0.
	betweenBb [SqLength][SqLength]Bitboard

	// lineBb[a][b] is every square on the infinite line through a and b
	// if they are colinear; else 0.
	lineBb [SqLength][SqLength]Bitboard
)

// direction deltas in square-index terms, and whether the direction walks
// toward increasing indices (used to pick Lsb vs Msb for the nearest
// blocker when computing sliding attacks).
var dirDelta = [DirectionLength]int{
	North: 8, South: -8, East: 1, West: -1,
	Northeast: 9, Southeast: -7, Southwest: -9, Northwest: 7,
}

var dirIsPositive = [DirectionLength]bool{
	North: true, South: false, East: true, West: false,
	Northeast: true, Southeast: false, Southwest: false, Northwest: true,
}

func init() {
	initLeaperAttacks()
	initRays()
	initBetweenAndLine()
}

func initLeaperAttacks() {
	kingSteps := []int{8, -8, 1, -1, 9, -9, 7, -7}
	knightSteps := []struct{ df, dr int }{
		{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
	for sq := SqA1; sq < SqLength; sq++ {
		var k Bitboard
		for _, d := range kingSteps {
			if t := sq.To(d); t != SqNone {
				k = k.Set(t)
			}
		}
		kingAttacks[sq] = k

		var n Bitboard
		f, r := int(sq.FileOf()), int(sq.RankOf())
		for _, s := range knightSteps {
			nf, nr := f+s.df, r+s.dr
			if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
				continue
			}
			n = n.Set(NewSquare(File(nf), Rank(nr)))
		}
		knightAttacks[sq] = n

		if wt := sq.To(7); wt != SqNone {
			pawnAttacks[White][sq] = pawnAttacks[White][sq].Set(wt)
		}
		if wt := sq.To(9); wt != SqNone {
			pawnAttacks[White][sq] = pawnAttacks[White][sq].Set(wt)
		}
		if bt := sq.To(-7); bt != SqNone {
			pawnAttacks[Black][sq] = pawnAttacks[Black][sq].Set(bt)
		}
		if bt := sq.To(-9); bt != SqNone {
			pawnAttacks[Black][sq] = pawnAttacks[Black][sq].Set(bt)
		}
	}
}

func initRays() {
	for sq := SqA1; sq < SqLength; sq++ {
		for d := North; d < DirectionLength; d++ {
			cur := sq
			var ray Bitboard
			for {
				next := cur.To(dirDelta[d])
				if next == SqNone {
					break
				}
				ray = ray.Set(next)
				cur = next
			}
			rayAttacks[d][sq] = ray
		}
	}
}

var rookDirs = [4]Direction{North, South, East, West}
var bishopDirs = [4]Direction{Northeast, Southeast, Southwest, Northwest}

// initBetweenAndLine walks every direction from each square a, recording
// for every reachable square "next" the squares strictly between a and
// next (Between) and the full infinite line through a and next (Line).
func initBetweenAndLine() {
	for a := SqA1; a < SqLength; a++ {
		for _, d := range allDirs {
			var passed Bitboard
			cur := a
			line := rayAttacks[d][a].Set(a) | rayAttacks[oppositeDir(d)][a]
			for {
				next := cur.To(dirDelta[d])
				if next == SqNone {
					break
				}
				lineBb[a][next] = line
				betweenBb[a][next] = passed
				passed = passed.Set(next)
				cur = next
			}
		}
	}
}

var allDirs = [8]Direction{North, South, East, West, Northeast, Southeast, Southwest, Northwest}

func oppositeDir(d Direction) Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Northeast:
		return Southwest
	case Southwest:
		return Northeast
	case Northwest:
		return Southeast
	case Southeast:
		return Northwest
	}
	return d
}

// KingAttacks returns the squares a king on sq attacks on an empty board.
func KingAttacks(sq Square) Bitboard { return kingAttacks[sq] }

// KnightAttacks returns the squares a knight on sq attacks on an empty
// board.
func KnightAttacks(sq Square) Bitboard { return knightAttacks[sq] }

// PawnAttacks returns the two (or fewer, at the board edge) diagonal
// capture squares of a pawn of color c standing on sq.
func PawnAttacks(c Color, sq Square) Bitboard { return pawnAttacks[c][sq] }

// Between returns the squares strictly between a and b along a shared
// rank, file or diagonal; 0 if a and b are not aligned.
func Between(a, b Square) Bitboard { return betweenBb[a][b] }

// Line returns every square on the infinite line through a and b if they
// are colinear (share a rank, file or diagonal); 0 otherwise. Line(a,b)
// always contains both a and b.
func Line(a, b Square) Bitboard { return lineBb[a][b] }

// Aligned reports whether c lies on the infinite line through a and b -
// the three-square colinearity test pin handling is built on.
func Aligned(a, b, c Square) bool { return lineBb[a][b].Contains(c) }

// Distance is the Chebyshev (king-move) distance between two squares.
func Distance(a, b Square) int { return SquareDistance(a, b) }
