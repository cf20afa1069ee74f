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

package attacks

import (
	. "github.com/kvchess/kestrel/internal/types"
)

// slidingAttack computes the attack set of a slider standing on sq along
// the given directions given the current occupancy: the full ray in each
// direction, truncated at (and including) the first blocker. A plain
// direction-ray scan rather than magic bitboards: O(directions) per call
// instead of a single table probe, which is an acceptable trade for a
// single-threaded search of this scope and is much easier to verify.
func slidingAttack(sq Square, occ Bitboard, dirs [4]Direction) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		ray := rayAttacks[d][sq]
		attacks |= ray
		blockers := ray & occ
		if blockers == 0 {
			continue
		}
		var blockerSq Square
		if dirIsPositive[d] {
			blockerSq = blockers.Lsb()
		} else {
			blockerSq = blockers.Msb()
		}
		attacks &^= rayAttacks[d][blockerSq]
	}
	return attacks
}

// BishopAttacks returns the bishop attack set from sq given occupancy,
// up to and including the first blocker in each diagonal direction.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	return slidingAttack(sq, occ, bishopDirs)
}

// RookAttacks returns the rook attack set from sq given occupancy, up to
// and including the first blocker in each orthogonal direction.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	return slidingAttack(sq, occ, rookDirs)
}

// QueenAttacks returns the union of bishop and rook attacks from sq.
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return BishopAttacks(sq, occ) | RookAttacks(sq, occ)
}

// AttacksBb returns the attack set for a piece type (other than pawn) from
// sq given occupancy; pt must be Knight, Bishop, Rook, Queen or King.
func AttacksBb(pt PieceType, sq Square, occ Bitboard) Bitboard {
	switch pt {
	case Knight:
		return KnightAttacks(sq)
	case Bishop:
		return BishopAttacks(sq, occ)
	case Rook:
		return RookAttacks(sq, occ)
	case Queen:
		return QueenAttacks(sq, occ)
	case King:
		return KingAttacks(sq)
	}
	return BbZero
}
