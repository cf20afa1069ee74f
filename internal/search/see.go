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

package search

import (
	"github.com/kvchess/kestrel/internal/attacks"
	"github.com/kvchess/kestrel/internal/position"
	. "github.com/kvchess/kestrel/internal/types"
)

// see runs a static exchange evaluation of the given capture: both sides
// capture on the destination square with their least valuable attacker
// until one side has nothing left to gain. The returned value is the
// material balance of the whole sequence from the moving side's view.
func see(p *position.Position, move Move) Value {

	// an en passant capture always wins a pawn and can never lose material,
	// treating it as such avoids special-casing the removed pawn below
	if move.IsEnPassant() {
		return PieceValue[Pawn]
	}

	// a square can be attacked by at most 32 pieces
	var gain [32]Value

	ply := 0
	toSquare := move.To()
	fromSquare := move.From()
	movedPiece := p.PieceAt(fromSquare)
	nextPlayer := p.SideToMove()

	// occupancy is thinned out as pieces capture, revealing x-ray attacks
	occupiedBitboard := p.OccupiedAll()

	remainingAttacks := AttacksTo(p, toSquare, White) | AttacksTo(p, toSquare, Black)

	// value of the piece first taken on the destination square
	gain[ply] = PieceValue[p.PieceAt(toSquare).TypeOf()]

	for {
		ply++
		nextPlayer = nextPlayer.Flip()

		// speculative gain if the capturing piece is itself taken
		if move.IsPromotion() {
			gain[ply] = PieceValue[move.PromotionType()] - PieceValue[Pawn] - gain[ply-1]
		} else {
			gain[ply] = PieceValue[movedPiece.TypeOf()] - gain[ply-1]
		}

		// neither continuing nor stopping can improve the result
		if max(-gain[ply-1], gain[ply]) < 0 {
			break
		}

		remainingAttacks = remainingAttacks.Clear(fromSquare)
		occupiedBitboard = occupiedBitboard.Clear(fromSquare)

		// removing the capturer may uncover a slider behind it
		remainingAttacks |= revealedAttacks(p, toSquare, occupiedBitboard, White) |
			revealedAttacks(p, toSquare, occupiedBitboard, Black)

		fromSquare = getLeastValuablePiece(p, remainingAttacks, nextPlayer)
		if fromSquare == SqNone {
			break
		}

		movedPiece = p.PieceAt(fromSquare)
	}

	// negamax backwards over the speculative gains
	ply--
	for ply > 0 {
		gain[ply-1] = -max(-gain[ply-1], gain[ply])
		ply--
	}

	return gain[0]
}

// seeGe reports whether the static exchange evaluation of the move reaches
// the given threshold. On a non-capture the exchange value is zero.
func seeGe(p *position.Position, move Move, threshold Value) bool {
	if !move.IsCapture() {
		return 0 >= threshold
	}
	return see(p, move) >= threshold
}

// AttacksTo collects all pieces of one color attacking the given square.
// En passant is left out: the move before an en passant capture is never
// itself a capture, so it cannot take part in an exchange sequence.
func AttacksTo(p *position.Position, square Square, color Color) Bitboard {
	occupiedAll := p.OccupiedAll()
	return (attacks.PawnAttacks(color.Flip(), square) & p.PiecesBb(color, Pawn)) |
		(attacks.AttacksBb(Knight, square, occupiedAll) & p.PiecesBb(color, Knight)) |
		(attacks.AttacksBb(King, square, occupiedAll) & p.PiecesBb(color, King)) |
		(attacks.AttacksBb(Rook, square, occupiedAll) & (p.PiecesBb(color, Rook) | p.PiecesBb(color, Queen))) |
		(attacks.AttacksBb(Bishop, square, occupiedAll) & (p.PiecesBb(color, Bishop) | p.PiecesBb(color, Queen)))
}

// revealedAttacks recomputes slider attacks on the square against a thinned
// occupancy. Only sliders matter here, leaper attacks cannot be uncovered.
func revealedAttacks(p *position.Position, square Square, occupied Bitboard, color Color) Bitboard {
	return (attacks.AttacksBb(Rook, square, occupied) & (p.PiecesBb(color, Rook) | p.PiecesBb(color, Queen)) & occupied) |
		(attacks.AttacksBb(Bishop, square, occupied) & (p.PiecesBb(color, Bishop) | p.PiecesBb(color, Queen)) & occupied)
}

// getLeastValuablePiece picks the cheapest attacker of the given color out
// of the attacker set. Ties go to the lowest square index.
func getLeastValuablePiece(p *position.Position, bitboard Bitboard, color Color) Square {
	switch {
	case (bitboard & p.PiecesBb(color, Pawn)) != 0:
		return (bitboard & p.PiecesBb(color, Pawn)).Lsb()
	case (bitboard & p.PiecesBb(color, Knight)) != 0:
		return (bitboard & p.PiecesBb(color, Knight)).Lsb()
	case (bitboard & p.PiecesBb(color, Bishop)) != 0:
		return (bitboard & p.PiecesBb(color, Bishop)).Lsb()
	case (bitboard & p.PiecesBb(color, Rook)) != 0:
		return (bitboard & p.PiecesBb(color, Rook)).Lsb()
	case (bitboard & p.PiecesBb(color, Queen)) != 0:
		return (bitboard & p.PiecesBb(color, Queen)).Lsb()
	case (bitboard & p.PiecesBb(color, King)) != 0:
		return (bitboard & p.PiecesBb(color, King)).Lsb()
	default:
		return SqNone
	}
}
