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

package position

import (
	"github.com/kvchess/kestrel/internal/attacks"
	. "github.com/kvchess/kestrel/internal/types"
)

// Material returns the material value (PieceValue sum, king excluded) for
// the given color. Recomputed from the piece bitboards on every call
// rather than kept incrementally: search and the evaluator only ever ask
// for it a handful of times per node, never per pseudo-legal move.
func (p *Position) Material(c Color) Value {
	var v Value
	for pt := Pawn; pt < King; pt++ {
		v += PieceValue[pt] * Value(p.piecesBb[c][pt].PopCount())
	}
	return v
}

// MaterialNonPawn returns the material value for the given color with
// pawns excluded - used by null-move pruning to detect the zugzwang-prone
// pawn-and-king-only endgames where a null move search is unreliable.
func (p *Position) MaterialNonPawn(c Color) Value {
	var v Value
	for pt := Knight; pt < King; pt++ {
		v += PieceValue[pt] * Value(p.piecesBb[c][pt].PopCount())
	}
	return v
}

// GamePhase returns the current game-phase counter: GamePhaseMax (24) on a
// fully-loaded board, falling towards 0 as officers come off.
func (p *Position) GamePhase() int {
	phase := 0
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt < PtLength; pt++ {
			phase += PhaseWeight[pt] * p.piecesBb[c][pt].PopCount()
		}
	}
	if phase > GamePhaseMax {
		phase = GamePhaseMax
	}
	return phase
}

// GamePhaseFactor returns GamePhase() normalized to [0,1], 1 being the
// opening/middlegame and 0 a bare-bones endgame - the weight the evaluator
// uses to interpolate between its midgame and endgame piece-square tables.
func (p *Position) GamePhaseFactor() float64 {
	return float64(p.GamePhase()) / GamePhaseMax
}

// HasCheck reports whether the side to move is in check - an alias over
// the checkers bitboard setCheckInfo already maintains, kept as its own
// method because search and movegen read it by that name throughout.
func (p *Position) HasCheck() bool {
	return p.checkers != BbZero
}

// IsCapturingMove reports whether move captures a piece on this position,
// including en-passant (whose destination square is empty, so a plain
// occupancy test would miss it).
func (p *Position) IsCapturingMove(move Move) bool {
	return p.occupiedBb[p.sideToMove.Flip()].Contains(move.To()) || move.IsEnPassant()
}

// GivesCheck reports whether move, if played, would give check to the
// opponent of the side to move - used by search extensions and forward
// pruning to recognize tactically "loud" moves before making them.
func (p *Position) GivesCheck(move Move) bool {
	us := p.sideToMove
	them := us.Flip()

	kingSq := p.kingSquare[them]

	fromSq := move.From()
	toSq := move.To()
	fromPt := p.board[fromSq].TypeOf()
	epTargetSq := SqNone

	switch {
	case move.IsPromotion():
		fromPt = move.PromotionType()
	case move.IsCastle():
		fromPt = Rook
		switch toSq {
		case SqG1:
			toSq = SqF1
		case SqC1:
			toSq = SqD1
		case SqG8:
			toSq = SqF8
		case SqC8:
			toSq = SqD8
		}
	case move.IsEnPassant():
		epTargetSq = toSq.To(-us.PawnDir())
	}

	boardAfterMove := p.OccupiedAll()
	boardAfterMove = boardAfterMove.Clear(fromSq).Set(toSq)
	if move.IsEnPassant() {
		boardAfterMove = boardAfterMove.Clear(epTargetSq)
	}

	switch fromPt {
	case Pawn:
		if attacks.PawnAttacks(us, toSq).Contains(kingSq) {
			return true
		}
	case King:
		// a king move can never itself give check
	default:
		if attacks.AttacksBb(fromPt, toSq, boardAfterMove).Contains(kingSq) {
			return true
		}
	}

	// revealed checks: only sliders can be unmasked by a piece moving out
	// of the way, except en-passant where the captured pawn can do so too.
	switch {
	case attacks.AttacksBb(Bishop, kingSq, boardAfterMove)&p.piecesBb[us][Bishop] != 0:
		return true
	case attacks.AttacksBb(Rook, kingSq, boardAfterMove)&p.piecesBb[us][Rook] != 0:
		return true
	case attacks.AttacksBb(Queen, kingSq, boardAfterMove)&p.piecesBb[us][Queen] != 0:
		return true
	}

	return false
}

// PawnKey returns a Zobrist-style hash folding in only the pawns on the
// board, for the pawn-structure evaluation cache. Computed on the fly
// from the same zobristPiece table used for the full key rather than
// maintained incrementally, since it is only needed once per leaf
// evaluation rather than once per search node.
func (p *Position) PawnKey() Key {
	var k Key
	for _, c := range [2]Color{White, Black} {
		for sq := p.piecesBb[c][Pawn]; sq != BbZero; {
			k ^= zobristPiece[MakePiece(c, Pawn)][sq.PopLsb()]
		}
	}
	return k
}

// PsqMidValue returns the incrementally maintained middlegame
// piece-square sum for the given color.
func (p *Position) PsqMidValue(c Color) Value {
	return p.psqMid[c]
}

// PsqEndValue returns the incrementally maintained endgame piece-square
// sum for the given color.
func (p *Position) PsqEndValue(c Color) Value {
	return p.psqEnd[c]
}
