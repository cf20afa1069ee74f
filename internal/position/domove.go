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
	"github.com/kvchess/kestrel/internal/engineering/assert"
	. "github.com/kvchess/kestrel/internal/types"
)

// castleRookFrom and castleRookTo give the rook's from/to squares for a castling move,
// indexed by the king's destination square.
var castleRookFrom = map[Square]Square{SqG1: SqH1, SqC1: SqA1, SqG8: SqH8, SqC8: SqA8}
var castleRookTo = map[Square]Square{SqG1: SqF1, SqC1: SqD1, SqG8: SqF8, SqC8: SqD8}

// DoMove applies m to the board and updates the Zobrist key
// incrementally. There is no legality check here - m is assumed to come
// from the move generator (or to have already been validated); calling it
// with an illegal move corrupts the position.
func (p *Position) DoMove(m Move) {
	if assert.DEBUG {
		assert.Assert(m.IsValid(), "DoMove: invalid move %s", m)
	}

	// 1. push history
	if p.historyLen >= maxHistory {
		panic("position: history stack overflow")
	}
	p.history[p.historyLen] = historyState{
		zobristKey:      p.zobristKey,
		castlingRights:  p.castlingRights,
		enPassantSquare: p.enPassantSquare,
		halfMoveClock:   p.halfMoveClock,
		lastMove:        p.lastMove,
		capturedPiece:   p.capturedPiece,
		checkers:        p.checkers,
		blockers:        p.blockers,
		checkSquares:    p.checkSquares,
	}
	p.historyLen++

	us := p.sideToMove
	them := us.Flip()
	from := m.From()
	to := m.To()
	movingPiece := p.board[from]
	movingType := movingPiece.TypeOf()

	// 2. clear en passant
	if p.enPassantSquare != SqNone {
		if p.epIsLegallyAvailable() {
			p.zobristKey ^= zobristEpFile[p.enPassantSquare.FileOf()]
		}
		p.enPassantSquare = SqNone
	}

	p.capturedPiece = PtNone
	isReversible := true

	// 3. remove captured piece (non-EP capture)
	if m.IsCapture() && !m.IsEnPassant() {
		captured := p.board[to]
		p.capturedPiece = captured.TypeOf()
		p.zobristKey ^= zobristPiece[captured][to]
		p.removePiece(to)
		isReversible = false
	}

	// 4. en passant: remove the enemy pawn behind the destination
	if m.IsEnPassant() {
		var capturedSq Square
		if us == White {
			capturedSq = to.To(-8)
		} else {
			capturedSq = to.To(8)
		}
		capturedPawn := p.board[capturedSq]
		p.capturedPiece = Pawn
		p.zobristKey ^= zobristPiece[capturedPawn][capturedSq]
		p.removePiece(capturedSq)
		isReversible = false
	}

	// 5. remove moving piece from source
	p.zobristKey ^= zobristPiece[movingPiece][from]
	p.removePiece(from)

	// 6. place promoted piece or moving piece
	var placed Piece
	if m.IsPromotion() {
		placed = MakePiece(us, m.PromotionType())
		isReversible = false
	} else {
		placed = movingPiece
	}
	p.putPiece(placed, to)
	p.zobristKey ^= zobristPiece[placed][to]

	// 7. double pawn push sets en passant target; the file only enters
	// the key when the opponent actually has a pawn that could take -
	// the same rule the from-scratch recomputation applies, so the
	// incremental key never diverges over dead en-passant squares
	if m.IsDoublePawnPush() {
		var epSq Square
		if us == White {
			epSq = from.To(8)
		} else {
			epSq = from.To(-8)
		}
		p.enPassantSquare = epSq
		if p.epAvailableFor(them) {
			p.zobristKey ^= zobristEpFile[epSq.FileOf()]
		}
	}

	// 8. castling: move the rook
	if m.IsCastle() {
		rookFrom := castleRookFrom[to]
		rookTo := castleRookTo[to]
		rook := p.board[rookFrom]
		p.zobristKey ^= zobristPiece[rook][rookFrom]
		p.removePiece(rookFrom)
		p.putPiece(rook, rookTo)
		p.zobristKey ^= zobristPiece[rook][rookTo]
	}

	// 9. update castling rights
	oldRights := p.castlingRights
	newRights := oldRights.Remove(CastlingRightsLostAt(from)).Remove(CastlingRightsLostAt(to))
	if newRights != oldRights {
		p.zobristKey ^= zobristCastling[oldRights]
		p.zobristKey ^= zobristCastling[newRights]
		p.castlingRights = newRights
	}

	// 10. fifty-move counter
	if movingType == Pawn || !isReversible {
		p.halfMoveClock = 0
	} else {
		p.halfMoveClock++
	}

	// 11. flip side to move
	if us == Black {
		p.fullMoveNumber++
	}
	p.sideToMove = them
	p.zobristKey ^= zobristSide
	p.lastMove = m

	// 12. recompute checkers/blockers/check-squares
	p.setCheckInfo()
}

// WasLegalMove reports whether the side that just moved (via DoMove) left
// its own king safe - the "make it, then check" pattern move generation
// and search use instead of filtering pseudo-legal moves up front.
func (p *Position) WasLegalMove() bool {
	return !p.IsAttacked(p.KingSquare(p.sideToMove.Flip()), p.sideToMove)
}

// UndoMove reverses the most recent DoMove call. Calling it without a
// matching prior DoMove is a fatal invariant violation (history
// underflow).
func (p *Position) UndoMove() {
	if assert.DEBUG {
		assert.Assert(p.historyLen > 0, "UndoMove: history underflow")
	}

	m := p.lastMove

	// 11. flip side back first
	them := p.sideToMove
	us := them.Flip()
	if us == Black {
		p.fullMoveNumber--
	}
	p.sideToMove = us

	from := m.From()
	to := m.To()

	// 8. undo castling rook move
	if m.IsCastle() {
		rookFrom := castleRookFrom[to]
		rookTo := castleRookTo[to]
		rook := p.board[rookTo]
		p.removePiece(rookTo)
		p.putPiece(rook, rookFrom)
	}

	// 6/5. remove the placed piece, restore the original moving piece to
	// its source square.
	placed := p.removePiece(to)
	var movingPiece Piece
	if m.IsPromotion() {
		movingPiece = MakePiece(us, Pawn)
	} else {
		movingPiece = placed
	}
	p.putPiece(movingPiece, from)

	// 4/3. restore captured piece, if any. p.capturedPiece still holds the
	// type captured by this move - the history snapshot predates it, since
	// it was pushed before DoMove set the field (it holds the capture
	// before that one).
	if m.IsEnPassant() {
		var capturedSq Square
		if us == White {
			capturedSq = to.To(-8)
		} else {
			capturedSq = to.To(8)
		}
		p.putPiece(MakePiece(them, Pawn), capturedSq)
	} else if m.IsCapture() {
		p.putPiece(MakePiece(them, p.capturedPiece), to)
	}

	prev := p.history[p.historyLen-1]

	// 9/2/1/12: restore everything else wholesale from the snapshot.
	p.castlingRights = prev.castlingRights
	p.enPassantSquare = prev.enPassantSquare
	p.halfMoveClock = prev.halfMoveClock
	p.zobristKey = prev.zobristKey
	p.checkers = prev.checkers
	p.blockers = prev.blockers
	p.checkSquares = prev.checkSquares
	p.lastMove = prev.lastMove
	p.capturedPiece = prev.capturedPiece

	p.historyLen--
}

// DoNullMove flips the side to move without moving a piece, clearing any
// en-passant target. Must never be called while the side to move is in
// check.
func (p *Position) DoNullMove() {
	if assert.DEBUG {
		assert.Assert(!p.InCheck(), "DoNullMove: illegal while in check")
	}
	p.history[p.historyLen] = historyState{
		zobristKey:      p.zobristKey,
		castlingRights:  p.castlingRights,
		enPassantSquare: p.enPassantSquare,
		halfMoveClock:   p.halfMoveClock,
		lastMove:        p.lastMove,
		capturedPiece:   p.capturedPiece,
		checkers:        p.checkers,
		blockers:        p.blockers,
		checkSquares:    p.checkSquares,
	}
	p.historyLen++

	if p.enPassantSquare != SqNone {
		if p.epIsLegallyAvailable() {
			p.zobristKey ^= zobristEpFile[p.enPassantSquare.FileOf()]
		}
		p.enPassantSquare = SqNone
	}
	p.sideToMove = p.sideToMove.Flip()
	p.zobristKey ^= zobristSide
	p.lastMove = MoveNone
	p.setCheckInfo()
}

// UndoNullMove reverses DoNullMove.
func (p *Position) UndoNullMove() {
	if assert.DEBUG {
		assert.Assert(p.historyLen > 0, "UndoNullMove: history underflow")
	}
	prev := p.history[p.historyLen-1]
	p.sideToMove = p.sideToMove.Flip()
	p.castlingRights = prev.castlingRights
	p.enPassantSquare = prev.enPassantSquare
	p.halfMoveClock = prev.halfMoveClock
	p.zobristKey = prev.zobristKey
	p.checkers = prev.checkers
	p.blockers = prev.blockers
	p.checkSquares = prev.checkSquares
	p.lastMove = prev.lastMove
	p.capturedPiece = prev.capturedPiece
	p.historyLen--
}
