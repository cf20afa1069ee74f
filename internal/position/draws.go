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
	. "github.com/kvchess/kestrel/internal/types"
)

// RepetitionCount returns how many times the current position (same
// Zobrist key, same side to move) occurred earlier within the run of
// reversible moves bounded by the halfmove clock. A search-driver calling
// this as a draw test should treat a count >= 2 as a threefold repetition
// and, under some conventions, >= 1 as a twofold repetition for search
// contempt purposes.
func (p *Position) RepetitionCount() int {
	count := 0
	n := p.historyLen
	limit := p.halfMoveClock
	for j := n - 2; j >= 0 && n-j <= limit; j -= 2 {
		if p.history[j].zobristKey == p.zobristKey {
			count++
		}
	}
	return count
}

// IsThreefoldRepetition reports whether the current position has occurred
// (including now) three or more times since the last irreversible move.
func (p *Position) IsThreefoldRepetition() bool {
	return p.RepetitionCount() >= 2
}

// IsFiftyMoveRule reports whether 100 halfmoves (50 full moves) have
// passed without a capture or pawn move.
func (p *Position) IsFiftyMoveRule() bool {
	return p.halfMoveClock >= 100
}

// HasInsufficientMaterial reports whether neither side has enough
// material to deliver checkmate by any sequence of legal moves: king vs
// king, king+minor vs king, or king+bishop vs king+bishop with both
// bishops on the same square color.
func (p *Position) HasInsufficientMaterial() bool {
	for c := White; c < ColorLength; c++ {
		if p.piecesBb[c][Pawn] != BbZero || p.piecesBb[c][Rook] != BbZero || p.piecesBb[c][Queen] != BbZero {
			return false
		}
	}
	wMinors := p.piecesBb[White][Knight].PopCount() + p.piecesBb[White][Bishop].PopCount()
	bMinors := p.piecesBb[Black][Knight].PopCount() + p.piecesBb[Black][Bishop].PopCount()
	if wMinors == 0 && bMinors == 0 {
		return true
	}
	if wMinors+bMinors == 1 {
		return true
	}
	if wMinors == 1 && bMinors == 1 &&
		p.piecesBb[White][Bishop] != BbZero && p.piecesBb[Black][Bishop] != BbZero {
		wSq := p.piecesBb[White][Bishop].Lsb()
		bSq := p.piecesBb[Black][Bishop].Lsb()
		return squareColor(wSq) == squareColor(bSq)
	}
	return false
}

// squareColor reports the color of the square (0 = dark, 1 = light) using
// the standard (file+rank) parity convention.
func squareColor(sq Square) int {
	return (int(sq.FileOf()) + int(sq.RankOf())) % 2
}

// IsDrawn reports whether the position is a draw by any of the automatic
// rules a search driver must honor without being told by the move
// generator: fifty-move rule, threefold repetition, or insufficient
// material.
func (p *Position) IsDrawn() bool {
	return p.IsFiftyMoveRule() || p.IsThreefoldRepetition() || p.HasInsufficientMaterial()
}
