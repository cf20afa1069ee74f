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

package evaluator

import (
	"github.com/kvchess/kestrel/internal/attacks"
	"github.com/kvchess/kestrel/internal/config"
	. "github.com/kvchess/kestrel/internal/types"
)

// evaluatePawns scores the pawn structure of both colors (white minus
// black, white's view). The result depends only on pawn placement, so it
// is cached under the position's pawn key - structures repeat across
// thousands of positions in a search tree.
func (e *Evaluator) evaluatePawns() *Score {
	tmpScore.MidGameValue = 0
	tmpScore.EndGameValue = 0

	if config.Settings.Eval.UsePawnCache && e.pawnCache != nil {
		if entry := e.pawnCache.getEntry(e.position.PawnKey()); entry != nil {
			tmpScore.MidGameValue = entry.score.MidGameValue
			tmpScore.EndGameValue = entry.score.EndGameValue
			return &tmpScore
		}
	}

	white := e.pawnStructure(White)
	black := e.pawnStructure(Black)
	tmpScore.MidGameValue = white.MidGameValue - black.MidGameValue
	tmpScore.EndGameValue = white.EndGameValue - black.EndGameValue

	if config.Settings.Eval.UsePawnCache && e.pawnCache != nil {
		e.pawnCache.put(e.position.PawnKey(), &tmpScore)
	}

	return &tmpScore
}

// pawnStructure walks the pawns of one color and scores the classic
// structural features: isolated, doubled, passed (scaled by how far
// advanced), blocked, phalanx neighbors, and defended pawns.
func (e *Evaluator) pawnStructure(us Color) Score {
	var s Score
	them := us.Flip()
	ownPawns := e.position.PiecesBb(us, Pawn)
	theirPawns := e.position.PiecesBb(them, Pawn)
	occ := e.position.OccupiedAll()
	cfg := &config.Settings.Eval

	for pawns := ownPawns; pawns != BbZero; {
		sq := pawns.PopLsb()
		file := sq.FileOf()
		rank := sq.RankOf()

		// how far the pawn has come, 1..6 from its own side's view
		advance := int16(rank - Rank1)
		if us == Black {
			advance = int16(Rank8 - rank)
		}

		neighborFiles := adjacentFilesMask(file)

		// isolated: no friendly pawn on either adjacent file
		if ownPawns&neighborFiles == BbZero {
			s.MidGameValue += cfg.PawnIsolatedMidMalus
			s.EndGameValue += cfg.PawnIsolatedEndMalus
		}

		// doubled: a friendly pawn ahead on the same file (charged once
		// per rear pawn of the pair)
		if ownPawns&file.Mask()&ranksInFrontMask(us, rank) != BbZero {
			s.MidGameValue += cfg.PawnDoubledMidMalus
			s.EndGameValue += cfg.PawnDoubledEndMalus
		}

		// passed: no enemy pawn ahead on this or an adjacent file
		front := ranksInFrontMask(us, rank)
		if theirPawns&front&(file.Mask()|neighborFiles) == BbZero {
			s.MidGameValue += cfg.PawnPassedMidBonus * advance / 2
			s.EndGameValue += cfg.PawnPassedEndBonus * advance / 2
		}

		// blocked: the stop square is occupied
		if occ.Contains(sq.To(us.PawnDir())) {
			s.MidGameValue += cfg.PawnBlockedMidMalus
			s.EndGameValue += cfg.PawnBlockedEndMalus
		}

		// phalanx: a friendly pawn directly beside it
		if ownPawns&neighborFiles&rank.Mask() != BbZero {
			s.MidGameValue += cfg.PawnPhalanxMidBonus
			s.EndGameValue += cfg.PawnPhalanxEndBonus
		}

		// supported: defended by a friendly pawn
		if attacks.PawnAttacks(them, sq)&ownPawns != BbZero {
			s.MidGameValue += cfg.PawnSupportedMidBonus
			s.EndGameValue += cfg.PawnSupportedEndBonus
		}
	}
	return s
}

// adjacentFilesMask returns the mask of the file(s) next to f.
func adjacentFilesMask(f File) Bitboard {
	var mask Bitboard
	if f > FileA {
		mask |= (f - 1).Mask()
	}
	if f < FileH {
		mask |= (f + 1).Mask()
	}
	return mask
}

// ranksInFrontMask returns every square on a rank strictly ahead of rank
// r from color us's point of view.
func ranksInFrontMask(us Color, r Rank) Bitboard {
	var mask Bitboard
	if us == White {
		for rr := r + 1; rr <= Rank8; rr++ {
			mask |= rr.Mask()
		}
	} else {
		for rr := Rank1; rr < r; rr++ {
			mask |= rr.Mask()
		}
	}
	return mask
}
