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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/kvchess/kestrel/internal/config"
	"github.com/kvchess/kestrel/internal/position"
	. "github.com/kvchess/kestrel/internal/types"
)

func TestPawnStructureSymmetricStart(t *testing.T) {
	e := NewEvaluator()
	p := position.NewPosition()
	e.InitEval(p)

	// the starting position is symmetric, white minus black must be zero
	score := e.evaluatePawns()
	assert.EqualValues(t, 0, score.MidGameValue)
	assert.EqualValues(t, 0, score.EndGameValue)
}

func TestPawnStructureIsolatedAndPassed(t *testing.T) {
	e := NewEvaluator()
	// lone white pawn on d5, lone black pawn on h7: both isolated and
	// passed, white's further advanced
	p, err := position.NewPositionFen("4k3/7p/8/3P4/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	e.InitEval(p)

	white := e.pawnStructure(White)
	black := e.pawnStructure(Black)

	wantWhiteEnd := Settings.Eval.PawnIsolatedEndMalus + Settings.Eval.PawnPassedEndBonus*4/2
	wantBlackEnd := Settings.Eval.PawnIsolatedEndMalus + Settings.Eval.PawnPassedEndBonus*1/2
	assert.EqualValues(t, wantWhiteEnd, white.EndGameValue)
	assert.EqualValues(t, wantBlackEnd, black.EndGameValue)
}

func TestPawnStructureDoubled(t *testing.T) {
	e := NewEvaluator()
	// white pawns doubled on the e-file; only the rear pawn is charged
	p, err := position.NewPositionFen("4k3/8/8/4P3/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	e.InitEval(p)

	white := e.pawnStructure(White)

	// e4 is doubled behind e5 and blocked by it; both pawns are isolated
	// and passed (no enemy pawns at all)
	wantMid := Settings.Eval.PawnDoubledMidMalus +
		2*Settings.Eval.PawnIsolatedMidMalus +
		Settings.Eval.PawnPassedMidBonus*4/2 + Settings.Eval.PawnPassedMidBonus*3/2 +
		Settings.Eval.PawnBlockedMidMalus
	assert.EqualValues(t, wantMid, white.MidGameValue)
}

func TestPawnStructurePhalanxAndSupport(t *testing.T) {
	e := NewEvaluator()
	// c4/d4 side by side (phalanx), e3 defending d4
	p, err := position.NewPositionFen("4k3/8/8/8/2PP4/4P3/8/4K3 w - - 0 1")
	require.NoError(t, err)
	e.InitEval(p)

	white := e.pawnStructure(White)

	// three passers, a phalanx pair, and a defended pawn with no
	// structural weaknesses add up clearly positive
	assert.Greater(t, white.MidGameValue, int16(0))
	assert.Greater(t, white.EndGameValue, int16(0))
}

func TestEvaluatePawnsUsesCache(t *testing.T) {
	Settings.Eval.UsePawnCache = true
	defer func() { Settings.Eval.UsePawnCache = false }()

	e := NewEvaluator()
	p := position.NewPosition()
	e.InitEval(p)

	require.NotNil(t, e.pawnCache)
	assert.EqualValues(t, 0, e.pawnCache.len())

	first := *e.evaluatePawns()
	assert.EqualValues(t, 1, e.pawnCache.len())
	assert.EqualValues(t, 1, e.pawnCache.misses)

	second := *e.evaluatePawns()
	assert.EqualValues(t, 1, e.pawnCache.hits)
	assert.Equal(t, first, second)
}
