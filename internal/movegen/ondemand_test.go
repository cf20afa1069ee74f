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

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvchess/kestrel/internal/position"
	. "github.com/kvchess/kestrel/internal/types"
)

// drain pulls every move the on-demand generator will hand out.
func drain(mg *Movegen, p *position.Position, mode GenMode) []Move {
	var moves []Move
	for m := mg.GetNextMove(p, mode, p.HasCheck()); m != MoveNone; m = mg.GetNextMove(p, mode, p.HasCheck()) {
		moves = append(moves, m)
	}
	return moves
}

func TestOnDemandYieldsAllPseudoLegalMoves(t *testing.T) {
	pos, err := position.NewPositionFen("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	mg := NewMoveGen()
	mg.ResetOnDemand()
	got := drain(mg, pos, GenAll)

	var want MoveList
	GeneratePseudoLegalMoves(pos, GenCapturesAndQueenPromotions, &want)
	GeneratePseudoLegalMoves(pos, GenQuietsAndMinorPromotions, &want)

	assert.Equal(t, want.Len(), len(got), "on-demand must yield exactly the pseudo-legal moves")
	seen := make(map[Move]bool, len(got))
	for _, m := range got {
		assert.False(t, seen[m], "duplicate move %s", m)
		seen[m] = true
		assert.True(t, want.Contains(m), "unexpected move %s", m)
	}
}

func TestOnDemandPvMoveComesFirst(t *testing.T) {
	pos, err := position.NewPositionFen(position.StartFen)
	require.NoError(t, err)

	pv := NewMove(SqD2, SqD4, FlagDoublePawnPush)
	mg := NewMoveGen()
	mg.ResetOnDemand()
	mg.SetPvMove(pv)

	got := drain(mg, pos, GenAll)
	require.NotEmpty(t, got)
	assert.Equal(t, pv, got[0])

	// and only once
	count := 0
	for _, m := range got {
		if m == pv {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, 20, len(got))
}

func TestOnDemandCapturesBeforeQuiets(t *testing.T) {
	// white can take the d5 pawn with the e4 pawn or play many quiets
	pos, err := position.NewPositionFen("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	require.NoError(t, err)

	mg := NewMoveGen()
	mg.ResetOnDemand()
	got := drain(mg, pos, GenAll)
	require.NotEmpty(t, got)

	assert.True(t, got[0].IsCapture(), "first move out must be the capture, got %s", got[0])
}

func TestOnDemandKillersBetweenCapturesAndQuiets(t *testing.T) {
	pos, err := position.NewPositionFen("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	require.NoError(t, err)

	killer := NewMove(SqG1, SqF3, FlagQuiet)
	mg := NewMoveGen()
	mg.ResetOnDemand()
	mg.StoreKiller(killer)

	got := drain(mg, pos, GenAll)
	require.NotEmpty(t, got)

	killerIdx, lastCaptureIdx := -1, -1
	for i, m := range got {
		if m == killer {
			killerIdx = i
		}
		if m.IsCapture() {
			lastCaptureIdx = i
		}
	}
	require.GreaterOrEqual(t, killerIdx, 0, "killer must be yielded")
	// the only capture here wins material, so it stays ahead of the killer
	assert.Greater(t, killerIdx, lastCaptureIdx)
	// the killer leads every other quiet move
	for i, m := range got {
		if !m.IsCapture() && m != killer {
			assert.Greater(t, i, killerIdx, "quiet %s before killer", m)
		}
	}
}

func TestOnDemandNonQuietModeYieldsOnlyTactical(t *testing.T) {
	pos, err := position.NewPositionFen("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	require.NoError(t, err)

	mg := NewMoveGen()
	mg.ResetOnDemand()
	got := drain(mg, pos, GenNonQuiet)

	require.NotEmpty(t, got)
	for _, m := range got {
		assert.True(t, m.IsCapture() || m.PromotionType() == Queen,
			"non-quiet mode yielded quiet move %s", m)
	}
}

func TestOnDemandEvasionsWhileInCheck(t *testing.T) {
	pos, err := position.NewPositionFen("4r3/8/8/8/8/2N5/8/4K3 w - - 0 1")
	require.NoError(t, err)
	require.True(t, pos.HasCheck())

	mg := NewMoveGen()
	mg.ResetOnDemand()
	got := drain(mg, pos, GenAll)

	// every legal move must be among the yielded pseudo-legal evasions
	var legal MoveList
	GenerateLegalMoves(pos, &legal)
	for i := 0; i < legal.Len(); i++ {
		assert.Contains(t, got, legal.At(i))
	}
}

func TestStoreKillerKeepsTwoNewestFirst(t *testing.T) {
	mg := NewMoveGen()
	k1 := NewMove(SqG1, SqF3, FlagQuiet)
	k2 := NewMove(SqB1, SqC3, FlagQuiet)
	k3 := NewMove(SqD2, SqD3, FlagQuiet)

	mg.StoreKiller(k1)
	mg.StoreKiller(k2)
	assert.Equal(t, [2]Move{k2, k1}, *mg.KillerMoves())

	// re-storing the newest is a no-op
	mg.StoreKiller(k2)
	assert.Equal(t, [2]Move{k2, k1}, *mg.KillerMoves())

	mg.StoreKiller(k3)
	assert.Equal(t, [2]Move{k3, k2}, *mg.KillerMoves())
}

func TestGenerateLegalMovesMethodMatchesFunction(t *testing.T) {
	pos, err := position.NewPositionFen("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	mg := NewMoveGen()
	fromMethod := mg.GenerateLegalMoves(pos, GenAll)

	var fromFunc MoveList
	GenerateLegalMoves(pos, &fromFunc)

	assert.Equal(t, fromFunc.Len(), fromMethod.Len())
	for i := 0; i < fromFunc.Len(); i++ {
		assert.Contains(t, *fromMethod, fromFunc.At(i))
	}
}
