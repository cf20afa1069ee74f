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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/kvchess/kestrel/internal/types"
)

func mustPosition(t *testing.T, fen string) *Position {
	t.Helper()
	p, err := NewPositionFen(fen)
	require.NoError(t, err, "fen %q", fen)
	return p
}

// checkConsistency verifies the board representation invariants: piece
// array and bitboards agree square by square, side bitboards are
// disjoint, occupancy is their union, each side has one king, and the
// Zobrist key matches a from-scratch recomputation.
func checkConsistency(t *testing.T, p *Position) {
	t.Helper()
	var occWhite, occBlack Bitboard
	for sq := SqA1; sq < SqLength; sq++ {
		pc := p.PieceAt(sq)
		for c := White; c < ColorLength; c++ {
			for pt := Pawn; pt < PtLength; pt++ {
				want := pc != PieceNone && pc.ColorOf() == c && pc.TypeOf() == pt
				assert.Equal(t, want, p.PiecesBb(c, pt).Contains(sq),
					"bitboard/piece-array mismatch at %s for %v/%v", sq, c, pt)
			}
		}
		if pc != PieceNone {
			if pc.ColorOf() == White {
				occWhite = occWhite.Set(sq)
			} else {
				occBlack = occBlack.Set(sq)
			}
		}
	}
	assert.Equal(t, occWhite, p.AllPiecesBb(White))
	assert.Equal(t, occBlack, p.AllPiecesBb(Black))
	assert.Equal(t, BbZero, p.AllPiecesBb(White)&p.AllPiecesBb(Black))
	assert.Equal(t, occWhite|occBlack, p.OccupiedAll())
	assert.Equal(t, 1, p.PiecesBb(White, King).PopCount())
	assert.Equal(t, 1, p.PiecesBb(Black, King).PopCount())
	assert.Equal(t, p.zobristOf(), p.ZobristKey(), "incremental zobrist key diverged")
}

func TestFenRoundTrip(t *testing.T) {
	fens := []string{
		StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"8/8/1k6/8/2pP4/8/5BK1/8 b - d3 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - - 42 99",
	}
	for _, fen := range fens {
		p := mustPosition(t, fen)
		assert.Equal(t, fen, p.ToFen())
		checkConsistency(t, p)
	}
}

func TestFenErrors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",     // missing fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1", // 7 ranks
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1",
	}
	for _, fen := range bad {
		_, err := NewPositionFen(fen)
		assert.Error(t, err, "fen %q must not parse", fen)
	}
}

func TestDoUndoRestoresPosition(t *testing.T) {
	p := mustPosition(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := *p

	moves := []Move{
		NewMove(SqE2, SqA6, FlagCapture),    // bishop takes a6
		NewMove(SqE1, SqG1, FlagKingCastle), // castle kingside
		NewMove(SqD5, SqE6, FlagCapture),    // pawn takes e6
	}
	// moves applied one at a time to the same start position, each one
	// undone again - every field must come back exactly
	for _, m := range moves {
		p.DoMove(m)
		checkConsistency(t, p)
		p.UndoMove()
		checkConsistency(t, p)
		assert.Equal(t, before.ToFen(), p.ToFen())
		assert.Equal(t, before.ZobristKey(), p.ZobristKey())
		assert.Equal(t, before.castlingRights, p.castlingRights)
		assert.Equal(t, before.halfMoveClock, p.halfMoveClock)
		assert.Equal(t, before.enPassantSquare, p.enPassantSquare)
	}
}

func TestDoUndoSequence(t *testing.T) {
	p := NewPosition()
	before := *p

	seq := []Move{
		NewMove(SqE2, SqE4, FlagDoublePawnPush),
		NewMove(SqE7, SqE5, FlagDoublePawnPush),
		NewMove(SqG1, SqF3, FlagQuiet),
		NewMove(SqB8, SqC6, FlagQuiet),
		NewMove(SqF3, SqE5, FlagCapture),
	}
	for _, m := range seq {
		p.DoMove(m)
		checkConsistency(t, p)
	}
	for range seq {
		p.UndoMove()
		checkConsistency(t, p)
	}
	assert.Equal(t, before.ToFen(), p.ToFen())
	assert.Equal(t, before.ZobristKey(), p.ZobristKey())
}

func TestEnPassantDoUndo(t *testing.T) {
	p := mustPosition(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	key := p.ZobristKey()

	p.DoMove(NewMove(SqE5, SqD6, FlagEnPassant))
	checkConsistency(t, p)
	assert.Equal(t, PieceNone, p.PieceAt(SqD5), "captured pawn must be gone")
	assert.Equal(t, MakePiece(White, Pawn), p.PieceAt(SqD6))

	p.UndoMove()
	checkConsistency(t, p)
	assert.Equal(t, key, p.ZobristKey())
	assert.Equal(t, MakePiece(Black, Pawn), p.PieceAt(SqD5))
}

func TestNullMoveDoUndo(t *testing.T) {
	p := mustPosition(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := *p

	p.DoNullMove()
	assert.Equal(t, Black, p.SideToMove())
	assert.NotEqual(t, before.ZobristKey(), p.ZobristKey())

	p.UndoNullMove()
	assert.Equal(t, before.ToFen(), p.ToFen())
	assert.Equal(t, before.ZobristKey(), p.ZobristKey())
	checkConsistency(t, p)
}

func TestZobristSideAndCastlingDeltas(t *testing.T) {
	// positions differing only in one feature must have different keys
	a := mustPosition(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	b := mustPosition(t, "4k3/8/8/8/8/8/8/4K3 b - - 0 1")
	assert.NotEqual(t, a.ZobristKey(), b.ZobristKey())

	c := mustPosition(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	d := mustPosition(t, "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1")
	assert.NotEqual(t, c.ZobristKey(), d.ZobristKey())
}

func TestDeadEnPassantDoesNotChangeKey(t *testing.T) {
	// no white pawn can play the d6 en-passant capture here, so the key
	// must equal the same position without the ep square set
	withEp := mustPosition(t, "4k3/8/8/3p4/8/8/8/4K3 w - d6 0 1")
	without := mustPosition(t, "4k3/8/8/3p4/8/8/8/4K3 w - - 0 1")
	assert.Equal(t, without.ZobristKey(), withEp.ZobristKey())

	// with a capturing pawn present the ep file must be folded in
	live := mustPosition(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	base := mustPosition(t, "4k3/8/8/3pP3/8/8/8/4K3 w - - 0 1")
	assert.NotEqual(t, base.ZobristKey(), live.ZobristKey())
}

func TestRepetitionDetection(t *testing.T) {
	p := NewPosition()
	shuffle := []Move{
		NewMove(SqG1, SqF3, FlagQuiet),
		NewMove(SqG8, SqF6, FlagQuiet),
		NewMove(SqF3, SqG1, FlagQuiet),
		NewMove(SqF6, SqG8, FlagQuiet),
	}
	assert.Equal(t, 0, p.RepetitionCount())

	for _, m := range shuffle {
		p.DoMove(m)
	}
	// back to the start position for the first time
	assert.Equal(t, 1, p.RepetitionCount())
	assert.False(t, p.IsThreefoldRepetition())

	for _, m := range shuffle {
		p.DoMove(m)
	}
	assert.Equal(t, 2, p.RepetitionCount())
	assert.True(t, p.IsThreefoldRepetition())
}

func TestFiftyMoveRule(t *testing.T) {
	p := mustPosition(t, "4k3/8/8/8/8/8/8/4K3 w - - 99 80")
	assert.False(t, p.IsFiftyMoveRule())
	p.DoMove(NewMove(SqE1, SqE2, FlagQuiet))
	assert.True(t, p.IsFiftyMoveRule())
	assert.True(t, p.IsDrawn())
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		fen  string
		want bool
	}{
		{"4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},      // K v K
		{"4k3/8/8/8/8/8/8/2B1K3 w - - 0 1", true},    // KB v K
		{"4k3/8/8/8/8/8/8/2N1K3 w - - 0 1", true},    // KN v K
		{"1b2k3/8/8/8/8/8/8/2B1K3 w - - 0 1", true},  // same-color bishops
		{"2b1k3/8/8/8/8/8/8/2B1K3 w - - 0 1", false}, // opposite-color bishops
		{"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", false},   // pawn on board
		{"4k3/8/8/8/8/8/8/R3K3 w - - 0 1", false},    // rook on board
	}
	for _, tc := range tests {
		p := mustPosition(t, tc.fen)
		assert.Equal(t, tc.want, p.HasInsufficientMaterial(), tc.fen)
	}
}

func TestCheckersAndBlockers(t *testing.T) {
	// white rook e2 pinned by black rook e8
	p := mustPosition(t, "4r3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	assert.Equal(t, BbZero, p.Checkers())
	assert.True(t, p.Blockers().Contains(SqE2))

	// direct check, no blocker
	q := mustPosition(t, "4r3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.True(t, q.InCheck())
	assert.True(t, q.Checkers().Contains(SqE8))
	assert.Equal(t, 1, q.Checkers().PopCount())
}

func TestMaterialAndGamePhase(t *testing.T) {
	p := NewPosition()
	assert.Equal(t, p.Material(White), p.Material(Black))
	assert.Equal(t, GamePhaseMax, p.GamePhase())
	assert.InDelta(t, 1.0, p.GamePhaseFactor(), 0.001)

	kk := mustPosition(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.Equal(t, Value(0), kk.Material(White))
	assert.Equal(t, 0, kk.GamePhase())
}

func TestHistoryOverflowPanics(t *testing.T) {
	p := NewPosition()
	defer func() {
		assert.NotNil(t, recover(), "history overflow must panic, not corrupt")
	}()
	for i := 0; ; i++ {
		p.DoMove(NewMove(SqG1, SqF3, FlagQuiet))
		p.DoMove(NewMove(SqG8, SqF6, FlagQuiet))
		p.DoMove(NewMove(SqF3, SqG1, FlagQuiet))
		p.DoMove(NewMove(SqF6, SqG8, FlagQuiet))
	}
}
