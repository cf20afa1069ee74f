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

	"github.com/kvchess/kestrel/internal/position"
	. "github.com/kvchess/kestrel/internal/types"
)

func TestStartPositionMoveCount(t *testing.T) {
	pos, err := position.NewPositionFen(position.StartFen)
	assert.NoError(t, err)

	var list MoveList
	GenerateLegalMoves(pos, &list)
	assert.Equal(t, 20, list.Len())
}

func TestCastlingMovesGenerated(t *testing.T) {
	pos, err := position.NewPositionFen("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	assert.NoError(t, err)

	var list MoveList
	GenerateLegalMoves(pos, &list)

	assert.True(t, list.Contains(NewMove(SqE1, SqG1, FlagKingCastle)))
	assert.True(t, list.Contains(NewMove(SqE1, SqC1, FlagQueenCastle)))
}

func TestCastlingBlockedThroughCheck(t *testing.T) {
	// Black rook on f8 covers f1, so kingside castling is illegal even
	// though the squares between king and rook are empty.
	pos, err := position.NewPositionFen("5r2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	assert.NoError(t, err)

	var list MoveList
	GenerateLegalMoves(pos, &list)

	assert.False(t, list.Contains(NewMove(SqE1, SqG1, FlagKingCastle)))
	assert.True(t, list.Contains(NewMove(SqE1, SqC1, FlagQueenCastle)))
}

func TestEnPassantGenerated(t *testing.T) {
	pos, err := position.NewPositionFen("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	assert.NoError(t, err)

	var list MoveList
	GenerateLegalMoves(pos, &list)

	assert.True(t, list.Contains(NewMove(SqE5, SqD6, FlagEnPassant)))
}

func TestPromotionMovesGenerated(t *testing.T) {
	pos, err := position.NewPositionFen("8/P6k/8/8/8/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)

	var list MoveList
	GenerateLegalMoves(pos, &list)

	for _, pt := range [4]PieceType{Knight, Bishop, Rook, Queen} {
		assert.True(t, list.Contains(NewPromotionMove(SqA7, SqA8, pt, false)), "missing promotion to %s", pt)
	}
	assert.Equal(t, 4, list.Len()-countKingMoves(pos, &list))
}

func countKingMoves(pos *position.Position, list *MoveList) int {
	kingSq := pos.KingSquare(pos.SideToMove())
	n := 0
	for i := 0; i < list.Len(); i++ {
		if list.At(i).From() == kingSq {
			n++
		}
	}
	return n
}

func TestCheckEvasionRestrictsToBlockOrCapture(t *testing.T) {
	// White king on e1 in check from a black rook on e8, open file; the
	// only non-king escapes are the c3 knight jumping onto the e-file.
	pos, err := position.NewPositionFen("4r3/8/8/8/8/2N5/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	assert.True(t, pos.InCheck())

	var list MoveList
	GenerateLegalMoves(pos, &list)

	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		if m.From() == pos.KingSquare(White) {
			continue
		}
		assert.Equal(t, SqC3, m.From(), "only the c3 knight can block")
		assert.Contains(t, []Square{SqE2, SqE4}, m.To())
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// King e1 double-checked by a rook on e8 (file) and a bishop on h4
	// (diagonal through f2/g3): no block or capture resolves both at
	// once, so only king moves may appear.
	pos, err := position.NewPositionFen("4r3/8/8/8/7b/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	assert.True(t, pos.Checkers().MoreThanOne())

	var list MoveList
	GenerateLegalMoves(pos, &list)

	kingSq := pos.KingSquare(White)
	for i := 0; i < list.Len(); i++ {
		assert.Equal(t, kingSq, list.At(i).From())
	}
	assert.Equal(t, 3, list.Len())
}

func TestPinnedPieceRestrictedToLine(t *testing.T) {
	// White rook on e2 is pinned to the king on e1 by the black rook on
	// e8; it may move along the e-file but not sideways.
	pos, err := position.NewPositionFen("4r3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	assert.NoError(t, err)

	var list MoveList
	GenerateLegalMoves(pos, &list)

	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		if m.From() != SqE2 {
			continue
		}
		assert.Equal(t, FileE, m.To().FileOf(), "pinned rook must stay on the e-file")
	}
}

func TestGetMoveFromUci(t *testing.T) {
	pos, err := position.NewPositionFen(position.StartFen)
	assert.NoError(t, err)

	m := GetMoveFromUci(pos, "e2e4")
	assert.True(t, m.IsValid())
	assert.Equal(t, SqE2, m.From())
	assert.Equal(t, SqE4, m.To())
	assert.True(t, m.IsDoublePawnPush())

	assert.Equal(t, MoveNone, GetMoveFromUci(pos, "e2e5"))
}

func TestHasLegalMoveStalemate(t *testing.T) {
	// Classic stalemate: black king a8 boxed in by white king b6 and
	// queen on c7, with no black piece free to move.
	pos, err := position.NewPositionFen("k7/2Q5/1K6/8/8/8/8/8 b - - 0 1")
	assert.NoError(t, err)
	assert.False(t, pos.InCheck())
	assert.False(t, HasLegalMove(pos))
}

func TestMoveStringRoundTrip(t *testing.T) {
	// every legal move must survive rendering to long algebraic notation
	// and parsing back
	fens := []string{
		position.StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/P6k/8/8/8/8/8/4K3 w - - 0 1",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1",
	}
	for _, fen := range fens {
		pos, err := position.NewPositionFen(fen)
		assert.NoError(t, err)
		var list MoveList
		GenerateLegalMoves(pos, &list)
		for i := 0; i < list.Len(); i++ {
			m := list.At(i)
			parsed := GetMoveFromUci(pos, m.StringUci())
			assert.Equal(t, m, parsed, "%s in %s", m.StringUci(), fen)
		}
	}
}
