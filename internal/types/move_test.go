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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovePackUnpack(t *testing.T) {
	m := NewMove(SqE2, SqE4, FlagDoublePawnPush)
	assert.Equal(t, SqE2, m.From())
	assert.Equal(t, SqE4, m.To())
	assert.Equal(t, FlagDoublePawnPush, m.Flag())
	assert.True(t, m.IsDoublePawnPush())
	assert.False(t, m.IsCapture())
	assert.False(t, m.IsPromotion())
	assert.False(t, m.IsTactical())
}

func TestMoveFlagPredicates(t *testing.T) {
	capture := NewMove(SqE4, SqD5, FlagCapture)
	assert.True(t, capture.IsCapture())
	assert.True(t, capture.IsTactical())
	assert.False(t, capture.IsEnPassant())

	ep := NewMove(SqE5, SqD6, FlagEnPassant)
	assert.True(t, ep.IsEnPassant())
	assert.True(t, ep.IsCapture())

	castle := NewMove(SqE1, SqG1, FlagKingCastle)
	assert.True(t, castle.IsCastle())
	assert.False(t, castle.IsCapture())
	assert.False(t, castle.IsTactical())
}

func TestMovePromotion(t *testing.T) {
	for _, pt := range []PieceType{Knight, Bishop, Rook, Queen} {
		quiet := NewPromotionMove(SqE7, SqE8, pt, false)
		assert.True(t, quiet.IsPromotion())
		assert.False(t, quiet.IsCapture())
		assert.Equal(t, pt, quiet.PromotionType())
		assert.True(t, quiet.IsTactical())

		capture := NewPromotionMove(SqE7, SqD8, pt, true)
		assert.True(t, capture.IsPromotion())
		assert.True(t, capture.IsCapture())
		assert.Equal(t, pt, capture.PromotionType())
	}
	assert.Equal(t, PtNone, NewMove(SqE2, SqE4, FlagQuiet).PromotionType())
}

func TestMoveValuePacking(t *testing.T) {
	m := NewMove(SqG1, SqF3, FlagQuiet)
	bare := m

	m.SetValue(Value(300))
	assert.Equal(t, Value(300), m.ValueOf())
	assert.Equal(t, bare, m.MoveOf())

	m.SetValue(Value(-4500))
	assert.Equal(t, Value(-4500), m.ValueOf())
	assert.Equal(t, bare, m.MoveOf())

	// two moves with different values still compare equal on MoveOf
	n := bare
	n.SetValue(Value(1))
	assert.Equal(t, m.MoveOf(), n.MoveOf())
	assert.NotEqual(t, m, n)
}

func TestMoveStringUci(t *testing.T) {
	assert.Equal(t, "e2e4", NewMove(SqE2, SqE4, FlagDoublePawnPush).StringUci())
	assert.Equal(t, "e7e8q", NewPromotionMove(SqE7, SqE8, Queen, false).StringUci())
	assert.Equal(t, "e1g1", NewMove(SqE1, SqG1, FlagKingCastle).StringUci())
}

func TestMoveIsValid(t *testing.T) {
	assert.False(t, MoveNone.IsValid())
	assert.False(t, NewMove(SqC4, SqC4, FlagQuiet).IsValid())
	assert.True(t, NewMove(SqE2, SqE4, FlagQuiet).IsValid())
}
