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

// Move is a 32-bit packed chess move: the low 16 bits hold the actual
// move (bits 0-5 source square, bits 6-11 destination square, bits 12-15
// a flag nibble - bit 2 of the flag nibble means "capture", bit 3 means
// "promotion", so IsCapture/IsPromotion are single mask tests, not a
// switch), and the high 16 bits optionally carry a sort value the move
// generator and search use to keep moves pre-scored while they sit in a
// MoveSlice - see MoveOf/ValueOf/SetValue.
type Move uint32

const (
	moveFromMask  = 0x0000003F
	moveToShift   = 6
	moveToMask    = 0x00000FC0
	moveFlagShift = 12
	moveFlagMask  = 0x0000F000
	moveMask      = 0x0000FFFF
	valueShift    = 16
	valueMask     = 0xFFFF0000

	// valueBias re-centers a Value around 0 before it is packed into 16
	// bits, so every score in the engine's working range (roughly
	// +/-ValueNone) encodes as a small non-negative number.
	valueBias Value = 32768
)

// MoveFlag is the 4-bit move-kind tag.
type MoveFlag uint8

const (
	FlagQuiet MoveFlag = iota
	FlagDoublePawnPush
	FlagKingCastle
	FlagQueenCastle
	FlagCapture
	FlagEnPassant
	flagUnused6
	flagUnused7
	FlagPromoKnight
	FlagPromoBishop
	FlagPromoRook
	FlagPromoQueen
	FlagPromoCaptureKnight
	FlagPromoCaptureBishop
	FlagPromoCaptureRook
	FlagPromoCaptureQueen
)

const (
	flagCaptureBit   MoveFlag = 0b0100
	flagPromotionBit MoveFlag = 0b1000
)

// MoveNone is the zero value, a1-a1 quiet - never a legal move, used as a
// sentinel ("no move") the way TT misses and empty killer slots do.
const MoveNone Move = 0

// NewMove packs a plain (non-promotion) move.
func NewMove(from, to Square, flag MoveFlag) Move {
	return Move(uint32(from)&moveFromMask | uint32(to)<<moveToShift&moveToMask | uint32(flag)<<moveFlagShift)
}

// NewPromotionMove packs a promotion move, deriving the correct flag
// nibble (capture-promotion vs quiet-promotion) from isCapture and the
// promoted piece type.
func NewPromotionMove(from, to Square, promo PieceType, isCapture bool) Move {
	var flag MoveFlag
	switch promo {
	case Knight:
		flag = FlagPromoKnight
	case Bishop:
		flag = FlagPromoBishop
	case Rook:
		flag = FlagPromoRook
	case Queen:
		flag = FlagPromoQueen
	}
	if isCapture {
		flag |= flagCaptureBit
	}
	return NewMove(from, to, flag)
}

// From returns the source square.
func (m Move) From() Square { return Square(m & moveFromMask) }

// To returns the destination square.
func (m Move) To() Square { return Square((m & moveToMask) >> moveToShift) }

// Flag returns the raw 4-bit move flag.
func (m Move) Flag() MoveFlag { return MoveFlag((m & moveFlagMask) >> moveFlagShift) }

// MoveOf strips any embedded sort value, returning the bare move - the
// form to compare, hash or pass to DoMove.
func (m Move) MoveOf() Move { return m & moveMask }

// ValueOf returns the sort value embedded in the move's high 16 bits by
// SetValue, or 0 (re-centered) if none was ever set.
func (m Move) ValueOf() Value {
	return Value((m&valueMask)>>valueShift) - valueBias
}

// SetValue returns a copy of m with v packed into its high 16 bits, the
// way the move generator and root search keep candidate moves sorted by
// score without a parallel slice. It also updates m's receiver in place.
func (m *Move) SetValue(v Value) Move {
	*m = *m&moveMask | Move(v+valueBias)<<valueShift
	return *m
}

// IsCapture reports whether the move captures a piece, including
// en-passant but excluding quiet promotions.
func (m Move) IsCapture() bool { return m.Flag()&flagCaptureBit != 0 }

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool { return m.Flag()&flagPromotionBit != 0 }

// IsEnPassant reports whether the move is an en-passant capture.
func (m Move) IsEnPassant() bool { return m.Flag() == FlagEnPassant }

// IsCastle reports whether the move is a castling king move.
func (m Move) IsCastle() bool {
	f := m.Flag()
	return f == FlagKingCastle || f == FlagQueenCastle
}

// IsDoublePawnPush reports whether the move is a two-square pawn push.
func (m Move) IsDoublePawnPush() bool { return m.Flag() == FlagDoublePawnPush }

// IsTactical reports whether the move is a capture or a promotion - the
// class of moves quiescence search considers.
func (m Move) IsTactical() bool { return m.IsCapture() || m.IsPromotion() }

// PromotionType returns the piece type a promotion move promotes to, or
// PtNone for a non-promotion move.
func (m Move) PromotionType() PieceType {
	if !m.IsPromotion() {
		return PtNone
	}
	switch m.Flag() &^ flagCaptureBit {
	case FlagPromoKnight:
		return Knight
	case FlagPromoBishop:
		return Bishop
	case FlagPromoRook:
		return Rook
	case FlagPromoQueen:
		return Queen
	}
	return PtNone
}

// IsValid reports whether m is a structurally well-formed, non-null move
// (distinct source and destination squares). It says nothing about
// legality in any particular position.
func (m Move) IsValid() bool {
	return m.MoveOf() != MoveNone && m.From() != m.To()
}

// StringUci renders the move in long algebraic notation ("e2e4",
// "e7e8q"). Castling is rendered as the plain two-square king move.
func (m Move) StringUci() string {
	s := m.From().String() + m.To().String()
	if pt := m.PromotionType(); pt != PtNone {
		s += pt.String()
	}
	return s
}

func (m Move) String() string {
	return m.StringUci()
}
