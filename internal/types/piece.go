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

// PieceType is the six-valued closed enumeration of chess piece kinds,
// plus the PtNone sentinel. Index 0..5 is used directly for table lookups
// (piece-square tables, attack tables, SEE piece values).
type PieceType int8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	PtLength
	PtNone = PtLength
)

var pieceTypeLetters = [PtLength]string{"p", "n", "b", "r", "q", "k"}

func (pt PieceType) String() string {
	if pt < Pawn || pt >= PtLength {
		return "-"
	}
	return pieceTypeLetters[pt]
}

// PieceTypeFromPromotionLetter parses the lowercase letter appended to a
// long-algebraic move on promotion ("q", "r", "b", "n").
func PieceTypeFromPromotionLetter(l byte) (PieceType, bool) {
	switch l {
	case 'n':
		return Knight, true
	case 'b':
		return Bishop, true
	case 'r':
		return Rook, true
	case 'q':
		return Queen, true
	}
	return PtNone, false
}

// Piece is a (PieceType, Color) pair packed into a single index: color is
// the low bit, piece type occupies the upper bits, so PieceOf/ColorOf are
// plain shifts, and a length-64 piece array can store PieceNone uniformly.
type Piece int8

const (
	WhitePawn Piece = iota
	BlackPawn
	WhiteKnight
	BlackKnight
	WhiteBishop
	BlackBishop
	WhiteRook
	BlackRook
	WhiteQueen
	BlackQueen
	WhiteKing
	BlackKing
	PieceLength
	PieceNone = PieceLength
)

// MakePiece builds a Piece from a color and piece type; returns PieceNone
// if pt is PtNone.
func MakePiece(c Color, pt PieceType) Piece {
	if pt == PtNone {
		return PieceNone
	}
	return Piece(int(pt)*2 + int(c))
}

// TypeOf returns the piece type of p, or PtNone for PieceNone.
func (p Piece) TypeOf() PieceType {
	if p == PieceNone {
		return PtNone
	}
	return PieceType(int(p) / 2)
}

// ColorOf returns the owning color of p. Calling this on PieceNone is a
// caller error; it returns White for lack of a better sentinel.
func (p Piece) ColorOf() Color {
	return Color(int(p) & 1)
}

func (p Piece) String() string {
	if p == PieceNone {
		return "-"
	}
	letter := pieceTypeLetters[p.TypeOf()]
	if p.ColorOf() == White {
		return string(rune(letter[0] - ('a' - 'A')))
	}
	return letter
}

// PieceValue is the material value in centipawns used by SEE and as the
// base term of the static evaluation, indexed by PieceType.
var PieceValue = [PtLength]Value{
	Pawn:   100,
	Knight: 320,
	Bishop: 330,
	Rook:   500,
	Queen:  900,
	King:   20000,
}
