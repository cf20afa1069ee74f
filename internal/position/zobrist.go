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

// Key is a Zobrist hash key, always using the full 64 bits for a good
// distribution across a transposition table.
type Key uint64

var (
	zobristPiece    [PieceLength][SqLength]Key
	zobristCastling [16]Key
	zobristEpFile   [FileLength]Key
	zobristSide     Key
)

// splitmix64 is a fast, fixed, deterministic PRNG used only to seed the
// Zobrist random tables at process start - not for anything
// security-sensitive, just for a good bit distribution.
type splitmix64 struct{ state uint64 }

func (s *splitmix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return z
}

func init() {
	rng := splitmix64{state: 0x1F2E3D4C5B6A7980}
	for p := Piece(0); p < PieceLength; p++ {
		for sq := SqA1; sq < SqLength; sq++ {
			zobristPiece[p][sq] = Key(rng.next())
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = Key(rng.next())
	}
	for f := FileA; f < FileLength; f++ {
		zobristEpFile[f] = Key(rng.next())
	}
	zobristSide = Key(rng.next())
}

// zobristOf recomputes a position's Zobrist key from scratch over its
// piece placement, castling rights, (legally available) en-passant file
// and side to move - the ground truth the incremental updates must
// always match.
func (p *Position) zobristOf() Key {
	var k Key
	for sq := SqA1; sq < SqLength; sq++ {
		if pc := p.board[sq]; pc != PieceNone {
			k ^= zobristPiece[pc][sq]
		}
	}
	k ^= zobristCastling[p.castlingRights]
	if p.enPassantSquare != SqNone && p.epIsLegallyAvailable() {
		k ^= zobristEpFile[p.enPassantSquare.FileOf()]
	}
	if p.sideToMove == Black {
		k ^= zobristSide
	}
	return k
}
