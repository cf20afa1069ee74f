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
	"github.com/kvchess/kestrel/internal/position"
	. "github.com/kvchess/kestrel/internal/types"
)

// attackMap aggregates, per color, the union of all attacked squares and
// a mobility count (attacked squares not occupied by own pieces, summed
// over the officers). Mobility and king safety both read it, so it is
// computed once per evaluation.
type attackMap struct {
	all      [ColorLength]Bitboard
	mobility [ColorLength]int16
}

func (a *attackMap) clear() {
	*a = attackMap{}
}

// compute walks every piece of both colors once, with the current full
// occupancy for the sliders.
func (a *attackMap) compute(p *position.Position) {
	occ := p.OccupiedAll()
	for c := White; c < ColorLength; c++ {
		own := p.AllPiecesBb(c)

		for pawns := p.PiecesBb(c, Pawn); pawns != BbZero; {
			a.all[c] |= attacks.PawnAttacks(c, pawns.PopLsb())
		}

		for pt := Knight; pt < King; pt++ {
			for pieces := p.PiecesBb(c, pt); pieces != BbZero; {
				att := attacks.AttacksBb(pt, pieces.PopLsb(), occ)
				a.all[c] |= att
				a.mobility[c] += int16((att &^ own).PopCount())
			}
		}

		a.all[c] |= attacks.KingAttacks(p.KingSquare(c))
	}
}
