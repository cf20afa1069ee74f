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

package search

import (
	"github.com/kvchess/kestrel/internal/position"
	. "github.com/kvchess/kestrel/internal/types"
)

// aspirationSearch searches iterationDepth starting from a window centred
// on the previous iteration's value instead of (-inf, +inf). A hit inside
// the window is cheaper than a full-width search; a miss is re-searched
// with the next wider step from aspirationSteps until it holds.
// https://www.chessprogramming.org/Aspiration_Windows
func (s *Search) aspirationSearch(p *position.Position, depth int, prevValue Value) Value {
	for _, step := range aspirationSteps {
		alpha := prevValue - step
		beta := prevValue + step
		if alpha < ValueMin {
			alpha = ValueMin
		}
		if beta > ValueMax {
			beta = ValueMax
		}

		s.rootSearch(p, depth, alpha, beta)
		if s.stopConditions() {
			return prevValue
		}

		value := s.pv[0].At(0).ValueOf()
		switch {
		case value <= alpha:
			s.sendAspirationResearchInfo("upperbound")
		case value >= beta:
			s.sendAspirationResearchInfo("lowerbound")
		default:
			return value
		}
	}

	// every step failed to hold - fall back to a full window search
	s.rootSearch(p, depth, ValueMin, ValueMax)
	return s.pv[0].At(0).ValueOf()
}

// mtdf implements Plaat's MTD(f): a sequence of zero-window rootSearch
// calls that bisect towards the true minimax value starting from
// firstGuess (the previous iteration's best value).
// https://www.chessprogramming.org/MTD(f)
func (s *Search) mtdf(p *position.Position, depth int, firstGuess Value) Value {
	g := firstGuess
	upperBound := ValueMax
	lowerBound := ValueMin

	for lowerBound < upperBound {
		beta := g
		if g == lowerBound {
			beta = g + 1
		}

		s.rootSearch(p, depth, beta-1, beta)
		if s.stopConditions() {
			break
		}
		g = s.pv[0].At(0).ValueOf()

		if g < beta {
			upperBound = g
		} else {
			lowerBound = g
		}
	}
	return g
}
