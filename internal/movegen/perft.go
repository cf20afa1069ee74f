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
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kvchess/kestrel/internal/position"
	. "github.com/kvchess/kestrel/internal/types"
)

var out = message.NewPrinter(language.German)

// Perft counts the leaves of the full legal-move tree to a given depth,
// broken down by move category - the standard correctness check for a
// move generator, since any bug in legality or move encoding shows up as
// a wrong node count at some depth for some position.
type Perft struct {
	Nodes            uint64
	CheckCounter     uint64
	CheckMateCounter uint64
	CaptureCounter   uint64
	EnpassantCounter uint64
	CastleCounter    uint64
	PromotionCounter uint64
	stopFlag         bool
}

// NewPerft returns an empty Perft ready for Run.
func NewPerft() *Perft {
	return &Perft{}
}

// Stop requests the currently running Run to abort at its next node -
// meant to be called from another goroutine.
func (perft *Perft) Stop() {
	perft.stopFlag = true
}

// Run performs perft from the given FEN to depth and prints a summary,
// returning the total node count (0 if stopped early).
func (perft *Perft) Run(fen string, depth int) uint64 {
	perft.stopFlag = false
	if depth <= 0 {
		depth = 1
	}
	perft.reset()

	pos, err := position.NewPositionFen(fen)
	if err != nil {
		out.Printf("perft: invalid FEN %q: %v\n", fen, err)
		return 0
	}

	out.Printf("Performing PERFT Test for Depth %d\n", depth)
	out.Printf("FEN: %s\n", fen)
	out.Printf("-----------------------------------------\n")

	start := time.Now()
	result := perft.search(pos, depth)
	elapsed := time.Since(start)

	if perft.stopFlag {
		out.Print("Perft stopped\n")
		return 0
	}
	perft.Nodes = result

	nanos := elapsed.Nanoseconds()
	if nanos == 0 {
		nanos = 1
	}
	out.Printf("Time         : %s\n", elapsed)
	out.Printf("NPS          : %d nps\n", (perft.Nodes*uint64(time.Second.Nanoseconds()))/uint64(nanos))
	out.Printf("Results:\n")
	out.Printf("   Nodes     : %d\n", perft.Nodes)
	out.Printf("   Captures  : %d\n", perft.CaptureCounter)
	out.Printf("   EnPassant : %d\n", perft.EnpassantCounter)
	out.Printf("   Checks    : %d\n", perft.CheckCounter)
	out.Printf("   CheckMates: %d\n", perft.CheckMateCounter)
	out.Printf("   Castles   : %d\n", perft.CastleCounter)
	out.Printf("   Promotions: %d\n", perft.PromotionCounter)
	out.Printf("-----------------------------------------\n")
	out.Printf("Finished PERFT Test for Depth %d\n\n", depth)

	return perft.Nodes
}

func (perft *Perft) search(pos *position.Position, depth int) uint64 {
	var list MoveList
	GenerateLegalMoves(pos, &list)

	if depth == 1 {
		var nodes uint64
		for i := 0; i < list.Len(); i++ {
			if perft.stopFlag {
				return 0
			}
			m := list.At(i)
			perft.countLeaf(pos, m)
			nodes++
		}
		return nodes
	}

	var nodes uint64
	for i := 0; i < list.Len(); i++ {
		if perft.stopFlag {
			return 0
		}
		m := list.At(i)
		pos.DoMove(m)
		nodes += perft.search(pos, depth-1)
		pos.UndoMove()
	}
	return nodes
}

// countLeaf classifies move m, already known legal, for the per-category
// stats. It applies and undoes m itself so it can see the resulting
// position's check/checkmate status.
func (perft *Perft) countLeaf(pos *position.Position, m Move) {
	if m.IsEnPassant() {
		perft.EnpassantCounter++
		perft.CaptureCounter++
	} else if m.IsCapture() {
		perft.CaptureCounter++
	}
	if m.IsCastle() {
		perft.CastleCounter++
	}
	if m.IsPromotion() {
		perft.PromotionCounter++
	}

	pos.DoMove(m)
	if pos.InCheck() {
		perft.CheckCounter++
		if !HasLegalMove(pos) {
			perft.CheckMateCounter++
		}
	}
	pos.UndoMove()
}

func (perft *Perft) reset() {
	perft.Nodes = 0
	perft.CheckCounter = 0
	perft.CheckMateCounter = 0
	perft.CaptureCounter = 0
	perft.EnpassantCounter = 0
	perft.CastleCounter = 0
	perft.PromotionCounter = 0
}
