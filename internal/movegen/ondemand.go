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
	"github.com/kvchess/kestrel/internal/attacks"
	"github.com/kvchess/kestrel/internal/history"
	"github.com/kvchess/kestrel/internal/moveslice"
	"github.com/kvchess/kestrel/internal/position"
	. "github.com/kvchess/kestrel/internal/types"
)

// GenMode restricts which classes of moves a Movegen hands out. It is a
// bit set so "everything" is simply the union of the two classes.
type GenMode int

const (
	// GenZero generates nothing - the zero value is deliberately inert.
	GenZero GenMode = 0b00
	// GenNonQuiet generates captures, en-passant and queen promotions.
	GenNonQuiet GenMode = 0b01
	// GenQuiet generates non-capturing moves and minor promotions.
	GenQuiet GenMode = 0b10
	// GenAll generates every pseudo-legal move.
	GenAll GenMode = GenNonQuiet | GenQuiet
)

// The stages GetNextMove walks through when not in check. Killer moves
// sit between winning and losing captures on purpose: a quiet move that
// refuted a sibling is usually better than a capture that loses material.
const (
	stageNew = iota
	stagePv
	stageLoudGen
	stageLoud
	stageKiller1
	stageKiller2
	stageBadLoud
	stageQuietGen
	stageQuiet
	stageDone
)

// Movegen hands out the moves of one node in decreasing order of promise
// without generating everything up front: the PV move first, then scored
// captures, killers, losing captures, and finally history-ordered quiets.
// A beta cutoff in the capture stage never pays for quiet generation at
// all. Search keeps one instance per ply, so the killer slots are the
// per-ply killer store.
type Movegen struct {
	pvMove      Move
	killerMoves [2]Move
	historyData *history.History

	stage     int
	takeIndex int
	loud      MoveList
	badLoud   MoveList
	quiet     MoveList

	// scratch buffers for the whole-list generation calls
	pseudoLegal moveslice.MoveSlice
	legalMoves  moveslice.MoveSlice
}

// NewMoveGen creates a Movegen. The two returned-slice buffers are
// allocated once here; everything on the per-move path is allocation
// free.
func NewMoveGen() *Movegen {
	return &Movegen{
		pseudoLegal: make(moveslice.MoveSlice, 0, MaxMoves),
		legalMoves:  make(moveslice.MoveSlice, 0, MaxMoves),
	}
}

// SetHistoryData gives the generator access to the search's history
// tables for quiet- and capture-move ordering. Optional - without it
// quiets come out in generation order.
func (mg *Movegen) SetHistoryData(h *history.History) {
	mg.historyData = h
}

// SetPvMove sets the move to be returned first by GetNextMove,
// typically the best move from the transposition table.
func (mg *Movegen) SetPvMove(m Move) {
	mg.pvMove = m.MoveOf()
}

// PvMove returns the currently set PV move.
func (mg *Movegen) PvMove() Move {
	return mg.pvMove
}

// StoreKiller records a quiet move that caused a beta cutoff at this
// ply. Two slots, newest first; re-storing the current first killer is a
// no-op.
func (mg *Movegen) StoreKiller(m Move) {
	m = m.MoveOf()
	if mg.killerMoves[0] == m {
		return
	}
	mg.killerMoves[1] = mg.killerMoves[0]
	mg.killerMoves[0] = m
}

// KillerMoves exposes the two killer slots, newest first.
func (mg *Movegen) KillerMoves() *[2]Move {
	return &mg.killerMoves
}

// ResetOnDemand restarts the staged iteration for a new node. Killers
// and history data survive - only the PV move and stage state reset.
func (mg *Movegen) ResetOnDemand() {
	mg.stage = stageNew
	mg.takeIndex = 0
	mg.pvMove = MoveNone
	mg.loud.Clear()
	mg.badLoud.Clear()
	mg.quiet.Clear()
}

// GetNextMove returns the next pseudo-legal move of the node in ordered
// sequence, or MoveNone when the node is exhausted. When hasCheck is set
// every evasion is generated and scored in one go - the stage machinery
// would only get in the way with so few moves.
func (mg *Movegen) GetNextMove(p *position.Position, mode GenMode, hasCheck bool) Move {
	if hasCheck {
		return mg.nextEvasion(p)
	}
	for {
		switch mg.stage {
		case stageNew:
			mg.stage = stagePv

		case stagePv:
			mg.stage = stageLoudGen
			if mg.pvMove != MoveNone && mg.pvMoveInMode(p, mode) {
				return mg.pvMove
			}

		case stageLoudGen:
			if mode&GenNonQuiet != 0 {
				mg.generateLoud(p)
			}
			mg.takeIndex = 0
			mg.stage = stageLoud

		case stageLoud:
			if mg.takeIndex < mg.loud.Len() {
				m := mg.loud.At(mg.takeIndex).MoveOf()
				mg.takeIndex++
				return m
			}
			mg.stage = stageKiller1

		case stageKiller1:
			mg.stage = stageKiller2
			if mode&GenQuiet != 0 && mg.killerIsPlayable(p, mg.killerMoves[0]) {
				return mg.killerMoves[0]
			}

		case stageKiller2:
			mg.stage = stageBadLoud
			mg.takeIndex = 0
			if mode&GenQuiet != 0 && mg.killerMoves[1] != mg.killerMoves[0] &&
				mg.killerIsPlayable(p, mg.killerMoves[1]) {
				return mg.killerMoves[1]
			}

		case stageBadLoud:
			if mg.takeIndex < mg.badLoud.Len() {
				m := mg.badLoud.At(mg.takeIndex).MoveOf()
				mg.takeIndex++
				return m
			}
			mg.stage = stageQuietGen

		case stageQuietGen:
			if mode&GenQuiet != 0 {
				mg.generateQuiet(p)
			}
			mg.takeIndex = 0
			mg.stage = stageQuiet

		case stageQuiet:
			if mg.takeIndex < mg.quiet.Len() {
				m := mg.quiet.At(mg.takeIndex).MoveOf()
				mg.takeIndex++
				return m
			}
			mg.stage = stageDone

		default:
			return MoveNone
		}
	}
}

// nextEvasion serves check-evasion nodes: all evasions generated at once,
// the PV move scored to the front, captures by MVV-LVA, quiets by
// history.
func (mg *Movegen) nextEvasion(p *position.Position) Move {
	if mg.stage != stageDone {
		mg.stage = stageDone
		mg.takeIndex = 0
		mg.loud.Clear()
		GeneratePseudoLegalMoves(p, GenEvasions, &mg.loud)
		for i := 0; i < mg.loud.Len(); i++ {
			m := mg.loud.At(i)
			var score Value
			switch {
			case m.MoveOf() == mg.pvMove:
				score = 15000
			case m.IsCapture():
				score = 8000 + mg.mvvLvaScore(p, m)
			default:
				score = mg.quietScore(p, m)
			}
			m.SetValue(score)
			mg.loud.SetAt(i, m)
		}
		mg.loud.SortByValue()
	}
	if mg.takeIndex < mg.loud.Len() {
		m := mg.loud.At(mg.takeIndex).MoveOf()
		mg.takeIndex++
		return m
	}
	return MoveNone
}

// generateLoud fills the winning/equal-capture buffer and the losing
// capture buffer, both sorted by MVV-LVA plus capture history.
func (mg *Movegen) generateLoud(p *position.Position) {
	var all MoveList
	GeneratePseudoLegalMoves(p, GenCapturesAndQueenPromotions, &all)

	for i := 0; i < all.Len(); i++ {
		m := all.At(i)
		if m.MoveOf() == mg.pvMove {
			continue
		}
		score := mg.mvvLvaScore(p, m)
		if m.IsPromotion() {
			// queen promotions outrank every plain capture
			m.SetValue(12000 + score)
			mg.loud.Add(m)
			continue
		}
		if mg.isLosingCapture(p, m) {
			m.SetValue(4000 + score)
			mg.badLoud.Add(m)
		} else {
			m.SetValue(8000 + score)
			mg.loud.Add(m)
		}
	}
	mg.loud.SortByValue()
	mg.badLoud.SortByValue()
}

// generateQuiet fills the quiet buffer ordered by the history tables,
// skipping the PV move and killers which were already served.
func (mg *Movegen) generateQuiet(p *position.Position) {
	var all MoveList
	GeneratePseudoLegalMoves(p, GenQuietsAndMinorPromotions, &all)

	for i := 0; i < all.Len(); i++ {
		m := all.At(i)
		bare := m.MoveOf()
		if bare == mg.pvMove || bare == mg.killerMoves[0] || bare == mg.killerMoves[1] {
			continue
		}
		m.SetValue(mg.quietScore(p, m))
		mg.quiet.Add(m)
	}
	mg.quiet.SortByValue()
}

// mvvLvaScore orders captures by most valuable victim first, least
// valuable attacker second, nudged by the capture-history table.
func (mg *Movegen) mvvLvaScore(p *position.Position, m Move) Value {
	victim := p.PieceAt(m.To()).TypeOf()
	if m.IsEnPassant() {
		victim = Pawn
	}
	attacker := p.PieceAt(m.From()).TypeOf()
	score := Value(0)
	if victim != PtNone {
		score = PieceValue[victim] - PieceValue[attacker]/10
	}
	if mg.historyData != nil && victim != PtNone {
		ch := Value(mg.historyData.CaptureScore(p.PieceAt(m.From()), m, victim) / 64)
		// keep the history nudge below a pawn of MVV-LVA difference so it
		// reorders equals without jumping bands
		if ch > 90 {
			ch = 90
		} else if ch < -90 {
			ch = -90
		}
		score += ch
	}
	return score
}

// isLosingCapture is the generator's cheap stand-in for a full static
// exchange evaluation: a capture of a cheaper piece counts as losing
// unless the victim is undefended.
func (mg *Movegen) isLosingCapture(p *position.Position, m Move) bool {
	if m.IsEnPassant() || m.IsPromotion() {
		return false
	}
	victim := p.PieceAt(m.To()).TypeOf()
	attacker := p.PieceAt(m.From()).TypeOf()
	if PieceValue[victim] >= PieceValue[attacker] {
		return false
	}
	return p.IsAttacked(m.To(), p.SideToMove().Flip())
}

// quietScore maps a history counter into the quiet sort band, with a
// bonus if the move is the recorded counter to the opponent's last move.
func (mg *Movegen) quietScore(p *position.Position, m Move) Value {
	if mg.historyData == nil {
		return 0
	}
	score := Value(mg.historyData.QuietScore(p.SideToMove(), m) / 512)
	if last := p.LastMove(); last != MoveNone {
		if mg.historyData.CounterMove(last) == m.MoveOf() {
			score += 500
		}
	}
	if score > 3000 {
		score = 3000
	} else if score < -3000 {
		score = -3000
	}
	return score
}

// pvMoveInMode reports whether the stored PV move belongs to the class
// of moves the caller asked for and is still pseudo-legally playable.
func (mg *Movegen) pvMoveInMode(p *position.Position, mode GenMode) bool {
	m := mg.pvMove
	tactical := m.IsCapture() || m.PromotionType() == Queen
	if tactical && mode&GenNonQuiet == 0 {
		return false
	}
	if !tactical && mode&GenQuiet == 0 {
		return false
	}
	return isPseudoLegalHere(p, m)
}

// killerIsPlayable verifies a killer recorded at this ply is a quiet
// move actually available in the current position - the board has moved
// on since it was stored.
func (mg *Movegen) killerIsPlayable(p *position.Position, m Move) bool {
	if m == MoveNone || m == mg.pvMove || m.IsTactical() {
		return false
	}
	return isPseudoLegalHere(p, m)
}

// isPseudoLegalHere re-validates a remembered move (TT or killer) against
// the current board: right piece on the source square, destination
// consistent with the flag, path clear for sliders and pawn pushes.
func isPseudoLegalHere(p *position.Position, m Move) bool {
	us := p.SideToMove()
	from := m.From()
	to := m.To()
	pc := p.PieceAt(from)
	if pc == PieceNone || pc.ColorOf() != us {
		return false
	}
	pt := pc.TypeOf()
	occ := p.OccupiedAll()
	target := p.PieceAt(to)

	switch {
	case m.IsCastle():
		// castling is cheap to regenerate and full of corner cases -
		// just check it against the generated list
		var list MoveList
		generateCastling(p, &list)
		return list.Contains(m.MoveOf())
	case m.IsEnPassant():
		return pt == Pawn && p.EnPassantSquare() == to &&
			attacks.PawnAttacks(us.Flip(), to).Contains(from)
	case m.IsCapture():
		if target == PieceNone || target.ColorOf() == us {
			return false
		}
	default:
		if target != PieceNone {
			return false
		}
	}

	if pt == Pawn {
		switch {
		case m.IsCapture():
			return attacks.PawnAttacks(us, from).Contains(to)
		case m.IsDoublePawnPush():
			mid := from.To(us.PawnDir())
			return from.RankOf() == us.PawnStartRank() &&
				p.PieceAt(mid) == PieceNone && to == mid.To(us.PawnDir())
		default:
			return to == from.To(us.PawnDir())
		}
	}
	return attacks.AttacksBb(pt, from, occ).Contains(to)
}

// GeneratePseudoLegalMoves returns every pseudo-legal move matching mode
// (or every evasion when evasion is set) in the generator's reusable
// buffer. The result is only valid until the next call.
func (mg *Movegen) GeneratePseudoLegalMoves(p *position.Position, mode GenMode, evasion bool) *moveslice.MoveSlice {
	var list MoveList
	switch {
	case evasion || p.InCheck():
		GeneratePseudoLegalMoves(p, GenEvasions, &list)
	case mode == GenAll:
		GeneratePseudoLegalMoves(p, GenCapturesAndQueenPromotions, &list)
		GeneratePseudoLegalMoves(p, GenQuietsAndMinorPromotions, &list)
	case mode == GenNonQuiet:
		GeneratePseudoLegalMoves(p, GenCapturesAndQueenPromotions, &list)
	case mode == GenQuiet:
		GeneratePseudoLegalMoves(p, GenQuietsAndMinorPromotions, &list)
	}
	mg.pseudoLegal.Clear()
	for i := 0; i < list.Len(); i++ {
		mg.pseudoLegal.PushBack(list.At(i))
	}
	return &mg.pseudoLegal
}

// GenerateLegalMoves returns every legal move matching mode in the
// generator's reusable buffer. The result is only valid until the next
// call.
func (mg *Movegen) GenerateLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	pseudo := mg.GeneratePseudoLegalMoves(p, mode, false)
	mg.legalMoves.Clear()
	for _, m := range *pseudo {
		if IsLegal(p, m) {
			mg.legalMoves.PushBack(m)
		}
	}
	// the pseudo buffer now holds stale data; callers get the legal one
	return &mg.legalMoves
}

// GetMoveFromUci parses a long-algebraic move string against the legal
// moves of p.
func (mg *Movegen) GetMoveFromUci(p *position.Position, uci string) Move {
	return GetMoveFromUci(p, uci)
}
