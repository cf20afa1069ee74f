/*
 * Kestrel - a UCI chess engine
 *
 * MIT License
 *
 * Copyright (c) 2026 Kestrel contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package search

import (
	. "github.com/kvchess/kestrel/internal/config"
	"github.com/kvchess/kestrel/internal/movegen"
	"github.com/kvchess/kestrel/internal/moveslice"
	"github.com/kvchess/kestrel/internal/position"
	. "github.com/kvchess/kestrel/internal/types"
)

var trace = false

// ///////////////////////////////////////////////////////////
// Root search
// ///////////////////////////////////////////////////////////

// rootSearch runs one alpha-beta iteration over the pre-generated (and
// pre-sorted) root move list. Root moves differ from inner nodes in two
// ways: every move's score is written back into the list for the next
// iteration's ordering, and the loop never prunes - each root move is
// searched to full depth.
func (s *Search) rootSearch(position *position.Position, depth int, alpha Value, beta Value) {
	if trace {
		s.slog.Debugf("Ply %-2.d Depth %-2.d start: %s", 0, depth, s.statistics.CurrentVariation.StringUci())
		defer s.slog.Debugf("Ply %-2.d Depth %-2.d end: %s", 0, depth, s.statistics.CurrentVariation.StringUci())
	}

	bestValue := ValueNA

	for i, m := range *s.rootMoves {
		position.DoMove(m)
		s.nodesVisited++
		s.statistics.CurrentVariation.PushBack(m)
		s.statistics.CurrentRootMoveIndex = i
		s.statistics.CurrentRootMove = m

		var value Value
		if s.checkDrawRepAnd50(position, 2) {
			value = ValueDraw
		} else if !Settings.Search.UsePVS || i == 0 {
			// the first (best-ordered) move gets the full window
			value = -s.search(position, depth-1, 1, -beta, -alpha, true, true)
		} else {
			// every later root move only has to prove it is worse than
			// alpha; a full re-search follows when that proof fails
			value = -s.search(position, depth-1, 1, -alpha-1, -alpha, false, true)
			if value > alpha && value < beta && !s.stopConditions() {
				s.statistics.RootPvsResearches++
				value = -s.search(position, depth-1, 1, -beta, -alpha, true, true)
			}
		}

		s.statistics.CurrentVariation.PopBack()
		position.UndoMove()

		// depth 1 always completes so there is a move to play; beyond
		// that a stop abandons the iteration (pv[0] still holds the
		// best of the previous one)
		if s.stopConditions() && depth > 1 {
			return
		}

		// the score rides along in the root move for the next
		// iteration's sort
		s.rootMoves.Set(i, m.SetValue(value))

		if value > bestValue {
			bestValue = value
			savePV(m, s.pv[1], s.pv[0])
		}
	}
}

// ///////////////////////////////////////////////////////////
// Main alpha-beta search
// ///////////////////////////////////////////////////////////

// search is the recursive negamax alpha-beta for every ply below the
// root. It carries the main pruning arsenal; when depth runs out it
// drops into qsearch.
func (s *Search) search(p *position.Position, depth int, ply int, alpha Value, beta Value, isPV bool, doNull bool) Value {
	if trace {
		s.slog.Debugf("%0*s Ply %-2.d Depth %-2.d a:%-6.d b:%-6.d pv:%-6.v start:  %s", ply, "", ply, depth, alpha, beta, isPV, s.statistics.CurrentVariation.StringUci())
		defer s.slog.Debugf("%0*s Ply %-2.d Depth %-2.d a:%-6.d b:%-6.d pv:%-6.v end  :  %s", ply, "", ply, depth, alpha, beta, isPV, s.statistics.CurrentVariation.StringUci())
	}

	if s.stopConditions() {
		return ValueNA
	}

	if depth == 0 || ply >= MaxDepth {
		return s.qsearch(p, ply, alpha, beta, isPV)
	}

	// mate distance pruning: a shorter mate was already found, this
	// subtree cannot matter
	if Settings.Search.UseMDP {
		if cut, bound := mateDistanceCut(&alpha, &beta, ply); cut {
			s.statistics.Mdp++
			return bound
		}
	}

	us := p.SideToMove()
	hasCheck := p.HasCheck()
	matethreat := false

	// TT lookup: a usable value ends the node outright, otherwise the
	// stored move leads the move ordering below
	ttMove, ttValue, ttCut := s.probeTT(p, depth, ply, alpha, beta, Settings.Search.UseTT)
	if ttCut {
		s.getPVLine(p, s.pv[ply], depth)
		return ttValue
	}

	// reverse futility pruning: when the static eval beats beta by a
	// depth-scaled margin at a shallow non-PV node, trust it
	// https://www.chessprogramming.org/Reverse_Futility_Pruning
	if Settings.Search.UseRFP && doNull && depth <= 3 && !isPV && !hasCheck {
		staticEval := s.evaluate(p, ply)
		if margin := rfp[depth]; staticEval-margin >= beta {
			s.statistics.RfpPrunings++
			return staticEval - margin
		}
	}

	// null move pruning: if handing the opponent a free move still
	// leaves us above beta, an actual move will almost certainly too.
	// The assumption breaks exactly where moving is a liability: in
	// zugzwang-prone pawn endings (the MaterialNonPawn guard), in check,
	// and recursively (doNull).
	// https://www.chessprogramming.org/Null_Move_Pruning
	if Settings.Search.UseNullMove && doNull && !isPV &&
		depth >= Settings.Search.NmpDepth &&
		p.MaterialNonPawn(us) > 0 &&
		!hasCheck {

		nValue, cut, threat := s.nullMovePrune(p, depth, ply, beta, ttMove)
		if s.stopConditions() {
			return ValueNA
		}
		if cut {
			return nValue
		}
		matethreat = threat
	}

	// internal iterative deepening: with no TT move to lead the node, a
	// reduced-depth search of the same position produces one. Pays off
	// mainly at PV nodes where ordering matters most.
	// https://www.chessprogramming.org/Internal_Iterative_Deepening
	if Settings.Search.UseIID && isPV && doNull &&
		depth >= Settings.Search.IIDDepth &&
		ttMove == MoveNone {

		newDepth := depth - Settings.Search.IIDReduction
		if newDepth < 0 {
			newDepth = 0
		}
		s.search(p, newDepth, ply, alpha, beta, isPV, true)
		s.statistics.IIDsearches++
		if s.stopConditions() {
			return ValueNA
		}
		if s.pv[ply].Len() > 0 {
			s.statistics.IIDmoves++
			ttMove = (*s.pv[ply])[0].MoveOf()
		}
	}

	// set up this ply's generator - after IID, which borrowed it
	gen := s.mg[ply]
	gen.ResetOnDemand()
	s.pv[ply].Clear()
	if Settings.Search.UseTTMove {
		if ttMove != MoveNone {
			s.statistics.TTMoveUsed++
			gen.SetPvMove(ttMove)
		} else {
			s.statistics.NoTTMove++
		}
	}

	bestValue := ValueNA
	bestMove := MoveNone
	ttType := ALPHA
	searched := 0

	for move := gen.GetNextMove(p, movegen.GenAll, hasCheck); move != MoveNone; move = gen.GetNextMove(p, movegen.GenAll, hasCheck) {

		givesCheck := p.GivesCheck(move)
		newDepth, lmrDepth, extended := s.extend(depth, givesCheck, matethreat)

		// forward pruning and late move reductions apply only to
		// thoroughly boring moves
		if !isPV && !extended && !hasCheck && !givesCheck && !matethreat &&
			move != ttMove && !move.IsPromotion() && !p.IsCapturingMove(move) &&
			move != (*gen.KillerMoves())[0] && move != (*gen.KillerMoves())[1] {

			if s.futileMove(p, us, move, depth, searched, alpha, &bestValue) {
				continue
			}
			lmrDepth = s.reduceLateMove(depth, searched, lmrDepth)
		}

		p.DoMove(move)
		if !p.WasLegalMove() {
			p.UndoMove()
			continue
		}

		s.nodesVisited++
		s.statistics.CurrentVariation.PushBack(move)
		s.sendSearchUpdateToUci()

		var value Value
		if s.checkDrawRepAnd50(p, 2) {
			value = ValueDraw
		} else if !Settings.Search.UsePVS || searched == 0 {
			value = -s.search(p, newDepth, ply+1, -beta, -alpha, true, true)
		} else {
			// null-window proof at the (possibly LMR-reduced) depth; a
			// fail-high owes the move a proper full search
			value = -s.search(p, lmrDepth, ply+1, -alpha-1, -alpha, false, true)
			if value > alpha && !s.stopConditions() {
				if lmrDepth < newDepth {
					s.statistics.LmrResearches++
					value = -s.search(p, newDepth, ply+1, -beta, -alpha, true, true)
				} else if value < beta {
					s.statistics.PvsResearches++
					value = -s.search(p, newDepth, ply+1, -beta, -alpha, true, true)
				}
			}
		}

		searched++
		s.statistics.CurrentVariation.PopBack()
		p.UndoMove()

		if s.stopConditions() {
			return ValueNA
		}

		if value <= bestValue {
			// tried and refuted - debit the tables so ordering learns
			if Settings.Search.UseHistoryCounter {
				if p.IsCapturingMove(move) {
					s.history.PenalizeCapture(p.PieceAt(move.From()), move, capturedType(p, move), depth)
				} else {
					s.history.PenalizeQuiet(us, move, depth)
				}
			}
			continue
		}

		bestValue = value
		bestMove = move

		if value <= alpha {
			continue
		}
		if value < beta {
			// a true PV improvement: raise alpha, keep searching
			savePV(move, s.pv[ply+1], s.pv[ply])
			alpha = value
			ttType = EXACT
			continue
		}

		// beta cutoff: remember the refutation - killers and history
		// for a quiet move, capture history for a capture
		savePV(move, s.pv[ply+1], s.pv[ply])
		s.statistics.BetaCuts++
		if searched == 1 {
			s.statistics.BetaCuts1st++
		}
		if p.IsCapturingMove(move) {
			if Settings.Search.UseHistoryCounter {
				s.history.RewardCapture(p.PieceAt(move.From()), move, capturedType(p, move), depth)
			}
		} else {
			if Settings.Search.UseKiller {
				gen.StoreKiller(move)
			}
			if Settings.Search.UseHistoryCounter {
				s.history.RewardQuiet(us, move, depth)
			}
			if Settings.Search.UseCounterMoves {
				s.history.AddCounterMove(p.LastMove(), move)
			}
		}
		ttType = BETA
		break
	}

	// no legal move searched in a full-width node is mate or stalemate
	if searched == 0 && !s.stopConditions() {
		if p.HasCheck() {
			s.statistics.Checkmates++
			bestValue = -ValueCheckMate + Value(ply)
		} else {
			s.statistics.Stalemates++
			bestValue = ValueDraw
		}
		ttType = EXACT
	}

	if Settings.Search.UseTT {
		s.storeTT(p, depth, ply, bestMove, bestValue, ttType)
	}

	return bestValue
}

// ///////////////////////////////////////////////////////////
// Quiescence search
// ///////////////////////////////////////////////////////////

// qsearch counters the horizon effect: instead of evaluating a position
// mid-exchange at depth 0, it keeps searching forcing moves (captures,
// queen promotions, and all evasions while in check) until the position
// goes quiet, and only then trusts the static evaluation. SEE filters
// out exchanges that lose material before they are searched.
func (s *Search) qsearch(p *position.Position, ply int, alpha Value, beta Value, isPV bool) Value {
	if trace {
		s.slog.Debugf("%0*s Ply %-2.d QSearch     a:%-6.d b:%-6.d pv:%-6.v start:  %s", ply, "", ply, alpha, beta, isPV, s.statistics.CurrentVariation.StringUci())
		defer s.slog.Debugf("%0*s Ply %-2.d QSearch     a:%-6.d b:%-6.d pv:%-6.v end  :  %s", ply, "", ply, alpha, beta, isPV, s.statistics.CurrentVariation.StringUci())
	}

	if s.statistics.CurrentExtraSearchDepth < ply {
		s.statistics.CurrentExtraSearchDepth = ply
	}

	if !Settings.Search.UseQuiescence || ply >= MaxDepth {
		return s.evaluate(p, ply)
	}

	if Settings.Search.UseMDP {
		if cut, bound := mateDistanceCut(&alpha, &beta, ply); cut {
			s.statistics.Mdp++
			return bound
		}
	}

	bestValue := ValueNA
	hasCheck := p.HasCheck()

	// stand pat: the static evaluation is a lower bound on the node,
	// under the assumption that some move improves the position. If
	// standing still already beats beta there is nothing to search.
	// Not available while in check - there standing still is not an
	// option.
	// https://www.chessprogramming.org/Quiescence_Search#Standing_Pat
	if !hasCheck {
		staticEval := s.evaluate(p, ply)
		if Settings.Search.UseQSStandpat && staticEval > alpha {
			if staticEval >= beta {
				s.statistics.StandpatCuts++
				return staticEval
			}
			alpha = staticEval
		}
		bestValue = staticEval
	}

	ttMove, ttValue, ttCut := s.probeTT(p, 0, ply, alpha, beta, Settings.Search.UseQSTT)
	if ttCut {
		return ttValue
	}

	gen := s.mg[ply]
	gen.ResetOnDemand()
	s.pv[ply].Clear()
	if Settings.Search.UseQSTT && ttMove != MoveNone {
		s.statistics.TTMoveUsed++
		gen.SetPvMove(ttMove)
	}

	// in check every move is searched - a forced check extension;
	// otherwise only the forcing moves
	mode := movegen.GenNonQuiet
	if hasCheck {
		s.statistics.CheckInQS++
		mode = movegen.GenAll
	}

	bestMove := MoveNone
	ttType := ALPHA
	searched := 0

	for move := gen.GetNextMove(p, mode, hasCheck); move != MoveNone; move = gen.GetNextMove(p, mode, hasCheck) {

		// losing exchanges are not worth extending the search for
		if !hasCheck && !s.goodCapture(p, move) {
			continue
		}

		p.DoMove(move)
		if !p.WasLegalMove() {
			p.UndoMove()
			continue
		}

		s.nodesVisited++
		s.statistics.CurrentVariation.PushBack(move)
		s.sendSearchUpdateToUci()

		var value Value
		if hasCheck && s.checkDrawRepAnd50(p, 2) {
			// only relevant in check: the captures searched otherwise
			// reset both draw counters by definition
			value = ValueDraw
		} else {
			value = -s.qsearch(p, ply+1, -beta, -alpha, isPV)
		}

		searched++
		s.statistics.CurrentVariation.PopBack()
		p.UndoMove()

		if s.stopConditions() {
			return ValueNA
		}

		if value <= bestValue {
			continue
		}
		bestValue = value
		bestMove = move
		if value <= alpha {
			continue
		}
		savePV(move, s.pv[ply+1], s.pv[ply])
		if value < beta {
			alpha = value
			ttType = EXACT
			continue
		}

		// beta cutoff; qsearch evidence is shallow, so the tables are
		// updated at minimum weight
		s.statistics.BetaCuts++
		if searched == 1 {
			s.statistics.BetaCuts1st++
		}
		if !p.IsCapturingMove(move) {
			if Settings.Search.UseHistoryCounter {
				s.history.RewardQuiet(p.SideToMove(), move, 1)
			}
			if Settings.Search.UseCounterMoves {
				s.history.AddCounterMove(p.LastMove(), move)
			}
		}
		ttType = BETA
		break
	}

	// no move searched: while in check every evasion was generated, so
	// this really is mate. Without check it only means no capture
	// survived the filters - the stand-pat value already sitting in
	// bestValue is the answer then.
	if searched == 0 && !s.stopConditions() && p.HasCheck() {
		s.statistics.Checkmates++
		bestValue = -ValueCheckMate + Value(ply)
		ttType = EXACT
	}

	if Settings.Search.UseQSTT {
		s.storeTT(p, 1, ply, bestMove, bestValue, ttType)
	}

	return bestValue
}

// ///////////////////////////////////////////////////////////
// Node helpers
// ///////////////////////////////////////////////////////////

// mateDistanceCut tightens the window against the best mate already
// found at this distance from the root; reports (true, bound) when the
// window collapses.
func mateDistanceCut(alpha *Value, beta *Value, ply int) (bool, Value) {
	if *alpha < -ValueCheckMate+Value(ply) {
		*alpha = -ValueCheckMate + Value(ply)
	}
	if *beta > ValueCheckMate-Value(ply) {
		*beta = ValueCheckMate - Value(ply)
	}
	if *alpha >= *beta {
		return true, *alpha
	}
	return false, ValueNA
}

// probeTT looks the position up in the transposition table (when enabled
// via the passed switch) and decides whether the stored value may answer
// the node: exact entries always, bound entries only outside the current
// window, and only when the entry was searched at least this deep. The
// stored move is returned either way to lead the move ordering.
func (s *Search) probeTT(p *position.Position, depth int, ply int, alpha Value, beta Value, enabled bool) (ttMove Move, value Value, cut bool) {
	if !enabled {
		return MoveNone, ValueNA, false
	}
	entry := s.tt.Probe(p.ZobristKey())
	if entry == nil {
		s.statistics.TTMiss++
		return MoveNone, ValueNA, false
	}
	s.statistics.TTHit++
	ttMove = entry.Move.MoveOf()

	if int(entry.Depth) < depth {
		return ttMove, ValueNA, false
	}
	ttValue := valueFromTT(entry.Move.ValueOf(), ply)
	usable := false
	switch {
	case !ttValue.IsValid():
		// sentinel slipped into the table, never act on it
	case entry.Type == EXACT:
		usable = true
	case entry.Type == ALPHA && ttValue <= alpha:
		usable = true
	case entry.Type == BETA && ttValue >= beta:
		usable = true
	}
	if usable && Settings.Search.UseTTValue {
		s.statistics.TTCuts++
		return ttMove, ttValue, true
	}
	s.statistics.TTNoCuts++
	return ttMove, ValueNA, false
}

// nullMovePrune hands the opponent a free move and searches the result
// with a reduced depth and a null window around beta. Reports
// (value, true, _) on a cutoff; otherwise (_, false, mateThreat), where
// mateThreat means skipping a move would get us mated - the caller uses
// it to veto further pruning and possibly extend.
func (s *Search) nullMovePrune(p *position.Position, depth int, ply int, beta Value, ttMove Move) (Value, bool, bool) {
	// adaptive reduction after Heinz, ICCA Journal Vol. 22 No. 3:
	// deeper nodes and positions with pieces still on the board
	// (GamePhase >= 3) can afford more
	r := Settings.Search.NmpReduction
	if depth > 8 || (depth > 6 && p.GamePhase() >= 3) {
		r++
	}
	newDepth := depth - r - 1
	if newDepth < 0 {
		newDepth = 0
	}

	p.DoNullMove()
	s.nodesVisited++
	nValue := -s.search(p, newDepth, ply+1, -beta, -beta+1, false, false)
	p.UndoNullMove()

	if s.stopConditions() {
		return ValueNA, false, false
	}

	matethreat := false
	if nValue > ValueCheckMateThreshold {
		// a mate even after passing - cap it, the mate is unproven
		s.statistics.NMPMateBeta++
		nValue = ValueCheckMateThreshold
	} else if nValue < -ValueCheckMateThreshold {
		// passing gets us mated: a real threat is on the board
		s.statistics.NMPMateAlpha++
		matethreat = true
	}

	if nValue >= beta {
		s.statistics.NullMoveCuts++
		if Settings.Search.UseTT {
			s.storeTT(p, depth, ply, ttMove, nValue, BETA)
		}
		return nValue, true, matethreat
	}
	return nValue, false, matethreat
}

// extend decides the new nominal and LMR base depths for a move.
// Extensions are used sparingly - pruning usually earns more. The check
// extension overlaps with qsearch searching evasions anyway, but here
// the full search's prunings apply, qsearch's don't.
func (s *Search) extend(depth int, givesCheck bool, matethreat bool) (newDepth int, lmrDepth int, extended bool) {
	newDepth = depth - 1
	if Settings.Search.UseExt {
		if Settings.Search.UseCheckExt && givesCheck {
			s.statistics.CheckExtension++
			extended = true
		}
		// off by default - it grows the tree considerably
		if Settings.Search.UseThreatExt && matethreat {
			s.statistics.ThreatExtension++
			extended = true
		}
		if extended && Settings.Search.UseExtAddDepth {
			newDepth++
		}
	}
	return newDepth, newDepth, extended
}

// futileMove applies futility pruning and late move pruning to a boring
// move; true means skip it. Futility keeps the hypothetical gain as a
// lower bound on bestValue so the node still returns something sane.
func (s *Search) futileMove(p *position.Position, us Color, move Move, depth int, searched int, alpha Value, bestValue *Value) bool {
	// futility: if material plus the captured piece plus a depth-indexed
	// margin still can't reach alpha, the move is not worth a search
	if Settings.Search.UseFP && depth < 7 {
		materialEval := p.Material(us) - p.Material(us.Flip())
		moveGain := PieceValue[p.PieceAt(move.To()).TypeOf()]
		if materialEval+moveGain+fp[depth] <= alpha {
			if materialEval+moveGain > *bestValue {
				*bestValue = materialEval + moveGain
			}
			s.statistics.FpPrunings++
			return true
		}
	}
	// late move pruning: past a depth-indexed move count the remaining
	// (worst-ordered) quiets are not searched at all
	if Settings.Search.UseLmp && searched >= LmpMovesSearched(depth) {
		s.statistics.LmpCuts++
		return true
	}
	return false
}

// reduceLateMove returns the (possibly) reduced depth for a late quiet
// move - moves this far down the ordering rarely raise alpha, so they
// are searched shallower first; the caller re-searches on a fail-high.
func (s *Search) reduceLateMove(depth int, searched int, lmrDepth int) int {
	if Settings.Search.UseLmr &&
		depth >= Settings.Search.LmrDepth &&
		searched >= Settings.Search.LmrMovesSearched {
		lmrDepth -= LmrReduction(depth, searched)
		s.statistics.LmrReductions++
		if lmrDepth < 0 {
			lmrDepth = 0
		}
	}
	return lmrDepth
}

// evaluate returns the static evaluation, shortcut through the TT when a
// previous visit already evaluated this position.
func (s *Search) evaluate(position *position.Position, ply int) Value {
	s.statistics.LeafPositionsEvaluated++

	value := ValueNA
	useEvalTT := Settings.Search.UseTT && Settings.Search.UseEvalTT

	if useEvalTT {
		if ttEntry := s.tt.Probe(position.ZobristKey()); ttEntry != nil {
			s.statistics.TTHit++
			s.statistics.EvaluationsFromTT++
			value = valueFromTT(ttEntry.Move.ValueOf(), ply)
		}
	}
	if value == ValueNA {
		s.statistics.Evaluations++
		value = s.eval.Evaluate(position)
	}
	if useEvalTT {
		s.storeTT(position, 0, ply, MoveNone, value, EXACT)
	}
	return value
}

// goodCapture filters the captures searched in quiescence. With SEE
// enabled only exchanges that win material are kept; otherwise a set of
// cheap static rules approximates the same filter.
func (s *Search) goodCapture(p *position.Position, move Move) bool {
	if Settings.Search.UseSEE {
		return seeGe(p, move, 1)
	}
	// lower value piece captures higher value piece, with a margin so
	// BxN still qualifies
	return PieceValue[p.PieceAt(move.From()).TypeOf()]+50 < PieceValue[p.PieceAt(move.To()).TypeOf()] ||
		// recaptures are always looked at
		(p.LastMove() != MoveNone && p.LastMove().To() == move.To() && p.LastCapturedPieceType() != PtNone) ||
		// as are captures of undefended pieces (a defender hiding
		// behind the attacker is missed here, which merely costs one
		// extra qsearch node)
		!p.IsAttacked(move.To(), p.SideToMove().Flip())
}

// savePV writes move followed by the deeper pv line src into dest.
func savePV(move Move, src *moveslice.MoveSlice, dest *moveslice.MoveSlice) {
	dest.Clear()
	dest.PushBack(move)
	*dest = append(*dest, *src...)
}

// storeTT stores a search result, with the value folded into the move's
// spare bits and mate scores normalized to distance from this node.
func (s *Search) storeTT(p *position.Position, depth int, ply int, move Move, value Value, valueType ValueType) {
	s.tt.Put(p.ZobristKey(), move, int8(depth), valueToTT(value, ply), valueType, false)
}

// getPVLine reconstructs the principal variation by following best moves
// through the TT, at most depth moves deep. It stops at the first slot
// that holds a different position or no move.
func (s *Search) getPVLine(p *position.Position, pv *moveslice.MoveSlice, depth int) {
	pv.Clear()
	counter := 0
	ttMatch := s.tt.GetEntry(p.ZobristKey())
	for ttMatch != nil && ttMatch.Key == p.ZobristKey() && ttMatch.Move.MoveOf() != MoveNone && counter < depth {
		pv.PushBack(ttMatch.Move.MoveOf())
		p.DoMove(ttMatch.Move.MoveOf())
		counter++
		ttMatch = s.tt.GetEntry(p.ZobristKey())
	}
	for i := 0; i < counter; i++ {
		p.UndoMove()
	}
}

// capturedType returns the piece type a capture takes, before the move
// is made - Pawn for en-passant, whose destination square is empty.
func capturedType(p *position.Position, m Move) PieceType {
	if m.IsEnPassant() {
		return Pawn
	}
	return p.PieceAt(m.To()).TypeOf()
}

// valueToTT normalizes a mate score to distance-from-this-node before it
// is stored; valueFromTT undoes it on the way out. Without the pair, a
// mate score found at one ply would be replayed with the wrong distance
// at another.
func valueToTT(value Value, ply int) Value {
	if value.IsCheckMateValue() {
		if value > 0 {
			return value + Value(ply)
		}
		return value - Value(ply)
	}
	return value
}

func valueFromTT(value Value, ply int) Value {
	if value.IsCheckMateValue() {
		if value > 0 {
			return value - Value(ply)
		}
		return value + Value(ply)
	}
	return value
}
