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

// Package evaluator computes the static value of a chess position in
// centipawns: material and piece-square terms interpolated by game phase,
// plus optional pawn-structure, piece and king-safety heuristics, each
// behind its own configuration switch.
package evaluator

import (
	"strings"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kvchess/kestrel/internal/attacks"
	"github.com/kvchess/kestrel/internal/config"
	myLogging "github.com/kvchess/kestrel/internal/logging"
	"github.com/kvchess/kestrel/internal/position"
	. "github.com/kvchess/kestrel/internal/types"
)

var out = message.NewPrinter(language.German)

// lightSquares has a bit set on every light square (a1 is dark).
const lightSquares Bitboard = 0x55AA55AA55AA55AA

// Evaluator holds the per-evaluation working state: the position under
// evaluation, cached king/occupancy facts, the running Score, the attack
// map, and the pawn cache. Create one with NewEvaluator and reuse it -
// a fresh evaluation resets the state, never reallocates it.
type Evaluator struct {
	log *logging.Logger

	position        *position.Position
	gamePhaseFactor float64
	us              Color
	them            Color
	ourKing         Square
	theirKing       Square
	kingRing        [ColorLength]Bitboard
	allPieces       Bitboard
	ourPieces       Bitboard

	score Score

	attack attackMap

	pawnCache *pawnCache
}

// to avoid object creation and memory allocation
// during evaluation we reuse this tmp Score.
var tmpScore = Score{}

// pre-computed lazy-eval thresholds per game phase.
var threshold [GamePhaseMax + 1]int16

func init() {
	for i := 0; i <= GamePhaseMax; i++ {
		gamePhaseFactor := float64(i) / GamePhaseMax
		threshold[i] = config.Settings.Eval.LazyEvalThreshold + int16(float64(config.Settings.Eval.LazyEvalThreshold)*gamePhaseFactor)
	}
}

// NewEvaluator creates a new instance of an Evaluator.
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		log:       myLogging.GetLog(),
		pawnCache: nil,
	}
	if config.Settings.Eval.UsePawnCache {
		e.pawnCache = newPawnCache()
	} else {
		e.log.Info("Pawn Cache is disabled in configuration")
	}
	return e
}

// InitEval caches the facts every evaluation term needs (kings, king
// rings, occupancy) and resets the running score. Evaluate calls it
// first; tests can call it directly to exercise single terms.
func (e *Evaluator) InitEval(p *position.Position) {
	e.position = p
	e.gamePhaseFactor = p.GamePhaseFactor()
	e.us = p.SideToMove()
	e.them = e.us.Flip()
	e.ourKing = e.position.KingSquare(e.us)
	e.theirKing = e.position.KingSquare(e.them)
	e.kingRing[e.us] = attacks.KingAttacks(e.ourKing)
	e.kingRing[e.them] = attacks.KingAttacks(e.theirKing)
	e.allPieces = e.position.OccupiedAll()
	e.ourPieces = e.position.AllPiecesBb(e.us)

	e.score.MidGameValue = 0
	e.score.EndGameValue = 0

	if config.Settings.Eval.UseAttacksInEval {
		e.attack.clear()
	}
}

// Evaluate computes the static value of the position from the side to
// move's point of view, game-phase interpolated between the middlegame
// and endgame partial scores.
func (e *Evaluator) Evaluate(position *position.Position) Value {
	e.InitEval(position)
	return e.evaluate()
}

// value adds up the mid and end games scores after multiplying
// them with the game phase factor.
func (e *Evaluator) value() Value {
	return e.score.ValueFromScore(e.gamePhaseFactor)
}

// evaluate sums the partial evaluations. All terms accumulate from the
// white player's view; finalEval flips the sign for black to move at the
// very end. Assumes InitEval has run.
func (e *Evaluator) evaluate() Value {
	// not enough material on either side to ever mate is a draw
	if e.position.HasInsufficientMaterial() {
		return ValueDraw
	}

	// material
	if config.Settings.Eval.UseMaterialEval {
		e.score.MidGameValue = int16(e.position.Material(White) - e.position.Material(Black))
		e.score.EndGameValue = e.score.MidGameValue
	}

	// positional values from the incrementally maintained psq sums
	if config.Settings.Eval.UsePositionalEval {
		e.score.MidGameValue += int16(e.position.PsqMidValue(White) - e.position.PsqMidValue(Black))
		e.score.EndGameValue += int16(e.position.PsqEndValue(White) - e.position.PsqEndValue(Black))
	}

	// tempo bonus for the side to move - smooths the value alternation
	// between plies which helps aspiration windows hold
	e.score.MidGameValue += config.Settings.Eval.Tempo * int16(e.position.SideToMove().Direction())

	// lazy eval: if material+psq alone already clears a comfortable
	// threshold the expensive terms won't change the verdict
	if config.Settings.Eval.UseLazyEval {
		valueFromScore := e.value()
		th := threshold[e.position.GamePhase()]
		if valueFromScore > Value(th) || valueFromScore < -Value(th) {
			return e.finalEval(valueFromScore)
		}
	}

	// pawn structure, white and black both handled inside
	if config.Settings.Eval.UsePawnEval {
		e.score.Add(e.evaluatePawns())
	}

	// the attack map is the priciest input; mobility and king safety
	// share it so it is computed once here
	if config.Settings.Eval.UseAttacksInEval {
		e.attack.compute(e.position)
		if config.Settings.Eval.UseMobility {
			e.score.MidGameValue += (e.attack.mobility[White] - e.attack.mobility[Black]) * config.Settings.Eval.MobilityBonus
			e.score.EndGameValue += (e.attack.mobility[White] - e.attack.mobility[Black]) * config.Settings.Eval.MobilityBonus
		}
	}

	// per-piece-type terms
	if config.Settings.Eval.UseAdvancedPieceEval {
		e.score.Add(e.evalPiece(White, Knight))
		e.score.Sub(e.evalPiece(Black, Knight))
		e.score.Add(e.evalPiece(White, Bishop))
		e.score.Sub(e.evalPiece(Black, Bishop))
		e.score.Add(e.evalPiece(White, Rook))
		e.score.Sub(e.evalPiece(Black, Rook))
		e.score.Add(e.evalPiece(White, Queen))
		e.score.Sub(e.evalPiece(Black, Queen))
	}

	// king shelter and safety
	if config.Settings.Eval.UseKingEval {
		e.score.Add(e.evalKing(White))
		e.score.Sub(e.evalKing(Black))
	}

	return e.finalEval(e.value())
}

// finalEval converts the white-view value to the side to move's view.
func (e *Evaluator) finalEval(value Value) Value {
	return value * Value(e.position.SideToMove().Direction())
}

// pawnDownShift shifts a bitboard one rank towards color c's own back
// rank - the direction "behind" from c's point of view.
func pawnDownShift(b Bitboard, c Color) Bitboard {
	if c == White {
		return Shift(b, South)
	}
	return Shift(b, North)
}

// evalPiece accumulates the per-piece terms for all pieces of one color
// and type into the shared tmpScore and returns it.
func (e *Evaluator) evalPiece(c Color, pieceType PieceType) *Score {
	tmpScore.MidGameValue = 0
	tmpScore.EndGameValue = 0

	pieceBb := e.position.PiecesBb(c, pieceType)
	if pieceBb == BbZero {
		return &tmpScore
	}

	us := c

	switch pieceType {
	case Knight:
		for pieceBb != BbZero {
			e.knightEval(us, pieceBb.PopLsb())
		}
	case Bishop:
		if pieceBb.MoreThanOne() {
			tmpScore.MidGameValue += config.Settings.Eval.BishopPairBonus
			tmpScore.EndGameValue += config.Settings.Eval.BishopPairBonus
		}
		for pieceBb != BbZero {
			e.bishopEval(us, pieceBb.PopLsb())
		}
	case Rook:
		for pieceBb != BbZero {
			e.rookEval(us, pieceBb.PopLsb())
		}
	case Queen:
		// no queen-specific terms yet
	}

	return &tmpScore
}

func (e *Evaluator) knightEval(us Color, sq Square) {
	// a minor tucked behind an own pawn is well placed
	if pawnDownShift(e.position.PiecesBb(us, Pawn), us).Contains(sq) {
		tmpScore.MidGameValue += config.Settings.Eval.MinorBehindPawnBonus
	}
}

func (e *Evaluator) bishopEval(us Color, sq Square) {
	if pawnDownShift(e.position.PiecesBb(us, Pawn), us).Contains(sq) {
		tmpScore.MidGameValue += config.Settings.Eval.MinorBehindPawnBonus
	}

	// own pawns on the bishop's square color blunt it, worst in endgames
	ownPawns := e.position.PiecesBb(us, Pawn)
	var samePawns int16
	if lightSquares.Contains(sq) {
		samePawns = int16((ownPawns & lightSquares).PopCount())
	} else {
		samePawns = int16((ownPawns &^ lightSquares).PopCount())
	}
	tmpScore.EndGameValue -= config.Settings.Eval.BishopPawnMalus * samePawns

	// aiming at the center on an empty board
	aim := int16((attacks.BishopAttacks(sq, BbZero) & CenterSquares).PopCount())
	tmpScore.MidGameValue += config.Settings.Eval.BishopCenterAimBonus * aim

	// completely blocked on the back rank
	backRank := Rank1
	if us == Black {
		backRank = Rank8
	}
	if sq.RankOf() == backRank {
		if attacks.BishopAttacks(sq, e.allPieces)&^e.position.AllPiecesBb(us) == BbZero {
			tmpScore.MidGameValue -= config.Settings.Eval.BishopBlockedMalus
			tmpScore.EndGameValue -= config.Settings.Eval.BishopBlockedMalus
		}
	}
}

func (e *Evaluator) rookEval(us Color, sq Square) {
	// sharing a file with the own queen
	if sq.FileOf().Mask()&e.position.PiecesBb(us, Queen) != BbZero {
		tmpScore.MidGameValue += config.Settings.Eval.RookOnQueenFileBonus
		tmpScore.EndGameValue += config.Settings.Eval.RookOnQueenFileBonus
	}

	// (semi-)open file: no own pawn in the way
	if sq.FileOf().Mask()&e.position.PiecesBb(us, Pawn) == BbZero {
		tmpScore.MidGameValue += config.Settings.Eval.RookOnOpenFileBonus
	}

	// trapped in the corner by the own castled king
	kingSq := e.position.KingSquare(us)
	if sq.RankOf() == kingSq.RankOf() {
		kingFile := kingSq.FileOf()
		rookFile := sq.FileOf()
		if (kingFile >= FileF && rookFile > kingFile) ||
			(kingFile <= FileC && rookFile < kingFile) {
			tmpScore.MidGameValue -= config.Settings.Eval.RookTrappedMalus
		}
	}
}

func (e *Evaluator) evalKing(c Color) *Score {
	tmpScore.MidGameValue = 0
	tmpScore.EndGameValue = 0
	us := c
	them := us.Flip()

	// pawn shield in front of a castled king, a middlegame concern only
	kingSq := e.position.KingSquare(us)
	kingFile := kingSq.FileOf()
	if kingFile >= FileF || kingFile <= FileC {
		shieldZone := pawnShieldZone(us, kingSq)
		count := int16((shieldZone & e.position.PiecesBb(us, Pawn)).PopCount())
		tmpScore.MidGameValue += count * config.Settings.Eval.KingCastlePawnShieldBonus
	}

	// attack/defence balance around the king ring
	if config.Settings.Eval.UseAttacksInEval {
		enemyAttacks := (e.kingRing[us] & e.attack.all[them]).PopCount()
		ourDefence := (e.kingRing[us] & e.attack.all[us]).PopCount()
		if enemyAttacks > ourDefence {
			tmpScore.MidGameValue -= int16(enemyAttacks-ourDefence) * config.Settings.Eval.KingDangerMalus
			tmpScore.EndGameValue -= int16(enemyAttacks-ourDefence) * config.Settings.Eval.KingDangerMalus
		} else {
			tmpScore.MidGameValue += int16(ourDefence-enemyAttacks) * config.Settings.Eval.KingDefenderBonus
			tmpScore.EndGameValue += int16(ourDefence-enemyAttacks) * config.Settings.Eval.KingDefenderBonus
		}

		// our pieces bearing down on the enemy king ring
		if e.attack.all[us]&e.kingRing[them] != BbZero {
			tmpScore.MidGameValue += config.Settings.Eval.KingRingAttacksBonus
			tmpScore.EndGameValue += config.Settings.Eval.KingRingAttacksBonus
		}
	}
	return &tmpScore
}

// pawnShieldZone is the three squares directly in front of a castled
// king (clamped to the board edge), where shield pawns are expected.
func pawnShieldZone(us Color, kingSq Square) Bitboard {
	zone := attacks.KingAttacks(kingSq)
	var frontRank Rank
	if us == White {
		if kingSq.RankOf() == Rank8 {
			return BbZero
		}
		frontRank = kingSq.RankOf() + 1
	} else {
		if kingSq.RankOf() == Rank1 {
			return BbZero
		}
		frontRank = kingSq.RankOf() - 1
	}
	return zone & frontRank.Mask()
}

// Report prints a breakdown of the evaluation. Used by the "static"
// debug command.
func (e *Evaluator) Report() string {
	var report strings.Builder

	report.WriteString("Evaluation Report\n")
	report.WriteString("=============================================\n")
	report.WriteString(out.Sprintf("Position: %s\n", e.position.ToFen()))
	report.WriteString(out.Sprintf("%s\n", e.position.String()))
	report.WriteString(out.Sprintf("GamePhase Factor: %f\n", e.position.GamePhaseFactor()))
	report.WriteString("-------------------------\n")
	report.WriteString(out.Sprintf("Eval value  : %d \n(from the view of next player = %s)\n",
		e.Evaluate(e.position), e.position.SideToMove().String()))

	return report.String()
}
