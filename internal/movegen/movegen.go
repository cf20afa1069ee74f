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

// Package movegen generates chess moves on a Position: pseudo-legal move
// generation split by gen type (captures/quiet-promotions, quiets/minor
// promotions, evasions, everything, quiet checks), plus a legality filter
// so callers can ask for GenerateLegalMoves directly. Generation never
// allocates: results land in a caller-owned, fixed-capacity MoveList.
package movegen

import (
	"regexp"
	"strings"

	"github.com/kvchess/kestrel/internal/attacks"
	"github.com/kvchess/kestrel/internal/position"
	. "github.com/kvchess/kestrel/internal/types"
)

// GenType selects which class of pseudo-legal moves to generate, mirroring
// the named generation modes a staged move orderer asks for: loud moves
// first (captures and the always-worth-it queen promotion), then quiets
// when the loud stage fails to cut off, with separate modes for check
// evasions and quiescence's quiet-check extension.
type GenType int

const (
	// GenCapturesAndQueenPromotions yields captures, en-passant captures,
	// and both quiet and capturing queen promotions.
	GenCapturesAndQueenPromotions GenType = iota
	// GenQuietsAndMinorPromotions yields non-capturing moves, castling,
	// and the (rare) knight/bishop/rook promotions, including promotion
	// captures to a minor piece.
	GenQuietsAndMinorPromotions
	// GenEvasions yields every pseudo-legal move available while in
	// check; IsLegal still must be applied since not every generated
	// move actually escapes the check.
	GenEvasions
	// GenNonEvasions yields every pseudo-legal move regardless of check,
	// the union of the two "normal" modes above.
	GenNonEvasions
	// GenQuietChecks yields non-capturing, non-promoting moves that give
	// direct check, excluding castling; discovered checks are not
	// generated.
	GenQuietChecks
)

var whitePawnCaptureDirs = [2]Direction{Northeast, Northwest}
var blackPawnCaptureDirs = [2]Direction{Southeast, Southwest}

func pawnCaptureDirs(us Color) [2]Direction {
	if us == White {
		return whitePawnCaptureDirs
	}
	return blackPawnCaptureDirs
}

func pawnPush(b Bitboard, us Color) Bitboard {
	if us == White {
		return Shift(b, North)
	}
	return Shift(b, South)
}

// GeneratePseudoLegalMoves fills list with every pseudo-legal move of the
// requested kind: legal in every respect except possibly leaving (or
// failing to resolve) a check on the mover's own king. Use IsLegal or
// GenerateLegalMoves to filter.
func GeneratePseudoLegalMoves(pos *position.Position, gt GenType, list *MoveList) {
	us := pos.SideToMove()
	own := pos.AllPiecesBb(us)
	opp := pos.AllPiecesBb(us.Flip())
	empty := ^(own | opp)

	var target Bitboard
	switch gt {
	case GenCapturesAndQueenPromotions:
		target = opp
	case GenQuietsAndMinorPromotions:
		target = empty
	case GenEvasions, GenNonEvasions:
		target = ^own
	case GenQuietChecks:
		target = empty
	}

	generatePawnMoves(pos, gt, list)

	for _, pt := range [4]PieceType{Knight, Bishop, Rook, Queen} {
		generatePieceMoves(pos, pt, target, gt, list)
	}

	// a king step can never give check itself, so quiet-check generation
	// skips the king entirely
	if gt != GenQuietChecks {
		generateKingMoves(pos, target, list)
	}

	if gt == GenQuietsAndMinorPromotions || gt == GenNonEvasions {
		generateCastling(pos, list)
	}
}

// generatePieceMoves generates moves for every piece of type pt, masking
// destinations to target and, for GenQuietChecks, to the squares from
// which that piece type gives check.
func generatePieceMoves(pos *position.Position, pt PieceType, target Bitboard, gt GenType, list *MoveList) {
	us := pos.SideToMove()
	occ := pos.OccupiedAll()
	pieces := pos.PiecesBb(us, pt)

	mask := target
	if gt == GenQuietChecks {
		mask = target & pos.CheckSquares(pt)
	}

	for pieces != 0 {
		from := pieces.PopLsb()
		dests := attacks.AttacksBb(pt, from, occ) & mask
		for dests != 0 {
			to := dests.PopLsb()
			flag := FlagQuiet
			if pos.PieceAt(to) != PieceNone {
				flag = FlagCapture
			}
			list.Add(NewMove(from, to, flag))
		}
	}
}

// generateKingMoves is never asked for GenQuietChecks: a king cannot give
// check by stepping somewhere, only by a discovered check, and
// GenQuietChecks does not generate discovered checks.
func generateKingMoves(pos *position.Position, target Bitboard, list *MoveList) {
	us := pos.SideToMove()
	from := pos.KingSquare(us)
	dests := attacks.KingAttacks(from) & target
	for dests != 0 {
		to := dests.PopLsb()
		flag := FlagQuiet
		if pos.PieceAt(to) != PieceNone {
			flag = FlagCapture
		}
		list.Add(NewMove(from, to, flag))
	}
}

func generateCastling(pos *position.Position, list *MoveList) {
	us := pos.SideToMove()
	if pos.InCheck() {
		return
	}
	occ := pos.OccupiedAll()
	them := us.Flip()

	if us == White {
		if pos.CastlingRights().Has(CastlingWK) &&
			occ&attacks.Between(SqE1, SqH1) == 0 &&
			!pos.IsAttacked(SqE1, them) && !pos.IsAttacked(SqF1, them) {
			list.Add(NewMove(SqE1, SqG1, FlagKingCastle))
		}
		if pos.CastlingRights().Has(CastlingWQ) &&
			occ&attacks.Between(SqA1, SqE1) == 0 &&
			!pos.IsAttacked(SqE1, them) && !pos.IsAttacked(SqD1, them) {
			list.Add(NewMove(SqE1, SqC1, FlagQueenCastle))
		}
	} else {
		if pos.CastlingRights().Has(CastlingBK) &&
			occ&attacks.Between(SqE8, SqH8) == 0 &&
			!pos.IsAttacked(SqE8, them) && !pos.IsAttacked(SqF8, them) {
			list.Add(NewMove(SqE8, SqG8, FlagKingCastle))
		}
		if pos.CastlingRights().Has(CastlingBQ) &&
			occ&attacks.Between(SqA8, SqE8) == 0 &&
			!pos.IsAttacked(SqE8, them) && !pos.IsAttacked(SqD8, them) {
			list.Add(NewMove(SqE8, SqC8, FlagQueenCastle))
		}
	}
}

func generatePawnMoves(pos *position.Position, gt GenType, list *MoveList) {
	us := pos.SideToMove()
	pawns := pos.PiecesBb(us, Pawn)
	occ := pos.OccupiedAll()
	empty := ^occ
	opp := pos.AllPiecesBb(us.Flip())
	promoRank := us.PromotionRank().Mask()
	startRank := us.PawnStartRank().Mask()

	wantQuiets := gt == GenQuietsAndMinorPromotions || gt == GenEvasions || gt == GenNonEvasions
	wantCaptures := gt == GenCapturesAndQueenPromotions || gt == GenEvasions || gt == GenNonEvasions
	wantChecks := gt == GenQuietChecks

	if wantQuiets || wantChecks {
		singlePush := pawnPush(pawns, us) & empty
		promoPush := singlePush & promoRank
		quietPush := singlePush &^ promoRank

		if wantChecks {
			quietPush &= pos.CheckSquares(Pawn)
		}
		for quietPush != 0 {
			to := quietPush.PopLsb()
			from := to.To(-us.PawnDir())
			list.Add(NewMove(from, to, FlagQuiet))
		}
		if wantQuiets {
			for promoPush != 0 {
				to := promoPush.PopLsb()
				from := to.To(-us.PawnDir())
				list.Add(NewPromotionMove(from, to, Knight, false))
				list.Add(NewPromotionMove(from, to, Bishop, false))
				list.Add(NewPromotionMove(from, to, Rook, false))
			}
		}

		doubleOrigin := pawns & startRank
		doublePush := pawnPush(pawnPush(doubleOrigin, us)&empty, us) & empty
		if wantChecks {
			doublePush &= pos.CheckSquares(Pawn)
		}
		if wantQuiets || wantChecks {
			for doublePush != 0 {
				to := doublePush.PopLsb()
				from := to.To(-2 * us.PawnDir())
				list.Add(NewMove(from, to, FlagDoublePawnPush))
			}
		}
	}

	// Queen promotion by a quiet push belongs to the "loud" stage even
	// though it isn't a capture - too good to defer to the quiet stage.
	if wantCaptures {
		singlePush := pawnPush(pawns, us) & empty
		promoPush := singlePush & promoRank
		for promoPush != 0 {
			to := promoPush.PopLsb()
			from := to.To(-us.PawnDir())
			list.Add(NewPromotionMove(from, to, Queen, false))
		}
	}

	if wantCaptures {
		for _, dir := range pawnCaptureDirs(us) {
			caps := Shift(pawns, dir) & opp
			promo := caps & promoRank
			plain := caps &^ promoRank
			for plain != 0 {
				to := plain.PopLsb()
				from := to.To(-dirDelta(dir))
				list.Add(NewMove(from, to, FlagCapture))
			}
			for promo != 0 {
				to := promo.PopLsb()
				from := to.To(-dirDelta(dir))
				list.Add(NewPromotionMove(from, to, Queen, true))
			}
		}
	}
	if wantQuiets {
		for _, dir := range pawnCaptureDirs(us) {
			caps := Shift(pawns, dir) & opp
			promo := caps & promoRank
			for promo != 0 {
				to := promo.PopLsb()
				from := to.To(-dirDelta(dir))
				list.Add(NewPromotionMove(from, to, Knight, true))
				list.Add(NewPromotionMove(from, to, Bishop, true))
				list.Add(NewPromotionMove(from, to, Rook, true))
			}
		}
	}

	if (wantCaptures || gt == GenEvasions) && pos.EnPassantSquare() != SqNone {
		epSq := pos.EnPassantSquare()
		origins := attacks.PawnAttacks(us.Flip(), epSq) & pawns
		for origins != 0 {
			from := origins.PopLsb()
			list.Add(NewMove(from, epSq, FlagEnPassant))
		}
	}
}

// dirDelta mirrors the square-delta of each compass direction, needed to
// recover a pawn's origin square from a shifted destination bitboard.
func dirDelta(d Direction) int {
	switch d {
	case North:
		return 8
	case South:
		return -8
	case East:
		return 1
	case West:
		return -1
	case Northeast:
		return 9
	case Southwest:
		return -9
	case Southeast:
		return -7
	case Northwest:
		return 7
	}
	return 0
}

// IsLegal reports whether pseudo-legal move m leaves the mover's own king
// safe. It never mutates pos: king moves and en-passant captures are
// checked by recomputing attacks against a hypothetical occupancy;
// other moves are checked against the pin set (Blockers) and, while in
// check, against the evasion-target bitboard derived from Checkers.
func IsLegal(pos *position.Position, m Move) bool {
	us := pos.SideToMove()
	kingSq := pos.KingSquare(us)
	from := m.From()
	to := m.To()

	if from == kingSq {
		occ := pos.OccupiedAll().Clear(kingSq)
		return !pos.IsAttackedWithOccupancy(to, us.Flip(), occ)
	}

	if m.IsEnPassant() {
		return isLegalEnPassant(pos, m)
	}

	checkers := pos.Checkers()
	if checkers != 0 {
		if checkers.MoreThanOne() {
			return false
		}
		checkerSq := checkers.Lsb()
		evasionTarget := attacks.Between(kingSq, checkerSq).Set(checkerSq)
		if !evasionTarget.Contains(to) {
			return false
		}
	}

	if pos.Blockers().Contains(from) {
		return attacks.Aligned(kingSq, from, to)
	}
	return true
}

// isLegalEnPassant handles the one case IsLegal's generic pin/evasion
// logic can't: the captured pawn disappears from a square other than the
// move's destination, which can expose the king along a rank neither
// pawn individually pinned against.
func isLegalEnPassant(pos *position.Position, m Move) bool {
	us := pos.SideToMove()
	them := us.Flip()
	from := m.From()
	to := m.To()

	var capturedSq Square
	if us == White {
		capturedSq = to.To(-8)
	} else {
		capturedSq = to.To(8)
	}

	occ := pos.OccupiedAll().Clear(from).Clear(capturedSq).Set(to)
	kingSq := pos.KingSquare(us)

	theirPawns := pos.PiecesBb(them, Pawn).Clear(capturedSq)
	theirKnights := pos.PiecesBb(them, Knight)
	theirBishopsQueens := pos.PiecesBb(them, Bishop) | pos.PiecesBb(them, Queen)
	theirRooksQueens := pos.PiecesBb(them, Rook) | pos.PiecesBb(them, Queen)
	theirKing := pos.PiecesBb(them, King)

	if attacks.PawnAttacks(us, kingSq)&theirPawns != 0 {
		return false
	}
	if attacks.KnightAttacks(kingSq)&theirKnights != 0 {
		return false
	}
	if attacks.KingAttacks(kingSq)&theirKing != 0 {
		return false
	}
	if attacks.BishopAttacks(kingSq, occ)&theirBishopsQueens != 0 {
		return false
	}
	if attacks.RookAttacks(kingSq, occ)&theirRooksQueens != 0 {
		return false
	}
	return true
}

// GenerateLegalMoves fills list with every legal move available in pos.
func GenerateLegalMoves(pos *position.Position, list *MoveList) {
	var pseudo MoveList
	if pos.InCheck() {
		GeneratePseudoLegalMoves(pos, GenEvasions, &pseudo)
	} else {
		GeneratePseudoLegalMoves(pos, GenCapturesAndQueenPromotions, &pseudo)
		GeneratePseudoLegalMoves(pos, GenQuietsAndMinorPromotions, &pseudo)
	}
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.At(i)
		if IsLegal(pos, m) {
			list.Add(m)
		}
	}
}

// HasLegalMove reports whether pos has at least one legal move, without
// building a full move list - used by checkmate/stalemate detection and
// by the search driver's terminal-node test.
func HasLegalMove(pos *position.Position) bool {
	var pseudo MoveList
	if pos.InCheck() {
		GeneratePseudoLegalMoves(pos, GenEvasions, &pseudo)
	} else {
		GeneratePseudoLegalMoves(pos, GenCapturesAndQueenPromotions, &pseudo)
		GeneratePseudoLegalMoves(pos, GenQuietsAndMinorPromotions, &pseudo)
	}
	for i := 0; i < pseudo.Len(); i++ {
		if IsLegal(pos, pseudo.At(i)) {
			return true
		}
	}
	return false
}

var uciMoveRe = regexp.MustCompile(`^([a-h][1-8])([a-h][1-8])([nbrq])?$`)

// GetMoveFromUci parses a long-algebraic move string ("e2e4", "e7e8q")
// against pos's legal moves, returning MoveNone if it names no legal
// move. Matching against the legal move list - rather than reconstructing
// a flag from the string alone - is what makes castling, en-passant, and
// promotion flags come out right without duplicating the generator.
func GetMoveFromUci(pos *position.Position, uci string) Move {
	uci = strings.TrimSpace(uci)
	sub := uciMoveRe.FindStringSubmatch(uci)
	if sub == nil {
		return MoveNone
	}
	from, ok1 := SquareFromString(sub[1])
	to, ok2 := SquareFromString(sub[2])
	if !ok1 || !ok2 {
		return MoveNone
	}
	var promo PieceType = PtNone
	if sub[3] != "" {
		promo, _ = PieceTypeFromPromotionLetter(sub[3][0])
	}

	var list MoveList
	GenerateLegalMoves(pos, &list)
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		if m.From() == from && m.To() == to && m.PromotionType() == promo {
			return m
		}
	}
	return MoveNone
}
