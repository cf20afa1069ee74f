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

// Package position represents the chess board: a 12-bitboard piece model
// kept in lock-step with a length-64 piece array, reversible move
// application (DoMove/UndoMove) with incremental Zobrist hashing, and the
// check/pin bookkeeping (checkers, blockers, check-squares) the move
// generator needs. Create one with NewPosition() for the start position
// or NewPositionFen(fen) for an arbitrary one.
package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/op/go-logging"

	"github.com/kvchess/kestrel/internal/attacks"
	"github.com/kvchess/kestrel/internal/engineering/assert"
	myLogging "github.com/kvchess/kestrel/internal/logging"
	. "github.com/kvchess/kestrel/internal/types"
)

var log *logging.Logger

// StartFen is the standard chess starting position.
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// maxHistory bounds the combined game-plus-search depth a single Position
// value can make/unmake through before the history stack is exhausted.
// Overflowing it is a fatal logic error, not a resize.
const maxHistory = 1024

// Position is the mutable chess board: bitboards,
// piece array, castling/en-passant/clock state, the incremental Zobrist
// key, and the reversible history stack that DoMove/UndoMove push and pop.
type Position struct {
	sideToMove Color

	piecesBb   [ColorLength][PtLength]Bitboard
	occupiedBb [ColorLength]Bitboard
	board      [SqLength]Piece
	kingSquare [ColorLength]Square

	castlingRights  CastlingRights
	enPassantSquare Square
	halfMoveClock   int
	fullMoveNumber  int

	zobristKey Key

	// check/pin bookkeeping, recomputed by setCheckInfo after every
	// DoMove/UndoMove so movegen never has to re-scan for it.
	checkers     Bitboard
	blockers     Bitboard // pieces of sideToMove pinned to their own king
	checkSquares [PtLength]Bitboard

	lastMove      Move
	capturedPiece PieceType

	// positional piece-square sums, maintained incrementally by
	// putPiece/removePiece so the evaluator never loops the board
	psqMid [ColorLength]Value
	psqEnd [ColorLength]Value

	historyLen int
	history    [maxHistory]historyState
}

type historyState struct {
	zobristKey      Key
	castlingRights  CastlingRights
	enPassantSquare Square
	halfMoveClock   int
	lastMove        Move
	capturedPiece   PieceType
	checkers        Bitboard
	blockers        Bitboard
	checkSquares    [PtLength]Bitboard
}

// NewPosition creates a Position at the standard starting position.
func NewPosition() *Position {
	p, err := NewPositionFen(StartFen)
	if err != nil {
		panic(fmt.Sprintf("start fen must always parse: %v", err))
	}
	return p
}

// NewPositionFen parses a FEN string into a new Position. It returns an
// error - never a panic - on malformed input, so a bad FEN from the
// outside world cannot take the engine down.
func NewPositionFen(fen string) (*Position, error) {
	if log == nil {
		log = myLogging.GetLog("position")
	}
	p := &Position{}
	if err := p.setupFromFen(fen); err != nil {
		log.Errorf("invalid fen %q: %v", fen, err)
		return nil, err
	}
	return p, nil
}

func (p *Position) setupFromFen(fen string) error {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 {
		return fmt.Errorf("fen needs at least 4 fields, got %d", len(fields))
	}
	for i := range p.board {
		p.board[i] = PieceNone
	}
	p.piecesBb = [ColorLength][PtLength]Bitboard{}
	p.occupiedBb = [ColorLength]Bitboard{}
	p.psqMid = [ColorLength]Value{}
	p.psqEnd = [ColorLength]Value{}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return fmt.Errorf("fen piece placement needs 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := Rank(7 - i)
		file := FileA
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += File(ch - '0')
				continue
			}
			if file > FileH {
				return fmt.Errorf("rank %s overflows the board", rankStr)
			}
			pc, ok := pieceFromFenLetter(byte(ch))
			if !ok {
				return fmt.Errorf("invalid fen piece letter %q", ch)
			}
			sq := NewSquare(file, rank)
			p.putPiece(pc, sq)
			file++
		}
		if file != FileLength {
			return fmt.Errorf("rank %s does not cover 8 files", rankStr)
		}
	}

	switch fields[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return fmt.Errorf("invalid side to move %q", fields[1])
	}

	p.castlingRights = CastlingNone
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				p.castlingRights |= CastlingWK
			case 'Q':
				p.castlingRights |= CastlingWQ
			case 'k':
				p.castlingRights |= CastlingBK
			case 'q':
				p.castlingRights |= CastlingBQ
			default:
				return fmt.Errorf("invalid castling field %q", fields[2])
			}
		}
	}

	p.enPassantSquare = SqNone
	if fields[3] != "-" {
		sq, ok := SquareFromString(fields[3])
		if !ok {
			return fmt.Errorf("invalid en-passant square %q", fields[3])
		}
		p.enPassantSquare = sq
	}

	p.halfMoveClock = 0
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			p.halfMoveClock = n
		}
	}
	p.fullMoveNumber = 1
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			p.fullMoveNumber = n
		}
	}

	p.zobristKey = p.zobristOf()
	p.setCheckInfo()
	return nil
}

func pieceFromFenLetter(l byte) (Piece, bool) {
	var c Color
	if l >= 'a' && l <= 'z' {
		c = Black
	} else if l >= 'A' && l <= 'Z' {
		c = White
	} else {
		return PieceNone, false
	}
	lower := l
	if c == White {
		lower = l + ('a' - 'A')
	}
	var pt PieceType
	switch lower {
	case 'p':
		pt = Pawn
	case 'n':
		pt = Knight
	case 'b':
		pt = Bishop
	case 'r':
		pt = Rook
	case 'q':
		pt = Queen
	case 'k':
		pt = King
	default:
		return PieceNone, false
	}
	return MakePiece(c, pt), true
}

// ToFen renders the position as a FEN string.
func (p *Position) ToFen() string {
	var sb strings.Builder
	for r := Rank8; r >= Rank1; r-- {
		empty := 0
		for f := FileA; f < FileLength; f++ {
			pc := p.board[NewSquare(f, r)]
			if pc == PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r != Rank1 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(p.sideToMove.String())
	sb.WriteByte(' ')
	sb.WriteString(p.castlingRights.String())
	sb.WriteByte(' ')
	if p.enPassantSquare == SqNone {
		sb.WriteByte('-')
	} else {
		sb.WriteString(p.enPassantSquare.String())
	}
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullMoveNumber))
	return sb.String()
}

func (p *Position) String() string {
	var sb strings.Builder
	for r := Rank8; r >= Rank1; r-- {
		sb.WriteString(r.String())
		sb.WriteString(" ")
		for f := FileA; f < FileLength; f++ {
			sb.WriteString(p.board[NewSquare(f, r)].String())
			sb.WriteString(" ")
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	sb.WriteString(p.ToFen())
	return sb.String()
}

// --- accessors -------------------------------------------------------

func (p *Position) SideToMove() Color                  { return p.sideToMove }
func (p *Position) ZobristKey() Key                    { return p.zobristKey }
func (p *Position) CastlingRights() CastlingRights     { return p.castlingRights }
func (p *Position) EnPassantSquare() Square            { return p.enPassantSquare }
func (p *Position) HalfMoveClock() int                 { return p.halfMoveClock }
func (p *Position) FullMoveNumber() int                { return p.fullMoveNumber }
func (p *Position) PieceAt(sq Square) Piece            { return p.board[sq] }
func (p *Position) KingSquare(c Color) Square          { return p.kingSquare[c] }
func (p *Position) LastMove() Move                     { return p.lastMove }
func (p *Position) LastCapturedPieceType() PieceType   { return p.capturedPiece }
func (p *Position) Checkers() Bitboard                 { return p.checkers }
func (p *Position) Blockers() Bitboard                 { return p.blockers }
func (p *Position) CheckSquares(pt PieceType) Bitboard { return p.checkSquares[pt] }
func (p *Position) InCheck() bool                      { return p.checkers != BbZero }

// PiecesBb returns the bitboard of pieces of the given color and type.
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard { return p.piecesBb[c][pt] }

// AllPiecesBb returns the bitboard of all pieces of the given color.
func (p *Position) AllPiecesBb(c Color) Bitboard { return p.occupiedBb[c] }

// OccupiedAll returns the bitboard of all occupied squares.
func (p *Position) OccupiedAll() Bitboard { return p.occupiedBb[White] | p.occupiedBb[Black] }

// --- low level board mutation, kept in lock-step with piece array ----

func (p *Position) putPiece(pc Piece, sq Square) {
	p.board[sq] = pc
	c := pc.ColorOf()
	pt := pc.TypeOf()
	p.piecesBb[c][pt] = p.piecesBb[c][pt].Set(sq)
	p.occupiedBb[c] = p.occupiedBb[c].Set(sq)
	p.psqMid[c] += PosMidValue(pc, sq)
	p.psqEnd[c] += PosEndValue(pc, sq)
	if pt == King {
		p.kingSquare[c] = sq
	}
}

func (p *Position) removePiece(sq Square) Piece {
	pc := p.board[sq]
	if assert.DEBUG {
		assert.Assert(pc != PieceNone, "removePiece called on empty square %s", sq)
	}
	p.board[sq] = PieceNone
	c := pc.ColorOf()
	pt := pc.TypeOf()
	p.piecesBb[c][pt] = p.piecesBb[c][pt].Clear(sq)
	p.occupiedBb[c] = p.occupiedBb[c].Clear(sq)
	p.psqMid[c] -= PosMidValue(pc, sq)
	p.psqEnd[c] -= PosEndValue(pc, sq)
	return pc
}

func (p *Position) movePieceRaw(from, to Square) {
	pc := p.removePiece(from)
	p.putPiece(pc, to)
}

// IsAttacked reports whether sq is attacked by any piece of color by,
// given the board's current occupancy.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	return p.isAttackedWithOccupancy(sq, by, p.OccupiedAll())
}

// IsAttackedWithOccupancy reports whether sq would be attacked by color by
// given a hypothetical occupancy occ instead of the board's actual one -
// used by the move generator to test king safety with the king itself
// removed from occ (so a slider attacking "through" the king's origin
// square is still detected as giving check on the destination square).
func (p *Position) IsAttackedWithOccupancy(sq Square, by Color, occ Bitboard) bool {
	return p.isAttackedWithOccupancy(sq, by, occ)
}

// isAttackedWithOccupancy is the workhorse behind IsAttacked, king-move
// legality (computed with the king virtually removed so sliders attacking
// through it are detected) and en-passant double-check re-verification.
func (p *Position) isAttackedWithOccupancy(sq Square, by Color, occ Bitboard) bool {
	if attacks.PawnAttacks(by.Flip(), sq)&p.piecesBb[by][Pawn] != 0 {
		return true
	}
	if attacks.KnightAttacks(sq)&p.piecesBb[by][Knight] != 0 {
		return true
	}
	if attacks.KingAttacks(sq)&p.piecesBb[by][King] != 0 {
		return true
	}
	if attacks.BishopAttacks(sq, occ)&(p.piecesBb[by][Bishop]|p.piecesBb[by][Queen]) != 0 {
		return true
	}
	if attacks.RookAttacks(sq, occ)&(p.piecesBb[by][Rook]|p.piecesBb[by][Queen]) != 0 {
		return true
	}
	return false
}

// AttackersTo returns every piece of color by attacking sq given the
// supplied occupancy (used by SEE to walk a capture sequence with pieces
// progressively removed from the board).
func (p *Position) AttackersTo(sq Square, by Color, occ Bitboard) Bitboard {
	return (attacks.PawnAttacks(by.Flip(), sq) & p.piecesBb[by][Pawn]) |
		(attacks.KnightAttacks(sq) & p.piecesBb[by][Knight]) |
		(attacks.KingAttacks(sq) & p.piecesBb[by][King]) |
		(attacks.BishopAttacks(sq, occ) & (p.piecesBb[by][Bishop] | p.piecesBb[by][Queen])) |
		(attacks.RookAttacks(sq, occ) & (p.piecesBb[by][Rook] | p.piecesBb[by][Queen]))
}

// setCheckInfo recomputes checkers, blockers (pinned pieces of
// sideToMove) and check-squares (squares each piece type would deliver
// check from) for the current occupancy. Computed once per
// DoMove/UndoMove so the legality filter never re-scans per candidate
// move.
func (p *Position) setCheckInfo() {
	us := p.sideToMove
	them := us.Flip()
	kingSq := p.kingSquare[us]
	occ := p.OccupiedAll()

	p.checkers = p.AttackersTo(kingSq, them, occ)

	var blockers Bitboard
	potentialPinners := (attacks.BishopAttacks(kingSq, p.occupiedBb[them]) & (p.piecesBb[them][Bishop] | p.piecesBb[them][Queen])) |
		(attacks.RookAttacks(kingSq, p.occupiedBb[them]) & (p.piecesBb[them][Rook] | p.piecesBb[them][Queen]))
	for pinners := potentialPinners; pinners != 0; {
		pinnerSq := pinners.PopLsb()
		between := attacks.Between(kingSq, pinnerSq) & occ
		if between != 0 && !between.MoreThanOne() {
			blockers |= between & p.occupiedBb[us]
		}
	}
	p.blockers = blockers

	enemyKingSq := p.kingSquare[them]
	p.checkSquares[Pawn] = attacks.PawnAttacks(them, enemyKingSq)
	p.checkSquares[Knight] = attacks.KnightAttacks(enemyKingSq)
	p.checkSquares[Bishop] = attacks.BishopAttacks(enemyKingSq, occ)
	p.checkSquares[Rook] = attacks.RookAttacks(enemyKingSq, occ)
	p.checkSquares[Queen] = p.checkSquares[Bishop] | p.checkSquares[Rook]
	p.checkSquares[King] = BbZero
}

// epIsLegallyAvailable reports whether en-passant is not merely set but
// actually playable this ply: at least one pawn of the side to move sits
// on the correct rank adjacent to the en-passant file. The Zobrist key
// only folds in the EP-file key when this holds, so two positions that
// differ only in a dead en-passant square hash identically and
// transposition table probes stay sound.
func (p *Position) epIsLegallyAvailable() bool {
	return p.epAvailableFor(p.sideToMove)
}

// epAvailableFor is epIsLegallyAvailable with the capturing side given
// explicitly - DoMove needs it for the opponent while the side to move
// has not been flipped yet.
func (p *Position) epAvailableFor(capturer Color) bool {
	if p.enPassantSquare == SqNone {
		return false
	}
	rank := p.enPassantSquare.RankOf()
	// Our capturing pawns sit one rank behind the ep target (from our
	// perspective), adjacent in file.
	var pawnRank Rank
	if capturer == White {
		pawnRank = rank - 1
	} else {
		pawnRank = rank + 1
	}
	epFile := p.enPassantSquare.FileOf()
	for _, df := range [2]int{-1, 1} {
		f := int(epFile) + df
		if f < int(FileA) || f > int(FileH) {
			continue
		}
		sq := NewSquare(File(f), pawnRank)
		if p.piecesBb[capturer][Pawn].Contains(sq) {
			return true
		}
	}
	return false
}
