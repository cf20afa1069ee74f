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

// Package uci speaks the UCI protocol on a line stream: it owns the
// current position, dispatches inbound commands to the search, and
// implements the outbound info/bestmove reporting the search calls back
// through uciInterface.UciDriver. Unknown input is logged and ignored,
// malformed input is answered with an "info string" diagnostic - neither
// ever mutates the board.
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kvchess/kestrel/internal/evaluator"
	myLogging "github.com/kvchess/kestrel/internal/logging"
	"github.com/kvchess/kestrel/internal/movegen"
	"github.com/kvchess/kestrel/internal/moveslice"
	"github.com/kvchess/kestrel/internal/position"
	"github.com/kvchess/kestrel/internal/search"
	. "github.com/kvchess/kestrel/internal/types"
	"github.com/kvchess/kestrel/internal/uciInterface"
	"github.com/kvchess/kestrel/internal/version"
)

var out = message.NewPrinter(language.German)
var log *logging.Logger

var regexWhiteSpace = regexp.MustCompile(`\s+`)

// UciHandler reads UCI commands from InIo, keeps the board the GUI set
// up, and drives the search. Create with NewUciHandler; the io members
// can be swapped out for testing.
type UciHandler struct {
	InIo       *bufio.Scanner
	OutIo      *bufio.Writer
	myMoveGen  *movegen.Movegen
	mySearch   *search.Search
	myPosition *position.Position
	myPerft    *movegen.Perft
	uciLog     *logging.Logger
}

// commandTable maps the first token of an input line to its handler.
// "quit" is absent on purpose: the loop handles it before dispatch so a
// handler can't accidentally keep the process alive.
var commandTable = map[string]func(u *UciHandler, tokens []string){
	"uci":        func(u *UciHandler, _ []string) { u.identify() },
	"setoption":  (*UciHandler).setOption,
	"isready":    func(u *UciHandler, _ []string) { u.mySearch.IsReady() },
	"ucinewgame": func(u *UciHandler, _ []string) { u.newGame() },
	"position":   (*UciHandler).setPosition,
	"go":         (*UciHandler).startSearch,
	"stop":       func(u *UciHandler, _ []string) { u.mySearch.StopSearch(); u.myPerft.Stop() },
	"ponderhit":  func(u *UciHandler, _ []string) { u.mySearch.PonderHit() },
	"register":   func(u *UciHandler, _ []string) { u.notImplemented("register") },
	"debug":      func(u *UciHandler, _ []string) { u.notImplemented("debug") },
	"perft":      (*UciHandler).runPerft,
	"d":          func(u *UciHandler, _ []string) { u.printBoard() },
	"move":       (*UciHandler).userMove,
	"moves":      func(u *UciHandler, _ []string) { u.printLegalMoves() },
	"static":     func(u *UciHandler, _ []string) { u.printStaticEval() },
	"noop":       func(*UciHandler, []string) {},
}

// NewUciHandler creates a handler wired to stdin/stdout and registers
// itself as the search's UCI callback.
func NewUciHandler() *UciHandler {
	if log == nil {
		log = myLogging.GetLog()
	}
	u := &UciHandler{
		InIo:       bufio.NewScanner(os.Stdin),
		OutIo:      bufio.NewWriter(os.Stdout),
		myMoveGen:  movegen.NewMoveGen(),
		mySearch:   search.NewSearch(),
		myPosition: position.NewPosition(),
		myPerft:    movegen.NewPerft(),
		uciLog:     myLogging.GetUciLog(),
	}
	u.mySearch.SetUciHandler(uciInterface.UciDriver(u))
	return u
}

// Loop reads and dispatches commands until "quit" (or the input stream
// closing).
func (u *UciHandler) Loop() {
	for u.InIo.Scan() {
		if u.handleReceivedCommand(u.InIo.Text()) {
			return
		}
	}
}

// Command feeds a single protocol line through the handler and returns
// whatever it wrote to the output stream - the unit-test entry point.
func (u *UciHandler) Command(cmd string) string {
	saved := u.OutIo
	buffer := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buffer)
	u.handleReceivedCommand(cmd)
	_ = u.OutIo.Flush()
	u.OutIo = saved
	return buffer.String()
}

// handleReceivedCommand dispatches one input line; returns true on
// "quit".
func (u *UciHandler) handleReceivedCommand(cmd string) bool {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return false
	}
	u.uciLog.Infof("<< %s", cmd)

	tokens := regexWhiteSpace.Split(cmd, -1)
	if tokens[0] == "quit" {
		return true
	}
	if handler, known := commandTable[tokens[0]]; known {
		handler(u, tokens)
	} else {
		log.Warningf("Unknown command ignored: %s", cmd)
	}
	return false
}

// ///////////////////////////////////////////////////////////
// Inbound command handlers
// ///////////////////////////////////////////////////////////

// identify answers "uci" with id, the option list, and uciok.
func (u *UciHandler) identify() {
	u.send("id name Kestrel " + version.Version())
	u.send("id author Kestrel contributors")
	for _, o := range *uciOptions.GetOptions() {
		u.send(o)
	}
	u.send("uciok")
}

// setOption parses "setoption name <name...> [value <v>]"; option names
// may contain spaces.
func (u *UciHandler) setOption(tokens []string) {
	if len(tokens) < 3 || tokens[1] != "name" {
		u.reject("Command 'setoption' is malformed")
		return
	}
	name, value := "", ""
	i := 2
	for ; i < len(tokens) && tokens[i] != "value"; i++ {
		if name != "" {
			name += " "
		}
		name += tokens[i]
	}
	if i+1 < len(tokens) {
		value = tokens[i+1]
	}

	o, found := uciOptions[name]
	if !found {
		u.reject(out.Sprintf("Command 'setoption': No such option '%s'", name))
		return
	}
	o.CurrentValue = value
	o.HandlerFunc(u, o)
}

// newGame resets board and search state for a fresh game.
func (u *UciHandler) newGame() {
	u.myPosition = position.NewPosition()
	u.mySearch.NewGame()
}

// setPosition rebuilds the board from "position [startpos|fen ...]
// [moves ...]". The current position is only replaced once the whole
// command parsed and every listed move proved legal.
func (u *UciHandler) setPosition(tokens []string) {
	if len(tokens) < 2 {
		u.reject(out.Sprintf("Command 'position' malformed. %s", tokens))
		return
	}

	fen := position.StartFen
	i := 2
	switch tokens[1] {
	case "startpos":
		// keep the default fen
	case "fen":
		var fenb strings.Builder
		for ; i < len(tokens) && tokens[i] != "moves"; i++ {
			fenb.WriteString(tokens[i])
			fenb.WriteByte(' ')
		}
		fen = strings.TrimSpace(fenb.String())
		if fen == "" {
			u.reject(out.Sprintf("Command 'position' malformed. %s", tokens))
			return
		}
	default:
		u.reject(out.Sprintf("Command 'position' malformed. %s", tokens))
		return
	}

	newPosition, err := position.NewPositionFen(fen)
	if err != nil {
		u.reject(out.Sprintf("Command 'position' malformed. Invalid fen '%s': %v", fen, err))
		return
	}

	if i < len(tokens) {
		if tokens[i] != "moves" {
			u.reject(out.Sprintf("Command 'position' malformed moves. %s", tokens))
			return
		}
		for i++; i < len(tokens); i++ {
			move := u.myMoveGen.GetMoveFromUci(newPosition, tokens[i])
			if !move.IsValid() {
				u.reject(out.Sprintf("Command 'position' malformed. Invalid move '%s' (%s)", tokens[i], tokens))
				return
			}
			newPosition.DoMove(move)
		}
	}

	u.myPosition = newPosition
	log.Debugf("New position: %s", u.myPosition.ToFen())
}

// startSearch parses the "go" parameters and hands a copy of the current
// position to the search.
func (u *UciHandler) startSearch(tokens []string) {
	searchLimits, failed := u.readSearchLimits(tokens)
	if failed {
		return
	}
	u.mySearch.StartSearch(*u.myPosition, *searchLimits)
}

// runPerft runs "perft <depth> [<toDepth>]" on the current position in
// the background.
func (u *UciHandler) runPerft(tokens []string) {
	from, to := 4, 4
	if len(tokens) > 1 {
		if d, err := strconv.Atoi(tokens[1]); err == nil {
			from, to = d, d
		} else {
			log.Warningf("Can't perft on depth='%s'", tokens[1])
		}
	}
	if len(tokens) > 2 {
		if d, err := strconv.Atoi(tokens[2]); err == nil {
			to = d
		} else {
			log.Warningf("Can't use second perft depth2='%s'", tokens[2])
		}
	}
	fen := u.myPosition.ToFen()
	go func() {
		for d := from; d <= to; d++ {
			u.myPerft.Run(fen, d)
		}
	}()
}

// printBoard handles the "d" debug command.
func (u *UciHandler) printBoard() {
	u.send(u.myPosition.String())
	u.send(u.myPosition.ToFen())
}

// userMove makes a single move on the current position if it is legal,
// otherwise reports and leaves the board unchanged.
func (u *UciHandler) userMove(tokens []string) {
	if len(tokens) < 2 {
		u.reject("Command 'move' requires a move in long algebraic notation")
		return
	}
	move := u.myMoveGen.GetMoveFromUci(u.myPosition, tokens[1])
	if !move.IsValid() {
		u.reject(out.Sprintf("Command 'move': '%s' is not a legal move here", tokens[1]))
		return
	}
	u.myPosition.DoMove(move)
	u.send(u.myPosition.String())
}

// printLegalMoves lists all legal moves of the current position.
func (u *UciHandler) printLegalMoves() {
	moves := u.myMoveGen.GenerateLegalMoves(u.myPosition, movegen.GenAll)
	u.send(out.Sprintf("%d legal moves: %s", moves.Len(), moves.StringUci()))
}

// printStaticEval prints the static evaluation of the current position.
func (u *UciHandler) printStaticEval() {
	ev := evaluator.NewEvaluator()
	ev.InitEval(u.myPosition)
	u.send(ev.Report())
}

func (u *UciHandler) notImplemented(cmd string) {
	u.reject(out.Sprintf("Command '%s' not implemented", cmd))
}

// reject reports a recoverable input problem on the diagnostic channel
// and to the log; the caller must leave all state untouched.
func (u *UciHandler) reject(msg string) {
	u.SendInfoString(msg)
	log.Warning(msg)
}

// ///////////////////////////////////////////////////////////
// "go" parameter parsing
// ///////////////////////////////////////////////////////////

// readSearchLimits turns the tokens of a "go" command into Limits. The
// bool result is true when the command had to be rejected.
func (u *UciHandler) readSearchLimits(tokens []string) (*search.Limits, bool) {
	sl := search.NewSearchLimits()

	// takeInt consumes the numeric argument of the parameter at i,
	// advancing the index; a missing or non-numeric argument aborts the
	// whole command.
	bad := false
	i := 1
	takeInt := func(what string) int64 {
		i++
		if i >= len(tokens) {
			u.reject(out.Sprintf("UCI command go malformed. Missing value for %s", what))
			bad = true
			return 0
		}
		n, err := strconv.ParseInt(tokens[i], 10, 64)
		if err != nil {
			u.reject(out.Sprintf("UCI command go malformed. %s value not a number: %s", what, tokens[i]))
			bad = true
		}
		return n
	}

	for ; i < len(tokens) && !bad; i++ {
		switch tokens[i] {
		case "infinite":
			sl.Infinite = true
		case "ponder":
			sl.Ponder = true
		case "depth":
			sl.Depth = int(takeInt("Depth"))
		case "nodes":
			sl.Nodes = uint64(takeInt("Nodes"))
		case "mate":
			sl.Mate = int(takeInt("Mate"))
		case "moveTime", "movetime":
			sl.MoveTime = time.Duration(takeInt("MoveTime")) * time.Millisecond
			sl.TimeControl = true
		case "wtime":
			sl.WhiteTime = time.Duration(takeInt("WhiteTime")) * time.Millisecond
			sl.TimeControl = true
		case "btime":
			sl.BlackTime = time.Duration(takeInt("BlackTime")) * time.Millisecond
			sl.TimeControl = true
		case "winc":
			sl.WhiteInc = time.Duration(takeInt("WhiteInc")) * time.Millisecond
		case "binc":
			sl.BlackInc = time.Duration(takeInt("BlackInc")) * time.Millisecond
		case "movestogo":
			sl.MovesToGo = int(takeInt("Movestogo"))
		case "searchmoves", "moves":
			// all following tokens that parse as legal moves restrict
			// the root; the first non-move token re-enters the switch
			for i+1 < len(tokens) {
				move := u.myMoveGen.GetMoveFromUci(u.myPosition, tokens[i+1])
				if !move.IsValid() {
					break
				}
				sl.Moves.PushBack(move)
				i++
			}
		default:
			u.reject(out.Sprintf("UCI command go malformed. Invalid subcommand: %s", tokens[i]))
			return nil, true
		}
	}
	if bad {
		return nil, true
	}

	// at least one effective limit must be in place, or the search would
	// run forever with no way to ever report
	if !(sl.Infinite || sl.Ponder || sl.TimeControl ||
		sl.Depth > 0 || sl.Nodes > 0 || sl.Mate > 0) {
		u.reject(out.Sprintf("UCI command go malformed. No effective limits set %s", tokens))
		return nil, true
	}

	// under a clock the side to move must actually have time on it
	if sl.TimeControl && sl.MoveTime == 0 {
		stm := u.myPosition.SideToMove()
		if (stm == White && sl.WhiteTime == 0) || (stm == Black && sl.BlackTime == 0) {
			u.reject(out.Sprintf("UCI command go invalid. %s to move but its clock is zero! %s", stm, tokens))
			return nil, true
		}
	}
	return sl, false
}

// ///////////////////////////////////////////////////////////
// Outbound reporting (uciInterface.UciDriver)
// ///////////////////////////////////////////////////////////

// SendReadyOk answers "isready" once the search is initialized.
func (u *UciHandler) SendReadyOk() {
	u.send("readyok")
}

// SendInfoString sends an arbitrary diagnostic line.
func (u *UciHandler) SendInfoString(info string) {
	u.send(out.Sprintf("info string %s", info))
}

// SendIterationEndInfo reports a completed iterative-deepening depth.
func (u *UciHandler) SendIterationEndInfo(depth int, seldepth int, value Value, nodes uint64, nps uint64, time time.Duration, pv moveslice.MoveSlice) {
	u.send(fmt.Sprintf("info depth %d seldepth %d multipv 1 score %s nodes %d nps %d time %d pv %s",
		depth, seldepth, value.String(), nodes, nps, time.Milliseconds(), pv.StringUci()))
}

// SendAspirationResearchInfo reports a failed-low/failed-high aspiration
// window re-search with its bound direction.
func (u *UciHandler) SendAspirationResearchInfo(depth int, seldepth int, value Value, bound string, nodes uint64, nps uint64, time time.Duration, pv moveslice.MoveSlice) {
	u.send(fmt.Sprintf("info depth %d seldepth %d multipv 1 score %s %s nodes %d nps %d time %d pv %s",
		depth, seldepth, value.String(), bound, nodes, nps, time.Milliseconds(), pv.StringUci()))
}

// SendSearchUpdate is the periodic progress line during long searches.
func (u *UciHandler) SendSearchUpdate(depth int, seldepth int, nodes uint64, nps uint64, time time.Duration, hashfull int) {
	u.send(fmt.Sprintf("info depth %d seldepth %d nodes %d nps %d time %d hashfull %d",
		depth, seldepth, nodes, nps, time.Milliseconds(), hashfull))
}

// SendCurrentRootMove reports which root move is being searched.
func (u *UciHandler) SendCurrentRootMove(currMove Move, moveNumber int) {
	u.send(fmt.Sprintf("info currmove %s currmovenumber %d", currMove.StringUci(), moveNumber))
}

// SendCurrentLine reports the variation currently being walked.
func (u *UciHandler) SendCurrentLine(moveList moveslice.MoveSlice) {
	u.send(fmt.Sprintf("info currline %s", moveList.StringUci()))
}

// SendResult reports the final best move (and ponder move if known).
func (u *UciHandler) SendResult(bestMove Move, ponderMove Move) {
	var sb strings.Builder
	sb.WriteString("bestmove ")
	sb.WriteString(bestMove.StringUci())
	if ponderMove != MoveNone {
		sb.WriteString(" ponder ")
		sb.WriteString(ponderMove.StringUci())
	}
	u.send(sb.String())
}

// send writes one outbound protocol line and mirrors it to the UCI log.
func (u *UciHandler) send(s string) {
	u.uciLog.Infof(">> %s", s)
	_, _ = u.OutIo.WriteString(s + "\n")
	_ = u.OutIo.Flush()
}
