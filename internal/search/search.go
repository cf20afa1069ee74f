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

// Package search is the engine's driver: iterative deepening over a
// negamax alpha-beta with quiescence, fed by the on-demand move
// generator and the transposition table. One search runs at a time on
// its own goroutine; the UCI front-end talks to it through StartSearch/
// StopSearch and receives progress through the uciInterface callback.
package search

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/op/go-logging"

	"github.com/kvchess/kestrel/internal/config"
	"github.com/kvchess/kestrel/internal/evaluator"
	"github.com/kvchess/kestrel/internal/history"
	myLogging "github.com/kvchess/kestrel/internal/logging"
	"github.com/kvchess/kestrel/internal/movegen"
	"github.com/kvchess/kestrel/internal/moveslice"
	"github.com/kvchess/kestrel/internal/position"
	"github.com/kvchess/kestrel/internal/transpositiontable"
	. "github.com/kvchess/kestrel/internal/types"
	"github.com/kvchess/kestrel/internal/uciInterface"
	"github.com/kvchess/kestrel/internal/util"
)

var out = message.NewPrinter(language.German)

// Search owns everything one engine search needs: the TT, evaluator and
// history tables that live across searches, and the per-run state
// (position, limits, clocks, per-ply generators and pv lines). Create
// with NewSearch; one instance must not run two searches concurrently.
type Search struct {
	log  *logging.Logger
	slog *logging.Logger

	uciHandlerPtr uciInterface.UciDriver
	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	// long-lived state, reset only on NewGame
	tt      *transpositiontable.TtTable
	eval    *evaluator.Evaluator
	history *history.History

	lastSearchResult *Result
	hasResult        bool

	// per-run state, reset at the top of every run()
	stopFlag          bool
	startTime         time.Time
	currentPosition   *position.Position
	searchLimits      *Limits
	timeLimit         time.Duration
	extraTime         time.Duration
	nodesVisited      uint64
	mg                []*movegen.Movegen
	pv                []*moveslice.MoveSlice
	rootMoves         *moveslice.MoveSlice
	lastUciUpdateTime time.Time
	statistics        Statistics
}

// NewSearch creates a Search. Until SetUciHandler is called all
// reporting goes to the log instead of a UCI stream.
func NewSearch() *Search {
	return &Search{
		log:           myLogging.GetLog(),
		slog:          myLogging.GetSearchTraceLog(),
		initSemaphore: semaphore.NewWeighted(1),
		isRunning:     semaphore.NewWeighted(1),
		eval:          evaluator.NewEvaluator(),
		history:       history.NewHistory(),
	}
}

// NewGame stops any running search and clears all state that must not
// leak between games: the transposition table and the history tables.
func (s *Search) NewGame() {
	s.StopSearch()
	if s.tt != nil {
		s.tt.Clear()
	}
	s.history.Clear()
}

// StartSearch begins searching the given position under the given
// limits on a new goroutine. It copies both arguments and returns as
// soon as the search is initialized, so the caller can keep reading
// protocol input.
func (s *Search) StartSearch(p position.Position, sl Limits) {
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.currentPosition = &p
	s.searchLimits = &sl
	go s.run(&p, &sl)
	// block until run() signals that initialization completed
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.initSemaphore.Release(1)
}

// StopSearch requests a running search to stop and blocks until it has.
// The search still publishes its best-so-far result on the way out.
func (s *Search) StopSearch() {
	s.stopFlag = true
	s.WaitWhileSearching()
}

// PonderHit switches a ponder search over to normal time control. A
// ponderhit with no ponder search running is logged and ignored.
func (s *Search) PonderHit() {
	if s.IsSearching() && s.searchLimits.Ponder {
		s.log.Debug("Ponderhit during search - activating time control")
		s.startTimer()
		return
	}
	s.log.Warning("Ponderhit received while not pondering")
}

// IsSearching reports whether a search is currently running.
func (s *Search) IsSearching() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSearching blocks until any running search has finished.
func (s *Search) WaitWhileSearching() {
	_ = s.isRunning.Acquire(context.TODO(), 1)
	s.isRunning.Release(1)
}

// SetUciHandler attaches the UCI callback the search reports through.
func (s *Search) SetUciHandler(uciHandler uciInterface.UciDriver) {
	s.uciHandlerPtr = uciHandler
}

// GetUciHandlerPtr returns the attached UCI callback, nil if none.
func (s *Search) GetUciHandlerPtr() uciInterface.UciDriver {
	return s.uciHandlerPtr
}

// IsReady performs the (potentially slow) lazy initialization and then
// acknowledges readiness to the UCI side.
func (s *Search) IsReady() {
	s.initialize()
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendReadyOk()
	} else {
		s.log.Debug("uci >> readyok")
	}
}

// ClearHash clears the transposition table; refused while searching.
func (s *Search) ClearHash() {
	if s.IsSearching() {
		msg := "Hash can only be cleared while idle"
		s.sendInfoStringToUci(msg)
		s.log.Warning(msg)
		return
	}
	if s.tt != nil {
		s.tt.Clear()
		s.sendInfoStringToUci("Hash cleared")
	}
}

// ResizeCache drops and re-creates the transposition table with the
// currently configured size; refused while searching.
func (s *Search) ResizeCache() {
	if s.IsSearching() {
		msg := "Hash can only be resized while idle"
		s.uciHandlerPtr.SendInfoString(msg)
		s.log.Warning(msg)
		return
	}
	s.tt = nil
	s.initialize()
	// a good moment to return the old table's memory
	s.log.Debug(util.GcWithStats())
	if s.tt != nil {
		s.uciHandlerPtr.SendInfoString(out.Sprintf("Hash resized: %s", s.tt.String()))
	}
}

// LastSearchResult returns a copy of the last search's result.
func (s *Search) LastSearchResult() Result {
	return *s.lastSearchResult
}

// NodesVisited returns the node count of the last (or running) search.
func (s *Search) NodesVisited() uint64 {
	return s.nodesVisited
}

// Statistics returns the statistics of the last (or running) search.
func (s *Search) Statistics() *Statistics {
	return &s.statistics
}

// ///////////////////////////////////////////////////////////
// Search run lifecycle
// ///////////////////////////////////////////////////////////

// run is the body of the search goroutine: set up the per-run state,
// search, wait out ponder/infinite mode if needed, publish the result.
func (s *Search) run(position *position.Position, sl *Limits) {
	if !s.isRunning.TryAcquire(1) {
		s.log.Error("Search already running")
		return
	}
	defer s.isRunning.Release(1)

	s.beginRun(position, sl)

	result := s.iterativeDeepening(position)

	// in ponder or infinite mode a finished search must hold its result
	// until the GUI asks for it with stop/ponderhit
	if (s.searchLimits.Ponder || s.searchLimits.Infinite) && !s.stopFlag {
		s.log.Debug("Search finished before stopped or ponderhit! Waiting for stop/ponderhit to send result")
		for !s.stopFlag && (s.searchLimits.Ponder || s.searchLimits.Infinite) {
			time.Sleep(5 * time.Millisecond)
		}
	}

	s.finishRun(result)
}

// beginRun resets the per-run state, reports the search configuration,
// and releases the StartSearch caller. Must run before any node is
// visited.
func (s *Search) beginRun(position *position.Position, sl *Limits) {
	s.startTime = time.Now()
	s.log.Infof("Searching: %s", position.ToFen())

	s.stopFlag = false
	s.hasResult = false
	s.timeLimit = 0
	s.extraTime = 0
	s.nodesVisited = 0
	s.statistics = Statistics{}
	s.lastUciUpdateTime = s.startTime
	s.initialize()

	s.setupSearchLimits(position, sl)
	if s.searchLimits.TimeControl && !s.searchLimits.Ponder {
		s.startTimer()
	}

	if s.tt != nil {
		s.log.Infof("Transposition Table: Using TT (%s)", s.tt.String())
		s.tt.AgeEntries()
	} else {
		s.log.Info("Transposition Table: Not using TT")
	}

	// one move generator and one pv line per ply; the generators also
	// hold the per-ply killer slots
	s.mg = make([]*movegen.Movegen, 0, MaxDepth+1)
	s.pv = make([]*moveslice.MoveSlice, 0, MaxDepth+1)
	for i := 0; i <= MaxDepth; i++ {
		newMoveGen := movegen.NewMoveGen()
		if config.Settings.Search.UseHistoryCounter || config.Settings.Search.UseCounterMoves {
			newMoveGen.SetHistoryData(s.history)
		}
		s.mg = append(s.mg, newMoveGen)
		s.pv = append(s.pv, moveslice.NewMoveSlice(MaxDepth+1))
	}

	s.log.Infof("Root algorithm: pvs=%t aspiration=%t mtdf=%t",
		config.Settings.Search.UsePVS, config.Settings.Search.UseAspiration, config.Settings.Search.UseMTDf)

	// unblock the goroutine waiting in StartSearch
	s.initSemaphore.Release(1)
}

// finishRun stamps the result, logs the run summary, stores the result
// and reports it to the UCI side. Always called, also after a stop.
func (s *Search) finishRun(result *Result) {
	result.SearchTime = time.Since(s.startTime)
	result.Pv = *s.pv[0]

	s.log.Info(out.Sprintf("Search finished after %s", result.SearchTime))
	s.log.Info(out.Sprintf("Search depth was %d(%d) with %d nodes visited. NPS = %d nps",
		s.statistics.CurrentSearchDepth, s.statistics.CurrentExtraSearchDepth, s.nodesVisited,
		util.Nps(s.nodesVisited, result.SearchTime)))
	s.log.Debugf("Search stats: %s", s.statistics.String())
	s.log.Infof("Search result: %s", result.String())

	s.lastSearchResult = result
	s.hasResult = true

	// the timer goroutine, if any, exits on the stop flag
	s.stopFlag = true

	s.sendResult(result)
}

// iterativeDeepening searches depth 1, 2, 3, ... until a limit fires,
// always keeping a playable best move in pv[0][0] so an interrupted
// iteration is never wasted. Root moves are re-sorted by their scores
// between iterations, which is what makes the deepening cheap: the best
// line of depth d leads the move ordering of depth d+1.
func (s *Search) iterativeDeepening(position *position.Position) *Result {
	if terminal := s.terminalRootResult(position); terminal != nil {
		return terminal
	}

	maxDepth := MaxDepth
	if s.searchLimits.Depth > 0 {
		maxDepth = s.searchLimits.Depth
	}
	bestValue := ValueNA

	for depth := 1; depth <= maxDepth; depth++ {
		s.nodesVisited++
		s.statistics.CurrentIterationDepth = depth
		s.statistics.CurrentSearchDepth = depth
		if s.statistics.CurrentExtraSearchDepth < depth {
			s.statistics.CurrentExtraSearchDepth = depth
		}

		bestValue = s.searchIteration(position, depth, bestValue)

		// only a completed iteration may publish and re-sort; with a
		// single legal move there is nothing to deepen for
		if s.stopConditions() || s.rootMoves.Len() <= 1 {
			break
		}
		s.rootMoves.Sort()
		s.statistics.CurrentBestRootMove = s.pv[0].At(0)
		s.statistics.CurrentBestRootMoveValue = s.pv[0].At(0).ValueOf()
		s.sendIterationEndInfoToUci()
	}

	return s.buildResult(position)
}

// searchIteration runs one full-width iteration at the given depth with
// the configured root algorithm and returns the best value found.
func (s *Search) searchIteration(position *position.Position, depth int, prevValue Value) Value {
	switch {
	case config.Settings.Search.UseAspiration && depth > 3:
		return s.aspirationSearch(position, depth, prevValue)
	case config.Settings.Search.UseMTDf && depth > 3:
		return s.mtdf(position, depth, prevValue)
	default:
		s.rootSearch(position, depth, ValueMin, ValueMax)
		return s.pv[0].At(0).ValueOf()
	}
}

// terminalRootResult answers searches that are over before they begin:
// the position is already drawn by rule, mate, or stalemate. Returns nil
// when there is something to search. As a side effect it generates (and
// possibly restricts) the root move list.
func (s *Search) terminalRootResult(position *position.Position) *Result {
	if s.checkDrawRepAnd50(position, 2) {
		msg := "Root position is already a draw by repetition or the fifty-move rule"
		s.sendInfoStringToUci(msg)
		s.log.Warning(msg)
		return &Result{BestValue: ValueDraw}
	}

	s.rootMoves = s.mg[0].GenerateLegalMoves(position, movegen.GenAll)

	// "go searchmoves ..." restricts the root to the listed moves
	if s.searchLimits.Moves.Len() > 0 {
		restricted := moveslice.NewMoveSlice(s.rootMoves.Len())
		for i := 0; i < s.rootMoves.Len(); i++ {
			m := s.rootMoves.At(i)
			for j := 0; j < s.searchLimits.Moves.Len(); j++ {
				if s.searchLimits.Moves.At(j).MoveOf() == m.MoveOf() {
					restricted.PushBack(m)
					break
				}
			}
		}
		if restricted.Len() > 0 {
			s.rootMoves = restricted
		}
	}

	if s.rootMoves.Len() > 0 {
		return nil
	}
	if position.HasCheck() {
		s.statistics.Checkmates++
		msg := "Root position is checkmate"
		s.sendInfoStringToUci(msg)
		s.log.Warning(msg)
		return &Result{BestValue: -ValueCheckMate}
	}
	s.statistics.Stalemates++
	msg := "Root position is stalemate"
	s.sendInfoStringToUci(msg)
	s.log.Warning(msg)
	return &Result{BestValue: ValueDraw}
}

// buildResult packages pv[0] into a Result, pulling a ponder move from
// the pv or, failing that, from the TT entry behind the best move.
func (s *Search) buildResult(position *position.Position) *Result {
	result := &Result{
		BestMove:    s.pv[0].At(0).MoveOf(),
		BestValue:   s.pv[0].At(0).ValueOf(),
		PonderMove:  MoveNone,
		SearchDepth: s.statistics.CurrentIterationDepth,
		ExtraDepth:  s.statistics.CurrentExtraSearchDepth,
	}

	if s.pv[0].Len() > 1 {
		result.PonderMove = s.pv[0].At(1).MoveOf()
	} else if config.Settings.Search.UseTT {
		// the pv has no second move; the TT may still know the reply
		position.DoMove(result.BestMove)
		if ttEntry := s.tt.Probe(position.ZobristKey()); ttEntry != nil {
			s.statistics.TTHit++
			result.PonderMove = ttEntry.Move.MoveOf()
			s.log.Debugf(out.Sprintf("Using ponder move from hash: %s", result.PonderMove.StringUci()))
		}
		position.UndoMove()
	}
	return result
}

// initialize creates the transposition table if it is enabled and not
// yet allocated. Cheap when nothing is to be done, so it is called from
// both IsReady and every search run.
func (s *Search) initialize() {
	if !config.Settings.Search.UseTT {
		s.log.Info("Transposition Table is disabled in configuration")
		return
	}
	if s.tt == nil {
		sizeInMByte := config.Settings.Search.TTSize
		if sizeInMByte == 0 {
			sizeInMByte = 64
		}
		s.tt = transpositiontable.NewTtTable(sizeInMByte)
	}
}

// ///////////////////////////////////////////////////////////
// Limits and time control
// ///////////////////////////////////////////////////////////

// stopConditions reports whether the search must unwind: externally
// stopped, out of time (the timer goroutine sets the same flag), or past
// the node limit.
func (s *Search) stopConditions() bool {
	if s.stopFlag {
		return true
	}
	if s.searchLimits.Nodes > 0 && s.nodesVisited >= s.searchLimits.Nodes {
		s.stopFlag = true
	}
	return s.stopFlag
}

// setupSearchLimits logs the limit configuration of this run and derives
// the time budget when a clock is involved.
func (s *Search) setupSearchLimits(position *position.Position, sl *Limits) {
	switch {
	case sl.Infinite:
		s.log.Info("Limits: infinite search")
	case sl.Ponder:
		s.log.Info("Limits: pondering")
	}
	if sl.Mate > 0 {
		s.log.Infof("Limits: looking for a mate in %d", sl.Mate)
	}
	if sl.TimeControl {
		s.timeLimit = s.setupTimeControl(position, sl)
		s.extraTime = 0
		if sl.MoveTime > 0 {
			s.log.Infof("Limits: fixed time per move %s", sl.MoveTime)
		} else {
			s.log.Info(out.Sprintf("Limits: clock w=%s+%s b=%s+%s movestogo=%d, budget per move %s",
				sl.WhiteTime, sl.WhiteInc, sl.BlackTime, sl.BlackInc, sl.MovesToGo, s.timeLimit))
		}
		if sl.Ponder {
			s.log.Info("Limits: time control armed, waiting for ponderhit")
		}
	} else {
		s.log.Info("Limits: no time control")
	}
	if sl.Depth > 0 {
		s.log.Debugf("Limits: depth %d", sl.Depth)
	}
	if sl.Nodes > 0 {
		s.log.Infof(out.Sprintf("Limits: nodes %d", sl.Nodes))
	}
	if sl.Moves.Len() > 0 {
		s.log.Infof(out.Sprintf("Limits: root moves restricted to %s", sl.Moves.StringUci()))
	}
}

// setupTimeControl converts the clock fields of the limits into a soft
// per-move budget: either the fixed move time (minus a little headroom
// for our own bookkeeping), or remaining-time divided over an estimated
// number of moves still to play.
func (s *Search) setupTimeControl(p *position.Position, sl *Limits) time.Duration {
	if sl.MoveTime > 0 {
		budget := sl.MoveTime - 20*time.Millisecond
		if budget < 0 {
			s.log.Warningf("Move time %s too short to reserve headroom", sl.MoveTime)
			budget = sl.MoveTime
		}
		return budget
	}

	movesLeft := int64(sl.MovesToGo)
	if movesLeft == 0 {
		// estimate: at least 15 moves remain in a late endgame, growing
		// to 40 with a full board
		movesLeft = int64(15 + (25 * p.GamePhaseFactor()))
	}

	var timeLeft time.Duration
	switch p.SideToMove() {
	case White:
		timeLeft = sl.WhiteTime + time.Duration(movesLeft*sl.WhiteInc.Nanoseconds())
	case Black:
		timeLeft = sl.BlackTime + time.Duration(movesLeft*sl.BlackInc.Nanoseconds())
	}

	timeLimit := time.Duration(timeLeft.Nanoseconds() / movesLeft)
	// keep a safety margin for our own overhead, a bigger one when the
	// budget is already tight
	if timeLimit.Milliseconds() < 100 {
		timeLimit = time.Duration(int64(0.8 * float64(timeLimit.Nanoseconds())))
	} else {
		timeLimit = time.Duration(int64(0.9 * float64(timeLimit.Nanoseconds())))
	}
	return timeLimit
}

// addExtraTime scales the remaining budget by f-1.0 (f=1.1 grants 10%
// more, f=0.9 takes 10% away). No effect in fixed-move-time mode.
func (s *Search) addExtraTime(f float64) {
	if s.searchLimits.TimeControl && s.searchLimits.MoveTime == 0 {
		delta := time.Duration(int64((f - 1.0) * float64(s.timeLimit.Nanoseconds())))
		s.extraTime += delta
		s.log.Debugf(out.Sprintf("Time budget adjusted by %s to %s", delta, s.timeLimit+s.extraTime))
	}
}

// startTimer launches the watchdog goroutine that flips the stop flag
// when the time budget (plus any extra time granted later) runs out. A
// relaxed poll instead of a fixed timer because extraTime can change
// while it waits.
func (s *Search) startTimer() {
	go func() {
		started := time.Now()
		s.log.Debugf("Timer started, budget %s", s.timeLimit)
		for time.Since(started) < s.timeLimit+s.extraTime && !s.stopFlag {
			time.Sleep(5 * time.Millisecond)
		}
		if !s.stopFlag {
			s.stopFlag = true
			s.log.Debugf("Timer expired after %s (budget %s, extra %s)",
				time.Since(started), s.timeLimit, s.extraTime)
		} else {
			s.log.Debugf("Timer obsolete after %s, search already stopped", time.Since(started))
		}
	}()
}

// checkDrawRepAnd50 reports whether the position counts as a draw inside
// the search tree: it occurred at least the given number of times before
// within the reversible-move window, or the fifty-move counter ran out.
func (s *Search) checkDrawRepAnd50(p *position.Position, occurrences int) bool {
	return p.RepetitionCount() >= occurrences || p.HalfMoveClock() >= 100
}

// ///////////////////////////////////////////////////////////
// Reporting to the UCI side
// ///////////////////////////////////////////////////////////

// sendResult hands the final result to the UCI callback, if attached.
func (s *Search) sendResult(searchResult *Result) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendResult(searchResult.BestMove, searchResult.PonderMove)
	}
}

// sendInfoStringToUci forwards a diagnostic line, if a callback is
// attached.
func (s *Search) sendInfoStringToUci(msg string) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendInfoString(msg)
	}
}

// sendSearchUpdateToUci emits the periodic progress report, rate-limited
// to one per second so deep searches don't flood the GUI.
func (s *Search) sendSearchUpdateToUci() {
	if time.Since(s.lastUciUpdateTime) <= time.Second {
		return
	}
	s.lastUciUpdateTime = time.Now()
	hashfull := 0
	if s.tt != nil {
		hashfull = s.tt.Hashfull()
	}
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendSearchUpdate(
			s.statistics.CurrentSearchDepth,
			s.statistics.CurrentExtraSearchDepth,
			s.nodesVisited,
			s.getNps(),
			time.Since(s.startTime),
			hashfull)
		s.uciHandlerPtr.SendCurrentRootMove(s.statistics.CurrentRootMove, s.statistics.CurrentRootMoveIndex)
		s.uciHandlerPtr.SendCurrentLine(s.statistics.CurrentVariation)
	} else {
		s.log.Infof(out.Sprintf("depth %d seldepth %d value %s nodes %d nps %d time %d hashful %d",
			s.statistics.CurrentSearchDepth,
			s.statistics.CurrentExtraSearchDepth,
			s.statistics.CurrentBestRootMoveValue.String(),
			s.nodesVisited,
			s.getNps(),
			time.Since(s.startTime).Milliseconds(),
			hashfull))
	}
}

// sendIterationEndInfoToUci reports a completed deepening iteration.
func (s *Search) sendIterationEndInfoToUci() {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendIterationEndInfo(
			s.statistics.CurrentSearchDepth,
			s.statistics.CurrentExtraSearchDepth,
			s.statistics.CurrentBestRootMoveValue,
			s.nodesVisited,
			s.getNps(),
			time.Since(s.startTime),
			*s.pv[0])
	} else {
		s.log.Infof(out.Sprintf("depth %d seldepth %d value %s nodes %d nps %d time %d pv %s",
			s.statistics.CurrentSearchDepth,
			s.statistics.CurrentExtraSearchDepth,
			s.statistics.CurrentBestRootMoveValue.String(),
			s.nodesVisited,
			s.getNps(),
			time.Since(s.startTime).Milliseconds(),
			s.pv[0].StringUci()))
	}
}

// sendAspirationResearchInfo reports an aspiration-window re-search with
// the bound ("upperbound"/"lowerbound") that failed.
func (s *Search) sendAspirationResearchInfo(bound string) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendAspirationResearchInfo(
			s.statistics.CurrentSearchDepth,
			s.statistics.CurrentExtraSearchDepth,
			s.statistics.CurrentBestRootMoveValue,
			bound,
			s.nodesVisited,
			s.getNps(),
			time.Since(s.startTime),
			*s.pv[0])
	} else {
		s.log.Infof(out.Sprintf("depth %d seldepth %d value %s %s nodes %d nps %d time %d pv %s",
			s.statistics.CurrentSearchDepth,
			s.statistics.CurrentExtraSearchDepth,
			s.statistics.CurrentBestRootMoveValue.String(),
			bound,
			s.nodesVisited,
			s.getNps(),
			time.Since(s.startTime).Milliseconds(),
			s.pv[0].StringUci()))
	}
}

// getNps computes the running nodes-per-second rate, suppressed for very
// short measurement windows where the figure is meaningless.
func (s *Search) getNps() uint64 {
	nps := util.Nps(s.nodesVisited, time.Since(s.startTime)+100)
	if nps > 15_000_000 {
		nps = 0
	}
	return nps
}
