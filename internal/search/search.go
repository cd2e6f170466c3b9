//
// Corvid - UCI chess engine in GO
//
// MIT License
//
// Copyright (c) 2021-2024 The Corvid Chess Project
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

// Package search implements the search for the best move of the engine:
// iterative deepening with aspiration windows around a principal
// variation alpha-beta search with quiescence, backed by a transposition
// table and history/killer move ordering. The search runs in its own
// goroutine started by StartSearch; the only cross-thread datum is an
// atomic stop flag, read after every move, while the clock is checked at
// a low, fixed node cadence.
package search

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/op/go-logging"

	"github.com/corvid-chess/corvid/internal/config"
	"github.com/corvid-chess/corvid/internal/evaluator"
	"github.com/corvid-chess/corvid/internal/history"
	myLogging "github.com/corvid-chess/corvid/internal/logging"
	"github.com/corvid-chess/corvid/internal/movegen"
	"github.com/corvid-chess/corvid/internal/moveslice"
	"github.com/corvid-chess/corvid/internal/position"
	"github.com/corvid-chess/corvid/internal/transpositiontable"
	. "github.com/corvid-chess/corvid/internal/types"
	"github.com/corvid-chess/corvid/internal/uciInterface"
	"github.com/corvid-chess/corvid/internal/util"
)

// Search represents the data structure for a chess engine search.
// Create a new instance with NewSearch().
type Search struct {
	log *logging.Logger

	uciHandlerPtr uciInterface.UciDriver
	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	tt   *transpositiontable.TtTable
	eval *evaluator.Evaluator

	// history heuristics, killers and per-ply hash moves
	history *history.History

	// previous search
	lastSearchResult *Result

	// current search state
	stopFlag        *util.Bool
	startTime       time.Time
	hasResult       bool
	currentPosition *position.Position
	searchLimits    *Limits
	timeLimit       time.Duration
	extraTime       time.Duration
	baseTime        time.Duration
	timeInc         time.Duration
	nodesVisited    uint64
	curDepth        int
	selDepth        int

	// preallocated per-ply data to avoid per-node allocation
	mg        []*movegen.Movegen
	moveLists []*moveslice.MoveSlice
	pv        []*moveslice.MoveSlice

	// currentVariation tracks the moves of the line being searched; a
	// null move is recorded as MoveNone so the evaluation can tell that
	// the previous "move" was a pass.
	currentVariation  moveslice.MoveSlice
	lastUciUpdateTime time.Time
	statistics        Statistics
}

// NewSearch creates a new Search instance. Until a uci handler is set
// with SetUciHandler all output is sent to the log only.
func NewSearch() *Search {
	s := &Search{
		log:           myLogging.GetLog(),
		initSemaphore: semaphore.NewWeighted(1),
		isRunning:     semaphore.NewWeighted(1),
		eval:          evaluator.NewEvaluator(),
		history:       history.NewHistory(),
		stopFlag:      util.NewBool(false),
	}
	return s
}

// NewGame stops any running search and resets the search state to be
// ready for a different game. All caches are cleared.
func (s *Search) NewGame() {
	s.StopSearch()
	if s.tt != nil {
		s.tt.Clear()
	}
	s.history.Clear()
}

// StartSearch starts the search on the given position with the given
// search limits in a separate goroutine. Search can be stopped with
// StopSearch(); status can be checked with IsSearching(). This takes a
// copy of the position and the search limits.
func (s *Search) StartSearch(p position.Position, sl Limits) {
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	go s.run(&p, &sl)
	// wait until search is running and initialization is done before
	// returning to the caller
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.initSemaphore.Release(1)
}

// StopSearch stops a running search as quickly as possible. The search
// stops gracefully and a result will be sent to UCI. This waits for the
// search to be stopped before returning.
func (s *Search) StopSearch() {
	s.stopFlag.Store(true)
	s.WaitWhileSearching()
}

// IsSearching checks if search is running.
func (s *Search) IsSearching() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSearching blocks until a running search has stopped.
func (s *Search) WaitWhileSearching() {
	_ = s.isRunning.Acquire(context.TODO(), 1)
	s.isRunning.Release(1)
}

// SetUciHandler sets the UCI handler to communicate with the UCI user
// interface.
func (s *Search) SetUciHandler(uciHandler uciInterface.UciDriver) {
	s.uciHandlerPtr = uciHandler
}

// IsReady initializes the search (e.g. allocates the transposition
// table) and signals the uciHandler when done.
func (s *Search) IsReady() {
	s.initialize()
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendReadyOk()
	} else {
		s.log.Debug("uci >> readyok")
	}
}

// ClearHash clears the transposition table. Ignored with a warning while
// searching.
func (s *Search) ClearHash() {
	if s.IsSearching() {
		msg := "Can't clear hash while searching."
		s.sendInfoStringToUci(msg)
		s.log.Warning(msg)
		return
	}
	if s.tt != nil {
		s.tt.Clear()
		s.sendInfoStringToUci("Hash cleared")
	}
}

// ResizeCache resizes and clears the transposition table. Ignored with a
// warning while searching.
func (s *Search) ResizeCache() {
	if s.IsSearching() {
		msg := "Can't resize hash while searching."
		s.sendInfoStringToUci(msg)
		s.log.Warning(msg)
		return
	}
	s.tt = nil
	s.initialize()
	s.log.Debug(util.GcWithStats())
	if s.tt != nil {
		s.sendInfoStringToUci(out.Sprintf("Hash resized: %s", s.tt.String()))
	}
}

// LastSearchResult returns a copy of the last search result.
func (s *Search) LastSearchResult() Result {
	if s.lastSearchResult == nil {
		return Result{}
	}
	return *s.lastSearchResult
}

// NodesVisited returns the number of visited nodes in the last search.
func (s *Search) NodesVisited() uint64 {
	return s.nodesVisited
}

// Statistics returns a pointer to the search statistics of the last search.
func (s *Search) Statistics() *Statistics {
	return &s.statistics
}

// initialize allocates the transposition table from configuration.
func (s *Search) initialize() {
	if config.Settings.Search.UseTT {
		if s.tt == nil {
			sizeInMByte := config.Settings.Search.TTSize
			if sizeInMByte == 0 {
				sizeInMByte = 64
			}
			s.tt = transpositiontable.NewTtTable(sizeInMByte)
		}
	} else {
		s.log.Info("Transposition Table is disabled in configuration")
		s.tt = transpositiontable.NewTtTable(0)
	}
}

// run is called by StartSearch() in a separate goroutine. It runs the
// actual search until a search limit is reached or the search has been
// stopped by StopSearch().
func (s *Search) run(p *position.Position, sl *Limits) {
	if !s.isRunning.TryAcquire(1) {
		s.log.Error("Search already running")
		s.initSemaphore.Release(1)
		return
	}
	defer s.isRunning.Release(1)

	s.startTime = time.Now()
	s.log.Infof("Searching: %s", p.FEN())

	// init new search run
	s.stopFlag.Store(false)
	s.hasResult = false
	s.currentPosition = p
	s.searchLimits = sl
	s.timeLimit = 0
	s.extraTime = 0
	s.nodesVisited = 1
	s.selDepth = 0
	s.statistics = Statistics{}
	s.currentVariation.Clear()
	s.lastUciUpdateTime = s.startTime
	s.initialize()

	s.setupTimeControl(p, sl)

	// per-ply data
	if s.mg == nil {
		s.mg = make([]*movegen.Movegen, MaxDepth+1)
		s.moveLists = make([]*moveslice.MoveSlice, MaxDepth+1)
		s.pv = make([]*moveslice.MoveSlice, MaxDepth+1)
		for i := 0; i <= MaxDepth; i++ {
			s.mg[i] = movegen.NewMoveGen()
			s.mg[i].SetHistoryData(s.history)
			s.moveLists[i] = moveslice.NewMoveSlice(MaxMoves)
			s.pv[i] = moveslice.NewMoveSlice(MaxDepth + 1)
		}
	}

	// release the init phase lock to signal the calling goroutine
	// waiting in StartSearch() to return
	s.initSemaphore.Release(1)

	result := s.iterativeDeepening(p)

	result.SearchTime = time.Since(s.startTime)
	result.Pv = *s.pv[0].Clone()

	s.log.Info(out.Sprintf("Search finished after %s", result.SearchTime))
	s.log.Info(out.Sprintf("Search depth was %d(%d) with %d nodes visited. NPS = %d nps",
		s.statistics.CurrentSearchDepth, s.statistics.CurrentExtraSearchDepth,
		s.nodesVisited, util.Nps(s.nodesVisited, result.SearchTime)))
	s.log.Infof("Search result: %s", result.String())

	s.lastSearchResult = result
	s.hasResult = true
	s.stopFlag.Store(true)

	// we send the result in any case, even if the search was stopped
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendResult(result.BestMove)
	}
}

// iterativeDeepening is the outer search loop: depth 1, 2, 3, ... until a
// limit stops it. From medium depths on, each iteration starts with a
// narrow aspiration window around the previous score which is widened
// step by step on failure; a fail high retries one depth shallower.
func (s *Search) iterativeDeepening(p *position.Position) *Result {
	maxDepth := MaxDepth - 1
	if s.searchLimits.Depth > 0 && s.searchLimits.Depth < maxDepth {
		maxDepth = s.searchLimits.Depth
	}

	score := -Mate
	alpha, beta := -Mate, Mate
	delta := 17
	bestMove := MoveNone

	for s.curDepth = 1; s.curDepth <= maxDepth; s.curDepth++ {
		if config.Settings.Search.UseAspiration && s.curDepth >= 6 {
			alpha = util.Max(score-delta, -Mate)
			beta = util.Min(score+delta, Mate)
		}

		depth := s.curDepth
		s.statistics.CurrentIterationDepth = s.curDepth
		s.statistics.CurrentSearchDepth = s.curDepth

		for !s.stopConditions() {
			// near the window edges a narrow window buys nothing
			if alpha < -2_500 {
				alpha = -Mate
			}
			if beta > 2_500 {
				beta = Mate
			}

			s.selDepth = 0
			s.pv[0].Clear()

			score = s.alphaBeta(p, depth, alpha, beta, true)

			if s.pv[0].Front() != MoveNone && s.pv[0].Front().MoveOnly() != bestMove {
				bestMove = s.pv[0].Front().MoveOnly()
				s.statistics.BestMoveChange++
				// a changing best move late in a long game deserves more
				// thinking time
				if s.baseTime > 30*time.Second && p.Ply() > 12 && util.Abs(score) < 1_000 {
					s.addExtraTime(time.Duration(int64(s.baseTime+s.timeInc) / 100 * int64(s.curDepth)))
				}
				// seed the next iteration's move ordering
				s.history.SetTTMove(bestMove)
			}

			if s.stopConditions() {
				break
			}

			if score <= alpha {
				// fail low: open the window downward, pull beta in
				beta = (alpha + beta) / 2
				alpha = util.Max(score-2*delta, -Mate)
				s.statistics.AspirationResearches++
			} else if score >= beta {
				// fail high: open the window upward, retry shallower
				beta = util.Min(score+2*delta, Mate)
				depth--
				s.statistics.AspirationResearches++
			} else {
				break
			}
			delta += delta/4 + 5
		}

		if s.stopConditions() {
			break
		}
		s.sendIterationEndInfoToUci(score)
	}

	result := &Result{
		BestMove:    bestMove,
		BestValue:   score,
		SearchDepth: s.statistics.CurrentIterationDepth,
		ExtraDepth:  s.statistics.CurrentExtraSearchDepth,
	}
	if result.BestMove == MoveNone {
		result.BestMove = s.pv[0].Front().MoveOnly()
	}
	return result
}

// setupTimeControl computes the time budget for this move. With an
// increment we can afford a larger slice of the remaining time.
func (s *Search) setupTimeControl(p *position.Position, sl *Limits) {
	if !sl.TimeControl || sl.Infinite {
		s.timeLimit = 0
		return
	}
	if sl.MoveTime > 0 {
		s.timeLimit = sl.MoveTime
	} else {
		var remaining, inc time.Duration
		if p.Side() == White {
			remaining, inc = sl.WhiteTime, sl.WhiteInc
		} else {
			remaining, inc = sl.BlackTime, sl.BlackInc
		}
		div := time.Duration(40)
		if inc > 0 {
			div = 30
		}
		s.timeLimit = remaining / div
		s.timeInc = inc
	}
	s.baseTime = s.timeLimit
	if p.Ply() <= 12 {
		s.baseTime = s.timeLimit / 2
	}
	s.log.Info(out.Sprintf("Search mode: time controlled: budget %s", s.timeLimit))
}

// addExtraTime extends the budget of the current search.
func (s *Search) addExtraTime(d time.Duration) {
	s.extraTime += d
	s.log.Debug(out.Sprintf("Time extended by %s to %s", d, s.timeLimit+s.extraTime))
}

// timeCheck tests the elapsed time against the budget once every 2^16
// nodes and raises the stop flag on overrun. The coarse cadence keeps the
// cost of the clock read out of the hot path.
func (s *Search) timeCheck() {
	if s.nodesVisited&0xFFFF != 0 {
		return
	}
	if s.timeLimit > 0 && time.Since(s.startTime) > s.timeLimit+s.extraTime {
		s.stopFlag.Store(true)
	}
}

// stopConditions checks the stop flag and the node limit.
func (s *Search) stopConditions() bool {
	if s.stopFlag.Load() {
		return true
	}
	if s.searchLimits.Nodes > 0 && s.nodesVisited >= s.searchLimits.Nodes {
		s.stopFlag.Store(true)
	}
	return s.stopFlag.Load()
}

// drawValue spreads draw scores over {-1, +1} depending on the node
// count, so the search does not become blind between equally drawn lines.
func (s *Search) drawValue() int {
	return 2*int(s.nodesVisited&1) - 1
}

// sends an info string to the uci handler if a handler is available.
func (s *Search) sendInfoStringToUci(msg string) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendInfoString(msg)
	}
}

// send UCI information after each completed depth iteration.
func (s *Search) sendIterationEndInfoToUci(score int) {
	if s.statistics.CurrentExtraSearchDepth < s.selDepth {
		s.statistics.CurrentExtraSearchDepth = s.selDepth
	}
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendIterationEndInfo(
			s.statistics.CurrentSearchDepth,
			s.statistics.CurrentExtraSearchDepth,
			score,
			s.nodesVisited,
			s.getNps(),
			time.Since(s.startTime),
			*s.pv[0])
	} else {
		s.log.Info(out.Sprintf("depth %d seldepth %d score %d nodes %d nps %d time %d pv %s",
			s.statistics.CurrentSearchDepth, s.statistics.CurrentExtraSearchDepth, score,
			s.nodesVisited, s.getNps(), time.Since(s.startTime).Milliseconds(),
			s.pv[0].StringUci()))
	}
}

// send a periodic UCI update about the search state.
func (s *Search) sendSearchUpdateToUci() {
	if time.Since(s.lastUciUpdateTime) < time.Second {
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
	}
}

// getNps calculates the current nps relative to s.startTime, suppressing
// the unrealistic values of very short time spans.
func (s *Search) getNps() uint64 {
	nps := util.Nps(s.nodesVisited, time.Since(s.startTime)+100)
	if nps > 100_000_000 {
		nps = 0
	}
	return nps
}
