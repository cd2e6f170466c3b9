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

package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/corvid-chess/corvid/internal/config"
	"github.com/corvid-chess/corvid/internal/position"
	. "github.com/corvid-chess/corvid/internal/types"
)

func init() {
	config.Setup()
	// keep the hash small for tests
	config.Settings.Search.TTSize = 16
}

func searchFen(t *testing.T, fen string, depth int) Result {
	t.Helper()
	s := NewSearch()
	p := position.New()
	assert.NoError(t, p.SetFEN(fen))
	sl := NewSearchLimits()
	sl.Depth = depth
	sl.MoveTime = 5 * time.Second
	sl.TimeControl = true
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()
	return s.LastSearchResult()
}

func TestMateInOne(t *testing.T) {
	result := searchFen(t, "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", 4)
	assert.Equal(t, "a1a8", result.BestMove.String())
	assert.Equal(t, Mate-1, result.BestValue)
}

func TestMateInTwo(t *testing.T) {
	// back rank: 1.Re8+ Rxe8 2.Rxe8#
	result := searchFen(t, "6k1/5ppp/8/8/8/8/R4PPP/R5K1 w - - 0 1", 6)
	assert.True(t, result.BestValue >= Mate-3,
		"expected mate score, got %d", result.BestValue)
}

func TestStalemateIsDraw(t *testing.T) {
	result := searchFen(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", 4)
	assert.Equal(t, Draw, result.BestValue)
	assert.Equal(t, MoveNone, result.BestMove)
}

func TestDrawnMaterialEvaluatesToZero(t *testing.T) {
	result := searchFen(t, "8/8/8/4k3/8/8/8/4K3 w - - 0 1", 4)
	// repetition lines may spread the draw score over {-1, +1}
	assert.InDelta(t, 0, result.BestValue, 1)
}

func TestAvoidsMateInOne(t *testing.T) {
	// black king must step off the back rank mating net
	result := searchFen(t, "6k1/5ppp/8/8/8/8/5PPP/R5K1 b - - 0 1", 5)
	assert.NotEqual(t, MoveNone, result.BestMove)
	assert.True(t, result.BestValue > -MateInMax,
		"black can avoid immediate mate, got %d", result.BestValue)
}

func TestDepthLimitIsRespected(t *testing.T) {
	s := NewSearch()
	p := position.New()
	sl := NewSearchLimits()
	sl.Depth = 3
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()
	result := s.LastSearchResult()
	assert.Equal(t, 3, result.SearchDepth)
	assert.NotEqual(t, MoveNone, result.BestMove)
}

func TestStopDuringSearch(t *testing.T) {
	s := NewSearch()
	p := position.New()
	sl := NewSearchLimits()
	sl.Infinite = true
	sl.Depth = MaxDepth - 1
	s.StartSearch(*p, *sl)
	assert.True(t, s.IsSearching())
	time.Sleep(100 * time.Millisecond)
	s.StopSearch()
	assert.False(t, s.IsSearching())
	// a best move survives the stop
	assert.NotEqual(t, MoveNone, s.LastSearchResult().BestMove)
}

func TestNodeLimit(t *testing.T) {
	s := NewSearch()
	p := position.New()
	sl := NewSearchLimits()
	sl.Nodes = 10_000
	sl.Depth = MaxDepth - 1
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()
	// the limit is checked at node granularity, allow small overshoot
	assert.Less(t, s.NodesVisited(), uint64(20_000))
}

func TestFindsGoodCapture(t *testing.T) {
	// white wins a queen with a simple capture
	result := searchFen(t, "3q3k/8/8/8/3Q4/8/8/3R3K w - - 0 1", 5)
	assert.Equal(t, "d4d8", result.BestMove.String())
}
