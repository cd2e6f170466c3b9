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

package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/corvid-chess/corvid/internal/types"
)

func TestKillerSlots(t *testing.T) {
	h := NewHistory()
	m1 := NewMove(SqE2, SqE4, PtEmpty)
	m2 := NewMove(SqD2, SqD4, PtEmpty)
	m3 := NewMove(SqG1, SqF3, PtEmpty)

	h.AddKiller(m1)
	assert.Equal(t, m1, h.Killer(0))
	assert.Equal(t, MoveNone, h.Killer(1))

	h.AddKiller(m2)
	assert.Equal(t, m2, h.Killer(0))
	assert.Equal(t, m1, h.Killer(1))

	// re-adding a stored killer does not duplicate it
	h.AddKiller(m2)
	assert.Equal(t, m2, h.Killer(0))
	assert.Equal(t, m1, h.Killer(1))

	h.AddKiller(m3)
	assert.Equal(t, m3, h.Killer(0))
	assert.Equal(t, m2, h.Killer(1))
}

func TestKillersArePerPly(t *testing.T) {
	h := NewHistory()
	m1 := NewMove(SqE2, SqE4, PtEmpty)
	m2 := NewMove(SqD2, SqD4, PtEmpty)

	h.AddKiller(m1)
	h.Push()
	assert.Equal(t, MoveNone, h.Killer(0))
	h.AddKiller(m2)
	assert.Equal(t, m2, h.Killer(0))
	h.Pop()
	assert.Equal(t, m1, h.Killer(0))
}

func TestHistoryCounterBounded(t *testing.T) {
	h := NewHistory()
	m := NewMove(SqB1, SqC3, PtEmpty)

	for i := 0; i < 1_000; i++ {
		h.AddHistory(m, WhiteKnight, 20*20)
	}
	sc := h.HistoryScore(m, WhiteKnight)
	assert.Greater(t, sc, 0)
	assert.LessOrEqual(t, sc, 30_000)

	for i := 0; i < 2_000; i++ {
		h.AddHistory(m, WhiteKnight, -20*20)
	}
	sc = h.HistoryScore(m, WhiteKnight)
	assert.Less(t, sc, 0)
	assert.GreaterOrEqual(t, sc, -30_000)
}

func TestHistoryIndexSeparatesPieces(t *testing.T) {
	h := NewHistory()
	m := NewMove(SqB1, SqC3, PtEmpty)
	h.AddHistory(m, WhiteKnight, 100)
	assert.Equal(t, 0, h.HistoryScore(m, BlackKnight))
	assert.NotEqual(t, 0, h.HistoryScore(m, WhiteKnight))
}

func TestUpdateRewardsAndEvicts(t *testing.T) {
	h := NewHistory()
	good := NewMove(SqE2, SqE4, PtEmpty)
	bad := NewMove(SqA2, SqA3, PtEmpty)

	// improving alpha earns history; a cutoff also makes it a killer
	h.Update(good, WhitePawn, 4, 120, 100, 110)
	assert.Equal(t, good, h.Killer(0))
	assert.Greater(t, h.HistoryScore(good, WhitePawn), 0)

	// a killer failing low is evicted from its slot
	h.Update(good, WhitePawn, 4, 90, 100, 110)
	assert.Equal(t, MoveNone, h.Killer(0))

	// a fail-low without killer involvement leaves history untouched
	before := h.HistoryScore(bad, WhitePawn)
	h.Update(bad, WhitePawn, 4, 90, 100, 110)
	assert.Equal(t, before, h.HistoryScore(bad, WhitePawn))
}

func TestTTMovePerPly(t *testing.T) {
	h := NewHistory()
	m := NewMove(SqG1, SqF3, PtEmpty)
	h.SetTTMove(m)
	assert.Equal(t, m, h.TTMove())
	h.Push()
	assert.Equal(t, MoveNone, h.TTMove())
	h.Pop()
	assert.Equal(t, m, h.TTMove())
}

func TestClearDeeper(t *testing.T) {
	h := NewHistory()
	m := NewMove(SqE2, SqE4, PtEmpty)
	h.Push()
	h.Push()
	h.AddKiller(m)
	h.Pop()
	h.Pop()
	// two plies below the current one the killer is considered stale
	h.ClearDeeper()
	h.Push()
	h.Push()
	assert.Equal(t, MoveNone, h.Killer(0))
}
