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

package transpositiontable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/corvid-chess/corvid/internal/types"
)

func TestNewSizes(t *testing.T) {
	tt := NewTtTable(2)
	// entries are a power of two fitting into the requested size
	assert.Equal(t, uint64(2*MB/TtEntrySize), tt.maxNumberOfEntries)

	tt = NewTtTable(0)
	assert.Equal(t, uint64(0), tt.maxNumberOfEntries)
	// a zero-sized table ignores stores and always misses
	tt.Put(1234, MoveNone, 5, 100, FlagXB)
	assert.Nil(t, tt.Probe(1234, 1))
}

func TestPutProbe(t *testing.T) {
	tt := NewTtTable(2)
	m := NewMove(SqE2, SqE4, PtEmpty)

	tt.Put(111, m, 6, 42, FlagXB)
	assert.Equal(t, uint64(1), tt.Len())

	// probe hit requires sufficient stored depth
	e := tt.Probe(111, 6)
	assert.NotNil(t, e)
	assert.Equal(t, 42, e.Score())
	assert.Equal(t, m.MoveOnly(), e.Move())
	assert.Equal(t, FlagXB, e.Flag())
	assert.NotNil(t, tt.Probe(111, 4))
	assert.Nil(t, tt.Probe(111, 7))

	// miss on different key
	assert.Nil(t, tt.Probe(222, 1))

	// the move is available regardless of depth
	assert.Equal(t, m.MoveOnly(), tt.BestMove(111))
	assert.Equal(t, MoveNone, tt.BestMove(222))
}

func TestReplacementPolicy(t *testing.T) {
	tt := NewTtTable(2)
	m1 := NewMove(SqE2, SqE4, PtEmpty)
	m2 := NewMove(SqD2, SqD4, PtEmpty)

	tt.Put(111, m1, 6, 42, FlagLB)

	// same key, shallower: keep the deeper entry
	tt.Put(111, m2, 3, 10, FlagUB)
	e := tt.Probe(111, 1)
	assert.Equal(t, m1.MoveOnly(), e.Move())
	assert.Equal(t, 42, e.Score())

	// same key, deeper: replace
	tt.Put(111, m2, 8, 77, FlagUB)
	e = tt.Probe(111, 1)
	assert.Equal(t, m2.MoveOnly(), e.Move())
	assert.Equal(t, 77, e.Score())

	// different key hashing to the same slot always replaces
	collision := 111 + tt.maxNumberOfEntries
	tt.Put(collision, m1, 2, -5, FlagLB)
	assert.Nil(t, tt.Probe(111, 1))
	e = tt.Probe(collision, 2)
	assert.NotNil(t, e)
	assert.Equal(t, -5, e.Score())
}

func TestClear(t *testing.T) {
	tt := NewTtTable(2)
	tt.Put(111, MoveNone, 6, 42, FlagXB)
	assert.Equal(t, uint64(1), tt.Len())
	tt.Clear()
	assert.Equal(t, uint64(0), tt.Len())
	assert.Nil(t, tt.Probe(111, 1))
}

func TestMateScoreEncoding(t *testing.T) {
	// a mate found 3 plies into the search, stored at ply 3
	sc := Mate - 8
	stored := ToTT(sc, 3)
	assert.Equal(t, sc+3, stored)
	// loading at a different ply re-anchors the distance
	assert.Equal(t, Mate-8-2+3, FromTT(stored, 2, 0))

	// negative mate scores mirror
	sc = -Mate + 10
	stored = ToTT(sc, 4)
	assert.Equal(t, sc-4, stored)
	assert.Equal(t, sc-4+4, FromTT(stored, 4, 0))

	// non-mate scores pass through unchanged
	assert.Equal(t, 123, ToTT(123, 60))
	assert.Equal(t, -123, FromTT(-123, 60, 0))

	// the 50-move rule horizon clamps an unreachable mate
	stored = ToTT(Mate-4, 0)
	assert.Equal(t, MateInMax-1, FromTT(stored, 0, 97))
}
