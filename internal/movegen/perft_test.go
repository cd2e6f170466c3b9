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

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvid-chess/corvid/internal/position"
)

func TestPerftReferencePositionsShallow(t *testing.T) {
	for i, tc := range selfTestCases {
		p := position.New()
		assert.NoError(t, p.SetFEN(tc.fen))
		perft := NewPerft()
		mgList := []*Movegen{NewMoveGen(), NewMoveGen(), NewMoveGen(), NewMoveGen()}
		for d := 0; d <= 3; d++ {
			nodes := perft.miniMax(d, p, mgList)
			assert.Equal(t, tc.results[d], nodes, "position %d depth %d", i+1, d)
		}
	}
}

func TestPerftReferencePositionsDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	for i, tc := range selfTestCases {
		p := position.New()
		assert.NoError(t, p.SetFEN(tc.fen))
		perft := NewPerft()
		mgList := make([]*Movegen, 5)
		for j := range mgList {
			mgList[j] = NewMoveGen()
		}
		nodes := perft.miniMax(4, p, mgList)
		assert.Equal(t, tc.results[4], nodes, "position %d depth 4", i+1)
	}
}

func TestPerftStartPositionDepth5(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	perft := NewPerft()
	assert.Equal(t, uint64(4865609), perft.StartPerft(position.StartFEN, 5))
}

func TestSelfTest(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping self test in short mode")
	}
	perft := NewPerft()
	assert.True(t, perft.SelfTest(3))
}
