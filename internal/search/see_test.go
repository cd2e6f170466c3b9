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

	"github.com/stretchr/testify/assert"

	"github.com/corvid-chess/corvid/internal/position"
	. "github.com/corvid-chess/corvid/internal/types"
)

func seeOf(t *testing.T, fen, mv string) int {
	t.Helper()
	p := position.New()
	assert.NoError(t, p.SetFEN(fen))
	m, ok := ParseMove(mv)
	assert.True(t, ok)
	return see(p, m)
}

func TestSeeSimpleWinningCapture(t *testing.T) {
	// rook takes an undefended pawn
	assert.Equal(t, PieceValue[Pawn],
		seeOf(t, "1k1r4/1pp4p/p7/4p3/8/P5P1/1PP4P/2K1R3 w - - 0 1", "e1e5"))
}

func TestSeeEqualExchange(t *testing.T) {
	// pawn takes a pawn defended by a pawn: win one, lose one
	assert.Equal(t, 0,
		seeOf(t, "k7/8/3p4/2p5/3P4/8/8/K7 w - - 0 1", "d4c5"))
}

func TestSeeLosingCapture(t *testing.T) {
	// queen grabs a pawn defended by a pawn
	assert.Equal(t, PieceValue[Pawn]-PieceValue[Queen],
		seeOf(t, "k7/8/3p4/2p5/3Q4/8/8/K7 w - - 0 1", "d4c5"))
}

func TestSeeCaptureOfDefendedQueen(t *testing.T) {
	// pawn takes a queen, gets recaptured: still winning
	assert.Equal(t, PieceValue[Queen]-PieceValue[Pawn],
		seeOf(t, "k7/8/3p4/2q5/3P4/8/8/K7 w - - 0 1", "d4c5"))
}

func TestSeeIllegalMoveReturnsZero(t *testing.T) {
	// the capturing rook is pinned against its king, so the winning
	// rook grab on a2 is illegal and scores nothing
	assert.Equal(t, 0,
		seeOf(t, "4r3/8/8/8/8/8/r3R3/4K3 w - - 0 1", "e2a2"))
}

func TestSeeBounds(t *testing.T) {
	// see can never win more than the captured piece
	fens := []struct{ fen, mv string }{
		{"1k1r4/1pp4p/p7/4p3/8/P5P1/1PP4P/2K1R3 w - - 0 1", "e1e5"},
		{"k7/8/3p4/2p5/3Q4/8/8/K7 w - - 0 1", "d4c5"},
	}
	for _, tc := range fens {
		p := position.New()
		assert.NoError(t, p.SetFEN(tc.fen))
		m, _ := ParseMove(tc.mv)
		captured := PieceValue[p.PieceAt(m.To()).TypeOf()]
		attacker := PieceValue[p.PieceAt(m.From()).TypeOf()]
		sc := see(p, m)
		assert.LessOrEqual(t, sc, captured)
		assert.GreaterOrEqual(t, sc, -attacker)
	}
}
