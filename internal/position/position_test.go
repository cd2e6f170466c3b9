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

package position

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/corvid-chess/corvid/internal/types"
)

func init() {
	Init()
}

func TestNewStartPosition(t *testing.T) {
	p := New()
	assert.Equal(t, White, p.Side())
	assert.Equal(t, WhitePawn, p.PieceAt(SqE2))
	assert.Equal(t, PieceEmpty, p.PieceAt(SqE4))
	assert.Equal(t, StartFEN, p.FEN())
	assert.True(t, p.VerifyKey())
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"2kr3r/p1ppqpb1/bn2Qnp1/3PN3/1p2P3/2N5/PPPBBPPP/R3K2R b KQ - 3 2",
	}
	for _, fen := range fens {
		p := New()
		require := assert.New(t)
		err := p.SetFEN(fen)
		require.NoError(err)
		require.Equal(fen, p.FEN())
		require.True(p.VerifyKey())
	}
}

func TestMakeUndoRestoresKeyAndFEN(t *testing.T) {
	p := New()
	for _, mv := range []string{"e2e4", "e7e5", "g1f3", "b8c6"} {
		m, ok := ParseMove(mv)
		assert.True(t, ok)
		before := p.FEN()
		beforeKey := p.Key()
		assert.True(t, p.MakeMove(m))
		p.UndoMove()
		assert.Equal(t, before, p.FEN())
		assert.Equal(t, beforeKey, p.Key())
		ok = p.MakeMove(m)
		assert.True(t, ok)
	}
	assert.True(t, p.VerifyKey())
}

func TestEnPassantCapture(t *testing.T) {
	p := New()
	require := assert.New(t)
	require.NoError(p.SetFEN("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 3"))
	m, ok := ParseMove("d4e3")
	require.True(ok)
	require.True(p.MakeMove(m))
	require.Equal(PieceEmpty, p.PieceAt(SqE4))
	require.Equal(BlackPawn, p.PieceAt(SqE3))
	require.True(p.VerifyKey())
	p.UndoMove()
	require.Equal(WhitePawn, p.PieceAt(SqE4))
	require.Equal(PieceEmpty, p.PieceAt(SqE3))
	require.Equal(BlackPawn, p.PieceAt(SqD4))
}

func TestCastlingMovesRookStructurally(t *testing.T) {
	p := New()
	require := assert.New(t)
	require.NoError(p.SetFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"))
	m, ok := ParseMove("e1g1")
	require.True(ok)
	require.True(p.MakeMove(m))
	require.Equal(WhiteKing, p.PieceAt(SqG1))
	require.Equal(WhiteRook, p.PieceAt(SqF1))
	require.Equal(PieceEmpty, p.PieceAt(SqH1))
	require.True(p.VerifyKey())
	p.UndoMove()
	require.Equal(WhiteKing, p.PieceAt(SqE1))
	require.Equal(WhiteRook, p.PieceAt(SqH1))
}

func TestIllegalMoveLeavesKingInCheckIsRejected(t *testing.T) {
	p := New()
	require := assert.New(t)
	require.NoError(p.SetFEN("rnb1kbnr/pppp1ppp/8/4p3/7q/4P3/PPPP1PPP/RNBQKBNR w KQkq - 1 3"))
	before := p.FEN()
	m, ok := ParseMove("f2f3")
	require.True(ok)
	require.False(p.MakeMove(m))
	require.Equal(before, p.FEN())
}

func TestInCheckDetection(t *testing.T) {
	p := New()
	require := assert.New(t)
	require.NoError(p.SetFEN("rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2"))
	m, ok := ParseMove("d8h4")
	require.True(ok)
	require.True(p.MakeMove(m))
	require.True(p.InCheck(White))
}

func TestRepetitionDetection(t *testing.T) {
	p := New()
	require := assert.New(t)
	moves := []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"}
	for _, mv := range moves {
		m, ok := ParseMove(mv)
		require.True(ok)
		require.True(p.MakeMove(m))
	}
	require.True(p.IsRepetition())
}

func TestNullMoveOkRequiresNonPawnMaterial(t *testing.T) {
	p := New()
	require := assert.New(t)

	// kings and pawns only: zugzwang territory, null probes are unsound
	require.NoError(p.SetFEN("4k3/pppp4/8/8/8/8/PPPP4/4K3 w - - 0 1"))
	require.False(p.NullOk())

	// with pieces on the board the probe is fine
	require.NoError(p.SetFEN(StartFEN))
	require.True(p.NullOk())
}

func TestMakeNullUndoNull(t *testing.T) {
	p := New()
	require := assert.New(t)
	require.NoError(p.SetFEN("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 3"))
	fen := p.FEN()
	key := p.Key()

	p.MakeNull()
	require.Equal(White, p.Side())
	require.Equal(SqNone, p.EP())
	require.NotEqual(key, p.Key())

	p.UndoNull()
	require.Equal(fen, p.FEN())
	require.Equal(key, p.Key())
}

func TestThreefoldOverGameHistory(t *testing.T) {
	p := New()
	require := assert.New(t)
	moves := []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"}
	for _, mv := range moves {
		m, ok := ParseMove(mv)
		require.True(ok)
		require.True(p.MakeMove(m))
	}
	require.True(p.IsThreefold())
}

func TestStateInvariantsAfterMoveSequence(t *testing.T) {
	p := New()
	require := assert.New(t)
	moves := []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "g8f6", "e1g1", "f6e4"}
	for _, mv := range moves {
		m, ok := ParseMove(mv)
		require.True(ok)
		require.True(p.MakeMove(m))

		occ := p.ColorBB(White) | p.ColorBB(Black)
		require.Equal(BbZero, p.ColorBB(White)&p.ColorBB(Black))
		require.LessOrEqual(occ.PopCount(), 32)
		require.Equal(1, p.PieceColorBB(King, White).PopCount())
		require.Equal(1, p.PieceColorBB(King, Black).PopCount())

		var union Bitboard
		for pt := Pawn; pt <= King; pt++ {
			union |= p.BB(pt)
		}
		require.Equal(occ, union)
		require.True(p.VerifyKey())
	}
	for range moves {
		p.UndoMove()
	}
	require.Equal(StartFEN, p.FEN())
	require.True(p.VerifyKey())
}
