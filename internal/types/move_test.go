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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovePacking(t *testing.T) {
	m := NewMove(SqE2, SqE4, PtEmpty)
	assert.Equal(t, SqE2, m.From())
	assert.Equal(t, SqE4, m.To())
	assert.Equal(t, PtEmpty, m.Promo())
	assert.False(t, m.IsPromotion())
	assert.Equal(t, "e2e4", m.String())

	pm := NewMove(SqA7, SqA8, Queen)
	assert.True(t, pm.IsPromotion())
	assert.Equal(t, "a7a8q", pm.String())
}

func TestMoveScoreRoundTrip(t *testing.T) {
	m := NewMove(SqG1, SqF3, PtEmpty)
	scored := m.WithScore(-12345)
	assert.Equal(t, int16(-12345), scored.Score())
	assert.Equal(t, m.MoveOnly(), scored.MoveOnly())
	assert.Equal(t, m.From(), scored.From())
	assert.Equal(t, m.To(), scored.To())

	rescored := scored.WithScore(31999)
	assert.Equal(t, int16(31999), rescored.Score())
	assert.Equal(t, m.MoveOnly(), rescored.MoveOnly())
}

func TestParseMove(t *testing.T) {
	m, ok := ParseMove("e2e4")
	assert.True(t, ok)
	assert.Equal(t, NewMove(SqE2, SqE4, PtEmpty), m)

	m, ok = ParseMove("e7e8q")
	assert.True(t, ok)
	assert.Equal(t, NewMove(SqE7, SqE8, Queen), m)

	_, ok = ParseMove("e2")
	assert.False(t, ok)
	_, ok = ParseMove("e2e9")
	assert.False(t, ok)
	_, ok = ParseMove("e7e8x")
	assert.False(t, ok)
}

func TestSquareMapping(t *testing.T) {
	assert.Equal(t, Square(0), SqA1)
	assert.Equal(t, Square(63), SqH8)
	assert.Equal(t, SqE4, MakeSquare(4, 3))
	assert.Equal(t, "e4", SqE4.String())
	assert.Equal(t, SqA8, SqA1.FlipRank())
	assert.Equal(t, SqE4, SqE5.FlipRank())

	sq, ok := ParseSquare("h8")
	assert.True(t, ok)
	assert.Equal(t, SqH8, sq)
	_, ok = ParseSquare("i1")
	assert.False(t, ok)
}

func TestPieceEncoding(t *testing.T) {
	assert.Equal(t, Piece(3), WhitePawn)
	assert.Equal(t, Piece(2), BlackPawn)
	assert.Equal(t, Piece(13), WhiteKing)
	assert.Equal(t, Piece(12), BlackKing)
	assert.Equal(t, White, WhiteQueen.ColorOf())
	assert.Equal(t, Black, BlackQueen.ColorOf())
	assert.Equal(t, Queen, WhiteQueen.TypeOf())
	assert.Equal(t, WhiteKnight, MakePiece(White, Knight))
}

func TestCastlingRightsMask(t *testing.T) {
	cr := AnyCastling
	// a king move from e1 revokes both white rights
	cr = cr & CastlingRightsMask[SqE1] & CastlingRightsMask[SqE2]
	assert.False(t, cr.Has(WhiteOO))
	assert.False(t, cr.Has(WhiteOOO))
	assert.True(t, cr.Has(BlackOO))
	assert.True(t, cr.Has(BlackOOO))

	// capturing the a8 rook revokes black's queenside right only
	cr2 := AnyCastling & CastlingRightsMask[SqB7] & CastlingRightsMask[SqA8]
	assert.True(t, cr2.Has(BlackOO))
	assert.False(t, cr2.Has(BlackOOO))
}
