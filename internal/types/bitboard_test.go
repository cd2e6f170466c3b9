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

func init() {
	Init()
}

func TestBitboardBasics(t *testing.T) {
	var b Bitboard
	b.PushSquare(SqE4)
	b.PushSquare(SqA1)
	b.PushSquare(SqH8)
	assert.Equal(t, 3, b.PopCount())
	assert.Equal(t, SqA1, b.Lsb())
	assert.Equal(t, SqH8, b.Msb())
	assert.True(t, b.Has(SqE4))
	assert.False(t, b.Has(SqE5))

	first := b.PopLsb()
	assert.Equal(t, SqA1, first)
	assert.Equal(t, 2, b.PopCount())
}

func TestShiftUpDown(t *testing.T) {
	b := SqE4.Bb()
	assert.Equal(t, SqE5.Bb(), b.ShiftUp(White))
	assert.Equal(t, SqE3.Bb(), b.ShiftUp(Black))
	assert.Equal(t, SqE3.Bb(), b.ShiftDown(White))
	assert.Equal(t, SqE5.Bb(), b.ShiftDown(Black))
}

func TestPushPopIndexWithinSet(t *testing.T) {
	b := SqA1.Bb() | SqC1.Bb() | SqE1.Bb()
	assert.Equal(t, 0, b.PushPop(SqA1))
	assert.Equal(t, 1, b.PushPop(SqC1))
	assert.Equal(t, 2, b.PushPop(SqE1))
}

func TestKnightAndKingMasks(t *testing.T) {
	assert.Equal(t, 8, KnightMask[SqE4].PopCount())
	assert.Equal(t, 2, KnightMask[SqA1].PopCount())
	assert.Equal(t, 8, KingMask[SqE4].PopCount())
	assert.Equal(t, 3, KingMask[SqA1].PopCount())
	assert.False(t, KingMask[SqE4].Has(SqE4))
}

func TestPawnMasks(t *testing.T) {
	assert.Equal(t, SqD5.Bb()|SqF5.Bb(), PawnAttackMask[White][SqE4])
	assert.Equal(t, SqD3.Bb()|SqF3.Bb(), PawnAttackMask[Black][SqE4])
	// double push only from the start rank
	assert.Equal(t, SqE3.Bb()|SqE4.Bb(), PawnPushMask[White][SqE2])
	assert.Equal(t, SqE5.Bb(), PawnPushMask[White][SqE4])
	assert.Equal(t, SqD6.Bb()|SqD5.Bb(), PawnPushMask[Black][SqD7])
}

func TestBetween(t *testing.T) {
	assert.Equal(t, SqB2.Bb()|SqC3.Bb()|SqD4.Bb(), Between[SqA1][SqE5])
	assert.Equal(t, SqE2.Bb()|SqE3.Bb(), Between[SqE1][SqE4])
	assert.Equal(t, BbZero, Between[SqA1][SqB3])
	assert.Equal(t, BbZero, Between[SqA1][SqB1])
}

func TestPawnStructureMasks(t *testing.T) {
	assert.Equal(t, FileMaskBb[3]|FileMaskBb[5], IsolatedMask[SqE4])
	assert.Equal(t, FileMaskBb[1], IsolatedMask[SqA4])

	// passed mask covers the three files ahead of the pawn
	expected := (FileMaskBb[3] | FileMaskBb[4] | FileMaskBb[5]) &
		(RankMaskBb[4] | RankMaskBb[5] | RankMaskBb[6] | RankMaskBb[7])
	assert.Equal(t, expected, PassedMask[White][SqE4])

	assert.Equal(t, SqE5.Bb()|SqE6.Bb()|SqE7.Bb()|SqE8.Bb(), ForwardFileMask[White][SqE4])
	assert.Equal(t, SqE3.Bb()|SqE2.Bb()|SqE1.Bb(), ForwardFileMask[Black][SqE4])
}

// slowSlidingAttack is an independent ray walker to verify the magic
// attack tables against.
func slowSlidingAttack(dirs []Direction, sq Square, occ Bitboard) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		s := sq
		for {
			n := s.To(d)
			if n == SqNone {
				break
			}
			attacks.PushSquare(n)
			if occ.Has(n) {
				break
			}
			s = n
		}
	}
	return attacks
}

func TestMagicAttacksMatchSlowGeneration(t *testing.T) {
	bishopDirs := []Direction{NorthEast, NorthWest, SouthEast, SouthWest}
	rookDirs := []Direction{North, South, East, West}

	occupancies := []Bitboard{
		BbZero,
		SqD4.Bb() | SqF6.Bb() | SqB2.Bb(),
		RankMaskBb[1] | RankMaskBb[6],
		FileMaskBb[3] | SqE4.Bb() | SqG7.Bb(),
		BbAll &^ SqE4.Bb(),
	}
	for _, occ := range occupancies {
		for sq := SqA1; sq <= SqH8; sq++ {
			assert.Equal(t, slowSlidingAttack(bishopDirs, sq, occ), BishopAttacks(sq, occ),
				"bishop attacks differ on %s", sq)
			assert.Equal(t, slowSlidingAttack(rookDirs, sq, occ), RookAttacks(sq, occ),
				"rook attacks differ on %s", sq)
			assert.Equal(t, BishopAttacks(sq, occ)|RookAttacks(sq, occ), QueenAttacks(sq, occ))
		}
	}
}
