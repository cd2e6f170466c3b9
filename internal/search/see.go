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
	"github.com/corvid-chess/corvid/internal/position"
	. "github.com/corvid-chess/corvid/internal/types"
)

// see returns the material gained by the capture sequence beginning with
// move m, assuming both sides always recapture with their least valuable
// attacker. It works by actually playing the sequence with make/undo, so
// pins and revealed attacks are handled by the position itself. Returns 0
// when the initial move is illegal.
func see(p *position.Position, m Move) int {
	to := m.To()
	r := PieceValue[p.PieceAt(to).TypeOf()]

	if !p.MakeMove(m) {
		return 0
	}
	if fr := leastValuableAttacker(p, to); fr != SqNone {
		next := NewMove(fr, to, PtEmpty)
		if p.PieceAt(fr).TypeOf() == Pawn && (to.Rank() == 0 || to.Rank() == 7) {
			next = NewMove(fr, to, Queen)
		}
		if g := see(p, next); g > 0 {
			r -= g
		}
	}
	p.UndoMove()
	return r
}

// leastValuableAttacker returns the square of the cheapest piece of the
// side to move attacking sq, trying piece types in increasing value
// order. SqNone when sq is not attacked.
func leastValuableAttacker(p *position.Position, sq Square) Square {
	us := p.Side()
	occ := p.Occ()

	if a := PawnAttackMask[us.Flip()][sq] & p.PieceColorBB(Pawn, us); a != 0 {
		return a.Lsb()
	}
	if a := KnightMask[sq] & p.PieceColorBB(Knight, us); a != 0 {
		return a.Lsb()
	}
	bishopAtt := BishopAttacks(sq, occ)
	if a := bishopAtt & p.PieceColorBB(Bishop, us); a != 0 {
		return a.Lsb()
	}
	rookAtt := RookAttacks(sq, occ)
	if a := rookAtt & p.PieceColorBB(Rook, us); a != 0 {
		return a.Lsb()
	}
	if a := (rookAtt | bishopAtt) & p.PieceColorBB(Queen, us); a != 0 {
		return a.Lsb()
	}
	if a := KingMask[sq] & p.PieceColorBB(King, us); a != 0 {
		return a.Lsb()
	}
	return SqNone
}
