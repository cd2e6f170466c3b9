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

package evaluator

import (
	"github.com/corvid-chess/corvid/internal/position"
	"github.com/corvid-chess/corvid/internal/pst"
	. "github.com/corvid-chess/corvid/internal/types"
)

// connectedBonus is the per-relative-rank bonus for connected and passed
// pawns. Index is the pawn's rank as seen from its own side (1..7).
var connectedBonus = [9]int{0, 0, 2, 3, 5, 10, 15, 25, 0}

// evPawns scores the pawn structure of one side: connection, support and
// passed-pawn bonuses against isolation, doubling and backwardness
// penalties. The structural penalties grow toward the endgame where pawn
// weaknesses dominate; passed pawns additionally like their target square
// far from the defending king.
func evPawns(p *position.Position, us Color) int {
	them := us.Flip()
	ownPawns := p.PieceColorBB(Pawn, us)
	oppPawns := p.PieceColorBB(Pawn, them)
	opKing := p.KingSq(them)

	sc := 0
	cph := pst.GamePhaseMax - p.PST().Phase()
	hph := cph / 2

	for b := ownPawns; b != 0; {
		sq := b.PopLsb()
		rank := sq.Rank()

		rrank := 8 - rank
		front := sq.To(South)
		supportRank := rank + 1
		if us == White {
			rrank = rank + 1
			front = sq.To(North)
			supportRank = rank - 1
		}

		var blocked Bitboard
		if front != SqNone {
			blocked = p.ColorBB(them) & front.Bb()
		}
		levers := oppPawns & PawnAttackMask[us][sq]
		var nextLevers Bitboard
		if front != SqNone {
			nextLevers = oppPawns & PawnAttackMask[us][front]
		}
		doubled := ownPawns & ForwardFileMask[us][sq]
		opposed := oppPawns & ForwardFileMask[us][sq]
		stoppers := opposed | blocked | (oppPawns & PassedMask[us][sq])
		neighbors := ownPawns & IsolatedMask[sq]
		phalanx := neighbors & RankMaskBb[rank]
		var support Bitboard
		if supportRank >= 0 && supportRank <= 7 {
			support = neighbors & RankMaskBb[supportRank]
		}
		backward := neighbors&ForwardRankMask[them][sq] == 0 && (nextLevers|blocked) != 0
		passed := stoppers^levers == 0 ||
			(stoppers^nextLevers == 0 && phalanx.PopCount() >= nextLevers.PopCount())
		passed = passed && doubled == 0

		switch {
		case neighbors == 0:
			if opposed != 0 && doubled != 0 && stoppers == 0 {
				sc -= 4 + cph
			} else {
				sc -= 2
				if opposed == 0 {
					sc -= 6 + hph
				}
			}
		case phalanx|support != 0:
			mult := 2
			if phalanx != 0 {
				mult++
			}
			if opposed != 0 {
				mult--
			}
			sc += connectedBonus[rrank] * mult
			sc += 7 * support.PopCount()
			sc += 7 - SquareDistance(sq, opKing)
		case backward:
			sc -= hph
			if opposed == 0 {
				sc -= 6 + hph
			}
		}

		if support == 0 {
			if doubled != 0 {
				sc -= 4 + cph
			}
			if levers.PopCount() > 1 {
				sc--
			}
		}
		if passed {
			sc += (2 + phalanx.PopCount() + support.PopCount()) * connectedBonus[rrank]
			sc += SquareDistance(sq, opKing)
		}
	}
	return sc
}
