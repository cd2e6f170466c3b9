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

// Package evaluator computes a static position score from the side to
// move's perspective. The backbone is the incrementally maintained
// material and piece-square score interpolated by game phase; on top of
// that come a pawn-structure term per side and a king-safety term, and a
// small tempo bonus for the side to move. Classical dead-material endings
// short-circuit to an exact draw score.
package evaluator

import (
	"github.com/corvid-chess/corvid/internal/config"
	"github.com/corvid-chess/corvid/internal/position"
	. "github.com/corvid-chess/corvid/internal/types"
)

// Evaluator is the stateless evaluation entry point. It exists as a type
// so a search owns one instance and config lookups happen once.
type Evaluator struct {
	tempo int
}

// NewEvaluator creates a new instance of an Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		tempo: int(config.Settings.Eval.Tempo),
	}
}

// Evaluate returns the static score of the position from the point of
// view of the side to move.
func (e *Evaluator) Evaluate(p *position.Position) int {
	pst := p.PST()
	if pst.IsMaterialDraw() {
		return Draw
	}

	sc := pst.Mix()
	if config.Settings.Eval.UsePawnEval {
		sc += evPawns(p, White) - evPawns(p, Black)
	}
	if config.Settings.Eval.UseKingEval {
		sc += kingSafety(p, White) - kingSafety(p, Black)
	}

	if p.Side() == Black {
		sc = -sc
	}
	return sc + e.tempo
}

// kingSafety counts the pawn shelter directly in front of the king and
// own pieces inside the king's defensive region.
func kingSafety(p *position.Position, us Color) int {
	ksq := p.KingSq(us)
	safety := 0

	shelterRank := ksq.Rank() + 1
	if us == Black {
		shelterRank = ksq.Rank() - 1
	}
	if shelterRank >= 0 && shelterRank <= 7 {
		shelter := p.PieceColorBB(Pawn, us) & KingMask[ksq] & RankMaskBb[shelterRank]
		safety += shelter.PopCount()
	}

	safety += (KingDefMask[ksq] & p.ColorBB(us)).PopCount()
	return safety
}
