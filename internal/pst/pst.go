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

// Package pst implements the incrementally maintained piece-square-table
// score (material + position, midgame and endgame) and the classical
// material-draw recognizer. The raw tables are PeSTO's tuned values (see
// https://www.chessprogramming.org/PeSTO's_Evaluation_Function); the
// pawn/king-safety terms in the evaluator package add to this base score.
package pst

import (
	. "github.com/corvid-chess/corvid/internal/types"
)

// rawPst holds, per piece type (Pawn..King) and stage (mg then eg), 64
// square values written from Black's point of view (square index used
// directly, no rank flip); White mirrors via Square.FlipRank.
var rawPst = [6][2][64]int16{
	{ // Pawn
		{0, 0, 0, 0, 0, 0, 0, 0,
			98, 134, 61, 95, 68, 126, 34, -11,
			-6, 7, 26, 31, 65, 56, 25, -20,
			-14, 13, 6, 21, 23, 12, 17, -23,
			-27, -2, -5, 12, 17, 6, 10, -25,
			-26, -4, -4, -10, 3, 3, 33, -12,
			-35, -1, -20, -23, -15, 24, 38, -22,
			0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0,
			178, 173, 158, 134, 147, 132, 165, 187,
			94, 100, 85, 67, 56, 53, 82, 84,
			32, 24, 13, 5, -2, 4, 17, 17,
			13, 9, -3, -7, -7, -8, 3, -1,
			4, 7, -6, 1, 0, -5, -1, -8,
			13, 8, 8, 10, 13, 0, 2, -7,
			0, 0, 0, 0, 0, 0, 0, 0},
	},
	{ // Knight
		{-167, -89, -34, -49, 61, -97, -15, -107,
			-73, -41, 72, 36, 23, 62, 7, -17,
			-47, 60, 37, 65, 84, 129, 73, 44,
			-9, 17, 19, 53, 37, 69, 18, 22,
			-13, 4, 16, 13, 28, 19, 21, -8,
			-23, -9, 12, 10, 19, 17, 25, -16,
			-29, -53, -12, -3, -1, 18, -14, -19,
			-105, -21, -58, -33, -17, -28, -19, -23},
		{-58, -38, -13, -28, -31, -27, -63, -99,
			-25, -8, -25, -2, -9, -25, -24, -52,
			-24, -20, 10, 9, -1, -9, -19, -41,
			-17, 3, 22, 22, 22, 11, 8, -18,
			-18, -6, 16, 25, 16, 17, 4, -18,
			-23, -3, -1, 15, 10, -3, -20, -22,
			-42, -20, -10, -5, -2, -20, -23, -44,
			-29, -51, -23, -15, -22, -18, -50, -64},
	},
	{ // Bishop
		{-29, 4, -82, -37, -25, -42, 7, -8,
			-26, 16, -18, -13, 30, 59, 18, -47,
			-16, 37, 43, 40, 35, 50, 37, -2,
			-4, 5, 19, 50, 37, 37, 7, -2,
			-6, 13, 13, 26, 34, 12, 10, 4,
			0, 15, 15, 15, 14, 27, 18, 10,
			4, 15, 16, 0, 7, 21, 33, 1,
			-33, -3, -14, -21, -13, -12, -39, -21},
		{-14, -21, -11, -8, -7, -9, -17, -24,
			-8, -4, 7, -12, -3, -13, -4, -14,
			2, -8, 0, -1, -2, 6, 0, 4,
			-3, 9, 12, 9, 14, 10, 3, 2,
			-6, 3, 13, 19, 7, 10, -3, -9,
			-12, -3, 8, 10, 13, 3, -7, -15,
			-14, -18, -7, -1, 4, -9, -15, -27,
			-23, -9, -23, -5, -9, -16, -5, -17},
	},
	{ // Rook
		{32, 42, 32, 51, 63, 9, 31, 43,
			27, 32, 58, 62, 80, 67, 26, 44,
			-5, 19, 26, 36, 17, 45, 61, 16,
			-24, -11, 7, 26, 24, 35, -8, -20,
			-36, -26, -12, -1, 9, -7, 6, -23,
			-45, -25, -16, -17, 3, 0, -5, -33,
			-44, -16, -20, -9, -1, 11, -6, -71,
			-19, -13, 1, 17, 16, 7, -37, -26},
		{13, 10, 18, 15, 12, 12, 8, 5,
			11, 13, 13, 11, -3, 3, 8, 3,
			7, 7, 7, 5, 4, -3, -5, -3,
			4, 3, 13, 1, 2, 1, -1, 2,
			3, 5, 8, 4, -5, -6, -8, -11,
			-4, 0, -5, -1, -7, -12, -8, -16,
			-6, -6, 0, 2, -9, -9, -11, -3,
			-9, 2, 3, -1, -5, -13, 4, -20},
	},
	{ // Queen
		{-28, 0, 29, 12, 59, 44, 43, 45,
			-24, -39, -5, 1, -16, 57, 28, 54,
			-13, -17, 7, 8, 29, 56, 47, 57,
			-27, -27, -16, -16, -1, 17, -2, 1,
			-9, -26, -9, -10, -2, -4, 3, -3,
			-14, 2, -11, -2, -5, 2, 14, 5,
			-35, -8, 11, 2, 8, 15, -3, 1,
			-1, -18, -9, 10, -15, -25, -31, -50},
		{-9, 22, 22, 27, 27, 19, 10, 20,
			-17, 20, 32, 41, 58, 25, 30, 0,
			-20, 6, 9, 49, 47, 35, 19, 9,
			3, 22, 24, 45, 57, 40, 57, 36,
			-18, 28, 19, 47, 31, 34, 39, 23,
			-16, -27, 15, 6, 9, 17, 10, 5,
			-22, -23, -30, -16, -16, -23, -36, -32,
			-33, -28, -22, -43, -5, -32, -20, -41},
	},
	{ // King
		{-65, 23, 16, -15, -56, -34, 2, 13,
			29, -1, -20, -7, -8, -4, -38, -29,
			-9, 24, 2, -16, -20, 6, 22, -22,
			-17, -20, -12, -27, -30, -25, -14, -36,
			-49, -1, -27, -39, -46, -44, -33, -51,
			-14, -14, -22, -46, -44, -30, -15, -27,
			1, 7, -8, -64, -43, -16, 9, 8,
			-15, 36, 12, -54, 8, -28, 24, 14},
		{-74, -35, -18, -18, -11, 15, 4, -17,
			-12, 17, 14, 17, 17, 38, 23, 11,
			10, 17, 23, 15, 20, 45, 44, 13,
			-8, 22, 24, 27, 26, 33, 26, 3,
			-18, -4, 21, 24, 27, 23, 9, -11,
			-19, -3, 11, 21, 23, 16, 7, -9,
			-27, -11, 4, 13, 14, 4, -5, -17,
			-53, -34, -21, -11, -28, -14, -24, -43},
	},
}

// pieceValueMg/Eg are indexed by PieceType (PtEmpty..King); PtEmpty and
// King carry no material term (the king is never captured).
var pieceValueMg = [PtLength]int16{0, 82, 337, 365, 477, 1025, 0}
var pieceValueEg = [PtLength]int16{0, 94, 281, 297, 512, 936, 0}

// mgVal/egVal are precomputed per (Piece, Square) so push/pop/move never
// touch rawPst directly: mgVal[p][sq] is positive for White, negative for
// Black, matching how the running score accumulates as "White minus Black".
var mgVal [PieceLength][SqLength]int16
var egVal [PieceLength][SqLength]int16

func init() {
	for pt := Pawn; pt <= King; pt++ {
		for sq := SqA1; sq <= SqH8; sq++ {
			wSq := sq.FlipRank()
			mg := rawPst[pt-1][0][wSq] + pieceValueMg[pt]
			eg := rawPst[pt-1][1][wSq] + pieceValueEg[pt]
			mgVal[MakePiece(White, pt)][sq] = mg
			egVal[MakePiece(White, pt)][sq] = eg
			mgB := rawPst[pt-1][0][sq] + pieceValueMg[pt]
			egB := rawPst[pt-1][1][sq] + pieceValueEg[pt]
			mgVal[MakePiece(Black, pt)][sq] = -mgB
			egVal[MakePiece(Black, pt)][sq] = -egB
		}
	}
}

// Val returns the combined midgame/endgame positional+material contribution
// of placing piece p on sq (signed: positive for White, negative for Black).
func Val(p Piece, sq Square) (mg, eg int16) {
	return mgVal[p][sq], egVal[p][sq]
}

// GamePhaseMax is the non-pawn-material phase ceiling used to interpolate
// between midgame and endgame scores.
const GamePhaseMax = 24

// Table is the incrementally maintained PST/material/piece-count
// aggregate for one Position. All mutators are O(1); there is no need to
// recompute the table from scratch on any move.
type Table struct {
	count  [PieceLength]int8
	scoreMg int32
	scoreEg int32
}

// Push adds a piece to sq (placing it on the board).
func (t *Table) Push(p Piece, sq Square) {
	t.count[p]++
	mg, eg := Val(p, sq)
	t.scoreMg += int32(mg)
	t.scoreEg += int32(eg)
}

// Pop removes a piece from sq.
func (t *Table) Pop(p Piece, sq Square) {
	t.count[p]--
	mg, eg := Val(p, sq)
	t.scoreMg -= int32(mg)
	t.scoreEg -= int32(eg)
}

// Move relocates a piece from fr to to without touching the piece count.
func (t *Table) Move(p Piece, fr, to Square) {
	mgFr, egFr := Val(p, fr)
	mgTo, egTo := Val(p, to)
	t.scoreMg += int32(mgTo - mgFr)
	t.scoreEg += int32(egTo - egFr)
}

// Count returns how many of piece p remain on the board.
func (t *Table) Count(p Piece) int {
	return int(t.count[p])
}

// ColorCount returns the total number of pieces (any type) of color c.
func (t *Table) ColorCount(c Color) int {
	n := 0
	for pt := Pawn; pt <= King; pt++ {
		n += t.Count(MakePiece(c, pt))
	}
	return n
}

// Phase is the interpolation coefficient in [0, GamePhaseMax] between
// midgame and endgame: knights/bishops count 1, rooks 2, queens 4.
func (t *Table) Phase() int {
	q := t.Count(WhiteKnight) + t.Count(BlackKnight) +
		t.Count(WhiteBishop) + t.Count(BlackBishop) +
		2*(t.Count(WhiteRook)+t.Count(BlackRook)) +
		4*(t.Count(WhiteQueen)+t.Count(BlackQueen))
	if q > GamePhaseMax {
		return GamePhaseMax
	}
	return q
}

// Mix interpolates the running mg/eg scores by the current phase.
func (t *Table) Mix() int {
	ph := t.Phase()
	return (int(t.scoreMg)*ph + int(t.scoreEg)*(GamePhaseMax-ph)) / GamePhaseMax
}

// MixWith interpolates the running scores plus ad-hoc additional mg/eg
// terms without mutating the table itself.
func (t *Table) MixWith(m, e int) int {
	ph := t.Phase()
	return ((int(t.scoreMg)+m)*ph + (int(t.scoreEg)+e)*(GamePhaseMax-ph)) / GamePhaseMax
}

// NullOk reports whether side to move has enough non-pawn material left to
// make a null-move probe meaningful (pruning it would be unsound in pure
// pawn endgames due to zugzwang).
func (t *Table) NullOk(side Color) bool {
	return t.ColorCount(side)-t.Count(MakePiece(side, Pawn)) > 2
}

// IsMaterialDraw recognizes the classical drawn endgames: bare kings,
// single minor, two knights, opposite-colored minors, or a single rook
// each with at most one minor apiece.
func (t *Table) IsMaterialDraw() bool {
	wp, bp := t.Count(WhitePawn), t.Count(BlackPawn)
	if wp != 0 || bp != 0 {
		return false
	}
	wq, bq := t.Count(WhiteQueen), t.Count(BlackQueen)
	wr, br := t.Count(WhiteRook), t.Count(BlackRook)
	wb, bb := t.Count(WhiteBishop), t.Count(BlackBishop)
	wn, bn := t.Count(WhiteKnight), t.Count(BlackKnight)

	if wq+bq+wr+br == 0 {
		if wb+bb == 0 {
			if wn < 3 && bn < 3 {
				return true
			}
		} else if wn+bn == 0 {
			if wb < 2 && bb < 2 {
				return true
			}
		} else if (wn < 3 && bn == 0) || (wb == 1 && wn == 0) {
			if (bn < 3 && wn == 0) || (bb == 1 && bn == 0) {
				return true
			}
		}
	} else if wq+bq == 0 {
		if wr == 1 && br == 1 {
			if wb+wn < 2 && bb+bn < 2 {
				return true
			}
		} else if wr == 1 && br == 0 {
			if wb+wn == 0 && (bb+bn == 1 || bb+bn == 2) {
				return true
			}
		} else if wr == 0 && br == 1 {
			if bb+bn == 0 && (wb+wn == 1 || wb+wn == 2) {
				return true
			}
		}
	}
	return false
}
