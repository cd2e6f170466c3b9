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
	. "github.com/corvid-chess/corvid/internal/types"
)

// Bound flags for stored scores. A lower bound comes from a fail-high, an
// upper bound from a fail-low; an exact score carries both bits.
const (
	FlagUB uint8 = 1
	FlagLB uint8 = 2
	FlagXB uint8 = FlagUB | FlagLB
	FlagPV uint8 = 4
)

// TtEntry is the data structure for each entry in the transposition
// table. Each entry is 16 bytes.
type TtEntry struct {
	key   uint64 // Zobrist key of the stored position
	move  uint16 // best move found, without its ordering score
	score int16  // search score, mate distances ply-adjusted via ToTT
	depth int8   // draft the score was searched to
	flag  uint8  // bound type of the score
}

// TtEntrySize is the size in bytes for each TtEntry.
const TtEntrySize = 16

// Key returns the entry's full Zobrist key.
func (e *TtEntry) Key() uint64 {
	return e.key
}

// Move returns the stored best move (MoveNone if none was stored).
func (e *TtEntry) Move() Move {
	return Move(e.move)
}

// Score returns the stored score as written; callers pass it through
// FromTT to re-anchor mate distances to the probing ply.
func (e *TtEntry) Score() int {
	return int(e.score)
}

// Depth returns the draft the entry was searched to.
func (e *TtEntry) Depth() int {
	return int(e.depth)
}

// Flag returns the entry's bound type.
func (e *TtEntry) Flag() uint8 {
	return e.flag
}

// ToTT adjusts a score for storing: mate scores are made relative to the
// current node rather than the root, so an entry reused at a different
// ply still encodes the correct distance to mate.
func ToTT(sc, ply int) int {
	if sc >= MateInMax {
		return sc + ply
	}
	if sc <= -MateInMax {
		return sc - ply
	}
	return sc
}

// FromTT is the inverse of ToTT. When the remaining 50-move budget cannot
// accommodate the mate distance the score is clamped just below a proven
// mate, preventing a drawable line from being reported as forced mate.
func FromTT(sc, ply, r50 int) int {
	if sc == ScoreNone {
		return ScoreNone
	}
	if sc >= MateInMax {
		if Mate-sc > 99-r50 {
			return MateInMax - 1
		}
		return sc - ply
	}
	if sc <= -MateInMax {
		if Mate+sc > 99-r50 {
			return -MateInMax + 1
		}
		return sc + ply
	}
	return sc
}
