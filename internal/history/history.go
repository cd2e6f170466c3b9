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

// Package history provides data structures and functionality to manage
// history driven move tables (killer moves, history counters and the
// per-ply hash move) which the move generator uses for move ordering.
package history

import (
	. "github.com/corvid-chess/corvid/internal/types"
)

// historyIndex folds a piece and a destination square into the compact
// index of the history table.
func historyIndex(p Piece, to Square) int {
	return int(p) | int(to)<<4
}

// History is updated during search and read by the move generator to order
// quiet moves. Killer moves and the hash move are kept per ply; the history
// counters are shared across the whole search. A History belongs to one
// search and is not safe for concurrent use.
type History struct {
	history [1024]int
	killers [2][MaxDepth]Move
	ttMove  [MaxDepth]Move

	// sply is the current search ply, maintained by Push/Pop from the
	// search as it descends and unwinds.
	sply int
}

// NewHistory creates a new History instance.
func NewHistory() *History {
	return &History{}
}

// Clear resets every table and the search ply.
func (h *History) Clear() {
	*h = History{}
}

// Push descends one search ply.
func (h *History) Push() {
	h.sply++
}

// Pop unwinds one search ply.
func (h *History) Pop() {
	h.sply--
}

// Ply returns the current search ply.
func (h *History) Ply() int {
	return h.sply
}

// TTMove returns the hash move registered for the current ply.
func (h *History) TTMove() Move {
	return h.ttMove[h.sply]
}

// SetTTMove registers the hash move for the current ply so the generator
// scores it first.
func (h *History) SetTTMove(m Move) {
	h.ttMove[h.sply] = m.MoveOnly()
}

// Killer returns killer slot i (0 or 1) for the current ply.
func (h *History) Killer(i int) Move {
	return h.killers[i][h.sply]
}

// AddKiller stores a quiet move that caused a beta cutoff. The first slot
// rotates into the second; a move already stored is not duplicated.
func (h *History) AddKiller(m Move) {
	m = m.MoveOnly()
	if h.killers[0][h.sply] != m && h.killers[1][h.sply] != m {
		h.killers[1][h.sply] = h.killers[0][h.sply]
		h.killers[0][h.sply] = m
	}
}

// ClearDeeper wipes killers two and more plies below the current one.
// Killers from an earlier branch of the tree at those depths would
// otherwise be stale.
func (h *History) ClearDeeper() {
	for i := h.sply + 2; i < MaxDepth; i++ {
		h.killers[0][i] = MoveNone
		h.killers[1][i] = MoveNone
	}
}

// AddHistory applies a bounded update to the history counter of (piece,
// to-square). The damping term keeps every counter within +-30000, which
// also keeps it within the 16-bit move ordering score.
func (h *History) AddHistory(m Move, p Piece, sc int) {
	idx := historyIndex(p, m.To())
	abs := sc
	if abs < 0 {
		abs = -abs
	}
	h.history[idx] += sc - h.history[idx]*abs/30_000
}

// HistoryScore returns the current counter for (piece, to-square).
func (h *History) HistoryScore(m Move, p Piece) int {
	return h.history[historyIndex(p, m.To())]
}

// Update processes the outcome of searching a quiet move: a move improving
// alpha earns depth*depth history; one causing a cutoff also becomes a
// killer; a failing killer is evicted from its slot.
func (h *History) Update(m Move, p Piece, depth, score, alpha, beta int) {
	if score > alpha {
		h.AddHistory(m, p, depth*depth)
		if score >= beta {
			h.AddKiller(m)
		}
		return
	}
	m = m.MoveOnly()
	if h.killers[0][h.sply] == m {
		h.killers[0][h.sply] = MoveNone
	} else if h.killers[1][h.sply] == m {
		h.killers[1][h.sply] = MoveNone
	}
}
