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

// Package moveslice provides helper functionality for slices
// of type Move (chess moves).
package moveslice

import (
	"fmt"
	"strings"

	. "github.com/corvid-chess/corvid/internal/types"
)

// MoveSlice represents a data structure (go slice) for Move.
type MoveSlice []Move

// NewMoveSlice creates a new move slice with the given capacity
// and 0 elements.
func NewMoveSlice(cap int) *MoveSlice {
	moves := make([]Move, 0, cap)
	return (*MoveSlice)(&moves)
}

// Len returns the number of moves currently stored in the slice.
func (ms *MoveSlice) Len() int {
	return len(*ms)
}

// PushBack appends a move at the end of the slice.
func (ms *MoveSlice) PushBack(m Move) {
	*ms = append(*ms, m)
}

// PopBack removes and returns the move from the back of the slice.
// If the slice is empty, the call panics.
func (ms *MoveSlice) PopBack() Move {
	if len(*ms) == 0 {
		panic("MoveSlice: PopBack() called on empty slice")
	}
	backMove := (*ms)[len(*ms)-1]
	*ms = (*ms)[:len(*ms)-1]
	return backMove
}

// Front returns the first move of the slice, or MoveNone when empty.
func (ms *MoveSlice) Front() Move {
	if len(*ms) == 0 {
		return MoveNone
	}
	return (*ms)[0]
}

// Back returns the last move of the slice, or MoveNone when empty.
func (ms *MoveSlice) Back() Move {
	if len(*ms) == 0 {
		return MoveNone
	}
	return (*ms)[len(*ms)-1]
}

// At returns the move at index i without removing it.
func (ms *MoveSlice) At(i int) Move {
	return (*ms)[i]
}

// Set puts a move at index i in the slice.
func (ms *MoveSlice) Set(i int, move Move) {
	(*ms)[i] = move
}

// Clear removes all moves from the slice, but retains the current capacity.
// This is useful when repeatedly reusing the slice at high frequency to
// avoid GC during reuse.
func (ms *MoveSlice) Clear() {
	*ms = (*ms)[:0]
}

// Replace sets the slice to head followed by all moves of tail, reusing the
// underlying array. The search uses this to roll a child variation up into
// the parent's principal variation.
func (ms *MoveSlice) Replace(head Move, tail *MoveSlice) {
	ms.Clear()
	ms.PushBack(head)
	*ms = append(*ms, *tail...)
}

// Clone copies the MoveSlice into a newly created MoveSlice (deep copy).
func (ms *MoveSlice) Clone() *MoveSlice {
	dest := make([]Move, ms.Len(), cap(*ms))
	copy(dest, *ms)
	return (*MoveSlice)(&dest)
}

// Sort sorts moves from highest to lowest ordering score. It uses a stable
// insertion sort as move lists are mostly pre-sorted and small, and
// stability keeps generation order among equally scored moves.
func (ms *MoveSlice) Sort() {
	l := len(*ms)
	for i := 1; i < l; i++ {
		tmp := (*ms)[i]
		j := i
		for j > 0 && tmp.Score() > (*ms)[j-1].Score() {
			(*ms)[j] = (*ms)[j-1]
			j--
		}
		(*ms)[j] = tmp
	}
}

// String returns a string representation of a slice of moves.
func (ms *MoveSlice) String() string {
	var os strings.Builder
	os.WriteString(fmt.Sprintf("MoveList: [%d] { ", len(*ms)))
	for i, m := range *ms {
		if i > 0 {
			os.WriteString(", ")
		}
		os.WriteString(m.String())
	}
	os.WriteString(" }")
	return os.String()
}

// StringUci returns a string with a space separated list of all moves in
// the list in UCI protocol format.
func (ms *MoveSlice) StringUci() string {
	var os strings.Builder
	for i, m := range *ms {
		if i > 0 {
			os.WriteString(" ")
		}
		os.WriteString(m.String())
	}
	return os.String()
}
