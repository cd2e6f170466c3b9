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

// Package transpositiontable implements a transposition table (cache)
// data structure and functionality for a chess engine search.
// The TtTable class is not thread safe and needs to be synchronized
// externally if used from multiple threads. This is especially relevant
// for Resize and Clear which must not be called while searching.
package transpositiontable

import (
	"math"
	"unsafe"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/corvid-chess/corvid/internal/logging"
	. "github.com/corvid-chess/corvid/internal/types"
)

var out = message.NewPrinter(language.English)

const (
	// MaxSizeInMB is the maximal memory usage of the tt.
	MaxSizeInMB = 65_536
	// MB is bytes per megabyte.
	MB = 1_024 * 1_024
)

// TtTable is the transposition table: a fixed contiguous array of entries
// addressed by the low bits of the Zobrist key. Replacement is depth
// preferred -- an entry yields its slot to a different position, or to a
// deeper search of the same position.
type TtTable struct {
	log                *logging.Logger
	data               []TtEntry
	sizeInByte         uint64
	hashKeyMask        uint64
	maxNumberOfEntries uint64
	numberOfEntries    uint64
}

// NewTtTable creates a new TtTable with the given maximum memory usage in
// MB. The number of entries is rounded down to a power of 2 so addressing
// reduces to a bit mask.
func NewTtTable(sizeInMByte int) *TtTable {
	tt := &TtTable{
		log: myLogging.GetLog(),
	}
	tt.Resize(sizeInMByte)
	return tt
}

// Resize resizes the tt table. All entries will be cleared.
func (tt *TtTable) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		tt.log.Error(out.Sprintf("Requested size for TT of %d MB reduced to max of %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	tt.sizeInByte = uint64(sizeInMByte) * MB
	if tt.sizeInByte < TtEntrySize {
		tt.maxNumberOfEntries = 0
		tt.hashKeyMask = 0
	} else {
		tt.maxNumberOfEntries = 1 << uint64(math.Floor(math.Log2(float64(tt.sizeInByte/TtEntrySize))))
		tt.hashKeyMask = tt.maxNumberOfEntries - 1
	}
	tt.sizeInByte = tt.maxNumberOfEntries * TtEntrySize

	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	tt.numberOfEntries = 0

	tt.log.Info(out.Sprintf("TT Size %d MByte, Capacity %d entries (size=%d Byte) (Requested %d MBytes)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, unsafe.Sizeof(TtEntry{}), sizeInMByte))
}

// hash generates the internal index into the data array.
func (tt *TtTable) hash(key uint64) uint64 {
	return key & tt.hashKeyMask
}

// Probe returns the entry for key iff the stored key matches and the
// stored draft is at least depth; otherwise nil (a miss). Entries from a
// shallower search must not short-cut a deeper one.
func (tt *TtTable) Probe(key uint64, depth int) *TtEntry {
	if tt.maxNumberOfEntries == 0 {
		return nil
	}
	e := &tt.data[tt.hash(key)]
	if e.key == key && e.Depth() >= depth {
		return e
	}
	return nil
}

// BestMove returns the stored move for key regardless of depth, for move
// ordering. MoveNone when the slot holds a different position.
func (tt *TtTable) BestMove(key uint64) Move {
	if tt.maxNumberOfEntries == 0 {
		return MoveNone
	}
	e := &tt.data[tt.hash(key)]
	if e.key == key {
		return Move(e.move)
	}
	return MoveNone
}

// Put stores a search result. The slot is overwritten when it holds a
// different position or when the new draft is deeper than the stored one;
// a shallower result for the same position leaves the deeper entry alone.
// Mate scores must already be ply-adjusted via ToTT.
func (tt *TtTable) Put(key uint64, move Move, depth int, score int, flag uint8) {
	if tt.maxNumberOfEntries == 0 {
		return
	}
	e := &tt.data[tt.hash(key)]
	if e.key != key || depth > e.Depth() {
		if e.key == 0 {
			tt.numberOfEntries++
		}
		e.key = key
		e.move = uint16(move.MoveOnly())
		e.score = int16(score)
		e.depth = int8(depth)
		e.flag = flag
	}
}

// Clear clears all entries of the tt.
func (tt *TtTable) Clear() {
	tt.data = make([]TtEntry, tt.maxNumberOfEntries)
	tt.numberOfEntries = 0
}

// Hashfull returns how full the transposition table is in permill as per
// UCI.
func (tt *TtTable) Hashfull() int {
	if tt.maxNumberOfEntries == 0 {
		return 0
	}
	return int((1_000 * tt.numberOfEntries) / tt.maxNumberOfEntries)
}

// Len returns the number of non-empty entries in the tt.
func (tt *TtTable) Len() uint64 {
	return tt.numberOfEntries
}

// String returns a string representation of this TtTable instance.
func (tt *TtTable) String() string {
	return out.Sprintf("TT: size %d MB max entries %d of size %d Bytes entries %d (%d%%)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, unsafe.Sizeof(TtEntry{}),
		tt.numberOfEntries, tt.Hashfull()/10)
}
