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

// Package zobrist builds and exposes the process-wide Zobrist key tables
// used to incrementally hash a Position. The tables are immutable random
// data generated once at startup from a fixed seed, so hashing is
// deterministic across runs -- required for the perft and search test
// oracles to be reproducible.
package zobrist

import (
	"math/bits"
	"math/rand"

	"github.com/corvid-chess/corvid/internal/types"
)

var (
	// PieceKey[piece][sq] is the random key contributed by a piece sitting
	// on a square.
	PieceKey [types.PieceLength][types.SqLength]uint64
	// MoveKey[piece][from][to] is the XOR delta for moving piece from
	// 'from' to 'to', derived once from PieceKey so make/undo never has to
	// look up two separate entries.
	MoveKey [types.PieceLength][types.SqLength][types.SqLength]uint64
	// CastleKey[cr] mixes the 16 possible castling-rights combinations into
	// the position key. Distinct rights states hash to distinct keys,
	// which is all that is required.
	CastleKey [16]uint64
	// EpKey[side][file+1] mixes the en-passant file into the key; index 0
	// means "no en-passant square".
	EpKey [types.ColorLength][9]uint64
)

var initialized bool

func init() {
	Init()
}

// Init draws every Zobrist random value from a fixed-seed generator. Each
// draw is rejection-sampled to keep its bit population in [3, 61] -- values
// with almost all bits zero or one XOR together poorly and increase
// collision risk between otherwise-distinct positions.
func Init() {
	if initialized {
		return
	}
	initialized = true

	rng := rand.New(rand.NewSource(0xC0FFEE))
	draw := func() uint64 {
		for {
			v := rng.Uint64()
			p := bits.OnesCount64(v)
			if p >= 3 && p <= 61 {
				return v
			}
		}
	}

	for p := types.Piece(0); p < types.PieceLength; p++ {
		for sq := types.SqA1; sq <= types.SqH8; sq++ {
			PieceKey[p][sq] = draw()
		}
	}
	for p := types.Piece(0); p < types.PieceLength; p++ {
		for from := types.SqA1; from <= types.SqH8; from++ {
			for to := types.SqA1; to <= types.SqH8; to++ {
				MoveKey[p][from][to] = PieceKey[p][from] ^ PieceKey[p][to]
			}
		}
	}
	for cr := 0; cr < 16; cr++ {
		CastleKey[cr] = draw()
	}
	for c := types.Black; c <= types.White; c++ {
		for f := 0; f < 9; f++ {
			EpKey[c][f] = draw()
		}
	}
}
