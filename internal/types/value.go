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

// Search score constants. Scores are centipawns from the side-to-move
// perspective; mate scores encode the distance to mate in plies so that
// shorter mates compare greater.
const (
	// Mate is the score for delivering checkmate at the current node.
	// A mate found at ply n scores Mate-n.
	Mate = 30_000
	// MateInMax is the threshold above which a score is a mate score.
	MateInMax = Mate - MaxDepth
	// Draw is the score for stalemate and all other draws.
	Draw = 0
	// ScoreNone marks "no score yet"; it fits into the transposition
	// table's 16-bit score field and compares below every real score.
	ScoreNone = -32_001
)

const (
	// MaxDepth bounds the search recursion and all per-ply tables.
	MaxDepth = 128
	// MaxMoves is the capacity reserved for a single position's move list.
	MaxMoves = 256
)

// IsMateScore reports whether sc encodes a mate distance.
func IsMateScore(sc int) bool {
	return sc >= MateInMax || sc <= -MateInMax
}
