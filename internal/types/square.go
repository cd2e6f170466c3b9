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

// Square is a board square index 0..63, file-major: sq = rank*8 + file,
// A1 = 0, H8 = 63.
type Square int8

const (
	SqA1 Square = iota
	SqB1
	SqC1
	SqD1
	SqE1
	SqF1
	SqG1
	SqH1
	SqA2
	SqB2
	SqC2
	SqD2
	SqE2
	SqF2
	SqG2
	SqH2
	SqA3
	SqB3
	SqC3
	SqD3
	SqE3
	SqF3
	SqG3
	SqH3
	SqA4
	SqB4
	SqC4
	SqD4
	SqE4
	SqF4
	SqG4
	SqH4
	SqA5
	SqB5
	SqC5
	SqD5
	SqE5
	SqF5
	SqG5
	SqH5
	SqA6
	SqB6
	SqC6
	SqD6
	SqE6
	SqF6
	SqG6
	SqH6
	SqA7
	SqB7
	SqC7
	SqD7
	SqE7
	SqF7
	SqG7
	SqH7
	SqA8
	SqB8
	SqC8
	SqD8
	SqE8
	SqF8
	SqG8
	SqH8
	SqNone
	SqLength = 64
)

// MakeSquare builds a square from 0-based file and rank.
func MakeSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// File returns the 0-based file (a=0..h=7) of the square.
func (s Square) File() int {
	return int(s) & 7
}

// Rank returns the 0-based rank (1=0..8=7) of the square.
func (s Square) Rank() int {
	return int(s) >> 3
}

// FlipRank mirrors the square vertically (a1 <-> a8), used when indexing
// FEN ranks, which run from rank 8 down to rank 1.
func (s Square) FlipRank() Square {
	return s ^ 0b111000
}

var fileChars = "abcdefgh"

// String returns algebraic notation, e.g. "e4".
func (s Square) String() string {
	if s < SqA1 || s > SqH8 {
		return "-"
	}
	return string(fileChars[s.File()]) + string(rune('1'+s.Rank()))
}

// ParseSquare parses algebraic notation ("e4") into a Square.
func ParseSquare(str string) (Square, bool) {
	if len(str) != 2 {
		return SqNone, false
	}
	file := int(str[0] - 'a')
	rank := int(str[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return SqNone, false
	}
	return MakeSquare(file, rank), true
}
