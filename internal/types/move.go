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

// Move packs a move plus its ordering score into a single 32-bit word:
// bits 0-5 from, bits 6-11 to, bits 12-14 promotion piece type, bits 16-31
// the signed ordering score assigned by the move generator. Keeping the
// score alongside the move (rather than a parallel array) lets a stable
// sort key the slice directly.
type Move uint32

const MoveNone Move = 0

// NewMove packs a from/to/promotion triple with a zero score.
func NewMove(from, to Square, promo PieceType) Move {
	return Move(uint32(from) | uint32(to)<<6 | uint32(promo)<<12)
}

func (m Move) From() Square {
	return Square(m & 0x3F)
}

func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

func (m Move) Promo() PieceType {
	return PieceType((m >> 12) & 0x7)
}

func (m Move) IsPromotion() bool {
	return m.Promo() != PtEmpty
}

// Score returns the 16-bit signed ordering score.
func (m Move) Score() int16 {
	return int16(m >> 16)
}

// WithScore returns a copy of m carrying the given ordering score.
func (m Move) WithScore(s int16) Move {
	return (m &^ (Move(0xFFFF) << 16)) | Move(uint16(s))<<16
}

// MoveOnly strips the score, useful when comparing moves for equality
// (e.g. against a TT move) regardless of how they were scored.
func (m Move) MoveOnly() Move {
	return m & 0xFFFF
}

func (m Move) IsValid() bool {
	return m.MoveOnly() != MoveNone
}

var promoChars = map[PieceType]byte{Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q'}

// String returns the long-algebraic UCI move literal, e.g. "e2e4", "a7a8q".
func (m Move) String() string {
	if !m.IsValid() {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if c, ok := promoChars[m.Promo()]; ok {
		s += string(c)
	}
	return s
}

var promoFromChar = map[byte]PieceType{'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen}

// ParseMove parses a UCI long-algebraic move literal ("e2e4", "e7e8q").
// It does not validate legality, only shape.
func ParseMove(s string) (Move, bool) {
	if len(s) < 4 || len(s) > 5 {
		return MoveNone, false
	}
	from, ok := ParseSquare(s[0:2])
	if !ok {
		return MoveNone, false
	}
	to, ok := ParseSquare(s[2:4])
	if !ok {
		return MoveNone, false
	}
	promo := PtEmpty
	if len(s) == 5 {
		pt, ok := promoFromChar[s[4]]
		if !ok {
			return MoveNone, false
		}
		promo = pt
	}
	return NewMove(from, to, promo), true
}
