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

// CastlingRights packs the four independent castling flags into one value.
type CastlingRights uint8

const (
	WhiteOO CastlingRights = 1 << iota
	WhiteOOO
	BlackOO
	BlackOOO
	NoCastling   CastlingRights = 0
	AnyCastling  CastlingRights = WhiteOO | WhiteOOO | BlackOO | BlackOOO
)

func (cr CastlingRights) Has(f CastlingRights) bool {
	return cr&f != 0
}

func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr.Has(WhiteOO) {
		s += "K"
	}
	if cr.Has(WhiteOOO) {
		s += "Q"
	}
	if cr.Has(BlackOO) {
		s += "k"
	}
	if cr.Has(BlackOOO) {
		s += "q"
	}
	return s
}

// CastlingRightsMask is the per-square revocation mask CR[64]: on any move
// new_cr = cr & CR[from] & CR[to]. A square not involved in castling maps
// to AnyCastling (no revocation).
var CastlingRightsMask [SqLength]CastlingRights

func init() {
	for sq := range CastlingRightsMask {
		CastlingRightsMask[sq] = AnyCastling
	}
	CastlingRightsMask[SqE1] &^= WhiteOO | WhiteOOO
	CastlingRightsMask[SqA1] &^= WhiteOOO
	CastlingRightsMask[SqH1] &^= WhiteOO
	CastlingRightsMask[SqE8] &^= BlackOO | BlackOOO
	CastlingRightsMask[SqA8] &^= BlackOOO
	CastlingRightsMask[SqH8] &^= BlackOO
}

// ParseCastlingRights parses the FEN castling field ("KQkq" or "-").
func ParseCastlingRights(s string) CastlingRights {
	var cr CastlingRights
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'K':
			cr |= WhiteOO
		case 'Q':
			cr |= WhiteOOO
		case 'k':
			cr |= BlackOO
		case 'q':
			cr |= BlackOOO
		}
	}
	return cr
}
