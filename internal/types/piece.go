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

// PieceType is the type of a piece, independent of color.
type PieceType int8

const (
	PtEmpty PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	PtLength
)

var pieceTypeChars = " PNBRQK"

func (pt PieceType) String() string {
	if pt < PtEmpty || pt >= PtLength {
		return "?"
	}
	return string(pieceTypeChars[pt])
}

// Piece packs color and type into a single small integer, 0..13.
// Bit 0 is the color (0=black, 1=white); bits 1..3 are the PieceType.
// This layout is load-bearing: Zobrist keys, the mailbox and move scoring
// all index by raw Piece value.
type Piece int8

const (
	PieceEmpty Piece = 0
	BlackPawn  Piece = 2
	WhitePawn  Piece = 3
	BlackKnight Piece = 4
	WhiteKnight Piece = 5
	BlackBishop Piece = 6
	WhiteBishop Piece = 7
	BlackRook   Piece = 8
	WhiteRook   Piece = 9
	BlackQueen  Piece = 10
	WhiteQueen  Piece = 11
	BlackKing   Piece = 12
	WhiteKing   Piece = 13
	PieceLength = 14
)

// MakePiece combines a color and a type into a Piece.
func MakePiece(c Color, pt PieceType) Piece {
	return Piece(int8(pt)<<1 | int8(c))
}

// ColorOf returns the color encoded in bit 0.
func (p Piece) ColorOf() Color {
	return Color(p & 1)
}

// TypeOf returns the piece type encoded in bits 1..3.
func (p Piece) TypeOf() PieceType {
	return PieceType(p >> 1)
}

// IsEmpty reports whether the square is unoccupied.
func (p Piece) IsEmpty() bool {
	return p == PieceEmpty
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "-"
	}
	s := p.TypeOf().String()
	if p.ColorOf() == Black {
		return string(rune(s[0] + 32))
	}
	return s
}

// PieceValue is the static material value table used by SEE and by the
// quiescence search's losing-capture filter, indexed by PieceType.
var PieceValue = [PtLength]int{
	PtEmpty: 0,
	Pawn:    100,
	Knight:  320,
	Bishop:  330,
	Rook:    500,
	Queen:   900,
	King:    20000,
}

// ParsePieceChar maps a FEN letter to a Piece, used by the FEN parser.
func ParsePieceChar(c byte) (Piece, bool) {
	return pieceFromChar(c)
}

// FormatPieceChar is the inverse of ParsePieceChar, used by FEN serialization.
func FormatPieceChar(p Piece) byte {
	return pieceToChar(p)
}

// pieceFromChar maps a FEN letter to a Piece, used by the FEN parser.
func pieceFromChar(c byte) (Piece, bool) {
	var pt PieceType
	var col Color
	switch c {
	case 'P':
		pt, col = Pawn, White
	case 'N':
		pt, col = Knight, White
	case 'B':
		pt, col = Bishop, White
	case 'R':
		pt, col = Rook, White
	case 'Q':
		pt, col = Queen, White
	case 'K':
		pt, col = King, White
	case 'p':
		pt, col = Pawn, Black
	case 'n':
		pt, col = Knight, Black
	case 'b':
		pt, col = Bishop, Black
	case 'r':
		pt, col = Rook, Black
	case 'q':
		pt, col = Queen, Black
	case 'k':
		pt, col = King, Black
	default:
		return PieceEmpty, false
	}
	return MakePiece(col, pt), true
}

// pieceToChar is the inverse of pieceFromChar, used by FEN serialization.
func pieceToChar(p Piece) byte {
	c := pieceTypeChars[p.TypeOf()]
	if p.ColorOf() == Black {
		c += 32
	}
	return c
}
