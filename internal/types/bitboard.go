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

import "math/bits"

// Bitboard is a 64-bit mask, one bit per square, A1 at bit 0, H8 at bit 63.
type Bitboard uint64

const (
	BbZero Bitboard = 0
	BbAll  Bitboard = 0xFFFFFFFFFFFFFFFF
)

// Bb returns the singleton bitboard for a square.
func (s Square) Bb() Bitboard {
	return Bitboard(1) << uint(s)
}

// IsValid reports whether the square lies on the board.
func (s Square) IsValid() bool {
	return s >= SqA1 && s <= SqH8
}

// Has reports whether sq is set in b.
func (b Bitboard) Has(sq Square) bool {
	return b&sq.Bb() != 0
}

// PushSquare sets sq in b.
func (b *Bitboard) PushSquare(sq Square) {
	*b |= sq.Bb()
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// Lsb returns the index of the least significant set bit, or SqNone if empty.
func (b Bitboard) Lsb() Square {
	if b == 0 {
		return SqNone
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// Msb returns the index of the most significant set bit, or SqNone if empty.
func (b Bitboard) Msb() Square {
	if b == 0 {
		return SqNone
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLsb clears and returns the least significant set bit.
func (b *Bitboard) PopLsb() Square {
	sq := b.Lsb()
	*b &= *b - 1
	return sq
}

// PushPop is the index of a given bit within the set, i.e. popcount of the
// bits below it (used for "index of this bit within set" style lookups).
func (b Bitboard) PushPop(sq Square) int {
	return (b & (sq.Bb() - 1)).PopCount()
}

// ShiftUp shifts the board one rank toward the given color's advancing
// direction: up (towards rank 8) for White, down for Black.
func (b Bitboard) ShiftUp(c Color) Bitboard {
	if c == White {
		return b << 8
	}
	return b >> 8
}

// ShiftDown is the inverse of ShiftUp.
func (b Bitboard) ShiftDown(c Color) Bitboard {
	return b.ShiftUp(c.Flip())
}

func (b Bitboard) String() string {
	var out [64 + 8]byte
	n := 0
	for r := 7; r >= 0; r-- {
		for f := 0; f < 8; f++ {
			sq := MakeSquare(f, r)
			if b.Has(sq) {
				out[n] = '1'
			} else {
				out[n] = '.'
			}
			n++
		}
		out[n] = '\n'
		n++
	}
	return string(out[:n])
}

// Direction is a step on the square index, expressed as a signed square
// delta; To() rejects wrap-around using the file delta.
type Direction int8

const (
	North     Direction = 8
	South     Direction = -8
	East      Direction = 1
	West      Direction = -1
	NorthEast Direction = 9
	NorthWest Direction = 7
	SouthEast Direction = -7
	SouthWest Direction = -9
)

// To steps sq one square in direction d, returning SqNone if off-board.
func (s Square) To(d Direction) Square {
	t := Square(int8(s) + int8(d))
	if t < SqA1 || t > SqH8 {
		return SqNone
	}
	fileDelta := t.File() - s.File()
	switch d {
	case North, South:
		if fileDelta != 0 {
			return SqNone
		}
	case East, NorthEast, SouthEast:
		if fileDelta != 1 {
			return SqNone
		}
	case West, NorthWest, SouthWest:
		if fileDelta != -1 {
			return SqNone
		}
	}
	return t
}

// SquareDistance is the Chebyshev distance between two squares.
func SquareDistance(a, b Square) int {
	df := a.File() - b.File()
	if df < 0 {
		df = -df
	}
	dr := a.Rank() - b.Rank()
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}

// Rank and File as small int types, used for mask lookups.
type Rank int8
type File int8

func (s Square) RankOf() Rank { return Rank(s.Rank()) }
func (s Square) FileOf() File { return File(s.File()) }

func (r Rank) Bb() Bitboard { return RankMaskBb[r] }
func (f File) Bb() Bitboard { return FileMaskBb[f] }

var (
	FileMaskBb [8]Bitboard
	RankMaskBb [8]Bitboard

	FileA_Bb, FileH_Bb Bitboard
	Rank1_Bb, Rank8_Bb Bitboard
	Rank2_Bb, Rank7_Bb Bitboard

	// KingMask/KnightMask are the non-sliding step-attack tables.
	KingMask   [SqLength]Bitboard
	KnightMask [SqLength]Bitboard

	// PawnAttackMask[c][sq] is the set of squares a pawn of color c on sq attacks.
	PawnAttackMask [ColorLength][SqLength]Bitboard
	// PawnPushMask[c][sq] is the set of single+double push destinations,
	// unmasked by occupancy (occupancy masking happens at generation time).
	PawnPushMask [ColorLength][SqLength]Bitboard

	// Between[a][b] are the squares strictly between a and b along a
	// file/rank/diagonal, or BbZero if not aligned.
	Between [SqLength][SqLength]Bitboard
	// Line[a][b] is the full line through a and b (both ends included) if
	// aligned, else BbZero.
	Line [SqLength][SqLength]Bitboard

	// Pawn-structure masks, indexed [color][square].
	PassedMask      [ColorLength][SqLength]Bitboard
	IsolatedMask    [SqLength]Bitboard
	ForwardFileMask [ColorLength][SqLength]Bitboard
	ForwardRankMask [ColorLength][SqLength]Bitboard

	// KingDefMask[sq] is the defensive region around a king on sq: every
	// square within Chebyshev distance 2, the king's own square excluded.
	KingDefMask [SqLength]Bitboard
)

var initialized bool

func init() {
	Init()
}

// Init builds every precomputed table: rank/file masks, step-attack tables,
// between/line tables, pawn-structure masks and the magic bitboard attack
// tables. It runs once from the package init and is idempotent, so explicit
// calls from tests are harmless.
func Init() {
	if initialized {
		return
	}
	initialized = true

	for f := 0; f < 8; f++ {
		var bb Bitboard
		for r := 0; r < 8; r++ {
			bb.PushSquare(MakeSquare(f, r))
		}
		FileMaskBb[f] = bb
	}
	for r := 0; r < 8; r++ {
		var bb Bitboard
		for f := 0; f < 8; f++ {
			bb.PushSquare(MakeSquare(f, r))
		}
		RankMaskBb[r] = bb
	}
	FileA_Bb, FileH_Bb = FileMaskBb[0], FileMaskBb[7]
	Rank1_Bb, Rank8_Bb = RankMaskBb[0], RankMaskBb[7]
	Rank2_Bb, Rank7_Bb = RankMaskBb[1], RankMaskBb[6]

	knightSteps := []struct{ df, dr int }{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	for sq := SqA1; sq <= SqH8; sq++ {
		var king, knight Bitboard
		for df := -1; df <= 1; df++ {
			for dr := -1; dr <= 1; dr++ {
				if df == 0 && dr == 0 {
					continue
				}
				nf, nr := sq.File()+df, sq.Rank()+dr
				if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
					continue
				}
				king.PushSquare(MakeSquare(nf, nr))
			}
		}
		for _, st := range knightSteps {
			nf, nr := sq.File()+st.df, sq.Rank()+st.dr
			if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
				continue
			}
			knight.PushSquare(MakeSquare(nf, nr))
		}
		KingMask[sq] = king
		KnightMask[sq] = knight

		var wAtk, bAtk Bitboard
		if f := sq.File() - 1; f >= 0 && sq.Rank() < 7 {
			wAtk.PushSquare(MakeSquare(f, sq.Rank()+1))
		}
		if f := sq.File() + 1; f <= 7 && sq.Rank() < 7 {
			wAtk.PushSquare(MakeSquare(f, sq.Rank()+1))
		}
		if f := sq.File() - 1; f >= 0 && sq.Rank() > 0 {
			bAtk.PushSquare(MakeSquare(f, sq.Rank()-1))
		}
		if f := sq.File() + 1; f <= 7 && sq.Rank() > 0 {
			bAtk.PushSquare(MakeSquare(f, sq.Rank()-1))
		}
		PawnAttackMask[White][sq] = wAtk
		PawnAttackMask[Black][sq] = bAtk

		var wPush, bPush Bitboard
		if sq.Rank() < 7 {
			wPush.PushSquare(MakeSquare(sq.File(), sq.Rank()+1))
			if sq.Rank() == 1 {
				wPush.PushSquare(MakeSquare(sq.File(), sq.Rank()+2))
			}
		}
		if sq.Rank() > 0 {
			bPush.PushSquare(MakeSquare(sq.File(), sq.Rank()-1))
			if sq.Rank() == 6 {
				bPush.PushSquare(MakeSquare(sq.File(), sq.Rank()-2))
			}
		}
		PawnPushMask[White][sq] = wPush
		PawnPushMask[Black][sq] = bPush
	}

	for sq := SqA1; sq <= SqH8; sq++ {
		var def Bitboard
		for t := SqA1; t <= SqH8; t++ {
			if t != sq && SquareDistance(sq, t) <= 2 {
				def.PushSquare(t)
			}
		}
		KingDefMask[sq] = def
	}

	initMagics()
	initBetweenAndLine()
	initPawnStructureMasks()
}

func initBetweenAndLine() {
	dirs := [8]Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}
	for a := SqA1; a <= SqH8; a++ {
		for b := SqA1; b <= SqH8; b++ {
			if a == b {
				continue
			}
			for _, d := range dirs {
				s := a
				var between Bitboard
				found := false
				for {
					n := s.To(d)
					if n == SqNone {
						break
					}
					if n == b {
						found = true
						break
					}
					between.PushSquare(n)
					s = n
				}
				if !found {
					continue
				}
				Between[a][b] = between
				line := between
				line.PushSquare(a)
				line.PushSquare(b)
				s2 := a
				for {
					p := s2.To(-d)
					if p == SqNone {
						break
					}
					line.PushSquare(p)
					s2 = p
				}
				s2 = b
				for {
					p := s2.To(d)
					if p == SqNone {
						break
					}
					line.PushSquare(p)
					s2 = p
				}
				Line[a][b] = line
				break
			}
		}
	}
}

func initPawnStructureMasks() {
	for sq := SqA1; sq <= SqH8; sq++ {
		f, r := sq.File(), sq.Rank()

		var isolated Bitboard
		if f > 0 {
			isolated |= FileMaskBb[f-1]
		}
		if f < 7 {
			isolated |= FileMaskBb[f+1]
		}
		IsolatedMask[sq] = isolated

		var fwdFileW, fwdFileB Bitboard
		for rr := r + 1; rr < 8; rr++ {
			fwdFileW.PushSquare(MakeSquare(f, rr))
		}
		for rr := r - 1; rr >= 0; rr-- {
			fwdFileB.PushSquare(MakeSquare(f, rr))
		}
		ForwardFileMask[White][sq] = fwdFileW
		ForwardFileMask[Black][sq] = fwdFileB

		var fwdRankW, fwdRankB Bitboard
		for ff := 0; ff < 8; ff++ {
			for rr := r + 1; rr < 8; rr++ {
				fwdRankW.PushSquare(MakeSquare(ff, rr))
			}
			for rr := r - 1; rr >= 0; rr-- {
				fwdRankB.PushSquare(MakeSquare(ff, rr))
			}
		}
		ForwardRankMask[White][sq] = fwdRankW
		ForwardRankMask[Black][sq] = fwdRankB

		PassedMask[White][sq] = fwdFileW | isolated&fwdRankW
		PassedMask[Black][sq] = fwdFileB | isolated&fwdRankB
	}
}
