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

// Magic holds the fancy-magic-bitboard attack table for a single square.
// The generation algorithm (Carry-Rippler subset enumeration plus a sparse
// xorshift64star random search) is the well-known Stockfish approach; see
// https://www.chessprogramming.org/Magic_Bitboards.
type Magic struct {
	Mask    Bitboard
	Magic   Bitboard
	Attacks []Bitboard
	Shift   uint
}

func (m *Magic) index(occupied Bitboard) uint {
	occ := occupied & m.Mask
	occ *= m.Magic
	occ >>= m.Shift
	return uint(occ)
}

var (
	bishopMagics [SqLength]Magic
	rookMagics   [SqLength]Magic
	bishopTable  []Bitboard
	rookTable    []Bitboard

	bishopDirs = [4]Direction{NorthEast, NorthWest, SouthEast, SouthWest}
	rookDirs   = [4]Direction{North, South, East, West}
)

// BishopAttacks returns the attack set of a bishop on sq given occupancy occ.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	m := &bishopMagics[sq]
	return m.Attacks[m.index(occ)]
}

// RookAttacks returns the attack set of a rook on sq given occupancy occ.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	m := &rookMagics[sq]
	return m.Attacks[m.index(occ)]
}

// QueenAttacks is the union of bishop and rook attacks.
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return BishopAttacks(sq, occ) | RookAttacks(sq, occ)
}

func initMagics() {
	bishopTable = make([]Bitboard, 0x1480)
	rookTable = make([]Bitboard, 0x19000)
	initMagicsFor(&bishopTable, &bishopMagics, &bishopDirs)
	initMagicsFor(&rookTable, &rookMagics, &rookDirs)
}

// initMagicsFor computes all attack tables for one slider type at startup.
// Ported from the Stockfish fancy-magic generator: enumerate every subset
// of the relevant occupancy mask via Carry-Rippler, then search random
// sparse multipliers until one maps every subset to a collision-free index.
func initMagicsFor(table *[]Bitboard, magics *[SqLength]Magic, directions *[4]Direction) {
	seeds := [8]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

	var occupancy, reference [4096]Bitboard
	var epoch [4096]int
	cnt := 0
	size := 0

	for sq := SqA1; sq <= SqH8; sq++ {
		edges := ((Rank1_Bb | Rank8_Bb) &^ sq.RankOf().Bb()) | ((FileA_Bb | FileH_Bb) &^ sq.FileOf().Bb())

		m := &magics[sq]
		m.Mask = slidingAttack(directions, sq, BbZero) &^ edges
		m.Shift = uint(64 - m.Mask.PopCount())

		if sq == SqA1 {
			m.Attacks = *table
		} else {
			m.Attacks = magics[sq-1].Attacks[size:]
		}

		b := Bitboard(0)
		size = 0
		for {
			occupancy[size] = b
			reference[size] = slidingAttack(directions, sq, b)
			size++
			b = (b - m.Mask) & m.Mask
			if b == 0 {
				break
			}
		}

		rng := newPrnG(seeds[sq.RankOf()])

		for i := 0; i < size; {
			for m.Magic = 0; ; {
				m.Magic = Bitboard(rng.sparseRand())
				if ((m.Magic * m.Mask) >> 56).PopCount() < 6 {
					break
				}
			}
			cnt++
			for i = 0; i < size; i++ {
				idx := m.index(occupancy[i])
				if epoch[idx] < cnt {
					epoch[idx] = cnt
					m.Attacks[idx] = reference[i]
				} else if m.Attacks[idx] != reference[i] {
					break
				}
			}
		}
	}
}

// slidingAttack is the slow reference generator used only during table
// construction; never called during search or move generation.
func slidingAttack(directions *[4]Direction, sq Square, occupied Bitboard) Bitboard {
	var attack Bitboard
	for i := 0; i < 4; i++ {
		s := sq
		for {
			n := s.To(directions[i])
			if n == SqNone {
				break
			}
			attack.PushSquare(n)
			if occupied.Has(n) {
				break
			}
			s = n
		}
	}
	return attack
}

// PrnG is the xorshift64star generator used to discover magic numbers;
// dedicated to the public domain by Sebastiano Vigna (2014).
type PrnG struct {
	s uint64
}

func newPrnG(seed uint64) *PrnG {
	return &PrnG{s: seed}
}

func (r *PrnG) rand64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

// sparseRand ANDs three draws together so on average only 1/8th of the
// output bits are set, which the magic search needs to converge quickly.
func (r *PrnG) sparseRand() uint64 {
	return r.rand64() & r.rand64() & r.rand64()
}
