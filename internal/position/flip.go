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

package position

import (
	"github.com/corvid-chess/corvid/internal/pst"
	. "github.com/corvid-chess/corvid/internal/types"
	"github.com/corvid-chess/corvid/internal/zobrist"
)

// Flip mirrors the position vertically and swaps the colors of every piece,
// castling right and the side to move. The resulting position is the exact
// color-mirror of the original, which evaluation symmetry tests rely on.
// The game history is discarded; only the current board state survives.
func (p *Position) Flip() {
	var board [SqLength]Piece
	for sq := SqA1; sq <= SqH8; sq++ {
		pc := p.board[sq]
		if pc == PieceEmpty {
			continue
		}
		board[sq.FlipRank()] = MakePiece(pc.ColorOf().Flip(), pc.TypeOf())
	}

	top := p.top()
	ep := top.EP
	if ep != SqNone {
		ep = ep.FlipRank()
	}

	var cr CastlingRights
	if top.CR.Has(WhiteOO) {
		cr |= BlackOO
	}
	if top.CR.Has(WhiteOOO) {
		cr |= BlackOOO
	}
	if top.CR.Has(BlackOO) {
		cr |= WhiteOO
	}
	if top.CR.Has(BlackOOO) {
		cr |= WhiteOOO
	}

	side := p.side.Flip()
	r50 := top.R50

	p.board = [SqLength]Piece{}
	p.bb = [PtLength]Bitboard{}
	p.colorBB = [ColorLength]Bitboard{}
	p.pst = pst.Table{}
	for sq := SqA1; sq <= SqH8; sq++ {
		if board[sq] != PieceEmpty {
			p.put(board[sq], sq)
		}
	}
	p.side = side
	p.moves = p.moves[:0]
	p.captured = p.captured[:0]

	key := p.recomputeKeyFromScratch() ^ zobrist.CastleKey[cr]
	if ep != SqNone {
		key ^= zobrist.EpKey[side][ep.File()+1]
	}
	p.states = append(p.states[:0], State{Key: key, EP: ep, CR: cr, R50: r50})
}
