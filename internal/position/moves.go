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
	. "github.com/corvid-chess/corvid/internal/types"
)

// This file holds the raw per-square move providers the move generator is
// built on. They return pseudolegal destination sets only; king safety is
// decided centrally by MakeMove.

// PawnPushes returns the single and double push destinations of a pawn of
// color c on sq. The double push is blocked whenever the single push is,
// via the occ|occ<<8 shift idiom.
func (p *Position) PawnPushes(c Color, sq Square) Bitboard {
	all := p.Occ() ^ sq.Bb()
	if c == White {
		return PawnPushMask[White][sq] &^ (all | all<<8)
	}
	return PawnPushMask[Black][sq] &^ (all | all>>8)
}

// PawnCaptures returns the capture destinations of a pawn of color c on sq,
// including the en-passant square when set.
func (p *Position) PawnCaptures(c Color, sq Square) Bitboard {
	targets := p.ColorBB(c.Flip())
	if ep := p.EP(); ep != SqNone {
		targets |= ep.Bb()
	}
	return PawnAttackMask[c][sq] & targets
}

// KnightMoves returns knight destinations excluding own pieces.
func (p *Position) KnightMoves(c Color, sq Square) Bitboard {
	return KnightMask[sq] &^ p.ColorBB(c)
}

// BishopMoves returns bishop destinations excluding own pieces.
func (p *Position) BishopMoves(c Color, sq Square) Bitboard {
	return BishopAttacks(sq, p.Occ()) &^ p.ColorBB(c)
}

// RookMoves returns rook destinations excluding own pieces.
func (p *Position) RookMoves(c Color, sq Square) Bitboard {
	return RookAttacks(sq, p.Occ()) &^ p.ColorBB(c)
}

// QueenMoves returns queen destinations excluding own pieces.
func (p *Position) QueenMoves(c Color, sq Square) Bitboard {
	return QueenAttacks(sq, p.Occ()) &^ p.ColorBB(c)
}

// Squares that must be empty between king and rook, and the king's castle
// destinations, per color. Castling through or out of check is rejected
// here; the destination square's safety is left to the MakeMove legality
// filter like every other king move.
var (
	castleEmptyOO  = [ColorLength]Bitboard{SqF8.Bb() | SqG8.Bb(), SqF1.Bb() | SqG1.Bb()}
	castleEmptyOOO = [ColorLength]Bitboard{SqB8.Bb() | SqC8.Bb() | SqD8.Bb(), SqB1.Bb() | SqC1.Bb() | SqD1.Bb()}
	castleToOO     = [ColorLength]Square{SqG8, SqG1}
	castleToOOO    = [ColorLength]Square{SqC8, SqC1}
	castleRightOO  = [ColorLength]CastlingRights{BlackOO, WhiteOO}
	castleRightOOO = [ColorLength]CastlingRights{BlackOOO, WhiteOOO}
)

// KingMoves returns king step destinations plus any currently possible
// castle destination for color c's king on sq.
func (p *Position) KingMoves(c Color, sq Square) Bitboard {
	moves := KingMask[sq] &^ p.ColorBB(c)
	cr := p.CastlingRights()
	them := c.Flip()
	if cr.Has(castleRightOO[c]) && p.Occ()&castleEmptyOO[c] == 0 &&
		p.AttackedBy(sq, them) == 0 && p.AttackedBy(sq+1, them) == 0 {
		moves |= castleToOO[c].Bb()
	}
	if cr.Has(castleRightOOO[c]) && p.Occ()&castleEmptyOOO[c] == 0 &&
		p.AttackedBy(sq, them) == 0 && p.AttackedBy(sq-1, them) == 0 {
		moves |= castleToOOO[c].Bb()
	}
	return moves
}

// Moves returns the full pseudolegal destination set for the side-to-move
// piece on sq (empty if sq does not hold a friendly piece).
func (p *Position) Moves(sq Square) Bitboard {
	pc := p.PieceAt(sq)
	if pc == PieceEmpty || pc.ColorOf() != p.side {
		return BbZero
	}
	switch pc.TypeOf() {
	case Pawn:
		return p.PawnPushes(p.side, sq) | p.PawnCaptures(p.side, sq)
	case Knight:
		return p.KnightMoves(p.side, sq)
	case Bishop:
		return p.BishopMoves(p.side, sq)
	case Rook:
		return p.RookMoves(p.side, sq)
	case Queen:
		return p.QueenMoves(p.side, sq)
	case King:
		return p.KingMoves(p.side, sq)
	}
	return BbZero
}

// HasCheck reports whether the side to move is in check.
func (p *Position) HasCheck() bool {
	return p.InCheck(p.side)
}

// LastMove returns the most recently played move, or MoveNone at the
// starting position of the game.
func (p *Position) LastMove() Move {
	if len(p.moves) == 0 {
		return MoveNone
	}
	return p.moves[len(p.moves)-1]
}

// LastCapturedPiece returns the piece captured by the last move, or
// PieceEmpty if the last move was quiet.
func (p *Position) LastCapturedPiece() Piece {
	if len(p.captured) == 0 {
		return PieceEmpty
	}
	return p.captured[len(p.captured)-1]
}

// IsTactical reports whether m is a capture, promotion or en-passant
// capture in the current position.
func (p *Position) IsTactical(m Move) bool {
	if m.IsPromotion() || p.PieceAt(m.To()) != PieceEmpty {
		return true
	}
	return p.PieceAt(m.From()).TypeOf() == Pawn && m.To() == p.EP()
}

// IsPawnPush reports whether m advances a pawn into the opponent's half of
// the board, the kind of move the search is willing to extend.
func (p *Position) IsPawnPush(m Move) bool {
	if p.PieceAt(m.From()).TypeOf() != Pawn {
		return false
	}
	rank := m.To().Rank()
	if p.side == White {
		return rank >= 4
	}
	return rank <= 3
}

// IsRecapture reports whether m captures on the square the previous move
// just captured on.
func (p *Position) IsRecapture(m Move) bool {
	return p.LastMove() != MoveNone &&
		m.To() == p.LastMove().To() &&
		p.LastCapturedPiece() != PieceEmpty
}

// NullOk reports whether the side to move has enough non-pawn material for
// a null-move probe to be sound.
func (p *Position) NullOk() bool {
	return p.pst.NullOk(p.side)
}

// IsDraw reports an in-search draw: the 50-move rule (unless in check, as
// the position might be mate) or a repetition since the last irreversible
// move.
func (p *Position) IsDraw() bool {
	if p.R50() >= 100 && !p.HasCheck() {
		return true
	}
	return p.IsRepetition()
}
