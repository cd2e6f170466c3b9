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

// Package position implements the bitboard position core: the mailbox and
// per-type/per-color bitboards, the append-only state stack, Zobrist
// hashing, make/undo, attack queries and repetition/draw detection. A
// Position is created from a FEN string and mutated only through MakeMove /
// UndoMove / MakeNull / UndoNull thereafter -- positions are never cloned
// per search node, the search walks one mutable aggregate.
package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corvid-chess/corvid/internal/assert"
	"github.com/corvid-chess/corvid/internal/pst"
	. "github.com/corvid-chess/corvid/internal/types"
	"github.com/corvid-chess/corvid/internal/zobrist"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// State is one entry of the append-only state stack: everything about a ply
// that cannot be derived from the board alone and must be restored on undo.
type State struct {
	Key uint64
	EP  Square
	CR  CastlingRights
	R50 int
}

// Position is the single mutable aggregate the search walks.
type Position struct {
	board   [SqLength]Piece
	bb      [PtLength]Bitboard
	colorBB [ColorLength]Bitboard

	side     Color
	fullMove int

	states   []State
	moves    []Move
	captured []Piece

	pst pst.Table
}

// New returns the standard starting position.
func New() *Position {
	p := &Position{}
	_ = p.SetFEN(StartFEN)
	return p
}

// Side is the color to move.
func (p *Position) Side() Color { return p.side }

// Ply is the number of half-moves played since the position was set up.
func (p *Position) Ply() int { return len(p.moves) }

// PieceAt returns the piece occupying sq (PieceEmpty if none).
func (p *Position) PieceAt(sq Square) Piece { return p.board[sq] }

// BB returns the combined (both colors) bitboard of piece type pt.
func (p *Position) BB(pt PieceType) Bitboard { return p.bb[pt] }

// ColorBB returns the occupancy bitboard of color c.
func (p *Position) ColorBB(c Color) Bitboard { return p.colorBB[c] }

// PieceColorBB returns the bitboard of piece type pt restricted to color c.
func (p *Position) PieceColorBB(pt PieceType, c Color) Bitboard {
	return p.bb[pt] & p.colorBB[c]
}

// Occ is the union of both colors' occupancy.
func (p *Position) Occ() Bitboard { return p.colorBB[White] | p.colorBB[Black] }

func (p *Position) top() State { return p.states[len(p.states)-1] }

// Key is the current Zobrist hash.
func (p *Position) Key() uint64 { return p.top().Key }

// EP is the current en-passant target square, or SqNone.
func (p *Position) EP() Square { return p.top().EP }

// CastlingRights are the currently held rights.
func (p *Position) CastlingRights() CastlingRights { return p.top().CR }

// R50 is the half-move clock used for the 50-move rule.
func (p *Position) R50() int { return p.top().R50 }

// FullMove is the FEN full-move counter.
func (p *Position) FullMove() int { return p.fullMove }

// KingSq returns the square of c's king.
func (p *Position) KingSq(c Color) Square {
	return p.PieceColorBB(King, c).Lsb()
}

// PST exposes the incremental piece-square/material table for the
// evaluator and for position invariant checks.
func (p *Position) PST() *pst.Table { return &p.pst }

func (p *Position) put(pc Piece, sq Square) {
	p.board[sq] = pc
	p.bb[pc.TypeOf()].PushSquare(sq)
	p.colorBB[pc.ColorOf()].PushSquare(sq)
	p.pst.Push(pc, sq)
}

func (p *Position) remove(sq Square) {
	pc := p.board[sq]
	p.board[sq] = PieceEmpty
	p.bb[pc.TypeOf()] &^= sq.Bb()
	p.colorBB[pc.ColorOf()] &^= sq.Bb()
	p.pst.Pop(pc, sq)
}

func (p *Position) relocate(pc Piece, from, to Square) {
	p.board[from] = PieceEmpty
	p.board[to] = pc
	toggled := from.Bb() | to.Bb()
	p.bb[pc.TypeOf()] ^= toggled
	p.colorBB[pc.ColorOf()] ^= toggled
	p.pst.Move(pc, from, to)
}

// SetFEN resets the position to the six-field FEN string.
func (p *Position) SetFEN(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return fmt.Errorf("position: malformed FEN %q", fen)
	}

	var board [SqLength]Piece
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return fmt.Errorf("position: FEN needs 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range rankStr {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pc, ok := ParsePieceChar(byte(c))
			if !ok {
				return fmt.Errorf("position: bad FEN piece char %q", c)
			}
			if file > 7 {
				return fmt.Errorf("position: rank %d overflows", i)
			}
			board[MakeSquare(file, rank)] = pc
			file++
		}
		if file != 8 {
			return fmt.Errorf("position: rank %d has %d files, want 8", i, file)
		}
	}

	side := White
	if fields[1] == "b" {
		side = Black
	}
	cr := ParseCastlingRights(fields[2])

	ep := SqNone
	if fields[3] != "-" {
		sq, ok := ParseSquare(fields[3])
		if !ok {
			return fmt.Errorf("position: bad en-passant square %q", fields[3])
		}
		ep = sq
	}

	r50 := 0
	if len(fields) > 4 {
		r50, _ = strconv.Atoi(fields[4])
	}
	fullMove := 1
	if len(fields) > 5 {
		if v, err := strconv.Atoi(fields[5]); err == nil {
			fullMove = v
		}
	}

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
	p.fullMove = fullMove
	p.moves = p.moves[:0]
	p.captured = p.captured[:0]

	key := p.recomputeKeyFromScratch() ^ zobrist.CastleKey[cr]
	if ep != SqNone {
		key ^= zobrist.EpKey[side][ep.File()+1]
	}
	p.states = append(p.states[:0], State{Key: key, EP: ep, CR: cr, R50: r50})
	return nil
}

// recomputeKeyFromScratch XORs together the piece keys of every occupied
// square, independent of the state stack.
func (p *Position) recomputeKeyFromScratch() uint64 {
	var key uint64
	for sq := SqA1; sq <= SqH8; sq++ {
		if pc := p.board[sq]; pc != PieceEmpty {
			key ^= zobrist.PieceKey[pc][sq]
		}
	}
	return key
}

// VerifyKey reports whether the incrementally maintained key matches a
// from-scratch recomputation, including castling/en-passant mixing.
func (p *Position) VerifyKey() bool {
	key := p.recomputeKeyFromScratch() ^ zobrist.CastleKey[p.CastlingRights()]
	if ep := p.EP(); ep != SqNone {
		key ^= zobrist.EpKey[p.side][ep.File()+1]
	}
	return key == p.Key()
}

// FEN serializes the position back to a FEN string.
func (p *Position) FEN() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			pc := p.board[MakeSquare(f, r)]
			if pc == PieceEmpty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(FormatPieceChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	if p.side == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights().String())
	sb.WriteByte(' ')
	sb.WriteString(p.EP().String())
	sb.WriteString(fmt.Sprintf(" %d %d", p.R50(), p.fullMove))
	return sb.String()
}

func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("FEN: %s\n", p.FEN()))
	sb.WriteString(fmt.Sprintf("Key: %016x\n", p.Key()))
	for r := 7; r >= 0; r-- {
		sb.WriteString(strconv.Itoa(r + 1))
		sb.WriteString("  ")
		for f := 0; f < 8; f++ {
			sb.WriteString(p.board[MakeSquare(f, r)].String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h\n")
	return sb.String()
}

// epCapturedSquare is the square of the pawn actually removed by an
// en-passant capture landing on 'to', given the capturing side's color.
func epCapturedSquare(to Square, moverColor Color) Square {
	if moverColor == White {
		return to.To(South)
	}
	return to.To(North)
}

// castleRookSquares detects castling structurally -- a king move of two
// files along its own rank -- instead of matching hardcoded packed-move
// constants. Returns ok=false for any other king move.
func castleRookSquares(from, to Square) (rookFrom, rookTo Square, ok bool) {
	if from.Rank() != to.Rank() {
		return SqNone, SqNone, false
	}
	rank := from.Rank()
	switch to.File() - from.File() {
	case 2:
		return MakeSquare(7, rank), MakeSquare(5, rank), true
	case -2:
		return MakeSquare(0, rank), MakeSquare(3, rank), true
	default:
		return SqNone, SqNone, false
	}
}

// MakeMove plays a pseudolegal move. It returns false, having internally
// undone every mutation, if the move leaves the mover's own king in check;
// legality is always decided centrally here, never by the generator.
func (p *Position) MakeMove(m Move) bool {
	from, to, promo := m.From(), m.To(), m.Promo()
	piece := p.board[from]
	color := piece.ColorOf()
	captured := p.board[to]

	if assert.DEBUG {
		assert.Assert(from.IsValid() && to.IsValid(), "MakeMove: invalid move %s", m.String())
		assert.Assert(piece != PieceEmpty, "MakeMove: no piece on %s", from.String())
		assert.Assert(color == p.side, "MakeMove: piece on %s does not belong to the side to move", from.String())
		assert.Assert(captured.TypeOf() != King, "MakeMove: king capture %s", m.String())
	}

	top := p.top()
	key := top.Key ^ zobrist.CastleKey[top.CR]
	if top.EP != SqNone {
		key ^= zobrist.EpKey[p.side][top.EP.File()+1]
	}

	r50 := top.R50 + 1
	epCaptureSq := SqNone
	if piece.TypeOf() == Pawn && top.EP != SqNone && to == top.EP {
		epCaptureSq = epCapturedSquare(to, color)
	}

	if captured != PieceEmpty {
		key ^= zobrist.PieceKey[captured][to]
		p.remove(to)
		r50 = 0
	} else if epCaptureSq != SqNone {
		captured = p.board[epCaptureSq]
		key ^= zobrist.PieceKey[captured][epCaptureSq]
		p.remove(epCaptureSq)
		r50 = 0
	}

	if promo != PtEmpty {
		finalPiece := MakePiece(color, promo)
		key ^= zobrist.PieceKey[piece][from]
		p.remove(from)
		key ^= zobrist.PieceKey[finalPiece][to]
		p.put(finalPiece, to)
	} else {
		key ^= zobrist.MoveKey[piece][from][to]
		p.relocate(piece, from, to)
	}

	newEP := SqNone
	if piece.TypeOf() == Pawn {
		r50 = 0
		if SquareDistance(from, to) == 2 && from.FileOf() == to.FileOf() {
			newEP = epCapturedSquare(to, color)
		}
	}

	if piece.TypeOf() == King {
		if rf, rt, ok := castleRookSquares(from, to); ok {
			rook := p.board[rf]
			key ^= zobrist.MoveKey[rook][rf][rt]
			p.relocate(rook, rf, rt)
		}
	}

	newCR := top.CR & CastlingRightsMask[from] & CastlingRightsMask[to]
	key ^= zobrist.CastleKey[newCR]
	if newEP != SqNone {
		key ^= zobrist.EpKey[color.Flip()][newEP.File()+1]
	}

	p.states = append(p.states, State{Key: key, EP: newEP, CR: newCR, R50: r50})
	p.moves = append(p.moves, m)
	p.captured = append(p.captured, captured)
	p.side = color.Flip()
	if color == Black {
		p.fullMove++
	}

	if p.InCheck(color) {
		p.UndoMove()
		return false
	}
	return true
}

// UndoMove reverses the most recently played move. Only call it after a
// successful MakeMove (one that returned true), or following the internal
// undo MakeMove itself performs on an illegal move.
func (p *Position) UndoMove() {
	m := p.moves[len(p.moves)-1]
	p.moves = p.moves[:len(p.moves)-1]
	captured := p.captured[len(p.captured)-1]
	p.captured = p.captured[:len(p.captured)-1]
	p.states = p.states[:len(p.states)-1]
	prev := p.top()

	from, to, promo := m.From(), m.To(), m.Promo()
	color := p.side.Flip()
	p.side = color
	if color == Black {
		p.fullMove--
	}

	moved := p.board[to]
	if promo != PtEmpty {
		p.remove(to)
		p.put(MakePiece(color, Pawn), from)
	} else {
		p.relocate(moved, to, from)
	}

	if moved.TypeOf() == Pawn && prev.EP != SqNone && to == prev.EP && captured != PieceEmpty {
		p.put(captured, epCapturedSquare(to, color))
	} else if captured != PieceEmpty {
		p.put(captured, to)
	}

	if p.board[from].TypeOf() == King {
		if rf, rt, ok := castleRookSquares(from, to); ok {
			rook := p.board[rt]
			p.relocate(rook, rt, rf)
		}
	}
}

// MakeNull passes the turn without moving a piece, used by null-move pruning.
func (p *Position) MakeNull() {
	top := p.top()
	key := top.Key
	if top.EP != SqNone {
		key ^= zobrist.EpKey[p.side][top.EP.File()+1]
	}
	p.states = append(p.states, State{Key: key, EP: SqNone, CR: top.CR, R50: top.R50})
	p.side = p.side.Flip()
}

// UndoNull reverses MakeNull.
func (p *Position) UndoNull() {
	p.states = p.states[:len(p.states)-1]
	p.side = p.side.Flip()
}

// AttacksTo returns the bitboard of every piece of color bySide attacking
// sq, given an explicit occupancy. Callers pass p.Occ() in the common case;
// a caller testing whether a king's destination square is safe ahead of an
// actual move may instead pass an occupancy with the moving king removed,
// so a slider's ray is not falsely blocked by the king's own origin square.
func (p *Position) AttacksTo(sq Square, bySide Color, occ Bitboard) Bitboard {
	var attackers Bitboard
	attackers |= PawnAttackMask[bySide.Flip()][sq] & p.PieceColorBB(Pawn, bySide)
	attackers |= KnightMask[sq] & p.PieceColorBB(Knight, bySide)
	attackers |= BishopAttacks(sq, occ) & (p.PieceColorBB(Bishop, bySide) | p.PieceColorBB(Queen, bySide))
	attackers |= RookAttacks(sq, occ) & (p.PieceColorBB(Rook, bySide) | p.PieceColorBB(Queen, bySide))
	attackers |= KingMask[sq] & p.PieceColorBB(King, bySide)
	return attackers
}

// AttackedBy is AttacksTo with the position's current occupancy.
func (p *Position) AttackedBy(sq Square, bySide Color) Bitboard {
	return p.AttacksTo(sq, bySide, p.Occ())
}

// InCheck reports whether c's king is currently attacked.
func (p *Position) InCheck(c Color) bool {
	return p.AttackedBy(p.KingSq(c), c.Flip()) != 0
}

// Checkers returns the set of pieces currently giving check to c's king.
func (p *Position) Checkers(c Color) Bitboard {
	return p.AttackedBy(p.KingSq(c), c.Flip())
}

// IsRepetition scans the state stack two plies at a time, back to the last
// irreversible move, for one prior occurrence of the current key -- the
// twofold-in-search approximation of the threefold rule used to cut off
// search as soon as a draw becomes reachable.
func (p *Position) IsRepetition() bool {
	key := p.Key()
	n := len(p.states) - 1
	limit := p.R50()
	if limit > n {
		limit = n
	}
	for i := 2; i <= limit; i += 2 {
		if p.states[n-i].Key == key {
			return true
		}
	}
	return false
}

// IsThreefold scans the full game history for two prior occurrences of the
// current key -- the strict rule used for a draw claim, as opposed to the
// single-occurrence approximation IsRepetition uses inside the search tree.
func (p *Position) IsThreefold() bool {
	key := p.Key()
	count := 0
	for i := len(p.states) - 1 - 2; i >= 0; i -= 2 {
		if p.states[i].Key == key {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}
