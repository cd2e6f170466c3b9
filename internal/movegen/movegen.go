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

// Package movegen contains functionality to create moves on a chess
// position. Generation is pseudolegal: the position's MakeMove decides
// legality centrally. Moves are produced in two flavors driven by the
// search -- the full set, or tactical moves only (captures, promotions
// and, for the quiescence root, checking moves) -- and every generated
// move carries an ordering score so a single stable sort yields the
// search order.
package movegen

import (
	"regexp"

	"github.com/corvid-chess/corvid/internal/history"
	"github.com/corvid-chess/corvid/internal/moveslice"
	"github.com/corvid-chess/corvid/internal/position"
	. "github.com/corvid-chess/corvid/internal/types"
)

// Move ordering scores. The hash move is searched first, then captures
// and promotions by MVV/LVA, then checking moves and killers, then quiet
// moves by their history counter.
const (
	scoreTTMove  = 32_000
	scoreCapture = 31_000
	scoreKiller0 = 30_003
	scoreKiller1 = 30_002
	scoreCheck   = 30_001
)

var promoPieceTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// Movegen holds the per-instance working state of the generator. Create
// one per search ply via NewMoveGen and reuse it; generation allocates
// nothing.
type Movegen struct {
	hist *history.History

	// Per-from-square masks, rebuilt on each generation run: the raw
	// pseudolegal destinations, the destinations that would deliver check
	// (directly or by discovery), and promotion destinations.
	moves  [SqLength]Bitboard
	checks [SqLength]Bitboard
	proms  [SqLength]Bitboard
}

// NewMoveGen creates a new instance of a move generator.
func NewMoveGen() *Movegen {
	return &Movegen{}
}

// SetHistoryData gives the generator access to the search's history
// tables (hash move, killers, history counters) for move ordering.
// Without it (e.g. in perft) quiet moves score zero.
func (mg *Movegen) SetHistoryData(h *history.History) {
	mg.hist = h
}

// GenerateAll fills ml with every pseudolegal move for the side to move,
// scored and sorted for the search. In check only evasions are produced.
func (mg *Movegen) GenerateAll(p *position.Position, ml *moveslice.MoveSlice) {
	ml.Clear()
	if p.HasCheck() {
		mg.genEvasions(p, ml)
	} else {
		mg.prepareMasks(p)
		mg.genTactical(p, ml)
		mg.genQuiet(p, ml)
	}
	ml.Sort()
}

// GenerateTactical fills ml with the non-quiet moves: in check all
// evasions; otherwise captures and promotions, plus checking moves when
// withChecks is set (the quiescence root searches those too).
func (mg *Movegen) GenerateTactical(p *position.Position, ml *moveslice.MoveSlice, withChecks bool) {
	ml.Clear()
	if p.HasCheck() {
		mg.genEvasions(p, ml)
	} else {
		mg.prepareMasks(p)
		if withChecks {
			mg.genTactical(p, ml)
		} else {
			mg.genCaptsProms(p, ml)
		}
	}
	ml.Sort()
}

// IsCheckingMove reports whether m was flagged as check-delivering by the
// most recent generation run on the same position.
func (mg *Movegen) IsCheckingMove(m Move) bool {
	return mg.checks[m.From()].Has(m.To())
}

// prepareMasks rebuilds the raw destination masks and derives the check
// and promotion masks from them. Order matters: moves first, then checks
// and promotions.
func (mg *Movegen) prepareMasks(p *position.Position) {
	own := p.ColorBB(p.Side())
	for b := own; b != 0; {
		sq := b.PopLsb()
		mg.moves[sq] = p.Moves(sq)
		mg.checks[sq] = BbZero
		mg.proms[sq] = BbZero
	}
	mg.findChecks(p)
	mg.findProms(p)
}

// findProms marks the destinations of pawns standing on their seventh
// rank; every move from those squares is a promotion.
func (mg *Movegen) findProms(p *position.Position) {
	us := p.Side()
	pawns := p.PieceColorBB(Pawn, us)
	if us == White {
		pawns &= Rank7_Bb
	} else {
		pawns &= Rank2_Bb
	}
	for b := pawns; b != 0; {
		sq := b.PopLsb()
		mg.proms[sq] = mg.moves[sq]
	}
}

// findChecks computes, per friendly piece, the destinations from which it
// would give check: direct checks via the inverse attack from the enemy
// king's square, castle checks via the rook's post-castle square, and
// discovered checks by enumerating slider rays from the enemy king that
// are blocked by exactly one friendly piece.
func (mg *Movegen) findChecks(p *position.Position) {
	us := p.Side()
	ksq := p.KingSq(us.Flip())
	own := p.ColorBB(us)
	occ := p.Occ()

	bishopChecks := BishopAttacks(ksq, occ) &^ own
	rookChecks := RookAttacks(ksq, occ) &^ own
	knightChecks := KnightMask[ksq] &^ own

	// Castling delivers check when the rook's destination attacks the
	// enemy king.
	cr := p.CastlingRights()
	if us == White {
		if cr.Has(WhiteOOO) && rookChecks.Has(SqD1) {
			mg.checks[SqE1] |= SqC1.Bb()
		}
		if cr.Has(WhiteOO) && rookChecks.Has(SqF1) {
			mg.checks[SqE1] |= SqG1.Bb()
		}
	} else {
		if cr.Has(BlackOOO) && rookChecks.Has(SqD8) {
			mg.checks[SqE8] |= SqC8.Bb()
		}
		if cr.Has(BlackOO) && rookChecks.Has(SqF8) {
			mg.checks[SqE8] |= SqG8.Bb()
		}
	}

	for b := p.PieceColorBB(Knight, us); b != 0; {
		fr := b.PopLsb()
		mg.checks[fr] = mg.moves[fr] & knightChecks
	}
	for b := p.PieceColorBB(Bishop, us); b != 0; {
		fr := b.PopLsb()
		mg.checks[fr] = mg.moves[fr] & bishopChecks
	}
	for b := p.PieceColorBB(Rook, us); b != 0; {
		fr := b.PopLsb()
		mg.checks[fr] = mg.moves[fr] & rookChecks
	}
	for b := p.PieceColorBB(Queen, us); b != 0; {
		fr := b.PopLsb()
		mg.checks[fr] = mg.moves[fr] & (rookChecks | bishopChecks)
	}
	// A pawn checks from the squares that attack the enemy king. Pawns on
	// their seventh rank promote on moving, so their checks are judged by
	// the promoted piece's attacks instead.
	pawnChecks := PawnAttackMask[us.Flip()][ksq]
	for b := p.PieceColorBB(Pawn, us); b != 0; {
		fr := b.PopLsb()
		seventh := (us == White && fr.Rank() == 6) || (us == Black && fr.Rank() == 1)
		if seventh {
			mg.checks[fr] = mg.moves[fr] & (rookChecks | bishopChecks | knightChecks)
		} else {
			mg.checks[fr] = mg.moves[fr] & pawnChecks
		}
	}

	// Discovered checks: a slider ray from the enemy king blocked by
	// exactly one friendly piece and nothing else. That blocker checks
	// whenever it leaves the ray.
	sliders := p.PieceColorBB(Bishop, us) | p.PieceColorBB(Queen, us)
	for b := BishopAttacks(ksq, BbZero) & sliders; b != 0; {
		fr := b.PopLsb()
		mg.markDiscovered(p, fr, ksq)
	}
	sliders = p.PieceColorBB(Rook, us) | p.PieceColorBB(Queen, us)
	for b := RookAttacks(ksq, BbZero) & sliders; b != 0; {
		fr := b.PopLsb()
		mg.markDiscovered(p, fr, ksq)
	}
}

func (mg *Movegen) markDiscovered(p *position.Position, slider, ksq Square) {
	ray := Between[slider][ksq]
	mine := ray & p.ColorBB(p.Side())
	theirs := ray & p.ColorBB(p.Side().Flip())
	if theirs != 0 || mine.PopCount() != 1 {
		return
	}
	blocker := mine.Lsb()
	mg.checks[blocker] |= mg.moves[blocker] &^ ray
}

// addQuiet scores and appends a quiet move: hash move first, then
// killers, then the history counter.
func (mg *Movegen) addQuiet(m Move, p *position.Position, ml *moveslice.MoveSlice) {
	var sc int
	switch {
	case mg.hist == nil:
	case m.MoveOnly() == mg.hist.TTMove():
		sc = scoreTTMove
	case m.MoveOnly() == mg.hist.Killer(0):
		sc = scoreKiller0
	case m.MoveOnly() == mg.hist.Killer(1):
		sc = scoreKiller1
	default:
		sc = mg.hist.HistoryScore(m, p.PieceAt(m.From()))
	}
	ml.PushBack(m.WithScore(int16(sc)))
}

// addTactical scores and appends a capture, promotion or checking move:
// hash move first, then MVV/LVA with a promotion bump, then bare checks.
func (mg *Movegen) addTactical(m Move, p *position.Position, ml *moveslice.MoveSlice) {
	pc := p.PieceAt(m.From()).TypeOf()
	cp := p.PieceAt(m.To()).TypeOf()
	if pc == Pawn && m.To() == p.EP() {
		cp = Pawn
	}
	pp := m.Promo()

	var sc int
	switch {
	case mg.hist != nil && m.MoveOnly() == mg.hist.TTMove():
		sc = scoreTTMove
	case cp != PtEmpty || pp != PtEmpty:
		sc = scoreCapture + int(cp)*6 + (5 - int(pc)) + int(pp)*5
	default:
		sc = scoreCheck
	}
	ml.PushBack(m.WithScore(int16(sc)))
}

// genFrom emits all moves of the piece on fr restricted to dest,
// expanding promotions and routing each move to the matching scorer.
func (mg *Movegen) genFrom(fr Square, dest Bitboard, p *position.Position, ml *moveslice.MoveSlice) {
	pc := p.PieceAt(fr).TypeOf()
	for b := p.Moves(fr) & dest; b != 0; {
		to := b.PopLsb()
		switch {
		case pc == Pawn && (to.Rank() == 0 || to.Rank() == 7):
			for _, pp := range promoPieceTypes {
				mg.addTactical(NewMove(fr, to, pp), p, ml)
			}
		case p.PieceAt(to) != PieceEmpty || (pc == Pawn && to == p.EP()):
			mg.addTactical(NewMove(fr, to, PtEmpty), p, ml)
		default:
			mg.addQuiet(NewMove(fr, to, PtEmpty), p, ml)
		}
	}
}

// genEvasions generates check evasions only: king moves always, and for a
// single checker any block or capture of it, including the en-passant
// capture when the checker is a freshly double-pushed pawn.
func (mg *Movegen) genEvasions(p *position.Position, ml *moveslice.MoveSlice) {
	us := p.Side()
	ksq := p.KingSq(us)
	checkers := p.Checkers(us)

	// The stale masks from an earlier run must not leak into evasion
	// scoring or the quiescence check lookup.
	for b := p.ColorBB(us); b != 0; {
		sq := b.PopLsb()
		mg.checks[sq] = BbZero
		mg.proms[sq] = BbZero
	}

	for b := KingMask[ksq] &^ p.ColorBB(us); b != 0; {
		to := b.PopLsb()
		if p.PieceAt(to) != PieceEmpty {
			mg.addTactical(NewMove(ksq, to, PtEmpty), p, ml)
		} else {
			mg.addQuiet(NewMove(ksq, to, PtEmpty), p, ml)
		}
	}

	if checkers.PopCount() > 1 {
		// double check, only the king can move
		return
	}

	checkerSq := checkers.Lsb()
	dest := Between[checkerSq][ksq] | checkers
	if ep := p.EP(); ep != SqNone {
		// capturing en passant evades only when the double-pushed pawn
		// itself is the checker, which sits directly behind the square
		behind := ep.To(South)
		if us == Black {
			behind = ep.To(North)
		}
		if p.PieceColorBB(Pawn, us.Flip())&dest != 0 && behind != SqNone && dest.Has(behind) {
			dest |= ep.Bb()
		}
	}

	for b := p.ColorBB(us) &^ ksq.Bb(); b != 0; {
		fr := b.PopLsb()
		mg.genFrom(fr, dest, p, ml)
	}
}

// genTactical emits captures, promotions and checking moves.
func (mg *Movegen) genTactical(p *position.Position, ml *moveslice.MoveSlice) {
	us := p.Side()
	opp := p.ColorBB(us.Flip())
	for b := p.ColorBB(us); b != 0; {
		fr := b.PopLsb()
		targets := opp
		if p.PieceAt(fr).TypeOf() == Pawn && p.EP() != SqNone {
			targets |= p.EP().Bb()
		}
		dest := (mg.moves[fr] & (mg.checks[fr] | targets)) | mg.proms[fr]
		mg.emitTactical(fr, dest, p, ml)
	}
}

// emitTactical appends every move of the piece on fr into dest through the
// tactical scorer, expanding promotions.
func (mg *Movegen) emitTactical(fr Square, dest Bitboard, p *position.Position, ml *moveslice.MoveSlice) {
	pc := p.PieceAt(fr).TypeOf()
	for b := dest; b != 0; {
		to := b.PopLsb()
		if pc == Pawn && (to.Rank() == 0 || to.Rank() == 7) {
			for _, pp := range promoPieceTypes {
				mg.addTactical(NewMove(fr, to, pp), p, ml)
			}
		} else {
			mg.addTactical(NewMove(fr, to, PtEmpty), p, ml)
		}
	}
}

// genCaptsProms emits captures and promotions only, used by quiescence
// below its root where bare checking moves are no longer searched.
func (mg *Movegen) genCaptsProms(p *position.Position, ml *moveslice.MoveSlice) {
	us := p.Side()
	opp := p.ColorBB(us.Flip())
	for b := p.ColorBB(us); b != 0; {
		fr := b.PopLsb()
		targets := opp
		if p.PieceAt(fr).TypeOf() == Pawn && p.EP() != SqNone {
			targets |= p.EP().Bb()
		}
		dest := (mg.moves[fr] & targets) | mg.proms[fr]
		mg.emitTactical(fr, dest, p, ml)
	}
}

// genQuiet emits the remaining quiet moves, the complement of genTactical.
func (mg *Movegen) genQuiet(p *position.Position, ml *moveslice.MoveSlice) {
	us := p.Side()
	opp := p.ColorBB(us.Flip())
	for b := p.ColorBB(us); b != 0; {
		fr := b.PopLsb()
		targets := opp
		if p.PieceAt(fr).TypeOf() == Pawn && p.EP() != SqNone {
			targets |= p.EP().Bb()
		}
		dest := mg.moves[fr] &^ (mg.checks[fr] | targets) &^ mg.proms[fr]
		for bb := dest; bb != 0; {
			to := bb.PopLsb()
			mg.addQuiet(NewMove(fr, to, PtEmpty), p, ml)
		}
	}
}

// Regex for moves in UCI notation.
var regexUciMove = regexp.MustCompile("^([a-h][1-8])([a-h][1-8])([nbrq])?$")

// GetMoveFromUci generates all pseudolegal moves and matches the given UCI
// move string against them, confirming legality by a make/undo probe. If
// there is a match the actual move is returned, otherwise MoveNone.
//
// As this uses string comparison it is not very efficient. Use only when
// performance is not critical (e.g. parsing a "position ... moves" line).
func (mg *Movegen) GetMoveFromUci(p *position.Position, uciMove string) Move {
	if !regexUciMove.MatchString(uciMove) {
		return MoveNone
	}
	parsed, ok := ParseMove(uciMove)
	if !ok {
		return MoveNone
	}
	var ml moveslice.MoveSlice
	mg.GenerateAll(p, &ml)
	for _, m := range ml {
		if m.MoveOnly() != parsed.MoveOnly() {
			continue
		}
		if !p.MakeMove(m) {
			return MoveNone
		}
		p.UndoMove()
		return m.MoveOnly()
	}
	return MoveNone
}

// HasLegalMove reports whether the side to move has at least one legal
// move, deciding between mate/stalemate and a playable position.
func (mg *Movegen) HasLegalMove(p *position.Position) bool {
	var ml moveslice.MoveSlice
	mg.GenerateAll(p, &ml)
	for _, m := range ml {
		if p.MakeMove(m) {
			p.UndoMove()
			return true
		}
	}
	return false
}
