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

package search

import (
	"github.com/corvid-chess/corvid/internal/config"
	"github.com/corvid-chess/corvid/internal/position"
	"github.com/corvid-chess/corvid/internal/transpositiontable"
	. "github.com/corvid-chess/corvid/internal/types"
	"github.com/corvid-chess/corvid/internal/util"
)

// isCastleMove detects a castle structurally: a king moving two files.
func isCastleMove(p *position.Position, m Move) bool {
	if p.PieceAt(m.From()).TypeOf() != King {
		return false
	}
	d := m.From().File() - m.To().File()
	return d == 2 || d == -2
}

// alphaBeta is the principal variation search. The node type follows from
// the window: a PV node has an open window, every other node is searched
// with a null window. The root is the PV node at ply 0 and is handled in
// the same function; it skips the draw, hash and pruning blocks and keeps
// the best move and the principal variation up to date.
func (s *Search) alphaBeta(p *position.Position, depth, alpha, beta int, doNull bool) int {
	ply := s.history.Ply()
	isPV := beta-alpha != 1
	isRoot := isPV && ply == 0

	// an early repetition draw only matters when we are not already
	// winning on the board
	if p.R50() >= 3 && alpha < 0 && !isRoot && p.IsRepetition() {
		alpha = s.drawValue()
		if alpha >= beta {
			return alpha
		}
	}

	if depth <= 0 {
		return s.qsearch(p, 0, alpha, beta)
	}

	s.timeCheck()

	key := p.Key()
	isCheck := p.HasCheck()
	eval := ScoreNone
	score := ScoreNone
	bestScore := -Mate
	if isRoot {
		bestScore = alpha
	}
	ttMove := MoveNone

	if !isRoot {
		if p.IsDraw() || ply >= MaxDepth-1 {
			if ply >= MaxDepth-1 && !isCheck {
				return s.evaluate(p)
			}
			return s.drawValue()
		}

		// mate distance pruning: a shorter mate has already been found
		if config.Settings.Search.UseMDP {
			alpha = util.Max(-Mate+ply, alpha)
			beta = util.Min(Mate-ply-1, beta)
			if alpha >= beta {
				s.statistics.Mdp++
				return alpha
			}
		}

		var entry *transpositiontable.TtEntry
		if config.Settings.Search.UseTT {
			entry = s.tt.Probe(key, depth)
			if entry != nil {
				s.statistics.TTHit++
			} else {
				s.statistics.TTMiss++
			}
		}
		if !isPV && entry != nil {
			score = transpositiontable.FromTT(entry.Score(), ply, p.R50())
			if score != ScoreNone {
				cut := entry.Flag()&transpositiontable.FlagUB != 0
				if score >= beta {
					cut = entry.Flag()&transpositiontable.FlagLB != 0
				}
				// close to the 50-move horizon the stored score may no
				// longer be reachable
				if cut && p.R50() < 90 {
					s.statistics.TTCuts++
					return score
				}
			}
		}
		if config.Settings.Search.UseTTMove {
			ttMove = s.tt.BestMove(key)
			s.history.SetTTMove(ttMove)
			if ttMove != MoveNone {
				s.statistics.TTMoveUsed++
			}
		}

		s.pv[ply].Clear()

		if isCheck {
			eval = -Mate + ply
		} else if s.currentVariation.Back() == MoveNone && s.currentVariation.Len() > 0 {
			// the opponent just passed; an unadjusted eval would make
			// the position look worse for us than it is
			eval = s.evaluate(p) + 50
		} else {
			eval = s.evaluate(p)
		}

		if !isPV && !isCheck && util.Abs(beta) < MateInMax-225 {
			// beta pruning: when the static eval beats beta by a depth
			// scaled margin the node will almost surely fail high
			if config.Settings.Search.UseRFP && depth <= 3 {
				if sc := eval - 75*depth; sc >= beta {
					s.statistics.RfpPrunings++
					return sc
				}
			}

			// null move pruning: passing and still failing high means
			// the position is too good to need a move. Unsound in pawn
			// endgames (zugzwang), hence the material gate.
			if config.Settings.Search.UseNullMove && doNull && eval >= beta && p.NullOk() {
				p.MakeNull()
				s.history.Push()
				s.currentVariation.PushBack(MoveNone)

				r := (11+depth)/3 + util.Min((eval-beta)/150, 3)
				if depth <= r {
					score = -s.qsearch(p, 0, -beta, -alpha)
				} else {
					score = -s.alphaBeta(p, depth-r, -beta, -beta+1, false)
				}

				s.currentVariation.PopBack()
				s.history.Pop()
				p.UndoNull()

				if score >= beta {
					if depth < 13 {
						s.statistics.NullMoveCuts++
						return score
					}
					// at very high drafts verify with a reduced search
					// before trusting the cut
					if vs := s.alphaBeta(p, depth-r, beta-1, beta, false); vs >= beta {
						s.statistics.NullMoveCuts++
						return score
					}
				}
			}
		}

		// internal iterative reduction: a PV node without a hash move is
		// cheaper to redo one ply shallower than to search with a cold
		// move ordering
		if config.Settings.Search.UseIIR &&
			isPV && depth >= 4 && util.Abs(beta) < MateInMax && ttMove == MoveNone {
			depth--
			s.statistics.IirReductions++
		}
	}

	myMg := s.mg[ply]
	ml := s.moveLists[ply]
	myMg.GenerateAll(p, ml)
	s.history.ClearDeeper()

	oldAlpha := alpha
	bestMove := MoveNone
	moveCnt := 0

	for _, m := range *ml {
		isTactical := p.IsTactical(m)
		recap := !isRoot && p.IsRecapture(m)
		pawnPush := p.IsPawnPush(m)
		castle := isCastleMove(p, m)

		if !p.MakeMove(m) {
			continue
		}

		s.nodesVisited++
		moveCnt++
		s.currentVariation.PushBack(m)
		s.history.Push()
		s.pv[ply+1].Clear()
		s.sendSearchUpdateToUci()

		// a cheap quiescence probe stands in for "this capture does not
		// lose material" when judging recapture extensions
		goodSee := false
		if isTactical {
			goodSee = -s.qsearch(p, 0, -alpha-1, -alpha) > alpha
		}
		recap = recap && goodSee

		ext := 0
		red := 0
		leavePv := moveCnt > 1+2*b2i(isRoot)+2*b2i(isPV && util.Abs(bestScore) < 2)

		if !isRoot && s.curDepth >= 6 {
			if config.Settings.Search.UseExt &&
				((isPV && (isCheck || recap || pawnPush)) ||
					(depth <= 4 && (isCheck || recap))) {
				ext = 1
				s.statistics.CheckExtension++
			} else if config.Settings.Search.UseLmr &&
				depth >= 3 && leavePv && !isTactical && !isCheck && !castle &&
				!pawnPush && !recap && int(m.Score()) < -depth &&
				util.Abs(eval) < MateInMax {
				red = depth / 3
				s.statistics.LmrReductions++
			}
		}

		if (isPV && leavePv) || red > 0 {
			score = -s.alphaBeta(p, depth+ext-red-1, -alpha-1, -alpha, doNull)
			if score > alpha && !s.stopConditions() {
				if red > 0 {
					s.statistics.LmrResearches++
				} else {
					s.statistics.PvsResearches++
				}
				score = -s.alphaBeta(p, depth+ext-1, -beta, -alpha, doNull)
			}
		} else {
			score = -s.alphaBeta(p, depth+ext-1, -beta, -alpha, doNull)
		}

		s.history.Pop()
		s.currentVariation.PopBack()
		p.UndoMove()

		if !isTactical && config.Settings.Search.UseHistoryCounter {
			s.history.Update(m, p.PieceAt(m.From()), depth, score, alpha, beta)
		}

		if s.stopConditions() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			if score > alpha {
				alpha = score
				bestMove = m
				if isPV {
					s.pv[ply].Replace(m.MoveOnly(), s.pv[ply+1])
					if isRoot {
						s.sendIterationEndInfoToUci(bestScore)
					}
				}
				if score >= beta {
					s.statistics.BetaCuts++
					if moveCnt == 1 {
						s.statistics.BetaCuts1st++
					}
					// the quiet moves tried before the cut were not
					// worth their ordering, tone their history down
					if config.Settings.Search.UseHistoryCounter {
						for _, x := range *ml {
							if x == m {
								break
							}
							if !p.IsTactical(x) {
								s.history.AddHistory(x, p.PieceAt(x.From()), -(depth*depth)/8)
							}
						}
					}
					break
				}
			}
		}
	}

	// no legal move: mate or stalemate
	if moveCnt == 0 {
		if isCheck {
			s.statistics.Checkmates++
			bestScore = -Mate + ply
		} else {
			s.statistics.Stalemates++
			bestScore = Draw
		}
	}

	if !isRoot && config.Settings.Search.UseTT {
		switch {
		case bestScore >= beta:
			s.tt.Put(key, bestMove, depth, transpositiontable.ToTT(bestScore, ply), transpositiontable.FlagLB)
		case isPV && bestScore > oldAlpha:
			s.tt.Put(key, bestMove, depth, transpositiontable.ToTT(bestScore, ply), transpositiontable.FlagXB)
		default:
			s.tt.Put(key, MoveNone, depth, transpositiontable.ToTT(bestScore, ply), transpositiontable.FlagUB)
		}
	}
	return bestScore
}

// qsearch searches only non-quiet moves to settle the tactics of the
// horizon: all evasions while in check, captures and promotions
// otherwise, and at its entry depth also checking moves. The static
// evaluation stands pat as a lower bound when not in check.
func (s *Search) qsearch(p *position.Position, depth, alpha, beta int) int {
	s.timeCheck()

	if p.IsDraw() {
		return s.drawValue()
	}

	ply := s.history.Ply()
	if ply >= MaxDepth {
		return s.evaluate(p)
	}
	if s.selDepth < ply {
		s.selDepth = ply
		if s.statistics.CurrentExtraSearchDepth < ply {
			s.statistics.CurrentExtraSearchDepth = ply
		}
	}
	if !config.Settings.Search.UseQuiescence {
		return s.evaluate(p)
	}

	isCheck := p.HasCheck()
	score := -Mate + ply
	if !isCheck {
		score = s.evaluate(p)
	}
	if score >= beta {
		s.statistics.StandpatCuts++
		return beta
	}
	if score > alpha {
		alpha = score
	}

	myMg := s.mg[ply]
	ml := s.moveLists[ply]
	myMg.GenerateTactical(p, ml, depth == 0)

	score = ScoreNone
	var done Bitboard

	for _, m := range *ml {
		// skip captures that lose material outright
		if !isCheck && !m.IsPromotion() && config.Settings.Search.UseSEE &&
			PieceValue[p.PieceAt(m.From()).TypeOf()] > PieceValue[p.PieceAt(m.To()).TypeOf()] &&
			see(p, m) < 0 {
			continue
		}
		// cap the branching: one non-checking move per target square
		isChecking := myMg.IsCheckingMove(m)
		if !isCheck && !isChecking && done.Has(m.To()) {
			continue
		}
		if !p.MakeMove(m) {
			continue
		}
		if !isCheck && !isChecking {
			done.PushSquare(m.To())
		}

		s.nodesVisited++
		s.currentVariation.PushBack(m)
		s.history.Push()

		score = -s.qsearch(p, depth-1, -beta, -alpha)

		s.history.Pop()
		s.currentVariation.PopBack()
		p.UndoMove()

		if s.stopConditions() {
			return 0
		}

		if score > alpha {
			alpha = score
			if alpha >= beta {
				s.statistics.BetaCuts++
				break
			}
		}
	}

	// in check every move was generated, so no score means mate
	if isCheck && score == ScoreNone {
		s.statistics.Checkmates++
		alpha = -Mate + ply
	}
	return alpha
}

// evaluate calls the static evaluation on the position.
func (s *Search) evaluate(p *position.Position) int {
	s.statistics.Evaluations++
	return s.eval.Evaluate(p)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
