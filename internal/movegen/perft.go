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

package movegen

import (
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvid-chess/corvid/internal/moveslice"
	"github.com/corvid-chess/corvid/internal/position"
)

var out = message.NewPrinter(language.English)

// Perft walks the move generation tree of strictly legal moves to count
// all leaf nodes of a certain depth. Comparing the counts against the
// published reference values validates the move generator and make/undo.
type Perft struct {
	Nodes    uint64
	stopFlag int32
}

// NewPerft creates a new empty Perft instance.
func NewPerft() *Perft {
	return &Perft{}
}

// Stop aborts a running perft test at the next node boundary.
func (perft *Perft) Stop() {
	atomic.StoreInt32(&perft.stopFlag, 1)
}

func (perft *Perft) stopped() bool {
	return atomic.LoadInt32(&perft.stopFlag) != 0
}

// StartPerft runs a perft on the given position and depth and prints the
// node count and speed.
func (perft *Perft) StartPerft(fen string, depth int) uint64 {
	atomic.StoreInt32(&perft.stopFlag, 0)
	if depth < 1 {
		depth = 1
	}

	p := position.New()
	if err := p.SetFEN(fen); err != nil {
		out.Printf("perft: %s\n", err)
		return 0
	}
	mgList := make([]*Movegen, depth+1)
	for i := range mgList {
		mgList[i] = NewMoveGen()
	}

	start := time.Now()
	perft.Nodes = perft.miniMax(depth, p, mgList)
	elapsed := time.Since(start)

	if perft.stopped() {
		out.Print("Perft stopped\n")
		return 0
	}
	out.Printf("Perft depth %d: %d nodes in %s (%d kN/s)\n",
		depth, perft.Nodes, elapsed, perft.Nodes/uint64(elapsed.Milliseconds()+1))
	return perft.Nodes
}

func (perft *Perft) miniMax(depth int, p *position.Position, mgList []*Movegen) uint64 {
	if depth == 0 {
		return 1
	}
	if perft.stopped() {
		return 0
	}
	var nodes uint64
	var ml moveslice.MoveSlice
	mgList[depth].GenerateAll(p, &ml)
	for _, m := range ml {
		if !p.MakeMove(m) {
			continue
		}
		nodes += perft.miniMax(depth-1, p, mgList)
		p.UndoMove()
	}
	return nodes
}

// selfTestCase pairs a reference position with its known node counts for
// depths 0..5.
type selfTestCase struct {
	fen     string
	results [6]uint64
}

var selfTestCases = [7]selfTestCase{
	{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		[6]uint64{1, 20, 400, 8902, 197281, 4865609}},
	{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
		[6]uint64{1, 48, 2039, 97862, 4085603, 193690690}},
	{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
		[6]uint64{1, 14, 191, 2812, 43238, 674624}},
	{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		[6]uint64{1, 6, 264, 9467, 422333, 15833292}},
	{"r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1",
		[6]uint64{1, 6, 264, 9467, 422333, 15833292}},
	{"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		[6]uint64{1, 44, 1486, 62379, 2103487, 89941194}},
	{"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
		[6]uint64{1, 46, 2079, 89890, 3894594, 164075551}},
}

// SelfTest runs the seven reference positions to the given maximum depth
// (clamped to 5) and compares every count against the known results. Each
// position runs in its own goroutine on an independent Position; nothing
// is shared between them. Returns true when every count matched.
func (perft *Perft) SelfTest(maxDepth int) bool {
	atomic.StoreInt32(&perft.stopFlag, 0)
	if maxDepth > 5 {
		maxDepth = 5
	}
	if maxDepth < 1 {
		maxDepth = 1
	}

	var failures int64
	var totalNodes uint64
	start := time.Now()

	var g errgroup.Group
	for i := range selfTestCases {
		tc := &selfTestCases[i]
		idx := i
		g.Go(func() error {
			sub := &Perft{}
			p := position.New()
			if err := p.SetFEN(tc.fen); err != nil {
				return err
			}
			mgList := make([]*Movegen, maxDepth+1)
			for j := range mgList {
				mgList[j] = NewMoveGen()
			}
			for d := 0; d <= maxDepth; d++ {
				if perft.stopped() {
					return nil
				}
				nodes := sub.miniMax(d, p, mgList)
				atomic.AddUint64(&totalNodes, nodes)
				if nodes != tc.results[d] {
					atomic.AddInt64(&failures, 1)
					out.Printf("position %d depth %d: error, got %d want %d\n",
						idx+1, d, nodes, tc.results[d])
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		out.Printf("perft self test: %s\n", err)
		return false
	}

	elapsed := time.Since(start)
	nodes := atomic.LoadUint64(&totalNodes)
	out.Printf("kN/s: %d\n", nodes/uint64(elapsed.Milliseconds()+1))
	out.Printf("total nodes %d in %.3f s\n", nodes, elapsed.Seconds())
	if failures == 0 && !perft.stopped() {
		out.Print("Test result: --- OK ---\n")
		return true
	}
	out.Print("Test result: error\n")
	return false
}
