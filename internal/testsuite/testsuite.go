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

// Package testsuite contains data structures and functionality to run
// chess test suites given as EPD lines (Extended Position Description).
// An EPD holds the FEN of a position plus opcodes describing the expected
// outcome. For the purpose of testing this engine the opcodes "bm" (best
// move) and "dm" (direct mate) are implemented.
// https://www.chessprogramming.org/Extended_Position_Description
package testsuite

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/corvid-chess/corvid/internal/logging"
	"github.com/corvid-chess/corvid/internal/movegen"
	"github.com/corvid-chess/corvid/internal/moveslice"
	"github.com/corvid-chess/corvid/internal/position"
	"github.com/corvid-chess/corvid/internal/search"
	. "github.com/corvid-chess/corvid/internal/types"
)

var out = message.NewPrinter(language.English)
var log *logging.Logger

// testType defines the implemented opcodes for EPD tests.
type testType uint8

const (
	none testType = iota
	dm
	bm
)

// resultType defines the possible results of a single test.
type resultType uint8

const (
	notTested resultType = iota
	skipped
	failed
	success
)

// Test is one EPD line: the position, the expectation and, after the
// run, the engine's answer.
type Test struct {
	id          string
	fen         string
	tType       testType
	targetMoves moveslice.MoveSlice
	mateDepth   int
	actual      Move
	rType       resultType
	line        string
}

// SuiteResult collects the sums over all tests of a suite.
type SuiteResult struct {
	Counter          int
	SuccessCounter   int
	FailedCounter    int
	SkippedCounter   int
	NotTestedCounter int
}

// TestSuite runs a file of EPD tests with a fixed move time and an
// optional depth limit per position.
type TestSuite struct {
	Tests      []*Test
	Time       time.Duration
	Depth      int
	FilePath   string
	LastResult *SuiteResult
}

// NewTestSuite reads the given EPD file and prepares a TestSuite with
// the given per-position search time and depth limit (0 = none).
func NewTestSuite(filePath string, searchTime time.Duration, depth int) (*TestSuite, error) {
	if log == nil {
		log = myLogging.GetTestLog()
	}
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	ts := &TestSuite{
		Time:     searchTime,
		Depth:    depth,
		FilePath: filePath,
	}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if test := parseEpdLine(line); test != nil {
			ts.Tests = append(ts.Tests, test)
		}
	}
	return ts, nil
}

// RunTests runs all tests of the suite and reports the result.
func (ts *TestSuite) RunTests() {
	result := &SuiteResult{}
	ts.LastResult = result

	s := search.NewSearch()
	s.IsReady()

	startTime := time.Now()
	for i, test := range ts.Tests {
		result.Counter++
		out.Printf("Test %d of %d\nTest: %s -- Target Result %s\n",
			i+1, len(ts.Tests), test.line, test.targetMoves.StringUci())
		ts.runSingleTest(s, test)
		switch test.rType {
		case success:
			result.SuccessCounter++
		case failed:
			result.FailedCounter++
		case skipped:
			result.SkippedCounter++
		default:
			result.NotTestedCounter++
		}
	}
	elapsed := time.Since(startTime)

	out.Printf("Summary: %d tests in %s: %d successful, %d failed, %d skipped, %d not tested\n",
		result.Counter, elapsed, result.SuccessCounter, result.FailedCounter,
		result.SkippedCounter, result.NotTestedCounter)
}

func (ts *TestSuite) runSingleTest(s *search.Search, test *Test) {
	p := position.New()
	if err := p.SetFEN(test.fen); err != nil {
		log.Warningf("Invalid fen in test %s: %s", test.id, test.fen)
		test.rType = skipped
		return
	}

	sl := search.NewSearchLimits()
	sl.TimeControl = true
	sl.MoveTime = ts.Time
	if ts.Depth > 0 {
		sl.Depth = ts.Depth
	}
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()

	result := s.LastSearchResult()
	test.actual = result.BestMove

	switch test.tType {
	case dm:
		// a direct mate test succeeds when the reported score is a mate
		// in at most the required number of moves
		if result.BestValue >= Mate-2*test.mateDepth {
			test.rType = success
		} else {
			test.rType = failed
		}
	case bm:
		test.rType = failed
		for _, m := range test.targetMoves {
			if m.MoveOnly() == result.BestMove.MoveOnly() {
				test.rType = success
				break
			}
		}
	default:
		test.rType = skipped
	}
	out.Printf("Test %s: %s (best move %s)\n", test.id, resultString(test.rType), test.actual.String())
}

func resultString(r resultType) string {
	switch r {
	case success:
		return "OK"
	case failed:
		return "FAILED"
	case skipped:
		return "SKIPPED"
	}
	return "NOT TESTED"
}

// parseEpdLine parses one EPD line into a Test. The move of a "bm"
// opcode is matched against the legal moves of the position, accepting
// UCI notation and simple SAN.
func parseEpdLine(line string) *Test {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return nil
	}
	// EPD: first four fields are placement, side, castling, ep
	fen := strings.Join(fields[:4], " ") + " 0 1"
	p := position.New()
	if err := p.SetFEN(fen); err != nil {
		return nil
	}

	test := &Test{fen: fen, line: line, tType: none}
	ops := strings.Join(fields[4:], " ")
	for _, op := range strings.Split(ops, ";") {
		op = strings.TrimSpace(op)
		switch {
		case strings.HasPrefix(op, "id "):
			test.id = strings.Trim(op[3:], `"`)
		case strings.HasPrefix(op, "dm "):
			d, err := strconv.Atoi(strings.TrimSpace(op[3:]))
			if err == nil {
				test.tType = dm
				test.mateDepth = d
			}
		case strings.HasPrefix(op, "bm "):
			test.tType = bm
			for _, moveStr := range strings.Fields(op[3:]) {
				if m := matchMove(p, moveStr); m != MoveNone {
					test.targetMoves.PushBack(m)
				}
			}
		}
	}
	if test.tType == bm && test.targetMoves.Len() == 0 {
		return nil
	}
	if test.tType == none {
		return nil
	}
	return test
}

// matchMove resolves a move string (UCI or simple SAN without
// disambiguation suffixes) against the legal moves of the position.
func matchMove(p *position.Position, moveStr string) Move {
	mg := movegen.NewMoveGen()
	if m := mg.GetMoveFromUci(p, strings.ToLower(moveStr)); m != MoveNone {
		return m
	}

	cleaned := strings.NewReplacer("x", "", "+", "", "#", "", "=", "").Replace(moveStr)
	var ml moveslice.MoveSlice
	mg.GenerateAll(p, &ml)
	for _, m := range ml {
		if !p.MakeMove(m) {
			continue
		}
		p.UndoMove()
		if sanMatches(p, m, cleaned) {
			return m.MoveOnly()
		}
	}
	return MoveNone
}

// sanMatches compares a legal move against a SAN-like token: piece
// letter (implicit P for pawns) plus destination square, with an
// optional promotion piece and optional origin file for pawn captures.
func sanMatches(p *position.Position, m Move, san string) bool {
	pc := p.PieceAt(m.From()).TypeOf()
	dest := m.To().String()

	candidates := []string{}
	if pc == Pawn {
		candidates = append(candidates, dest, string("abcdefgh"[m.From().File()])+dest)
		if m.IsPromotion() {
			pp := strings.ToUpper(m.Promo().String())
			candidates = []string{dest + pp, string("abcdefgh"[m.From().File()]) + dest + pp}
		}
	} else {
		letter := pc.String()
		candidates = append(candidates,
			letter+dest,
			letter+string("abcdefgh"[m.From().File()])+dest,
			letter+m.From().String()+dest)
	}
	if pc == King {
		if d := m.To().File() - m.From().File(); d == 2 {
			candidates = append(candidates, "O-O", "0-0")
		} else if d == -2 {
			candidates = append(candidates, "O-O-O", "0-0-0")
		}
	}
	for _, c := range candidates {
		if c == san {
			return true
		}
	}
	return false
}
