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

// Package uci contains the UciHandler data structure and functionality to
// handle the UCI protocol communication between the chess user interface
// and the chess engine.
//
// The handler reads commands line by line in the foreground; each "go"
// spawns one search worker goroutine and "stop"/"quit" raise the search's
// stop flag. Malformed moves in a "position" command are logged to the
// UCI log and skipped; processing continues best effort.
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
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
	"github.com/corvid-chess/corvid/internal/uciInterface"
	"github.com/corvid-chess/corvid/internal/version"
)

var out = message.NewPrinter(language.English)
var log *logging.Logger

// UciHandler handles all communication with the chess ui via UCI and
// controls options and search. Create an instance with NewUciHandler().
type UciHandler struct {
	InIo       *bufio.Scanner
	OutIo      *bufio.Writer
	myMoveGen  *movegen.Movegen
	mySearch   *search.Search
	myPosition *position.Position
	myPerft    *movegen.Perft
	uciLog     *logging.Logger
}

// NewUciHandler creates a new UciHandler instance. Input / Output io can
// be replaced by changing the instance's InIo and OutIo members.
func NewUciHandler() *UciHandler {
	if log == nil {
		log = myLogging.GetLog()
	}
	u := &UciHandler{
		InIo:       bufio.NewScanner(os.Stdin),
		OutIo:      bufio.NewWriter(os.Stdout),
		myMoveGen:  movegen.NewMoveGen(),
		mySearch:   search.NewSearch(),
		myPosition: position.New(),
		myPerft:    movegen.NewPerft(),
		uciLog:     myLogging.GetUciLog(),
	}
	var uciDriver uciInterface.UciDriver = u
	u.mySearch.SetUciHandler(uciDriver)
	return u
}

// Loop starts the main loop to receive commands through the input stream
// (pipe or user).
func (u *UciHandler) Loop() {
	for u.InIo.Scan() {
		if u.handleReceivedCommand(u.InIo.Text()) {
			break
		}
	}
	// EOF on stdin is treated like "quit"
	u.mySearch.StopSearch()
	u.myPerft.Stop()
}

// Command handles a single line of UCI protocol aka command and returns
// the uci response as string output. Mostly useful for debugging and
// unit testing.
func (u *UciHandler) Command(cmd string) string {
	tmp := u.OutIo
	buffer := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buffer)
	u.handleReceivedCommand(cmd)
	_ = u.OutIo.Flush()
	u.OutIo = tmp
	return buffer.String()
}

// SendReadyOk tells the UCI user interface that the engine is ready.
func (u *UciHandler) SendReadyOk() {
	u.send("readyok")
}

// SendInfoString sends an arbitrary string to the UCI user interface.
func (u *UciHandler) SendInfoString(info string) {
	u.send(out.Sprintf("info string %s", info))
}

// SendIterationEndInfo sends information about the last search depth
// iteration to the UCI ui. Mate scores are converted from the internal
// ply distance to the protocol's moves-to-mate.
func (u *UciHandler) SendIterationEndInfo(depth int, seldepth int, score int, nodes uint64, nps uint64, t time.Duration, pv moveslice.MoveSlice) {
	u.send(fmt.Sprintf("info depth %d seldepth %d nodes %d %s nps %d time %d pv %s",
		depth, seldepth, nodes, formatScore(score), nps, t.Milliseconds(), pv.StringUci()))
}

// SendSearchUpdate sends a periodic update about search stats to the UCI ui.
func (u *UciHandler) SendSearchUpdate(depth int, seldepth int, nodes uint64, nps uint64, t time.Duration, hashfull int) {
	u.send(fmt.Sprintf("info depth %d seldepth %d nodes %d nps %d time %d hashfull %d",
		depth, seldepth, nodes, nps, t.Milliseconds(), hashfull))
}

// SendResult sends the search result to the UCI ui after the search has
// ended or has been stopped.
func (u *UciHandler) SendResult(bestMove Move) {
	u.send("bestmove " + bestMove.String())
}

// formatScore renders a score as "score cp N" or "score mate M".
func formatScore(score int) string {
	if IsMateScore(score) {
		moves := score
		if score > 0 {
			moves = (Mate - score + 1) / 2
		} else {
			moves = (-Mate - score) / 2
		}
		return fmt.Sprintf("score mate %d", moves)
	}
	return fmt.Sprintf("score cp %d", score)
}

var regexWhiteSpace = regexp.MustCompile(`\s+`)

func (u *UciHandler) handleReceivedCommand(cmd string) bool {
	if len(strings.TrimSpace(cmd)) == 0 {
		return false
	}
	log.Debugf("Received command: %s", cmd)
	u.uciLog.Infof("<< %s", cmd)

	tokens := regexWhiteSpace.Split(strings.TrimSpace(cmd), -1)
	switch tokens[0] {
	case "quit":
		u.mySearch.StopSearch()
		u.myPerft.Stop()
		return true
	case "uci":
		u.uciCommand()
	case "setoption":
		u.setOptionCommand(tokens)
	case "isready":
		u.isReadyCommand()
	case "ucinewgame":
		u.uciNewGameCommand()
	case "position":
		u.positionCommand(tokens)
	case "go":
		u.goCommand(tokens)
	case "stop":
		u.stopCommand()
	case "perft":
		u.perftCommand(tokens)
	case "print":
		u.printCommand()
	case "noop":
	default:
		u.send("Unknown command: " + cmd)
		log.Warningf("Unknown command: %s", cmd)
	}
	return false
}

// command handler when the "uci" cmd has been received.
// Responds with "id" and "option" lines and "uciok".
func (u *UciHandler) uciCommand() {
	u.send("id name Corvid " + version.Version())
	u.send("id author Corvid Chess Project")
	for _, o := range *uciOptions.GetOptions() {
		u.send(o)
	}
	u.send("uciok")
}

// setOptionCommand reads the option name and the optional value and, when
// the option exists, stores the new value and calls its handler.
func (u *UciHandler) setOptionCommand(tokens []string) {
	name := ""
	value := ""
	if len(tokens) > 1 && tokens[1] == "name" {
		i := 2
		for i < len(tokens) && tokens[i] != "value" {
			name += tokens[i] + " "
			i++
		}
		name = strings.TrimSpace(name)
		if len(tokens) > i+1 && tokens[i] == "value" {
			value = tokens[i+1]
		}
	} else {
		msg := "Command 'setoption' is malformed"
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}
	o, found := uciOptions[name]
	if !found {
		msg := out.Sprintf("Command 'setoption': No such option '%s'", name)
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}
	o.CurrentValue = value
	o.HandlerFunc(u, o)
}

// requests the ready status from the search which in turn might
// initialize itself.
func (u *UciHandler) isReadyCommand() {
	u.mySearch.IsReady()
}

// sends a stop signal to search and perft.
func (u *UciHandler) stopCommand() {
	u.mySearch.StopSearch()
	u.myPerft.Stop()
}

// starts the perft self test in a goroutine: the seven reference
// positions to depth 5 (or the given depth), reporting ok/error per
// depth and total speed.
func (u *UciHandler) perftCommand(tokens []string) {
	depth := 5
	if len(tokens) > 1 {
		d, err := strconv.Atoi(tokens[1])
		if err != nil {
			log.Warningf("Can't perft on depth='%s'", tokens[1])
		} else {
			depth = d
		}
	}
	go u.myPerft.SelfTest(depth)
}

// prints the current board to the output, a debugging aid.
func (u *UciHandler) printCommand() {
	u.send(u.myPosition.String())
}

// starts a search after reading in the search limits provided.
func (u *UciHandler) goCommand(tokens []string) {
	searchLimits, err := u.readSearchLimits(tokens)
	if err {
		return
	}
	u.mySearch.StartSearch(*u.myPosition, *searchLimits)
}

// positionCommand sets the current position from "startpos" or a FEN,
// then replays the given move list. Each move is matched against the
// legal moves of the evolving position; a move that does not match is
// logged to the UCI log and skipped while the rest is still applied.
func (u *UciHandler) positionCommand(tokens []string) {
	if len(tokens) < 2 {
		msg := out.Sprintf("Command 'position' malformed. %s", tokens)
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}

	fen := position.StartFEN
	i := 1
	switch tokens[i] {
	case "startpos":
		i++
	case "fen":
		i++
		var fenb strings.Builder
		for i < len(tokens) && tokens[i] != "moves" {
			fenb.WriteString(tokens[i])
			fenb.WriteString(" ")
			i++
		}
		fen = strings.TrimSpace(fenb.String())
		if len(fen) == 0 {
			msg := out.Sprintf("Command 'position' malformed. %s", tokens)
			u.SendInfoString(msg)
			log.Warning(msg)
			return
		}
	default:
		msg := out.Sprintf("Command 'position' malformed. %s", tokens)
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}

	p := position.New()
	if err := p.SetFEN(fen); err != nil {
		msg := out.Sprintf("Command 'position': %s", err)
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}
	u.myPosition = p

	if i < len(tokens) && tokens[i] == "moves" {
		i++
		for ; i < len(tokens); i++ {
			move := u.myMoveGen.GetMoveFromUci(u.myPosition, tokens[i])
			if move == MoveNone || !u.myPosition.MakeMove(move) {
				u.uciLog.Warningf("position: illegal move '%s' skipped", tokens[i])
				continue
			}
		}
	}
	log.Debugf("New position: %s", u.myPosition.FEN())
}

// signals the search that a new game starts: reset position, clear all
// search state and the transposition table.
func (u *UciHandler) uciNewGameCommand() {
	u.myPosition = position.New()
	u.mySearch.NewGame()
}

func (u *UciHandler) readSearchLimits(tokens []string) (*search.Limits, bool) {
	searchLimits := search.NewSearchLimits()
	i := 1
	for i < len(tokens) {
		var err error
		switch tokens[i] {
		case "infinite":
			i++
			searchLimits.Infinite = true
		case "depth":
			i++
			searchLimits.Depth, err = strconv.Atoi(tokens[i])
			if err != nil {
				return u.goError(out.Sprintf("UCI command go malformed. Depth not a number: %s", tokens[i]))
			}
			i++
		case "nodes":
			i++
			parseInt, err2 := strconv.ParseInt(tokens[i], 10, 64)
			if err2 != nil {
				return u.goError(out.Sprintf("UCI command go malformed. Nodes not a number: %s", tokens[i]))
			}
			searchLimits.Nodes = uint64(parseInt)
			i++
		case "movetime":
			i++
			parseInt, err2 := strconv.ParseInt(tokens[i], 10, 64)
			if err2 != nil {
				return u.goError(out.Sprintf("UCI command go malformed. Movetime not a number: %s", tokens[i]))
			}
			searchLimits.MoveTime = time.Duration(parseInt) * time.Millisecond
			searchLimits.TimeControl = true
			i++
		case "wtime":
			i++
			parseInt, err2 := strconv.ParseInt(tokens[i], 10, 64)
			if err2 != nil {
				return u.goError(out.Sprintf("UCI command go malformed. Wtime not a number: %s", tokens[i]))
			}
			searchLimits.WhiteTime = time.Duration(parseInt) * time.Millisecond
			searchLimits.TimeControl = true
			i++
		case "btime":
			i++
			parseInt, err2 := strconv.ParseInt(tokens[i], 10, 64)
			if err2 != nil {
				return u.goError(out.Sprintf("UCI command go malformed. Btime not a number: %s", tokens[i]))
			}
			searchLimits.BlackTime = time.Duration(parseInt) * time.Millisecond
			searchLimits.TimeControl = true
			i++
		case "winc":
			i++
			parseInt, err2 := strconv.ParseInt(tokens[i], 10, 64)
			if err2 != nil {
				return u.goError(out.Sprintf("UCI command go malformed. Winc not a number: %s", tokens[i]))
			}
			searchLimits.WhiteInc = time.Duration(parseInt) * time.Millisecond
			i++
		case "binc":
			i++
			parseInt, err2 := strconv.ParseInt(tokens[i], 10, 64)
			if err2 != nil {
				return u.goError(out.Sprintf("UCI command go malformed. Binc not a number: %s", tokens[i]))
			}
			searchLimits.BlackInc = time.Duration(parseInt) * time.Millisecond
			i++
		case "movestogo":
			i++
			searchLimits.MovesToGo, err = strconv.Atoi(tokens[i])
			if err != nil {
				return u.goError(out.Sprintf("UCI command go malformed. Movestogo not a number: %s", tokens[i]))
			}
			i++
		default:
			return u.goError(out.Sprintf("UCI command go malformed. Invalid subcommand: %s", tokens[i]))
		}
	}

	// sanity check / minimum settings
	if !(searchLimits.Infinite ||
		searchLimits.Depth > 0 ||
		searchLimits.Nodes > 0 ||
		searchLimits.TimeControl) {
		return u.goError(out.Sprintf("UCI command go malformed. No effective limits set %s", tokens))
	}
	if searchLimits.TimeControl && searchLimits.MoveTime == 0 {
		if u.myPosition.Side() == White && searchLimits.WhiteTime == 0 {
			return u.goError("UCI command go invalid. White to move but time for white is zero!")
		} else if u.myPosition.Side() == Black && searchLimits.BlackTime == 0 {
			return u.goError("UCI command go invalid. Black to move but time for black is zero!")
		}
	}
	return searchLimits, false
}

func (u *UciHandler) goError(msg string) (*search.Limits, bool) {
	u.SendInfoString(msg)
	log.Warning(msg)
	return nil, true
}

// sends any string to the UCI user interface.
func (u *UciHandler) send(s string) {
	u.uciLog.Infof(">> %s", s)
	_, _ = u.OutIo.WriteString(s + "\n")
	_ = u.OutIo.Flush()
}
