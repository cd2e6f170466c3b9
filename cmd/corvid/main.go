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

package main

import (
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvid-chess/corvid/internal/config"
	"github.com/corvid-chess/corvid/internal/logging"
	"github.com/corvid-chess/corvid/internal/movegen"
	"github.com/corvid-chess/corvid/internal/position"
	"github.com/corvid-chess/corvid/internal/search"
	"github.com/corvid-chess/corvid/internal/testsuite"
	"github.com/corvid-chess/corvid/internal/uci"
	"github.com/corvid-chess/corvid/internal/util"
	"github.com/corvid-chess/corvid/internal/version"
)

var out = message.NewPrinter(language.English)

func main() {
	// command line args
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./corvid.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "", "standard log level\n(critical|error|warning|notice|info|debug)")
	searchlogLvl := flag.String("searchloglvl", "", "search log level\n(critical|error|warning|notice|info|debug)")
	logPath := flag.String("logpath", "", "path where to write log files to")
	perftDepth := flag.Int("perft", 0, "runs the perft self test up to the given depth and exits")
	fen := flag.String("fen", position.StartFEN, "fen for the nps test")
	nps := flag.Int("nps", 0, "runs a nodes per second test for the given number of seconds and exits")
	cpuProfile := flag.String("cpuprofile", "", "directory to write a cpu profile to")
	testSuite := flag.String("testsuite", "", "path to a file containing EPD tests")
	testMovetime := flag.Int("testtime", 2000, "search time for each test position in milliseconds")
	testSearchdepth := flag.Int("testdepth", 0, "search depth limit for each test position")
	flag.Parse()

	// print version info and exit
	if *versionInfo {
		printVersionInfo()
		return
	}

	// this needs to be set before config.Setup() is called, otherwise the
	// default will be used
	config.ConfFile = *configFile
	config.Setup()

	// command line options overwrite config file settings
	if *logPath != "" {
		config.Settings.Log.LogPath = *logPath
	}
	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}
	if lvl, found := config.LogLevels[*searchlogLvl]; found {
		config.SearchLogLevel = lvl
	}

	// resetting log level of the standard log - required as most packages
	// acquire the standard logger as a global var before main() runs
	logging.GetLog()

	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile)).Stop()
	}

	// perft self test
	if *perftDepth != 0 {
		p := movegen.NewPerft()
		if !p.SelfTest(*perftDepth) {
			os.Exit(1)
		}
		return
	}

	// nps test
	if *nps != 0 {
		s := search.NewSearch()
		p := position.New()
		if err := p.SetFEN(*fen); err != nil {
			out.Println(err)
			os.Exit(1)
		}
		sl := search.NewSearchLimits()
		sl.TimeControl = true
		sl.MoveTime = time.Duration(*nps) * time.Second
		s.StartSearch(*p, *sl)
		s.WaitWhileSearching()
		out.Println()
		out.Println("NPS : ", util.Nps(s.NodesVisited(), s.LastSearchResult().SearchTime))
		return
	}

	// execute test suite if requested
	if *testSuite != "" {
		ts, err := testsuite.NewTestSuite(*testSuite, time.Duration(*testMovetime)*time.Millisecond, *testSearchdepth)
		if err != nil {
			out.Println(err)
			os.Exit(1)
		}
		ts.RunTests()
		return
	}

	// starting the uci handler and waiting for communication with
	// the UCI user interface
	u := uci.NewUciHandler()
	u.Loop()
}

func printVersionInfo() {
	out.Printf("Corvid %s\n", version.Version())
	out.Println("Environment:")
	out.Printf("  Using GO version %s\n", runtime.Version())
	out.Printf("  Running %s using %s as a compiler\n", runtime.GOARCH, runtime.Compiler)
	out.Printf("  Number of CPU: %d\n", runtime.NumCPU())
	cwd, _ := os.Getwd()
	out.Printf("  Working directory: %s\n", cwd)
}
