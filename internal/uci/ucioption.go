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

package uci

import (
	"strconv"
	"strings"

	. "github.com/corvid-chess/corvid/internal/config"
)

// init defines the available uci options and stores them into the
// uciOptions map. The set is intentionally minimal: what a GUI needs to
// drive the engine and manage its one significant resource, the hash.
func init() {
	uciOptions = map[string]*uciOption{
		"Hash":       {NameID: "Hash", HandlerFunc: cacheSize, OptionType: Spin, DefaultValue: strconv.Itoa(Settings.Search.TTSize), CurrentValue: strconv.Itoa(Settings.Search.TTSize), MinValue: "0", MaxValue: "65536"},
		"Clear Hash": {NameID: "Clear Hash", HandlerFunc: clearCache, OptionType: Button},
		"Threads":    {NameID: "Threads", HandlerFunc: setThreads, OptionType: Spin, DefaultValue: "1", CurrentValue: "1", MinValue: "1", MaxValue: "1"},
	}
	sortOrderUciOptions = []string{
		"Hash",
		"Clear Hash",
		"Threads",
	}
}

// GetOptions returns all available uci options as a slice of strings to
// be sent to the UCI user interface during the initialization phase of
// the UCI protocol.
func (o *optionMap) GetOptions() *[]string {
	var options []string
	for _, opt := range sortOrderUciOptions {
		options = append(options, uciOptions[opt].String())
	}
	return &options
}

// String for uciOption returns a representation of the uci option as
// required by the UCI protocol during the initialization phase.
func (o *uciOption) String() string {
	var os strings.Builder
	os.WriteString("option name ")
	os.WriteString(o.NameID)
	os.WriteString(" type ")
	switch o.OptionType {
	case Check:
		os.WriteString("check default ")
		os.WriteString(o.DefaultValue)
	case Spin:
		os.WriteString("spin default ")
		os.WriteString(o.DefaultValue)
		os.WriteString(" min ")
		os.WriteString(o.MinValue)
		os.WriteString(" max ")
		os.WriteString(o.MaxValue)
	case Button:
		os.WriteString("button")
	case String:
		os.WriteString("string default ")
		os.WriteString(o.DefaultValue)
	}
	return os.String()
}

// uciOptionType is an enum representing the different UCI option types.
type uciOptionType int

const (
	Check  uciOptionType = 0
	Spin   uciOptionType = 1
	Button uciOptionType = 2
	String uciOptionType = 3
)

// optionHandler is the function type called when the uci option is
// changed by the "setoption" command.
type optionHandler func(*UciHandler, *uciOption)

// uciOption defines UCI options as described in the UCI protocol.
type uciOption struct {
	NameID       string
	HandlerFunc  optionHandler
	OptionType   uciOptionType
	DefaultValue string
	MinValue     string
	MaxValue     string
	CurrentValue string
}

// optionMap is a convenience type for a map of pointers to uci options.
type optionMap map[string]*uciOption

// uciOptions stores all available uci options.
var uciOptions optionMap

// sortOrderUciOptions controls the sort order of all options.
var sortOrderUciOptions []string

// ////////////////////////////////////////////////////////////////
// HandlerFunc for uci options changes
// ////////////////////////////////////////////////////////////////

func cacheSize(u *UciHandler, o *uciOption) {
	v, err := strconv.Atoi(o.CurrentValue)
	if err != nil || v < 0 {
		log.Warningf("Invalid Hash size: %s", o.CurrentValue)
		return
	}
	Settings.Search.TTSize = v
	u.mySearch.ResizeCache()
}

func clearCache(u *UciHandler, o *uciOption) {
	u.mySearch.ClearHash()
	log.Debug("Cleared Cache")
}

func setThreads(u *UciHandler, o *uciOption) {
	// the search is single threaded; the option is accepted so GUIs that
	// always send it do not fail the handshake
	log.Debugf("Threads requested: %s (engine always uses 1)", o.CurrentValue)
}
